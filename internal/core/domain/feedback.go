package domain

import (
	"fmt"
	"time"
)

// FeedbackKind classifies the transient status message.
type FeedbackKind string

const (
	// FeedbackIdle is the resting state.
	FeedbackIdle FeedbackKind = "idle"
	// FeedbackSuccess follows a successful add.
	FeedbackSuccess FeedbackKind = "success"
	// FeedbackWarning follows unknown barcodes and destructive actions.
	FeedbackWarning FeedbackKind = "warning"
)

// IdleText is shown while no feedback is active.
const IdleText = "Ready to scan"

// Display durations before feedback reverts to idle.
const (
	DefaultSuccessDuration = 1800 * time.Millisecond
	DefaultWarningDuration = 1400 * time.Millisecond
)

// FeedbackState is the single current status message. Later feedback
// supersedes earlier feedback; nothing is queued.
type FeedbackState struct {
	Kind      FeedbackKind
	Text      string
	ExpiresAt time.Time
	// Generation increases with every emitted message and lets stale
	// reversions recognise they have been superseded.
	Generation uint64
}

// IdleFeedback returns the resting state for the given generation.
func IdleFeedback(gen uint64) FeedbackState {
	return FeedbackState{Kind: FeedbackIdle, Text: IdleText, Generation: gen}
}

// AddedText is shown after a product is added.
func AddedText(name string) string {
	return fmt.Sprintf("%s added to cart", name)
}

// UnknownBarcodeText is shown when a lookup does not resolve.
func UnknownBarcodeText(b Barcode) string {
	return fmt.Sprintf("Unknown barcode: %s", b)
}

const (
	// ItemRemovedText is shown after a confirmed line removal.
	ItemRemovedText = "Item removed"
	// CartClearedText is shown after a confirmed clear.
	CartClearedText = "Cart cleared"
)
