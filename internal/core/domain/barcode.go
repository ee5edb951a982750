// Package domain holds the value types shared by the scan engine and its adapters.
package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Barcode is an opaque, non-empty product identifier read from a scanner.
// Equality is exact string match.
type Barcode string

// ParseBarcode trims surrounding whitespace and reports whether anything is left.
func ParseBarcode(raw string) (Barcode, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	return Barcode(trimmed), true
}

// String returns the barcode text.
func (b Barcode) String() string {
	return string(b)
}

// Source identifies which input channel produced a scan.
type Source string

const (
	// SourceWedge is a keyboard-emulating hardware scanner.
	SourceWedge Source = "wedge"
	// SourceCamera is a camera-based decoder.
	SourceCamera Source = "camera"
)

// Mode selects the live input channel. Exactly one channel is live at a time.
type Mode string

const (
	// ModeWedge listens for keystrokes terminated by Enter.
	ModeWedge Mode = "wedge"
	// ModeCamera listens for decoder callbacks.
	ModeCamera Mode = "camera"
)

// ParseMode validates a user supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWedge:
		return ModeWedge, nil
	case ModeCamera:
		return ModeCamera, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidMode, "failed to parse scan mode"), "mode", s)
	}
}

// Source returns the scan source that corresponds to the mode.
func (m Mode) Source() Source {
	if m == ModeCamera {
		return SourceCamera
	}
	return SourceWedge
}

// ScanEvent is one normalized barcode read. It is consumed once by the lookup gate.
type ScanEvent struct {
	Barcode    Barcode
	Source     Source
	ObservedAt time.Time
}
