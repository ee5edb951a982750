package domain

import "fmt"

// IntentKind is the destructive action awaiting confirmation.
type IntentKind string

const (
	// IntentRemoveLine removes one cart line.
	IntentRemoveLine IntentKind = "removeLine"
	// IntentClearCart empties the cart.
	IntentClearCart IntentKind = "clearCart"
)

// PendingConfirmation is the outstanding destructive intent. At most one exists.
type PendingConfirmation struct {
	Intent       IntentKind
	TargetLineID string
	Title        string
	Prompt       string
}

// RemoveLineConfirmation builds the prompt for removing a line.
func RemoveLineConfirmation(line CartLine) PendingConfirmation {
	return PendingConfirmation{
		Intent:       IntentRemoveLine,
		TargetLineID: line.ID(),
		Title:        "Remove Item",
		Prompt:       fmt.Sprintf("Are you sure you want to remove %s from your cart?", line.Product.Name),
	}
}

// ClearCartConfirmation builds the prompt for clearing the cart.
func ClearCartConfirmation() PendingConfirmation {
	return PendingConfirmation{
		Intent: IntentClearCart,
		Title:  "Clear Cart",
		Prompt: "Are you sure you want to clear all items from your cart?",
	}
}
