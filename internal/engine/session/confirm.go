package session

import "go.trai.ch/scango/internal/core/domain"

// ConfirmationGate holds at most one destructive intent until it is confirmed
// or cancelled. Opening a second intent while one is pending is rejected.
type ConfirmationGate struct {
	pending *domain.PendingConfirmation
}

// Open stores the intent. It returns domain.ErrConfirmationPending if one is already open.
func (g *ConfirmationGate) Open(p domain.PendingConfirmation) error {
	if g.pending != nil {
		return domain.ErrConfirmationPending
	}
	g.pending = &p
	return nil
}

// Confirm closes the gate and returns the intent to execute.
func (g *ConfirmationGate) Confirm() (domain.PendingConfirmation, error) {
	if g.pending == nil {
		return domain.PendingConfirmation{}, domain.ErrNoPendingConfirmation
	}
	p := *g.pending
	g.pending = nil
	return p, nil
}

// Cancel closes the gate without effect. It reports whether anything was pending.
func (g *ConfirmationGate) Cancel() bool {
	had := g.pending != nil
	g.pending = nil
	return had
}

// Pending returns a copy of the open intent, or nil.
func (g *ConfirmationGate) Pending() *domain.PendingConfirmation {
	if g.pending == nil {
		return nil
	}
	p := *g.pending
	return &p
}
