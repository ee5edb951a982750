package session

import (
	"context"

	"go.trai.ch/scango/internal/core/domain"
)

// OpenPending opens p on the engine loop without checking the cart.
func (e *Engine) OpenPending(ctx context.Context, p domain.PendingConfirmation) error {
	var err error
	if callErr := e.call(ctx, func() { err = e.confirm.Open(p) }); callErr != nil {
		return callErr
	}
	return err
}
