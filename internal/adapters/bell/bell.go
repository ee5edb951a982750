// Package bell rings the terminal bell as scan feedback.
package bell

import (
	"context"
	"io"
	"strings"
	"sync"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Notifier = (*Bell)(nil)

// Bell writes BEL characters: one for a successful add, two for a warning.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a Bell writing to w.
func New(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Notify implements ports.Notifier.
func (b *Bell) Notify(ctx context.Context, fb domain.FeedbackState) error {
	var rings int
	switch fb.Kind {
	case domain.FeedbackSuccess:
		rings = 1
	case domain.FeedbackWarning:
		rings = 2
	default:
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, strings.Repeat("\a", rings)); err != nil {
		return zerr.Wrap(err, "failed to ring terminal bell")
	}
	return nil
}
