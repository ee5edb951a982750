package ports

import (
	"context"

	"go.trai.ch/scango/internal/core/domain"
)

// Presenter receives a fresh view after every engine step.
// Implementations must not block for long; the engine calls Present from its event loop.
//
//go:generate mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type Presenter interface {
	Present(view domain.View)
}

// Notifier drives a fire-and-forget feedback device (bell, light, speaker).
// Failures are logged and never affect cart state.
type Notifier interface {
	Notify(ctx context.Context, feedback domain.FeedbackState) error
}
