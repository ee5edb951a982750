package session

import (
	"sync"
	"time"

	"go.trai.ch/scango/internal/core/domain"
)

// Emitter holds the current feedback message and reverts it to idle after its
// display duration. Every emitted message bumps the generation; a pending
// reversion only applies if the generation it was scheduled for is still current,
// and emitting stops the previous timer.
type Emitter struct {
	mu       sync.Mutex
	state    domain.FeedbackState
	timer    *time.Timer
	success  time.Duration
	warning  time.Duration
	onRevert func(domain.FeedbackState)
}

// NewEmitter creates an idle emitter. onRevert, if set, is called from the timer
// goroutine after a message reverts to idle.
func NewEmitter(success, warning time.Duration, onRevert func(domain.FeedbackState)) *Emitter {
	return &Emitter{
		state:    domain.IdleFeedback(0),
		success:  success,
		warning:  warning,
		onRevert: onRevert,
	}
}

// Success shows a success message.
func (e *Emitter) Success(text string) domain.FeedbackState {
	return e.emit(domain.FeedbackSuccess, text, e.success)
}

// Warning shows a warning message.
func (e *Emitter) Warning(text string) domain.FeedbackState {
	return e.emit(domain.FeedbackWarning, text, e.warning)
}

// Current returns the message currently displayed.
func (e *Emitter) Current() domain.FeedbackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stop cancels any pending reversion.
func (e *Emitter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Emitter) emit(kind domain.FeedbackKind, text string, d time.Duration) domain.FeedbackState {
	e.mu.Lock()
	defer e.mu.Unlock()

	gen := e.state.Generation + 1
	e.state = domain.FeedbackState{
		Kind:       kind,
		Text:       text,
		ExpiresAt:  time.Now().Add(d),
		Generation: gen,
	}

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(d, func() { e.expire(gen) })

	return e.state
}

func (e *Emitter) expire(gen uint64) {
	e.mu.Lock()
	if e.state.Generation != gen || e.state.Kind == domain.FeedbackIdle {
		e.mu.Unlock()
		return
	}
	e.state = domain.IdleFeedback(gen)
	e.timer = nil
	idle := e.state
	e.mu.Unlock()

	if e.onRevert != nil {
		e.onRevert(idle)
	}
}
