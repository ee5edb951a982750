package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/scango/internal/ui/output"
)

var _ ports.Presenter = (*Renderer)(nil)

// Renderer runs the cart screen and implements ports.Presenter. Only the
// latest view is kept; the screen never lags behind the engine by more
// than one frame.
type Renderer struct {
	mu      sync.Mutex
	views   chan domain.View
	model   *Model
	program *tea.Program
	errCh   chan error
}

// NewRenderer creates a renderer. Attach the engine before Start.
func NewRenderer(currency string, opts ...tea.ProgramOption) *Renderer {
	lipgloss.SetColorProfile(output.ColorProfile())

	views := make(chan domain.View, 1)
	model := NewModel(context.Background(), nil, views, currency)
	return &Renderer{
		views:   views,
		model:   model,
		program: tea.NewProgram(model, opts...),
		errCh:   make(chan error, 1),
	}
}

// Attach sets the engine that key presses drive.
func (r *Renderer) Attach(controller Controller) {
	r.model.controller = controller
}

// Present implements ports.Presenter.
func (r *Renderer) Present(v domain.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.views:
	default:
	}
	r.views <- v
}

// Start launches the screen in a background goroutine. Intents are sent
// with ctx.
func (r *Renderer) Start(ctx context.Context) error {
	r.model.ctx = ctx
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the screen to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the screen has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}
