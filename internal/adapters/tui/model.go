// Package tui is the interactive cart screen of a scan session.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/scango/internal/core/domain"
)

// Controller is the part of the scan engine the screen drives.
type Controller interface {
	Press(r rune)
	Enter()
	RequestRemove(ctx context.Context, lineID string) error
	RequestClear(ctx context.Context) error
	Confirm(ctx context.Context) error
	Cancel(ctx context.Context) error
	SetMode(ctx context.Context, mode domain.Mode) error
}

// viewMsg carries a fresh engine view.
type viewMsg domain.View

// errMsg carries an intent rejected by the engine.
type errMsg struct{ err error }

// Model is the bubbletea model of the cart screen.
type Model struct {
	ctx        context.Context
	controller Controller
	views      <-chan domain.View
	currency   string

	Current  domain.View
	Selected int
	Notice   string
	Width    int
}

// NewModel creates a model reading views from views.
func NewModel(ctx context.Context, controller Controller, views <-chan domain.View, currency string) *Model {
	return &Model{
		ctx:        ctx,
		controller: controller,
		views:      views,
		currency:   currency,
		Current:    domain.View{Feedback: domain.IdleFeedback(0), Mode: domain.ModeWedge},
	}
}

// Init starts listening for views.
func (m *Model) Init() tea.Cmd {
	return m.waitForView()
}

func (m *Model) waitForView() tea.Cmd {
	if m.views == nil {
		return nil
	}
	views := m.views
	return func() tea.Msg {
		v, ok := <-views
		if !ok {
			return nil
		}
		return viewMsg(v)
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.Current = domain.View(msg)
		m.clampSelection()
		return m, m.waitForView()

	case errMsg:
		m.Notice = msg.err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

//nolint:cyclop // one case per binding
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if m.Current.Pending != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			return m.intent(m.controller.Confirm)
		case "n", "N", "esc":
			return m.intent(m.controller.Cancel)
		}
		return nil
	}

	m.Notice = ""
	switch msg.Type {
	case tea.KeyUp:
		if m.Selected > 0 {
			m.Selected--
		}
	case tea.KeyDown:
		if m.Selected < len(m.Current.Cart.Lines)-1 {
			m.Selected++
		}
	case tea.KeyDelete:
		if line, ok := m.selectedLine(); ok {
			id := line.ID()
			return m.intent(func(ctx context.Context) error { return m.controller.RequestRemove(ctx, id) })
		}
	case tea.KeyCtrlX:
		return m.intent(m.controller.RequestClear)
	case tea.KeyTab:
		next := domain.ModeCamera
		if m.Current.Mode == domain.ModeCamera {
			next = domain.ModeWedge
		}
		return m.intent(func(ctx context.Context) error { return m.controller.SetMode(ctx, next) })
	case tea.KeyEnter:
		m.controller.Enter()
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			m.controller.Press(r)
		}
	}
	return nil
}

func (m *Model) intent(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *Model) selectedLine() (domain.CartLine, bool) {
	lines := m.Current.Cart.Lines
	if m.Selected < 0 || m.Selected >= len(lines) {
		return domain.CartLine{}, false
	}
	return lines[m.Selected], true
}

func (m *Model) clampSelection() {
	if n := len(m.Current.Cart.Lines); m.Selected >= n {
		m.Selected = n - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}
