package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/scango/internal/core/domain"
)

// ViewMsg wraps v the way the renderer delivers it.
func ViewMsg(v domain.View) tea.Msg {
	return viewMsg(v)
}

// ErrMsg wraps err the way a rejected intent is delivered.
func ErrMsg(err error) tea.Msg {
	return errMsg{err: err}
}

// NextView blocks until the renderer has a view for the screen.
func (r *Renderer) NextView() domain.View {
	return domain.View(r.model.Init()().(viewMsg))
}
