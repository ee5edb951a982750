package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/ui/style"
)

const (
	nameColumn = 28
	helpText   = "↑/↓ select · del remove · ctrl+x clear · tab mode · ctrl+c quit"
)

// View renders the UI.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SCANGO") + " " + modeStyle.Render("mode: "+string(m.Current.Mode)) + "\n")
	s.WriteString(m.feedbackLine() + "\n")
	if m.Current.CameraErr != "" {
		s.WriteString(errorStyle.Render(style.Cross+" "+m.Current.CameraErr) + "\n")
	}
	s.WriteString("\n")

	s.WriteString(m.cartLines())
	s.WriteString("\n")
	s.WriteString(totalStyle.Render(fmt.Sprintf("Total: %s", domain.FormatMoney(m.currency, m.Current.Cart.Total))))
	s.WriteString(mutedStyle.Render(" · "+domain.ItemCountText(m.Current.Cart.ItemCount)) + "\n")

	if p := m.Current.Pending; p != nil {
		s.WriteString("\n" + m.dialog(*p) + "\n")
	}

	if m.Notice != "" {
		s.WriteString("\n" + warningStyle.Render(style.Warning+" "+m.Notice) + "\n")
	}

	s.WriteString("\n" + mutedStyle.Render(helpText) + "\n")
	return s.String()
}

func (m *Model) feedbackLine() string {
	fb := m.Current.Feedback
	switch fb.Kind {
	case domain.FeedbackSuccess:
		return successStyle.Render(style.Check + " " + fb.Text)
	case domain.FeedbackWarning:
		return warningStyle.Render(style.Warning + " " + fb.Text)
	default:
		return idleStyle.Render(style.Circle + " " + fb.Text)
	}
}

func (m *Model) cartLines() string {
	lines := m.Current.Cart.Lines
	if len(lines) == 0 {
		return mutedStyle.Render("Your cart is empty. Scan a barcode to begin.") + "\n"
	}

	var s strings.Builder
	for i, line := range lines {
		name := line.Product.Name
		if len([]rune(name)) > nameColumn {
			name = string([]rune(name)[:nameColumn-1]) + "…"
		}
		row := fmt.Sprintf("%-*s %3d × %-10s %s",
			nameColumn, name,
			line.Quantity,
			domain.FormatMoney(m.currency, line.Product.UnitPrice),
			domain.FormatMoney(m.currency, line.Subtotal()),
		)
		if i == m.Selected {
			s.WriteString(selectedStyle.Render(style.Pointer+" "+row) + "\n")
		} else {
			s.WriteString("  " + row + "\n")
		}
	}
	return s.String()
}

func (m *Model) dialog(p domain.PendingConfirmation) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		dialogTitleStyle.Render(p.Title),
		p.Prompt,
		"",
		"[y] Yes   [n] No",
	)
	return dialogStyle.Render(body)
}
