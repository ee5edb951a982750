// Package linear runs a scan session over plain lines of text, for pipes,
// CI and terminals without a screen.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/scango/internal/ui/output"
	"go.trai.ch/scango/internal/ui/style"
)

var _ ports.Presenter = (*Renderer)(nil)

// Renderer implements ports.Presenter by printing what changed between views.
type Renderer struct {
	stdout   io.Writer
	stderr   io.Writer
	output   *termenv.Output
	currency string

	mu      sync.Mutex
	last    domain.View
	started bool
}

// NewRenderer creates a new Renderer.
func NewRenderer(stdout, stderr io.Writer, currency string) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		stdout:   stdout,
		stderr:   stderr,
		output:   output.NewWithProfile(stdout, output.ColorProfileANSI),
		currency: currency,
	}
}

// Present implements ports.Presenter.
func (r *Renderer) Present(v domain.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.last
	r.last = v
	if !r.started {
		r.started = true
		r.printf("%s mode: %s\n", r.output.String(style.Circle).Faint(), v.Mode)
		prev = domain.View{Mode: v.Mode, Feedback: v.Feedback}
	}

	if v.Mode != prev.Mode {
		r.printf("%s mode: %s\n", r.output.String(style.Circle).Faint(), v.Mode)
	}
	if v.CameraErr != "" && v.CameraErr != prev.CameraErr {
		r.printf("%s %s\n", r.output.String(style.Cross).Foreground(termenv.ANSIRed), v.CameraErr)
	}
	if fb := v.Feedback; fb.Generation != prev.Feedback.Generation && fb.Kind != domain.FeedbackIdle {
		r.printFeedback(fb)
	}
	if v.Pending != nil && (prev.Pending == nil || *prev.Pending != *v.Pending) {
		r.printf("%s %s: %s [:yes/:no]\n", r.output.String("?").Foreground(termenv.ANSIYellow).Bold(), v.Pending.Title, v.Pending.Prompt)
	}
}

// PrintCart prints the cart lines and total of v.
func (r *Renderer) PrintCart(v domain.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.Cart.Empty() {
		r.printf("Cart is empty\n")
	}
	for _, line := range v.Cart.Lines {
		r.printf("  %-6s %3d %s %-28s %10s %10s\n",
			line.ID(),
			line.Quantity,
			style.Times,
			line.Product.Name,
			domain.FormatMoney(r.currency, line.Product.UnitPrice),
			domain.FormatMoney(r.currency, line.Subtotal()),
		)
	}
	r.printf("Total: %s (%s)\n", domain.FormatMoney(r.currency, v.Cart.Total), domain.ItemCountText(v.Cart.ItemCount))
}

// Notice reports a rejected command on stderr.
func (r *Renderer) Notice(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := r.output.String(style.Warning).Foreground(termenv.ANSIYellow)
	_, _ = fmt.Fprintf(r.stderr, "%s %v\n", symbol, err)
}

func (r *Renderer) printFeedback(fb domain.FeedbackState) {
	tone := style.ToneSuccess
	if fb.Kind == domain.FeedbackWarning {
		tone = style.ToneWarning
	}
	glyph, color := style.Mark(tone)
	r.printf("%s %s\n", r.output.String(glyph).Foreground(r.output.Color(string(color))), fb.Text)
}

// printf writes to stdout. Must be called with r.mu held.
func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stdout, format, args...)
}
