// Package style holds the colours and glyphs shared by the logger, the
// interactive session and the line renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Pointer = "›"
	Times   = "×"
)

// Tone is how loudly a message is rendered.
type Tone int

// Tones, from quietest to loudest.
const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarning
	ToneError
)

// Mark returns the leading glyph and colour for a tone. Info has no glyph.
func Mark(t Tone) (glyph string, color lipgloss.Color) {
	switch t {
	case ToneSuccess:
		return Check, Green
	case ToneWarning:
		return Warning, Yellow
	case ToneError:
		return Cross, Red
	default:
		return "", Slate
	}
}
