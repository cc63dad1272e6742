package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/justyntemme/sneaky-t/internal/config"
	"github.com/justyntemme/sneaky-t/internal/ui/styles"
)

// MinWidth is the narrowest column the text is wrapped to
const MinWidth = 20

// Surface lays paragraphs out in a grid of terminal cells. Two surfaces with
// the same size and text size produce the same layout, so one is drawn and the
// other is used off screen to measure candidate pages.
//
// Terminals cannot change the font size, so a larger text size narrows the
// text column instead, keeping the line length a reader sees at that size.
type Surface struct {
	width    int
	height   int
	textSize int
	color    string

	paragraphs []string
	lines      []string
}

// NewSurface creates an empty surface at the default text size
func NewSurface() *Surface {
	return &Surface{
		textSize: config.DefaultTextSize,
		color:    config.DefaultTextColor,
	}
}

// SetSize sets the cell grid available to the text
func (s *Surface) SetSize(width, height int) {
	s.width = max(0, width)
	s.height = max(0, height)
	s.layout()
}

// SetTextSize changes the text size and lays the text out again
func (s *Surface) SetTextSize(size int) {
	s.textSize = config.ClampTextSize(size)
	s.layout()
}

// SetTextColor changes the colour used by Render
func (s *Surface) SetTextColor(color string) {
	s.color = color
}

// SetParagraphs replaces the content
func (s *Surface) SetParagraphs(paragraphs []string) {
	s.paragraphs = paragraphs
	s.layout()
}

// Overflows reports whether the content needs more lines than the surface
// has.
func (s *Surface) Overflows() bool {
	if s.TextWidth() < 1 {
		return len(s.paragraphs) > 0
	}
	return len(s.lines) > s.height
}

// TextWidth returns the column width text is wrapped to
func (s *Surface) TextWidth() int {
	if s.width <= 0 {
		return 0
	}
	scale := float64(s.textSize) / float64(config.DefaultTextSize)
	if scale <= 1 {
		return s.width
	}
	w := int(float64(s.width) / scale)
	return min(s.width, max(w, MinWidth))
}

// Lines returns the laid out lines
func (s *Surface) Lines() []string {
	return s.lines
}

// Render draws the content in the configured colour, padded to the surface
// size.
func (s *Surface) Render() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	lines := s.lines
	if len(lines) > s.height {
		lines = lines[:s.height]
	}
	return lipgloss.NewStyle().
		Foreground(styles.TextColor(s.color)).
		Width(s.width).
		Height(s.height).
		Render(strings.Join(lines, "\n"))
}

func (s *Surface) layout() {
	s.lines = s.lines[:0]
	w := s.TextWidth()
	if w < 1 {
		return
	}
	for _, p := range s.paragraphs {
		s.lines = append(s.lines, Wrap(p, w)...)
	}
}

// Wrap breaks a paragraph into lines at most width cells wide. Lines break
// at spaces where possible; words longer than a line are split.
func Wrap(paragraph string, width int) []string {
	wrapped := wrap.String(wordwrap.String(paragraph, width), width)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// Truncate shortens s to fit width cells, ending with an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Width returns the number of cells s occupies
func Width(s string) int {
	return runewidth.StringWidth(s)
}
