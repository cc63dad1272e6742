package terminal

import (
	"reflect"
	"strings"
	"testing"

	"github.com/justyntemme/sneaky-t/internal/paging"
	"github.com/justyntemme/sneaky-t/internal/reader"
)

var (
	_ reader.DryRun = (*Surface)(nil)
	_ reader.Styler = (*Surface)(nil)
	_ reader.Sizer  = (*Surface)(nil)
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks at spaces", "hello wide world", 10, []string{"hello wide", "world"}},
		{"splits long words", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "", 10, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.in, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			for _, line := range got {
				if w := Width(line); w > tt.width {
					t.Errorf("line %q is %d cells wide, limit %d", line, w, tt.width)
				}
			}
		})
	}
}

func TestSurface_TextWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		textSize int
		want     int
	}{
		{"default size uses full width", 80, 16, 80},
		{"small size uses full width", 80, 8, 80},
		{"double size halves", 80, 32, 40},
		{"never below minimum", 80, 48, 26},
		{"minimum capped at width", 10, 48, 10},
		{"no width", 0, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface()
			s.SetSize(tt.width, 10)
			s.SetTextSize(tt.textSize)
			if got := s.TextWidth(); got != tt.want {
				t.Errorf("TextWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSurface_Overflows(t *testing.T) {
	s := NewSurface()
	s.SetSize(10, 2)

	s.SetParagraphs([]string{"one", "two"})
	if s.Overflows() {
		t.Error("two short paragraphs should fit two lines")
	}

	s.SetParagraphs([]string{"one", "two", "three"})
	if !s.Overflows() {
		t.Error("three paragraphs should overflow two lines")
	}

	s.SetParagraphs([]string{"a paragraph that wraps"})
	if !s.Overflows() {
		t.Errorf("expected wrapped paragraph to overflow, lines %q", s.Lines())
	}

	s.SetParagraphs(nil)
	if s.Overflows() {
		t.Error("nothing never overflows")
	}

	s.SetSize(0, 0)
	s.SetParagraphs([]string{"x"})
	if !s.Overflows() {
		t.Error("any text overflows an empty grid")
	}
}

func TestSurface_WideCharacters(t *testing.T) {
	s := NewSurface()
	s.SetSize(4, 1)

	// each of these takes two cells
	s.SetParagraphs([]string{"世界"})
	if s.Overflows() {
		t.Errorf("expected two wide runes to fit four cells, lines %q", s.Lines())
	}
	s.SetParagraphs([]string{"世界世"})
	if !s.Overflows() {
		t.Errorf("expected three wide runes to overflow four cells, lines %q", s.Lines())
	}
}

func TestSurface_Render(t *testing.T) {
	s := NewSurface()
	s.SetSize(12, 3)
	s.SetTextColor("#1cb8c3ff")
	s.SetParagraphs([]string{"first", "second"})

	out := s.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rendered lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected content in output, got %q", out)
	}
}

// A whole book paged through real surfaces reproduces the text and never
// overflows the visible one.
func TestSurface_Pagination(t *testing.T) {
	book := strings.Repeat("The keeper climbed the stairs and lit the lamp. ", 30) +
		"\n\n" + strings.Repeat("Ships passed in the night. ", 40)
	text := paging.NewText(book)

	dry := NewSurface()
	dry.SetSize(30, 5)
	fits := func(s string) bool {
		dry.SetParagraphs(reader.Paragraphs(s))
		return !dry.Overflows()
	}

	first, ok := paging.FirstPage(text, 0, fits)
	if !ok || first.Length == 0 {
		t.Fatalf("expected a first page, got %+v %v", first, ok)
	}
	p := paging.NewPager(first, paging.NextCalculator(text, fits), paging.PrevCalculator(text, fits))

	view := NewSurface()
	view.SetSize(30, 5)

	var b strings.Builder
	page := first
	for {
		view.SetParagraphs(reader.Paragraphs(text.Page(page)))
		if view.Overflows() {
			t.Fatalf("page %+v overflows: %q", page, view.Lines())
		}
		b.WriteString(text.Page(page))

		next, ok := p.Next()
		if !ok {
			break
		}
		if next.Start != page.End() {
			t.Fatalf("gap between %+v and %+v", page, next)
		}
		page = next
	}
	if b.String() != book {
		t.Error("pages do not reproduce the book")
	}
}
