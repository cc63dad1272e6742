package paging

import (
	"strings"
	"testing"
)

// collapsedFits models a viewport holding limit characters where a newline at
// the top of the page takes no room.
func collapsedFits(limit int) Fits {
	return func(text string) bool {
		return len([]rune(strings.TrimLeft(text, "\n"))) <= limit
	}
}

type countingCalc struct {
	calc  Calculator
	calls int
}

func (c *countingCalc) Calc(cur Page) (Page, bool) {
	c.calls++
	return c.calc(cur)
}

func newTestPager(t *testing.T, content string, progress int, fits Fits) (*Pager, Text, *countingCalc, *countingCalc) {
	t.Helper()
	text := NewText(content)
	first, ok := FirstPage(text, progress, fits)
	if !ok {
		t.Fatalf("no first page at %d", progress)
	}
	next := &countingCalc{calc: NextCalculator(text, fits)}
	prev := &countingCalc{calc: PrevCalculator(text, fits)}
	return NewPager(first, next.Calc, prev.Calc), text, next, prev
}

func TestPager_Scenario(t *testing.T) {
	pager, text, _, _ := newTestPager(t, "AAAA\nBBBB\nCCCC\nDDDD", 0, collapsedFits(9))

	first := pager.Current()
	if first != (Page{Start: 0, Length: 9}) {
		t.Fatalf("expected first page {0 9}, got %+v", first)
	}
	if got := text.Page(first); got != "AAAA\nBBBB" {
		t.Errorf("unexpected first page text %q", got)
	}

	second, ok := pager.Next()
	if !ok {
		t.Fatal("expected a second page")
	}
	if second != (Page{Start: 9, Length: 10}) {
		t.Fatalf("expected {9 10}, got %+v", second)
	}
	if got := text.Page(second); got != "\nCCCC\nDDDD" {
		t.Errorf("unexpected second page text %q", got)
	}

	back, ok := pager.Prev()
	if !ok || back != first {
		t.Errorf("expected to return to %+v, got %+v (ok=%v)", first, back, ok)
	}
}

func TestPager_TerminalConditions(t *testing.T) {
	pager, _, _, _ := newTestPager(t, "AAAA\nBBBB\nCCCC\nDDDD", 0, collapsedFits(9))

	t.Run("prev at start of text", func(t *testing.T) {
		if _, ok := pager.Prev(); ok {
			t.Fatal("expected no page before the start")
		}
		if pager.Index() != 0 {
			t.Errorf("cursor moved to %d", pager.Index())
		}
	})

	t.Run("next at end of text", func(t *testing.T) {
		last, ok := pager.Next()
		if !ok {
			t.Fatal("expected second page")
		}
		if _, ok := pager.Next(); ok {
			t.Fatal("expected no page after the end")
		}
		if pager.Index() != 1 || pager.Current() != last {
			t.Errorf("cursor moved: index %d page %+v", pager.Index(), pager.Current())
		}
		prev, ok := pager.Prev()
		if !ok || prev != (Page{Start: 0, Length: 9}) {
			t.Errorf("expected first page after bouncing off the end, got %+v", prev)
		}
	})
}

func TestPager_RoundTripAndNoRecompute(t *testing.T) {
	content := strings.Repeat("The quick brown fox jumps over the lazy dog.\n", 40)
	pager, _, next, prev := newTestPager(t, content, 700, collapsedFits(97))

	start := pager.Current()

	// walk out in both directions to populate the cache
	for i := 0; i < 5; i++ {
		if _, ok := pager.Next(); !ok {
			t.Fatalf("unexpected end at step %d", i)
		}
	}
	for i := 0; i < 5; i++ {
		if _, ok := pager.Prev(); !ok {
			t.Fatalf("unexpected start at step %d", i)
		}
	}
	if pager.Current() != start {
		t.Fatalf("expected to be back at %+v, got %+v", start, pager.Current())
	}
	var backward []Page
	for i := 0; i < 4; i++ {
		p, ok := pager.Prev()
		if !ok {
			t.Fatalf("unexpected start at step %d", i)
		}
		backward = append(backward, p)
	}

	nextCalls, prevCalls := next.calls, prev.calls
	if nextCalls != 5 || prevCalls != 4 {
		t.Fatalf("expected 5 next and 4 prev computations, got %d and %d", nextCalls, prevCalls)
	}

	// sweep across every cached boundary again
	for i := 0; i < 9; i++ {
		before := pager.Current()
		if _, ok := pager.Next(); !ok {
			t.Fatalf("unexpected end at sweep %d", i)
		}
		back, _ := pager.Prev()
		if back != before {
			t.Fatalf("round trip drifted: %+v -> %+v", before, back)
		}
		pager.Next()
	}
	for i := 0; i < 9; i++ {
		pager.Prev()
	}

	if next.calls != nextCalls || prev.calls != prevCalls {
		t.Errorf("cached pages were recomputed: next %d->%d prev %d->%d",
			nextCalls, next.calls, prevCalls, prev.calls)
	}
	if pager.Current() != backward[len(backward)-1] {
		t.Errorf("expected to end at %+v, got %+v", backward[len(backward)-1], pager.Current())
	}
	if pager.Known() != 10 {
		t.Errorf("expected 10 known pages, got %d", pager.Known())
	}
}

func TestPager_Contiguity(t *testing.T) {
	content := strings.Repeat("line of text\n\n", 30) + "the end"
	fits := collapsedFits(41)

	for _, progress := range []int{0, 1, 137, 250} {
		pager, text, _, _ := newTestPager(t, content, progress, fits)

		// rewind to the start of the book
		for {
			if _, ok := pager.Prev(); !ok {
				break
			}
		}
		if pager.Current().Start != 0 {
			t.Fatalf("progress %d: rewind stopped at %d", progress, pager.Current().Start)
		}

		var b strings.Builder
		prevEnd := 0
		for {
			cur := pager.Current()
			if cur.Start != prevEnd {
				t.Fatalf("progress %d: gap or overlap at %d (expected %d)", progress, cur.Start, prevEnd)
			}
			if cur.Length <= 0 {
				t.Fatalf("progress %d: empty page at %d", progress, cur.Start)
			}
			b.WriteString(text.Page(cur))
			prevEnd = cur.End()
			if _, ok := pager.Next(); !ok {
				break
			}
		}
		if b.String() != content {
			t.Errorf("progress %d: pages do not reconstruct the book", progress)
		}
	}
}

func TestPager_TooSmallViewport(t *testing.T) {
	text := NewText("abcdef")
	fits := limitFits(0)

	first, ok := FirstPage(text, 2, fits)
	if !ok {
		t.Fatal("expected a first page")
	}
	if first.Length != 0 {
		t.Fatalf("expected degenerate first page, got %+v", first)
	}

	pager := NewPager(first, NextCalculator(text, fits), PrevCalculator(text, fits))
	if _, ok := pager.Next(); ok {
		t.Error("expected no progress through a viewport that holds nothing")
	}
	if _, ok := pager.Prev(); ok {
		t.Error("expected no progress backwards either")
	}
	if pager.Current() != first {
		t.Errorf("cursor moved to %+v", pager.Current())
	}
}

func TestFirstPage_ClampsProgress(t *testing.T) {
	text := NewText("short")

	p, ok := FirstPage(text, 99, limitFits(10))
	if ok {
		t.Errorf("expected no page past the end, got %+v", p)
	}
	if p.Start != text.Len() {
		t.Errorf("expected start clamped to %d, got %d", text.Len(), p.Start)
	}

	p, ok = FirstPage(text, -4, limitFits(10))
	if !ok || p != (Page{Start: 0, Length: 5}) {
		t.Errorf("expected {0 5}, got %+v (ok=%v)", p, ok)
	}
}

func TestText_Slice(t *testing.T) {
	text := NewText("héllo, 世界")

	tests := []struct {
		start, end int
		want       string
	}{
		{0, 5, "héllo"},
		{7, 9, "世界"},
		{-2, 1, "h"},
		{8, 99, "界"},
		{5, 3, ""},
	}
	for _, tt := range tests {
		if got := text.Slice(tt.start, tt.end); got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
	if text.Len() != 9 {
		t.Errorf("expected 9 characters, got %d", text.Len())
	}
}
