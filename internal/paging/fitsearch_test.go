package paging

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// limitFits accepts any text of at most limit characters.
func limitFits(limit int) Fits {
	return func(text string) bool {
		return utf8.RuneCountInString(text) <= limit
	}
}

func countingFits(fits Fits) (Fits, *int) {
	calls := 0
	return func(text string) bool {
		calls++
		return fits(text)
	}, &calls
}

func TestFitSearch_EmptyInput(t *testing.T) {
	fits, calls := countingFits(limitFits(10))

	n, ok := FitSearch(func(n int) string { return "" }, 0, fits)
	if ok {
		t.Errorf("expected empty sentinel, got n=%d ok=true", n)
	}
	if *calls != 0 {
		t.Errorf("expected no measurement, got %d", *calls)
	}

	if _, ok := FitSearch(func(n int) string { return "" }, -3, fits); ok {
		t.Error("expected empty sentinel for negative maxLen")
	}
}

func TestFitSearch_WholeRemainderFitsInOneProbe(t *testing.T) {
	text := NewText(strings.Repeat("x", 300))
	fits, calls := countingFits(limitFits(1000))

	n, ok := FitSearch(func(n int) string { return text.Slice(0, n) }, text.Len(), fits)
	if !ok || n != 300 {
		t.Fatalf("expected 300, got %d (ok=%v)", n, ok)
	}
	if *calls != 1 {
		t.Errorf("expected exactly 1 probe, got %d", *calls)
	}
}

func TestFitSearch_SingleCharacterDoesNotFit(t *testing.T) {
	text := NewText("hello")
	n, ok := FitSearch(func(n int) string { return text.Slice(0, n) }, text.Len(), limitFits(0))
	if !ok {
		t.Fatal("expected ok for non-empty input")
	}
	if n != 0 {
		t.Errorf("expected degenerate length 0, got %d", n)
	}
}

// Every answer must sit exactly on the boundary of a monotone predicate.
func TestFitSearch_MonotoneBoundaryExhaustive(t *testing.T) {
	const maxText = 40
	source := strings.Repeat("ab\ncd efg\n", 4)

	for size := 0; size <= maxText; size++ {
		text := NewText(source[:size])
		for limit := 0; limit <= maxText+2; limit++ {
			fits := limitFits(limit)
			lengthToText := func(n int) string { return text.Slice(0, n) }

			n, ok := FitSearch(lengthToText, text.Len(), fits)
			if size == 0 {
				if ok {
					t.Fatalf("size 0: expected empty sentinel")
				}
				continue
			}
			if !ok {
				t.Fatalf("size %d limit %d: unexpected sentinel", size, limit)
			}
			for l := 0; l <= text.Len(); l++ {
				got := fits(lengthToText(l))
				want := l <= n
				if got != want {
					t.Fatalf("size %d limit %d: answer %d but fits(%d)=%v", size, limit, n, l, got)
				}
			}
		}
	}
}

func TestFitSearch_LongTextProbeCount(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		limit int
	}{
		{"below start length", 5000, 100},
		{"after doubling", 5000, 1300},
		{"exactly a probe", 5000, 2048},
		{"one short of the end", 5000, 4999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := NewText(strings.Repeat("z", tt.size))
			fits, calls := countingFits(limitFits(tt.limit))

			n, ok := FitSearch(func(n int) string { return text.Slice(0, n) }, text.Len(), fits)
			if !ok || n != tt.limit {
				t.Fatalf("expected %d, got %d (ok=%v)", tt.limit, n, ok)
			}
			// doubling from 512 to 5000 plus bisecting an interval of at most 2500
			if *calls > 20 {
				t.Errorf("expected a logarithmic number of probes, got %d", *calls)
			}
		})
	}
}
