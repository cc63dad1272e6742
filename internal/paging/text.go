package paging

// Text is an immutable, rune-indexed snapshot of a book's content.
// Offsets handed around by the pager are rune offsets into a Text.
type Text struct {
	runes []rune
}

// NewText snapshots content.
func NewText(content string) Text {
	return Text{runes: []rune(content)}
}

// Len returns the number of characters in the text
func (t Text) Len() int {
	return len(t.runes)
}

// Slice returns the characters in [start, end), clamped to the text bounds.
func (t Text) Slice(start, end int) string {
	start = clamp(start, 0, len(t.runes))
	end = clamp(end, start, len(t.runes))
	return string(t.runes[start:end])
}

// Page returns the text covered by p
func (t Text) Page(p Page) string {
	return t.Slice(p.Start, p.End())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
