package paging

// Page is a half-open range [Start, Start+Length) of a Text.
type Page struct {
	Start  int
	Length int
}

// End returns the offset just past the page
func (p Page) End() int {
	return p.Start + p.Length
}

// Calculator returns the page adjacent to cur. ok is false when cur is
// already at the corresponding end of the text.
type Calculator func(cur Page) (next Page, ok bool)

// Pager caches page boundaries around a starting page so that moving back and
// forth over pages already seen never measures them again.
//
// The cursor is 0 at the starting page. Non-negative cursors index forward,
// negative cursors index backward (-1 is the page just before the start).
type Pager struct {
	forward  []Page // forward[0] is the starting page
	backward []Page // nearest first
	index    int

	next Calculator
	prev Calculator
}

// NewPager creates a pager positioned at first
func NewPager(first Page, next, prev Calculator) *Pager {
	return &Pager{
		forward: []Page{first},
		next:    next,
		prev:    prev,
	}
}

// Next moves to the following page. ok is false at the end of the text, in
// which case the pager does not move.
func (p *Pager) Next() (Page, bool) {
	i := p.index + 1
	if i < 0 {
		p.index = i
		return p.backward[-i-1], true
	}
	if i >= len(p.forward) {
		page, ok := p.next(p.forward[len(p.forward)-1])
		if !ok {
			return Page{}, false
		}
		p.forward = append(p.forward, page)
	}
	p.index = i
	return p.forward[i], true
}

// Prev moves to the preceding page. ok is false at the start of the text, in
// which case the pager does not move.
func (p *Pager) Prev() (Page, bool) {
	i := p.index - 1
	if i >= 0 {
		p.index = i
		return p.forward[i], true
	}
	bi := -i - 1
	if bi >= len(p.backward) {
		boundary := p.forward[0]
		if len(p.backward) > 0 {
			boundary = p.backward[len(p.backward)-1]
		}
		page, ok := p.prev(boundary)
		if !ok {
			return Page{}, false
		}
		p.backward = append(p.backward, page)
	}
	p.index = i
	return p.backward[bi], true
}

// Current returns the page under the cursor
func (p *Pager) Current() Page {
	if p.index < 0 {
		return p.backward[-p.index-1]
	}
	return p.forward[p.index]
}

// Index returns the signed cursor position relative to the starting page.
func (p *Pager) Index() int {
	return p.index
}

// Known returns how many pages have been measured so far.
func (p *Pager) Known() int {
	return len(p.forward) + len(p.backward)
}

// NextCalculator measures the page that follows cur in text.
// A page that would be empty is reported as not found: the viewport cannot
// hold a single character, and advancing would not move the reader.
func NextCalculator(text Text, fits Fits) Calculator {
	return func(cur Page) (Page, bool) {
		start := cur.End()
		n, ok := FitSearch(func(n int) string {
			return text.Slice(start, start+n)
		}, text.Len()-start, fits)
		if !ok || n == 0 {
			return Page{}, false
		}
		return Page{Start: start, Length: n}, true
	}
}

// PrevCalculator measures the page that ends where cur starts, growing the
// candidate text backwards from cur.Start.
func PrevCalculator(text Text, fits Fits) Calculator {
	return func(cur Page) (Page, bool) {
		end := cur.Start
		n, ok := FitSearch(func(n int) string {
			return text.Slice(end-n, end)
		}, end, fits)
		if !ok || n == 0 {
			return Page{}, false
		}
		return Page{Start: end - n, Length: n}, true
	}
}

// FirstPage measures the page starting at progress. ok is false when there
// is no text left at progress; the returned page is then empty.
// A zero-length page with ok true means the viewport is too small.
func FirstPage(text Text, progress int, fits Fits) (Page, bool) {
	start := clamp(progress, 0, text.Len())
	n, ok := FitSearch(func(n int) string {
		return text.Slice(start, start+n)
	}, text.Len()-start, fits)
	return Page{Start: start, Length: n}, ok
}
