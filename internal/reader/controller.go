package reader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/justyntemme/sneaky-t/internal/paging"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// Status describes what the reading pane currently shows
type Status int

const (
	// StatusEmpty means no book is open or nothing is left to read
	StatusEmpty Status = iota
	// StatusReady means a page is on screen
	StatusReady
	// StatusTooSmall means the viewport cannot hold a single character
	StatusTooSmall
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusTooSmall:
		return "too small"
	default:
		return "empty"
	}
}

// Controller paginates the current book onto a surface and keeps the host's
// reading progress in step with the page on screen.
//
// A Controller is not safe for concurrent use. The UI drives it from its
// update loop and performs host reads in commands, passing the results to
// Open.
type Controller struct {
	host   Host
	view   Surface
	dry    DryRun
	logger *slog.Logger

	loaded     bool
	title      string
	text       paging.Text
	progress   int
	appearance models.Appearance
	width      int
	height     int

	pager  *paging.Pager
	status Status
}

// New creates a controller drawing on view and measuring with dry
func New(host Host, view Surface, dry DryRun, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		host:   host,
		view:   view,
		dry:    dry,
		logger: logger.With("component", "reader"),
	}
}

// Load fetches the current book and appearance from the host and shows the
// page at the saved progress. On failure the previous state is kept.
func (c *Controller) Load(ctx context.Context) error {
	info, appearance, err := Fetch(ctx, c.host)
	if err != nil {
		c.logger.Error("failed to load book", "error", err)
		return fmt.Errorf("load book: %w", err)
	}
	c.Open(info, appearance)
	return nil
}

// Open applies a fetched book and appearance. A nil info closes the book.
func (c *Controller) Open(info *models.ReaderBookInfo, appearance models.Appearance) {
	c.appearance = appearance
	c.style()

	if info == nil {
		c.logger.Info("library is empty")
		c.loaded = false
		c.title = ""
		c.text = paging.Text{}
		c.progress = 0
		c.rebuild()
		return
	}
	c.SetBook(*info)
}

// SetBook replaces the book and progress and paginates from scratch
func (c *Controller) SetBook(info models.ReaderBookInfo) {
	c.loaded = true
	c.title = info.Title
	c.text = paging.NewText(info.Content)
	c.progress = info.Progress
	c.logger.Debug("book set", "title", c.title, "length", c.text.Len(), "progress", c.progress)
	c.rebuild()
}

// Refresh paginates again at the current progress
func (c *Controller) Refresh() {
	c.rebuild()
}

// SetTextSize changes the text size. Every measured page is discarded.
func (c *Controller) SetTextSize(size int) {
	if size == c.appearance.TextSize {
		return
	}
	c.appearance.TextSize = size
	c.style()
	c.rebuild()
}

// SetTextColor changes the text colour. Layout is unaffected, so pages are
// kept.
func (c *Controller) SetTextColor(color string) {
	c.appearance.TextColor = color
	c.style()
}

// Resize changes the viewport. Every measured page is discarded.
func (c *Controller) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	for _, s := range []Surface{c.view, c.dry} {
		if sz, ok := s.(Sizer); ok {
			sz.SetSize(width, height)
		}
	}
	c.rebuild()
}

// NextPage shows the following page. At the end of the book it does nothing.
func (c *Controller) NextPage() error {
	if !c.loaded {
		c.logger.Warn("book content not initialized")
		return ErrNotLoaded
	}
	if c.pager == nil {
		return nil
	}
	page, ok := c.pager.Next()
	if !ok {
		// the page on screen stays, so status is left alone
		if c.pager.Current().End() < c.text.Len() {
			return ErrViewportTooSmall
		}
		return nil
	}
	c.show(page)
	return nil
}

// PrevPage shows the preceding page. At the start of the book it does
// nothing.
func (c *Controller) PrevPage() error {
	if !c.loaded {
		c.logger.Warn("book content not initialized")
		return ErrNotLoaded
	}
	if c.pager == nil {
		return nil
	}
	page, ok := c.pager.Prev()
	if !ok {
		if c.pager.Current().Start > 0 {
			return ErrViewportTooSmall
		}
		return nil
	}
	c.show(page)
	return nil
}

// Title returns the open book's title
func (c *Controller) Title() string {
	return c.title
}

// Progress returns the offset of the first character on screen
func (c *Controller) Progress() int {
	return c.progress
}

// Page returns the page on screen. ok is false when there is none.
func (c *Controller) Page() (paging.Page, bool) {
	if c.pager == nil {
		return paging.Page{}, false
	}
	return c.pager.Current(), true
}

// Percent returns how much of the book has been read, up to the end of the
// page on screen, in [0, 1].
func (c *Controller) Percent() float64 {
	if c.text.Len() == 0 {
		return 0
	}
	end := c.progress
	if page, ok := c.Page(); ok {
		end = page.End()
	}
	return float64(end) / float64(c.text.Len())
}

// Status reports what the pane shows
func (c *Controller) Status() Status {
	return c.status
}

// Appearance returns the appearance last applied
func (c *Controller) Appearance() models.Appearance {
	return c.appearance
}

// Loaded reports whether a book is open
func (c *Controller) Loaded() bool {
	return c.loaded
}

func (c *Controller) style() {
	for _, s := range []Surface{c.view, c.dry} {
		if st, ok := s.(Styler); ok {
			st.SetTextSize(c.appearance.TextSize)
			st.SetTextColor(c.appearance.TextColor)
		}
	}
}

// rebuild measures the page at the current progress and starts a new pager
// from it.
func (c *Controller) rebuild() {
	c.pager = nil
	if !c.loaded {
		c.status = StatusEmpty
		c.view.SetParagraphs(nil)
		return
	}

	first, ok := paging.FirstPage(c.text, c.progress, c.fits)
	if !ok {
		c.status = StatusEmpty
		c.view.SetParagraphs(nil)
		if c.text.Len() > 0 {
			// past the last page: keep an empty page at the end so the
			// reader can still page back
			c.pager = paging.NewPager(first, c.nextCalc(), c.prevCalc())
		}
		return
	}

	c.pager = paging.NewPager(first, c.nextCalc(), c.prevCalc())
	c.render(first)
	c.logger.Debug("paginated", "title", c.title, "start", first.Start, "length", first.Length)
}

// show renders page after a move and reports the new progress
func (c *Controller) show(page paging.Page) {
	c.render(page)
	c.progress = page.Start
	c.host.UpdateProgress(models.ProgressUpdate{Title: c.title, Progress: c.progress})
}

func (c *Controller) render(page paging.Page) {
	c.status = StatusReady
	if page.Length == 0 {
		c.status = StatusTooSmall
	}
	c.view.SetParagraphs(Paragraphs(c.text.Page(page)))
}

func (c *Controller) nextCalc() paging.Calculator {
	return paging.NextCalculator(c.text, c.fits)
}

func (c *Controller) prevCalc() paging.Calculator {
	return paging.PrevCalculator(c.text, c.fits)
}

func (c *Controller) fits(text string) bool {
	c.dry.SetParagraphs(Paragraphs(text))
	return !c.dry.Overflows()
}
