package reader

import "errors"

var (
	// ErrNotLoaded is returned when navigating before a book is open
	ErrNotLoaded = errors.New("book content not initialized")
	// ErrViewportTooSmall is returned when the next or previous page would
	// not hold a single character
	ErrViewportTooSmall = errors.New("viewport too small for a single character")
)
