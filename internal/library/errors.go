package library

import "errors"

var (
	// ErrBookNotFound is returned when a title is not in the library.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookExists is returned when importing a title that is already present.
	ErrBookExists = errors.New("book already exists")

	// ErrInvalidTitle is returned for titles that cannot be used as file names.
	ErrInvalidTitle = errors.New("invalid book title")
)
