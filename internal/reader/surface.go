package reader

import (
	"context"
	"strings"

	"github.com/justyntemme/sneaky-t/pkg/models"
)

// Surface displays a page as a list of paragraphs.
type Surface interface {
	SetParagraphs(paragraphs []string)
}

// DryRun is an off-screen Surface with the same geometry and text style as
// the visible one. Overflows reports whether the last paragraphs set on it
// exceed the viewport.
type DryRun interface {
	Surface
	Overflows() bool
}

// Styler is implemented by surfaces that draw with the configured appearance.
type Styler interface {
	SetTextSize(size int)
	SetTextColor(color string)
}

// Sizer is implemented by surfaces whose viewport follows the terminal.
type Sizer interface {
	SetSize(width, height int)
}

// Host is the command surface the reader talks to.
type Host interface {
	GetFirstReaderBookInfo(ctx context.Context) (*models.ReaderBookInfo, error)
	GetConfig(ctx context.Context) (models.Appearance, error)
	// UpdateProgress is fire-and-forget; calls are applied in order.
	UpdateProgress(update models.ProgressUpdate)
}

// Fetch asks the host for the book to open and the appearance to draw it
// with. info is nil when the library is empty.
func Fetch(ctx context.Context, host Host) (info *models.ReaderBookInfo, appearance models.Appearance, err error) {
	info, err = host.GetFirstReaderBookInfo(ctx)
	if err != nil {
		return nil, appearance, err
	}
	appearance, err = host.GetConfig(ctx)
	if err != nil {
		return nil, appearance, err
	}
	return info, appearance, nil
}

// Paragraphs splits text on line breaks, dropping empty lines.
func Paragraphs(text string) []string {
	lines := strings.Split(text, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}
