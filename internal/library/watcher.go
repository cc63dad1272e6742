package library

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// settleDelay coalesces the burst of events a single save produces
const settleDelay = 100 * time.Millisecond

// Watch reports book switches made outside this process. onChange is called
// with the new current book whenever the most recently read title changes, or
// when the current book's content file is rewritten. Watch blocks until ctx
// is done.
func (s *Store) Watch(ctx context.Context, onChange func(*models.ReaderBookInfo)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	current := s.currentTitle()
	contentChanged := false
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			switch {
			case name == MetadataFileName:
			case name == current+bookExt:
				contentChanged = true
			default:
				continue
			}
			settle = time.After(settleDelay)

		case <-settle:
			settle = nil
			if err := s.Reload(); err != nil {
				s.logger.Error("failed to reload library", "error", err)
				continue
			}
			title := s.currentTitle()
			if title == current && !contentChanged {
				continue
			}
			current, contentChanged = title, false
			if title == "" {
				continue
			}

			info, err := s.ReaderBookInfo(title)
			if err != nil {
				s.logger.Error("failed to load switched book", "title", title, "error", err)
				continue
			}
			s.logger.Info("current book changed", "title", title)
			onChange(info)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("library watcher error", "error", err)
		}
	}
}

// currentTitle returns the most recently read title
func (s *Store) currentTitle() string {
	books := s.Books()
	if len(books) == 0 {
		return ""
	}
	return books[0].Title
}
