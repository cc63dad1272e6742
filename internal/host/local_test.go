package host

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/justyntemme/sneaky-t/internal/config"
	"github.com/justyntemme/sneaky-t/internal/library"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

func newTestLocal(t *testing.T) (*Local, *Invoker) {
	t.Helper()
	home := t.TempDir()

	store, err := library.NewStore(filepath.Join(home, library.DirName), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	cfg, err := config.NewManager(config.FilePath(home), nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	inv := NewInvoker(nil)
	t.Cleanup(inv.Close)
	return NewLocal(store, cfg, inv, nil), inv
}

func TestLocal_Commands(t *testing.T) {
	h, _ := newTestLocal(t)
	ctx := context.Background()

	info, err := h.GetFirstReaderBookInfo(ctx)
	if err != nil {
		t.Fatalf("GetFirstReaderBookInfo failed: %v", err)
	}
	if info == nil || info.Title != library.SampleTitle {
		t.Fatalf("expected the sample book, got %+v", info)
	}

	appearance, err := h.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if appearance.TextSize != config.DefaultTextSize {
		t.Errorf("expected default text size, got %d", appearance.TextSize)
	}

	// fire-and-forget writes are visible to the next queued read
	h.UpdateProgress(models.ProgressUpdate{Title: library.SampleTitle, Progress: 10})
	h.UpdateProgress(models.ProgressUpdate{Title: library.SampleTitle, Progress: 25})

	info, err = h.GetFirstReaderBookInfo(ctx)
	if err != nil {
		t.Fatalf("GetFirstReaderBookInfo failed: %v", err)
	}
	if info.Progress != 25 {
		t.Errorf("expected latest progress 25, got %d", info.Progress)
	}
}

func TestLocal_UpdateProgressUnknownBook(t *testing.T) {
	h, _ := newTestLocal(t)

	// logged, not surfaced; later commands still run
	h.UpdateProgress(models.ProgressUpdate{Title: "missing", Progress: 3})
	if _, err := h.GetConfig(context.Background()); err != nil {
		t.Errorf("expected queue to keep running, got %v", err)
	}
}

func TestLocal_UpdateProgressAfterClose(t *testing.T) {
	h, inv := newTestLocal(t)
	inv.Close()

	// must not panic or block
	h.UpdateProgress(models.ProgressUpdate{Title: library.SampleTitle, Progress: 3})
}

func TestConfigEvents(t *testing.T) {
	base := config.DefaultConfig()

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   []any
	}{
		{"no change", func(c *config.Config) {}, nil},
		{"size", func(c *config.Config) { c.Appearance.TextSize = 30 }, []any{TextSizeChangedMsg{Size: 30}}},
		{"colour", func(c *config.Config) { c.Appearance.TextColor = "#fff" }, []any{TextColorChangedMsg{Color: "#fff"}}},
		{"theme and size", func(c *config.Config) {
			c.Appearance.Theme = "nord"
			c.Appearance.TextSize = 10
		}, []any{TextSizeChangedMsg{Size: 10}, ThemeChangedMsg{Theme: "nord"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := *base
			tt.mutate(&cur)
			got := ConfigEvents(base, &cur)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d: expected %#v, got %#v", i, tt.want[i], got[i])
				}
			}
		})
	}

	if got := ConfigEvents(nil, base); len(got) != 0 {
		t.Errorf("expected no events without a previous config, got %v", got)
	}
}
