package host

import (
	"context"
	"log/slog"

	"github.com/justyntemme/sneaky-t/internal/config"
	"github.com/justyntemme/sneaky-t/internal/library"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// Command names, as they appear in logs
const (
	CmdGetFirstReaderBookInfo = "get_first_reader_book_info"
	CmdGetConfig              = "get_config"
	CmdUpdateProgress         = "update_progress"
)

// Local serves host commands from the on-disk library and config file.
// Every command goes through the same Invoker, so they run in call order.
type Local struct {
	store   *library.Store
	config  *config.Manager
	invoker *Invoker
	logger  *slog.Logger
}

// NewLocal creates a host over store and cfg
func NewLocal(store *library.Store, cfg *config.Manager, invoker *Invoker, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		store:   store,
		config:  cfg,
		invoker: invoker,
		logger:  logger.With("component", "host"),
	}
}

// GetFirstReaderBookInfo returns the book to open at startup, or nil when
// the library is empty.
func (h *Local) GetFirstReaderBookInfo(ctx context.Context) (*models.ReaderBookInfo, error) {
	return Call(ctx, h.invoker, CmdGetFirstReaderBookInfo, func(context.Context) (*models.ReaderBookInfo, error) {
		return h.store.FirstReaderBook()
	})
}

// GetConfig returns the current appearance settings
func (h *Local) GetConfig(ctx context.Context) (models.Appearance, error) {
	return Call(ctx, h.invoker, CmdGetConfig, func(context.Context) (models.Appearance, error) {
		return h.config.Appearance(), nil
	})
}

// UpdateProgress saves the reading offset without waiting for the write.
// Failures are logged only.
func (h *Local) UpdateProgress(update models.ProgressUpdate) {
	err := h.invoker.Go(CmdUpdateProgress, func(context.Context) error {
		return h.store.UpdateProgress(update.Title, update.Progress)
	})
	if err != nil {
		h.logger.Warn("progress not saved", "title", update.Title, "progress", update.Progress, "error", err)
	}
}
