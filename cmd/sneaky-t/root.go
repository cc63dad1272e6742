package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/justyntemme/sneaky-t/internal/config"
	"github.com/justyntemme/sneaky-t/internal/host"
	"github.com/justyntemme/sneaky-t/internal/library"
	"github.com/justyntemme/sneaky-t/internal/ui"
	"github.com/justyntemme/sneaky-t/internal/version"
)

var (
	homeDir string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "sneaky-t",
	Short: "A small, discreet terminal reader for plain-text books",
	Long: `sneaky-t shows one page of a plain-text book at a time and remembers
where you stopped.

Books live in a local library. Add them with "sneaky-t library import",
switch between them with "sneaky-t library open"; a running reader picks
up the change immediately. Appearance settings are stored in config.json
in the data directory and are reloaded when the file is edited.

Examples:
  sneaky-t                              # Read the most recently opened book
  sneaky-t library import novel.txt     # Add a book
  sneaky-t --home /tmp/reader --debug   # Use another data directory`,
	Version:      version.GitRelease,
	SilenceUsage: true,
	RunE:         runReader,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "data directory (default: <user config dir>/sneaky-t)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&debug, "debug", false, "write debug records to the log file",
	)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(libraryCmd)
}

// env is what every command opens before doing its work
type env struct {
	home    string
	logger  *slog.Logger
	logFile io.Closer
	store   *library.Store
}

// setup resolves the data directory, starts logging to a file inside it and
// opens the library. The terminal belongs to the UI, so nothing is logged to
// stdout or stderr.
func setup() (*env, error) {
	home := homeDir
	if home == "" {
		var err error
		home, err = config.DefaultHome()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data directory: %w", err)
		}
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(config.LogPath(home), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := library.NewStore(filepath.Join(home, library.DirName), logger)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &env{home: home, logger: logger, logFile: f, store: store}, nil
}

func (e *env) Close() {
	e.logFile.Close()
}

func runReader(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	cfg, err := config.NewManager(config.FilePath(e.home), e.logger)
	if err != nil {
		return err
	}

	// Closed after the program exits so queued progress writes still land
	invoker := host.NewInvoker(e.logger)
	defer invoker.Close()

	h := host.NewLocal(e.store, cfg, invoker, e.logger)
	app := ui.NewApp(ctx, h, cfg, cfg.Get().Control, e.logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, stopWatching := context.WithCancel(ctx)
	defer stopWatching()
	h.Watch(watchCtx, func(msg any) { p.Send(msg) })

	e.logger.Info("reader started", "home", e.home, "version", version.GitRelease)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		e.logger.Error("reader stopped", "error", err)
		return fmt.Errorf("error running reader: %w", err)
	}
	e.logger.Info("reader stopped")
	return nil
}
