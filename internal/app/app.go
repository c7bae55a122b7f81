package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/livia/internal/analyzer"
	"github.com/five82/livia/internal/analyzer/builtin"
	"github.com/five82/livia/internal/config"
	"github.com/five82/livia/internal/keybind"
	"github.com/five82/livia/internal/pipeline"
	"github.com/five82/livia/internal/prefs"
	"github.com/five82/livia/internal/status"
	"github.com/five82/livia/internal/storage"
	"github.com/five82/livia/internal/ui"
)

// Options configure the LIVIA application.
type Options struct {
	SettingsPath string        // empty uses ~/.config/livia/settings.toml
	DocumentPath string        // overrides the document path from the settings
	PrefsPath    string        // empty uses ~/.config/livia/prefs.toml
	Input        string        // overrides the last opened input
	PollEvery    time.Duration // zero uses the default
}

// Run boots LIVIA and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.SettingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if opts.DocumentPath != "" {
		if cfg.DocumentPath, err = config.DocumentPath(opts.DocumentPath); err != nil {
			return fmt.Errorf("resolve document path: %w", err)
		}
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	registry, err := analyzer.NewRegistry(builtin.Types()...)
	if err != nil {
		return fmt.Errorf("register analyzers: %w", err)
	}

	proc := pipeline.New(pipeline.WithLogger(logger))

	input := opts.Input
	if input == "" {
		input = userPrefs.LastInput
	}
	livia := status.New(proc, registry, status.WithLogger(logger), status.WithInput(input))

	store := storage.New(livia, registry, analyzer.NewConverters(),
		storage.WithTarget(cfg.DocumentPath),
		storage.WithLogger(logger),
	)
	if err := store.Load(); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if n := len(store.Problems()); n > 0 {
		livia.Display.StatusMessage.Set(fmt.Sprintf("%d configuration problem(s), see %s", n, cfg.LogPath()))
	}
	store.EnableAutoSave()
	defer store.DisableAutoSave()

	router := ui.NewKeyRouter()
	queue := ui.NewQueue(0)
	manager := keybind.NewManager(router)
	defer manager.Attach(livia.Shortcuts).Unsubscribe()

	logger.Info("livia starting",
		"document", cfg.DocumentPath,
		"input", input,
		"live_configurations", len(livia.FrameProcessing.Configurations(status.KindLive)),
		"static_configurations", len(livia.FrameProcessing.Configurations(status.KindStatic)),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go proc.Run(ctx)

	f := newFeeder(ctx, proc, queue, livia.Display, cfg.FrameInterval, logger)
	defer f.Watch(livia.FrameProcessing).Unsubscribe()
	defer f.Stop()

	model := ui.New(ui.Options{
		Context:   ctx,
		Status:    livia,
		Manager:   manager,
		Router:    router,
		Queue:     queue,
		Frames:    proc.LastFrame,
		Logger:    logger,
		LogPath:   cfg.LogPath(),
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		ShowHelp:  userPrefs.ShowHelp,
	})

	StartPoller(ctx, queue, proc, livia.Display, model.SetStats, opts.PollEvery)

	if err := ui.Run(model); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openLog opens the log file under the configured log directory. The
// terminal belongs to the UI, so nothing is logged to stderr.
func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(file, cfg.LogLevel), func() { _ = file.Close() }, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
