package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/livia/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	settingsPath := flag.String("settings", "", "override settings path (optional)")
	documentPath := flag.String("config", "", "override configuration document path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	input := flag.String("input", "", "image file to open, or pattern: for the test pattern (optional)")
	pollMillis := flag.Int("poll", 0, "stats refresh interval in milliseconds (optional, defaults to 500ms)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		SettingsPath: *settingsPath,
		DocumentPath: *documentPath,
		PrefsPath:    *prefsPath,
		Input:        *input,
	}
	if poll := *pollMillis; poll > 0 {
		opts.PollEvery = time.Duration(poll) * time.Millisecond
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "livia: %v\n", err)
		return 1
	}
	return 0
}
