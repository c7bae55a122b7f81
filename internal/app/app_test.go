package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/livia/internal/config"
)

func TestOpenLog_CreatesDirAndAppends(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs", "nested")
	cfg.LogLevel = slog.LevelWarn

	for _, msg := range []string{"first", "second"} {
		logger, closeLog, err := openLog(cfg)
		if err != nil {
			t.Fatalf("openLog returned error: %v", err)
		}
		logger.Info("dropped below level")
		logger.Warn(msg)
		closeLog()
	}

	data, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "dropped below level") {
		t.Fatal("info record written at warn level")
	}
	if !strings.Contains(text, "msg=first") || !strings.Contains(text, "msg=second") {
		t.Fatalf("log = %q, want both warnings", text)
	}
}
