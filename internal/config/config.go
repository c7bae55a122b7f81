package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the application settings LIVIA reads at startup. The
// configuration document itself is managed by package storage.
type Config struct {
	DocumentPath  string
	LogDir        string
	LogLevel      slog.Level
	FrameInterval time.Duration
}

const (
	defaultSettingsPath  = "~/.config/livia/settings.toml"
	defaultDocumentPath  = "~/.config/livia/config.toml"
	defaultLogDir        = "~/.local/share/livia/logs"
	defaultFrameInterval = 100 * time.Millisecond
	minFrameInterval     = 10 * time.Millisecond
)

// Defaults returns the settings used when no settings file exists.
func Defaults() Config {
	return Config{
		DocumentPath:  mustExpand(defaultDocumentPath),
		LogDir:        mustExpand(defaultLogDir),
		LogLevel:      slog.LevelInfo,
		FrameInterval: defaultFrameInterval,
	}
}

// Load reads the settings file at path (or the default location), falling
// back to defaults for a missing file and for empty fields.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path, defaultSettingsPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read settings: %w", err)
	}

	var raw struct {
		Document        string `toml:"document"`
		LogDir          string `toml:"log_dir"`
		LogLevel        string `toml:"log_level"`
		FrameIntervalMS int    `toml:"frame_interval_ms"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse settings: %w", err)
	}

	if doc := strings.TrimSpace(raw.Document); doc != "" {
		if cfg.DocumentPath, err = expandPath(doc); err != nil {
			return Config{}, fmt.Errorf("resolve document path: %w", err)
		}
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse settings: log_level: %w", err)
		}
	}
	if raw.FrameIntervalMS > 0 {
		cfg.FrameInterval = max(time.Duration(raw.FrameIntervalMS)*time.Millisecond, minFrameInterval)
	}
	return cfg, nil
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/livia.log")
	}
	return filepath.Join(c.LogDir, "livia.log")
}

// ResolvePath expands path, or fallback when path is blank.
func ResolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

// DocumentPath resolves a configuration document path, defaulting to
// ~/.config/livia/config.toml.
func DocumentPath(path string) (string, error) {
	return ResolvePath(path, defaultDocumentPath)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
