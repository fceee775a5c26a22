package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/plist-format/go-plist/debug"
	"github.com/signadot/plist-format/go-plist/format"

	"github.com/BurntSushi/toml"
)

// Settings are defaults read from a toml file. Command line flags win.
type Settings struct {
	Format   *format.Format
	Color    *bool
	SortKeys bool
	Indent   int
	LogLevel slog.Level
}

type fileConfig struct {
	Format   string `toml:"format"`
	Color    bool   `toml:"color"`
	SortKeys bool   `toml:"sort_keys"`
	Indent   int    `toml:"indent"`
	LogLevel string `toml:"log_level"`
}

func DefaultSettings() Settings {
	return Settings{Indent: 2, LogLevel: slog.LevelWarn}
}

func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("load settings: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		f, err := format.ParseFormat(strings.TrimSpace(raw.Format))
		if err != nil {
			return Settings{}, fmt.Errorf("parse format: %w", err)
		}
		s.Format = &f
	}
	if meta.IsDefined("color") {
		c := raw.Color
		s.Color = &c
	}
	if meta.IsDefined("sort_keys") {
		s.SortKeys = raw.SortKeys
	}
	if meta.IsDefined("indent") {
		if raw.Indent < 0 {
			return Settings{}, fmt.Errorf("indent %d is negative", raw.Indent)
		}
		s.Indent = raw.Indent
	}
	if meta.IsDefined("log_level") {
		lvl, err := debug.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Settings{}, err
		}
		s.LogLevel = lvl
	}
	return s, nil
}

// defaultConfigPath is $PLUTIL_CONFIG, else plutil/config.toml under the
// user config directory when that file exists.
func defaultConfigPath() string {
	if p := os.Getenv("PLUTIL_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "plutil", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
