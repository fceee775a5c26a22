package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/plist-format/go-plist/format"

	"github.com/google/go-cmp/cmp"
)

func boolPtr(b bool) *bool { return &b }

func fmtPtr(f format.Format) *format.Format { return &f }

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		want    Settings
		wantErr bool
	}{
		{"empty", "", DefaultSettings(), false},
		{
			"all",
			"format = \"json\"\ncolor = false\nsort_keys = true\nindent = 4\nlog_level = \"debug\"\n",
			Settings{Format: fmtPtr(format.JSONFormat), Color: boolPtr(false), SortKeys: true, Indent: 4, LogLevel: slog.LevelDebug},
			false,
		},
		{
			"partial",
			"format = \"b\"\n",
			Settings{Format: fmtPtr(format.BinaryFormat), Indent: 2, LogLevel: slog.LevelWarn},
			false,
		},
		{"bad format", "format = \"plain\"\n", Settings{}, true},
		{"bad level", "log_level = \"loud\"\n", Settings{}, true},
		{"negative indent", "indent = -1\n", Settings{}, true},
		{"unknown key", "colour = true\n", Settings{}, true},
		{"syntax", "format = \n", Settings{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.toml), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := LoadSettings(path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("no error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("settings mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("PLUTIL_CONFIG", "/tmp/x.toml")
	if got := defaultConfigPath(); got != "/tmp/x.toml" {
		t.Errorf("got %q", got)
	}
	t.Setenv("PLUTIL_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	if got := defaultConfigPath(); got != "" {
		t.Errorf("got %q without a config file", got)
	}
}

func TestEncOpts(t *testing.T) {
	var buf bytes.Buffer
	cfg := &MainConfig{}
	if n := len(cfg.encOpts(&buf, format.PrettyFormat)); n != 3 {
		t.Errorf("non-terminal pretty: %d options", n)
	}
	cfg.Settings.Color = boolPtr(true)
	if n := len(cfg.encOpts(&buf, format.PrettyFormat)); n != 4 {
		t.Errorf("settings color: %d options", n)
	}
	if n := len(cfg.encOpts(&buf, format.XMLFormat)); n != 3 {
		t.Errorf("xml has colors: %d options", n)
	}
	cfg.OutFormat = fmtPtr(format.JSONFormat)
	if f := cfg.outFormat(format.PrettyFormat); f != format.JSONFormat {
		t.Errorf("outFormat = %s", f)
	}
}
