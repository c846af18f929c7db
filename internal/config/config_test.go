package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/monoscreen/internal/config"
	"github.com/Gaurav-Gosain/monoscreen/internal/screen"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if !cfg.Layout.Hyphenation {
		t.Error("Expected hyphenation to be enabled by default")
	}
	if cfg.Runtime.Backend != config.BackendANSI {
		t.Errorf("Expected ansi backend by default, got %q", cfg.Runtime.Backend)
	}
	if cfg.Runtime.HistorySize < 100 {
		t.Errorf("Expected history size >= 100, got %d", cfg.Runtime.HistorySize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative margin", func(c *config.Config) { c.Layout.LeftMargin = -1 }, "left_margin"},
		{"unknown backend", func(c *config.Config) { c.Runtime.Backend = "vt52" }, "runtime.backend"},
		{"version out of range", func(c *config.Config) { c.Runtime.Version = 9 }, "runtime.version"},
		{"empty history", func(c *config.Config) { c.Runtime.HistorySize = 0 }, "history_size"},
		{"bad log level", func(c *config.Config) { c.Runtime.LogLevel = "loud" }, "log_level"},
		{"bad colour", func(c *config.Config) { c.Appearance.Foreground = "mauve" }, "appearance.foreground"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

// =============================================================================
// Engine Settings Tests
// =============================================================================

func TestEngineSettingsApplyToSession(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout.LeftMargin = 2
	cfg.Layout.Hyphenation = false
	cfg.Layout.DisableMorePrompt = true

	s := screen.New(nil, screen.Options{})
	for _, kv := range cfg.EngineSettings() {
		if err := s.ParseConfig(kv.Key, kv.Value); err != nil {
			t.Fatalf("ParseConfig(%q, %q) failed: %v", kv.Key, kv.Value, err)
		}
	}

	tests := []struct {
		key      string
		expected string
	}{
		{screen.KeyLeftMargin, "2"},
		{screen.KeyRightMargin, "0"},
		{screen.KeyDisableHyphenation, "true"},
		{screen.KeyDisableColor, "false"},
		{screen.KeyDisableMorePrompt, "true"},
	}
	for _, tt := range tests {
		got, err := s.ConfigValue(tt.key)
		if err != nil {
			t.Fatalf("ConfigValue(%q) failed: %v", tt.key, err)
		}
		if got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.key, tt.expected, got)
		}
	}
}

// =============================================================================
// File Tests
// =============================================================================

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monoscreen", "config.toml")
	if err := config.WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# monoscreen configuration file") {
		t.Error("Expected header comment")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("Expected defaults after round trip, got %+v", cfg)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\nleft_margin = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Layout.LeftMargin != 4 {
		t.Errorf("Expected left margin 4, got %d", cfg.Layout.LeftMargin)
	}
	if !cfg.Layout.Hyphenation || cfg.Runtime.Version != 5 {
		t.Errorf("Expected untouched defaults, got %+v", cfg)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[runtime]\nbackend = \"teletype\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("Expected invalid backend to be rejected")
	}
}

func TestWatchReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteDefault(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- config.Watch(ctx, path, func(c *config.Config) {
			select {
			case changes <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[layout]\nright_margin = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		if c.Layout.RightMargin != 3 {
			t.Errorf("Expected right margin 3, got %d", c.Layout.RightMargin)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for config change")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

// =============================================================================
// Keybinding Tests
// =============================================================================

func TestGetKeybindings(t *testing.T) {
	sections := config.GetKeybindings()
	if len(sections) == 0 {
		t.Fatal("Expected keybinding sections")
	}
	for _, section := range sections {
		if section.Title == "" {
			t.Error("Expected every section to have a title")
		}
		if len(section.Bindings) == 0 {
			t.Errorf("Section %q has no bindings", section.Title)
		}
	}
	if len(config.GetPromptKeybindings("more")) == 0 {
		t.Error("Expected more prompt bindings")
	}
	if config.GetPromptKeybindings("unknown") != nil {
		t.Error("Expected nil for unknown prompt")
	}
}
