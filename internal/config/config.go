// Package config loads and watches the monoscreen configuration file.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/monoscreen/internal/screen"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "config",
		Level:           log.WarnLevel,
	})
}

// SetLogLevel sets the logging level for the config package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// SetLogOutput redirects the package logger, typically to the log file
// while the screen is owned by a backend.
func SetLogOutput(l *log.Logger) {
	if l != nil {
		logger = l.WithPrefix("config")
	}
}

// Backend names accepted in [runtime].
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Config is the user configuration.
type Config struct {
	Layout     LayoutConfig     `toml:"layout"`
	Appearance AppearanceConfig `toml:"appearance"`
	Runtime    RuntimeConfig    `toml:"runtime"`
}

// LayoutConfig controls how text is laid out in the lower window.
type LayoutConfig struct {
	LeftMargin        int  `toml:"left_margin"`
	RightMargin       int  `toml:"right_margin"`
	Hyphenation       bool `toml:"hyphenation"`
	DisableMorePrompt bool `toml:"disable_more_prompt"`
}

// AppearanceConfig controls colours.
type AppearanceConfig struct {
	Color      bool   `toml:"color"`
	Theme      string `toml:"theme"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// RuntimeConfig selects the backend and the host defaults.
type RuntimeConfig struct {
	Backend     string `toml:"backend"`
	Version     int    `toml:"version"`
	HistorySize int    `toml:"history_size"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	LocaleFile  string `toml:"locale_file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Hyphenation: true,
		},
		Appearance: AppearanceConfig{
			Color:      true,
			Foreground: "default",
			Background: "default",
		},
		Runtime: RuntimeConfig{
			Backend:     BackendANSI,
			Version:     5,
			HistorySize: 10000,
			LogLevel:    "warn",
		},
	}
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Layout.LeftMargin < 0 {
		errs = append(errs, fmt.Errorf("layout.left_margin must not be negative, got %d", c.Layout.LeftMargin))
	}
	if c.Layout.RightMargin < 0 {
		errs = append(errs, fmt.Errorf("layout.right_margin must not be negative, got %d", c.Layout.RightMargin))
	}
	switch c.Runtime.Backend {
	case BackendANSI, BackendTcell:
	default:
		errs = append(errs, fmt.Errorf("runtime.backend must be %q or %q, got %q",
			BackendANSI, BackendTcell, c.Runtime.Backend))
	}
	if c.Runtime.Version < 1 || c.Runtime.Version > 8 {
		errs = append(errs, fmt.Errorf("runtime.version must be between 1 and 8, got %d", c.Runtime.Version))
	}
	if c.Runtime.HistorySize < 1 {
		errs = append(errs, fmt.Errorf("runtime.history_size must be positive, got %d", c.Runtime.HistorySize))
	}
	if _, err := log.ParseLevel(c.Runtime.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("runtime.log_level: %w", err))
	}
	for name, v := range map[string]string{
		"appearance.foreground": c.Appearance.Foreground,
		"appearance.background": c.Appearance.Background,
	} {
		if _, err := style.ParseColour(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// EngineSetting is one key/value pair in the engine's configuration syntax.
type EngineSetting struct {
	Key   string
	Value string
}

// EngineSettings translates the configuration into engine options, in the
// order they should be applied.
func (c *Config) EngineSettings() []EngineSetting {
	return []EngineSetting{
		{screen.KeyLeftMargin, strconv.Itoa(c.Layout.LeftMargin)},
		{screen.KeyRightMargin, strconv.Itoa(c.Layout.RightMargin)},
		{screen.KeyDisableHyphenation, strconv.FormatBool(!c.Layout.Hyphenation)},
		{screen.KeyDisableColor, strconv.FormatBool(!c.Appearance.Color)},
		{screen.KeyDisableMorePrompt, strconv.FormatBool(c.Layout.DisableMorePrompt)},
	}
}

// GetConfigPath returns the path of the user configuration file.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("monoscreen", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the user configuration, writing the defaults on first
// run.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteDefault(path); err != nil {
			return nil, err
		}
		logger.Info("wrote default configuration", "path", path)
	}
	return Load(path)
}

// Load reads the configuration at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as a commented TOML document.
func Marshal(cfg *Config, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# monoscreen configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# [layout] margins apply to the lower window and are picked up live.\n")
	sb.WriteString("# [runtime] backend is \"ansi\" or \"tcell\".\n")
	if path != "" {
		sb.WriteString("#\n# Configuration location: " + path + "\n")
	}
	sb.WriteString("\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := Marshal(DefaultConfig(), path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// debounce absorbs the burst of events editors produce on save.
const debounce = 100 * time.Millisecond

// Watch reloads the configuration whenever the file at path changes and
// hands every valid result to onChange. Invalid files are logged and
// skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "err", err)
		case <-timer:
			timer = nil
			cfg, err := Load(path)
			if err != nil {
				logger.Warn("ignoring config change", "err", err)
				continue
			}
			logger.Debug("config reloaded", "path", path)
			onChange(cfg)
		}
	}
}
