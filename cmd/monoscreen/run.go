package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/monoscreen/internal/app"
	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
	"github.com/Gaurav-Gosain/monoscreen/internal/config"
	"github.com/Gaurav-Gosain/monoscreen/internal/locale"
	"github.com/Gaurav-Gosain/monoscreen/internal/screen"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
	"github.com/Gaurav-Gosain/monoscreen/internal/terminal"
	"github.com/Gaurav-Gosain/monoscreen/internal/theme"
)

// loadConfig layers the configuration: defaults, then the file, then flags.
// The returned path is empty when no file should be watched.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		path = configFile
	} else {
		cfg, err = config.LoadUserConfig()
		if err != nil {
			log.Warn("Failed to load config, using defaults", "err", err)
			cfg = config.DefaultConfig()
		} else {
			path, _ = config.GetConfigPath()
		}
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Runtime.Backend = backendName
	}
	if flags.Changed("story-version") {
		cfg.Runtime.Version = storyVer
	}
	if flags.Changed("theme") {
		cfg.Appearance.Theme = themeName
	}
	if flags.Changed("log-file") {
		cfg.Runtime.LogFile = logFile
	}
	if debugMode {
		cfg.Runtime.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// setupLogging builds the logger every package writes to. While a backend
// owns the terminal, records go to the log file or nowhere.
func setupLogging(cfg *config.Config, screenOwned bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Runtime.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.Runtime.LogFile != "":
		f, err := os.OpenFile(cfg.Runtime.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case screenOwned:
		w = io.Discard
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	config.SetLogOutput(l)
	app.SetLogOutput(l)
	screen.SetLogOutput(l)
	config.SetLogLevel(level)
	app.SetLogLevel(level)
	screen.SetLogLevel(level)
	return l, closer, nil
}

// loadTranslator returns the catalog named in the configuration, or the
// built-in one.
func loadTranslator(cfg *config.Config) locale.Translator {
	if cfg.Runtime.LocaleFile == "" {
		return locale.Default()
	}
	c, err := locale.LoadFile(cfg.Runtime.LocaleFile)
	if err != nil {
		log.Warn("Failed to load locale, using built-in messages", "err", err)
		return locale.Default()
	}
	return c
}

// applyDefaultColours sets the configured default colours on backends that
// support them.
func applyDefaultColours(be backend.Backend, cfg *config.Config) {
	setter, ok := be.(interface{ SetDefaultColours(fg, bg style.Colour) })
	if !ok {
		return
	}
	fg, _ := style.ParseColour(cfg.Appearance.Foreground)
	bg, _ := style.ParseColour(cfg.Appearance.Background)
	if fg == style.Default && bg == style.Default {
		return
	}
	dfg, dbg := be.DefaultColours()
	if fg == style.Default {
		fg = dfg
	}
	if bg == style.Default {
		bg = dbg
	}
	setter.SetDefaultColours(fg, bg)
}

// openBackend opens the backend named in the configuration.
func openBackend(cfg *config.Config) (backend.Backend, error) {
	switch cfg.Runtime.Backend {
	case config.BackendTcell:
		return backend.NewTcell(nil)
	default:
		return backend.NewTerminal(backend.TerminalOptions{
			AltScreen: true,
			Palette:   theme.Resolve,
		})
	}
}

func runLocal(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		logger.Warn("theme", "err", err)
	}
	if path != "" {
		logger.Debug("configuration", "path", path)
	}

	be, err := openBackend(cfg)
	if err != nil {
		return err
	}
	applyDefaultColours(be, cfg)

	defer func() {
		if r := recover(); r != nil {
			be.Close("")
			terminal.ResetTerminal(os.Stdout)
			panic(r)
		}
	}()

	app.Version = version
	host, err := app.New(be, app.Options{
		Config:     cfg,
		ConfigPath: path,
		Translator: loadTranslator(cfg),
		Logger:     logger,
	})
	if err != nil {
		be.Close(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("session error: %w", err)
	}
	return nil
}
