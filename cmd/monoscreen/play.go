package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/monoscreen/internal/app"
	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
	"github.com/Gaurav-Gosain/monoscreen/internal/tape"
	"github.com/Gaurav-Gosain/monoscreen/internal/theme"
)

func newPlayCmd() *cobra.Command {
	var (
		width  int
		height int
		plain  bool
	)
	cmd := &cobra.Command{
		Use:   "play <tape>",
		Short: "Replay a tape against an in-memory screen",
		Long: `Replay a tape file against an in-memory screen and print the final frame.

A tape is a list of commands, one per line:

  Type "look"        Enter        Sleep 500ms
  PageUp             Ctrl+E       Resize 60 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return playTape(cmd, args[0], width, height, plain)
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Screen width in columns")
	cmd.Flags().IntVar(&height, "height", 24, "Screen height in rows")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the frame without styles or border")
	return cmd
}

func playTape(cmd *cobra.Command, path string, width, height int, plain bool) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid screen size %dx%d", width, height)
	}
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
		logger.Warn("theme", "err", err)
	}

	commands, err := tape.ReadFile(path)
	if err != nil {
		return err
	}

	m := backend.NewMemory(height, width)
	m.SetPalette(theme.Resolve)
	applyDefaultColours(m, cfg)
	tape.Feed(m, commands)

	app.Version = version
	host, err := app.New(m, app.Options{
		Config:     cfg,
		Translator: loadTranslator(cfg),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	// The tape is the only input, so the host ends when it runs out.
	if err := host.Run(context.Background()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("session error: %w", err)
	}
	if n := m.Pending(); n > 0 {
		logger.Info("tape outlived the session", "events", n)
	}

	if plain {
		fmt.Println(strings.Join(m.Rows(), "\n"))
		return nil
	}

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.FrameBorder()).
		Render(m.Render(profile.Convert))
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.FrameTitle()).
		Render(fmt.Sprintf("%s  %dx%d", path, width, height))

	fmt.Println(title)
	fmt.Println(frame)
	return nil
}
