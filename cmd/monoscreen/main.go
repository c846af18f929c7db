package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	configFile  string
	backendName string
	logFile     string
	themeName   string
	storyVer    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "monoscreen",
		Short: "Monospace story screen with scrollback",
		Long: `monoscreen - a terminal screen for text adventures

Lays story text out in an upper and a lower window, wraps paragraphs to the
terminal width, pauses at a [More] prompt and lets the reader page back
through everything printed so far.`,
		Example: `  # Play the built-in demonstration
  monoscreen

  # Use the tcell backend with a version 3 status line
  monoscreen --backend tcell --story-version 3

  # Replay a tape and print the final screen
  monoscreen play demo.tape --width 60 --height 20

  # Edit configuration
  monoscreen config edit`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file (default: user config)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Screen backend: ansi or tcell")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Colour theme from the bubbletint registry")
	rootCmd.PersistentFlags().IntVar(&storyVer, "story-version", 0, "Story file version (1-8)")

	rootCmd.AddCommand(newPlayCmd(), newConfigCmd(), newKeysCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
