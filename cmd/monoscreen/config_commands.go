package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/monoscreen/internal/config"
	"github.com/Gaurav-Gosain/monoscreen/internal/theme"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage monoscreen configuration",
		Long:  `Manage monoscreen configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration after the file and command-line flags are applied,
together with the engine settings it translates to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration file in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the monoscreen configuration file to default settings
This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configShowCmd, configEditCmd, configResetCmd)
	return configCmd
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "keys",
		Aliases: []string{"keybinds", "kb"},
		Short:   "List the keys the screen understands",
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeybindingsTable()
			return nil
		},
	}
}

// resolveConfigPath returns the --config path or the user config path.
func resolveConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("could not determine config path: %w", err)
	}
	return path, nil
}

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.CLITableKey()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
}

// showConfig prints the effective configuration and its engine settings.
func showConfig(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	settings := newTable("Setting", "Value").Rows(
		[]string{"layout.left_margin", strconv.Itoa(cfg.Layout.LeftMargin)},
		[]string{"layout.right_margin", strconv.Itoa(cfg.Layout.RightMargin)},
		[]string{"layout.hyphenation", strconv.FormatBool(cfg.Layout.Hyphenation)},
		[]string{"layout.disable_more_prompt", strconv.FormatBool(cfg.Layout.DisableMorePrompt)},
		[]string{"appearance.color", strconv.FormatBool(cfg.Appearance.Color)},
		[]string{"appearance.theme", cfg.Appearance.Theme},
		[]string{"appearance.foreground", cfg.Appearance.Foreground},
		[]string{"appearance.background", cfg.Appearance.Background},
		[]string{"runtime.backend", cfg.Runtime.Backend},
		[]string{"runtime.version", strconv.Itoa(cfg.Runtime.Version)},
		[]string{"runtime.history_size", strconv.Itoa(cfg.Runtime.HistorySize)},
		[]string{"runtime.log_file", cfg.Runtime.LogFile},
		[]string{"runtime.log_level", cfg.Runtime.LogLevel},
		[]string{"runtime.locale_file", cfg.Runtime.LocaleFile},
	)

	engine := newTable("Engine key", "Value")
	for _, kv := range cfg.EngineSettings() {
		engine.Row(kv.Key, kv.Value)
	}

	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())
	if path == "" {
		path = "(defaults)"
	}
	fmt.Println(dim.Render("Configuration: " + path))
	fmt.Println(settings.Render())
	fmt.Println(engine.Render())
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	if _, err := config.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")
		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteDefault(configPath); err != nil {
		return err
	}
	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: monoscreen config edit")
	return nil
}

// printKeybindingsTable prints the input keys, one table per section.
func printKeybindingsTable() {
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableBorder()).Render("monoscreen Keys"))
	fmt.Println()

	for _, section := range config.GetKeybindings() {
		t := newTable("Keys", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		title := section.Title
		if section.Condition == "line" {
			title += " (while a line is read)"
		}
		fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableKey()).Render(title))
		fmt.Println(t.Render())
		fmt.Println()
	}

	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim()).Italic(true)
	for _, prompt := range []string{"more", "quit"} {
		for _, b := range config.GetPromptKeybindings(prompt) {
			fmt.Println(dim.Render(fmt.Sprintf("At the %s prompt: %s to %s.", prompt, b.Key, strings.ToLower(b.Description))))
		}
	}
	fmt.Println()
}
