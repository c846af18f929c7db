package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title string
	// Condition is empty for keys available everywhere, "line" for keys
	// only handled while a line is read.
	Condition string
	Bindings  []Keybinding
}

// GetKeybindings returns the keys understood by the input routines, for the
// help table of the CLI.
func GetKeybindings() []KeybindingSection {
	return []KeybindingSection{
		{
			Title:     "LINE EDITING",
			Condition: "line",
			Bindings: []Keybinding{
				{"←/→", "Move cursor, scrolling the line at its ends"},
				{"Backspace", "Delete left of cursor"},
				{"Delete", "Delete under cursor"},
				{"Ctrl+A", "Start of line"},
				{"Ctrl+E", "End of line"},
				{"↑/↓", "Recall previous/next command"},
				{"Esc", "Abort the line when the host allows it"},
				{"Enter", "Submit"},
			},
		},
		{
			Title: "SCROLLBACK",
			Bindings: []Keybinding{
				{"PgUp", "Scroll back half a window"},
				{"PgDn", "Scroll forward half a window"},
				{"any other key", "Return to the live position"},
			},
		},
		{
			Title: "SCREEN",
			Bindings: []Keybinding{
				{"Ctrl+L", "Redraw the screen"},
				{"Ctrl+R", "Re-read the terminal size (line input)"},
			},
		},
	}
}

// GetPromptKeybindings returns the keys accepted at a prompt.
func GetPromptKeybindings(prompt string) []Keybinding {
	switch prompt {
	case "more":
		return []Keybinding{
			{"any key", "Show the next page"},
		}
	case "quit":
		return []Keybinding{
			{"any key", "Close the screen"},
		}
	default:
		return nil
	}
}
