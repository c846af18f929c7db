package tape

import (
	"fmt"
	"strings"
	"time"
)

// CommandType represents the type of a tape command
type CommandType string

const (
	// Input
	CommandType_Type      CommandType = "Type"
	CommandType_Sleep     CommandType = "Sleep"
	CommandType_Enter     CommandType = "Enter"
	CommandType_Space     CommandType = "Space"
	CommandType_Backspace CommandType = "Backspace"
	CommandType_Delete    CommandType = "Delete"
	CommandType_Escape    CommandType = "Escape"

	// Navigation keys
	CommandType_Up       CommandType = "Up"
	CommandType_Down     CommandType = "Down"
	CommandType_Left     CommandType = "Left"
	CommandType_Right    CommandType = "Right"
	CommandType_PageUp   CommandType = "PageUp"
	CommandType_PageDown CommandType = "PageDown"

	// Key combinations (Ctrl+X)
	CommandType_KeyCombo CommandType = "KeyCombo"

	// Terminal size change
	CommandType_Resize CommandType = "Resize"
)

// Command represents a parsed tape command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Count  int           // Repeat count, at least 1
	Delay  time.Duration // Sleep length, or the pause between typed characters
	Line   int           // Source line number
	Column int           // Source column number
	Raw    string        // Original raw command text
}

// String returns a string representation of the command
func (c *Command) String() string {
	var s string
	switch c.Type {
	case CommandType_Type:
		s = fmt.Sprintf("Type %q", strings.Join(c.Args, ""))
	case CommandType_Sleep:
		s = fmt.Sprintf("Sleep %v", c.Delay)
	case CommandType_KeyCombo:
		s = strings.Join(c.Args, "")
	case CommandType_Resize:
		s = fmt.Sprintf("Resize %s", strings.Join(c.Args, " "))
	default:
		s = string(c.Type)
	}
	if c.Count > 1 {
		s += fmt.Sprintf(" %d", c.Count)
	}
	return s
}

// ParseDuration parses duration strings like "500ms", "1s", "2.5s"
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// KeyCombo represents a Ctrl key combination (e.g., Ctrl+A)
type KeyCombo struct {
	Key byte // Upper-case letter
}

// ParseKeyCombo parses strings like "Ctrl+A" or "ctrl+l".
func ParseKeyCombo(s string) (KeyCombo, error) {
	mod, key, ok := strings.Cut(s, "+")
	if !ok || !strings.EqualFold(mod, "ctrl") || len(key) != 1 {
		return KeyCombo{}, fmt.Errorf("invalid key combination %q", s)
	}
	k := key[0]
	if k >= 'a' && k <= 'z' {
		k -= 'a' - 'A'
	}
	if k < 'A' || k > 'Z' {
		return KeyCombo{}, fmt.Errorf("invalid key combination %q", s)
	}
	return KeyCombo{Key: k}, nil
}

// String returns a string representation of the key combo
func (kc KeyCombo) String() string {
	return "Ctrl+" + string(kc.Key)
}

// Rune returns the control character the combination produces.
func (kc KeyCombo) Rune() rune {
	return rune(kc.Key-'A') + 1
}
