// Package terminal restores the controlling terminal on exit.
package terminal

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
)

// ResetTerminal sends escape sequences to reset the terminal to a clean state.
// This should be called when exiting the application to restore the terminal.
func ResetTerminal(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	_, _ = io.WriteString(w, ansi.ResetStyle)
	// Show cursor
	_, _ = io.WriteString(w, "\x1b[?25h")
	_, _ = io.WriteString(w, ansi.ResetMode(ansi.ModeAltScreen))
	// Ensure clean line ending
	_, _ = io.WriteString(w, "\r\n")
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
}
