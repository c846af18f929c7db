package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StatusMode selects the right-hand field of the status line.
type StatusMode int

const (
	// StatusScore shows "Score: a  Turns: b".
	StatusScore StatusMode = iota
	// StatusTime shows "HH:MM" built from a and b.
	StatusTime
)

type statusLine struct {
	shown       bool
	description string
	mode        StatusMode
	a, b        int
}

// ShowStatus paints the status line: the description left-aligned after one
// padding column and the numeric field right-aligned before one. When space
// runs out the description is truncated so that exactly one space separates
// it from the numeric field. Without a status window it does nothing.
func (s *Session) ShowStatus(description string, mode StatusMode, a, b int) {
	if !s.open || !s.set.HasStatus() {
		return
	}
	s.status = statusLine{shown: true, description: description, mode: mode, a: a, b: b}

	prev := s.active
	id := s.set.Status
	w := s.set.Get(id)

	s.switchTo(id)
	s.eraseWindow(id)
	w.CursorY, w.CursorX = 1, 1
	s.gotoCursor(w)
	s.write(" ")

	var right string
	var descSpace, rightColumn int
	switch mode {
	case StatusTime:
		right = fmt.Sprintf("%02d:%02d", a, b)
		descSpace = w.Width - 8
		rightColumn = w.Width - 5
	default:
		right = fmt.Sprintf("%s: %d  %s: %d", s.scoreLabel, a, s.turnsLabel, b)
		n := ansi.StringWidth(right)
		descSpace = w.Width - n - 3
		rightColumn = w.Width - n
	}

	s.write(ansi.Truncate(description, max(descSpace, 0), ""))
	if pad := rightColumn - w.CursorX; pad > 0 {
		s.write(strings.Repeat(" ", pad))
	}

	w.CursorX = max(rightColumn, 1)
	s.gotoCursor(w)
	s.write(right)
	s.write(" ")

	s.switchTo(prev)
}
