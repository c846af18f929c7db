// Package backend provides the terminal capability the screen engine paints
// through, and its implementations.
//
// Coordinates passed to a Backend are 1-based screen positions: row y counts
// from the top, column x from the left.
package backend

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

var (
	// ErrOutOfBounds is returned by CopyArea when a source or destination
	// row range leaves the screen.
	ErrOutOfBounds = errors.New("backend: area out of bounds")
	// ErrNoInput is returned by a blocking NextEvent when no further input
	// can arrive.
	ErrNoInput = errors.New("backend: input exhausted")
)

// EventType identifies the kind of event returned by NextEvent.
type EventType int

const (
	EventInput EventType = iota
	EventTimeout
	EventResize
	EventBackspace
	EventDelete
	EventLeft
	EventRight
	EventUp
	EventDown
	EventCtrlA
	EventCtrlE
	EventPageUp
	EventPageDown
	EventEscape
)

var eventNames = [...]string{
	"input", "timeout", "resize", "backspace", "delete", "left", "right",
	"up", "down", "ctrl+a", "ctrl+e", "page-up", "page-down", "escape",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(t))
	}
	return eventNames[t]
}

// Event is one input notification. Rune is only set for EventInput; Enter
// arrives as '\n', Ctrl-L and Ctrl-R as 12 and 18.
type Event struct {
	Type EventType
	Rune rune
}

// Key returns an event of type t without a rune.
func Key(t EventType) Event {
	return Event{Type: t}
}

// Input returns an input event for r.
func Input(r rune) Event {
	return Event{Type: EventInput, Rune: r}
}

// Backend is the terminal capability consumed by the screen engine.
type Backend interface {
	GotoYX(y, x int)
	Output(text string)
	ClearToEOL()
	ClearArea(x, y, width, height int)
	// CopyArea copies a height x width block whose top-left corner is
	// (srcY, srcX) to (dstY, dstX).
	CopyArea(dstY, dstX, srcY, srcX, height, width int) error

	SetTextStyle(s style.Style)
	SetColour(fg, bg style.Colour)
	SetCursorVisibility(visible bool)

	Size() (height, width int)
	ColourAvailable() bool
	DefaultColours() (fg, bg style.Colour)
	TimedInputAvailable() bool

	// NextEvent waits for the next event. A zero timeout blocks; otherwise
	// EventTimeout is returned once the timeout elapsed.
	NextEvent(timeout time.Duration) (Event, error)

	Update()
	RedrawFromScratch()
	Reset()
	Close(message string)
}

// Palette maps a colour code onto a terminal colour. A nil result selects
// the terminal default.
type Palette func(c style.Colour, foreground bool) color.Color

// BasicPalette maps colour codes onto the 16-colour ANSI palette.
func BasicPalette(c style.Colour, _ bool) color.Color {
	switch c {
	case style.Black:
		return ansi.Black
	case style.Red:
		return ansi.Red
	case style.Green:
		return ansi.Green
	case style.Yellow:
		return ansi.Yellow
	case style.Blue:
		return ansi.Blue
	case style.Magenta:
		return ansi.Magenta
	case style.Cyan:
		return ansi.Cyan
	case style.White:
		return ansi.BrightWhite
	case style.LightGrey:
		return ansi.White
	case style.MediumGrey:
		return ansi.BrightBlack
	case style.DarkGrey:
		return ansi.IndexedColor(238)
	default:
		return nil
	}
}

func validArea(y, x, height, width, screenHeight, screenWidth int) bool {
	return y >= 1 && x >= 1 && y+height-1 <= screenHeight && x+width-1 <= screenWidth
}
