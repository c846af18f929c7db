// Package history defines the paragraph log the engine replays when the
// screen scrolls back, and provides an in-memory implementation.
//
// A paragraph is the text produced between two newlines together with the
// style and colour changes that happened inside it. The log is append-only
// from the host's point of view; replay cursors walk it backwards and
// forwards without modifying it.
package history

import (
	"errors"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

var (
	// ErrStart is returned by Rewind when the cursor is at the oldest
	// paragraph.
	ErrStart = errors.New("history: start of log reached")
	// ErrEnd is returned by Repeat when replay ran into the newest edge.
	ErrEnd = errors.New("history: end of log reached")
	// ErrStale is returned by a cursor whose log was appended to after the
	// cursor was created.
	ErrStale = errors.New("history: cursor invalidated by append")
)

// Target receives replayed paragraphs.
type Target interface {
	SetTextStyle(s style.Style)
	SetColour(fg, bg style.Colour)
	Output(text string)
}

// Log hands out replay cursors positioned at the newest edge.
type Log interface {
	NewCursor() Cursor
}

// Cursor is a replay position inside a Log.
type Cursor interface {
	// Rewind moves one paragraph towards the oldest edge and reports
	// whether that paragraph ended with a newline.
	Rewind() (newlineTerminated bool, err error)
	// Repeat replays count paragraphs starting at the cursor into t. Style
	// and colour changes are only replayed when paint is set. With advance
	// the cursor is left after the last replayed paragraph.
	Repeat(t Target, count int, advance, paint bool) error
	// AtNewest reports whether the cursor sits at the newest edge.
	AtNewest() bool
	Close()
}
