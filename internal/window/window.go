// Package window holds the geometry, cursor and presentation state of the
// text windows that share one screen.
//
// Coordinates are 1-based. Window positions (Y, X) are screen-relative, cursor
// positions (CursorY, CursorX) are window-relative.
package window

import (
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// MaxPeerWindows is the number of windows allocated in forms mode (version 6).
const MaxPeerWindows = 8

// Window is the record for one rectangular screen region.
type Window struct {
	Number int

	Y, X          int
	Height, Width int

	CursorY, CursorX int

	LeftMargin, RightMargin int

	// TextStyle and Fg/Bg are what the host asked for; the Output fields are
	// what the next glyph is painted with. Buffered windows receive the
	// latter through wrap metadata, so they lag behind until the wrapped text
	// reaches the screen.
	TextStyle   style.Style
	Fg, Bg      style.Colour
	OutputStyle style.Style
	OutputFg    style.Colour
	OutputBg    style.Colour

	Wrapping  bool
	Buffering bool

	// ConsecutiveLines counts rows broken since the last pause.
	ConsecutiveLines int
	// ScrollbackTop is the number of history rows, counted from the newest,
	// between the window's top row and the live bottom. It equals Height
	// when the window is not scrolled back.
	ScrollbackTop int
}

// TextWidth is the number of columns available between the margins.
func (w *Window) TextWidth() int {
	return w.Width - w.LeftMargin - w.RightMargin
}

// HomeColumn is the first column right of the left margin.
func (w *Window) HomeColumn() int {
	return 1 + w.LeftMargin
}

// SpaceOnLine returns the columns left before the right margin.
func (w *Window) SpaceOnLine() int {
	return w.Width - w.RightMargin - (w.CursorX - 1)
}

// ScreenRow converts the cursor row to a screen row.
func (w *Window) ScreenRow() int {
	return w.Y + w.CursorY - 1
}

// ScreenColumn converts the cursor column to a screen column.
func (w *Window) ScreenColumn() int {
	return w.X + w.CursorX - 1
}

// ScrolledBack reports whether the window currently shows history above the
// live position.
func (w *Window) ScrolledBack() bool {
	return w.ScrollbackTop > w.Height
}

// Defaults configures the initial state of a window set.
type Defaults struct {
	Fg, Bg      style.Colour
	LeftMargin  int
	RightMargin int
}

// Set is the fixed window array of one session. Indices are stable for the
// lifetime of the set.
type Set struct {
	Version int
	Height  int
	Width   int

	// Status is the index of the status-line window, or -1.
	Status    int
	LastSplit int

	windows []*Window
}

// Allocate builds the windows for the given story version on a screen of
// height x width cells.
func Allocate(version, height, width int, d Defaults) *Set {
	n := 2
	switch {
	case version <= 2:
		n = 1
	case version == 6:
		n = MaxPeerWindows
	}

	s := &Set{Version: version, Height: height, Width: width, Status: -1}
	if version <= 3 {
		s.Status = n
		n++
	}

	s.windows = make([]*Window, n)
	for i := range s.windows {
		w := &Window{
			Number:      i,
			Y:           1,
			X:           1,
			TextStyle:   style.Roman,
			OutputStyle: style.Roman,
			Fg:          d.Fg,
			Bg:          d.Bg,
			OutputFg:    d.Fg,
			OutputBg:    d.Bg,
			Wrapping:    i == 0,
			Buffering:   version == 6 || i == 0,
		}

		switch {
		case i == 0:
			w.Height = height
			w.Width = width
			if version != 6 {
				w.LeftMargin = d.LeftMargin
				w.RightMargin = d.RightMargin
			}
			if s.Status > 0 {
				w.Height--
				w.Y++
			}
		case i == s.Status:
			w.Height = 1
			w.Width = width
			w.TextStyle = style.Reverse
			w.OutputStyle = style.Reverse
		case i == 1:
			w.Width = width
			if s.Status > 0 {
				w.Y++
			}
		}

		w.ScrollbackTop = w.Height
		if version >= 5 {
			w.CursorY = 1
		} else {
			w.CursorY = w.Height
		}
		w.CursorX = w.HomeColumn()
		s.windows[i] = w
	}

	return s
}

// Len returns the number of windows including the status window.
func (s *Set) Len() int {
	return len(s.windows)
}

// Get returns window i. It panics on an index outside the set, like a slice.
func (s *Set) Get(i int) *Window {
	return s.windows[i]
}

// All returns the windows in index order.
func (s *Set) All() []*Window {
	return s.windows
}

// HasStatus reports whether a status window exists.
func (s *Set) HasStatus() bool {
	return s.Status >= 0
}

// Valid reports whether i names a window the host may select.
func (s *Set) Valid(i int) bool {
	return i >= 0 && i < len(s.windows) && i != s.Status
}

// HasUpper reports whether an upper window exists.
func (s *Set) HasUpper() bool {
	return len(s.windows) > 1 && s.Status != 1
}

// SplitDelta returns how many rows Split(n) would move between the lower and
// upper window.
func (s *Set) SplitDelta(n int) int {
	if n < 0 || !s.HasUpper() {
		return 0
	}
	return min(n, s.Height) - s.windows[1].Height
}

// Split gives the upper window n rows taken from the lower window. It
// reports whether the upper area must be cleared, which version 3 requires.
func (s *Set) Split(n int) (clearUpper bool) {
	if n < 0 || !s.HasUpper() {
		return false
	}
	n = min(n, s.Height)

	lower, upper := s.windows[0], s.windows[1]
	if delta := n - upper.Height; delta != 0 {
		lower.Height -= delta
		lower.ScrollbackTop -= delta
		lower.CursorY -= delta
		lower.Y += delta
		upper.Height += delta
		upper.ScrollbackTop += delta

		if lower.CursorY < 1 {
			lower.CursorX = 1
			lower.CursorY = 1
		}
		if upper.CursorY > upper.Height {
			upper.CursorX = 1
			upper.CursorY = 1
		}
		clearUpper = s.Version == 3
	}

	s.LastSplit = n
	return clearUpper
}

// ResetCursor puts the cursor of window i where an erase leaves it: the home
// column of the top row (version 5 and later) or of the bottom row.
func (s *Set) ResetCursor(i int) {
	w := s.windows[i]
	w.CursorX = w.HomeColumn()
	if s.Version >= 5 {
		w.CursorY = 1
	} else {
		w.CursorY = w.Height
	}
	w.ConsecutiveLines = 0
}

// SetCursor moves the cursor of window i, clamped to its geometry. A
// non-wrapping window may park the cursor one column past its right edge.
func (s *Set) SetCursor(i, line, column int) {
	w := s.windows[i]
	w.CursorY = max(min(line, w.Height), 1)
	if column > w.Width {
		if w.Wrapping {
			column = w.Width
		} else {
			column = w.Width + 1
		}
	}
	w.CursorX = max(column, 1)
}

// Resize adapts every window to a new screen size. It returns the indices of
// the windows whose text width changed, so their wrappers can follow.
func (s *Set) Resize(height, width int) []int {
	if height < 1 || width < 1 {
		return nil
	}

	before := make([]int, len(s.windows))
	for i, w := range s.windows {
		before[i] = w.TextWidth()
	}

	dy := height - s.Height
	s.Height = height
	s.Width = width

	statusOffset := 0
	if s.Status > 0 {
		statusOffset = 1
	}

	if s.HasUpper() {
		upper := s.windows[1]
		upper.Height = min(s.LastSplit, height-statusOffset)
		upper.ScrollbackTop = upper.Height
	}

	for i, w := range s.windows {
		if s.Version != 6 {
			switch {
			case i == 0:
				w.Width = max(w.Width, width)
				w.Height = height - statusOffset
				if s.HasUpper() {
					w.Height -= s.windows[1].Height
				}
				w.ScrollbackTop = w.Height
				w.CursorY += dy
			case i == s.Status, i == 1:
				w.Width = width
			}
		}

		w.Y = min(w.Y, height)
		w.X = min(w.X, width)

		if w.Y+w.Height-1 > height {
			w.Height = height - w.Y + 1
			w.ScrollbackTop = w.Height
		}

		if w.X+w.Width-1 > width {
			w.Width = width - w.X + 1
			if w.TextWidth() < 1 {
				w.LeftMargin = 0
				w.RightMargin = 0
			}
		}

		w.CursorY = min(w.CursorY, w.Height)
		if w.Height > 0 {
			w.CursorY = max(w.CursorY, 1)
		}
		w.CursorX = min(w.CursorX, w.Width)
	}

	var changed []int
	for i, w := range s.windows {
		if w.TextWidth() != before[i] {
			changed = append(changed, i)
		}
	}
	return changed
}

// SetMargins changes the custom margins of the lower window. Version 6
// windows never carry custom margins.
func (s *Set) SetMargins(left, right int) bool {
	if s.Version == 6 || len(s.windows) == 0 {
		return false
	}
	w := s.windows[0]
	if w.Width-max(left, 0)-max(right, 0) < 1 {
		return false
	}
	w.LeftMargin = max(left, 0)
	w.RightMargin = max(right, 0)
	w.CursorX = max(w.CursorX, w.HomeColumn())
	return true
}
