package screen

import (
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
	"github.com/Gaurav-Gosain/monoscreen/internal/window"
)

// Output writes host text to the active window. Buffered windows pass it
// through their wrapper, the others go straight to the painter. Any replay
// cursor is dropped because the log it points into has grown.
func (s *Session) Output(text string) {
	if text == "" {
		return
	}
	s.dropCursor()
	s.outputOccurred = true
	s.write(text)
}

// write routes text like Output without touching the replay state.
func (s *Session) write(text string) {
	if s.set == nil || s.active < 0 {
		s.be.Output(text)
		return
	}
	w := s.set.Get(s.active)
	if w.Buffering {
		s.wrappers[s.active].Wrap(text)
		return
	}
	s.applyOutputColours(w)
	s.applyOutputStyle(w)
	s.emit(s.active, text)
}

// SetTextStyle changes the style of every window except the status line.
// Buffered windows pick the change up when the wrapped text reaches it.
func (s *Session) SetTextStyle(st style.Style) {
	if s.set == nil {
		return
	}
	for i := range s.set.Len() {
		if i != s.set.Status {
			s.setWindowStyle(i, st)
		}
	}
}

// SetColour changes the colours of window n, or of every window but the
// status line when n is -1. Colour 0 keeps the current value. It is a no-op
// unless the session paints in colour.
func (s *Session) SetColour(fg, bg style.Colour, n int) {
	if s.set == nil || !s.usingColour || !fg.Valid() || !bg.Valid() {
		return
	}

	highest := s.set.Len() - 1
	if s.set.HasStatus() {
		highest--
	}

	first, last := n, n
	switch {
	case n == -1:
		first, last = 0, highest
	case n < 0 || n > highest:
		return
	}

	for i := first; i <= last; i++ {
		s.setWindowColour(i, fg, bg)
	}
}

// SetFont is accepted for interface completeness; a monospace screen has a
// single font.
func (s *Session) SetFont(int) {}

func (s *Session) setWindowStyle(i int, st style.Style) {
	w := s.set.Get(i)
	w.TextStyle = st
	if !w.Buffering {
		w.OutputStyle = st
		return
	}
	s.wrappers[i].InsertMetadata(func() {
		w.OutputStyle = st
	})
}

func (s *Session) setWindowColour(i int, fg, bg style.Colour) {
	w := s.set.Get(i)
	if fg == style.Current {
		fg = w.Fg
	}
	if bg == style.Current {
		bg = w.Bg
	}
	w.Fg, w.Bg = fg, bg
	if !w.Buffering {
		w.OutputFg, w.OutputBg = fg, bg
		return
	}
	s.wrappers[i].InsertMetadata(func() {
		w.OutputFg, w.OutputBg = fg, bg
	})
}

// SplitWindow gives the upper window n rows taken from the lower window.
func (s *Session) SplitWindow(n int) {
	if s.set == nil || n < 0 {
		return
	}
	if s.set.SplitDelta(n) != 0 {
		s.flushWindow(0)
	}
	if s.set.Split(n) {
		upper := s.set.Get(1)
		s.be.ClearArea(upper.X, upper.Y, upper.Width, upper.Height)
		s.upper.clear()
	}
	s.log.Debug("split", "lines", n, "lower", s.set.Get(0).Height)
}

// SetWindow selects the window subsequent output goes to. Outside version 6,
// selecting the upper window homes its cursor.
func (s *Session) SetWindow(n int) {
	if s.set == nil || !s.set.Valid(n) {
		return
	}
	if s.version != 6 && n == 1 {
		w := s.set.Get(1)
		w.CursorY, w.CursorX = 1, 1
	}
	s.switchTo(n)
}

// EraseWindow clears window n to its background and homes its cursor.
func (s *Session) EraseWindow(n int) {
	if s.set == nil || !s.set.Valid(n) {
		return
	}
	s.eraseWindow(n)
}

func (s *Session) eraseWindow(n int) {
	w := s.set.Get(n)
	s.flushWindow(n)
	s.applyOutputColours(w)
	s.setStyle(w.OutputStyle.Without(style.Reverse))
	s.be.ClearArea(w.X, w.Y, w.Width, w.Height)
	s.set.ResetCursor(n)
	if n == 1 && s.set.HasUpper() {
		s.upper.clear()
	}
}

// SetCursor moves the cursor of window n. In version 6, line -1 hides the
// terminal cursor and -2 shows it.
func (s *Session) SetCursor(line, column, n int) {
	if s.set == nil || !s.set.Valid(n) {
		return
	}
	s.flushWindow(n)

	if column < 0 {
		return
	}
	if line < 0 {
		if s.version == 6 {
			switch line {
			case -1:
				s.be.SetCursorVisibility(false)
			case -2:
				s.be.SetCursorVisibility(true)
			}
		}
		return
	}

	s.set.SetCursor(n, line, column)
	s.gotoCursor(s.set.Get(n))
}

// CursorRow returns the screen row of the active window's cursor.
func (s *Session) CursorRow() int {
	if s.set == nil || s.active < 0 {
		return 0
	}
	return s.set.Get(s.active).ScreenRow()
}

// CursorColumn returns the screen column of the active window's cursor.
func (s *Session) CursorColumn() int {
	if s.set == nil || s.active < 0 {
		return 0
	}
	return s.set.Get(s.active).ScreenColumn()
}

// Window returns a copy of window i.
func (s *Session) Window(i int) (window.Window, bool) {
	if s.set == nil || i < 0 || i >= s.set.Len() {
		return window.Window{}, false
	}
	return *s.set.Get(i), true
}

// HasUpperWindow reports whether window 1 is an upper window the host may
// split and select.
func (s *Session) HasUpperWindow() bool {
	return s.set != nil && s.set.HasUpper()
}

// ActiveWindow returns the index of the selected window, or -1.
func (s *Session) ActiveWindow() int {
	return s.active
}

// ScrollbackTop returns the lower window's scrollback position. It equals
// the window height when the live output is shown.
func (s *Session) ScrollbackTop() int {
	if s.set == nil {
		return 0
	}
	return s.set.Get(0).ScrollbackTop
}

// Flush pushes the pending text of every buffered window to the screen.
func (s *Session) Flush() {
	if s.set == nil {
		return
	}
	for i := range s.set.Len() {
		s.flushWindow(i)
	}
}

func (s *Session) flushWindow(i int) {
	if s.set.Get(i).Buffering {
		s.wrappers[i].Flush()
	}
}

func (s *Session) switchTo(n int) {
	s.active = n
	s.gotoCursor(s.set.Get(n))
}

func (s *Session) gotoCursor(w *window.Window) {
	s.be.GotoYX(w.ScreenRow(), w.ScreenColumn())
}

func (s *Session) setStyle(st style.Style) {
	if st != s.curStyle {
		s.curStyle = st
		s.be.SetTextStyle(st)
	}
}

func (s *Session) setColour(fg, bg style.Colour) {
	if !s.usingColour {
		return
	}
	if fg != s.curFg || bg != s.curBg {
		s.curFg, s.curBg = fg, bg
		s.be.SetColour(fg, bg)
	}
}

func (s *Session) applyOutputStyle(w *window.Window) {
	s.setStyle(w.OutputStyle)
}

func (s *Session) applyOutputColours(w *window.Window) {
	s.setColour(w.OutputFg, w.OutputBg)
}

// clearToEOL clears from the backend cursor to the end of the row without
// painting the cleared cells in reverse video.
func (s *Session) clearToEOL(w *window.Window) {
	s.setStyle(w.OutputStyle.Without(style.Reverse))
	s.be.ClearToEOL()
}

func (s *Session) copyArea(dstY, dstX, srcY, srcX, height, width int) {
	if height <= 0 || width <= 0 {
		return
	}
	if err := s.be.CopyArea(dstY, dstX, srcY, srcX, height, width); err != nil {
		s.log.Error("copy area failed", "err", err)
	}
}
