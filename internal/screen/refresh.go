package screen

import (
	"github.com/Gaurav-Gosain/monoscreen/internal/pool"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// RefreshScreen redraws every window: the lower window from history, the
// status line from its last contents and the upper window from the cells
// retained while it was painted.
func (s *Session) RefreshScreen() error {
	if !s.open {
		return ErrNotOpen
	}

	s.eraseWindow(0)
	if _, err := s.refreshWindow0(s.set.Get(0).Height, 1, true); err != nil {
		return err
	}

	if s.version <= 3 && s.status.shown {
		s.ShowStatus(s.status.description, s.status.mode, s.status.a, s.status.b)
	}

	s.repaintUpper()

	w := s.set.Get(0)
	s.applyOutputColours(w)
	s.applyOutputStyle(w)
	s.gotoCursor(w)
	s.be.RedrawFromScratch()
	return nil
}

// repaintUpper writes the retained upper window cells back, one backend
// call per run of cells sharing style and colours. Colour 0 in a cell
// matches any colour.
func (s *Session) repaintUpper() {
	if !s.set.HasUpper() {
		return
	}
	w := s.set.Get(1)
	if w.Height <= 0 {
		return
	}

	first := s.upper.at(0, 0)
	st, fg, bg := first.st, first.fg, first.bg
	if fg == style.Current {
		fg = s.defaultFg
	}
	if bg == style.Current {
		bg = s.defaultBg
	}
	s.setStyle(st)
	s.setColour(fg, bg)

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	cols := min(w.Width, s.upper.width)
	for y := range w.Height {
		s.be.GotoYX(w.Y+y, 1)
		for x := 0; x < cols; {
			sb.Reset()
			for ; x < cols; x++ {
				c := s.upper.at(y, x)
				if c.st != st ||
					(c.fg != fg && c.fg != style.Current) ||
					(c.bg != bg && c.bg != style.Current) {
					break
				}
				sb.WriteRune(c.r)
			}
			s.be.Output(sb.String())

			if x < cols {
				c := s.upper.at(y, x)
				st = c.st
				s.setStyle(st)
				if c.fg != style.Current {
					fg = c.fg
				}
				if c.bg != style.Current {
					bg = c.bg
				}
				s.setColour(fg, bg)
			}
		}
	}
}

// refreshInputLine redraws the visible part of the edit buffer and puts the
// lower window's cursor at the edit index.
func (s *Session) refreshInputLine() {
	in := s.input
	if in == nil {
		return
	}
	w := s.set.Get(0)

	if in.size() > 0 {
		s.applyOutputColours(w)
		s.applyOutputStyle(w)
		s.be.GotoYX(in.y, in.x)
		s.be.Output(in.visible())
	}

	w.CursorX = in.x - (w.X - 1) + in.index - in.scrollX
	w.CursorY = in.y - (w.Y - 1)
	s.wrappers[0].SetLineIndex(in.x - w.X - w.LeftMargin)

	if s.active >= 0 {
		s.gotoCursor(s.set.Get(s.active))
	}
}

// HistoryModified redraws the lower window after the host replaced its
// paragraph log, for example after restoring a saved game.
func (s *Session) HistoryModified() error {
	if !s.open {
		return ErrNotOpen
	}
	w := s.set.Get(0)

	s.Flush()
	w.ScrollbackTop = w.Height
	s.be.ClearArea(w.X, w.Y+1, w.Width, w.Height)
	if _, err := s.refreshWindow0(w.Height, 1, true); err != nil {
		return err
	}
	s.dropCursor()

	w.CursorY = w.Height
	w.CursorX = w.HomeColumn()
	return nil
}
