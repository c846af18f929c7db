package screen

import (
	"github.com/mattn/go-runewidth"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
	"github.com/Gaurav-Gosain/monoscreen/internal/pool"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
	"github.com/Gaurav-Gosain/monoscreen/internal/window"
	"github.com/Gaurav-Gosain/monoscreen/internal/wrap"
)

// replayContext gates painting while history is replayed into the lower
// window. skip rows are consumed without painting first, then at most fill
// rows are painted; -1 disables either counter. upper and lower protect the
// rows outside the band being repainted.
type replayContext struct {
	skip, fill   int
	upper, lower int
}

var idleReplay = replayContext{skip: -1, fill: -1}

// emit paints text into window i and handles the pacing pauses the painter
// asks for. A pause interrupted by a resize drops the rest of the text, and
// lower window text keeps being dropped until the next read redraws it from
// history.
func (s *Session) emit(i int, text string) {
	w := s.set.Get(i)
	for text != "" {
		if i == 0 && s.winchFound && s.replay == nil {
			return
		}
		rest, paused := s.paint(w, text)
		if !paused || !s.pause(w) {
			return
		}
		text = rest
	}
}

// paint places text into w row by row. It returns early with the unpainted
// rest when w has produced a window's worth of rows since the last pause.
func (s *Session) paint(w *window.Window, text string) (rest string, pause bool) {
	if text == "" {
		return "", false
	}

	rc := idleReplay
	ctx := &rc
	if w.Number == 0 && s.replay != nil {
		ctx = s.replay
	}

	if w.CursorY-1+ctx.lower >= w.Height {
		w.CursorY = w.Height - ctx.lower
	}
	s.applyOutputColours(w)
	s.applyOutputStyle(w)
	s.gotoCursor(w)

	buf := pool.GetRuneSlice()
	defer pool.PutRuneSlice(buf)
	*buf = append(*buf, []rune(text)...)
	rs := *buf

	for len(rs) > 0 {
		space := w.SpaceOnLine()
		nl := indexRune(rs, '\n')

		if space <= 0 && !w.Wrapping {
			if nl < 0 || w.CursorY == w.Height {
				return "", false
			}
			rs = rs[nl+1:]
			if ctx.skip > 0 {
				ctx.skip--
			} else {
				w.CursorX = w.HomeColumn()
				w.CursorY++
			}
			continue
		}
		space = max(space, 0)

		cut := -1
		switch {
		case nl >= 0 && wrap.Columns(rs[:nl]) <= space:
			cut = nl
		case wrap.Columns(rs) > space:
			cut = wrap.Fit(rs, space)
		}

		seg := rs
		if cut >= 0 {
			seg = rs[:cut]
		}

		s.gotoCursor(w)
		painting := ctx.skip < 1 && ctx.fill != 0
		if painting {
			s.put(w, seg)
		}

		if cut < 0 {
			return "", false
		}

		if rs[cut] != '\n' && !w.Wrapping {
			// Clipped: the rest of the row is dropped up to the next
			// newline.
			rs = rs[cut:]
			nl = indexRune(rs, '\n')
			if nl < 0 || w.CursorY == w.Height {
				return "", false
			}
			rs = rs[nl+1:]
			w.CursorX = w.HomeColumn()
			w.CursorY++
			continue
		}

		if painting && ctx.fill != 1 {
			s.advanceRow(w, ctx)
		} else {
			w.CursorX = w.HomeColumn()
		}

		rs = rs[cut:]
		if len(rs) > 0 && rs[0] == '\n' {
			rs = rs[1:]
		}

		pause = false
		if w.Wrapping {
			w.ConsecutiveLines++
			pause = w.ConsecutiveLines == w.Height-1 &&
				!s.pacingDisabled() && !s.winchFound && painting
		}

		if ctx.skip > 0 {
			ctx.skip--
		} else if ctx.fill > 0 {
			ctx.fill--
		}

		if pause {
			return string(rs), true
		}
	}

	return "", false
}

// put outputs one row segment at the cursor and advances the cursor.
func (s *Session) put(w *window.Window, seg []rune) {
	if len(seg) == 0 {
		return
	}
	s.be.Output(string(seg))
	if w.Number == 1 && s.set.HasUpper() {
		s.retain(w, seg)
	}
	w.CursorX += wrap.Columns(seg)
}

// advanceRow moves the cursor to the home column of the next row. At the
// bottom of a wrapping window the rows between the margins scroll up by one
// instead.
func (s *Session) advanceRow(w *window.Window, ctx *replayContext) {
	s.setStyle(style.Roman)
	w.CursorX = 1

	if w.CursorY+ctx.lower == w.Height && w.Wrapping {
		s.copyArea(
			w.Y+ctx.upper, w.X,
			w.Y+ctx.upper+1, w.X,
			w.Height-ctx.lower-ctx.upper-1, w.Width)
		s.gotoCursor(w)
		s.clearToEOL(w)
	} else {
		w.CursorY++
		s.gotoCursor(w)
	}

	w.CursorX = w.HomeColumn()
	s.gotoCursor(w)
	s.setStyle(w.OutputStyle)
}

func (s *Session) pacingDisabled() bool {
	return s.refreshing || s.moreDisabled
}

// pause shows the more prompt below the rows just painted into w and waits
// for one event. It reports false when the rest of the output must be
// dropped.
func (s *Session) pause(w *window.Window) bool {
	for i := range s.set.Len() {
		if i != w.Number {
			s.flushWindow(i)
		}
	}

	s.gotoCursor(w)
	s.be.Output(s.morePrompt)
	s.be.Update()
	s.gotoCursor(w)

	var ev backend.Event
	var err error
	for {
		ev, err = s.be.NextEvent(0)
		if err != nil || ev.Type != backend.EventTimeout {
			break
		}
	}

	w.CursorX = w.HomeColumn()
	s.gotoCursor(w)
	s.clearToEOL(w)

	if err != nil {
		s.deferred = err
		return false
	}
	if ev.Type == backend.EventResize {
		s.log.Debug("pause interrupted by resize")
		s.winchFound = true
		return false
	}

	w.ConsecutiveLines = 0
	return true
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}

// retained keeps what was painted into the upper window so a full refresh
// can restore it without asking the host.
type retained struct {
	width int
	rows  [][]cell
}

type cell struct {
	r      rune
	st     style.Style
	fg, bg style.Colour
}

func newRetained(width int) *retained {
	return &retained{width: max(width, 1)}
}

func (r *retained) set(y, x int, c cell) {
	if y < 0 || x < 0 || x >= r.width {
		return
	}
	for len(r.rows) <= y {
		r.rows = append(r.rows, nil)
	}
	if r.rows[y] == nil {
		r.rows[y] = make([]cell, r.width)
	}
	r.rows[y][x] = c
}

func (r *retained) at(y, x int) cell {
	if y < len(r.rows) && r.rows[y] != nil && x < len(r.rows[y]) {
		if c := r.rows[y][x]; c.r != 0 {
			return c
		}
	}
	return cell{r: ' '}
}

func (r *retained) clear() {
	r.rows = r.rows[:0]
}

func (r *retained) resize(width int) {
	width = max(width, 1)
	if width == r.width {
		return
	}
	for i, row := range r.rows {
		if row == nil {
			continue
		}
		next := make([]cell, width)
		copy(next, row)
		r.rows[i] = next
	}
	r.width = width
}

func (s *Session) retain(w *window.Window, seg []rune) {
	y, x := w.CursorY-1, w.CursorX-1
	for _, ch := range seg {
		n := runewidth.RuneWidth(ch)
		if n == 0 {
			continue
		}
		s.upper.set(y, x, cell{r: ch, st: w.OutputStyle, fg: w.OutputFg, bg: w.OutputBg})
		x += n
	}
}
