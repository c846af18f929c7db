package screen

import (
	"errors"
	"fmt"
	"math"

	"github.com/Gaurav-Gosain/monoscreen/internal/history"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// replayTarget receives replayed paragraphs and routes them into the lower
// window without disturbing the replay cursor.
type replayTarget struct {
	s *Session
}

func (t replayTarget) SetTextStyle(st style.Style) {
	t.s.setWindowStyle(0, st)
}

func (t replayTarget) SetColour(fg, bg style.Colour) {
	if t.s.usingColour {
		t.s.setWindowColour(0, fg, bg)
	}
}

func (t replayTarget) Output(text string) {
	s := t.s
	if s.set.Get(0).Buffering {
		s.wrappers[0].Wrap(text)
		return
	}
	s.emit(0, text)
}

func (s *Session) newCursor() {
	s.dropCursor()
	s.cursor = s.hist.NewCursor()
	s.screenLine = 0
}

func (s *Session) dropCursor() {
	if s.cursor != nil {
		s.cursor.Close()
		s.cursor = nil
	}
	s.screenLine = -1
	s.hitTop = false
}

// within runs fn with ctx installed as the replay context of the lower
// window.
func (s *Session) within(ctx *replayContext, fn func()) {
	prev := s.replay
	s.replay = ctx
	defer func() { s.replay = prev }()
	fn()
}

// replayOne repeats the paragraph at the cursor into the lower window and
// flushes it, so the painter has seen every row when it returns.
func (s *Session) replayOne(ctx *replayContext, advance, paint bool) error {
	var err error
	s.within(ctx, func() {
		err = s.cursor.Repeat(replayTarget{s}, 1, advance, paint)
		s.flushWindow(0)
	})
	return err
}

func (s *Session) resetRow() {
	w := s.set.Get(0)
	w.ConsecutiveLines = 0
	s.wrappers[0].SetLineIndex(0)
}

// replayFailed reports whether err from Repeat means the log and the screen
// bookkeeping disagree. Running into the newest edge is expected only while
// the cursor represents the bottom row.
func (s *Session) replayFailed(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, history.ErrEnd) || s.screenLine != 0
}

// refreshWindow0 repaints rows [top, top+size-1] of the lower window from
// history at the current scrollback position. It reports whether anything
// could be shown.
func (s *Session) refreshWindow0(size, top int, reset bool) (bool, error) {
	w := s.set.Get(0)

	if reset || s.cursor == nil {
		s.newCursor()
	}
	if s.input != nil {
		s.input.y = w.Y + w.Height - 1
	}

	prev := s.active
	s.active = 0
	s.refreshing = true
	s.rightmostX = -1

	shown, err := s.reconcile(size, top)

	s.setStyle(style.Roman)
	s.refreshing = false
	s.active = prev

	if err != nil {
		return shown, err
	}

	if w.ScrollbackTop <= w.Height {
		if s.input != nil {
			s.refreshInputLine()
		} else {
			w.CursorY = w.Height
			if s.rightmostX >= 0 {
				w.CursorX = s.rightmostX - (w.X - 1)
			} else {
				w.CursorX = w.HomeColumn()
			}
		}
	}

	s.log.Debug("refreshed lower window", "size", size, "top", top,
		"shown", shown, "screen_line", s.screenLine,
		"scrollback_top", w.ScrollbackTop, "hit_top", s.hitTop)
	return shown, nil
}

// reconcile makes rows [top, top+size-1] of the lower window match history.
// Positions are counted in rows upwards from the live bottom: the band spans
// (bottom, upper] and the cursor represents everything below screenLine.
func (s *Session) reconcile(size, top int) (bool, error) {
	w := s.set.Get(0)

	if size == 0 {
		return false, nil
	}
	if size < 0 {
		size = w.Height
	}
	if top < 1 || top > w.Height || top-1+size > w.Height {
		return false, fmt.Errorf("screen: band %d+%d outside window of height %d",
			top, size, w.Height)
	}

	stl := w.ScrollbackTop
	bottom := stl - (top - 1) - size
	upper := stl - (top - 1)

	switch {
	case bottom > s.screenLine:
		return s.measure(size, top)
	case bottom == s.screenLine:
		return s.paintAtBottom(size, top, bottom)
	case upper > s.screenLine:
		return s.fillInside(size, top, bottom)
	default:
		return s.fillForward(size, top)
	}
}

// measure steps the cursor back one paragraph without painting to learn how
// many rows it occupies, then retries.
func (s *Session) measure(size, top int) (bool, error) {
	w := s.set.Get(0)

	terminated, err := s.cursor.Rewind()
	if errors.Is(err, history.ErrStart) {
		s.hitTop = true
		return false, nil
	}
	if err != nil {
		return false, s.diverged("rewind_paragraph", err)
	}

	s.resetRow()
	w.CursorX = w.HomeColumn()

	ctx := replayContext{skip: math.MaxInt32, fill: -1}
	err = s.replayOne(&ctx, false, false)
	if s.screenLine == 0 && terminated {
		s.within(&ctx, func() { s.emit(0, "\n") })
	}
	if s.replayFailed(err) {
		return false, s.diverged("repeat_paragraphs", err)
	}

	s.screenLine += w.ConsecutiveLines + 1
	return s.reconcile(size, top)
}

// paintAtBottom paints the paragraph just above the cursor so that its last
// row lands on the band's bottom row, then recurses on what is left above.
func (s *Session) paintAtBottom(size, top, bottom int) (bool, error) {
	w := s.set.Get(0)

	w.CursorX = w.HomeColumn()
	w.CursorY = top + size - 1
	ctx := replayContext{
		skip:  -1,
		fill:  -1,
		upper: top - 1,
		lower: w.Height - (top + size - 1),
	}
	s.resetRow()
	s.gotoCursor(w)

	terminated, err := s.cursor.Rewind()
	if errors.Is(err, history.ErrStart) {
		s.hitTop = true
		return false, nil
	}
	if err != nil {
		return false, s.diverged("rewind_paragraph", err)
	}

	err = s.replayOne(&ctx, false, true)
	if s.replayFailed(err) {
		return false, s.diverged("repeat_paragraphs", err)
	}
	// The log keeps no empty paragraph after a final newline, so the row
	// it opened is added here.
	if s.screenLine == 0 && terminated {
		s.within(&ctx, func() { s.emit(0, "\n") })
	}

	if s.screenLine == 0 {
		s.rightmostX = w.ScreenColumn()
		if s.input != nil {
			s.input.y = w.ScreenRow()
			s.input.x = w.ScreenColumn()
			s.input.width = w.X + w.Width - s.input.x - w.RightMargin
		}
	}

	s.screenLine += w.ConsecutiveLines + 1

	left := size - max(s.screenLine-bottom, 0)
	if left <= 0 {
		return true, nil
	}
	if _, err := s.reconcile(left, top); err != nil {
		return true, err
	}
	return true, nil
}

// fillInside paints the rows between the cursor and the band's bottom by
// replaying forward, restores the cursor and recurses on the rows above it.
func (s *Session) fillInside(size, top, bottom int) (bool, error) {
	w := s.set.Get(0)

	original := s.screenLine
	ctx := replayContext{
		skip:  -1,
		fill:  s.screenLine - bottom,
		lower: w.Height - ((top - 1) + size),
	}
	w.CursorY = w.ScrollbackTop - s.screenLine

	advanced := 0
	for {
		w.CursorX = w.HomeColumn()
		w.CursorY++
		s.resetRow()
		s.gotoCursor(w)

		if s.cursor.AtNewest() {
			break
		}
		err := s.replayOne(&ctx, true, true)
		advanced++
		s.hitTop = false
		if err != nil && !errors.Is(err, history.ErrEnd) {
			return true, s.diverged("repeat_paragraphs", err)
		}
		if ctx.fill > 0 {
			ctx.fill--
		}
		if ctx.fill <= 0 || err != nil {
			break
		}
	}

	for range advanced {
		if _, err := s.cursor.Rewind(); err != nil {
			return true, s.diverged("rewind_paragraph", err)
		}
	}
	s.screenLine = original

	if _, err := s.reconcile(w.ScrollbackTop-(top-1)-s.screenLine, top); err != nil {
		return true, err
	}
	return true, nil
}

// fillForward handles a cursor at or above the band: it skips the rows
// above the band and paints forward until the band is full or the newest
// paragraph has been replayed.
func (s *Session) fillForward(size, top int) (bool, error) {
	w := s.set.Get(0)

	ctx := replayContext{
		skip:  s.screenLine - (w.ScrollbackTop - top + 1),
		fill:  size,
		upper: top - 1,
		lower: w.Height - (top + size - 1),
	}
	w.CursorY = ctx.upper + 1
	w.CursorX = w.HomeColumn()
	s.gotoCursor(w)

	for ctx.fill > 0 {
		s.resetRow()
		if s.cursor.AtNewest() {
			break
		}

		err := s.replayOne(&ctx, true, true)
		s.hitTop = false

		if ctx.skip < 1 {
			w.CursorY++
			w.CursorX = w.HomeColumn()
			s.gotoCursor(w)
		}
		// The paragraph's closing newline was not replayed.
		if ctx.skip > 0 {
			ctx.skip--
		} else {
			ctx.fill--
		}

		s.screenLine -= w.ConsecutiveLines + 1
		if s.replayFailed(err) {
			return true, s.diverged("repeat_paragraphs", err)
		}
	}
	return true, nil
}
