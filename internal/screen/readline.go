package screen

import (
	"errors"
	"slices"
	"time"
	"unicode"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
	"github.com/Gaurav-Gosain/monoscreen/internal/window"
)

// tick is the timed-input resolution.
const tick = 100 * time.Millisecond

// Input codes returned by ReadLine through LineResult.Size.
const (
	// SizeAborted is reported when the user left the line with Escape.
	SizeAborted = -2
)

// VerifyFunc is the host routine polled during timed input. Returning
// stop ends the read with an empty result; returning ErrQuit does the same
// and marks the result as a quit.
type VerifyFunc func() (stop bool, err error)

// LineRequest describes one ReadLine call.
type LineRequest struct {
	// Max is the buffer capacity in characters.
	Max int
	// Preload is text already shown left of the cursor that becomes the
	// start of the buffer.
	Preload string
	// TenthSeconds is the timed-input period. Verify is called every
	// TenthSeconds tenths of a second when both are set.
	TenthSeconds int
	Verify       VerifyFunc
	// DisableHistory turns off Up/Down recall.
	DisableHistory bool
	// EscapeAborts ends the read on Escape with SizeAborted.
	EscapeAborts bool
}

// LineResult is the outcome of ReadLine.
type LineResult struct {
	Text string
	// Size is the number of characters read, 0 when the verification
	// routine stopped the read and SizeAborted on Escape.
	Size int
	// Quit is set when the verification routine requested a quit.
	Quit bool
	// TenthsElapsed counts the timed-input ticks seen during the read.
	TenthsElapsed int
}

// inputLine is the edit buffer of one read together with where it is shown.
// x and y are the screen position of the first visible column.
type inputLine struct {
	buf     []rune
	max     int
	index   int
	scrollX int
	x, y    int
	width   int
}

func (in *inputLine) size() int {
	return len(in.buf)
}

func (in *inputLine) visible() string {
	end := min(len(in.buf), in.scrollX+in.width)
	if in.scrollX >= end {
		return ""
	}
	return string(in.buf[in.scrollX:end])
}

// lastVisible returns the rune shown in the last visible column, or a space.
func (in *inputLine) lastVisible() string {
	if i := in.scrollX + in.width - 1; i < len(in.buf) {
		return string(in.buf[i])
	}
	return " "
}

func acceptable(r rune) bool {
	return r >= ' ' && unicode.IsPrint(r)
}

// prepareRead runs the steps shared by ReadLine and ReadChar before the
// first event is awaited.
func (s *Session) prepareRead() error {
	if !s.open {
		return ErrNotOpen
	}
	if err := s.deferred; err != nil {
		s.deferred = nil
		return err
	}
	s.Flush()
	for _, w := range s.set.All() {
		w.ConsecutiveLines = 0
	}
	return nil
}

func (s *Session) readTimeout(tenths int, verify VerifyFunc) (time.Duration, bool) {
	if tenths == 0 || verify == nil {
		return 0, false
	}
	if s.be.TimedInputAvailable() {
		return tick, true
	}
	return 0, true
}

// ReadLine edits one line of input at the active window's cursor.
func (s *Session) ReadLine(req LineRequest) (LineResult, error) {
	if err := s.prepareRead(); err != nil {
		return LineResult{}, err
	}

	prevInput := s.input
	defer func() { s.input = prevInput }()

	w := s.set.Get(s.active)
	if w.CursorX+w.RightMargin > w.Width-1 {
		s.write("\n")
		s.flushWindow(s.active)
	}
	if err := s.checkResize(); err != nil {
		return LineResult{}, err
	}
	w = s.set.Get(s.active)

	timeout, timed := s.readTimeout(req.TenthSeconds, req.Verify)

	s.be.Update()
	s.applyOutputColours(w)
	s.applyOutputStyle(w)

	preload := []rune(req.Preload)
	if len(preload) > req.Max {
		preload = preload[:max(req.Max, 0)]
	}
	in := &inputLine{
		buf:   append(make([]rune, 0, max(req.Max, 0)), preload...),
		max:   max(req.Max, 0),
		index: len(preload),
		x:     w.X + w.CursorX - 1 - len(preload),
		y:     w.ScreenRow(),
		width: w.Width - (w.CursorX - 1 - len(preload)) - w.RightMargin,
	}
	s.input = in

	var res LineResult
	historyIndex := 0
	tenths := 0

	finish := func() {
		w := s.set.Get(s.active)
		s.be.GotoYX(in.y, in.x)
		s.clearToEOL(w)
		w.CursorX = in.x - (w.X - 1)
		s.gotoCursor(w)
	}

	for done := false; !done; {
		ev, err := s.be.NextEvent(timeout)
		if err != nil {
			finish()
			return res, err
		}
		w = s.set.Get(s.active)

		switch ev.Type {
		case backend.EventTimeout:
			if !timed {
				continue
			}
			tenths++
			res.TenthsElapsed++
			if tenths != req.TenthSeconds {
				continue
			}
			tenths = 0
			s.outputOccurred = false

			stop, verr := req.Verify()
			if errors.Is(verr, ErrQuit) {
				res.Quit = true
				in.buf = in.buf[:0]
				done = true
				continue
			}
			if verr != nil {
				finish()
				return res, verr
			}
			if s.outputOccurred {
				s.Flush()
				s.refreshInputLine()
				w = s.set.Get(s.active)
				w.CursorX = in.x - (w.X - 1) + min(in.size(), in.width)
				s.be.Update()
			}
			if stop {
				in.buf = in.buf[:0]
				done = true
			}
			continue

		case backend.EventPageUp, backend.EventPageDown:
			if err := s.page(ev.Type); err != nil {
				finish()
				return res, err
			}
			continue
		}

		if err := s.leaveScrollback(); err != nil {
			finish()
			return res, err
		}
		s.dropCursor()
		w = s.set.Get(s.active)

		switch ev.Type {
		case backend.EventInput:
			switch {
			case ev.Rune == '\n' || ev.Rune == '\r':
				done = true
			case ev.Rune == ctrlL:
				err = s.RefreshScreen()
			case ev.Rune == ctrlR:
				height, width := s.be.Size()
				err = s.NewScreenSize(height, width)
			case acceptable(ev.Rune) && (in.size() < in.max || in.index < in.size()):
				s.insert(w, in, ev.Rune)
			}
		case backend.EventBackspace:
			s.backspace(w, in)
		case backend.EventDelete:
			s.deleteRight(w, in)
		case backend.EventLeft:
			s.left(w, in)
		case backend.EventRight:
			s.right(w, in)
		case backend.EventUp, backend.EventDown:
			if req.DisableHistory || s.commands == nil {
				break
			}
			if ev.Type == backend.EventUp && historyIndex < s.commands.Len() {
				historyIndex++
			} else if ev.Type == backend.EventDown && historyIndex != 0 {
				historyIndex--
			} else {
				break
			}
			s.recall(w, in, historyIndex)
		case backend.EventResize:
			height, width := s.be.Size()
			if height != s.set.Height || width != s.set.Width {
				err = s.NewScreenSize(height, width)
			}
		case backend.EventCtrlA:
			s.home(w, in)
		case backend.EventCtrlE:
			s.end(w, in)
		case backend.EventEscape:
			if req.EscapeAborts {
				res.Size = SizeAborted
				done = true
			}
		}
		if err != nil {
			finish()
			return res, err
		}
	}

	finish()
	if res.Size != SizeAborted {
		res.Size = in.size()
		res.Text = string(in.buf)
	}
	return res, nil
}

const (
	ctrlL = 12
	ctrlR = 18
)

func (s *Session) screenColumn(w *window.Window, x int) int {
	return x - (w.X - 1)
}

func (s *Session) drawInput(in *inputLine) {
	s.be.GotoYX(in.y, in.x)
	s.be.Output(in.visible())
}

func (s *Session) insert(w *window.Window, in *inputLine, r rune) {
	in.buf = slices.Insert(in.buf, in.index, r)
	if len(in.buf) > in.max {
		in.buf = in.buf[:in.max]
	}
	in.index++

	if w.CursorX+w.RightMargin == w.Width {
		s.copyArea(in.y, in.x, in.y, in.x+1, 1, in.width-1)
		in.scrollX++
		s.be.GotoYX(in.y, in.x+in.width-1)
		s.be.Output(" ")
	} else {
		w.CursorX++
	}

	s.drawInput(in)
	s.gotoCursor(w)
	s.be.Update()
}

func (s *Session) backspace(w *window.Window, in *inputLine) {
	if in.index == 0 {
		return
	}
	in.buf = slices.Delete(in.buf, in.index-1, in.index)
	in.index--

	col := w.ScreenColumn()
	if col == in.x {
		in.scrollX--
		return
	}

	s.copyArea(in.y, col-1, in.y, col, 1, in.width-(col-in.x))
	s.be.GotoYX(in.y, in.x+in.width-1)
	s.be.Output(in.lastVisible())
	w.CursorX--
	s.gotoCursor(w)
	s.be.Update()
}

func (s *Session) deleteRight(w *window.Window, in *inputLine) {
	if in.index >= in.size() {
		return
	}
	in.buf = slices.Delete(in.buf, in.index, in.index+1)

	col := w.ScreenColumn()
	s.copyArea(in.y, col, in.y, col+1, 1, in.width-(col+1-in.x))
	s.be.GotoYX(in.y, in.x+in.width-1)
	s.be.Output(in.lastVisible())
	s.gotoCursor(w)
	s.be.Update()
}

func (s *Session) left(w *window.Window, in *inputLine) {
	if in.index == 0 {
		return
	}
	col := w.ScreenColumn()
	if col > in.x {
		w.CursorX--
		s.gotoCursor(w)
	} else {
		s.copyArea(in.y, col+1, in.y, col, 1, in.width-1)
		in.scrollX--
		s.be.GotoYX(in.y, in.x)
		s.be.Output(string(in.buf[in.scrollX]))
		s.be.GotoYX(in.y, in.x)
	}
	s.be.Update()
	in.index--
}

func (s *Session) right(w *window.Window, in *inputLine) {
	if in.index >= in.size() {
		return
	}
	col := w.ScreenColumn()
	if col+1 < in.x+in.width {
		w.CursorX++
		s.gotoCursor(w)
	} else {
		s.copyArea(in.y, in.x, in.y, in.x+1, 1, in.width-1)
		ch := " "
		if in.index != in.size()-1 {
			ch = string(in.buf[in.scrollX+in.width])
		}
		s.be.GotoYX(in.y, in.x+in.width-1)
		s.be.Output(ch)
		s.be.GotoYX(in.y, in.x+in.width-1)
		in.scrollX++
	}
	s.be.Update()
	in.index++
}

// recall replaces the buffer with command n of the history, 1 being the
// newest, or empties it for n == 0.
func (s *Session) recall(w *window.Window, in *inputLine, n int) {
	if n > 0 {
		cmd := []rune(s.commands.Command(n - 1))
		if len(cmd) > in.max {
			cmd = cmd[:in.max]
		}
		in.buf = append(in.buf[:0], cmd...)
		in.index = len(in.buf)
		s.scrollToEnd(w, in)
		s.drawInput(in)
	} else {
		in.buf = in.buf[:0]
		in.index = 0
		in.scrollX = 0
		w.CursorX = s.screenColumn(w, in.x)
		s.be.GotoYX(in.y, in.x)
	}
	s.clearToEOL(w)
	s.gotoCursor(w)
	s.be.Update()
}

// scrollToEnd scrolls so that the column after the last character is the
// last visible one and puts the cursor there.
func (s *Session) scrollToEnd(w *window.Window, in *inputLine) {
	if in.size() > in.width-1 {
		in.scrollX = in.size() - in.width + 1
		w.CursorX = s.screenColumn(w, in.x+in.width-1)
	} else {
		in.scrollX = 0
		w.CursorX = s.screenColumn(w, in.x+in.size())
	}
}

func (s *Session) home(w *window.Window, in *inputLine) {
	if in.index == 0 {
		return
	}
	if in.scrollX > 0 {
		in.scrollX = 0
		s.drawInput(in)
	}
	w.CursorX = s.screenColumn(w, in.x)
	in.index = 0
	s.gotoCursor(w)
	s.be.Update()
}

func (s *Session) end(w *window.Window, in *inputLine) {
	scrolled := in.size() > in.width-1
	s.scrollToEnd(w, in)
	if scrolled {
		s.drawInput(in)
		s.clearToEOL(w)
	}
	in.index = in.size()
	s.gotoCursor(w)
	s.be.Update()
}

// page scrolls the lower window half a window back or forward. A step back
// that reaches beyond recorded history is reverted.
func (s *Session) page(t backend.EventType) error {
	w := s.set.Get(0)
	half := w.Height / 2

	switch {
	case t == backend.EventPageUp && !s.hitTop:
		w.ScrollbackTop += half

		var shown bool
		var err error
		if w.CursorY != w.Height {
			s.be.ClearArea(w.X, w.Y, s.set.Width, w.Height)
			shown, err = s.refreshWindow0(w.Height, 1, true)
		} else {
			s.copyArea(w.Y+half, w.X, w.Y, w.X, w.Height-half, w.Width)
			s.be.ClearArea(w.X, w.Y, s.set.Width, half)
			shown, err = s.refreshWindow0(half, 1, false)
		}
		if err != nil {
			return err
		}

		if !shown {
			w.ScrollbackTop -= half
			s.be.ClearArea(w.X, w.Y, s.set.Width, w.Height)
			if _, err := s.refreshWindow0(w.Height, 1, true); err != nil {
				return err
			}
		}

	case t == backend.EventPageDown && w.ScrolledBack():
		w.ScrollbackTop -= half
		s.copyArea(w.Y, w.X, w.Y+half, w.X, w.Height-half, w.Width)
		s.be.ClearArea(w.X, w.Y+w.Height-half, s.set.Width, half)
		if _, err := s.refreshWindow0(half, 1+w.Height-half, false); err != nil {
			return err
		}
	}

	s.be.SetCursorVisibility(!w.ScrolledBack())
	s.be.Update()
	return nil
}

// leaveScrollback returns to the live position before any event other than
// paging is handled.
func (s *Session) leaveScrollback() error {
	w := s.set.Get(0)
	if !w.ScrolledBack() {
		return nil
	}
	s.eraseWindow(0)
	w.ScrollbackTop = w.Height
	if _, err := s.refreshWindow0(w.Height, 1, false); err != nil {
		return err
	}
	s.be.SetCursorVisibility(true)
	s.be.Update()
	return nil
}
