package backend

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/monoscreen/internal/terminal"
)

const (
	showCursor = "\x1b[?25h"
	hideCursor = "\x1b[?25l"
)

// TerminalOptions configures an ANSI terminal backend.
type TerminalOptions struct {
	// In and Out default to os.Stdin and os.Stdout.
	In  *os.File
	Out *os.File
	// Palette resolves colour codes; BasicPalette when nil.
	Palette Palette
	// AltScreen switches to the alternate screen while open.
	AltScreen bool
}

// Terminal is a backend writing ANSI sequences to a real terminal. Drawing
// goes to a shadow Memory grid first, so area copies work on any terminal;
// Update sends the rows that changed.
type Terminal struct {
	*Memory

	in      *os.File
	out     *bufio.Writer
	outFile *os.File
	state   *term.State
	alt     bool
	profile colorprofile.Profile

	events    chan Event
	done      chan struct{}
	stopWatch func()
	readErr   error
	errMu     sync.Mutex

	shownVisible bool
	closeOnce    sync.Once
}

// NewTerminal puts the terminal into raw mode and starts reading input.
func NewTerminal(opts TerminalOptions) (*Terminal, error) {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	width, height, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal size: %w", err)
	}

	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	t := &Terminal{
		Memory:       NewMemory(height, width),
		in:           in,
		out:          bufio.NewWriter(out),
		outFile:      out,
		state:        state,
		alt:          opts.AltScreen,
		profile:      colorprofile.Detect(out, os.Environ()),
		events:       make(chan Event, 100),
		done:         make(chan struct{}),
		shownVisible: true,
	}
	if opts.Palette != nil {
		t.SetPalette(opts.Palette)
	}

	if t.alt {
		t.out.WriteString(ansi.SetMode(ansi.ModeAltScreenSaveCursor))
	}
	t.out.WriteString(ansi.EraseDisplay(2))
	_ = t.out.Flush()

	t.stopWatch = t.watchResize()
	go t.readLoop()

	return t, nil
}

// convert downsamples a colour to what the terminal supports.
func (t *Terminal) convert(c color.Color) color.Color {
	return t.profile.Convert(c)
}

func (t *Terminal) post(ev Event) {
	select {
	case t.events <- ev:
	case <-t.done:
	default:
		// Queue full; drop rather than block the reader.
	}
}

func (t *Terminal) readLoop() {
	var decoder uv.EventDecoder
	buf := make([]byte, 1024)

	for {
		n, err := t.in.Read(buf)
		data := buf[:n]
		for len(data) > 0 {
			k, ev := decoder.Decode(data)
			if k == 0 {
				break
			}
			data = data[k:]
			for _, e := range translateKey(ev) {
				t.post(e)
			}
		}
		if err != nil {
			t.errMu.Lock()
			t.readErr = err
			t.errMu.Unlock()
			t.post(Key(EventEscape))
			return
		}
	}
}

// translateKey maps a decoded key press to engine events.
func translateKey(ev uv.Event) []Event {
	kp, ok := ev.(uv.KeyPressEvent)
	if !ok {
		return nil
	}
	key := uv.Key(kp)

	if key.Mod == uv.ModCtrl {
		switch key.Code {
		case 'a':
			return []Event{Key(EventCtrlA)}
		case 'e':
			return []Event{Key(EventCtrlE)}
		case 'h':
			return []Event{Key(EventBackspace)}
		case 'l':
			return []Event{Input(12)}
		case 'r':
			return []Event{Input(18)}
		case 'c', 'd':
			return []Event{Key(EventEscape)}
		}
		return nil
	}

	switch key.Code {
	case uv.KeyEnter:
		return []Event{Input('\n')}
	case uv.KeyBackspace:
		return []Event{Key(EventBackspace)}
	case uv.KeyDelete:
		return []Event{Key(EventDelete)}
	case uv.KeyLeft:
		return []Event{Key(EventLeft)}
	case uv.KeyRight:
		return []Event{Key(EventRight)}
	case uv.KeyUp:
		return []Event{Key(EventUp)}
	case uv.KeyDown:
		return []Event{Key(EventDown)}
	case uv.KeyPgUp:
		return []Event{Key(EventPageUp)}
	case uv.KeyPgDown:
		return []Event{Key(EventPageDown)}
	case uv.KeyEscape:
		return []Event{Key(EventEscape)}
	}

	var events []Event
	for _, r := range key.Text {
		events = append(events, Input(r))
	}
	return events
}

// NextEvent waits for input, a resize or the timeout.
func (t *Terminal) NextEvent(timeout time.Duration) (Event, error) {
	var timer <-chan time.Time
	if timeout > 0 {
		tm := time.NewTimer(timeout)
		defer tm.Stop()
		timer = tm.C
	}

	select {
	case ev := <-t.events:
		if ev.Type == EventResize {
			t.syncSize()
		}
		if ev.Type == EventEscape {
			t.errMu.Lock()
			err := t.readErr
			t.errMu.Unlock()
			if err != nil && err != io.EOF {
				return ev, fmt.Errorf("failed to read terminal input: %w", err)
			}
		}
		return ev, nil
	case <-timer:
		return Key(EventTimeout), nil
	case <-t.done:
		return Event{}, ErrNoInput
	}
}

func (t *Terminal) syncSize() {
	width, height, err := term.GetSize(int(t.outFile.Fd()))
	if err != nil || width < 1 || height < 1 {
		return
	}
	if h, w := t.Memory.Size(); h == height && w == width {
		return
	}
	t.Memory.allocate(height, width)
	t.out.WriteString(ansi.EraseDisplay(2))
}

// Size queries the terminal, so a forced resize sees the real size even
// where no resize signal exists.
func (t *Terminal) Size() (int, int) {
	t.syncSize()
	return t.Memory.Size()
}

func (t *Terminal) TimedInputAvailable() bool {
	return true
}

// Update sends the changed rows and places the cursor.
func (t *Terminal) Update() {
	t.Memory.Update()
	for _, y := range t.takeDirty() {
		t.out.WriteString(ansi.CursorPosition(1, y))
		t.out.WriteString(t.RenderRow(y, t.convert))
	}

	y, x := t.Cursor()
	height, width := t.Memory.Size()
	t.out.WriteString(ansi.CursorPosition(min(max(x, 1), width), min(max(y, 1), height)))

	if visible := t.CursorVisible(); visible != t.shownVisible {
		if visible {
			t.out.WriteString(showCursor)
		} else {
			t.out.WriteString(hideCursor)
		}
		t.shownVisible = visible
	}
	_ = t.out.Flush()
}

func (t *Terminal) RedrawFromScratch() {
	t.out.WriteString(ansi.EraseDisplay(2))
	t.Memory.RedrawFromScratch()
	t.Update()
}

// Close restores the terminal and prints message, if any.
func (t *Terminal) Close(message string) {
	t.closeOnce.Do(func() {
		t.Memory.Close(message)
		close(t.done)
		if t.stopWatch != nil {
			t.stopWatch()
		}
		_ = t.out.Flush()

		if t.alt {
			_, _ = t.outFile.WriteString(ansi.ResetMode(ansi.ModeAltScreenSaveCursor))
		}
		terminal.ResetTerminal(t.outFile)
		if t.state != nil {
			_ = term.Restore(int(t.in.Fd()), t.state)
		}
		if message != "" {
			fmt.Fprintln(t.outFile, message)
		}
	})
}
