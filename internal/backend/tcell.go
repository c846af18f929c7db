package backend

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// Tcell implements Backend on a tcell screen.
type Tcell struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}

	y, x      int
	visible   bool
	textStyle style.Style
	fg, bg    style.Colour
	pen       tcell.Style

	closeOnce sync.Once
}

// NewTcell initializes screen and starts polling its events. A nil screen
// opens the controlling terminal.
func NewTcell(screen tcell.Screen) (*Tcell, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create tcell screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	screen.Clear()

	t := &Tcell{
		screen:  screen,
		events:  make(chan tcell.Event, 100),
		done:    make(chan struct{}),
		y:       1,
		x:       1,
		visible: true,
		fg:      style.Default,
		bg:      style.Default,
		pen:     tcell.StyleDefault,
	}
	go t.pollLoop()
	return t, nil
}

func (t *Tcell) pollLoop() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *Tcell) GotoYX(y, x int) {
	t.y, t.x = y, x
}

func (t *Tcell) Output(text string) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		t.screen.SetContent(t.x-1, t.y-1, r, nil, t.pen)
		t.x += w
	}
}

func (t *Tcell) blank() tcell.Style {
	return tcell.StyleDefault.Background(tcellColour(t.bg))
}

func (t *Tcell) ClearToEOL() {
	width, _ := t.screen.Size()
	b := t.blank()
	for x := t.x - 1; x < width; x++ {
		t.screen.SetContent(x, t.y-1, ' ', nil, b)
	}
}

func (t *Tcell) ClearArea(x, y, width, height int) {
	b := t.blank()
	for row := y - 1; row < y-1+height; row++ {
		for col := x - 1; col < x-1+width; col++ {
			t.screen.SetContent(col, row, ' ', nil, b)
		}
	}
}

type tcellCell struct {
	main  rune
	comb  []rune
	style tcell.Style
}

func (t *Tcell) CopyArea(dstY, dstX, srcY, srcX, height, width int) error {
	if height <= 0 || width <= 0 {
		return nil
	}
	screenWidth, screenHeight := t.screen.Size()
	if !validArea(srcY, srcX, height, width, screenHeight, screenWidth) ||
		!validArea(dstY, dstX, height, width, screenHeight, screenWidth) {
		return fmt.Errorf("%w: copy %dx%d from (%d,%d) to (%d,%d)",
			ErrOutOfBounds, height, width, srcY, srcX, dstY, dstX)
	}

	block := make([]tcellCell, 0, height*width)
	for row := range height {
		for col := range width {
			mainc, combc, st, _ := t.screen.GetContent(srcX-1+col, srcY-1+row) //nolint:staticcheck // GetContent is the correct API
			block = append(block, tcellCell{main: mainc, comb: combc, style: st})
		}
	}
	for i, c := range block {
		row, col := i/width, i%width
		t.screen.SetContent(dstX-1+col, dstY-1+row, c.main, c.comb, c.style)
	}
	return nil
}

func (t *Tcell) SetTextStyle(s style.Style) {
	t.textStyle = s
	t.updatePen()
}

func (t *Tcell) SetColour(fg, bg style.Colour) {
	if fg != style.Current {
		t.fg = fg
	}
	if bg != style.Current {
		t.bg = bg
	}
	t.updatePen()
}

func (t *Tcell) updatePen() {
	st := tcell.StyleDefault.
		Foreground(tcellColour(t.fg)).
		Background(tcellColour(t.bg))
	if t.textStyle.Has(style.Bold) {
		st = st.Bold(true)
	}
	if t.textStyle.Has(style.Italic) {
		st = st.Italic(true)
	}
	if t.textStyle.Has(style.Reverse) {
		st = st.Reverse(true)
	}
	t.pen = st
}

// tcellColour maps a colour code onto the tcell palette.
func tcellColour(c style.Colour) tcell.Color {
	switch c {
	case style.Black:
		return tcell.PaletteColor(0)
	case style.Red:
		return tcell.PaletteColor(1)
	case style.Green:
		return tcell.PaletteColor(2)
	case style.Yellow:
		return tcell.PaletteColor(3)
	case style.Blue:
		return tcell.PaletteColor(4)
	case style.Magenta:
		return tcell.PaletteColor(5)
	case style.Cyan:
		return tcell.PaletteColor(6)
	case style.White:
		return tcell.PaletteColor(15)
	case style.LightGrey:
		return tcell.PaletteColor(7)
	case style.MediumGrey:
		return tcell.PaletteColor(8)
	case style.DarkGrey:
		return tcell.PaletteColor(238)
	default:
		return tcell.ColorDefault
	}
}

func (t *Tcell) SetCursorVisibility(visible bool) {
	t.visible = visible
}

func (t *Tcell) Size() (int, int) {
	width, height := t.screen.Size()
	return height, width
}

func (t *Tcell) ColourAvailable() bool {
	return t.screen.Colors() >= 8
}

func (t *Tcell) DefaultColours() (style.Colour, style.Colour) {
	return style.Default, style.Default
}

func (t *Tcell) TimedInputAvailable() bool {
	return true
}

func (t *Tcell) NextEvent(timeout time.Duration) (Event, error) {
	var timer <-chan time.Time
	if timeout > 0 {
		tm := time.NewTimer(timeout)
		defer tm.Stop()
		timer = tm.C
	}

	for {
		select {
		case ev := <-t.events:
			if e, ok := convertTcellEvent(t.screen, ev); ok {
				return e, nil
			}
		case <-timer:
			return Key(EventTimeout), nil
		case <-t.done:
			return Event{}, ErrNoInput
		}
	}
}

// convertTcellEvent maps tcell events to engine events.
func convertTcellEvent(screen tcell.Screen, ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
		return Key(EventResize), true
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyRune:
			return Input(e.Rune()), true
		case tcell.KeyEnter:
			return Input('\n'), true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return Key(EventBackspace), true
		case tcell.KeyDelete:
			return Key(EventDelete), true
		case tcell.KeyLeft:
			return Key(EventLeft), true
		case tcell.KeyRight:
			return Key(EventRight), true
		case tcell.KeyUp:
			return Key(EventUp), true
		case tcell.KeyDown:
			return Key(EventDown), true
		case tcell.KeyPgUp:
			return Key(EventPageUp), true
		case tcell.KeyPgDn:
			return Key(EventPageDown), true
		case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
			return Key(EventEscape), true
		case tcell.KeyCtrlA:
			return Key(EventCtrlA), true
		case tcell.KeyCtrlE:
			return Key(EventCtrlE), true
		case tcell.KeyCtrlL:
			return Input(12), true
		case tcell.KeyCtrlR:
			return Input(18), true
		}
	}
	return Event{}, false
}

func (t *Tcell) Update() {
	if t.visible {
		t.screen.ShowCursor(t.x-1, t.y-1)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

func (t *Tcell) RedrawFromScratch() {
	t.screen.Sync()
}

func (t *Tcell) Reset() {
	t.textStyle = style.Roman
	t.fg, t.bg = style.Default, style.Default
	t.updatePen()
	t.screen.Clear()
	t.y, t.x = 1, 1
}

func (t *Tcell) Close(message string) {
	t.closeOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
		if message != "" {
			fmt.Fprintln(os.Stderr, message)
		}
	})
}
