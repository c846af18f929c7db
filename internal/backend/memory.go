package backend

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// Memory is a headless backend holding the screen in a cell buffer. Events are
// scripted with Post and PostString. It is safe to post from another
// goroutine while the engine runs.
type Memory struct {
	mu     sync.Mutex
	events []queued

	height, width int
	buf           *uv.RenderBuffer

	cursorY, cursorX int
	cursorVisible    bool

	textStyle style.Style
	fg, bg    style.Colour
	pen       uv.Style

	palette   Palette
	colour    bool
	defaultFg style.Colour
	defaultBg style.Colour

	updates  int
	redraws  int
	closed   bool
	closeMsg string
}

// NewMemory creates a blank height x width screen.
func NewMemory(height, width int) *Memory {
	m := &Memory{
		palette:       BasicPalette,
		colour:        true,
		defaultFg:     style.Default,
		defaultBg:     style.Default,
		fg:            style.Default,
		bg:            style.Default,
		cursorVisible: true,
		cursorY:       1,
		cursorX:       1,
	}
	m.allocate(max(height, 1), max(width, 1))
	return m
}

// SetPalette changes how colour codes map to cell colours.
func (m *Memory) SetPalette(p Palette) {
	if p == nil {
		p = BasicPalette
	}
	m.palette = p
	m.updatePen()
}

// SetColourAvailable controls the ColourAvailable report.
func (m *Memory) SetColourAvailable(available bool) {
	m.colour = available
}

// SetDefaultColours controls the DefaultColours report.
func (m *Memory) SetDefaultColours(fg, bg style.Colour) {
	m.defaultFg, m.defaultBg = fg, bg
}

// allocate sizes the buffer, keeping the overlapping content.
func (m *Memory) allocate(height, width int) {
	if m.buf == nil {
		m.buf = uv.NewRenderBuffer(width, height)
	} else {
		m.buf.Resize(width, height)
	}
	m.height, m.width = height, width
	m.markAll()
}

func (m *Memory) markAll() {
	m.buf.Touched = make([]*uv.LineData, m.height)
	for y := range m.height {
		m.buf.TouchLine(0, y, m.width)
	}
}

// queued is one entry of the input queue. A non-zero size is applied when
// the entry is dequeued.
type queued struct {
	ev            Event
	height, width int
}

// Post queues events for NextEvent.
func (m *Memory) Post(events ...Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range events {
		m.events = append(m.events, queued{ev: ev})
	}
}

// PostString queues one input event per rune of s.
func (m *Memory) PostString(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range s {
		m.events = append(m.events, queued{ev: Input(r)})
	}
}

// PostResize queues an EventResize that changes the screen size only when
// NextEvent returns it, the way a terminal resize lands between reads.
func (m *Memory) PostResize(height, width int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, queued{
		ev:     Key(EventResize),
		height: max(height, 1),
		width:  max(width, 1),
	})
}

// Pending returns the number of queued events.
func (m *Memory) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// Resize changes the screen size, keeping the overlapping content, and
// queues an EventResize.
func (m *Memory) Resize(height, width int) {
	m.applySize(max(height, 1), max(width, 1))
	m.Post(Key(EventResize))
}

func (m *Memory) applySize(height, width int) {
	m.allocate(height, width)
	m.cursorY = min(m.cursorY, m.height)
	m.cursorX = min(m.cursorX, m.width)
}

func (m *Memory) GotoYX(y, x int) {
	m.cursorY, m.cursorX = y, x
}

func (m *Memory) Output(text string) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		y, x := m.cursorY-1, m.cursorX-1
		if y >= 0 && y < m.height && x >= 0 && x+w <= m.width {
			m.buf.SetCell(x, y, &uv.Cell{Content: string(r), Width: w, Style: m.pen})
		}
		m.cursorX += w
	}
}

func (m *Memory) blank() uv.Cell {
	c := uv.EmptyCell
	c.Style = uv.Style{Bg: m.pen.Bg}
	return c
}

func (m *Memory) ClearToEOL() {
	y := m.cursorY - 1
	if y < 0 || y >= m.height {
		return
	}
	m.fill(uv.Rect(max(m.cursorX-1, 0), y, m.width, 1))
}

func (m *Memory) ClearArea(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.fill(uv.Rect(x-1, y-1, width, height))
}

// fill paints area, clipped to the screen, with blanks in the pen's
// background.
func (m *Memory) fill(area uv.Rectangle) {
	area = area.Intersect(m.buf.Bounds())
	if area.Empty() {
		return
	}
	b := m.blank()
	m.buf.FillArea(&b, area)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		m.buf.TouchLine(area.Min.X, y, area.Dx())
	}
}

func (m *Memory) CopyArea(dstY, dstX, srcY, srcX, height, width int) error {
	if height <= 0 || width <= 0 {
		return nil
	}
	if !validArea(srcY, srcX, height, width, m.height, m.width) ||
		!validArea(dstY, dstX, height, width, m.height, m.width) {
		return fmt.Errorf("%w: copy %dx%d from (%d,%d) to (%d,%d) on %dx%d",
			ErrOutOfBounds, height, width, srcY, srcX, dstY, dstX, m.height, m.width)
	}

	block := m.buf.CloneArea(uv.Rect(srcX-1, srcY-1, width, height))
	for i := range height {
		copy(m.buf.Line(dstY-1+i)[dstX-1:dstX-1+width], block.Line(i))
		m.buf.TouchLine(dstX-1, dstY-1+i, width)
	}
	return nil
}

func (m *Memory) SetTextStyle(s style.Style) {
	m.textStyle = s
	m.updatePen()
}

func (m *Memory) SetColour(fg, bg style.Colour) {
	if fg != style.Current {
		m.fg = fg
	}
	if bg != style.Current {
		m.bg = bg
	}
	m.updatePen()
}

func (m *Memory) updatePen() {
	m.pen = uv.Style{
		Fg: m.palette(m.fg, true),
		Bg: m.palette(m.bg, false),
	}
	if m.textStyle.Has(style.Bold) {
		m.pen.Attrs |= uv.AttrBold
	}
	if m.textStyle.Has(style.Italic) {
		m.pen.Attrs |= uv.AttrItalic
	}
	if m.textStyle.Has(style.Reverse) {
		m.pen.Attrs |= uv.AttrReverse
	}
}

func (m *Memory) SetCursorVisibility(visible bool) {
	m.cursorVisible = visible
}

func (m *Memory) Size() (int, int) {
	return m.height, m.width
}

func (m *Memory) ColourAvailable() bool {
	return m.colour
}

func (m *Memory) DefaultColours() (style.Colour, style.Colour) {
	return m.defaultFg, m.defaultBg
}

func (m *Memory) TimedInputAvailable() bool {
	return true
}

// NextEvent pops the next queued event. With an empty queue it reports a
// timeout when one was requested and ErrNoInput otherwise.
func (m *Memory) NextEvent(timeout time.Duration) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) > 0 {
		q := m.events[0]
		m.events = m.events[1:]
		if q.height > 0 {
			m.applySize(q.height, q.width)
		}
		return q.ev, nil
	}
	if timeout > 0 {
		return Key(EventTimeout), nil
	}
	return Event{}, ErrNoInput
}

func (m *Memory) Update() {
	m.updates++
}

func (m *Memory) RedrawFromScratch() {
	m.redraws++
	m.markAll()
}

func (m *Memory) Reset() {
	m.textStyle = style.Roman
	m.fg, m.bg = m.defaultFg, m.defaultBg
	m.updatePen()
	m.ClearArea(1, 1, m.width, m.height)
	m.cursorY, m.cursorX = 1, 1
}

func (m *Memory) Close(message string) {
	m.closed = true
	m.closeMsg = message
}

// Closed reports whether Close was called, and with which message.
func (m *Memory) Closed() (bool, string) {
	return m.closed, m.closeMsg
}

// Updates returns how often Update and RedrawFromScratch were called.
func (m *Memory) Updates() (updates, redraws int) {
	return m.updates, m.redraws
}

// Cursor returns the cursor position.
func (m *Memory) Cursor() (y, x int) {
	return m.cursorY, m.cursorX
}

// CursorVisible reports the last cursor visibility set.
func (m *Memory) CursorVisible() bool {
	return m.cursorVisible
}

// Cell returns the cell at (y, x), or an empty cell outside the screen.
func (m *Memory) Cell(y, x int) uv.Cell {
	if y < 1 || y > m.height || x < 1 || x > m.width {
		return uv.EmptyCell
	}
	return *m.buf.CellAt(x-1, y-1)
}

// Row returns the text of row y without trailing blanks.
func (m *Memory) Row(y int) string {
	if y < 1 || y > m.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range m.buf.Line(y - 1) {
		if c.Width == 0 {
			continue
		}
		if c.Content == "" {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(c.Content)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Rows returns every row as Row does.
func (m *Memory) Rows() []string {
	rows := make([]string, m.height)
	for y := range rows {
		rows[y] = m.Row(y + 1)
	}
	return rows
}

// RenderRow returns row y with SGR sequences for every style change. The
// result always ends in a style reset.
func (m *Memory) RenderRow(y int, convert func(color.Color) color.Color) string {
	if y < 1 || y > m.height {
		return ""
	}
	var sb strings.Builder
	var current uv.Style
	first := true
	for _, c := range m.buf.Line(y - 1) {
		if c.Width == 0 {
			continue
		}
		if first || !sameStyle(c.Style, current) {
			sb.WriteString(ansi.ResetStyle)
			sb.WriteString(sgr(c.Style, convert))
			current = c.Style
			first = false
		}
		if c.Content == "" {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(c.Content)
		}
	}
	sb.WriteString(ansi.ResetStyle)
	return sb.String()
}

// Render returns every row as RenderRow does, joined by newlines.
func (m *Memory) Render(convert func(color.Color) color.Color) string {
	rows := make([]string, m.height)
	for y := range rows {
		rows[y] = m.RenderRow(y+1, convert)
	}
	return strings.Join(rows, "\n")
}

// takeDirty returns the rows changed since the last call.
func (m *Memory) takeDirty() []int {
	var rows []int
	for i, d := range m.buf.Touched {
		if d != nil {
			rows = append(rows, i+1)
			m.buf.Touched[i] = nil
		}
	}
	return rows
}

func sameStyle(a, b uv.Style) bool {
	return a.Attrs == b.Attrs && sameColour(a.Fg, b.Fg) && sameColour(a.Bg, b.Bg)
}

func sameColour(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func sgr(s uv.Style, convert func(color.Color) color.Color) string {
	var te ansi.Style
	if s.Fg != nil {
		fg := s.Fg
		if convert != nil {
			fg = convert(fg)
		}
		if fg != nil {
			te = te.ForegroundColor(ansi.Color(fg))
		}
	}
	if s.Bg != nil {
		bg := s.Bg
		if convert != nil {
			bg = convert(bg)
		}
		if bg != nil {
			te = te.BackgroundColor(ansi.Color(bg))
		}
	}
	if s.Attrs&uv.AttrBold != 0 {
		te = te.Bold()
	}
	if s.Attrs&uv.AttrItalic != 0 {
		te = te.Italic(true)
	}
	if s.Attrs&uv.AttrReverse != 0 {
		te = te.Reverse(true)
	}
	return te.String()
}
