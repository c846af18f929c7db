package backend

import (
	"errors"
	"strings"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// =============================================================================
// Drawing Tests
// =============================================================================

func TestMemoryOutputAdvancesCursor(t *testing.T) {
	m := NewMemory(4, 10)
	m.GotoYX(2, 3)
	m.Output("hello")

	if row := m.Row(2); row != "  hello" {
		t.Errorf("Expected %q, got %q", "  hello", row)
	}
	if y, x := m.Cursor(); y != 2 || x != 8 {
		t.Errorf("Expected cursor (2,8), got (%d,%d)", y, x)
	}
}

func TestMemoryOutputClipsAtEdge(t *testing.T) {
	m := NewMemory(2, 5)
	m.GotoYX(1, 4)
	m.Output("abcdef")

	if row := m.Row(1); row != "   ab" {
		t.Errorf("Expected clipped row, got %q", row)
	}
}

func TestMemoryStyleAttributes(t *testing.T) {
	m := NewMemory(2, 10)
	m.SetTextStyle(style.Reverse | style.Bold)
	m.SetColour(style.Red, style.Blue)
	m.Output("x")

	c := m.Cell(1, 1)
	if c.Style.Attrs&uv.AttrReverse == 0 || c.Style.Attrs&uv.AttrBold == 0 {
		t.Errorf("Expected reverse and bold attributes, got %d", c.Style.Attrs)
	}
	if !sameColour(c.Style.Fg, BasicPalette(style.Red, true)) {
		t.Errorf("Expected red foreground, got %v", c.Style.Fg)
	}

	m.SetColour(style.Current, style.Green)
	m.Output("y")
	if c := m.Cell(1, 2); !sameColour(c.Style.Fg, BasicPalette(style.Red, true)) {
		t.Errorf("Expected current foreground to be kept, got %v", c.Style.Fg)
	}
}

func TestMemoryClearToEOLUsesBackground(t *testing.T) {
	m := NewMemory(1, 6)
	m.Output("abcdef")
	m.SetColour(style.Default, style.Blue)
	m.GotoYX(1, 3)
	m.ClearToEOL()

	if row := m.Row(1); row != "ab" {
		t.Errorf("Expected %q, got %q", "ab", row)
	}
	if c := m.Cell(1, 4); !sameColour(c.Style.Bg, BasicPalette(style.Blue, false)) {
		t.Errorf("Expected cleared cell to carry blue background, got %v", c.Style.Bg)
	}
}

func TestMemoryClearArea(t *testing.T) {
	m := NewMemory(3, 4)
	for y := 1; y <= 3; y++ {
		m.GotoYX(y, 1)
		m.Output("xxxx")
	}
	m.ClearArea(2, 2, 2, 5)

	expected := []string{"xxxx", "x  x", "x  x"}
	for i, row := range m.Rows() {
		if row != expected[i] {
			t.Errorf("row %d: expected %q, got %q", i+1, expected[i], row)
		}
	}
}

// =============================================================================
// CopyArea Tests
// =============================================================================

func TestMemoryCopyAreaScrollsUp(t *testing.T) {
	m := NewMemory(4, 3)
	for y, s := range []string{"aaa", "bbb", "ccc", "ddd"} {
		m.GotoYX(y+1, 1)
		m.Output(s)
	}

	if err := m.CopyArea(1, 1, 2, 1, 3, 3); err != nil {
		t.Fatalf("CopyArea failed: %v", err)
	}

	expected := []string{"bbb", "ccc", "ddd", "ddd"}
	for i, row := range m.Rows() {
		if row != expected[i] {
			t.Errorf("row %d: expected %q, got %q", i+1, expected[i], row)
		}
	}
}

func TestMemoryCopyAreaOverlapsRight(t *testing.T) {
	m := NewMemory(1, 6)
	m.Output("abcdef")

	if err := m.CopyArea(1, 2, 1, 1, 1, 5); err != nil {
		t.Fatalf("CopyArea failed: %v", err)
	}
	if row := m.Row(1); row != "aabcde" {
		t.Errorf("Expected %q, got %q", "aabcde", row)
	}
}

func TestMemoryCopyAreaChecksBounds(t *testing.T) {
	m := NewMemory(4, 4)
	tests := []struct {
		name                                    string
		dstY, dstX, srcY, srcX, height, width int
	}{
		{"source below screen", 1, 1, 2, 1, 4, 4},
		{"destination right of screen", 1, 2, 1, 1, 1, 4},
		{"zero row", 0, 1, 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.CopyArea(tt.dstY, tt.dstX, tt.srcY, tt.srcX, tt.height, tt.width)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Expected ErrOutOfBounds, got %v", err)
			}
		})
	}

	if err := m.CopyArea(1, 1, 2, 1, 0, 4); err != nil {
		t.Errorf("Expected empty copy to succeed, got %v", err)
	}
}

// =============================================================================
// Event Tests
// =============================================================================

func TestMemoryEvents(t *testing.T) {
	m := NewMemory(2, 2)
	m.PostString("a\n")
	m.Post(Key(EventPageUp))

	expected := []Event{Input('a'), Input('\n'), Key(EventPageUp)}
	for i, want := range expected {
		got, err := m.NextEvent(0)
		if err != nil {
			t.Fatalf("event %d: unexpected error %v", i, err)
		}
		if got != want {
			t.Errorf("event %d: expected %+v, got %+v", i, want, got)
		}
	}

	if ev, err := m.NextEvent(100 * time.Millisecond); err != nil || ev.Type != EventTimeout {
		t.Errorf("Expected timeout, got %+v (%v)", ev, err)
	}
	if _, err := m.NextEvent(0); !errors.Is(err, ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got %v", err)
	}
}

func TestMemoryResizeKeepsContent(t *testing.T) {
	m := NewMemory(2, 4)
	m.Output("abcd")
	m.Resize(3, 2)

	if h, w := m.Size(); h != 3 || w != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", h, w)
	}
	if row := m.Row(1); row != "ab" {
		t.Errorf("Expected cropped row %q, got %q", "ab", row)
	}
	if ev, _ := m.NextEvent(0); ev.Type != EventResize {
		t.Errorf("Expected resize event, got %v", ev.Type)
	}
}

func TestMemoryPostResizeAppliesOnDequeue(t *testing.T) {
	m := NewMemory(4, 10)
	m.PostString("a")
	m.PostResize(6, 20)

	if h, w := m.Size(); h != 4 || w != 10 {
		t.Fatalf("Expected size unchanged before dequeue, got %dx%d", h, w)
	}
	if ev, _ := m.NextEvent(0); ev.Type != EventInput {
		t.Fatalf("Expected input first, got %v", ev.Type)
	}
	if ev, _ := m.NextEvent(0); ev.Type != EventResize {
		t.Fatalf("Expected resize event, got %v", ev.Type)
	}
	if h, w := m.Size(); h != 6 || w != 20 {
		t.Errorf("Expected 6x20 after dequeue, got %dx%d", h, w)
	}
}

func TestRenderRowResetsStyle(t *testing.T) {
	m := NewMemory(1, 3)
	m.SetTextStyle(style.Bold)
	m.Output("ab")

	out := m.RenderRow(1, nil)
	if out == "" || out[len(out)-3:] != "\x1b[m" {
		t.Errorf("Expected rendered row to end with a reset, got %q", out)
	}
	if len(m.takeDirty()) != 1 || len(m.takeDirty()) != 0 {
		t.Error("Expected dirty rows to be reported once")
	}
}

func TestMemoryWideRuneOverwrite(t *testing.T) {
	m := NewMemory(1, 6)
	m.Output("a世b")
	if row := m.Row(1); row != "a世b" {
		t.Fatalf("Expected %q, got %q", "a世b", row)
	}

	m.GotoYX(1, 3)
	m.Output("x")
	if row := m.Row(1); row != "a x b" && row != "a xb" {
		t.Errorf("Expected the wide rune to be blanked, got %q", row)
	}
	if c := m.Cell(1, 2); c.Content == "世" {
		t.Error("Expected the wide rune to be removed after a partial overwrite")
	}
}

func TestMemoryCopyAreaKeepsWideRunes(t *testing.T) {
	m := NewMemory(2, 6)
	m.GotoYX(2, 1)
	m.Output("世界")

	if err := m.CopyArea(1, 1, 2, 1, 1, 6); err != nil {
		t.Fatalf("CopyArea: %v", err)
	}
	if row := m.Row(1); row != "世界" {
		t.Errorf("Expected copied wide runes, got %q", row)
	}
	if c := m.Cell(1, 3); c.Width != 2 {
		t.Errorf("Expected a wide cell at column 3, got width %d", c.Width)
	}
}

func TestSGRItalicReverse(t *testing.T) {
	got := sgr(uv.Style{Attrs: uv.AttrItalic | uv.AttrReverse}, nil)
	if want := "\x1b[3;7m"; got != want {
		t.Errorf("sgr() = %q, want %q", got, want)
	}

	m := NewMemory(1, 4)
	m.SetTextStyle(style.Italic | style.Reverse)
	m.Output("ab")
	if out := m.RenderRow(1, nil); !strings.Contains(out, "7mab") {
		t.Errorf("Expected the styled text in the rendered row, got %q", out)
	}
}

func TestMemoryDirtyRowsAfterClear(t *testing.T) {
	m := NewMemory(3, 4)
	m.takeDirty()

	m.ClearArea(1, 2, 4, 1)
	rows := m.takeDirty()
	if len(rows) != 1 || rows[0] != 2 {
		t.Errorf("Expected row 2 dirty, got %v", rows)
	}
}
