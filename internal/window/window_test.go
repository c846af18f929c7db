package window_test

import (
	"testing"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
	"github.com/Gaurav-Gosain/monoscreen/internal/window"
)

var defaults = window.Defaults{Fg: style.White, Bg: style.Black}

// =============================================================================
// Allocation Tests
// =============================================================================

func TestAllocateWindowCounts(t *testing.T) {
	tests := []struct {
		version int
		count   int
		status  int
	}{
		{1, 2, 1},
		{2, 2, 1},
		{3, 3, 2},
		{4, 2, -1},
		{5, 2, -1},
		{6, 8, -1},
		{8, 2, -1},
	}

	for _, tt := range tests {
		s := window.Allocate(tt.version, 24, 80, defaults)
		if s.Len() != tt.count {
			t.Errorf("v%d: expected %d windows, got %d", tt.version, tt.count, s.Len())
		}
		if s.Status != tt.status {
			t.Errorf("v%d: expected status window %d, got %d", tt.version, tt.status, s.Status)
		}
	}
}

func TestAllocateStatusLayout(t *testing.T) {
	s := window.Allocate(3, 24, 80, window.Defaults{LeftMargin: 2, RightMargin: 3})

	lower := s.Get(0)
	if lower.Y != 2 || lower.Height != 23 || lower.ScrollbackTop != 23 {
		t.Errorf("Expected lower window at row 2 with height 23, got y=%d h=%d top=%d",
			lower.Y, lower.Height, lower.ScrollbackTop)
	}
	if lower.CursorY != 23 || lower.CursorX != 3 {
		t.Errorf("Expected v3 cursor at bottom home column (23,3), got (%d,%d)", lower.CursorY, lower.CursorX)
	}
	if lower.TextWidth() != 75 {
		t.Errorf("Expected text width 75, got %d", lower.TextWidth())
	}
	if !lower.Wrapping || !lower.Buffering {
		t.Error("Expected lower window to wrap and buffer")
	}

	upper := s.Get(1)
	if upper.Y != 2 || upper.Height != 0 || upper.Wrapping || upper.Buffering {
		t.Errorf("Unexpected upper window: %+v", *upper)
	}

	status := s.Get(s.Status)
	if status.Height != 1 || status.Y != 1 || status.TextStyle != style.Reverse {
		t.Errorf("Unexpected status window: %+v", *status)
	}
	if s.Valid(s.Status) {
		t.Error("Status window must not be selectable by the host")
	}
}

func TestAllocateVersionSixIgnoresMargins(t *testing.T) {
	s := window.Allocate(6, 24, 80, window.Defaults{LeftMargin: 4, RightMargin: 4})
	for _, w := range s.All() {
		if w.LeftMargin != 0 || w.RightMargin != 0 {
			t.Errorf("window %d: expected no margins in v6", w.Number)
		}
		if !w.Buffering {
			t.Errorf("window %d: expected buffering in v6", w.Number)
		}
		if w.CursorY != 1 {
			t.Errorf("window %d: expected cursor at row 1, got %d", w.Number, w.CursorY)
		}
	}
}

// =============================================================================
// Split Tests
// =============================================================================

func TestSplitMovesBoundary(t *testing.T) {
	s := window.Allocate(5, 24, 80, defaults)
	s.Get(0).CursorY = 10

	if d := s.SplitDelta(5); d != 5 {
		t.Fatalf("Expected delta 5, got %d", d)
	}
	if s.Split(5) {
		t.Error("Only version 3 clears the upper window")
	}

	lower, upper := s.Get(0), s.Get(1)
	if lower.Y != 6 || lower.Height != 19 || lower.CursorY != 5 {
		t.Errorf("Expected lower y=6 h=19 cursor=5, got y=%d h=%d cursor=%d", lower.Y, lower.Height, lower.CursorY)
	}
	if upper.Height != 5 || s.LastSplit != 5 {
		t.Errorf("Expected upper height 5, got %d (last split %d)", upper.Height, s.LastSplit)
	}

	// Shrinking below the cursor resets the upper cursor.
	upper.CursorY = 5
	s.Split(2)
	if upper.CursorY != 1 || upper.CursorX != 1 {
		t.Errorf("Expected upper cursor reset, got (%d,%d)", upper.CursorY, upper.CursorX)
	}
}

func TestSplitResetsLowerCursorAboveWindow(t *testing.T) {
	s := window.Allocate(5, 24, 80, defaults)
	s.Get(0).CursorY = 2
	s.Split(10)
	if c := s.Get(0); c.CursorY != 1 || c.CursorX != 1 {
		t.Errorf("Expected lower cursor reset to (1,1), got (%d,%d)", c.CursorY, c.CursorX)
	}
}

func TestSplitClampsToScreen(t *testing.T) {
	s := window.Allocate(3, 10, 40, defaults)
	if !s.Split(50) {
		t.Error("Expected version 3 split to request clearing")
	}
	if s.LastSplit != 10 {
		t.Errorf("Expected split clamped to 10, got %d", s.LastSplit)
	}
}

// =============================================================================
// Resize and Cursor Tests
// =============================================================================

func TestResizeCropsAndClamps(t *testing.T) {
	s := window.Allocate(3, 24, 80, window.Defaults{LeftMargin: 2, RightMargin: 2})
	s.Split(3)

	changed := s.Resize(12, 30)

	lower := s.Get(0)
	if lower.Width != 30 {
		t.Errorf("Expected lower width 30, got %d", lower.Width)
	}
	if lower.Y+lower.Height-1 > 12 {
		t.Errorf("Lower window exceeds screen: y=%d h=%d", lower.Y, lower.Height)
	}
	if lower.CursorY < 1 || lower.CursorY > lower.Height {
		t.Errorf("Cursor row %d outside 1..%d", lower.CursorY, lower.Height)
	}
	if len(changed) == 0 || changed[0] != 0 {
		t.Errorf("Expected lower window width change to be reported, got %v", changed)
	}
	if s.Get(1).Height != 3 {
		t.Errorf("Expected upper window to keep split size, got %d", s.Get(1).Height)
	}
}

func TestResizeGrowsLowerWidth(t *testing.T) {
	s := window.Allocate(5, 24, 40, defaults)
	changed := s.Resize(24, 100)
	if s.Get(0).Width != 100 {
		t.Errorf("Expected width 100, got %d", s.Get(0).Width)
	}
	if len(changed) != 2 {
		t.Errorf("Expected both windows reported, got %v", changed)
	}
}

func TestResizeIgnoresDegenerateSize(t *testing.T) {
	s := window.Allocate(5, 24, 80, defaults)
	if s.Resize(0, 80) != nil || s.Height != 24 {
		t.Error("Expected zero height to be ignored")
	}
}

func TestSetCursorClamps(t *testing.T) {
	s := window.Allocate(5, 24, 80, defaults)
	s.Split(4)

	s.SetCursor(1, 9, 200)
	upper := s.Get(1)
	if upper.CursorY != 4 || upper.CursorX != 81 {
		t.Errorf("Expected non-wrapping cursor clamped to (4,81), got (%d,%d)", upper.CursorY, upper.CursorX)
	}

	s.SetCursor(0, 3, 200)
	if s.Get(0).CursorX != 80 {
		t.Errorf("Expected wrapping cursor clamped to 80, got %d", s.Get(0).CursorX)
	}
}

func TestResetCursorByVersion(t *testing.T) {
	s4 := window.Allocate(4, 24, 80, window.Defaults{LeftMargin: 1})
	s4.Get(0).ConsecutiveLines = 7
	s4.ResetCursor(0)
	if w := s4.Get(0); w.CursorY != 24 || w.CursorX != 2 || w.ConsecutiveLines != 0 {
		t.Errorf("v4 erase: got (%d,%d) lines=%d", w.CursorY, w.CursorX, w.ConsecutiveLines)
	}

	s5 := window.Allocate(5, 24, 80, defaults)
	s5.ResetCursor(0)
	if w := s5.Get(0); w.CursorY != 1 {
		t.Errorf("v5 erase: expected row 1, got %d", w.CursorY)
	}
}

func TestSetMargins(t *testing.T) {
	s := window.Allocate(5, 24, 10, defaults)
	if s.SetMargins(5, 5) {
		t.Error("Expected margins leaving no text width to be rejected")
	}
	if !s.SetMargins(2, -3) {
		t.Fatal("Expected margins to be accepted")
	}
	if w := s.Get(0); w.LeftMargin != 2 || w.RightMargin != 0 || w.CursorX != 3 {
		t.Errorf("Unexpected margins: left=%d right=%d cursor=%d", w.LeftMargin, w.RightMargin, w.CursorX)
	}
}
