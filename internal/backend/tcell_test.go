package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

func newSimulation(t *testing.T, width, height int) (*Tcell, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	b, err := NewTcell(sim)
	if err != nil {
		t.Fatalf("NewTcell failed: %v", err)
	}
	sim.SetSize(width, height)
	t.Cleanup(func() { b.Close("") })
	return b, sim
}

func TestTcellOutputAndCopy(t *testing.T) {
	b, sim := newSimulation(t, 10, 3)

	b.GotoYX(2, 1)
	b.SetTextStyle(style.Reverse)
	b.Output("hi")
	if err := b.CopyArea(1, 1, 2, 1, 1, 10); err != nil {
		t.Fatalf("CopyArea failed: %v", err)
	}

	mainc, _, st, _ := sim.GetContent(1, 0) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'i' {
		t.Errorf("Expected copied rune 'i', got %q", mainc)
	}
	if _, _, attrs := st.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("Expected copied cell to keep reverse video")
	}

	if err := b.CopyArea(3, 1, 1, 1, 2, 10); err == nil {
		t.Error("Expected out-of-bounds copy to fail")
	}
}

func TestTcellKeyEvents(t *testing.T) {
	b, sim := newSimulation(t, 10, 3)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyPgUp, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlL, 0, tcell.ModCtrl)

	expected := []Event{Input('x'), Key(EventPageUp), Input(12)}
	var got []Event
	for len(got) < len(expected) {
		ev, err := b.NextEvent(time.Second)
		if err != nil {
			t.Fatalf("NextEvent failed: %v", err)
		}
		switch ev.Type {
		case EventTimeout:
			t.Fatalf("Timed out after %v", got)
		case EventResize:
			continue
		}
		got = append(got, ev)
	}

	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}
