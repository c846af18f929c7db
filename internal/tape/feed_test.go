package tape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
)

func drain(m *backend.Memory) []backend.Event {
	var events []backend.Event
	for m.Pending() > 0 {
		ev, err := m.NextEvent(0)
		if err != nil {
			break
		}
		events = append(events, ev)
	}
	return events
}

func TestFeedEvents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []backend.Event
	}{
		{
			name:  "Typed text and enter",
			input: "Type \"ab\"\nEnter",
			want: []backend.Event{
				backend.Input('a'), backend.Input('b'), backend.Input('\n'),
			},
		},
		{
			name:  "Typing delay becomes timeouts",
			input: `Type@150ms "ab"`,
			want: []backend.Event{
				backend.Input('a'), backend.Key(backend.EventTimeout), backend.Key(backend.EventTimeout),
				backend.Input('b'), backend.Key(backend.EventTimeout), backend.Key(backend.EventTimeout),
			},
		},
		{
			name:  "Sleep rounds up to whole ticks",
			input: "Sleep 250ms",
			want: []backend.Event{
				backend.Key(backend.EventTimeout), backend.Key(backend.EventTimeout), backend.Key(backend.EventTimeout),
			},
		},
		{
			name:  "Repeat counts",
			input: "Left 2\nPageUp",
			want: []backend.Event{
				backend.Key(backend.EventLeft), backend.Key(backend.EventLeft), backend.Key(backend.EventPageUp),
			},
		},
		{
			name:  "Control keys",
			input: "Ctrl+A\nCtrl+E\nCtrl+L\nCtrl+R",
			want: []backend.Event{
				backend.Key(backend.EventCtrlA), backend.Key(backend.EventCtrlE),
				backend.Input(12), backend.Input(18),
			},
		},
		{
			name:  "Editing keys",
			input: "Backspace\nDelete\nEscape\nSpace\nUp\nDown\nRight\nPageDown",
			want: []backend.Event{
				backend.Key(backend.EventBackspace), backend.Key(backend.EventDelete),
				backend.Key(backend.EventEscape), backend.Input(' '),
				backend.Key(backend.EventUp), backend.Key(backend.EventDown),
				backend.Key(backend.EventRight), backend.Key(backend.EventPageDown),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands, errs := ParseFile(tt.input)
			if len(errs) != 0 {
				t.Fatalf("Unexpected errors: %v", errs)
			}
			m := backend.NewMemory(5, 20)
			Feed(m, commands)

			got := drain(m)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d events, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Event %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestFeedResizeIsDeferred(t *testing.T) {
	commands, _ := ParseFile("Enter\nResize 30 8")
	m := backend.NewMemory(5, 20)
	p := NewPlayer(commands)
	p.Feed(m)

	if !p.IsFinished() {
		t.Error("Expected the player to be finished after feeding")
	}
	if h, w := m.Size(); h != 5 || w != 20 {
		t.Fatalf("Expected size to wait for the event, got %dx%d", h, w)
	}
	events := drain(m)
	if len(events) != 2 || events[1].Type != backend.EventResize {
		t.Fatalf("Expected enter then resize, got %v", events)
	}
	if h, w := m.Size(); h != 8 || w != 30 {
		t.Errorf("Expected 8x30, got %dx%d", h, w)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.tape")
	if err := os.WriteFile(good, []byte("Type \"look\"\nEnter\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	commands, err := ReadFile(good)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(commands) != 2 {
		t.Errorf("Expected 2 commands, got %d", len(commands))
	}

	bad := filepath.Join(dir, "bad.tape")
	if err := os.WriteFile(bad, []byte("Sleep\nType 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(bad)
	if err == nil {
		t.Fatal("Expected parse errors")
	}
	if !strings.Contains(err.Error(), "line 1") || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected both errors to be reported, got %v", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.tape")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
