package wrap

import (
	"reflect"
	"testing"
)

type recorder struct {
	events []string
}

func (r *recorder) out(text string) {
	r.events = append(r.events, text)
}

func (r *recorder) meta(name string) func() {
	return func() { r.events = append(r.events, "<"+name+">") }
}

func TestWrapBreaks(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		hyphenate bool
		input     []string
		expected  []string
	}{
		{
			name:     "greedy break at last space",
			width:    10,
			input:    []string{"the quick brown fox"},
			expected: []string{"the quick\n", "brown fox"},
		},
		{
			name:     "newline always breaks",
			width:    10,
			input:    []string{"ab\ncd"},
			expected: []string{"ab\n", "cd"},
		},
		{
			name:     "text split across calls",
			width:    10,
			input:    []string{"the qu", "ick bro", "wn fox"},
			expected: []string{"the quick\n", "brown fox"},
		},
		{
			name:     "overlong word is cut",
			width:    4,
			input:    []string{"abcdefghij"},
			expected: []string{"abcd\n", "efgh\n", "ij"},
		},
		{
			name:      "overlong word is hyphenated",
			width:     4,
			hyphenate: true,
			input:     []string{"abcdefghij"},
			expected:  []string{"abc-\n", "def-\n", "ghij"},
		},
		{
			name:      "soft hyphen preferred",
			width:     8,
			hyphenate: true,
			input:     []string{"extra\u00adordinary"},
			expected:  []string{"extra-\n", "ordinary"},
		},
		{
			name:     "soft hyphen stripped when it does not break",
			width:    20,
			input:    []string{"extra\u00adordinary"},
			expected: []string{"extraordinary"},
		},
		{
			name:     "exact fit keeps row intact",
			width:    5,
			input:    []string{"abcde fgh"},
			expected: []string{"abcde\n", "fgh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			w := New(tt.width, tt.hyphenate, r.out)
			for _, in := range tt.input {
				w.Wrap(in)
			}
			w.Flush()

			if !reflect.DeepEqual(r.events, tt.expected) {
				t.Errorf("Expected %q, got %q", tt.expected, r.events)
			}
		})
	}
}

func TestWrapLineIndex(t *testing.T) {
	r := &recorder{}
	w := New(10, false, r.out)
	w.SetLineIndex(7)
	w.Wrap("hello world")

	expected := []string{"\n", "hello\n"}
	if !reflect.DeepEqual(r.events, expected) {
		t.Errorf("Expected %q, got %q", expected, r.events)
	}
	if w.LineIndex() != 0 {
		t.Errorf("Expected line index 0 after a break, got %d", w.LineIndex())
	}
}

func TestFlushAdvancesLineIndex(t *testing.T) {
	r := &recorder{}
	w := New(10, false, r.out)
	w.Wrap("abc")
	w.Flush()
	if w.LineIndex() != 3 {
		t.Fatalf("Expected line index 3, got %d", w.LineIndex())
	}

	w.Wrap("defghij kl")
	expected := []string{"abc", "defghij\n"}
	if !reflect.DeepEqual(r.events, expected) {
		t.Errorf("Expected %q, got %q", expected, r.events)
	}
}

func TestMetadataPosition(t *testing.T) {
	r := &recorder{}
	w := New(20, false, r.out)

	w.InsertMetadata(r.meta("first"))
	w.Wrap("red ")
	w.InsertMetadata(r.meta("blue"))
	w.Wrap("blue")
	w.Flush()

	expected := []string{"<first>", "red ", "<blue>", "blue"}
	if !reflect.DeepEqual(r.events, expected) {
		t.Errorf("Expected %q, got %q", expected, r.events)
	}
	if w.Pending() {
		t.Error("Expected nothing pending after flush")
	}
}

func TestMetadataAtBreak(t *testing.T) {
	r := &recorder{}
	w := New(5, false, r.out)

	w.Wrap("abcde")
	w.InsertMetadata(r.meta("bold"))
	w.Wrap(" fgh")

	expected := []string{"abcde", "<bold>", "\n"}
	if !reflect.DeepEqual(r.events, expected) {
		t.Errorf("Expected %q, got %q", expected, r.events)
	}
}

func TestFlushFromOutputEmitsRestOnce(t *testing.T) {
	r := &recorder{}
	var w *Wrapper
	nested := false
	w = New(5, false, func(text string) {
		r.out(text)
		if !nested {
			nested = true
			w.Flush()
		}
	})

	w.Wrap("abcde fgh")

	expected := []string{"abcde\n", "fgh"}
	if !reflect.DeepEqual(r.events, expected) {
		t.Errorf("Expected %q, got %q", expected, r.events)
	}
	if w.Pending() {
		t.Error("Expected nothing pending after the nested flush")
	}
}

func TestSetWidth(t *testing.T) {
	r := &recorder{}
	w := New(20, false, r.out)
	w.SetWidth(5)
	w.Wrap("abc def")
	w.Flush()

	expected := []string{"abc\n", "def"}
	if !reflect.DeepEqual(r.events, expected) {
		t.Errorf("Expected %q, got %q", expected, r.events)
	}

	w.SetWidth(0)
	if w.Width() != 1 {
		t.Errorf("Expected width clamped to 1, got %d", w.Width())
	}
}

func TestColumns(t *testing.T) {
	if c := Columns([]rune("abc\u00ad")); c != 3 {
		t.Errorf("Expected soft hyphen to take no column, got %d", c)
	}
	if c := StringColumns("日本"); c != 4 {
		t.Errorf("Expected wide runes to take two columns each, got %d", c)
	}
	if n := Fit([]rune("日本語"), 5); n != 2 {
		t.Errorf("Expected 2 wide runes to fit 5 columns, got %d", n)
	}
}
