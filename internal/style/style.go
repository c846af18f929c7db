// Package style defines the text style bitmask and colour codes shared by the
// engine, the paragraph log and the terminal backends.
package style

import "fmt"

// Style is a bitmask of text attributes.
type Style int

const (
	Roman   Style = 0
	Reverse Style = 1
	Bold    Style = 2
	Italic  Style = 4
	Fixed   Style = 8
)

// Has reports whether every bit of attr is set.
func (s Style) Has(attr Style) bool {
	return s&attr == attr && attr != 0
}

// Without returns s with attr cleared.
func (s Style) Without(attr Style) Style {
	return s &^ attr
}

func (s Style) String() string {
	if s == Roman {
		return "roman"
	}
	out := ""
	for _, a := range []struct {
		bit  Style
		name string
	}{{Reverse, "reverse"}, {Bold, "bold"}, {Italic, "italic"}, {Fixed, "fixed"}} {
		if s.Has(a.bit) {
			if out != "" {
				out += "|"
			}
			out += a.name
		}
	}
	return out
}

// Colour is a colour code. Zero keeps the current colour and one selects the
// backend default.
type Colour int

const (
	Current Colour = iota
	Default
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	LightGrey
	MediumGrey
	DarkGrey
)

var colourNames = [...]string{
	"current", "default", "black", "red", "green", "yellow",
	"blue", "magenta", "cyan", "white", "light-grey", "medium-grey", "dark-grey",
}

// Valid reports whether c is a known colour code.
func (c Colour) Valid() bool {
	return c >= Current && c <= DarkGrey
}

func (c Colour) String() string {
	if !c.Valid() {
		return fmt.Sprintf("colour(%d)", int(c))
	}
	return colourNames[c]
}

// ParseColour maps a colour name back to its code.
func ParseColour(name string) (Colour, error) {
	for i, n := range colourNames {
		if n == name {
			return Colour(i), nil
		}
	}
	return Current, fmt.Errorf("unknown colour %q", name)
}
