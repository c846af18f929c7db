// Package theme resolves story colour codes to terminal colours through the
// bubbletint registry.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the xterm palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// ANSIPalette returns the 16 ANSI colors (0-15) from the current theme.
func ANSIPalette() [16]color.Color {
	t := Current()
	if t == nil {
		return [16]color.Color{
			lipgloss.Color("#000000"), lipgloss.Color("#cd0000"), lipgloss.Color("#00cd00"), lipgloss.Color("#cdcd00"),
			lipgloss.Color("#0000ee"), lipgloss.Color("#cd00cd"), lipgloss.Color("#00cdcd"), lipgloss.Color("#e5e5e5"),
			lipgloss.Color("#7f7f7f"), lipgloss.Color("#ff0000"), lipgloss.Color("#00ff00"), lipgloss.Color("#ffff00"),
			lipgloss.Color("#5c5cff"), lipgloss.Color("#ff00ff"), lipgloss.Color("#00ffff"), lipgloss.Color("#ffffff"),
		}
	}
	return [16]color.Color{
		t.Black,
		t.Red,
		t.Green,
		t.Yellow,
		t.Blue,
		t.Purple,
		t.Cyan,
		t.White,
		t.BrightBlack,
		t.BrightRed,
		t.BrightGreen,
		t.BrightYellow,
		t.BrightBlue,
		t.BrightPurple,
		t.BrightCyan,
		t.BrightWhite,
	}
}

// Foreground is the colour the default foreground resolves to.
func Foreground() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Background is the colour the default background resolves to.
func Background() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// Resolve maps a colour code onto the active palette. Without a theme it
// returns nil for Default so the terminal keeps its own colours. The
// signature matches backend.Palette.
func Resolve(c style.Colour, foreground bool) color.Color {
	p := ANSIPalette()
	switch c {
	case style.Default:
		if !enabled {
			return nil
		}
		if foreground {
			return Foreground()
		}
		return Background()
	case style.Black:
		return p[0]
	case style.Red:
		return p[1]
	case style.Green:
		return p[2]
	case style.Yellow:
		return p[3]
	case style.Blue:
		return p[4]
	case style.Magenta:
		return p[5]
	case style.Cyan:
		return p[6]
	case style.White:
		return p[15]
	case style.LightGrey:
		return p[7]
	case style.MediumGrey:
		return p[8]
	case style.DarkGrey:
		return lipgloss.Color("#444444")
	}
	return nil
}

// Frame colours for rendered screen previews
func FrameBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

func FrameTitle() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("14")
	}
	return t.BrightCyan
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "default"
	}
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
