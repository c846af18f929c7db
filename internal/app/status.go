package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/monoscreen/internal/locale"
	"github.com/Gaurav-Gosain/monoscreen/internal/screen"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// statusRows is the number of upper window rows the status line takes.
// Early versions have a dedicated status window instead.
func (h *Host) statusRows() int {
	if h.version <= 3 {
		return 0
	}
	if !h.session.HasUpperWindow() {
		return 0
	}
	return 1
}

// drawStatus shows the room name, score and turns. Versions up to 3 use the
// engine's status line; later versions draw a reversed row at the top of
// the upper window, the way their stories do.
func (h *Host) drawStatus() {
	name := h.world.rooms[h.room].name
	if h.version <= 3 {
		h.session.ShowStatus(name, screen.StatusScore, h.score, h.turns)
		return
	}
	if h.statusRows() == 0 {
		return
	}

	upper, _ := h.session.Window(1)
	if upper.Height < h.statusRows()+h.split {
		h.session.SplitWindow(h.statusRows() + h.split)
		h.drawUpper()
		upper, _ = h.session.Window(1)
	}

	h.session.SetWindow(1)
	h.session.SetTextStyle(style.Reverse)
	h.session.SetCursor(1, 1, 1)
	h.session.Output(h.statusText(name, upper.Width))
	h.session.SetTextStyle(style.Roman)
	h.session.SetWindow(0)
}

// statusText lays out one status row of the given width: the name after one
// padding column, the counters right-aligned before one.
func (h *Host) statusText(name string, width int) string {
	right := fmt.Sprintf("%s: %d  %s: %d ", h.tr.Translate(locale.Score), h.score,
		h.tr.Translate(locale.Turns), h.turns)
	room := width - ansi.StringWidth(right) - 2
	if room < 0 {
		return ansi.Truncate(" "+name, width, "")
	}
	left := " " + ansi.Truncate(name, room, "")
	pad := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	return left + strings.Repeat(" ", max(pad, 0)) + right
}
