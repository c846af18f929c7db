package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/monoscreen/internal/locale"
	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// directions maps abbreviations onto exit names.
var directions = map[string]string{
	"n": "north", "north": "north",
	"s": "south", "south": "south",
	"e": "east", "east": "east",
	"w": "west", "west": "west",
}

// execute runs one command. It reports true when the player quits.
func (h *Host) execute(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		h.print("I beg your pardon?\n")
		return false
	}
	verb, args := fields[0], fields[1:]
	if verb == "go" && len(args) > 0 {
		verb, args = args[0], args[1:]
	}

	if dir, ok := directions[verb]; ok {
		h.move(dir)
		return false
	}

	switch verb {
	case "look", "l":
		h.describe()
	case "wait", "z":
		for _, p := range tide {
			h.print(p + "\n\n")
		}
	case "score":
		h.print(fmt.Sprintf("You have scored %d points in %d turns.\n", h.score, h.turns))
	case "split":
		h.splitCommand(args)
	case "style":
		h.styleDemo()
	case "colour", "color":
		h.colourDemo()
	case "history":
		h.listHistory()
	case "refresh":
		if err := h.session.RefreshScreen(); err != nil {
			logger.Warn("refresh failed", "err", err)
		}
	case "help", "?":
		h.print("Commands: look, north, south, wait, score, split N, style, " +
			"colour, history, refresh, quit. PageUp and PageDown scroll back " +
			"through the transcript.\n")
	case "quit", "q":
		return true
	default:
		h.print(fmt.Sprintf("I don't know the word \"%s\".\n", verb))
	}
	return false
}

// banner prints the opening lines.
func (h *Host) banner() {
	h.setStyle(style.Bold)
	h.print("THE LIGHTHOUSE\n")
	h.setStyle(style.Roman)
	h.print("An interactive demonstration.\n")
	h.print(h.tr.Translate(locale.VersionP0S, Version) + "\n\n")
}

// describe prints the current room.
func (h *Host) describe() {
	r := h.world.rooms[h.room]
	h.setStyle(style.Bold)
	h.print(r.name + "\n")
	h.setStyle(style.Roman)
	h.print(r.description + "\n")
}

func (h *Host) move(dir string) {
	next, ok := h.world.rooms[h.room].exits[dir]
	if !ok {
		h.print("You can't go that way.\n")
		return
	}
	h.room = next
	if r := h.world.rooms[next]; !r.visited {
		r.visited = true
		h.score += 5
	}
	h.print("\n")
	h.describe()
}

// splitCommand resizes the upper window to hold n rows below the status
// line and labels them.
func (h *Host) splitCommand(args []string) {
	if len(args) != 1 {
		h.print("Split how many lines?\n")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		h.print("That is not a number of lines.\n")
		return
	}
	if !h.session.HasUpperWindow() {
		h.print("This screen has no upper window.\n")
		return
	}

	h.split = n
	h.session.SplitWindow(h.statusRows() + n)
	h.drawUpper()
	h.print(fmt.Sprintf("The upper window now holds %d lines.\n", n))
}

// drawUpper clears the upper window and labels its rows below the status
// line. The status row is repainted on the next turn.
func (h *Host) drawUpper() {
	h.session.EraseWindow(1)
	top := h.statusRows() + 1
	h.session.SetWindow(1)
	for i := range h.split {
		h.session.SetCursor(top+i, 1, 1)
		h.session.Output(fmt.Sprintf("~ upper row %d", i+1))
	}
	h.session.SetWindow(0)
}

func (h *Host) styleDemo() {
	for _, s := range []struct {
		st   style.Style
		name string
	}{
		{style.Bold, "bold"},
		{style.Italic, "italic"},
		{style.Reverse, "reverse"},
		{style.Bold | style.Italic, "bold italic"},
	} {
		h.setStyle(s.st)
		h.print(s.name)
		h.setStyle(style.Roman)
		h.print(" ")
	}
	h.print("\n")
}

func (h *Host) colourDemo() {
	for _, c := range []style.Colour{style.Red, style.Green, style.Yellow, style.Blue, style.Magenta, style.Cyan} {
		h.setColour(c, style.Current)
		h.print(c.String())
		h.setColour(style.Default, style.Current)
		h.print(" ")
	}
	h.print("\n")
}

func (h *Host) listHistory() {
	if h.commands.Len() == 0 {
		h.print("No commands yet.\n")
		return
	}
	for i := h.commands.Len() - 1; i >= 0; i-- {
		h.print(fmt.Sprintf("%3d  %s\n", h.commands.Len()-i, h.commands.Command(i)))
	}
}
