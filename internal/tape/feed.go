package tape

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Gaurav-Gosain/monoscreen/internal/backend"
)

// Tick is the span of input time one timeout event stands for.
const Tick = 100 * time.Millisecond

// ReadFile parses the tape at path. All parse errors are reported together.
func ReadFile(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	commands, perrs := ParseFile(string(data))
	if len(perrs) > 0 {
		errs := make([]error, len(perrs))
		for i, msg := range perrs {
			errs[i] = errors.New(msg)
		}
		return nil, fmt.Errorf("failed to parse tape %s: %w", path, errors.Join(errs...))
	}
	return commands, nil
}

// Feed queues the input of every remaining command of p on m. Sleeps become
// timeout events and Resize changes the screen when the engine reads it.
func (p *Player) Feed(m *backend.Memory) {
	for cmd := p.NextCommand(); cmd != nil; cmd = p.NextCommand() {
		for range max(cmd.Count, 1) {
			feedCommand(m, cmd)
		}
		p.Advance()
	}
}

// Feed queues commands on m.
func Feed(m *backend.Memory, commands []Command) {
	NewPlayer(commands).Feed(m)
}

func feedCommand(m *backend.Memory, cmd *Command) {
	switch cmd.Type {
	case CommandType_Type:
		for _, arg := range cmd.Args {
			for _, r := range arg {
				m.Post(backend.Input(r))
				postTicks(m, cmd.Delay)
			}
		}
	case CommandType_Sleep:
		postTicks(m, cmd.Delay)
	case CommandType_Enter:
		m.Post(backend.Input('\n'))
	case CommandType_Space:
		m.Post(backend.Input(' '))
	case CommandType_Backspace:
		m.Post(backend.Key(backend.EventBackspace))
	case CommandType_Delete:
		m.Post(backend.Key(backend.EventDelete))
	case CommandType_Escape:
		m.Post(backend.Key(backend.EventEscape))
	case CommandType_Up:
		m.Post(backend.Key(backend.EventUp))
	case CommandType_Down:
		m.Post(backend.Key(backend.EventDown))
	case CommandType_Left:
		m.Post(backend.Key(backend.EventLeft))
	case CommandType_Right:
		m.Post(backend.Key(backend.EventRight))
	case CommandType_PageUp:
		m.Post(backend.Key(backend.EventPageUp))
	case CommandType_PageDown:
		m.Post(backend.Key(backend.EventPageDown))
	case CommandType_KeyCombo:
		for _, arg := range cmd.Args {
			kc, err := ParseKeyCombo(arg)
			if err != nil {
				continue
			}
			m.Post(comboEvent(kc))
		}
	case CommandType_Resize:
		if len(cmd.Args) != 2 {
			return
		}
		width, werr := strconv.Atoi(cmd.Args[0])
		height, herr := strconv.Atoi(cmd.Args[1])
		if werr == nil && herr == nil {
			m.PostResize(height, width)
		}
	}
}

// comboEvent maps a control combination onto the event a backend reports
// for it. Ctrl-A and Ctrl-E have their own events, the rest arrive as
// control characters.
func comboEvent(kc KeyCombo) backend.Event {
	switch kc.Key {
	case 'A':
		return backend.Key(backend.EventCtrlA)
	case 'E':
		return backend.Key(backend.EventCtrlE)
	}
	return backend.Input(kc.Rune())
}

// postTicks queues one timeout per started Tick of d.
func postTicks(m *backend.Memory, d time.Duration) {
	n := int((d + Tick - 1) / Tick)
	for range n {
		m.Post(backend.Key(backend.EventTimeout))
	}
}
