package tape

import (
	"fmt"
)

// Player walks the commands of a tape in order
type Player struct {
	commands []Command
	index    int // Current command index
}

// NewPlayer creates a new script player from a list of commands
func NewPlayer(commands []Command) *Player {
	return &Player{commands: commands}
}

// NextCommand returns the next command to execute without advancing the player state
func (p *Player) NextCommand() *Command {
	if p.index >= len(p.commands) {
		return nil
	}
	return &p.commands[p.index]
}

// Advance moves to the next command
func (p *Player) Advance() {
	if p.index < len(p.commands) {
		p.index++
	}
}

// IsFinished returns true if all commands have been executed
func (p *Player) IsFinished() bool {
	return p.index >= len(p.commands)
}

// Reset resets the player to the beginning
func (p *Player) Reset() {
	p.index = 0
}

// CurrentIndex returns the current command index
func (p *Player) CurrentIndex() int {
	return p.index
}

// TotalCommands returns the total number of commands
func (p *Player) TotalCommands() int {
	return len(p.commands)
}

// Progress returns a value between 0 and 100 representing playback progress
func (p *Player) Progress() int {
	if len(p.commands) == 0 {
		return 100
	}
	return (p.index * 100) / len(p.commands)
}

// CommandStr returns a string representation of the current command for display
func (p *Player) CommandStr() string {
	if cmd := p.NextCommand(); cmd != nil {
		return cmd.String()
	}
	return "Script finished"
}

// String returns a debug string representation
func (p *Player) String() string {
	return fmt.Sprintf("Player{index=%d/%d, finished=%v}",
		p.index, len(p.commands), p.IsFinished())
}
