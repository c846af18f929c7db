package history

// Commands keeps the most recent input lines for recall, newest first.
type Commands struct {
	lines []string
	max   int
}

// NewCommands creates a command history holding at most max lines. If max
// is 0 or negative, 100 lines are kept.
func NewCommands(max int) *Commands {
	if max <= 0 {
		max = 100
	}
	return &Commands{max: max}
}

// Add records line as the newest command. Empty lines and repeats of the
// newest command are not recorded.
func (c *Commands) Add(line string) {
	if line == "" {
		return
	}
	if n := len(c.lines); n > 0 && c.lines[n-1] == line {
		return
	}
	c.lines = append(c.lines, line)
	if len(c.lines) > c.max {
		c.lines = c.lines[len(c.lines)-c.max:]
	}
}

// Len returns the number of recorded commands.
func (c *Commands) Len() int {
	return len(c.lines)
}

// Command returns command i, 0 being the newest.
func (c *Commands) Command(i int) string {
	if i < 0 || i >= len(c.lines) {
		return ""
	}
	return c.lines[len(c.lines)-1-i]
}
