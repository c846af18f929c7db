package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandsNewestFirst(t *testing.T) {
	c := NewCommands(0)
	c.Add("look")
	c.Add("north")
	c.Add("north")
	c.Add("")

	require.Equal(t, 2, c.Len())
	require.Equal(t, "north", c.Command(0))
	require.Equal(t, "look", c.Command(1))
	require.Equal(t, "", c.Command(2))
}

func TestCommandsDropOldest(t *testing.T) {
	c := NewCommands(2)
	c.Add("a")
	c.Add("b")
	c.Add("c")

	require.Equal(t, 2, c.Len())
	require.Equal(t, "c", c.Command(0))
	require.Equal(t, "b", c.Command(1))
}
