package screen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/monoscreen/internal/style"
)

// =============================================================================
// Status Line Tests
// =============================================================================

func TestShowStatusScore(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{
			name:        "fits",
			description: "Kitchen",
			expected:    " Kitchen" + strings.Repeat(" ", 13) + "Score: 0  Turns: 0",
		},
		{
			name:        "truncated to leave one space",
			description: "West of House, a long room description",
			expected:    " West of House, a lo Score: 0  Turns: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m, _ := newTestSession(t, 3, 24, 40)
			s.ShowStatus(tt.description, StatusScore, 0, 0)
			require.Equal(t, tt.expected, m.Row(1))
			require.Equal(t, 0, s.ActiveWindow())
		})
	}
}

func TestShowStatusTime(t *testing.T) {
	s, m, _ := newTestSession(t, 3, 24, 40)
	s.ShowStatus("Kitchen", StatusTime, 9, 5)
	require.Equal(t, " Kitchen"+strings.Repeat(" ", 26)+"09:05", m.Row(1))
}

func TestShowStatusIsReverseVideo(t *testing.T) {
	s, m, _ := newTestSession(t, 3, 24, 40)
	s.ShowStatus("Kitchen", StatusScore, 1, 2)

	require.NotZero(t, m.Cell(1, 2).Style.Attrs)
	require.NotZero(t, m.Cell(1, 40).Style.Attrs)
}

func TestShowStatusWithoutStatusWindow(t *testing.T) {
	s, m, _ := newTestSession(t, 5, 24, 40)
	s.ShowStatus("Kitchen", StatusScore, 1, 2)
	require.Empty(t, m.Row(1))
}

func TestRefreshRepaintsStatus(t *testing.T) {
	s, m, store := newTestSession(t, 3, 24, 40)
	store.Append("hello\n")
	s.ShowStatus("Kitchen", StatusScore, 3, 4)
	row := m.Row(1)

	m.ClearArea(1, 1, 40, 24)
	require.NoError(t, s.RefreshScreen())
	require.Equal(t, row, m.Row(1))
	require.Equal(t, "hello", m.Row(23))
}

func TestSetColourKeepsCurrent(t *testing.T) {
	s, _, _ := newTestSession(t, 5, 10, 40)

	s.SetColour(style.Red, style.Blue, 0)
	s.SetColour(style.Current, style.Green, 0)

	w, _ := s.Window(0)
	require.Equal(t, style.Red, w.Fg)
	require.Equal(t, style.Green, w.Bg)
}
