package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestResetTerminal(t *testing.T) {
	var buf bytes.Buffer
	ResetTerminal(&buf)

	out := buf.String()
	for _, seq := range []string{"\x1b[m", "\x1b[?25h", "\r\n"} {
		if !strings.Contains(out, seq) {
			t.Errorf("Expected output to contain %q, got %q", seq, out)
		}
	}
}
