package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	tests := []struct {
		id       ID
		args     []string
		expected string
	}{
		{MorePrompt, nil, "MORE"},
		{Score, nil, "Score"},
		{Turns, nil, "Turns"},
		{PressAnyKeyToQuit, nil, "Press any key to quit."},
		{FunctionCallAbortedDueToError, []string{"refresh"}, "Function call refresh aborted due to error."},
		{VersionP0S, []string{"1.0", "extra"}, "monoscreen version 1.0."},
	}

	for _, tt := range tests {
		if got := c.Translate(tt.id, tt.args...); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.id.Key(), tt.expected, got)
		}
	}
}

func TestUnknownID(t *testing.T) {
	if got := Default().Translate(ID(42)); got != "message_42" {
		t.Errorf("Expected key fallback, got %q", got)
	}
}

func TestLoadFileOverlaysDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "de.toml")
	data := "name = \"de_DE\"\n[messages]\nmore_prompt = \"WEITER\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if c.Name != "de_DE" {
		t.Errorf("Expected name de_DE, got %q", c.Name)
	}
	if got := c.Translate(MorePrompt); got != "WEITER" {
		t.Errorf("Expected override, got %q", got)
	}
	if got := c.Translate(Score); got != "Score" {
		t.Errorf("Expected fallback to built-in, got %q", got)
	}
}

func TestParseRejectsInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("[messages\n")); err == nil {
		t.Error("Expected parse error")
	}
}
