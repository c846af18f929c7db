// Package locale provides the translated strings the screen engine shows.
package locale

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog/en_US.toml
var defaultCatalog []byte

// ID names a translatable message.
type ID int

const (
	MorePrompt ID = iota
	Score
	Turns
	VersionP0S
	PressAnyKeyToQuit
	FunctionCallAbortedDueToError
)

var keys = [...]string{
	"more_prompt",
	"score",
	"turns",
	"version",
	"press_any_key_to_quit",
	"function_call_aborted_due_to_error",
}

// Key returns the catalog key of id.
func (id ID) Key() string {
	if id < 0 || int(id) >= len(keys) {
		return fmt.Sprintf("message_%d", int(id))
	}
	return keys[id]
}

// Translator looks up messages.
type Translator interface {
	Translate(id ID, args ...string) string
}

type catalogFile struct {
	Name     string            `toml:"name"`
	Messages map[string]string `toml:"messages"`
}

// Catalog is a set of messages loaded from TOML.
type Catalog struct {
	Name     string
	messages map[string]string
}

// Default returns the built-in English catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("locale: built-in catalog is invalid: %v", err))
	}
	return c
}

// Parse reads a catalog from TOML data.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if f.Messages == nil {
		f.Messages = make(map[string]string)
	}
	return &Catalog{Name: f.Name, messages: f.Messages}, nil
}

// LoadFile reads a catalog from path. Keys missing from the file fall back
// to the built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	base := Default()
	for k, v := range c.messages {
		base.messages[k] = v
	}
	if c.Name != "" {
		base.Name = c.Name
	}
	return base, nil
}

// Translate returns message id with each %s replaced by the next argument.
// An unknown id yields its key so the gap is visible.
func (c *Catalog) Translate(id ID, args ...string) string {
	msg, ok := c.messages[id.Key()]
	if !ok {
		msg = id.Key()
	}
	for _, a := range args {
		i := strings.Index(msg, "%s")
		if i < 0 {
			break
		}
		msg = msg[:i] + a + msg[i+2:]
	}
	return msg
}
