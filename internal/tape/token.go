package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_PLUS TokenType = "PLUS"
	TOKEN_AT   TokenType = "AT"

	// Commands - Input
	TOKEN_TYPE      TokenType = "Type"
	TOKEN_SLEEP     TokenType = "Sleep"
	TOKEN_ENTER     TokenType = "Enter"
	TOKEN_SPACE     TokenType = "Space"
	TOKEN_BACKSPACE TokenType = "Backspace"
	TOKEN_DELETE    TokenType = "Delete"
	TOKEN_ESCAPE    TokenType = "Escape"

	// Commands - Navigation
	TOKEN_UP        TokenType = "Up"
	TOKEN_DOWN      TokenType = "Down"
	TOKEN_LEFT      TokenType = "Left"
	TOKEN_RIGHT     TokenType = "Right"
	TOKEN_PAGE_UP   TokenType = "PageUp"
	TOKEN_PAGE_DOWN TokenType = "PageDown"

	// Commands - Modifiers
	TOKEN_CTRL TokenType = "Ctrl"

	// Commands - Screen
	TOKEN_RESIZE TokenType = "Resize"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token starts a command
func (t TokenType) IsCommand() bool {
	switch t {
	case TOKEN_TYPE, TOKEN_SLEEP, TOKEN_ENTER, TOKEN_SPACE, TOKEN_BACKSPACE,
		TOKEN_DELETE, TOKEN_ESCAPE, TOKEN_UP, TOKEN_DOWN, TOKEN_LEFT,
		TOKEN_RIGHT, TOKEN_PAGE_UP, TOKEN_PAGE_DOWN, TOKEN_CTRL, TOKEN_RESIZE:
		return true
	}
	return false
}

// IsNavigationKey returns true if the token is a cursor or paging key
func (t TokenType) IsNavigationKey() bool {
	switch t {
	case TOKEN_UP, TOKEN_DOWN, TOKEN_LEFT, TOKEN_RIGHT, TOKEN_PAGE_UP, TOKEN_PAGE_DOWN:
		return true
	}
	return false
}

// KeywordTokenMap maps keywords to their token types
var KeywordTokenMap = map[string]TokenType{
	// Input
	"Type":      TOKEN_TYPE,
	"Sleep":     TOKEN_SLEEP,
	"Enter":     TOKEN_ENTER,
	"Space":     TOKEN_SPACE,
	"Backspace": TOKEN_BACKSPACE,
	"Delete":    TOKEN_DELETE,
	"Escape":    TOKEN_ESCAPE,

	// Navigation
	"Up":       TOKEN_UP,
	"Down":     TOKEN_DOWN,
	"Left":     TOKEN_LEFT,
	"Right":    TOKEN_RIGHT,
	"PageUp":   TOKEN_PAGE_UP,
	"PageDown": TOKEN_PAGE_DOWN,

	// Modifiers
	"Ctrl": TOKEN_CTRL,

	// Screen
	"Resize": TOKEN_RESIZE,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
