package tape

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "Type command",
			input:    `Type "hello"`,
			expected: []TokenType{TOKEN_TYPE, TOKEN_STRING, TOKEN_EOF},
		},
		{
			name:     "Sleep command",
			input:    `Sleep 500ms`,
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Enter with count",
			input:    `Enter 3`,
			expected: []TokenType{TOKEN_ENTER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Paging keys",
			input:    "PageUp\nPageDown",
			expected: []TokenType{TOKEN_PAGE_UP, TOKEN_NEWLINE, TOKEN_PAGE_DOWN, TOKEN_EOF},
		},
		{
			name:     "Key combination",
			input:    `Ctrl+L`,
			expected: []TokenType{TOKEN_CTRL, TOKEN_PLUS, TOKEN_IDENTIFIER, TOKEN_EOF},
		},
		{
			name:     "Resize",
			input:    `Resize 80 24`,
			expected: []TokenType{TOKEN_RESIZE, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Illegal character",
			input:    `Enter ;`,
			expected: []TokenType{TOKEN_ENTER, TOKEN_ILLEGAL, TOKEN_EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}

			for i, expectedType := range tt.expected {
				if tokens[i].Type != expectedType {
					t.Errorf("Token %d: expected %v, got %v", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "Double quoted string",
			input:         `Type "look north"`,
			expectedValue: "look north",
		},
		{
			name:          "Single quoted string",
			input:         `Type 'look north'`,
			expectedValue: "look north",
		},
		{
			name:          "Backtick string keeps backslashes",
			input:         "Type `a\\nb`",
			expectedValue: `a\nb`,
		},
		{
			name:          "Escaped quotes",
			input:         `Type "say \"hello\""`,
			expectedValue: `say "hello"`,
		},
		{
			name:          "Newline escape",
			input:         `Type "look\n"`,
			expectedValue: "look\n",
		},
		{
			name:          "Unterminated string",
			input:         `Type "look`,
			expectedValue: "look",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			var stringToken Token
			for _, tok := range tokens {
				if tok.Type == TOKEN_STRING {
					stringToken = tok
					break
				}
			}

			if stringToken.Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, stringToken.Literal)
			}
		})
	}
}

func TestLexerDurations(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{"Milliseconds", `Sleep 500ms`, "500ms"},
		{"Seconds", `Sleep 2s`, "2s"},
		{"Decimal seconds", `Sleep 1.5s`, "1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) < 2 || tokens[1].Type != TOKEN_DURATION {
				t.Fatalf("Expected a duration token, got %v", tokens)
			}
			if tokens[1].Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, tokens[1].Literal)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := "# open the mailbox\nType \"open mailbox\" # trailing\nEnter"
	tokens := Tokenize(input)

	expected := []TokenType{
		TOKEN_NEWLINE,
		TOKEN_TYPE, TOKEN_STRING, TOKEN_NEWLINE,
		TOKEN_ENTER, TOKEN_EOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, tt := range expected {
		if tokens[i].Type != tt {
			t.Errorf("Token %d: expected %v, got %v", i, tt, tokens[i].Type)
		}
	}
}

func TestLexerLineNumbers(t *testing.T) {
	tokens := Tokenize("Enter\n  Sleep 1s\nEscape")

	want := map[TokenType][2]int{
		TOKEN_ENTER:  {1, 1},
		TOKEN_SLEEP:  {2, 3},
		TOKEN_ESCAPE: {3, 1},
	}
	for _, tok := range tokens {
		pos, ok := want[tok.Type]
		if !ok {
			continue
		}
		if tok.Line != pos[0] || tok.Column != pos[1] {
			t.Errorf("%s: expected %d:%d, got %d:%d", tok.Type, pos[0], pos[1], tok.Line, tok.Column)
		}
	}
}

func TestLexerAtModifier(t *testing.T) {
	tokens := Tokenize(`Type@200ms "slow"`)

	expected := []TokenType{TOKEN_TYPE, TOKEN_AT, TOKEN_DURATION, TOKEN_STRING, TOKEN_EOF}
	for i, tt := range expected {
		if tokens[i].Type != tt {
			t.Errorf("Token %d: expected %v, got %v", i, tt, tokens[i].Type)
		}
	}
}

func TestKeywordTokenMap(t *testing.T) {
	for keyword, tt := range KeywordTokenMap {
		if got := LookupKeyword(keyword); got != tt {
			t.Errorf("LookupKeyword(%q) = %v, want %v", keyword, got, tt)
		}
		if !tt.IsCommand() {
			t.Errorf("Expected %v to be a command", tt)
		}
	}
	if got := LookupKeyword("look"); got != TOKEN_IDENTIFIER {
		t.Errorf("Expected identifier for non-keyword, got %v", got)
	}
}

func TestTokenTypeHelpers(t *testing.T) {
	if !TOKEN_PAGE_UP.IsNavigationKey() || !TOKEN_LEFT.IsNavigationKey() {
		t.Error("Expected paging and cursor keys to be navigation keys")
	}
	if TOKEN_ENTER.IsNavigationKey() {
		t.Error("Expected Enter not to be a navigation key")
	}
	if TOKEN_STRING.IsCommand() || TOKEN_PLUS.IsCommand() {
		t.Error("Expected literals and symbols not to be commands")
	}
}
