package tape

import (
	"fmt"
	"strconv"
)

// Parser parses .tape files into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses the entire tape file and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if !ok {
			p.skipToNextLine()
			continue
		}

		commands = append(commands, cmd)
		p.expectEndOfLine()
	}

	return commands
}

// parseCommand parses a single command
func (p *Parser) parseCommand() (Command, bool) {
	switch tt := p.curTok.Type; tt {
	case TOKEN_TYPE:
		return p.parseTypeCommand()
	case TOKEN_SLEEP:
		return p.parseSleepCommand()
	case TOKEN_ENTER:
		return p.parseBasicCommand(CommandType_Enter)
	case TOKEN_SPACE:
		return p.parseBasicCommand(CommandType_Space)
	case TOKEN_BACKSPACE:
		return p.parseBasicCommand(CommandType_Backspace)
	case TOKEN_DELETE:
		return p.parseBasicCommand(CommandType_Delete)
	case TOKEN_ESCAPE:
		return p.parseBasicCommand(CommandType_Escape)
	case TOKEN_UP:
		return p.parseBasicCommand(CommandType_Up)
	case TOKEN_DOWN:
		return p.parseBasicCommand(CommandType_Down)
	case TOKEN_LEFT:
		return p.parseBasicCommand(CommandType_Left)
	case TOKEN_RIGHT:
		return p.parseBasicCommand(CommandType_Right)
	case TOKEN_PAGE_UP:
		return p.parseBasicCommand(CommandType_PageUp)
	case TOKEN_PAGE_DOWN:
		return p.parseBasicCommand(CommandType_PageDown)
	case TOKEN_CTRL:
		return p.parseKeyComboCommand()
	case TOKEN_RESIZE:
		return p.parseResizeCommand()
	default:
		p.addError(fmt.Sprintf("unexpected %s %q", tt, p.curTok.Literal))
		return Command{}, false
	}
}

func (p *Parser) newCommand(t CommandType) Command {
	return Command{
		Type:   t,
		Count:  1,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
		Raw:    p.curTok.Literal,
	}
}

// parseBasicCommand parses simple commands with optional repeat count
func (p *Parser) parseBasicCommand(cmdType CommandType) (Command, bool) {
	cmd := p.newCommand(cmdType)
	p.nextToken()
	return cmd, p.parseCount(&cmd)
}

// parseCount consumes an optional repeat count
func (p *Parser) parseCount(cmd *Command) bool {
	if p.curTok.Type != TOKEN_NUMBER {
		return true
	}
	n, err := strconv.Atoi(p.curTok.Literal)
	if err != nil || n < 1 {
		p.addError(fmt.Sprintf("invalid repeat count: %s", p.curTok.Literal))
		return false
	}
	cmd.Count = n
	cmd.Raw += " " + p.curTok.Literal
	p.nextToken()
	return true
}

// parseTypeCommand parses Type[@<duration>] "text" commands
func (p *Parser) parseTypeCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Type)
	p.nextToken() // consume Type

	if p.curTok.Type == TOKEN_AT {
		p.nextToken()
		if p.curTok.Type != TOKEN_DURATION {
			p.addError("expected duration after @")
			return cmd, false
		}
		d, err := ParseDuration(p.curTok.Literal)
		if err != nil {
			p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
			return cmd, false
		}
		cmd.Delay = d
		p.nextToken()
	}

	if p.curTok.Type != TOKEN_STRING {
		p.addError(fmt.Sprintf("Type command expects a string, got %v", p.curTok.Type))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = fmt.Sprintf("Type %q", p.curTok.Literal)
	p.nextToken()

	return cmd, p.parseCount(&cmd)
}

// parseSleepCommand parses Sleep <duration> commands
func (p *Parser) parseSleepCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Sleep)
	p.nextToken() // consume Sleep

	if p.curTok.Type != TOKEN_DURATION {
		p.addError(fmt.Sprintf("Sleep command expects a duration, got %v", p.curTok.Type))
		return cmd, false
	}
	d, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Delay = d
	cmd.Raw = "Sleep " + p.curTok.Literal
	p.nextToken()

	return cmd, true
}

// parseKeyComboCommand parses Ctrl+X
func (p *Parser) parseKeyComboCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_KeyCombo)
	p.nextToken() // consume Ctrl

	if p.curTok.Type != TOKEN_PLUS {
		p.addError("expected + after Ctrl")
		return cmd, false
	}
	p.nextToken()

	combo, err := ParseKeyCombo("Ctrl+" + p.curTok.Literal)
	if err != nil {
		p.addError(err.Error())
		return cmd, false
	}
	cmd.Args = []string{combo.String()}
	cmd.Raw = combo.String()
	p.nextToken()

	return cmd, p.parseCount(&cmd)
}

// parseResizeCommand parses Resize <width> <height>
func (p *Parser) parseResizeCommand() (Command, bool) {
	cmd := p.newCommand(CommandType_Resize)
	p.nextToken() // consume Resize

	for range 2 {
		if p.curTok.Type != TOKEN_NUMBER {
			p.addError(fmt.Sprintf("Resize expects a width and a height, got %v", p.curTok.Type))
			return cmd, false
		}
		if n, err := strconv.Atoi(p.curTok.Literal); err != nil || n < 1 {
			p.addError(fmt.Sprintf("invalid size: %s", p.curTok.Literal))
			return cmd, false
		}
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	cmd.Raw = fmt.Sprintf("Resize %s %s", cmd.Args[0], cmd.Args[1])

	return cmd, true
}

// expectEndOfLine reports trailing tokens after a command
func (p *Parser) expectEndOfLine() {
	if p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.addError(fmt.Sprintf("unexpected %q after command", p.curTok.Literal))
		p.skipToNextLine()
	}
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a tape file from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}
