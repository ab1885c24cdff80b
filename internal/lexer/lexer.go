package lexer

import (
	"strings"
	"unicode"

	"lucid/internal/ast"
	"lucid/internal/errors"
)

// Mode selects which language flavor the lexer tokenizes.
type Mode int

const (
	// Lucid is the general-purpose surface language.
	Lucid Mode = iota
	// Noema is the declarative knowledge dialect. It adds '@', '..', a
	// lambda arrow, and numbers with a single embedded '.'.
	Noema
)

// Lexer turns source text into tokens one call at a time. Once the input is
// exhausted every further NextToken call returns the same EOF token.
type Lexer struct {
	filename string
	source   string
	mode     Mode

	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

// Mark is an opaque snapshot of the lexer's position, used by parsers that
// need to peek a token and then rewind.
type Mark struct {
	current int
	line    int
	column  int
}

func New(filename, source string, mode Mode) *Lexer {
	return &Lexer{
		filename: filename,
		source:   source,
		mode:     mode,
		line:     1,
	}
}

// Mark snapshots the current position.
func (l *Lexer) Mark() Mark {
	return Mark{current: l.current, line: l.line, column: l.column}
}

// Reset rewinds the lexer to a previously taken Mark.
func (l *Lexer) Reset(m Mark) {
	l.current = m.current
	l.line = m.line
	l.column = m.column
}

// NextToken scans and returns the next token. Whitespace and // comments are
// skipped silently but still advance line and column. An unrecognized
// character is a fatal lexical error.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.isAtEnd() {
		return Token{Type: EOF, Position: Position{Line: l.line, Column: l.column, Offset: l.current}}, nil
	}

	l.start = l.current
	l.startLine = l.line
	l.startColumn = l.column

	c := l.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		return l.makeToken(LEFT_PAREN), nil
	case ')':
		return l.makeToken(RIGHT_PAREN), nil
	case '{':
		return l.makeToken(LEFT_BRACE), nil
	case '}':
		return l.makeToken(RIGHT_BRACE), nil
	case '[':
		return l.makeToken(LEFT_BRACKET), nil
	case ']':
		return l.makeToken(RIGHT_BRACKET), nil
	case ',':
		return l.makeToken(COMMA), nil
	case ';':
		return l.makeToken(SEMICOLON), nil
	case ':':
		return l.makeToken(COLON), nil
	case '+':
		return l.makeToken(PLUS), nil
	case '*':
		return l.makeToken(STAR), nil
	case '/':
		return l.makeToken(SLASH), nil

	// Operators with multi-character variants
	case '-':
		if l.matchNext('>') {
			return l.makeToken(ARROW), nil
		}
		return l.makeToken(MINUS), nil
	case '=':
		if l.matchNext('=') {
			return l.makeToken(EQUAL_EQUAL), nil
		}
		if l.matchNext('>') {
			if l.mode == Noema {
				return l.makeToken(LAMBDA), nil
			}
			return l.makeToken(ARROW), nil
		}
		return l.makeToken(EQUAL), nil
	case '!':
		if l.matchNext('=') {
			return l.makeToken(BANG_EQUAL), nil
		}
		return l.makeToken(BANG), nil
	case '<':
		if l.matchNext('=') {
			return l.makeToken(LESS_EQUAL), nil
		}
		return l.makeToken(LESS), nil
	case '>':
		if l.matchNext('=') {
			return l.makeToken(GREATER_EQUAL), nil
		}
		return l.makeToken(GREATER), nil
	case '&':
		if l.matchNext('&') {
			return l.makeToken(AND), nil
		}
		return Token{}, l.illegalCharacter(c)
	case '|':
		if l.matchNext('|') {
			return l.makeToken(OR), nil
		}
		return Token{}, l.illegalCharacter(c)
	case '.':
		if l.mode == Noema && l.matchNext('.') {
			return l.makeToken(RANGE), nil
		}
		return l.makeToken(DOT), nil
	case '@':
		if l.mode == Noema {
			return l.makeToken(AT), nil
		}
		return Token{}, l.illegalCharacter(c)

	// String literals
	case '"', '\'':
		return l.scanString(c), nil

	default:
		if isDigit(c) {
			return l.scanNumber(), nil
		}
		if isAlpha(c) {
			return l.scanIdentifier(), nil
		}
		return Token{}, l.illegalCharacter(c)
	}
}

// skipWhitespace consumes spaces, tabs, carriage returns, newlines, and
// // line comments. Line and column advance through all of them.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t', '\n':
			l.advance()
		case '/':
			if l.peekNext() != '/' {
				return
			}
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	if c == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) matchNext(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) makeToken(tokenType TokenType) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   l.source[l.start:l.current],
		Position: Position{Line: l.startLine, Column: l.startColumn, Offset: l.start},
	}
}

func (l *Lexer) illegalCharacter(c byte) error {
	return errors.IllegalCharacter(c, ast.Position{
		Filename: l.filename,
		Offset:   l.start,
		Line:     l.startLine,
		Column:   l.startColumn,
	})
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return unicode.IsLetter(rune(c)) || c == '_'
}

// scanString consumes a literal delimited by the quote that opened it. A
// backslash keeps itself and the following character verbatim; no escape
// translation happens here. A missing closing quote ends the literal at EOF
// without an error.
func (l *Lexer) scanString(quote byte) Token {
	for !l.isAtEnd() && l.peek() != quote {
		if l.peek() == '\\' {
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
			continue
		}
		l.advance()
	}

	value := l.source[l.start+1 : l.current]
	if !l.isAtEnd() {
		l.advance() // closing quote
	}

	return Token{
		Type:     STRING,
		Lexeme:   value,
		Position: Position{Line: l.startLine, Column: l.startColumn, Offset: l.start},
	}
}

// scanNumber consumes a maximal run of digits. In Noema mode one embedded
// '.' is allowed when digits follow it; in Lucid mode a '.' always ends the
// number and lexes as its own token.
func (l *Lexer) scanNumber() Token {
	seenDot := false
	for {
		if isDigit(l.peek()) {
			l.advance()
			continue
		}
		if l.mode == Noema && l.peek() == '.' && !seenDot && isDigit(l.peekNext()) {
			seenDot = true
			l.advance()
			continue
		}
		break
	}
	return l.makeToken(NUMBER)
}

// scanIdentifier consumes an identifier or keyword. Keyword matching is
// case-insensitive; the token keeps the original casing.
func (l *Lexer) scanIdentifier() Token {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.current]
	return Token{
		Type:     l.lookupKeyword(text),
		Lexeme:   text,
		Position: Position{Line: l.startLine, Column: l.startColumn, Offset: l.start},
	}
}

func (l *Lexer) lookupKeyword(text string) TokenType {
	lowered := strings.ToLower(text)
	if l.mode == Noema {
		if t, ok := knowledgeKeywords[lowered]; ok {
			return t
		}
		return IDENTIFIER
	}
	if t, ok := surfaceKeywords[lowered]; ok {
		return t
	}
	return IDENTIFIER
}
