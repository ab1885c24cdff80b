package parser

import (
	"fmt"

	"lucid/internal/ast"
	"lucid/internal/errors"
	"lucid/internal/lexer"
)

// advance consumes the current token after pulling its successor from the
// lexer. A lexical error in the successor surfaces here.
func (p *Parser) advance() (lexer.Token, error) {
	tok := p.cur
	if tok.Type != lexer.EOF {
		next, err := p.lex.NextToken()
		if err != nil {
			return lexer.Token{}, err
		}
		p.cur = next
	}
	p.prev = tok
	return tok, nil
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.cur.Type == tt
}

func (p *Parser) match(types ...lexer.TokenType) (bool, error) {
	for _, tt := range types {
		if p.check(tt) {
			if _, err := p.advance(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (p *Parser) consume(tt lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance()
	}
	return lexer.Token{}, errors.ExpectedToken(message, tt.String(), p.tokenLabel(p.cur), p.makePos(p.cur))
}

func (p *Parser) previous() lexer.Token {
	return p.prev
}

func (p *Parser) isAtEnd() bool {
	return p.cur.Type == lexer.EOF
}

// optionalSemicolon consumes a trailing ';' when present. No statement form
// requires one. Returns the semicolon's end position when consumed and the
// fallback otherwise.
func (p *Parser) optionalSemicolon(fallback ast.Position) (ast.Position, error) {
	if p.check(lexer.SEMICOLON) {
		tok, err := p.advance()
		if err != nil {
			return ast.Position{}, err
		}
		return p.makeEndPos(tok), nil
	}
	return fallback, nil
}

func (p *Parser) tokenLabel(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

func (p *Parser) makePos(tok lexer.Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok lexer.Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok lexer.Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(message string) (ast.Ident, error) {
	tok, err := p.consume(lexer.IDENTIFIER, message)
	if err != nil {
		return ast.Ident{}, err
	}
	return p.makeIdent(tok), nil
}

// parseBlock parses a brace-delimited statement list. The context string
// feeds the delimiter error messages, e.g. "function body".
func (p *Parser) parseBlock(context string) ([]ast.Stmt, ast.Position, error) {
	if _, err := p.consume(lexer.LEFT_BRACE, "expected '{' to start "+context); err != nil {
		return nil, ast.Position{}, err
	}

	var body []ast.Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, ast.Position{}, err
		}
		body = append(body, stmt)
	}

	end, err := p.consume(lexer.RIGHT_BRACE, "expected '}' to close "+context)
	if err != nil {
		return nil, ast.Position{}, err
	}
	return body, p.makeEndPos(end), nil
}
