package parser

import (
	"lucid/internal/ast"
	"lucid/internal/errors"
	"lucid/internal/lexer"
)

// Parser builds a surface-language AST by recursive descent, pulling tokens
// from the lexer one at a time with a single token of lookahead. The first
// structural error aborts the whole parse; there is no recovery and no
// partial AST.
type Parser struct {
	filename string
	lex      *lexer.Lexer
	cur      lexer.Token
	prev     lexer.Token
}

func NewParser(filename string, lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{filename: filename, lex: lex}
	tok, err := lex.NextToken()
	if err != nil {
		return nil, err
	}
	p.cur = tok
	return p, nil
}

// ParseProgram parses top-level statements until end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.cur

	var statements []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return &ast.Program{
		Pos:        p.makePos(start),
		EndPos:     p.makePos(p.cur),
		Statements: statements,
	}, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.FN:
		return p.parseFunctionDef()
	case lexer.LET:
		return p.parseVariableDecl(false)
	case lexer.VAR:
		return p.parseVariableDecl(true)
	case lexer.CONST:
		return p.parseConstantDecl()
	case lexer.IF:
		return p.parseIfExpr()
	case lexer.WHILE:
		return p.parseWhileLoop()
	case lexer.FOR:
		return p.parseForLoop()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.MATCH:
		return p.parseMatchExpr()
	case lexer.IDENTIFIER:
		return p.parseIdentStatement()
	default:
		return p.parseExprStatement()
	}
}

// parseIdentStatement disambiguates "name = value" from an expression
// statement that merely starts with an identifier (most commonly a call).
// It peeks one token past the identifier and rewinds the lexer, so the
// chosen production sees an untouched stream.
func (p *Parser) parseIdentStatement() (ast.Stmt, error) {
	mark := p.lex.Mark()
	next, err := p.lex.NextToken()
	if err != nil {
		return nil, err
	}
	p.lex.Reset(mark)

	if next.Type == lexer.EQUAL {
		return p.parseAssignStmt()
	}
	return p.parseExprStatement()
}

func (p *Parser) parseExprStatement() (ast.Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.optionalSemicolon(expr.NodeEndPos()); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) unexpectedToken() error {
	return errors.UnexpectedToken(p.tokenLabel(p.cur), p.makePos(p.cur))
}
