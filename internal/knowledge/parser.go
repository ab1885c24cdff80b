package knowledge

import (
	"fmt"
	"strconv"

	"lucid/internal/ast"
	"lucid/internal/errors"
	"lucid/internal/lexer"
)

// Parser builds a Noema AST, pulling tokens from a Noema-mode lexer with a
// single token of lookahead. Like the surface parser, the first structural
// error aborts the whole parse.
type Parser struct {
	filename string
	lex      *lexer.Lexer
	cur      lexer.Token
}

var blockKinds = map[lexer.TokenType]BlockKind{
	lexer.BELIEF:                     BeliefBlock,
	lexer.REASONING_CONTEXT:          ReasoningContextBlock,
	lexer.INTENT:                     IntentBlock,
	lexer.SHARED_STATE:               SharedStateBlock,
	lexer.SELF_CAPABILITY:            SelfCapabilityBlock,
	lexer.CALCULATE_WITH_UNCERTAINTY: CalculateWithUncertaintyBlock,
	lexer.STRUCTURED_KNOWLEDGE:       StructuredKnowledgeBlock,
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

// ParseSource parses a complete Noema program.
func ParseSource(path string, source string) (*Program, error) {
	lex := lexer.New(path, source, lexer.Noema)
	p, err := NewParser(path, lex)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) ParseProgram() (*Program, error) {
	start := p.cur

	var statements []Stmt
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return &Program{
		Pos:        p.makePos(start),
		EndPos:     p.makePos(p.cur),
		Statements: statements,
	}, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	if kind, ok := blockKinds[p.cur.Type]; ok {
		return p.parseBlock(kind)
	}
	if p.check(lexer.IDENTIFIER) {
		return p.parseAssignment()
	}
	return nil, errors.UnexpectedToken(p.tokenLabel(p.cur), p.makePos(p.cur))
}

func (p *Parser) parseBlock(kind BlockKind) (Stmt, error) {
	start, err := p.advance()
	if err != nil {
		return nil, err
	}

	block := &Block{Pos: p.makePos(start), Kind: kind}

	// belief takes an inline "confidence=<expr>" directly after the keyword
	if kind == BeliefBlock && p.check(lexer.IDENTIFIER) && p.cur.Lexeme == "confidence" {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.EQUAL, "expected '=' after 'confidence'"); err != nil {
			return nil, err
		}
		block.Confidence, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	// intent takes an inline "to_perform: <expr>" before its attributes
	if kind == IntentBlock && p.check(lexer.IDENTIFIER) && p.cur.Lexeme == "to_perform" {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON, "expected ':' after 'to_perform'"); err != nil {
			return nil, err
		}
		block.Action, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	block.Attributes, err = p.parseAttributes()
	if err != nil {
		return nil, err
	}

	block.Entries, block.EndPos, err = p.parseBlockBody()
	if err != nil {
		return nil, err
	}

	return block, nil
}

func (p *Parser) parseAttributes() ([]*Attribute, error) {
	var attrs []*Attribute
	for p.check(lexer.AT) {
		at, err := p.advance()
		if err != nil {
			return nil, err
		}
		name, err := p.consume(lexer.IDENTIFIER, "expected attribute name after '@'")
		if err != nil {
			return nil, err
		}

		attr := &Attribute{
			Pos:    p.makePos(at),
			EndPos: p.makeEndPos(name),
			Name:   name.Lexeme,
		}

		hasValue, err := p.match(lexer.LEFT_PAREN)
		if err != nil {
			return nil, err
		}
		if hasValue {
			attr.Value, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
			rparen, err := p.consume(lexer.RIGHT_PAREN, "expected ')' to close attribute value")
			if err != nil {
				return nil, err
			}
			attr.EndPos = p.makeEndPos(rparen)
		} else {
			// bare @name defaults to true
			attr.Value = &BooleanLit{Pos: attr.Pos, EndPos: attr.EndPos, Value: true}
		}

		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (p *Parser) parseBlockBody() ([]*Entry, ast.Position, error) {
	if _, err := p.consume(lexer.LEFT_BRACE, "expected '{' to open block body"); err != nil {
		return nil, ast.Position{}, err
	}

	var entries []*Entry
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, ast.Position{}, err
		}
		entries = append(entries, entry)
	}

	end, err := p.consume(lexer.RIGHT_BRACE, "expected '}' to close block body")
	if err != nil {
		return nil, ast.Position{}, err
	}
	return entries, p.makeEndPos(end), nil
}

// parseEntry parses one block body item. An identifier always begins a
// "key: expression" pair; anything else is a bare expression entry.
func (p *Parser) parseEntry() (*Entry, error) {
	if p.check(lexer.IDENTIFIER) {
		key, err := p.advance()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON, "expected ':' after entry key"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Entry{
			Pos:    p.makePos(key),
			EndPos: value.NodeEndPos(),
			Key:    key.Lexeme,
			Value:  value,
		}, nil
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Entry{Pos: value.NodePos(), EndPos: value.NodeEndPos(), Value: value}, nil
}

func (p *Parser) parseAssignment() (Stmt, error) {
	name, err := p.advance()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.EQUAL, "expected '=' in assignment"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Assignment{
		Pos:    p.makePos(name),
		EndPos: value.NodeEndPos(),
		Name:   name.Lexeme,
		Value:  value,
	}, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	switch p.cur.Type {
	case lexer.LEFT_BRACKET:
		return p.parseArray()

	case lexer.NUMBER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		value, convErr := strconv.ParseFloat(tok.Lexeme, 64)
		if convErr != nil {
			return nil, errors.InvalidNumber(tok.Lexeme, p.makePos(tok))
		}
		return &NumberLit{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Lexeme: tok.Lexeme,
			Value:  value,
		}, nil

	case lexer.STRING:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &StringLit{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Value: tok.Lexeme}, nil

	case lexer.TRUE, lexer.FALSE:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &BooleanLit{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  tok.Type == lexer.TRUE,
		}, nil

	case lexer.IDENTIFIER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &IdentRef{Pos: p.makePos(tok), EndPos: p.makeEndPos(tok), Name: tok.Lexeme}, nil

	default:
		return nil, errors.UnexpectedToken(p.tokenLabel(p.cur), p.makePos(p.cur))
	}
}

func (p *Parser) parseArray() (Expr, error) {
	start, err := p.advance()
	if err != nil {
		return nil, err
	}

	var elements []Expr
	if !p.check(lexer.RIGHT_BRACKET) {
		for {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)

			if p.check(lexer.RIGHT_BRACKET) {
				break
			}
			if _, err := p.consume(lexer.COMMA, "expected ',' or ']' in array"); err != nil {
				return nil, err
			}
		}
	}

	end, err := p.consume(lexer.RIGHT_BRACKET, "expected ']' to close array")
	if err != nil {
		return nil, err
	}

	return &Array{
		Pos:      p.makePos(start),
		EndPos:   p.makeEndPos(end),
		Elements: elements,
	}, nil
}

func (p *Parser) advance() (lexer.Token, error) {
	tok := p.cur
	if tok.Type != lexer.EOF {
		next, err := p.lex.NextToken()
		if err != nil {
			return lexer.Token{}, err
		}
		p.cur = next
	}
	return tok, nil
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.cur.Type == tt
}

func (p *Parser) match(tt lexer.TokenType) (bool, error) {
	if p.check(tt) {
		if _, err := p.advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (p *Parser) consume(tt lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance()
	}
	return lexer.Token{}, errors.ExpectedToken(message, tt.String(), p.tokenLabel(p.cur), p.makePos(p.cur))
}

func (p *Parser) isAtEnd() bool {
	return p.cur.Type == lexer.EOF
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
