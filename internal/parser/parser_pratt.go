package parser

import (
	"strconv"

	"lucid/internal/ast"
	"lucid/internal/errors"
	"lucid/internal/lexer"
)

// Binary operator precedence, lowest first. Each level left-associates:
// the loop in parsePrattExpr restarts one level higher for the right
// operand, so equal-precedence operators fold leftward.
var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:            1,
	lexer.AND:           2,
	lexer.EQUAL_EQUAL:   3,
	lexer.BANG_EQUAL:    3,
	lexer.LESS:          4,
	lexer.LESS_EQUAL:    4,
	lexer.GREATER:       4,
	lexer.GREATER_EQUAL: 4,
	lexer.PLUS:          5,
	lexer.MINUS:         5,
	lexer.STAR:          6,
	lexer.SLASH:         6,
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parsePrattExpr(0)
}

func (p *Parser) parsePrattExpr(minPrec int) (ast.Expr, error) {
	expr, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binaryPrecedence[p.cur.Type]
		if !ok || prec < minPrec {
			break
		}

		op, err := p.advance()
		if err != nil {
			return nil, err
		}

		right, err := p.parsePrattExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		expr = &ast.BinaryExpr{
			Pos:    expr.NodePos(),
			EndPos: right.NodeEndPos(),
			Op:     op.Lexeme,
			Left:   expr,
			Right:  right,
		}
	}

	return expr, nil
}

func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if p.check(lexer.MINUS) || p.check(lexer.BANG) {
		op, err := p.advance()
		if err != nil {
			return nil, err
		}

		value, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{
			Pos:    p.makePos(op),
			EndPos: value.NodeEndPos(),
			Op:     op.Lexeme,
			Value:  value,
		}, nil
	}

	return p.parseCallExpr()
}

// parseCallExpr parses a primary expression followed by any number of
// chained argument lists, so f(x)(y) calls the result of f(x).
func (p *Parser) parseCallExpr() (ast.Expr, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for p.check(lexer.LEFT_PAREN) {
		if _, err := p.advance(); err != nil {
			return nil, err
		}

		args, err := p.parseExprList()
		if err != nil {
			return nil, err
		}

		end, err := p.consume(lexer.RIGHT_PAREN, "expected ')' after arguments")
		if err != nil {
			return nil, err
		}

		expr = &ast.CallExpr{
			Pos:    expr.NodePos(),
			EndPos: p.makeEndPos(end),
			Callee: expr,
			Args:   args,
		}
	}

	return expr, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	switch p.cur.Type {
	case lexer.NUMBER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		value, convErr := strconv.ParseInt(tok.Lexeme, 10, 64)
		if convErr != nil {
			return nil, errors.InvalidNumber(tok.Lexeme, p.makePos(tok))
		}
		return &ast.NumberLiteral{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  value,
		}, nil

	case lexer.STRING:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.StringLiteral{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  tok.Lexeme,
		}, nil

	case lexer.TRUE, lexer.FALSE:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  tok.Type == lexer.TRUE,
		}, nil

	case lexer.IDENTIFIER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.IdentExpr{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Name:   tok.Lexeme,
		}, nil

	case lexer.LEFT_BRACKET:
		return p.parseArrayLiteral()

	case lexer.LEFT_PAREN:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parsePrattExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.unexpectedToken()
	}
}

func (p *Parser) parseArrayLiteral() (ast.Expr, error) {
	start, err := p.advance()
	if err != nil {
		return nil, err
	}

	var elements []ast.Expr
	for !p.check(lexer.RIGHT_BRACKET) && !p.isAtEnd() {
		el, err := p.parsePrattExpr(0)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)

		comma, err := p.match(lexer.COMMA)
		if err != nil {
			return nil, err
		}
		if !comma {
			break
		}
	}

	end, err := p.consume(lexer.RIGHT_BRACKET, "expected ']' to close array literal")
	if err != nil {
		return nil, err
	}

	return &ast.ArrayLiteral{
		Pos:      p.makePos(start),
		EndPos:   p.makeEndPos(end),
		Elements: elements,
	}, nil
}

func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(lexer.RIGHT_PAREN) {
		return args, nil
	}

	for {
		arg, err := p.parsePrattExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		comma, err := p.match(lexer.COMMA)
		if err != nil {
			return nil, err
		}
		if !comma {
			break
		}
	}

	return args, nil
}
