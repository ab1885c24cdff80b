package parser

import (
	"lucid/internal/ast"
	"lucid/internal/errors"
	"lucid/internal/lexer"
)

func (p *Parser) parseFunctionDef() (ast.Stmt, error) {
	start, err := p.consume(lexer.FN, "expected 'fn' keyword")
	if err != nil {
		return nil, err
	}

	name, err := p.consumeIdent("expected function name")
	if err != nil {
		return nil, err
	}

	params, err := p.parseFunctionParams()
	if err != nil {
		return nil, err
	}

	// Optional "-> Type" return annotation
	var returnType *ast.Ident
	arrow, err := p.match(lexer.ARROW)
	if err != nil {
		return nil, err
	}
	if arrow {
		ret, err := p.consumeIdent("expected return type after '->'")
		if err != nil {
			return nil, err
		}
		returnType = &ret
	}

	body, end, err := p.parseBlock("function body")
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{
		Pos:        p.makePos(start),
		EndPos:     end,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, nil
}

func (p *Parser) parseFunctionParams() ([]*ast.FunctionParam, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []*ast.FunctionParam
	for !p.check(lexer.RIGHT_PAREN) && !p.isAtEnd() {
		name, err := p.consumeIdent("expected parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON, "expected ':' after parameter name"); err != nil {
			return nil, err
		}
		paramType, err := p.consumeIdent("expected parameter type")
		if err != nil {
			return nil, err
		}

		params = append(params, &ast.FunctionParam{
			Pos:    name.Pos,
			EndPos: paramType.EndPos,
			Name:   name,
			Type:   paramType,
		})

		comma, err := p.match(lexer.COMMA)
		if err != nil {
			return nil, err
		}
		if !comma {
			break
		}
	}

	if _, err := p.consume(lexer.RIGHT_PAREN, "expected ')' after parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseVariableDecl(mutable bool) (ast.Stmt, error) {
	keyword := lexer.LET
	if mutable {
		keyword = lexer.VAR
	}
	start, err := p.consume(keyword, "expected declaration keyword")
	if err != nil {
		return nil, err
	}

	name, err := p.consumeIdent("expected variable name")
	if err != nil {
		return nil, err
	}

	// Optional ": Type" annotation
	var declType *ast.Ident
	colon, err := p.match(lexer.COLON)
	if err != nil {
		return nil, err
	}
	if colon {
		t, err := p.consumeIdent("expected type annotation after ':'")
		if err != nil {
			return nil, err
		}
		declType = &t
	}

	if _, err := p.consume(lexer.EQUAL, "expected '=' in declaration"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	end, err := p.optionalSemicolon(value.NodeEndPos())
	if err != nil {
		return nil, err
	}

	return &ast.VariableDecl{
		Pos:     p.makePos(start),
		EndPos:  end,
		Mutable: mutable,
		Name:    name,
		Type:    declType,
		Value:   value,
	}, nil
}

func (p *Parser) parseConstantDecl() (ast.Stmt, error) {
	start, err := p.consume(lexer.CONST, "expected 'const' keyword")
	if err != nil {
		return nil, err
	}

	name, err := p.consumeIdent("expected constant name")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.EQUAL, "expected '=' in constant declaration"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	end, err := p.optionalSemicolon(value.NodeEndPos())
	if err != nil {
		return nil, err
	}

	return &ast.ConstantDecl{
		Pos:    p.makePos(start),
		EndPos: end,
		Name:   name,
		Value:  value,
	}, nil
}

func (p *Parser) parseAssignStmt() (ast.Stmt, error) {
	name, err := p.consumeIdent("expected variable name")
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

	end, err := p.optionalSemicolon(value.NodeEndPos())
	if err != nil {
		return nil, err
	}

	return &ast.AssignStmt{
		Pos:    name.Pos,
		EndPos: end,
		Name:   name,
		Value:  value,
	}, nil
}

func (p *Parser) parseIfExpr() (ast.Stmt, error) {
	start, err := p.consume(lexer.IF, "expected 'if' keyword")
	if err != nil {
		return nil, err
	}

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	thenBranch, end, err := p.parseBlock("if branch")
	if err != nil {
		return nil, err
	}

	var elseBranch []ast.Stmt
	hasElse, err := p.match(lexer.ELSE)
	if err != nil {
		return nil, err
	}
	if hasElse {
		elseBranch, end, err = p.parseBlock("else branch")
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfExpr{
		Pos:        p.makePos(start),
		EndPos:     end,
		Condition:  condition,
		ThenBranch: thenBranch,
		ElseBranch: elseBranch,
	}, nil
}

func (p *Parser) parseWhileLoop() (ast.Stmt, error) {
	start, err := p.consume(lexer.WHILE, "expected 'while' keyword")
	if err != nil {
		return nil, err
	}

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, end, err := p.parseBlock("while body")
	if err != nil {
		return nil, err
	}

	return &ast.WhileLoop{
		Pos:       p.makePos(start),
		EndPos:    end,
		Condition: condition,
		Body:      body,
	}, nil
}

func (p *Parser) parseForLoop() (ast.Stmt, error) {
	start, err := p.consume(lexer.FOR, "expected 'for' keyword")
	if err != nil {
		return nil, err
	}

	variable, err := p.consumeIdent("expected loop variable name")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.IN, "expected 'in' after loop variable"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, end, err := p.parseBlock("for body")
	if err != nil {
		return nil, err
	}

	return &ast.ForLoop{
		Pos:      p.makePos(start),
		EndPos:   end,
		Variable: variable,
		Iterable: iterable,
		Body:     body,
	}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	start, err := p.consume(lexer.RETURN, "expected 'return' keyword")
	if err != nil {
		return nil, err
	}

	var value ast.Expr
	end := p.makeEndPos(start)
	if !p.check(lexer.SEMICOLON) && !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		end = value.NodeEndPos()
	}

	end, err = p.optionalSemicolon(end)
	if err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{
		Pos:    p.makePos(start),
		EndPos: end,
		Value:  value,
	}, nil
}

func (p *Parser) parseMatchExpr() (ast.Stmt, error) {
	start, err := p.consume(lexer.MATCH, "expected 'match' keyword")
	if err != nil {
		return nil, err
	}

	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LEFT_BRACE, "expected '{' to start match arms"); err != nil {
		return nil, err
	}

	var arms []*ast.MatchArm
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)

		comma, err := p.match(lexer.COMMA)
		if err != nil {
			return nil, err
		}
		if !comma {
			break
		}
	}

	end, err := p.consume(lexer.RIGHT_BRACE, "expected '}' to close match expression")
	if err != nil {
		return nil, err
	}

	return &ast.MatchExpr{
		Pos:       p.makePos(start),
		EndPos:    p.makeEndPos(end),
		Scrutinee: scrutinee,
		Arms:      arms,
	}, nil
}

// parseMatchArm parses one "pattern => result" arm. Patterns are restricted
// to number and string literals, which compare by value, and identifiers,
// which match anything.
func (p *Parser) parseMatchArm() (*ast.MatchArm, error) {
	switch p.cur.Type {
	case lexer.NUMBER, lexer.STRING, lexer.IDENTIFIER:
	default:
		return nil, errors.ExpectedToken("invalid pattern in match expression",
			"a literal or identifier pattern", p.tokenLabel(p.cur), p.makePos(p.cur))
	}

	pattern, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.ARROW, "expected '=>' after match pattern"); err != nil {
		return nil, err
	}

	result, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.MatchArm{
		Pos:     pattern.NodePos(),
		EndPos:  result.NodeEndPos(),
		Pattern: pattern,
		Result:  result,
	}, nil
}
