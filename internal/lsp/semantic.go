package lsp

import (
	"lucid/internal/ast"
	"lucid/internal/knowledge"
)

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based; TokenType indexes SemanticTokenTypes and TokenModifiers is
// a bitmask over SemanticTokenModifiers.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func collectSemanticTokens(program *ast.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	for _, stmt := range program.Statements {
		tokens = append(tokens, walkStatement(stmt)...)
	}
	return tokens
}

func walkStatement(stmt ast.Stmt) []SemanticToken {
	var tokens []SemanticToken

	switch v := stmt.(type) {
	case *ast.FunctionDef:
		tokens = append(tokens, walkFunction(v)...)
	case *ast.VariableDecl:
		tokens = append(tokens, makeToken(v.Name.Pos, v.Name.EndPos, v.Name.Value, "variable", 1)...)
		if v.Type != nil {
			tokens = append(tokens, makeToken(v.Type.Pos, v.Type.EndPos, v.Type.Value, "type", 0)...)
		}
		tokens = append(tokens, walkExpression(v.Value)...)
	case *ast.ConstantDecl:
		tokens = append(tokens, makeToken(v.Name.Pos, v.Name.EndPos, v.Name.Value, "variable", 1)...)
		tokens = append(tokens, walkExpression(v.Value)...)
	case *ast.AssignStmt:
		tokens = append(tokens, makeToken(v.Name.Pos, v.Name.EndPos, v.Name.Value, "variable", 0)...)
		tokens = append(tokens, walkExpression(v.Value)...)
	case *ast.ReturnStmt:
		if v.Value != nil {
			tokens = append(tokens, walkExpression(v.Value)...)
		}
	case *ast.IfExpr:
		tokens = append(tokens, walkExpression(v.Condition)...)
		tokens = append(tokens, walkStatements(v.ThenBranch)...)
		tokens = append(tokens, walkStatements(v.ElseBranch)...)
	case *ast.WhileLoop:
		tokens = append(tokens, walkExpression(v.Condition)...)
		tokens = append(tokens, walkStatements(v.Body)...)
	case *ast.ForLoop:
		tokens = append(tokens, makeToken(v.Variable.Pos, v.Variable.EndPos, v.Variable.Value, "variable", 1)...)
		tokens = append(tokens, walkExpression(v.Iterable)...)
		tokens = append(tokens, walkStatements(v.Body)...)
	case *ast.MatchExpr:
		tokens = append(tokens, walkExpression(v.Scrutinee)...)
		for _, arm := range v.Arms {
			tokens = append(tokens, walkExpression(arm.Pattern)...)
			tokens = append(tokens, walkExpression(arm.Result)...)
		}
	case ast.Expr:
		// Bare expression statement
		tokens = append(tokens, walkExpression(v)...)
	}
	return tokens
}

func walkStatements(stmts []ast.Stmt) []SemanticToken {
	var tokens []SemanticToken
	for _, stmt := range stmts {
		tokens = append(tokens, walkStatement(stmt)...)
	}
	return tokens
}

func walkFunction(f *ast.FunctionDef) []SemanticToken {
	var tokens []SemanticToken

	tokens = append(tokens, makeToken(f.Name.Pos, f.Name.EndPos, f.Name.Value, "function", 1)...)

	for _, param := range f.Params {
		if param == nil {
			continue
		}
		tokens = append(tokens, makeToken(param.Name.Pos, param.Name.EndPos, param.Name.Value, "parameter", 0)...)
		tokens = append(tokens, makeToken(param.Type.Pos, param.Type.EndPos, param.Type.Value, "type", 0)...)
	}

	if f.ReturnType != nil {
		tokens = append(tokens, makeToken(f.ReturnType.Pos, f.ReturnType.EndPos, f.ReturnType.Value, "type", 0)...)
	}

	return append(tokens, walkStatements(f.Body)...)
}

func walkExpression(expr ast.Expr) []SemanticToken {
	var tokens []SemanticToken

	if expr == nil {
		return tokens
	}

	switch v := expr.(type) {
	case *ast.IdentExpr:
		tokens = append(tokens, makeToken(v.NodePos(), v.NodeEndPos(), v.Name, "variable", 0)...)
	case *ast.CallExpr:
		// Direct call targets read as functions, not variables
		if callee, ok := v.Callee.(*ast.IdentExpr); ok {
			tokens = append(tokens, makeToken(callee.NodePos(), callee.NodeEndPos(), callee.Name, "function", 0)...)
		} else {
			tokens = append(tokens, walkExpression(v.Callee)...)
		}
		for _, arg := range v.Args {
			tokens = append(tokens, walkExpression(arg)...)
		}
	case *ast.BinaryExpr:
		tokens = append(tokens, walkExpression(v.Left)...)
		tokens = append(tokens, walkExpression(v.Right)...)
	case *ast.UnaryExpr:
		tokens = append(tokens, walkExpression(v.Value)...)
	case *ast.ArrayLiteral:
		for _, element := range v.Elements {
			tokens = append(tokens, walkExpression(element)...)
		}
	case *ast.IfExpr:
		tokens = append(tokens, walkExpression(v.Condition)...)
		tokens = append(tokens, walkStatements(v.ThenBranch)...)
		tokens = append(tokens, walkStatements(v.ElseBranch)...)
	case *ast.MatchExpr:
		tokens = append(tokens, walkExpression(v.Scrutinee)...)
		for _, arm := range v.Arms {
			tokens = append(tokens, walkExpression(arm.Pattern)...)
			tokens = append(tokens, walkExpression(arm.Result)...)
		}
	}
	return tokens
}

// collectKnowledgeTokens walks a knowledge document: block keywords,
// attributes, entry keys and referenced identifiers.
func collectKnowledgeTokens(document *knowledge.Program) []SemanticToken {
	var tokens []SemanticToken

	if document == nil {
		return tokens
	}

	for _, stmt := range document.Statements {
		switch v := stmt.(type) {
		case *knowledge.Block:
			tokens = append(tokens, walkKnowledgeBlock(v)...)
		case *knowledge.Assignment:
			tokens = append(tokens, makeToken(v.Pos, v.EndPos, v.Name, "variable", 1)...)
			tokens = append(tokens, walkKnowledgeExpr(v.Value)...)
		}
	}
	return tokens
}

func walkKnowledgeBlock(block *knowledge.Block) []SemanticToken {
	var tokens []SemanticToken

	keyword := block.Kind.String()
	tokens = append(tokens, SemanticToken{
		Line:      uint32(block.Pos.Line - 1),
		StartChar: uint32(block.Pos.Column),
		Length:    uint32(len(keyword)),
		TokenType: indexOf("keyword", SemanticTokenTypes),
	})

	tokens = append(tokens, walkKnowledgeExpr(block.Confidence)...)
	tokens = append(tokens, walkKnowledgeExpr(block.Action)...)

	for _, attr := range block.Attributes {
		// The span covers the '@' sigil plus the name
		tokens = append(tokens, SemanticToken{
			Line:      uint32(attr.Pos.Line - 1),
			StartChar: uint32(attr.Pos.Column),
			Length:    uint32(len(attr.Name) + 1),
			TokenType: indexOf("modifier", SemanticTokenTypes),
		})
		tokens = append(tokens, walkKnowledgeExpr(attr.Value)...)
	}

	for _, entry := range block.Entries {
		if entry.Key != "" {
			tokens = append(tokens, SemanticToken{
				Line:      uint32(entry.Pos.Line - 1),
				StartChar: uint32(entry.Pos.Column),
				Length:    uint32(len(entry.Key)),
				TokenType: indexOf("property", SemanticTokenTypes),
			})
		}
		tokens = append(tokens, walkKnowledgeExpr(entry.Value)...)
	}
	return tokens
}

func walkKnowledgeExpr(expr knowledge.Expr) []SemanticToken {
	var tokens []SemanticToken

	switch v := expr.(type) {
	case *knowledge.IdentRef:
		tokens = append(tokens, makeToken(v.Pos, v.EndPos, v.Name, "variable", 0)...)
	case *knowledge.Array:
		for _, element := range v.Elements {
			tokens = append(tokens, walkKnowledgeExpr(element)...)
		}
	}
	return tokens
}

// makeToken creates a semantic token for a given position and text. Lines
// arrive 1-based and columns 0-based.
func makeToken(pos, endPos ast.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" {
		return nil
	}

	length := endPos.Column - pos.Column
	if length <= 0 || endPos.Line != pos.Line {
		length = len(value)
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
