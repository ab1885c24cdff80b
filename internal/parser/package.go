package parser

import (
	"lucid/internal/ast"
	"lucid/internal/lexer"
)

// ParseSource parses a complete surface-language program. On failure the
// returned error is the first lexical or syntax diagnostic hit; no partial
// AST is produced.
func ParseSource(path string, source string) (*ast.Program, error) {
	lex := lexer.New(path, source, lexer.Lucid)
	p, err := NewParser(path, lex)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}
