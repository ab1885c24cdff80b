package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"lucid/internal/ast"
	"lucid/internal/knowledge"
)

// programSymbols lists the top-level constructs of a Lucid program for the
// document outline.
func programSymbols(program *ast.Program) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}

	for _, stmt := range program.Statements {
		switch v := stmt.(type) {
		case *ast.FunctionDef:
			detail := functionDetail(v)
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           v.Name.Value,
				Detail:         &detail,
				Kind:           protocol.SymbolKindFunction,
				Range:          symbolRange(v.Pos, v.EndPos),
				SelectionRange: symbolRange(v.Name.Pos, v.Name.EndPos),
			})
		case *ast.VariableDecl:
			detail := "let"
			if v.Mutable {
				detail = "var"
			}
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           v.Name.Value,
				Detail:         &detail,
				Kind:           protocol.SymbolKindVariable,
				Range:          symbolRange(v.Pos, v.EndPos),
				SelectionRange: symbolRange(v.Name.Pos, v.Name.EndPos),
			})
		case *ast.ConstantDecl:
			detail := "const"
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           v.Name.Value,
				Detail:         &detail,
				Kind:           protocol.SymbolKindConstant,
				Range:          symbolRange(v.Pos, v.EndPos),
				SelectionRange: symbolRange(v.Name.Pos, v.Name.EndPos),
			})
		}
	}
	return symbols
}

// knowledgeSymbols lists the blocks and assignments of a Noema document.
func knowledgeSymbols(document *knowledge.Program) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}

	for _, stmt := range document.Statements {
		switch v := stmt.(type) {
		case *knowledge.Block:
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           v.Kind.String(),
				Kind:           protocol.SymbolKindObject,
				Range:          symbolRange(v.Pos, v.EndPos),
				SelectionRange: symbolRange(v.Pos, v.EndPos),
				Children:       entrySymbols(v.Entries),
			})
		case *knowledge.Assignment:
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           v.Name,
				Kind:           protocol.SymbolKindVariable,
				Range:          symbolRange(v.Pos, v.EndPos),
				SelectionRange: symbolRange(v.Pos, v.EndPos),
			})
		}
	}
	return symbols
}

func entrySymbols(entries []*knowledge.Entry) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, entry := range entries {
		if entry.Key == "" {
			continue
		}
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           entry.Key,
			Kind:           protocol.SymbolKindField,
			Range:          symbolRange(entry.Pos, entry.EndPos),
			SelectionRange: symbolRange(entry.Pos, entry.EndPos),
		})
	}
	return symbols
}

func functionDetail(fn *ast.FunctionDef) string {
	params := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		params = append(params, param.Name.Value+": "+param.Type.Value)
	}
	detail := "fn(" + strings.Join(params, ", ") + ")"
	if fn.ReturnType != nil {
		detail += " -> " + fn.ReturnType.Value
	}
	return detail
}

func symbolRange(pos, endPos ast.Position) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(pos.Line - 1), Character: uint32(pos.Column)},
		End:   protocol.Position{Line: uint32(endPos.Line - 1), Character: uint32(endPos.Column)},
	}
}
