package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lucid/internal/errors"
	"lucid/internal/lsp"
	"lucid/internal/parser"
)

const lucidSample = `fn add(a: Int, b: Int) -> Int {
  return a + b;
}

let total = add(2, 3)
`

const noemaSample = `belief confidence=0.9 @source("obs") {
  fact: "ready"
}
`

func openDocument(t *testing.T, handler *lsp.LucidHandler, uri, text string) {
	t.Helper()

	err := handler.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: text},
	})
	require.NoError(t, err, "DidOpen should succeed")
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewLucidHandler()
	uri := "file:///workspace/sample.lc"
	openDocument(t, handler, uri, lucidSample)

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")
	require.NotEmpty(t, tokens.Data, "Returned token data should not be empty")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 10)

	assertToken(t, &decoded[0], 1, 4, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[1], 1, 8, 1, "parameter", nil)
	assertToken(t, &decoded[2], 1, 11, 3, "type", nil)
	assertToken(t, &decoded[3], 1, 16, 1, "parameter", nil)
	assertToken(t, &decoded[4], 1, 19, 3, "type", nil)
	assertToken(t, &decoded[5], 1, 27, 3, "type", nil)
	assertToken(t, &decoded[6], 2, 10, 1, "variable", nil)
	assertToken(t, &decoded[7], 2, 14, 1, "variable", nil)
	assertToken(t, &decoded[8], 5, 5, 5, "variable", []string{"declaration"})
	assertToken(t, &decoded[9], 5, 13, 3, "function", nil)
}

func TestKnowledgeSemanticTokens(t *testing.T) {
	handler := lsp.NewLucidHandler()
	uri := "file:///workspace/doc.noe"
	openDocument(t, handler, uri, noemaSample)

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	assertToken(t, &decoded[0], 1, 1, 6, "keyword", nil)
	assertToken(t, &decoded[1], 1, 23, 7, "modifier", nil)
	assertToken(t, &decoded[2], 2, 3, 4, "property", nil)
}

func TestTextDocumentCompletion(t *testing.T) {
	handler := lsp.NewLucidHandler()

	result, err := handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///workspace/sample.lc"},
		},
	})
	require.NoError(t, err)
	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok, "Completion should return a CompletionList")

	labels := completionLabels(list)
	require.Contains(t, labels, "fn")
	require.Contains(t, labels, "match")
	require.Contains(t, labels, "println", "Builtins should complete in Lucid files")

	result, err = handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///workspace/doc.noe"},
		},
	})
	require.NoError(t, err)
	list, ok = result.(*protocol.CompletionList)
	require.True(t, ok)

	labels = completionLabels(list)
	require.Contains(t, labels, "belief")
	require.Contains(t, labels, "to_perform", "Inline markers should complete in Noema files")
	require.NotContains(t, labels, "println", "Builtins belong to the surface language only")
}

func TestTextDocumentDocumentSymbol(t *testing.T) {
	handler := lsp.NewLucidHandler()
	uri := "file:///workspace/sample.lc"
	openDocument(t, handler, uri, lucidSample)

	result, err := handler.TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok, "Symbols should be DocumentSymbol values")
	require.Len(t, symbols, 2)

	require.Equal(t, "add", symbols[0].Name)
	require.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	require.NotNil(t, symbols[0].Detail)
	require.Equal(t, "fn(a: Int, b: Int) -> Int", *symbols[0].Detail)

	require.Equal(t, "total", symbols[1].Name)
	require.Equal(t, protocol.SymbolKindVariable, symbols[1].Kind)
}

func TestKnowledgeDocumentSymbols(t *testing.T) {
	handler := lsp.NewLucidHandler()
	uri := "file:///workspace/doc.noe"
	openDocument(t, handler, uri, noemaSample)

	result, err := handler.TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)

	require.Equal(t, "belief", symbols[0].Name)
	require.Equal(t, protocol.SymbolKindObject, symbols[0].Kind)
	require.Len(t, symbols[0].Children, 1, "Keyed entries should appear as children")
	require.Equal(t, "fact", symbols[0].Children[0].Name)
}

func TestConvertErrorCarriesPositionAndCode(t *testing.T) {
	_, err := parser.ParseSource("broken.lc", "fn {")
	require.Error(t, err, "Broken source should fail to parse")

	diagnostics := lsp.ConvertError(err)
	require.Len(t, diagnostics, 1, "Parsing is fail-fast, so one diagnostic")

	diag := diagnostics[0]
	require.Equal(t, uint32(0), diag.Range.Start.Line, "Lines should convert to 0-based")
	require.NotNil(t, diag.Severity)
	require.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	require.NotNil(t, diag.Code)
	require.NotNil(t, diag.Source)
	require.Equal(t, "lucid", *diag.Source)

	parseDiag, ok := err.(*errors.Diagnostic)
	require.True(t, ok)
	require.Equal(t, parseDiag.Message, diag.Message)
}

func completionLabels(list *protocol.CompletionList) []string {
	labels := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		labels = append(labels, item.Label)
	}
	return labels
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // report 1-based for readable assertions
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
