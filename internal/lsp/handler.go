package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lucid/internal/ast"
	"lucid/internal/knowledge"
	"lucid/internal/parser"
)

// SemanticTokenTypes is the legend advertised to clients; token entries
// index into this list.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// SemanticTokenModifiers is the modifier legend; entries are bitmask
// positions.
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// LucidHandler implements the LSP server handlers for both Lucid source
// files (.lc) and Noema knowledge documents (.noe).
type LucidHandler struct {
	mu        sync.RWMutex
	content   map[string]string
	programs  map[string]*ast.Program
	documents map[string]*knowledge.Program
}

// NewLucidHandler creates and returns a new LucidHandler instance.
func NewLucidHandler() *LucidHandler {
	return &LucidHandler{
		content:   make(map[string]string),
		programs:  make(map[string]*ast.Program),
		documents: make(map[string]*knowledge.Program),
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities.
func (h *LucidHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client completes initialization.
func (h *LucidHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *LucidHandler) Shutdown(ctx *glsp.Context) error {
	return nil
}

// SetTrace handles trace level changes; the server does not emit traces.
func (h *LucidHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen parses the opened document and publishes any
// diagnostics.
func (h *LucidHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	diagnostics := h.updateDocument(path, params.TextDocument.Text)
	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}
	return nil
}

// TextDocumentDidClose drops the cached state for the closed document.
func (h *LucidHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.programs, path)
	delete(h.documents, path)
	return nil
}

// TextDocumentDidChange reparses the changed document and publishes any
// diagnostics. Sync is full-document, so the last change carries the whole
// text.
func (h *LucidHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	text, ok := h.lookupContent(path)
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		}
	}
	if !ok {
		return fmt.Errorf("no content for %s", path)
	}

	diagnostics := h.updateDocument(path, text)
	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}
	return nil
}

// TextDocumentCompletion serves keyword and builtin completions for the
// document's dialect.
func (h *LucidHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(path),
	}, nil
}

// TextDocumentDocumentSymbol lists the top-level constructs of a document.
func (h *LucidHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}
	if err := h.ensureParsed(ctx, path, params.TextDocument.URI); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if program, ok := h.programs[path]; ok {
		return programSymbols(program), nil
	}
	if document, ok := h.documents[path]; ok {
		return knowledgeSymbols(document), nil
	}
	return []protocol.DocumentSymbol{}, nil
}

// TextDocumentSemanticTokensFull serves semantic tokens for the entire
// document, delta-encoded per the LSP wire format.
func (h *LucidHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}
	if err := h.ensureParsed(ctx, path, params.TextDocument.URI); err != nil {
		return nil, err
	}

	h.mu.RLock()
	program := h.programs[path]
	document := h.documents[path]
	h.mu.RUnlock()

	var tokens []SemanticToken
	if program != nil {
		tokens = collectSemanticTokens(program)
	} else if document != nil {
		tokens = collectKnowledgeTokens(document)
	}

	var data []uint32
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// ensureParsed fills the cache for documents requested before any open
// notification, reading the text from disk.
func (h *LucidHandler) ensureParsed(ctx *glsp.Context, path string, rawURI protocol.DocumentUri) error {
	h.mu.RLock()
	_, haveContent := h.content[path]
	h.mu.RUnlock()
	if haveContent {
		return nil
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	diagnostics := h.updateDocument(path, string(text))
	if diagnostics != nil {
		sendDiagnosticNotification(ctx, rawURI, diagnostics)
	}
	return nil
}

// updateDocument reparses one document in its dialect and refreshes the
// cache. The returned diagnostics are nil when the parse succeeded.
func (h *LucidHandler) updateDocument(path, text string) []protocol.Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.content[path] = text
	delete(h.programs, path)
	delete(h.documents, path)

	if isKnowledgePath(path) {
		document, err := knowledge.ParseSource(path, text)
		if err != nil {
			return ConvertError(err)
		}
		h.documents[path] = document
		return nil
	}

	program, err := parser.ParseSource(path, text)
	if err != nil {
		return ConvertError(err)
	}
	h.programs[path] = program
	return nil
}

func (h *LucidHandler) lookupContent(path string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	text, ok := h.content[path]
	return text, ok
}

// isKnowledgePath reports whether a file holds the knowledge dialect.
func isKnowledgePath(path string) bool {
	return filepath.Ext(path) == ".noe"
}

// uriToPath converts a URI to a platform-local file path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove the leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
