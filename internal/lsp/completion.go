package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lucid/internal/lexer"
)

// builtinCompletions describes the interpreter's builtin functions for
// completion, with a human-readable signature as the detail text.
var builtinCompletions = []struct {
	label  string
	detail string
}{
	{"println", "println(values...)"},
	{"print", "print(values...)"},
	{"sqrt", "sqrt(number)"},
	{"len", "len(string | array)"},
	{"push", "push(array, value)"},
	{"range", "range(stop) | range(start, stop)"},
}

// knowledgeProperties are the special identifiers of the knowledge dialect
// that are not keywords: the inline confidence and action markers.
var knowledgeProperties = []string{"confidence", "to_perform"}

// completionItems returns the static completion set for a document's
// dialect: keywords, plus builtins for Lucid files and the inline property
// names for Noema files.
func completionItems(path string) []protocol.CompletionItem {
	if isKnowledgePath(path) {
		items := keywordItems(lexer.KnowledgeKeywords())
		for _, property := range knowledgeProperties {
			items = append(items, protocol.CompletionItem{
				Label: property,
				Kind:  ptrCompletionKind(protocol.CompletionItemKindProperty),
			})
		}
		return items
	}

	items := keywordItems(lexer.SurfaceKeywords())
	for _, builtin := range builtinCompletions {
		detail := builtin.detail
		items = append(items, protocol.CompletionItem{
			Label:  builtin.label,
			Kind:   ptrCompletionKind(protocol.CompletionItemKindFunction),
			Detail: &detail,
		})
	}
	return items
}

func keywordItems(keywords []string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, keyword := range keywords {
		items = append(items, protocol.CompletionItem{
			Label: keyword,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}
	return items
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
