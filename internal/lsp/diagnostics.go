package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lucid/internal/errors"
)

// ConvertDiagnostic transforms one diagnostic into its LSP form for IDE
// display. Lines arrive 1-based and columns 0-based; LSP wants both
// 0-based.
func ConvertDiagnostic(diag *errors.Diagnostic) protocol.Diagnostic {
	line := uint32(0)
	if diag.Position.Line > 0 {
		line = uint32(diag.Position.Line - 1)
	}
	start := uint32(diag.Position.Column)

	length := uint32(diag.Length)
	if length == 0 {
		length = 1
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: ptrSeverity(convertSeverity(diag.Level)),
		Code:     &protocol.IntegerOrString{Value: diag.Code},
		Source:   ptrString("lucid"),
		Message:  diag.Message,
	}
}

// ConvertError turns a parse failure into a diagnostics list. Parsing is
// fail-fast, so the list holds at most one entry; non-diagnostic errors
// become a position-less entry rather than being dropped.
func ConvertError(err error) []protocol.Diagnostic {
	if err == nil {
		return nil
	}
	if diag, ok := err.(*errors.Diagnostic); ok {
		return []protocol.Diagnostic{ConvertDiagnostic(diag)}
	}
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("lucid"),
		Message:  err.Error(),
	}}
}

func convertSeverity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
