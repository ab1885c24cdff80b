package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"lucid/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Kind is the error taxonomy. Every failure in the toolchain is one of
// these; all of them abort the operation they occur in.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Name
	Type
	Arithmetic
	NoMatch
	ProofVerification
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "LexicalError"
	case Syntax:
		return "SyntaxError"
	case Name:
		return "NameError"
	case Type:
		return "TypeError"
	case Arithmetic:
		return "ArithmeticError"
	case NoMatch:
		return "NoMatchError"
	case ProofVerification:
		return "ProofVerificationError"
	default:
		return "Error"
	}
}

// Diagnostic represents a structured error with suggestions and context
type Diagnostic struct {
	Level       ErrorLevel
	Kind        Kind
	Code        string       // Error code like E0200
	Message     string       // Primary error message
	Position    ast.Position // Location in source; zero when none applies
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// Error makes Diagnostic satisfy the error interface. The short form carries
// kind, message, and position; the reporter renders the long form.
func (d *Diagnostic) Error() string {
	if d.Position.Line > 0 {
		if d.Position.Filename != "" {
			return fmt.Sprintf("%s: %s at %s:%d:%d", d.Kind, d.Message, d.Position.Filename, d.Position.Line, d.Position.Column)
		}
		return fmt.Sprintf("%s: %s at %d:%d", d.Kind, d.Message, d.Position.Line, d.Position.Column)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// ErrorReporter handles consistent error formatting for one source file
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with Rust-like styling and suggestions
func (er *ErrorReporter) FormatError(d *Diagnostic) string {
	var result strings.Builder

	levelColor := er.getLevelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0200]: message
	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(d.Level)), d.Message))
	}

	// Diagnostics without a source position stop at the header.
	if d.Position.Line <= 0 {
		for _, note := range d.Notes {
			noteColor := color.New(color.FgBlue).SprintFunc()
			result.WriteString(fmt.Sprintf("  %s %s\n", noteColor("note:"), note))
		}
		if d.HelpText != "" {
			helpColor := color.New(color.FgGreen).SprintFunc()
			result.WriteString(fmt.Sprintf("  %s %s\n", helpColor("help:"), d.HelpText))
		}
		result.WriteString("\n")
		return result.String()
	}

	// Location line: --> filename:line:column
	lineNumberWidth := er.getLineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, d.Position.Line, d.Position.Column))

	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	// Context line before, when available
	if d.Position.Line > 1 && d.Position.Line-1 < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, d.Position.Line-1)),
			dim("│"),
			er.lines[d.Position.Line-2]))
	}

	// Main error line with caret marker
	if d.Position.Line <= len(er.lines) {
		lineContent := er.lines[d.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, d.Position.Line)),
			dim("│"),
			lineContent))

		marker := er.createMarker(d.Position.Column, d.Length, d.Level)
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), marker))
	}

	// Context line after, when available
	if d.Position.Line < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, d.Position.Line+1)),
			dim("│"),
			er.lines[d.Position.Line]))
	}

	// Suggestions
	if len(d.Suggestions) > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		for i, suggestion := range d.Suggestions {
			suggestionColor := color.New(color.FgCyan).SprintFunc()

			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n",
					indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("    "), suggestion.Message))
			}

			if suggestion.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
				replacement := strings.ReplaceAll(suggestion.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("│"), suggestionColor(replacement)))
			}
		}
	}

	// Notes
	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	// Help text
	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), d.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors. Columns are 0-based,
// so the marker is preceded by exactly Column spaces.
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", max(0, column))

	var markerColor func(...interface{}) string
	switch level {
	case Warning:
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		markerColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
