package errors

import (
	"fmt"

	"lucid/internal/ast"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	d Diagnostic
}

// NewDiagnostic creates a new error-level diagnostic builder
func NewDiagnostic(kind Kind, code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		d: Diagnostic{
			Level:    Error,
			Kind:     kind,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning-level diagnostic builder
func NewWarning(kind Kind, code, message string, pos ast.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		d: Diagnostic{
			Level:    Warning,
			Kind:     kind,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.d.Length = length
	return b
}

// WithSuggestion adds a suggestion to the diagnostic
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the diagnostic
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp adds help text to the diagnostic
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() *Diagnostic {
	return &b.d
}

// Common constructors, one per failure the toolchain can hit

// IllegalCharacter reports a character outside the language's alphabet.
func IllegalCharacter(c byte, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Lexical, ErrorIllegalCharacter, fmt.Sprintf("unexpected character %q", c), pos).
		Build()
}

// UnexpectedToken reports a token that cannot begin a statement or expression.
func UnexpectedToken(found string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Syntax, ErrorUnexpectedToken, fmt.Sprintf("unexpected token %s", found), pos).
		Build()
}

// ExpectedToken reports a missing concrete token, carrying expected vs actual.
func ExpectedToken(message, expected, actual string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Syntax, ErrorExpectedToken, message, pos).
		WithNote(fmt.Sprintf("expected %s, found %s", expected, actual)).
		Build()
}

// InvalidNumber reports a numeric literal that cannot be represented.
func InvalidNumber(lexeme string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Syntax, ErrorInvalidNumber, fmt.Sprintf("invalid number literal '%s'", lexeme), pos).
		WithLength(len(lexeme)).
		WithNote("number literals are whole numbers").
		Build()
}

// UndefinedVariable reports a name not bound in any enclosing scope.
func UndefinedVariable(name string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Name, ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("make sure the name is declared before use").
		WithNote("variables must be declared with 'let', 'var', or 'const'").
		Build()
}

// NotCallable reports a call whose target is not a function value.
func NotCallable(valueKind string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Type, ErrorNotCallable, fmt.Sprintf("cannot call a value of kind %s", valueKind), pos).
		WithHelp("only functions can be called").
		Build()
}

// ArityMismatch reports a call with the wrong number of arguments.
func ArityMismatch(name string, want, got int, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Type, ErrorArityMismatch,
		fmt.Sprintf("function '%s' expects %d argument(s), got %d", name, want, got), pos).
		WithNote("missing arguments are never bound to null").
		Build()
}

// InvalidOperands reports a binary operator applied to incompatible kinds.
func InvalidOperands(op, left, right string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Type, ErrorInvalidOperands,
		fmt.Sprintf("operator '%s' not defined for %s and %s", op, left, right), pos).
		Build()
}

// InvalidUnaryOperand reports a unary operator applied to the wrong kind.
func InvalidUnaryOperand(op, operand string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Type, ErrorInvalidOperands,
		fmt.Sprintf("unary operator '%s' not defined for %s", op, operand), pos).
		Build()
}

// NotIterable reports a for loop over a value that is not a sequence.
func NotIterable(valueKind string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Type, ErrorNotIterable,
		fmt.Sprintf("cannot iterate over a value of kind %s", valueKind), pos).
		WithHelp("for loops require a finite ordered sequence, like [1, 2, 3]").
		Build()
}

// InvalidArgument reports a builtin call with an argument of the wrong kind.
func InvalidArgument(fn, want, gotKind string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(Type, ErrorInvalidArgument,
		fmt.Sprintf("'%s' expects %s, got %s", fn, want, gotKind), pos).
		Build()
}

// DivisionByZero reports an attempt to divide by zero.
func DivisionByZero(pos ast.Position) *Diagnostic {
	return NewDiagnostic(Arithmetic, ErrorDivisionByZero, "division by zero", pos).
		WithNote("the result is an error, never infinity or NaN").
		Build()
}

// NegativeSqrt reports a square root of a negative number.
func NegativeSqrt(pos ast.Position) *Diagnostic {
	return NewDiagnostic(Arithmetic, ErrorNegativeSqrt, "square root of a negative number", pos).
		Build()
}

// NoMatchingArm reports a match whose arms all rejected the scrutinee.
func NoMatchingArm(value string, pos ast.Position) *Diagnostic {
	return NewDiagnostic(NoMatch, ErrorNoMatch, fmt.Sprintf("no arm matches value %s", value), pos).
		WithSuggestion("add a catch-all identifier arm as the last arm").
		Build()
}

// ProofMismatch reports a failed hash comparison during verification.
func ProofMismatch(code, field string) *Diagnostic {
	return NewDiagnostic(ProofVerification, code,
		fmt.Sprintf("proof verification failed: %s mismatch", field), ast.Position{}).
		WithNote("verification fails closed: any mismatch invalidates the proof").
		Build()
}

// VersionIncompatible reports a version pair outside the compatibility matrix.
func VersionIncompatible(surface, deep string) *Diagnostic {
	return NewDiagnostic(ProofVerification, ErrorVersionIncompatible,
		fmt.Sprintf("surface version %s and deep version %s are not compatible", surface, deep), ast.Position{}).
		Build()
}

// EmptySourceMap warns that a translation produced no position mappings.
// An empty map is a valid state, so this is never fatal.
func EmptySourceMap() *Diagnostic {
	return NewWarning(ProofVerification, WarningEmptySourceMap,
		"translation produced no source map entries", ast.Position{}).
		Build()
}

// LossyReverse warns that reconstructed functions carry placeholder bodies.
func LossyReverse(count int) *Diagnostic {
	return NewWarning(ProofVerification, WarningLossyReverse,
		fmt.Sprintf("%d function body(ies) could not be reconstructed from the knowledge document", count), ast.Position{}).
		WithNote("knowledge documents keep signatures and provenance, not statement-level code").
		Build()
}
