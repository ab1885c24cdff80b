package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"lucid/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `fn greet() {
    let msg = unknownVar;
    return msg;
}`

	reporter := NewErrorReporter("test.lc", source)

	err := UndefinedVariable("unknownVar", ast.Position{Line: 2, Column: 14})
	formatted := reporter.FormatError(err)

	// Should contain error level and code
	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")

	// Should contain location
	assert.Contains(t, formatted, "test.lc:2:14")

	// Should contain the suggestion
	assert.Contains(t, formatted, "make sure the name is declared")
}

func TestUndefinedVariableError(t *testing.T) {
	err := UndefinedVariable("balace", ast.Position{Line: 1, Column: 4})

	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Equal(t, Name, err.Kind)
	assert.Contains(t, err.Message, "balace")
	assert.Equal(t, len("balace"), err.Length)
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Notes[0], "'let', 'var', or 'const'")
}

func TestArityMismatchError(t *testing.T) {
	err := ArityMismatch("add", 2, 1, ast.Position{Line: 5, Column: 0})

	assert.Equal(t, ErrorArityMismatch, err.Code)
	assert.Equal(t, Type, err.Kind)
	assert.Contains(t, err.Message, "add")
	assert.Contains(t, err.Message, "expects 2 argument(s), got 1")
}

func TestDiagnosticShortForm(t *testing.T) {
	err := DivisionByZero(ast.Position{Filename: "test.lc", Line: 3, Column: 8})
	assert.Equal(t, "ArithmeticError: division by zero at test.lc:3:8", err.Error())

	// Diagnostics without a position keep the short form to kind and message.
	err = ProofMismatch(ErrorSourceHashMismatch, "source hash")
	assert.Equal(t, "ProofVerificationError: proof verification failed: source hash mismatch", err.Error())
}

func TestBuilderAccumulates(t *testing.T) {
	err := NewDiagnostic(Syntax, ErrorUnexpectedToken, "unexpected token", ast.Position{Line: 1, Column: 0}).
		WithLength(3).
		WithSuggestion("remove the token").
		WithNote("statements start with a keyword or an expression").
		WithHelp("see the statement grammar").
		Build()

	assert.Equal(t, Error, err.Level)
	assert.Equal(t, 3, err.Length)
	assert.Len(t, err.Suggestions, 1)
	assert.Len(t, err.Notes, 1)
	assert.Equal(t, "see the statement grammar", err.HelpText)
}

func TestWarningFormatting(t *testing.T) {
	reporter := NewErrorReporter("test.lc", "let x = 1;")

	err := EmptySourceMap()
	formatted := reporter.FormatError(err)

	// Should be formatted as a warning, without a location arrow
	assert.Contains(t, formatted, "warning["+WarningEmptySourceMap+"]")
	assert.Contains(t, formatted, "no source map entries")
	assert.NotContains(t, formatted, "-->")
}

func TestLossyReverseWarningCountsBodies(t *testing.T) {
	err := LossyReverse(3)

	assert.Equal(t, Warning, err.Level)
	assert.Equal(t, WarningLossyReverse, err.Code)
	assert.Contains(t, err.Message, "3 function body(ies)")
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("test.lc", "let variable = value;")

	// Columns are 0-based, so column 4 means 4 spaces before the marker
	marker := reporter.createMarker(4, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets)
}

func TestMarkerLengthNeverZero(t *testing.T) {
	reporter := NewErrorReporter("test.lc", "x")

	marker := reporter.createMarker(0, 0, Error)
	assert.Equal(t, 1, strings.Count(marker, "^"))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "LexicalError", Lexical.String())
	assert.Equal(t, "SyntaxError", Syntax.String())
	assert.Equal(t, "NameError", Name.String())
	assert.Equal(t, "TypeError", Type.String())
	assert.Equal(t, "ArithmeticError", Arithmetic.String())
	assert.Equal(t, "NoMatchError", NoMatch.String())
	assert.Equal(t, "ProofVerificationError", ProofVerification.String())
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Lexical", GetErrorCategory(ErrorIllegalCharacter))
	assert.Equal(t, "Syntax", GetErrorCategory(ErrorUnexpectedToken))
	assert.Equal(t, "Arithmetic", GetErrorCategory(ErrorDivisionByZero))
	assert.Equal(t, "Translation Proof", GetErrorCategory(ErrorSourceHashMismatch))
	assert.Equal(t, "Warning", GetErrorCategory(WarningLossyReverse))

	assert.True(t, IsWarning(WarningEmptySourceMap))
	assert.False(t, IsWarning(ErrorDivisionByZero))
}
