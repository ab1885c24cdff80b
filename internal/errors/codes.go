package errors

// Error codes for the Lucid toolchain
// These codes are used in error messages and documentation
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Lexical errors
// E0100-E0199: Syntax errors
// E0200-E0299: Name resolution errors
// E0300-E0399: Type errors
// E0400-E0499: Arithmetic errors
// E0500-E0599: Match errors
// E0600-E0699: Translation proof errors
// E0700-E0799: Reserved for future use
// E0800-E0899: Warning codes
// E0900-E0999: Reserved for tooling errors

const (
	// E0001: Unrecognized character in the input
	ErrorIllegalCharacter = "E0001"

	// E0100: Token that no statement or expression form can start with
	ErrorUnexpectedToken = "E0100"

	// E0101: Concrete token required by the grammar is missing
	ErrorExpectedToken = "E0101"

	// E0102: Numeric literal that does not fit the number model
	ErrorInvalidNumber = "E0102"

	// E0200: Variable or function name is not bound in any enclosing scope
	ErrorUndefinedVariable = "E0200"

	// E0300: Call target does not evaluate to a callable value
	ErrorNotCallable = "E0300"

	// E0301: Call supplies the wrong number of arguments
	ErrorArityMismatch = "E0301"

	// E0302: Operator applied to operands of the wrong kind
	ErrorInvalidOperands = "E0302"

	// E0303: For-loop iterable is not a finite ordered sequence
	ErrorNotIterable = "E0303"

	// E0304: Built-in function received an argument of the wrong kind
	ErrorInvalidArgument = "E0304"

	// E0400: Division by zero
	ErrorDivisionByZero = "E0400"

	// E0401: Square root of a negative number
	ErrorNegativeSqrt = "E0401"

	// E0500: Match scrutinee matched no arm
	ErrorNoMatch = "E0500"

	// E0600: Recomputed source hash differs from the proof
	ErrorSourceHashMismatch = "E0600"

	// E0601: Recomputed document hash differs from the proof
	ErrorTargetHashMismatch = "E0601"

	// E0602: Stored proof hash is not reproducible from the stored fields
	ErrorProofIrreproducible = "E0602"

	// E0603: Version pair rejected by the compatibility matrix
	ErrorVersionIncompatible = "E0603"

	// Warning codes

	// W0001: Source map has no entries for this translation
	WarningEmptySourceMap = "W0001"

	// W0002: Reverse translation could not reconstruct function bodies
	WarningLossyReverse = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorIllegalCharacter:
		return "Character is not part of the language's alphabet"
	case ErrorUnexpectedToken:
		return "Token cannot start a statement or expression here"
	case ErrorExpectedToken:
		return "A specific token is required at this position"
	case ErrorInvalidNumber:
		return "Numeric literal is malformed or out of range"
	case ErrorUndefinedVariable:
		return "Name is used but not defined in any enclosing scope"
	case ErrorNotCallable:
		return "Call target is not a function"
	case ErrorArityMismatch:
		return "Call has the wrong number of arguments"
	case ErrorInvalidOperands:
		return "Operator is not defined for these operand kinds"
	case ErrorNotIterable:
		return "For loops require a finite ordered sequence"
	case ErrorInvalidArgument:
		return "Built-in function argument has the wrong kind"
	case ErrorDivisionByZero:
		return "Division by zero"
	case ErrorNegativeSqrt:
		return "Square root of a negative number is undefined"
	case ErrorNoMatch:
		return "No match arm accepted the scrutinee"
	case ErrorSourceHashMismatch:
		return "Source text does not hash to the proof's source hash"
	case ErrorTargetHashMismatch:
		return "Document does not hash to the proof's target hash"
	case ErrorProofIrreproducible:
		return "Proof hash cannot be recomputed from its stored fields"
	case ErrorVersionIncompatible:
		return "Surface/deep version pair is outside the compatibility matrix"
	case WarningEmptySourceMap:
		return "Translation produced no source map entries"
	case WarningLossyReverse:
		return "Function bodies are not recoverable from a knowledge document"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the code represents a warning rather than an error
func IsWarning(code string) bool {
	return code >= "E0800" && code < "E0900" || code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Lexical"
	case code >= "E0100" && code < "E0200":
		return "Syntax"
	case code >= "E0200" && code < "E0300":
		return "Name Resolution"
	case code >= "E0300" && code < "E0400":
		return "Type"
	case code >= "E0400" && code < "E0500":
		return "Arithmetic"
	case code >= "E0500" && code < "E0600":
		return "Match"
	case code >= "E0600" && code < "E0700":
		return "Translation Proof"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}
