package lexer

import "sort"

// TokenType identifies the lexical class of a token. The set covers both
// language flavors; mode-specific kinds (AT, RANGE, LAMBDA) are only ever
// produced in Noema mode.
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Keywords (surface language)
	FN
	LET
	VAR
	CONST
	IF
	ELSE
	WHILE
	FOR
	IN
	RETURN
	MATCH
	TRUE
	FALSE
	ASYNC
	AWAIT

	// Keywords (knowledge dialect)
	BELIEF
	REASONING_CONTEXT
	INTENT
	SHARED_STATE
	SELF_CAPABILITY
	CALCULATE_WITH_UNCERTAINTY
	STRUCTURED_KNOWLEDGE

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	AND
	OR
	ARROW
	LAMBDA
	RANGE
	AT

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

var tokenNames = map[TokenType]string{
	ILLEGAL:                    "ILLEGAL",
	EOF:                        "EOF",
	IDENTIFIER:                 "IDENTIFIER",
	NUMBER:                     "NUMBER",
	STRING:                     "STRING",
	FN:                         "FN",
	LET:                        "LET",
	VAR:                        "VAR",
	CONST:                      "CONST",
	IF:                         "IF",
	ELSE:                       "ELSE",
	WHILE:                      "WHILE",
	FOR:                        "FOR",
	IN:                         "IN",
	RETURN:                     "RETURN",
	MATCH:                      "MATCH",
	TRUE:                       "TRUE",
	FALSE:                      "FALSE",
	ASYNC:                      "ASYNC",
	AWAIT:                      "AWAIT",
	BELIEF:                     "BELIEF",
	REASONING_CONTEXT:          "REASONING_CONTEXT",
	INTENT:                     "INTENT",
	SHARED_STATE:               "SHARED_STATE",
	SELF_CAPABILITY:            "SELF_CAPABILITY",
	CALCULATE_WITH_UNCERTAINTY: "CALCULATE_WITH_UNCERTAINTY",
	STRUCTURED_KNOWLEDGE:       "STRUCTURED_KNOWLEDGE",
	PLUS:                       "PLUS",
	MINUS:                      "MINUS",
	STAR:                       "STAR",
	SLASH:                      "SLASH",
	BANG:                       "BANG",
	BANG_EQUAL:                 "BANG_EQUAL",
	EQUAL:                      "EQUAL",
	EQUAL_EQUAL:                "EQUAL_EQUAL",
	LESS:                       "LESS",
	LESS_EQUAL:                 "LESS_EQUAL",
	GREATER:                    "GREATER",
	GREATER_EQUAL:              "GREATER_EQUAL",
	AND:                        "AND",
	OR:                         "OR",
	ARROW:                      "ARROW",
	LAMBDA:                     "LAMBDA",
	RANGE:                      "RANGE",
	AT:                         "AT",
	COMMA:                      "COMMA",
	DOT:                        "DOT",
	SEMICOLON:                  "SEMICOLON",
	COLON:                      "COLON",
	LEFT_PAREN:                 "LEFT_PAREN",
	RIGHT_PAREN:                "RIGHT_PAREN",
	LEFT_BRACE:                 "LEFT_BRACE",
	RIGHT_BRACE:                "RIGHT_BRACE",
	LEFT_BRACKET:               "LEFT_BRACKET",
	RIGHT_BRACKET:              "RIGHT_BRACKET",
}

func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position tracks a token's location: 1-based line, 0-based column, and the
// 0-based absolute byte offset in the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token is an immutable positioned lexeme. Keyword tokens keep the source
// casing in Lexeme even though keyword matching is case-insensitive.
type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

// Keyword tables are keyed by the lowercased identifier text; the lexeme on
// the produced token preserves whatever casing the source used.
var surfaceKeywords = map[string]TokenType{
	"fn":     FN,
	"let":    LET,
	"var":    VAR,
	"const":  CONST,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"in":     IN,
	"return": RETURN,
	"match":  MATCH,
	"true":   TRUE,
	"false":  FALSE,
	"async":  ASYNC,
	"await":  AWAIT,
}

var knowledgeKeywords = map[string]TokenType{
	"belief":                     BELIEF,
	"reasoning_context":          REASONING_CONTEXT,
	"intent":                     INTENT,
	"shared_state":               SHARED_STATE,
	"self_capability":            SELF_CAPABILITY,
	"calculate_with_uncertainty": CALCULATE_WITH_UNCERTAINTY,
	"structured_knowledge":       STRUCTURED_KNOWLEDGE,
	"true":                       TRUE,
	"false":                      FALSE,
}

// SurfaceKeywords returns the surface-language keywords, sorted.
func SurfaceKeywords() []string {
	return sortedKeywords(surfaceKeywords)
}

// KnowledgeKeywords returns the knowledge-dialect keywords, sorted.
func KnowledgeKeywords() []string {
	return sortedKeywords(knowledgeKeywords)
}

func sortedKeywords(table map[string]TokenType) []string {
	keywords := make([]string, 0, len(table))
	for keyword := range table {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return keywords
}
