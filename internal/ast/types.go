package ast

type NodeType int

const (
	// Special
	ILLEGAL NodeType = iota

	// Program structure
	PROGRAM
	FUNCTION_DEF
	FUNCTION_PARAM
	IDENT

	// Statements
	VARIABLE_DECL
	CONSTANT_DECL
	ASSIGN_STMT
	RETURN_STMT
	IF_EXPR
	WHILE_LOOP
	FOR_LOOP
	MATCH_EXPR
	MATCH_ARM

	// Expressions
	BINARY_EXPR
	UNARY_EXPR
	CALL_EXPR
	IDENT_EXPR
	NUMBER_LITERAL
	STRING_LITERAL
	BOOLEAN_LITERAL
	ARRAY_LITERAL
)

var nodeTypeNames = map[NodeType]string{
	ILLEGAL:         "ILLEGAL",
	PROGRAM:         "PROGRAM",
	FUNCTION_DEF:    "FUNCTION_DEF",
	FUNCTION_PARAM:  "FUNCTION_PARAM",
	IDENT:           "IDENT",
	VARIABLE_DECL:   "VARIABLE_DECL",
	CONSTANT_DECL:   "CONSTANT_DECL",
	ASSIGN_STMT:     "ASSIGN_STMT",
	RETURN_STMT:     "RETURN_STMT",
	IF_EXPR:         "IF_EXPR",
	WHILE_LOOP:      "WHILE_LOOP",
	FOR_LOOP:        "FOR_LOOP",
	MATCH_EXPR:      "MATCH_EXPR",
	MATCH_ARM:       "MATCH_ARM",
	BINARY_EXPR:     "BINARY_EXPR",
	UNARY_EXPR:      "UNARY_EXPR",
	CALL_EXPR:       "CALL_EXPR",
	IDENT_EXPR:      "IDENT_EXPR",
	NUMBER_LITERAL:  "NUMBER_LITERAL",
	STRING_LITERAL:  "STRING_LITERAL",
	BOOLEAN_LITERAL: "BOOLEAN_LITERAL",
	ARRAY_LITERAL:   "ARRAY_LITERAL",
}

func (nt NodeType) String() string {
	if name, ok := nodeTypeNames[nt]; ok {
		return name
	}
	return "UNKNOWN"
}
