package ast

// Program is the root of a parsed source file: an ordered list of top-level
// statements. Function definitions sit alongside ordinary statements.
// Example: "fn add(a: Int, b: Int) -> Int { return a + b; } let r = add(2, 3);"
type Program struct {
	Pos        Position
	EndPos     Position
	Statements []Stmt
}

// Position tracks location information for error reporting and tooling.
// Line is 1-based, Column is 0-based, Offset is the absolute byte index.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like variable names or type names.
// Example: "add", "total", "Int"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// FunctionDef represents a function definition with typed parameters and an
// optional declared return type.
// Example: "fn add(a: Int, b: Int) -> Int { return a + b; }"
type FunctionDef struct {
	Pos        Position
	EndPos     Position
	Name       Ident
	Params     []*FunctionParam
	ReturnType *Ident
	Body       []Stmt
}

// FunctionParam represents a single "name: Type" parameter pair.
// Example: "a: Int"
type FunctionParam struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   Ident
}

// VariableDecl represents a let/var declaration with an optional type
// annotation. Mutable records which keyword introduced it; nothing in the
// core enforces the flag.
// Example: "let x: Int = 42;", "var counter = 1;"
type VariableDecl struct {
	Pos     Position
	EndPos  Position
	Mutable bool
	Name    Ident
	Type    *Ident
	Value   Expr
}

// ConstantDecl represents a const declaration.
// Example: "const limit = 100;"
type ConstantDecl struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  Expr
}

// AssignStmt represents assignment to an existing name.
// Example: "counter = counter + 1;"
type AssignStmt struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  Expr
}

// ReturnStmt represents a return statement. Value is nil for a bare "return;".
// Example: "return a + b;"
type ReturnStmt struct {
	Pos    Position
	EndPos Position
	Value  Expr
}

// IfExpr represents a conditional with an optional else branch. Each branch
// runs in its own child scope.
// Example: "if x > 0 { println(x); } else { println(0); }"
type IfExpr struct {
	Pos        Position
	EndPos     Position
	Condition  Expr
	ThenBranch []Stmt
	ElseBranch []Stmt
}

// WhileLoop represents a while loop.
// Example: "while i < 10 { i = i + 1; }"
type WhileLoop struct {
	Pos       Position
	EndPos    Position
	Condition Expr
	Body      []Stmt
}

// ForLoop represents iteration over a finite ordered sequence. Each
// iteration runs the body in a fresh child scope.
// Example: "for x in [1, 2, 3] { println(x); }"
type ForLoop struct {
	Pos      Position
	EndPos   Position
	Variable Ident
	Iterable Expr
	Body     []Stmt
}

// MatchExpr represents a match over a scrutinee with ordered arms. Arms are
// tested top to bottom; an identifier pattern matches unconditionally, so a
// catch-all arm placed before other arms makes those arms unreachable.
// Example: "match n { 1 => \"one\", other => \"many\" }"
type MatchExpr struct {
	Pos       Position
	EndPos    Position
	Scrutinee Expr
	Arms      []*MatchArm
}

// MatchArm represents a single "pattern => result" arm.
// Example: "1 => \"one\""
type MatchArm struct {
	Pos     Position
	EndPos  Position
	Pattern Expr
	Result  Expr
}

// BinaryExpr represents binary operations.
// Example: "a + b", "x <= limit", "found && valid"
type BinaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Left   Expr
	Right  Expr
}

// UnaryExpr represents unary operations.
// Example: "-amount", "!done"
type UnaryExpr struct {
	Pos    Position
	EndPos Position
	Op     string
	Value  Expr
}

// CallExpr represents a function call. Chained argument lists like "f(x)(y)"
// parse as nested CallExprs with the inner call as callee.
// Example: "add(2, 3)", "println(\"hi\")"
type CallExpr struct {
	Pos    Position
	EndPos Position
	Callee Expr
	Args   []Expr
}

// IdentExpr represents an identifier in expression position.
// Example: "total", "counter"
type IdentExpr struct {
	Pos    Position
	EndPos Position
	Name   string
}

// NumberLiteral represents an integer literal. The base grammar has no
// decimal-point literals, so the parsed value is always a whole number.
// Example: "42", "100"
type NumberLiteral struct {
	Pos    Position
	EndPos Position
	Value  int64
}

// StringLiteral represents a string literal. Escape sequences are kept
// verbatim: the lexer retains the backslash and the following character.
// Example: "\"hello\""
type StringLiteral struct {
	Pos    Position
	EndPos Position
	Value  string
}

// BooleanLiteral represents true or false.
// Example: "true"
type BooleanLiteral struct {
	Pos    Position
	EndPos Position
	Value  bool
}

// ArrayLiteral represents a bracketed sequence of expressions.
// Example: "[1, 2, 3]"
type ArrayLiteral struct {
	Pos      Position
	EndPos   Position
	Elements []Expr
}
