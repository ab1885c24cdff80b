package ast

// Stmt is anything that may appear in a statement list. Expressions satisfy
// it too: a bare expression (most commonly a call) is a valid statement.
type Stmt interface {
	Node
	isStmt()
}

func (*FunctionDef) isStmt()  {}
func (*VariableDecl) isStmt() {}
func (*ConstantDecl) isStmt() {}
func (*AssignStmt) isStmt()   {}
func (*ReturnStmt) isStmt()   {}
func (*IfExpr) isStmt()       {}
func (*WhileLoop) isStmt()    {}
func (*ForLoop) isStmt()      {}
func (*MatchExpr) isStmt()    {}

func (*BinaryExpr) isStmt()     {}
func (*UnaryExpr) isStmt()      {}
func (*CallExpr) isStmt()       {}
func (*IdentExpr) isStmt()      {}
func (*NumberLiteral) isStmt()  {}
func (*StringLiteral) isStmt()  {}
func (*BooleanLiteral) isStmt() {}
func (*ArrayLiteral) isStmt()   {}
