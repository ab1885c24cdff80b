package ast

// Expr is an expression node. Every expression is also a valid statement,
// so Expr embeds Stmt: a bare expression (most commonly a call) may appear
// directly in any statement list.
type Expr interface {
	Stmt
	isExpr()
}

func (*BinaryExpr) isExpr() {}

func (*UnaryExpr) isExpr() {}

func (*CallExpr) isExpr() {}

func (*IdentExpr) isExpr() {}

func (*NumberLiteral) isExpr() {}

func (*StringLiteral) isExpr() {}

func (*BooleanLiteral) isExpr() {}

func (*ArrayLiteral) isExpr() {}
