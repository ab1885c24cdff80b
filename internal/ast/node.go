package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (p *Program) NodePos() Position    { return p.Pos }
func (p *Program) NodeEndPos() Position { return p.EndPos }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (f *FunctionDef) NodePos() Position    { return f.Pos }
func (f *FunctionDef) NodeEndPos() Position { return f.EndPos }
func (*FunctionDef) NodeType() NodeType     { return FUNCTION_DEF }

func (fp *FunctionParam) NodePos() Position    { return fp.Pos }
func (fp *FunctionParam) NodeEndPos() Position { return fp.EndPos }
func (*FunctionParam) NodeType() NodeType      { return FUNCTION_PARAM }

func (v *VariableDecl) NodePos() Position    { return v.Pos }
func (v *VariableDecl) NodeEndPos() Position { return v.EndPos }
func (*VariableDecl) NodeType() NodeType     { return VARIABLE_DECL }

func (c *ConstantDecl) NodePos() Position    { return c.Pos }
func (c *ConstantDecl) NodeEndPos() Position { return c.EndPos }
func (*ConstantDecl) NodeType() NodeType     { return CONSTANT_DECL }

func (a *AssignStmt) NodePos() Position    { return a.Pos }
func (a *AssignStmt) NodeEndPos() Position { return a.EndPos }
func (*AssignStmt) NodeType() NodeType     { return ASSIGN_STMT }

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (i *IfExpr) NodePos() Position    { return i.Pos }
func (i *IfExpr) NodeEndPos() Position { return i.EndPos }
func (*IfExpr) NodeType() NodeType     { return IF_EXPR }

func (w *WhileLoop) NodePos() Position    { return w.Pos }
func (w *WhileLoop) NodeEndPos() Position { return w.EndPos }
func (*WhileLoop) NodeType() NodeType     { return WHILE_LOOP }

func (f *ForLoop) NodePos() Position    { return f.Pos }
func (f *ForLoop) NodeEndPos() Position { return f.EndPos }
func (*ForLoop) NodeType() NodeType     { return FOR_LOOP }

func (m *MatchExpr) NodePos() Position    { return m.Pos }
func (m *MatchExpr) NodeEndPos() Position { return m.EndPos }
func (*MatchExpr) NodeType() NodeType     { return MATCH_EXPR }

func (a *MatchArm) NodePos() Position    { return a.Pos }
func (a *MatchArm) NodeEndPos() Position { return a.EndPos }
func (*MatchArm) NodeType() NodeType     { return MATCH_ARM }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (i *IdentExpr) NodePos() Position    { return i.Pos }
func (i *IdentExpr) NodeEndPos() Position { return i.EndPos }
func (*IdentExpr) NodeType() NodeType     { return IDENT_EXPR }

func (n *NumberLiteral) NodePos() Position    { return n.Pos }
func (n *NumberLiteral) NodeEndPos() Position { return n.EndPos }
func (*NumberLiteral) NodeType() NodeType     { return NUMBER_LITERAL }

func (s *StringLiteral) NodePos() Position    { return s.Pos }
func (s *StringLiteral) NodeEndPos() Position { return s.EndPos }
func (*StringLiteral) NodeType() NodeType     { return STRING_LITERAL }

func (b *BooleanLiteral) NodePos() Position    { return b.Pos }
func (b *BooleanLiteral) NodeEndPos() Position { return b.EndPos }
func (*BooleanLiteral) NodeType() NodeType     { return BOOLEAN_LITERAL }

func (a *ArrayLiteral) NodePos() Position    { return a.Pos }
func (a *ArrayLiteral) NodeEndPos() Position { return a.EndPos }
func (*ArrayLiteral) NodeType() NodeType     { return ARRAY_LITERAL }
