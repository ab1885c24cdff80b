// Package knowledge implements the Noema dialect: the declarative
// belief/intent/reasoning block language that forward translation targets.
// It owns the dialect AST and parser, the ordered knowledge-document
// representation, and the renderers that turn both back into dialect text.
package knowledge

import "lucid/internal/ast"

// Node is implemented by every Noema AST node.
type Node interface {
	NodePos() ast.Position
	NodeEndPos() ast.Position
	String() string
}

// Stmt is a top-level Noema statement: a keyword block or an assignment.
type Stmt interface {
	Node
	isStmt()
}

// Expr is a restricted dialect expression: a literal, an identifier, or an
// array of expressions. The dialect has no arithmetic and no calls.
type Expr interface {
	Node
	isExpr()
}

// Program is a parsed Noema source file.
type Program struct {
	Pos        ast.Position
	EndPos     ast.Position
	Statements []Stmt
}

// BlockKind discriminates which keyword introduced a Block.
type BlockKind int

const (
	BeliefBlock BlockKind = iota
	ReasoningContextBlock
	IntentBlock
	SharedStateBlock
	SelfCapabilityBlock
	CalculateWithUncertaintyBlock
	StructuredKnowledgeBlock
)

var blockKeywords = map[BlockKind]string{
	BeliefBlock:                   "belief",
	ReasoningContextBlock:         "reasoning_context",
	IntentBlock:                   "intent",
	SharedStateBlock:              "shared_state",
	SelfCapabilityBlock:           "self_capability",
	CalculateWithUncertaintyBlock: "calculate_with_uncertainty",
	StructuredKnowledgeBlock:      "structured_knowledge",
}

// String returns the source keyword for the kind.
func (k BlockKind) String() string {
	if kw, ok := blockKeywords[k]; ok {
		return kw
	}
	return "unknown"
}

// Block is one keyword-introduced declaration. All kinds share the same
// shape: an optional attribute list and a brace-delimited entry body.
// Confidence is only ever set on belief blocks (inline "confidence=<expr>"),
// Action only on intent blocks (inline "to_perform: <expr>").
// Example: "belief confidence=0.85 { fact: \"initialized\" }"
type Block struct {
	Pos        ast.Position
	EndPos     ast.Position
	Kind       BlockKind
	Confidence Expr
	Action     Expr
	Attributes []*Attribute
	Entries    []*Entry
}

// Assignment is a bare "name = expression" statement.
// Example: "threshold = 0.7"
type Assignment struct {
	Pos    ast.Position
	EndPos ast.Position
	Name   string
	Value  Expr
}

// Attribute is one "@name(expr)" annotation. The bare "@name" form parses
// with a boolean true value.
// Example: "@source(\"sensor_123\")", "@verified"
type Attribute struct {
	Pos    ast.Position
	EndPos ast.Position
	Name   string
	Value  Expr
}

// Entry is one item of a block body: a "key: expression" pair, or a bare
// expression when Key is empty.
// Example: "fact: \"temperature(22.5)\""
type Entry struct {
	Pos    ast.Position
	EndPos ast.Position
	Key    string
	Value  Expr
}

// NumberLit keeps the source lexeme alongside the parsed value so
// version-like numbers ("2.0") render back exactly as written.
type NumberLit struct {
	Pos    ast.Position
	EndPos ast.Position
	Lexeme string
	Value  float64
}

type StringLit struct {
	Pos    ast.Position
	EndPos ast.Position
	Value  string
}

type BooleanLit struct {
	Pos    ast.Position
	EndPos ast.Position
	Value  bool
}

// IdentRef is an identifier used as a value.
type IdentRef struct {
	Pos    ast.Position
	EndPos ast.Position
	Name   string
}

type Array struct {
	Pos      ast.Position
	EndPos   ast.Position
	Elements []Expr
}

func (b *Block) isStmt()      {}
func (a *Assignment) isStmt() {}

func (n *NumberLit) isExpr()  {}
func (s *StringLit) isExpr()  {}
func (b *BooleanLit) isExpr() {}
func (i *IdentRef) isExpr()   {}
func (a *Array) isExpr()      {}

func (p *Program) NodePos() ast.Position    { return p.Pos }
func (p *Program) NodeEndPos() ast.Position { return p.EndPos }

func (b *Block) NodePos() ast.Position    { return b.Pos }
func (b *Block) NodeEndPos() ast.Position { return b.EndPos }

func (a *Assignment) NodePos() ast.Position    { return a.Pos }
func (a *Assignment) NodeEndPos() ast.Position { return a.EndPos }

func (a *Attribute) NodePos() ast.Position    { return a.Pos }
func (a *Attribute) NodeEndPos() ast.Position { return a.EndPos }

func (e *Entry) NodePos() ast.Position    { return e.Pos }
func (e *Entry) NodeEndPos() ast.Position { return e.EndPos }

func (n *NumberLit) NodePos() ast.Position    { return n.Pos }
func (n *NumberLit) NodeEndPos() ast.Position { return n.EndPos }

func (s *StringLit) NodePos() ast.Position    { return s.Pos }
func (s *StringLit) NodeEndPos() ast.Position { return s.EndPos }

func (b *BooleanLit) NodePos() ast.Position    { return b.Pos }
func (b *BooleanLit) NodeEndPos() ast.Position { return b.EndPos }

func (i *IdentRef) NodePos() ast.Position    { return i.Pos }
func (i *IdentRef) NodeEndPos() ast.Position { return i.EndPos }

func (a *Array) NodePos() ast.Position    { return a.Pos }
func (a *Array) NodeEndPos() ast.Position { return a.EndPos }
