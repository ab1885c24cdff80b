package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder

	for i, stmt := range p.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(stmt.String())
	}

	return b.String()
}

func (i *Ident) String() string {
	return i.Value
}

func (f *FunctionDef) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("fn %s(", f.Name.Value))
	for i, param := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.String())
	}
	b.WriteString(")")

	if f.ReturnType != nil {
		b.WriteString(fmt.Sprintf(" -> %s", f.ReturnType.Value))
	}

	b.WriteString(" {\n")
	writeBlock(&b, f.Body)
	b.WriteString("}")

	return b.String()
}

func (fp *FunctionParam) String() string {
	return fmt.Sprintf("%s: %s", fp.Name.Value, fp.Type.Value)
}

func (v *VariableDecl) String() string {
	keyword := "let"
	if v.Mutable {
		keyword = "var"
	}
	if v.Type != nil {
		return fmt.Sprintf("%s %s: %s = %s;", keyword, v.Name.Value, v.Type.Value, v.Value.String())
	}
	return fmt.Sprintf("%s %s = %s;", keyword, v.Name.Value, v.Value.String())
}

func (c *ConstantDecl) String() string {
	return fmt.Sprintf("const %s = %s;", c.Name.Value, c.Value.String())
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", a.Name.Value, a.Value.String())
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value.String())
}

func (i *IfExpr) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("if %s {\n", i.Condition.String()))
	writeBlock(&b, i.ThenBranch)
	b.WriteString("}")

	if i.ElseBranch != nil {
		b.WriteString(" else {\n")
		writeBlock(&b, i.ElseBranch)
		b.WriteString("}")
	}

	return b.String()
}

func (w *WhileLoop) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("while %s {\n", w.Condition.String()))
	writeBlock(&b, w.Body)
	b.WriteString("}")

	return b.String()
}

func (f *ForLoop) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("for %s in %s {\n", f.Variable.Value, f.Iterable.String()))
	writeBlock(&b, f.Body)
	b.WriteString("}")

	return b.String()
}

func (m *MatchExpr) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("match %s {\n", m.Scrutinee.String()))
	for _, arm := range m.Arms {
		b.WriteString("  " + arm.String() + ",\n")
	}
	b.WriteString("}")

	return b.String()
}

func (a *MatchArm) String() string {
	return fmt.Sprintf("%s => %s", a.Pattern.String(), a.Result.String())
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Value.String())
}

func (c *CallExpr) String() string {
	var b strings.Builder

	b.WriteString(c.Callee.String())
	b.WriteString("(")
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString(")")

	return b.String()
}

func (i *IdentExpr) String() string {
	return i.Name
}

func (n *NumberLiteral) String() string {
	return fmt.Sprintf("%d", n.Value)
}

func (s *StringLiteral) String() string {
	return fmt.Sprintf("%q", s.Value)
}

func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (a *ArrayLiteral) String() string {
	var b strings.Builder

	b.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(el.String())
	}
	b.WriteString("]")

	return b.String()
}

// writeBlock indents each statement of a block body by two spaces.
func writeBlock(b *strings.Builder, stmts []Stmt) {
	for _, stmt := range stmts {
		b.WriteString("  " + strings.ReplaceAll(stmt.String(), "\n", "\n  ") + "\n")
	}
}
