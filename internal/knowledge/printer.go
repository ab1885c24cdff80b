package knowledge

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder

	for i, stmt := range p.Statements {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(stmt.String())
	}

	return b.String()
}

func (b *Block) String() string {
	var sb strings.Builder

	sb.WriteString(b.Kind.String())
	if b.Confidence != nil {
		sb.WriteString(" confidence=" + b.Confidence.String())
	}
	if b.Action != nil {
		sb.WriteString(" to_perform: " + b.Action.String())
	}
	for _, attr := range b.Attributes {
		sb.WriteString(" " + attr.String())
	}

	sb.WriteString(" {\n")
	for _, entry := range b.Entries {
		sb.WriteString("  " + strings.ReplaceAll(entry.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")

	return sb.String()
}

func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Name, a.Value.String())
}

func (a *Attribute) String() string {
	// The bare "@name" form and "@name(true)" collapse to the same text.
	if lit, ok := a.Value.(*BooleanLit); ok && lit.Value {
		return "@" + a.Name
	}
	return fmt.Sprintf("@%s(%s)", a.Name, a.Value.String())
}

func (e *Entry) String() string {
	if e.Key == "" {
		return e.Value.String()
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Value.String())
}

func (n *NumberLit) String() string {
	return n.Lexeme
}

func (s *StringLit) String() string {
	return `"` + s.Value + `"`
}

func (b *BooleanLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (i *IdentRef) String() string {
	return i.Name
}

func (a *Array) String() string {
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
