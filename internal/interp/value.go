package interp

import (
	"strconv"
	"strings"

	"lucid/internal/ast"
)

// Value is a runtime value. The union is closed: Number, String, Boolean,
// Array, Function, Builtin, Null. Every operation site switches exhaustively
// over these kinds instead of relying on dynamic dispatch.
type Value interface {
	// Kind names the value's kind for error messages ("number", "string", ...).
	Kind() string
	// String formats the value the way println prints it.
	String() string
	isValue()
}

// Number is the single numeric kind. Literals are whole numbers, but
// division may produce fractional results, so the representation is wider
// than the literal grammar.
type Number struct {
	V float64
}

type String struct {
	V string
}

type Boolean struct {
	V bool
}

type Array struct {
	Elements []Value
}

// Function is a user-defined function. Env is the environment the function
// was defined in; calls chain their frame off it.
type Function struct {
	Name   string
	Params []*ast.FunctionParam
	Body   []ast.Stmt
	Env    *Environment
}

// Builtin is a host-provided function.
type Builtin struct {
	Name string
	Fn   func(args []Value, pos ast.Position) (Value, error)
}

type Null struct{}

func (Number) isValue()    {}
func (String) isValue()    {}
func (Boolean) isValue()   {}
func (*Array) isValue()    {}
func (*Function) isValue() {}
func (*Builtin) isValue()  {}
func (Null) isValue()      {}

func (Number) Kind() string    { return "number" }
func (String) Kind() string    { return "string" }
func (Boolean) Kind() string   { return "boolean" }
func (*Array) Kind() string    { return "array" }
func (*Function) Kind() string { return "function" }
func (*Builtin) Kind() string  { return "builtin function" }
func (Null) Kind() string      { return "null" }

func (n Number) String() string {
	// 'f' with -1 precision drops the fraction for whole values: 42 not 42.0
	return strconv.FormatFloat(n.V, 'f', -1, 64)
}

func (s String) String() string { return s.V }

func (b Boolean) String() string {
	if b.V {
		return "true"
	}
	return "false"
}

func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (f *Function) String() string { return "<fn " + f.Name + ">" }

func (b *Builtin) String() string { return "<builtin " + b.Name + ">" }

func (Null) String() string { return "null" }

// isTruthy decides conditions: false, null, zero, and empty strings or
// arrays are falsy, everything else is truthy.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case Boolean:
		return val.V
	case Null:
		return false
	case Number:
		return val.V != 0
	case String:
		return val.V != ""
	case *Array:
		return len(val.Elements) != 0
	default:
		return true
	}
}

// valuesEqual compares by value. Values of different kinds are unequal,
// never an error.
func valuesEqual(a, b Value) bool {
	switch left := a.(type) {
	case Number:
		right, ok := b.(Number)
		return ok && left.V == right.V
	case String:
		right, ok := b.(String)
		return ok && left.V == right.V
	case Boolean:
		right, ok := b.(Boolean)
		return ok && left.V == right.V
	case Null:
		_, ok := b.(Null)
		return ok
	case *Array:
		right, ok := b.(*Array)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !valuesEqual(left.Elements[i], right.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
