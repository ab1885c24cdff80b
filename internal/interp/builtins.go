package interp

import (
	"fmt"
	"io"
	"math"

	"lucid/internal/ast"
	"lucid/internal/errors"
)

// registerBuiltins installs the host functions into env. All output goes
// through out, injected by the caller; builtins hold no ambient state.
func registerBuiltins(env *Environment, out io.Writer) {
	register := func(name string, fn func(args []Value, pos ast.Position) (Value, error)) {
		env.Define(name, &Builtin{Name: name, Fn: fn})
	}

	register("println", func(args []Value, _ ast.Position) (Value, error) {
		writeValues(out, args)
		fmt.Fprintln(out)
		return Null{}, nil
	})

	register("print", func(args []Value, _ ast.Position) (Value, error) {
		writeValues(out, args)
		return Null{}, nil
	})

	register("sqrt", func(args []Value, pos ast.Position) (Value, error) {
		if len(args) != 1 {
			return nil, errors.ArityMismatch("sqrt", 1, len(args), pos)
		}
		n, ok := args[0].(Number)
		if !ok {
			return nil, errors.InvalidArgument("sqrt", "a number", args[0].Kind(), pos)
		}
		if n.V < 0 {
			return nil, errors.NegativeSqrt(pos)
		}
		return Number{V: math.Sqrt(n.V)}, nil
	})

	register("len", func(args []Value, pos ast.Position) (Value, error) {
		if len(args) != 1 {
			return nil, errors.ArityMismatch("len", 1, len(args), pos)
		}
		switch v := args[0].(type) {
		case String:
			return Number{V: float64(len(v.V))}, nil
		case *Array:
			return Number{V: float64(len(v.Elements))}, nil
		default:
			return nil, errors.InvalidArgument("len", "a string or array", args[0].Kind(), pos)
		}
	})

	register("push", func(args []Value, pos ast.Position) (Value, error) {
		if len(args) != 2 {
			return nil, errors.ArityMismatch("push", 2, len(args), pos)
		}
		arr, ok := args[0].(*Array)
		if !ok {
			return nil, errors.InvalidArgument("push", "an array", args[0].Kind(), pos)
		}
		elements := make([]Value, len(arr.Elements), len(arr.Elements)+1)
		copy(elements, arr.Elements)
		return &Array{Elements: append(elements, args[1])}, nil
	})

	register("range", func(args []Value, pos ast.Position) (Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, errors.ArityMismatch("range", 2, len(args), pos)
		}
		bounds := make([]int64, len(args))
		for i, arg := range args {
			n, ok := arg.(Number)
			if !ok {
				return nil, errors.InvalidArgument("range", "a number", arg.Kind(), pos)
			}
			bounds[i] = int64(n.V)
		}
		start, stop := int64(0), bounds[0]
		if len(bounds) == 2 {
			start, stop = bounds[0], bounds[1]
		}
		var elements []Value
		for i := start; i < stop; i++ {
			elements = append(elements, Number{V: float64(i)})
		}
		return &Array{Elements: elements}, nil
	})
}

func writeValues(out io.Writer, args []Value) {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		fmt.Fprint(out, arg.String())
	}
}
