// Package interp is the tree-walking evaluator for Lucid programs. Values
// are a closed tagged union, scopes are chained frames passed explicitly,
// and every runtime failure is fatal to the Run call that raised it.
package interp

import (
	"io"

	"lucid/internal/ast"
	"lucid/internal/errors"
)

// Interpreter evaluates parsed programs against a persistent global
// environment, so successive Run calls on one instance share state (the
// REPL relies on this). Instances are independent; two interpreters never
// share environments.
type Interpreter struct {
	out     io.Writer
	globals *Environment
}

// New creates an interpreter whose builtins write to out.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	globals := NewEnvironment(nil)
	registerBuiltins(globals, out)
	return &Interpreter{out: out, globals: globals}
}

// returnValue carries a return statement's value up to the enclosing call.
// It never escapes the evaluator.
type returnValue struct {
	inner Value
}

func (*returnValue) isValue()         {}
func (*returnValue) Kind() string     { return "return" }
func (r *returnValue) String() string { return r.inner.String() }

// Run executes a program in the interpreter's global environment and
// returns the last statement's value. A top-level return statement ends
// the program with its value.
func (i *Interpreter) Run(program *ast.Program) (Value, error) {
	result, err := i.execStatements(program.Statements, i.globals)
	if err != nil {
		return nil, err
	}
	if ret, ok := result.(*returnValue); ok {
		return ret.inner, nil
	}
	return result, nil
}

// execStatements evaluates stmts in order and yields the last value. A
// return statement stops execution and the wrapped value propagates to the
// nearest call boundary.
func (i *Interpreter) execStatements(stmts []ast.Stmt, env *Environment) (Value, error) {
	var result Value = Null{}
	for _, stmt := range stmts {
		value, err := i.eval(stmt, env)
		if err != nil {
			return nil, err
		}
		if _, ok := value.(*returnValue); ok {
			return value, nil
		}
		result = value
	}
	return result, nil
}

func (i *Interpreter) eval(node ast.Stmt, env *Environment) (Value, error) {
	switch n := node.(type) {
	case *ast.FunctionDef:
		fn := &Function{Name: n.Name.Value, Params: n.Params, Body: n.Body, Env: env}
		env.Define(n.Name.Value, fn)
		return Null{}, nil

	case *ast.VariableDecl:
		value, err := i.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(n.Name.Value, value)
		return value, nil

	case *ast.ConstantDecl:
		value, err := i.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(n.Name.Value, value)
		return value, nil

	case *ast.AssignStmt:
		value, err := i.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(n.Name.Value, value) {
			return nil, errors.UndefinedVariable(n.Name.Value, n.Name.Pos)
		}
		return value, nil

	case *ast.ReturnStmt:
		var value Value = Null{}
		if n.Value != nil {
			var err error
			value, err = i.eval(n.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return &returnValue{inner: value}, nil

	case *ast.IfExpr:
		return i.evalIf(n, env)

	case *ast.WhileLoop:
		return i.evalWhile(n, env)

	case *ast.ForLoop:
		return i.evalFor(n, env)

	case *ast.MatchExpr:
		return i.evalMatch(n, env)

	case *ast.BinaryExpr:
		return i.evalBinary(n, env)

	case *ast.UnaryExpr:
		return i.evalUnary(n, env)

	case *ast.CallExpr:
		return i.evalCall(n, env)

	case *ast.IdentExpr:
		value, ok := env.Get(n.Name)
		if !ok {
			return nil, errors.UndefinedVariable(n.Name, n.Pos)
		}
		return value, nil

	case *ast.NumberLiteral:
		return Number{V: float64(n.Value)}, nil

	case *ast.StringLiteral:
		return String{V: n.Value}, nil

	case *ast.BooleanLiteral:
		return Boolean{V: n.Value}, nil

	case *ast.ArrayLiteral:
		elements := make([]Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			value, err := i.eval(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, value)
		}
		return &Array{Elements: elements}, nil

	default:
		return nil, errors.UnexpectedToken(node.String(), node.NodePos())
	}
}

// evalIf runs the taken branch in a fresh child scope. With no else branch
// and a falsy condition the result is null.
func (i *Interpreter) evalIf(n *ast.IfExpr, env *Environment) (Value, error) {
	condition, err := i.eval(n.Condition, env)
	if err != nil {
		return nil, err
	}
	if isTruthy(condition) {
		return i.execStatements(n.ThenBranch, NewEnvironment(env))
	}
	if n.ElseBranch != nil {
		return i.execStatements(n.ElseBranch, NewEnvironment(env))
	}
	return Null{}, nil
}

func (i *Interpreter) evalWhile(n *ast.WhileLoop, env *Environment) (Value, error) {
	var result Value = Null{}
	for {
		condition, err := i.eval(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(condition) {
			return result, nil
		}
		value, err := i.execStatements(n.Body, NewEnvironment(env))
		if err != nil {
			return nil, err
		}
		if _, ok := value.(*returnValue); ok {
			return value, nil
		}
		result = value
	}
}

// evalFor iterates an array, binding the loop variable in a scope that is
// discarded after each iteration.
func (i *Interpreter) evalFor(n *ast.ForLoop, env *Environment) (Value, error) {
	iterable, err := i.eval(n.Iterable, env)
	if err != nil {
		return nil, err
	}
	arr, ok := iterable.(*Array)
	if !ok {
		return nil, errors.NotIterable(iterable.Kind(), n.Iterable.NodePos())
	}

	var result Value = Null{}
	for _, item := range arr.Elements {
		iterEnv := NewEnvironment(env)
		iterEnv.Define(n.Variable.Value, item)
		value, err := i.execStatements(n.Body, iterEnv)
		if err != nil {
			return nil, err
		}
		if _, ok := value.(*returnValue); ok {
			return value, nil
		}
		result = value
	}
	return result, nil
}

// evalMatch tests arms top to bottom. Literal patterns compare by value;
// an identifier pattern matches unconditionally, so any arms after it are
// unreachable.
func (i *Interpreter) evalMatch(n *ast.MatchExpr, env *Environment) (Value, error) {
	scrutinee, err := i.eval(n.Scrutinee, env)
	if err != nil {
		return nil, err
	}

	for _, arm := range n.Arms {
		if _, ok := arm.Pattern.(*ast.IdentExpr); ok {
			return i.eval(arm.Result, env)
		}
		pattern, err := i.eval(arm.Pattern, env)
		if err != nil {
			return nil, err
		}
		if valuesEqual(scrutinee, pattern) {
			return i.eval(arm.Result, env)
		}
	}

	return nil, errors.NoMatchingArm(scrutinee.String(), n.Pos)
}

func (i *Interpreter) evalCall(n *ast.CallExpr, env *Environment) (Value, error) {
	callee, err := i.eval(n.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(n.Args))
	for _, arg := range n.Args {
		value, err := i.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	switch fn := callee.(type) {
	case *Builtin:
		return fn.Fn(args, n.Pos)

	case *Function:
		if len(args) != len(fn.Params) {
			return nil, errors.ArityMismatch(fn.Name, len(fn.Params), len(args), n.Pos)
		}
		frame := NewEnvironment(fn.Env)
		for idx, param := range fn.Params {
			frame.Define(param.Name.Value, args[idx])
		}
		result, err := i.execStatements(fn.Body, frame)
		if err != nil {
			return nil, err
		}
		if ret, ok := result.(*returnValue); ok {
			return ret.inner, nil
		}
		return result, nil

	default:
		return nil, errors.NotCallable(callee.Kind(), n.Pos)
	}
}

func (i *Interpreter) evalBinary(n *ast.BinaryExpr, env *Environment) (Value, error) {
	left, err := i.eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		switch l := left.(type) {
		case Number:
			if r, ok := right.(Number); ok {
				return Number{V: l.V + r.V}, nil
			}
		case String:
			if r, ok := right.(String); ok {
				return String{V: l.V + r.V}, nil
			}
		case *Array:
			if r, ok := right.(*Array); ok {
				elements := make([]Value, 0, len(l.Elements)+len(r.Elements))
				elements = append(elements, l.Elements...)
				elements = append(elements, r.Elements...)
				return &Array{Elements: elements}, nil
			}
		}
		return nil, errors.InvalidOperands(n.Op, left.Kind(), right.Kind(), n.Pos)

	case "-", "*", "/":
		l, lok := left.(Number)
		r, rok := right.(Number)
		if !lok || !rok {
			return nil, errors.InvalidOperands(n.Op, left.Kind(), right.Kind(), n.Pos)
		}
		switch n.Op {
		case "-":
			return Number{V: l.V - r.V}, nil
		case "*":
			return Number{V: l.V * r.V}, nil
		default:
			if r.V == 0 {
				return nil, errors.DivisionByZero(n.Pos)
			}
			return Number{V: l.V / r.V}, nil
		}

	case "==":
		return Boolean{V: valuesEqual(left, right)}, nil

	case "!=":
		return Boolean{V: !valuesEqual(left, right)}, nil

	case "<", ">", "<=", ">=":
		return i.evalComparison(n.Op, left, right, n.Pos)

	case "&&":
		// both sides are already evaluated; the falsy operand wins
		if !isTruthy(left) {
			return left, nil
		}
		return right, nil

	case "||":
		if isTruthy(left) {
			return left, nil
		}
		return right, nil

	default:
		return nil, errors.InvalidOperands(n.Op, left.Kind(), right.Kind(), n.Pos)
	}
}

func (i *Interpreter) evalComparison(op string, left, right Value, pos ast.Position) (Value, error) {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return Boolean{V: compareOrdered(op, l.V, r.V)}, nil
		}
	}
	if l, ok := left.(String); ok {
		if r, ok := right.(String); ok {
			return Boolean{V: compareOrdered(op, l.V, r.V)}, nil
		}
	}
	return nil, errors.InvalidOperands(op, left.Kind(), right.Kind(), pos)
}

func compareOrdered[T float64 | string](op string, l, r T) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	default:
		return l >= r
	}
}

func (i *Interpreter) evalUnary(n *ast.UnaryExpr, env *Environment) (Value, error) {
	operand, err := i.eval(n.Value, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "-":
		num, ok := operand.(Number)
		if !ok {
			return nil, errors.InvalidUnaryOperand(n.Op, operand.Kind(), n.Pos)
		}
		return Number{V: -num.V}, nil

	case "!":
		return Boolean{V: !isTruthy(operand)}, nil

	default:
		return nil, errors.InvalidUnaryOperand(n.Op, operand.Kind(), n.Pos)
	}
}
