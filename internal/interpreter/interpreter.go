// Package interpreter tree-walks the resolved AST and executes it, per
// spec §4.4/§4.5. Dispatch is a type switch over ast.Expr/ast.Stmt rather
// than a visitor interface, matching the rest of this module's AST style.
package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/token"
)

// returnSignal is the explicit result-carrier spec §9 calls for in place of
// an exception: execute/executeBlock return one alongside a nil error to mean
// "a `return` statement fired here; unwind to the nearest Call without
// running further statements," as opposed to a genuine runtime error.
type returnSignal struct {
	value any
}

// Interpreter holds the two pieces of state spec §4.4 describes: the
// global environment (alive for the whole run) and the "current"
// environment, swapped on block/call entry and restored on every exit path.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[int64]int
	reporter    *errors.Reporter
	stdout      io.Writer
}

func New(reporter *errors.Reporter, locals map[int64]int, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", nativeClock{})
	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      locals,
		reporter:    reporter,
		stdout:      stdout,
	}
}

// SetLocals replaces the resolver's variable-distance side table. The REPL
// driver calls this before each line, since every line gets resolved
// independently while reusing one Interpreter (and its globals) across
// the whole session.
func (in *Interpreter) SetLocals(locals map[int64]int) {
	in.locals = locals
}

// Interpret executes a program's top-level statements, reporting the first
// runtime error (if any) through the reporter and also returning it. The
// CLI ignores the returned error and picks its exit code from the
// reporter's HadRuntimeError flag.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := in.execute(stmt); err != nil {
			if rtErr, ok := err.(*errors.RuntimeError); ok {
				in.reporter.RuntimeErr(rtErr)
			}
			return err
		}
	}
	return nil
}

// --- statement execution ---

func (in *Interpreter) execute(stmt ast.Stmt) (*returnSignal, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return nil, err

	case *ast.PrintStmt:
		value, err := in.evaluate(s.Expr)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(in.stdout, stringify(value))
		return nil, nil

	case *ast.VarStmt:
		var value any
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return nil, err
			}
			value = v
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil, nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnvironment(in.environment))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil, nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return nil, err
			}
			if !isTruthy(cond) {
				return nil, nil
			}
			ret, err := in.execute(s.Body)
			if err != nil || ret != nil {
				return ret, err
			}
		}

	case *ast.FunctionStmt:
		fn := NewLoxFunction(s, in.environment, false)
		in.environment.Define(s.Name.Lexeme, fn)
		return nil, nil

	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return &returnSignal{value: value}, nil

	case *ast.ClassStmt:
		return nil, in.executeClass(s)

	default:
		panic("interpreter: unhandled statement type")
	}
}

func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *LoxClass
	if s.Superclass != nil {
		value, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := value.(*LoxClass)
		if !ok {
			return errors.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.environment.Define(s.Name.Lexeme, nil)

	// Methods resolve `super` one scope in from where the class body's own
	// scope sits, matching the resolver's extra scope around superclass
	// method lookups.
	enclosing := in.environment
	if s.Superclass != nil {
		in.environment = NewEnvironment(in.environment)
		in.environment.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = NewLoxFunction(method, in.environment, method.Name.Lexeme == "init")
	}

	class := NewLoxClass(s.Name.Lexeme, superclass, methods)

	if s.Superclass != nil {
		in.environment = enclosing
	}

	return in.environment.Assign(s.Name, class)
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment on every exit path — normal completion, a return unwind, or
// a runtime error — per spec §4.4's swap-and-restore invariant.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (*returnSignal, error) {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		ret, err := in.execute(stmt)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}

// --- expression evaluation ---

func (in *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Variable:
		return in.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e.ID()]; ok {
			in.environment.AssignAt(distance, e.Name, value)
		} else if err := in.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		obj, err := in.evaluate(e.Obj)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, errors.NewRuntimeError(e.Name, "Only instances have properties.")
		}
		return instance.Get(e.Name)

	case *ast.Set:
		obj, err := in.evaluate(e.Obj)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, errors.NewRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name, value)
		return value, nil

	case *ast.This:
		return in.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return in.evalSuper(e)

	default:
		panic("interpreter: unhandled expression type")
	}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := in.locals[expr.ID()]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.Bang:
		return !isTruthy(right), nil
	case token.Minus:
		num, err := checkNumberOperand(e.Op, right)
		if err != nil {
			return nil, err
		}
		return -num, nil
	}
	panic("interpreter: unhandled unary operator")
}

func (in *Interpreter) evalLogical(e *ast.Logical) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.Minus:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a - b })
	case token.Slash:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a / b })
	case token.Star:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a * b })
	case token.Greater:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a > b })
	case token.GreaterEqual:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a >= b })
	case token.Less:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a < b })
	case token.LessEqual:
		return numberOp(e.Op, left, right, func(a, b float64) any { return a <= b })
	case token.Plus:
		return in.evalPlus(e.Op, left, right)
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	}
	panic("interpreter: unhandled binary operator")
}

func (in *Interpreter) evalPlus(op token.Token, left, right any) (any, error) {
	if lnum, ok := left.(float64); ok {
		if rnum, ok := right.(float64); ok {
			return lnum + rnum, nil
		}
	}
	if lstr, ok := left.(string); ok {
		if rstr, ok := right.(string); ok {
			return lstr + rstr, nil
		}
	}
	return nil, errors.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evalCall(e *ast.Call) (any, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(e.Args))
	for i, argExpr := range e.Args {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, errors.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, errors.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalSuper(e *ast.Super) (any, error) {
	distance := in.locals[e.ID()]
	superclass, _ := in.environment.GetAt(distance, "super").(*LoxClass)
	instance, _ := in.environment.GetAt(distance-1, "this").(*LoxInstance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, errors.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

// --- value helpers (spec §4.5) ---

// isTruthy: nil and false are falsy, everything else — including 0 and "" —
// is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual never raises a type error: values of different kinds compare
// unequal rather than failing.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func checkNumberOperand(op token.Token, operand any) (float64, error) {
	if num, ok := operand.(float64); ok {
		return num, nil
	}
	return 0, errors.NewRuntimeError(op, "Operand must be a number.")
}

func numberOp(op token.Token, left, right any, f func(a, b float64) any) (any, error) {
	lnum, ok := left.(float64)
	if !ok {
		return nil, errors.NewRuntimeError(op, "Operands must be numbers.")
	}
	rnum, ok := right.(float64)
	if !ok {
		return nil, errors.NewRuntimeError(op, "Operands must be numbers.")
	}
	return f(lnum, rnum), nil
}

// stringify renders a Lox value the way `print` shows it.
func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case float64:
		text := strconv.FormatFloat(v, 'f', -1, 64)
		return strings.TrimSuffix(text, ".0")
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
