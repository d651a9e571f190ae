// Package resolver performs the static scope analysis pass described in
// spec §4.3: a single walk over the parsed statement tree that resolves
// every variable reference to a lexical distance, so the interpreter never
// needs to search an environment chain at runtime. The dispatch style
// (a type switch per node kind, rather than a visitor interface) follows
// the Lox resolvers in the example pool (rmonnet-glox, hosome17-glox),
// extended here with subclass/`super` tracking neither of those covers.
package resolver

import (
	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/token"
)

type functionType int

const (
	noFunction functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	noClass classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether its initializer has finished evaluating:
// false means "declared but not yet defined," used to catch
// `var a = a;` self-reference.
type scope map[string]bool

// Resolver walks a parsed program once and records, for every Expr that
// refers to a variable (Variable, Assign, This, Super), how many
// enclosing scopes up the binding lives. Locals not present in the table
// are assumed global.
type Resolver struct {
	reporter *errors.Reporter
	scopes   []scope
	locals   map[int64]int

	currentFunction functionType
	currentClass    classType
}

func New(r *errors.Reporter) *Resolver {
	return &Resolver{reporter: r, locals: make(map[int64]int)}
}

// Locals returns the variable-distance side table computed by Resolve,
// keyed by ast.Expr.ID().
func (res *Resolver) Locals() map[int64]int {
	return res.locals
}

func (res *Resolver) Resolve(stmts []ast.Stmt) {
	res.resolveStmts(stmts)
}

// --- scope stack ---

func (res *Resolver) beginScope() {
	res.scopes = append(res.scopes, scope{})
}

func (res *Resolver) endScope() {
	res.scopes = res.scopes[:len(res.scopes)-1]
}

func (res *Resolver) declare(name token.Token) {
	if len(res.scopes) == 0 {
		return
	}
	sc := res.scopes[len(res.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		res.reporter.TokenError(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (res *Resolver) define(name token.Token) {
	if len(res.scopes) == 0 {
		return
	}
	res.scopes[len(res.scopes)-1][name.Lexeme] = true
}

func (res *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(res.scopes) - 1; i >= 0; i-- {
		if _, ok := res.scopes[i][name.Lexeme]; ok {
			res.locals[expr.ID()] = len(res.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treated as global, resolved at runtime.
}

// --- statements ---

func (res *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		res.resolveStmt(s)
	}
}

func (res *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		res.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		res.resolveExpr(s.Expr)
	case *ast.VarStmt:
		res.declare(s.Name)
		if s.Initializer != nil {
			res.resolveExpr(s.Initializer)
		}
		res.define(s.Name)
	case *ast.BlockStmt:
		res.beginScope()
		res.resolveStmts(s.Stmts)
		res.endScope()
	case *ast.IfStmt:
		res.resolveExpr(s.Cond)
		res.resolveStmt(s.Then)
		if s.Else != nil {
			res.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		res.resolveExpr(s.Cond)
		res.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		res.declare(s.Name)
		res.define(s.Name)
		res.resolveFunction(s, functionFunction)
	case *ast.ReturnStmt:
		if res.currentFunction == noFunction {
			res.reporter.TokenError(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if res.currentFunction == functionInitializer {
				res.reporter.TokenError(s.Keyword, "Can't return a value from an initializer.")
			}
			res.resolveExpr(s.Value)
		}
	case *ast.ClassStmt:
		res.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (res *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := res.currentFunction
	res.currentFunction = kind

	res.beginScope()
	for _, param := range fn.Params {
		res.declare(param)
		res.define(param)
	}
	res.resolveStmts(fn.Body)
	res.endScope()

	res.currentFunction = enclosingFunction
}

func (res *Resolver) resolveClass(cls *ast.ClassStmt) {
	enclosingClass := res.currentClass
	res.currentClass = classClass

	res.declare(cls.Name)
	res.define(cls.Name)

	if cls.Superclass != nil {
		if cls.Superclass.Name.Lexeme == cls.Name.Lexeme {
			res.reporter.TokenError(cls.Superclass.Name, "A class can't inherit from itself.")
		}
		res.currentClass = classSubclass
		res.resolveExpr(cls.Superclass)

		res.beginScope()
		res.scopes[len(res.scopes)-1]["super"] = true
	}

	res.beginScope()
	res.scopes[len(res.scopes)-1]["this"] = true

	for _, method := range cls.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		res.resolveFunction(method, kind)
	}

	res.endScope()

	if cls.Superclass != nil {
		res.endScope()
	}

	res.currentClass = enclosingClass
}

// --- expressions ---

func (res *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no references to resolve
	case *ast.Grouping:
		res.resolveExpr(e.Inner)
	case *ast.Unary:
		res.resolveExpr(e.Right)
	case *ast.Binary:
		res.resolveExpr(e.Left)
		res.resolveExpr(e.Right)
	case *ast.Logical:
		res.resolveExpr(e.Left)
		res.resolveExpr(e.Right)
	case *ast.Variable:
		if len(res.scopes) > 0 {
			if defined, ok := res.scopes[len(res.scopes)-1][e.Name.Lexeme]; ok && !defined {
				res.reporter.TokenError(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		res.resolveLocal(e, e.Name)
	case *ast.Assign:
		res.resolveExpr(e.Value)
		res.resolveLocal(e, e.Name)
	case *ast.Call:
		res.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			res.resolveExpr(arg)
		}
	case *ast.Get:
		res.resolveExpr(e.Obj)
	case *ast.Set:
		res.resolveExpr(e.Value)
		res.resolveExpr(e.Obj)
	case *ast.This:
		if res.currentClass == noClass {
			res.reporter.TokenError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		res.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch res.currentClass {
		case noClass:
			res.reporter.TokenError(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			res.reporter.TokenError(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		res.resolveLocal(e, e.Keyword)
	default:
		panic("resolver: unhandled expression type")
	}
}
