package ast

import "github.com/cwbudde/glox/internal/token"

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	stmtNode()
}

type stmtBase struct{}

func (stmtBase) stmtNode() {}

// ExpressionStmt evaluates Expr and discards the result.
type ExpressionStmt struct {
	stmtBase
	Expr Expr
}

// PrintStmt evaluates Expr and writes its stringified form followed by a
// newline.
type PrintStmt struct {
	stmtBase
	Expr Expr
}

// VarStmt declares Name in the current environment, bound to the evaluated
// Initializer (or nil if absent).
type VarStmt struct {
	stmtBase
	Name        token.Token
	Initializer Expr // nil if no initializer
}

// BlockStmt introduces a fresh lexical scope around Stmts.
type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

// IfStmt runs Then when Cond is truthy, else Else (which may be nil).
type IfStmt struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

// WhileStmt runs Body while Cond evaluates truthy. `for` loops desugar into
// this at parse time per spec §4.2.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body Stmt
}

// FunctionStmt declares a named function (or, nested inside a ClassStmt, a
// method — methods share this shape and are distinguished only by where
// they appear).
type FunctionStmt struct {
	stmtBase
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt unwinds to the nearest enclosing call frame, carrying Value (or
// nil, meaning return nil).
type ReturnStmt struct {
	stmtBase
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

// ClassStmt declares a class, optionally extending Superclass.
type ClassStmt struct {
	stmtBase
	Name       token.Token
	Superclass *Variable // nil if no superclass
	Methods    []*FunctionStmt
}
