// Package ast defines the Lox abstract syntax tree: two disjoint sum types,
// Expr and Stmt, each implemented as a closed set of struct variants behind
// a marker interface — the tagged-variant style go-dws uses for its AST,
// minus the visitor dispatch (evaluation here is a type switch, per the
// interpreter's own idiom in the broader Lox example pool).
package ast

import "github.com/cwbudde/glox/internal/token"

// id is a process-wide monotonic counter. Every expression node gets a
// unique id at construction time so the resolver can key its distance table
// by node identity without relying on pointer equality (nodes are never
// moved after construction, but the id is cheap insurance and matches the
// book's arena-index suggestion).
var nextExprID int64

func newExprID() int64 {
	nextExprID++
	return nextExprID
}

// Expr is any node that produces a value.
type Expr interface {
	exprNode()
	// ID returns this node's stable identity, used to key the resolver's
	// variable-distance side table.
	ID() int64
}

type exprBase struct {
	id int64
}

func (e exprBase) exprNode() {}
func (e exprBase) ID() int64 { return e.id }

// Literal is a constant value baked into the source: nil, a bool, a number,
// or a string.
type Literal struct {
	exprBase
	Value any
}

func NewLiteral(value any) *Literal {
	return &Literal{exprBase: exprBase{newExprID()}, Value: value}
}

// Grouping is a parenthesized sub-expression, kept distinct from its inner
// expression so `(a) = b` still rejects as an invalid assignment target.
type Grouping struct {
	exprBase
	Inner Expr
}

func NewGrouping(inner Expr) *Grouping {
	return &Grouping{exprBase: exprBase{newExprID()}, Inner: inner}
}

// Unary is a prefix operator: `!expr` or `-expr`.
type Unary struct {
	exprBase
	Op    token.Token
	Right Expr
}

func NewUnary(op token.Token, right Expr) *Unary {
	return &Unary{exprBase: exprBase{newExprID()}, Op: op, Right: right}
}

// Binary is an infix arithmetic/comparison/equality operator.
type Binary struct {
	exprBase
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewBinary(left Expr, op token.Token, right Expr) *Binary {
	return &Binary{exprBase: exprBase{newExprID()}, Left: left, Op: op, Right: right}
}

// Logical is `or`/`and`, kept separate from Binary because it short-circuits.
type Logical struct {
	exprBase
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewLogical(left Expr, op token.Token, right Expr) *Logical {
	return &Logical{exprBase: exprBase{newExprID()}, Left: left, Op: op, Right: right}
}

// Variable is a reference to a named binding.
type Variable struct {
	exprBase
	Name token.Token
}

func NewVariable(name token.Token) *Variable {
	return &Variable{exprBase: exprBase{newExprID()}, Name: name}
}

// Assign stores Value into the binding named Name.
type Assign struct {
	exprBase
	Name  token.Token
	Value Expr
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{exprBase: exprBase{newExprID()}, Name: name, Value: value}
}

// Call invokes Callee with Args. Paren is the closing ')' token, used to
// anchor arity-mismatch diagnostics to a line.
type Call struct {
	exprBase
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func NewCall(callee Expr, paren token.Token, args []Expr) *Call {
	return &Call{exprBase: exprBase{newExprID()}, Callee: callee, Paren: paren, Args: args}
}

// Get reads a property (field or method) off an instance.
type Get struct {
	exprBase
	Obj  Expr
	Name token.Token
}

func NewGet(obj Expr, name token.Token) *Get {
	return &Get{exprBase: exprBase{newExprID()}, Obj: obj, Name: name}
}

// Set stores Value into a property on an instance.
type Set struct {
	exprBase
	Obj   Expr
	Name  token.Token
	Value Expr
}

func NewSet(obj Expr, name token.Token, value Expr) *Set {
	return &Set{exprBase: exprBase{newExprID()}, Obj: obj, Name: name, Value: value}
}

// This is the `this` pseudo-variable, valid only inside a method body.
type This struct {
	exprBase
	Keyword token.Token
}

func NewThis(keyword token.Token) *This {
	return &This{exprBase: exprBase{newExprID()}, Keyword: keyword}
}

// Super is a `super.method` reference, valid only inside a subclass method.
type Super struct {
	exprBase
	Keyword token.Token
	Method  token.Token
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{exprBase: exprBase{newExprID()}, Keyword: keyword, Method: method}
}
