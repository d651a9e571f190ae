package interpreter

import "github.com/cwbudde/glox/internal/ast"

// LoxFunction is a user-defined function or method closed over the
// environment active at its declaration site (spec §4.4).
type LoxFunction struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewLoxFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// Bind returns a copy of the method closed over an environment that adds a
// binding of `this` to instance, so method bodies can reference it without
// the interpreter threading a receiver argument everywhere.
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewLoxFunction(f.declaration, env, f.isInitializer)
}

func (f *LoxFunction) Arity() int {
	return len(f.declaration.Params)
}

func (f *LoxFunction) Call(interp *Interpreter, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	ret, err := interp.executeBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if ret != nil {
		return ret.value, nil
	}
	return nil, nil
}

func (f *LoxFunction) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
