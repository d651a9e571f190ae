package interpreter

// Callable is anything `(...)` can invoke: user-defined functions and
// methods, classes (as constructors), and native functions like clock().
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []any) (any, error)
	String() string
}
