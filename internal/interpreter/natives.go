package interpreter

import "time"

// nativeClock is the one builtin spec.md's scope actually names: `clock()`
// returns the number of seconds since the Unix epoch as a float, giving
// Lox programs a way to measure elapsed time.
type nativeClock struct{}

func (nativeClock) Arity() int { return 0 }

func (nativeClock) Call(interp *Interpreter, args []any) (any, error) {
	return float64(time.Now().UnixNano()) / float64(time.Second), nil
}

func (nativeClock) String() string { return "<native fn>" }
