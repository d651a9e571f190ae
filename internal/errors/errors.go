// Package errors provides the diagnostic sink shared by every phase of the
// pipeline (scanner, parser, resolver, interpreter). It mirrors the role of
// go-dws's CompilerError formatter, but the wire format here matches the
// classic jlox diagnostics rather than DWScript's caret-annotated output.
package errors

import (
	"fmt"
	"io"

	"github.com/cwbudde/glox/internal/token"
)

// RuntimeError is the error raised by the interpreter when a Lox program
// misbehaves at runtime (e.g. `"a" - 1`). It carries the offending token so
// the reporter can attach a line number.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Reporter is the external collaborator described in spec §4.6: every phase
// reports diagnostics through it and consults its two flags afterward.
type Reporter struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// NewReporter returns a Reporter that writes formatted diagnostics to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{Out: w}
}

// Error reports a static error with no token context (used by the scanner,
// which only has a line number).
func (r *Reporter) Error(line int, message string) {
	r.report(line, "", message)
}

// TokenError reports a static error anchored to a token, matching the
// "Error at '<lexeme>'" / "Error at end" convention used by the parser and
// resolver.
func (r *Reporter) TokenError(tok token.Token, message string) {
	if tok.Kind == token.EOF {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, " at '"+tok.Lexeme+"'", message)
	}
}

func (r *Reporter) report(line int, where, message string) {
	fmt.Fprintf(r.Out, "[line %d] Error%s: %s\n", line, where, message)
	r.HadError = true
}

// RuntimeErr reports a runtime error and sets HadRuntimeError. Per spec §9's
// open question, this flag is never cleared by the reporter itself; the
// driver decides whether to reset it between REPL lines.
func (r *Reporter) RuntimeErr(err *RuntimeError) {
	fmt.Fprintf(r.Out, "%s\n[line %d]\n", err.Message, err.Token.Line)
	r.HadRuntimeError = true
}

// ResetStatic clears the static-error flag. Called by the REPL driver
// between lines so one bad line doesn't poison the rest of the session.
func (r *Reporter) ResetStatic() {
	r.HadError = false
}
