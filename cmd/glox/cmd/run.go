package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/interpreter"
	"github.com/cwbudde/glox/internal/lexer"
	"github.com/cwbudde/glox/internal/parser"
	"github.com/cwbudde/glox/internal/resolver"
)

// runFile reads path and executes it once, mapping outcomes to spec §6's
// exit codes: 65 if any static error occurred, 70 on an unhandled runtime
// error, 0 otherwise. A file that cannot be read yields exit code 1.
func runFile(path string, dumpAST bool, stdout, stderr io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return newExitError(1, fmt.Errorf("reading %s: %w", path, err))
	}

	reporter := errors.NewReporter(stderr)
	interp := interpreter.New(reporter, nil, stdout)
	runSource(string(content), dumpAST, reporter, interp)

	if reporter.HadError {
		return newExitError(65, fmt.Errorf("static error"))
	}
	if reporter.HadRuntimeError {
		return newExitError(70, fmt.Errorf("runtime error"))
	}
	return nil
}

// runREPL implements spec §6's interactive loop: read a line, run it,
// clear the static-error flag, repeat until EOF. The runtime-error flag is
// deliberately left alone between lines — an Open Question spec §9 notes
// the reference implementation leaves it set, and this preserves that.
func runREPL(stdout, stderr io.Writer) error {
	reporter := errors.NewReporter(stderr)
	interp := interpreter.New(reporter, nil, stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			break
		}
		runSource(line, false, reporter, interp)
		reporter.ResetStatic()
	}
	return nil
}

// runSource drives the pipeline spec §4 describes: scan, parse, resolve,
// interpret. After parsing (which also covers scan errors) and after
// resolving, the reporter is checked for accumulated errors before handing
// off to the next phase, per spec §7's "script is not executed if
// had_error is set after any pre-interp phase."
func runSource(source string, dumpAST bool, reporter *errors.Reporter, interp *interpreter.Interpreter) {
	tokens := lexer.New(source, reporter).ScanTokens()

	stmts := parser.New(tokens, reporter).Parse()
	if reporter.HadError {
		return
	}

	if dumpAST {
		fmt.Print(ast.DumpProgram(stmts))
	}

	res := resolver.New(reporter)
	res.Resolve(stmts)
	if reporter.HadError {
		return
	}

	interp.SetLocals(res.Locals())
	_ = interp.Interpret(stmts)
}
