package parser

import (
	"bytes"
	"testing"

	"github.com/cwbudde/glox/internal/ast"
	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/lexer"
	"github.com/cwbudde/glox/internal/token"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *errors.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	r := errors.NewReporter(&buf)
	tokens := lexer.New(source, r).ScanTokens()
	stmts := New(tokens, r).Parse()
	return stmts, r
}

func TestParseSimpleProgram(t *testing.T) {
	stmts, r := parse(t, `var a = 1; print a + 2;`)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if _, ok := stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("stmts[0] = %T, want *ast.VarStmt", stmts[0])
	}
	if _, ok := stmts[1].(*ast.PrintStmt); !ok {
		t.Errorf("stmts[1] = %T, want *ast.PrintStmt", stmts[1])
	}
}

// Panic-mode recovery property (spec §8): K well-formed statements plus one
// malformed statement must still yield >=1 static error and K parsed
// statements, not zero.
func TestSynchronizeRecoversRemainingStatements(t *testing.T) {
	source := `
		var a = 1;
		var b = ;
		var c = 3;
		var d = 4;
	`
	stmts, r := parse(t, source)
	if !r.HadError {
		t.Fatalf("expected a static error")
	}
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3 (a, c, d recovered)", len(stmts))
	}
}

func TestForLoopDesugarsToWhileBlock(t *testing.T) {
	stmts, r := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	outer, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("outer = %T, want *ast.BlockStmt", stmts[0])
	}
	if len(outer.Stmts) != 2 {
		t.Fatalf("outer block has %d stmts, want 2 (init, while)", len(outer.Stmts))
	}
	if _, ok := outer.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("outer.Stmts[0] = %T, want *ast.VarStmt", outer.Stmts[0])
	}
	whileStmt, ok := outer.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("outer.Stmts[1] = %T, want *ast.WhileStmt", outer.Stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body = %T, want *ast.BlockStmt", whileStmt.Body)
	}
	if len(body.Stmts) != 2 {
		t.Fatalf("while body has %d stmts, want 2 (print, increment)", len(body.Stmts))
	}
}

func TestForLoopWithNoClauses(t *testing.T) {
	stmts, r := parse(t, `for (;;) print 1;`)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.WhileStmt", stmts[0])
	}
	lit, ok := whileStmt.Cond.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Errorf("condition = %#v, want Literal(true)", whileStmt.Cond)
	}
}

func TestInvalidAssignmentTargetReportsButContinues(t *testing.T) {
	stmts, r := parse(t, `1 + 2 = 3; print "still parsed";`)
	if !r.HadError {
		t.Fatalf("expected static error for invalid assignment target")
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

func TestClassDeclarationWithSuperclassAndMethods(t *testing.T) {
	stmts, r := parse(t, `
		class Base { greet() { print "hi"; } }
		class Derived < Base { greet() { super.greet(); } }
	`)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
	derived, ok := stmts[1].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("stmts[1] = %T, want *ast.ClassStmt", stmts[1])
	}
	if derived.Superclass == nil || derived.Superclass.Name.Lexeme != "Base" {
		t.Errorf("Superclass = %#v, want Variable(Base)", derived.Superclass)
	}
	if len(derived.Methods) != 1 || derived.Methods[0].Name.Lexeme != "greet" {
		t.Errorf("Methods = %#v, want [greet]", derived.Methods)
	}
}

func TestTooManyArgumentsReportsButParses(t *testing.T) {
	var args bytes.Buffer
	for i := 0; i < 256; i++ {
		if i > 0 {
			args.WriteByte(',')
		}
		args.WriteByte('1')
	}
	source := "f(" + args.String() + ");"
	stmts, r := parse(t, source)
	if !r.HadError {
		t.Fatalf("expected static error for >255 arguments")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1 (the call still parses)", len(stmts))
	}
}

func TestPrimaryExpressionsAndCallChains(t *testing.T) {
	stmts, r := parse(t, `a.b.c(1, 2).d = this;`)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
	exprStmt, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.ExpressionStmt", stmts[0])
	}
	set, ok := exprStmt.Expr.(*ast.Set)
	if !ok {
		t.Fatalf("expr = %T, want *ast.Set", exprStmt.Expr)
	}
	if set.Name.Lexeme != "d" {
		t.Errorf("Set.Name = %q, want d", set.Name.Lexeme)
	}
	if _, ok := set.Value.(*ast.This); !ok {
		t.Errorf("Set.Value = %T, want *ast.This", set.Value)
	}
}

func TestMissingEOFTokenAtEndProducesAtEndDiagnostic(t *testing.T) {
	_, r := parse(t, `print`)
	if !r.HadError {
		t.Fatalf("expected static error")
	}
	want := "[line 1] Error at end: Expect expression.\n"
	if got := r.Out.(*bytes.Buffer).String(); got != want {
		t.Errorf("diagnostic = %q, want %q", got, want)
	}
	_ = token.EOF
}
