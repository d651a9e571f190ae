package resolver

import (
	"bytes"
	"sort"
	"testing"

	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/lexer"
	"github.com/cwbudde/glox/internal/parser"
)

func resolve(t *testing.T, source string) (*Resolver, *errors.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	r := errors.NewReporter(&buf)
	tokens := lexer.New(source, r).ScanTokens()
	stmts := parser.New(tokens, r).Parse()
	if r.HadError {
		t.Fatalf("unexpected parse error: %s", buf.String())
	}
	res := New(r)
	res.Resolve(stmts)
	return res, r
}

func TestClosureCapturesDeclarationTimeVariable(t *testing.T) {
	// A nested function that reads and assigns a local of its enclosing
	// function (the classic counter closure) resolves without any static
	// error.
	source := `
		fun makeCounter() {
			var i = 0;
			fun increment() {
				i = i + 1;
				return i;
			}
			return increment;
		}
	`
	_, r := resolve(t, source)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
}

func TestSelfInitializerIsStaticError(t *testing.T) {
	_, r := resolve(t, `{ var a = a; }`)
	if !r.HadError {
		t.Fatalf("expected static error for self-referencing initializer")
	}
}

func TestDuplicateLocalDeclarationIsStaticError(t *testing.T) {
	_, r := resolve(t, `{ var a = 1; var a = 2; }`)
	if !r.HadError {
		t.Fatalf("expected static error for duplicate local declaration")
	}
}

func TestReturnAtTopLevelIsStaticError(t *testing.T) {
	_, r := resolve(t, `return 1;`)
	if !r.HadError {
		t.Fatalf("expected static error for top-level return")
	}
}

func TestReturnValueFromInitializerIsStaticError(t *testing.T) {
	_, r := resolve(t, `class Foo { init() { return 1; } }`)
	if !r.HadError {
		t.Fatalf("expected static error for value-returning init")
	}
}

func TestBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, r := resolve(t, `class Foo { init() { return; } }`)
	if r.HadError {
		t.Fatalf("unexpected static error for bare return in init")
	}
}

func TestThisOutsideClassIsStaticError(t *testing.T) {
	_, r := resolve(t, `print this;`)
	if !r.HadError {
		t.Fatalf("expected static error for 'this' outside a class")
	}
}

func TestSuperOutsideClassIsStaticError(t *testing.T) {
	_, r := resolve(t, `print super.x;`)
	if !r.HadError {
		t.Fatalf("expected static error for 'super' outside a class")
	}
}

func TestSuperWithoutSuperclassIsStaticError(t *testing.T) {
	_, r := resolve(t, `class Foo { bar() { super.bar(); } }`)
	if !r.HadError {
		t.Fatalf("expected static error for 'super' with no superclass")
	}
}

func TestClassInheritingFromItselfIsStaticError(t *testing.T) {
	_, r := resolve(t, `class Foo < Foo {}`)
	if !r.HadError {
		t.Fatalf("expected static error for class inheriting from itself")
	}
}

func TestValidSubclassResolvesSuperAndThis(t *testing.T) {
	_, r := resolve(t, `
		class Animal { speak() { print "..."; } }
		class Dog < Animal { speak() { super.speak(); print this; } }
	`)
	if r.HadError {
		t.Fatalf("unexpected static error")
	}
}

// Determinism property (spec §8): resolving the same program twice yields
// identical distance tables.
func TestResolveIsDeterministic(t *testing.T) {
	source := `
		var a = 1;
		{
			var b = 2;
			print a + b;
		}
	`
	res1, r1 := resolve(t, source)
	if r1.HadError {
		t.Fatalf("unexpected static error")
	}
	res2, r2 := resolve(t, source)
	if r2.HadError {
		t.Fatalf("unexpected static error")
	}
	if len(res1.Locals()) != len(res2.Locals()) {
		t.Fatalf("distance table sizes differ: %d vs %d", len(res1.Locals()), len(res2.Locals()))
	}
	// Node ids differ between the two parses, so compare the distances in
	// node-creation order.
	ordered := func(locals map[int64]int) []int {
		ids := make([]int64, 0, len(locals))
		for id := range locals {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		distances := make([]int, len(ids))
		for i, id := range ids {
			distances[i] = locals[id]
		}
		return distances
	}
	d1, d2 := ordered(res1.Locals()), ordered(res2.Locals())
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Errorf("distance %d differs: %d vs %d", i, d1[i], d2[i])
		}
	}
}
