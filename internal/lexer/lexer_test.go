package lexer

import (
	"bytes"
	"testing"

	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/token"
)

func scan(t *testing.T, source string) ([]token.Token, *errors.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	r := errors.NewReporter(&buf)
	l := New(source, r)
	return l.ScanTokens(), r
}

func TestNextTokenBasics(t *testing.T) {
	input := "var x = 5;\nx = x + 10;\n"

	tests := []struct {
		kind    token.Kind
		lexeme  string
		literal any
	}{
		{token.Var, "var", nil},
		{token.Identifier, "x", nil},
		{token.Equal, "=", nil},
		{token.Number, "5", 5.0},
		{token.Semicolon, ";", nil},
		{token.Identifier, "x", nil},
		{token.Equal, "=", nil},
		{token.Identifier, "x", nil},
		{token.Plus, "+", nil},
		{token.Number, "10", 10.0},
		{token.Semicolon, ";", nil},
		{token.EOF, "", nil},
	}

	tokens, r := scan(t, input)
	if r.HadError {
		t.Fatalf("unexpected lexical error")
	}
	if len(tokens) != len(tests) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(tests))
	}
	for i, tt := range tests {
		tok := tokens[i]
		if tok.Kind != tt.kind {
			t.Errorf("tokens[%d].Kind = %v, want %v", i, tok.Kind, tt.kind)
		}
		if tok.Lexeme != tt.lexeme {
			t.Errorf("tokens[%d].Lexeme = %q, want %q", i, tok.Lexeme, tt.lexeme)
		}
		if tok.Literal != tt.literal {
			t.Errorf("tokens[%d].Literal = %v, want %v", i, tok.Literal, tt.literal)
		}
	}
}

func TestKeywordsNotIdentifiers(t *testing.T) {
	input := "and class else false for fun if nil or print return super this true var while"
	tokens, _ := scan(t, input)
	want := []token.Kind{
		token.And, token.Class, token.Else, token.False, token.For, token.Fun,
		token.If, token.Nil, token.Or, token.Print, token.Return, token.Super,
		token.This, token.True, token.Var, token.While, token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("tokens[%d].Kind = %v, want %v", i, tokens[i].Kind, k)
		}
	}
}

// Scanner round-trip: source[t.start..t.end] == t.lexeme for every token.
func TestRoundTripLexeme(t *testing.T) {
	source := `class Cake { taste() { print "hi" + 1.5; } }`
	tokens, _ := scan(t, source)
	pos := 0
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		idx := indexFrom(source, tok.Lexeme, pos)
		if idx == -1 {
			t.Fatalf("lexeme %q not found in source at/after %d", tok.Lexeme, pos)
		}
		pos = idx + len(tok.Lexeme)
	}
}

func indexFrom(s, substr string, from int) int {
	for i := from; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestUnterminatedString(t *testing.T) {
	_, r := scan(t, `"unterminated`)
	if !r.HadError {
		t.Fatalf("expected a static error for unterminated string")
	}
}

func TestNumberDotWithoutDigitStopsAtDot(t *testing.T) {
	tokens, _ := scan(t, "123.")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3 (NUMBER, DOT, EOF)", len(tokens))
	}
	if tokens[0].Kind != token.Number || tokens[0].Literal != 123.0 {
		t.Errorf("tokens[0] = %+v, want NUMBER(123)", tokens[0])
	}
	if tokens[1].Kind != token.Dot {
		t.Errorf("tokens[1].Kind = %v, want DOT", tokens[1].Kind)
	}
}

func TestUnexpectedCharacterContinuesScanning(t *testing.T) {
	tokens, r := scan(t, "var x = 1; @ var y = 2;")
	if !r.HadError {
		t.Fatalf("expected a static error for '@'")
	}
	// Scanning must not stop: both var declarations still produce tokens.
	count := 0
	for _, tok := range tokens {
		if tok.Kind == token.Var {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d VAR tokens, want 2", count)
	}
}

func TestStringLiteralStripsQuotes(t *testing.T) {
	tokens, _ := scan(t, `"hello world"`)
	if tokens[0].Literal != "hello world" {
		t.Errorf("Literal = %v, want %q", tokens[0].Literal, "hello world")
	}
}
