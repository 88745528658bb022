package lexer

import (
	"reflect"
	"testing"

	"corvid/token"
)

func typesOf(toks []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTryAllOperators(t *testing.T) {
	toks, err := TryAll("==/=*+>-<!=<=>=")
	if err != nil {
		t.Fatalf("TryAll() raised an error: %v", err)
	}

	want := []token.TokenType{
		token.EqEq, token.Div, token.Assign, token.Mul, token.Add,
		token.Gt, token.Sub, token.Lt, token.Neq, token.Lte, token.Gte,
		token.EOF,
	}
	if got := typesOf(toks); !reflect.DeepEqual(got, want) {
		t.Errorf("TryAll() types = %v, want %v", got, want)
	}
}

func TestTryAllCallArguments(t *testing.T) {
	toks, err := TryAll("f(a,b)")
	if err != nil {
		t.Fatalf("TryAll() raised an error: %v", err)
	}

	want := []token.TokenType{
		token.Ident, token.ParenL, token.Ident, token.Comma, token.Ident, token.ParenR, token.EOF,
	}
	if got := typesOf(toks); !reflect.DeepEqual(got, want) {
		t.Errorf("TryAll() types = %v, want %v", got, want)
	}
	if toks[0].Name != "f" || toks[2].Name != "a" || toks[4].Name != "b" {
		t.Errorf("TryAll() did not preserve identifier names: %v", toks)
	}
}

func TestTryAllKeywordsAndNumbers(t *testing.T) {
	toks, err := TryAll("if (x < 10) return 42; else while (1) {}")
	if err != nil {
		t.Fatalf("TryAll() raised an error: %v", err)
	}

	want := []token.TokenType{
		token.If, token.ParenL, token.Ident, token.Lt, token.Num, token.ParenR,
		token.Return, token.Num, token.Semi,
		token.Else, token.While, token.ParenL, token.Num, token.ParenR,
		token.BraceL, token.BraceR, token.EOF,
	}
	if got := typesOf(toks); !reflect.DeepEqual(got, want) {
		t.Errorf("TryAll() types = %v, want %v", got, want)
	}
}

func TestTryAllIsDeterministic(t *testing.T) {
	src := "x = 1 + y * (2 - z);"
	first, err := TryAll(src)
	if err != nil {
		t.Fatalf("TryAll() raised an error: %v", err)
	}
	second, err := TryAll(src)
	if err != nil {
		t.Fatalf("TryAll() raised an error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("TryAll() is not deterministic: %v != %v", first, second)
	}
}

func TestTryAllIdentifierAllowsUnderscoreAndDigits(t *testing.T) {
	toks, err := TryAll("ho_ge42 = 1;")
	if err != nil {
		t.Fatalf("TryAll() raised an error: %v", err)
	}
	if toks[0].Type != token.Ident || toks[0].Name != "ho_ge42" {
		t.Errorf("TryAll()[0] = %+v, want Ident %q", toks[0], "ho_ge42")
	}
}

func TestTryAllRejectsUnrecognizedCharacter(t *testing.T) {
	if _, err := TryAll("@;"); err == nil {
		t.Errorf("TryAll() expected an error for an unrecognized character, got nil")
	}
}

func TestTryAllRejectsOverflowingNumber(t *testing.T) {
	if _, err := TryAll("99999999999999999999999999;"); err == nil {
		t.Errorf("TryAll() expected an error for a number literal overflowing uint64, got nil")
	}
}

func TestStreamPeekDoesNotAdvanceOriginal(t *testing.T) {
	s := New("a b")
	tok, next, ok := s.Next()
	if !ok {
		t.Fatalf("Next() returned ok=false unexpectedly")
	}
	if tok.Name != "a" {
		t.Fatalf("Next() = %q, want %q", tok.Name, "a")
	}
	if s.offset != 0 {
		t.Errorf("s.offset = %d, want 0 (copy semantics must leave the receiver untouched)", s.offset)
	}
	if next.offset == 0 {
		t.Errorf("next.offset = 0, want advanced past %q", tok.Name)
	}
}
