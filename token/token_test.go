package token

import "testing"

func TestPositionDisplay(t *testing.T) {
	src := "let x = 1\nbad ~ token\n"
	pos := NewPosition(src, 14)

	got := pos.Display("unexpected character")
	want := "bad ~ token\n    ^ unexpected character"

	if got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestPositionDisplayFirstLine(t *testing.T) {
	src := "12x"
	pos := NewPosition(src, 2)

	got := pos.Display("expected digit")
	want := "12x\n  ^ expected digit"

	if got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}

func TestLexemeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"number", NewNum(42, Position{}), "42"},
		{"ident", NewIdent("counter", Position{}), "counter"},
		{"punctuation", New(Add, Position{}), "+"},
		{"keyword-shaped type", New(Return, Position{}), "RETURN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Lexeme(); got != tt.want {
				t.Errorf("Lexeme() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeywordsTable(t *testing.T) {
	for word, want := range map[string]TokenType{
		"return": Return,
		"if":     If,
		"else":   Else,
		"while":  While,
	} {
		if got, ok := Keywords[word]; !ok || got != want {
			t.Errorf("Keywords[%q] = %v, %v; want %v, true", word, got, ok, want)
		}
	}

	if _, ok := Keywords["counter"]; ok {
		t.Errorf("Keywords[%q] unexpectedly present", "counter")
	}
}
