package lexer

import (
	"fmt"

	"corvid/token"
)

// LexError is the tokenizer's one error variant: either an integer
// literal that failed to parse, or a run of non-delimiter characters
// that matched no token shape.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e LexError) Error() string {
	return fmt.Sprintf("Lexical error: %s", e.Message)
}

func (e LexError) Position() token.Position {
	return e.Pos
}
