package parser

import (
	"fmt"

	"corvid/token"
)

// SyntaxError is the parser's one error type. Every parse failure —
// a missing expected token, an unexpected token in primary position,
// or an unexpected EOF — is reported as one of these, always fatal.
type SyntaxError struct {
	Pos     token.Position
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error: %s", e.Message)
}

func (e SyntaxError) Position() token.Position {
	return e.Pos
}

// fail builds a SyntaxError for diag.Abort to carry, unwinding the
// recursive descent straight to TryParse's top-level diag.Recover
// rather than threading an error return through every grammar-rule
// method — the teacher's panic/recover-to-error idiom (see
// compiler.ASTCompiler in the teacher), routed through the shared
// internal/diag mechanism so lexer and parser failures unwind the
// same way.
func fail(pos token.Position, format string, args ...any) SyntaxError {
	return SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
