// diag.go carries the fatal-error policy shared by every stage of the
// compiler: one error taxonomy, one propagation policy. Errors unwind
// via Abort to the nearest Recover in a TryXxx function, which returns
// them; the fatal wrappers used by corvidc then pass them to Fatal,
// which prints a diagnostic on stderr and exits with code 1.

package diag

import (
	"fmt"
	"io"
	"os"

	"corvid/token"
)

// PositionalError is implemented by every typed error in this module
// that can point at a byte offset in the source.
type PositionalError interface {
	error
	Position() token.Position
}

// Fatal writes err's caret diagnostic to w and exits the process with
// status 1. If err does not implement PositionalError, its plain
// message is written instead.
func Fatal(w io.Writer, err error) {
	if pe, ok := err.(PositionalError); ok {
		fmt.Fprintln(w, pe.Position().Display(pe.Error()))
	} else {
		fmt.Fprintln(w, err.Error())
	}
	os.Exit(1)
}

// Signal is the panic payload used to unwind the lexer/parser's
// recursive descent straight up to the nearest Recover, without
// threading an error return through every call in the tokenizer and
// every grammar-rule method. This is the teacher's
// panic-then-convert-to-error idiom (see compiler.ASTCompiler's
// recover-wrapped CompileAST), generalized into one shared mechanism
// used by both the lexer and the parser so a lexical failure deep
// inside a parse can unwind to the same place a syntax error would.
type Signal struct {
	Err error
}

// Abort panics with err wrapped as a Signal. Call this, never a bare
// panic, for any error in this module that should unwind to a
// Recover point instead of propagating as a normal Go error return.
func Abort(err error) {
	panic(Signal{Err: err})
}

// Recover, deferred at the top of a TryXxx function, catches a Signal
// raised by Abort and stores its error in *errp. Any other panic
// value is re-raised unchanged — this module never treats a genuine
// programming-error panic as a reportable diagnostic.
func Recover(errp *error) {
	if r := recover(); r != nil {
		if sig, ok := r.(Signal); ok {
			*errp = sig.Err
			return
		}
		panic(r)
	}
}
