// pipeline.go wires the tokenizer, parser and code generator into the
// single data flow every entry point in this module drives: source
// string -> AST + symbol table -> assembly buffer. It is the one
// place both corvidc (the core, single-argument compiler) and
// corvidtool (the developer-facing subcommands) share, so the two
// binaries can never drift on what "compile" means.

package pipeline

import (
	"os"

	"corvid/asm"
	"corvid/codegen"
	"corvid/internal/diag"
	"corvid/parser"
)

// Compile parses src and lowers it to assembly, printing a caret
// diagnostic and exiting the process with status 1 on any failure —
// this module's one error-handling policy, applied uniformly from the
// CLI entry point down.
func Compile(src string) *asm.AsmBuf {
	prog := parser.Parse(src)
	buf, err := codegen.TryGenerate(prog.Stmts, prog.LocalCount)
	if err != nil {
		diag.Fatal(os.Stderr, err)
	}
	return buf
}

// TryCompile is Compile, non-fatal: it returns the first lexical,
// syntactic, or too-many-arguments error instead of terminating the
// process. Developer tooling that wants to report errors its own way
// (rather than via the core CLI's caret-and-exit contract) uses this.
func TryCompile(src string) (*asm.AsmBuf, error) {
	prog, err := parser.TryParse(src)
	if err != nil {
		return nil, err
	}
	return codegen.TryGenerate(prog.Stmts, prog.LocalCount)
}
