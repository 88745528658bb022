package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"corvid/bytecode"
	"corvid/parser"
)

// disasmCmd compiles source to the debugging bytecode side channel
// (never corvidc's x86-64 output) and prints its disassembly, the
// same mnemonic-plus-operands format the teacher used for its own
// bytecode debugging.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Print the debug bytecode disassembly for a source string" }
func (*disasmCmd) Usage() string {
	return `disasm <source>:
  Compile source to the debug bytecode format and print its disassembly.
`
}
func (*disasmCmd) SetFlags(f *flag.FlagSet) {}

func (c *disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := sourceArg(f, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	prog, err := parser.TryParse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	bc, err := bytecode.NewASTCompiler().CompileAST(prog.Stmts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Print(bytecode.Disassemble(bc.Instructions))
	return subcommands.ExitSuccess
}
