package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"corvid/internal/term"
	"corvid/parser"
)

// astCmd prints the parsed AST as JSON, colorized the way the
// teacher's printer.go does when writing to a terminal — generalized
// here to actually check internal/term.IsTerminal rather than
// colorizing unconditionally.
type astCmd struct {
	out  string
	file string
}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "Print the parsed AST as JSON" }
func (*astCmd) Usage() string {
	return `ast [-file path] <source>:
  Parse source and print its AST as JSON.
`
}
func (c *astCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "write AST JSON to this file instead of stdout")
	f.StringVar(&c.file, "file", "", "read source from this file instead of the positional argument")
}

func (c *astCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := sourceArg(f, c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	prog, err := parser.TryParse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if err := parser.WriteASTJSONToFile(prog.Stmts, c.out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	colorize := term.IsTerminal(os.Stdout.Fd())
	if _, err := parser.PrintASTJSON(prog.Stmts, colorize); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
