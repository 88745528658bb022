package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"corvid/lexer"
)

// tokensCmd prints the raw token stream for one source string,
// following the teacher's Name/Synopsis/Usage/SetFlags/Execute
// subcommand shape (see the teacher's runCmd).
type tokensCmd struct {
	file string
}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "Print the token stream for a source string" }
func (*tokensCmd) Usage() string {
	return `tokens [-file path] <source>:
  Tokenize source and print each token, one per line.
`
}
func (c *tokensCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "read source from this file instead of the positional argument")
}

func (c *tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := sourceArg(f, c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	toks, err := lexer.TryAll(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for _, tok := range toks {
		fmt.Println(tok.String())
	}
	return subcommands.ExitSuccess
}
