// corvidtool is the developer-facing companion to corvidc: tokens,
// ast, asm, disasm and repl subcommands for inspecting each stage of
// the pipeline, registered the way the teacher's cmd_*.go files
// register subcommands via google/subcommands — but unlike the
// teacher's binary (which only ever had one implicit mode), this one
// is a proper multi-command tool since corvidc's own CLI contract
// (one positional argument, no flags) must stay frozen.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&astCmd{}, "")
	subcommands.Register(&asmCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")
	subcommands.Register(&replCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

// sourceArg resolves a subcommand's source text: the -file path if
// one was given, falling back to the positional argument otherwise.
func sourceArg(f *flag.FlagSet, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if f.NArg() < 1 {
		return "", fmt.Errorf("missing source argument (or use -file)")
	}
	return f.Arg(0), nil
}
