package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"corvid/internal/pipeline"
)

// asmCmd exposes the same compile path corvidc runs, but going
// through TryCompile rather than the fatal wrapper so a failure is
// reported with this binary's own subcommands.ExitFailure convention
// instead of corvidc's hard os.Exit(1).
type asmCmd struct {
	out    string
	file   string
	labels bool
}

func (*asmCmd) Name() string     { return "asm" }
func (*asmCmd) Synopsis() string { return "Compile a source string to x86-64 assembly" }
func (*asmCmd) Usage() string {
	return `asm [-file path] [-labels] <source>:
  Compile source and print x86-64 Intel-syntax assembly.
`
}
func (c *asmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "write assembly to this file instead of stdout")
	f.StringVar(&c.file, "file", "", "read source from this file instead of the positional argument")
	f.BoolVar(&c.labels, "labels", false, "annotate output with a label-density comment, useful while developing the generator")
}

func (c *asmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := sourceArg(f, c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	buf, err := pipeline.TryCompile(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.out != "" {
		outFile, err := os.Create(c.out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer outFile.Close()
		out = outFile
	}

	if c.labels {
		fmt.Fprintf(out, "; labels: %d of %d instructions\n", buf.LabelCount(), buf.Len())
	}

	if err := buf.Output(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
