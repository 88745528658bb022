// corvidc is the core compiler. It takes exactly one positional
// argument — the source program as a single string — compiles it, and
// writes x86-64 Intel-syntax assembly to standard output. Any
// lexical or syntactic failure prints a caret diagnostic to standard
// error and exits with status 1; success exits 0. There are no flags.

package main

import (
	"fmt"
	"os"

	"corvid/internal/pipeline"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <source>\n", os.Args[0])
		os.Exit(1)
	}

	buf := pipeline.Compile(os.Args[1])
	if err := buf.OutputStdout(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
