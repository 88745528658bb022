package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"corvid/bytecode"
	"corvid/internal/config"
	"corvid/internal/term"
	"corvid/lexer"
	"corvid/parser"
	"corvid/token"
)

// replCmd is an interactive read-eval-print loop, following the
// teacher's own repl command in shape (Name/Synopsis/Usage/Execute,
// an "exit" sentinel line) but reading lines through
// github.com/chzyer/readline instead of a bare bufio.Scanner, and
// evaluating each line through the debug bytecode VM rather than the
// teacher's tree-walking interpreter — this is preview tooling, never
// the path corvidc's real output takes.
type replCmd struct {
	configPath string
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive read-eval-print loop" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive session. Type "exit" to quit.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.configPath, "config", "corvid.toml", "path to an optional corvid.toml")
}

func (r *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	colorize := cfg.Repl.Color && term.IsTerminal(os.Stdout.Fd())
	prompt := ">>> "
	if colorize {
		prompt = "\033[33m>>> \033[0m"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: cfg.Repl.History,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("\n\nWelcome to corvid!")
	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(continuationPrompt(colorize))
		}

		line, err := rl.Readline()
		if err != nil {
			return subcommands.ExitSuccess
		}
		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		toks, err := lexer.TryAll(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			buffer.Reset()
			continue
		}

		if !isInputReady(toks) {
			continue
		}
		buffer.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		prog, err := parser.TryParse(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		bc, err := bytecode.NewASTCompiler().CompileAST(prog.Stmts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		result, err := bytecode.NewVM().Run(bc)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if result != nil {
			fmt.Println(result)
		}
	}
}

func continuationPrompt(colorize bool) string {
	if colorize {
		return "\033[33m... \033[0m"
	}
	return "... "
}

// isInputReady mirrors the teacher's cmd_repl_compiled.go helper of
// the same name: it waits for balanced braces, then for the last
// non-EOF token to be something other than an operator or keyword
// that unambiguously expects more input (e.g. the user just typed
// "if (x < 1) {" and is still mid-statement).
func isInputReady(toks []token.Token) bool {
	braceBalance := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.BraceL:
			braceBalance++
		case token.BraceR:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(toks)
	if last == nil {
		return true
	}

	switch last.Type {
	case token.Assign, token.Add, token.Sub, token.Mul, token.Div,
		token.Lt, token.Lte, token.Gt, token.Gte, token.EqEq, token.Neq,
		token.Comma, token.ParenL, token.BraceL,
		token.If, token.Else, token.While, token.Return:
		return false
	}
	return true
}

func lastNonEOF(toks []token.Token) *token.Token {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Type != token.EOF {
			return &toks[i]
		}
	}
	return nil
}
