package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"corvid/ast"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements both visitor interfaces and builds a
// JSON-friendly representation of the AST using maps and slices, one
// Visit method per node shape — the same approach the teacher's
// astPrinter takes, retargeted from Binary/Unary/Literal/Grouping/
// Assign/Variable onto this language's Num/Ident/Call/BinOp/Paren and
// Assign/Return/If/While/Block.
type astPrinter struct{}

func (p astPrinter) VisitNum(n ast.Num) any {
	return map[string]any{"type": "Num", "value": n.Value}
}

func (p astPrinter) VisitIdent(i ast.Ident) any {
	return map[string]any{"type": "Ident", "name": i.Name, "offset": i.Offset}
}

func (p astPrinter) VisitCall(c ast.Call) any {
	args := make([]any, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, a.Accept(p))
	}
	return map[string]any{"type": "Call", "name": c.Name, "args": args}
}

func (p astPrinter) VisitBinOp(b ast.BinOp) any {
	return map[string]any{
		"type":     "BinOp",
		"operator": b.Op.String(),
		"lhs":      b.Lhs.Accept(p),
		"rhs":      b.Rhs.Accept(p),
	}
}

func (p astPrinter) VisitParen(paren ast.Paren) any {
	return map[string]any{"type": "Paren", "inner": paren.Inner.Accept(p)}
}

func (p astPrinter) VisitExprStmt(s ast.ExprStmt) any {
	return map[string]any{"type": "ExprStmt", "expression": s.Expression.Accept(p)}
}

func (p astPrinter) VisitAssign(s ast.Assign) any {
	return map[string]any{"type": "Assign", "lhsOffset": s.LhsOffset, "rhs": s.Rhs.Accept(p)}
}

func (p astPrinter) VisitReturn(s ast.Return) any {
	return map[string]any{"type": "Return", "expression": s.Expression.Accept(p)}
}

func (p astPrinter) VisitIf(s ast.If) any {
	var elseVal any
	if s.Else != nil {
		elseVal = s.Else.Accept(p)
	}
	return map[string]any{
		"type":      "If",
		"condition": s.Cond.Accept(p),
		"then":      s.Then.Accept(p),
		"else":      elseVal,
	}
}

func (p astPrinter) VisitWhile(s ast.While) any {
	return map[string]any{
		"type":      "While",
		"condition": s.Cond.Accept(p),
		"body":      s.Body.Accept(p),
	}
}

func (p astPrinter) VisitBlock(s ast.Block) any {
	stmts := make([]any, 0, len(s.Stmts))
	for _, stmt := range s.Stmts {
		stmts = append(stmts, stmt.Accept(p))
	}
	return map[string]any{"type": "Block", "statements": stmts}
}

// ASTJSON renders statements as prettified JSON. It does no printing
// or coloring itself; callers that want the teacher's yellow-framed
// console dump use PrintASTJSON.
func ASTJSON(statements []ast.Stmt) (string, error) {
	printer := astPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Accept(printer))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// PrintASTJSON writes the AST JSON to stdout framed the way the
// teacher's printer does, colorizing only when colorize is true —
// generalizing the teacher's unconditionally-ANSI output into a
// terminal-gated choice (see internal/term.IsTerminal, used by
// corvidtool to decide colorize).
func PrintASTJSON(statements []ast.Stmt, colorize bool) (string, error) {
	jsonStr, err := ASTJSON(statements)
	if err != nil {
		return "", err
	}
	yellow, reset := "", ""
	if colorize {
		yellow, reset = colorYellow, colorReset
	}
	fmt.Println(yellow + "----- AST JSON -----")
	fmt.Println(yellow + jsonStr)
	fmt.Println(yellow + "-----" + reset)
	return jsonStr, nil
}

// WriteASTJSONToFile writes the (uncolored) AST JSON to the given
// file path.
func WriteASTJSONToFile(statements []ast.Stmt, path string) error {
	s, err := ASTJSON(statements)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %w", err)
	}
	return nil
}
