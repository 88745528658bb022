// generator.go lowers a parsed program to x86-64 Intel-syntax
// assembly: a single `_main` subroutine implementing a stack machine,
// where every expression leaves exactly one 8-byte value on top of
// the stack. It tracks a logical stack-depth counter across pushes,
// pops and the prologue's implicit return-address/saved-RBP slots so
// that every `call` site can be 16-byte aligned per the System V ABI,
// and a monotonically increasing label counter so every branch target
// is unique across the compilation unit.

package codegen

import (
	"fmt"

	"corvid/ast"
	"corvid/asm"
	"corvid/internal/diag"
)

// ArgError is raised when a call site supplies more than the six
// arguments this calling convention can pass in registers.
type ArgError struct {
	Message string
}

func (e ArgError) Error() string { return e.Message }

// Generator walks a program's statements and expressions, emitting
// instructions into an AsmBuf. One Generator lowers exactly one
// subroutine; it is not reused across compilation units.
type Generator struct {
	buf        *asm.AsmBuf
	stackBytes int
	labelNum   int
}

// New returns a Generator with an empty output buffer.
func New() *Generator {
	return &Generator{buf: asm.NewBuf()}
}

func (g *Generator) push() { g.stackBytes += 8 }
func (g *Generator) pop()  { g.stackBytes -= 8 }

func (g *Generator) newLabel() int {
	g.labelNum++
	return g.labelNum
}

// Generate lowers prog into a complete assembly listing: the prelude,
// one subroutine's prologue, every statement, and the epilogue. The
// local-variable area is sized from localCount (the symbol table's
// distinct-identifier count), rounded up to a multiple of 16 bytes —
// the "more principled" sizing this specification's open question
// calls conformant, in place of the historical fixed 8*26.
func Generate(stmts []ast.Stmt, localCount int) *asm.AsmBuf {
	g := New()
	g.genPrelude()
	g.genSubroutine(stmts, localCount)
	return g.buf
}

// TryGenerate is Generate, non-fatal: a call site with more than six
// arguments unwinds via diag.Abort inside genCall, and TryGenerate
// catches it here and returns it as a plain error instead of letting
// it escape to a caller that didn't expect a panic.
func TryGenerate(stmts []ast.Stmt, localCount int) (buf *asm.AsmBuf, err error) {
	defer diag.Recover(&err)
	buf = Generate(stmts, localCount)
	return buf, nil
}

func (g *Generator) genPrelude() {
	g.buf.Push(asm.Arbitrary{Text: ".intel_syntax noprefix"})
	g.buf.Push(asm.Arbitrary{Text: ".global _main"})
	g.buf.Push(asm.Label("_main"))
}

func localAreaBytes(localCount int) int {
	bytes := localCount * 8
	if bytes%16 != 0 {
		bytes += 8
	}
	return bytes
}

func (g *Generator) genSubroutine(stmts []ast.Stmt, localCount int) {
	g.genPrologue(localAreaBytes(localCount))

	for _, stmt := range stmts {
		g.genStmt(stmt)
	}

	if !endsInReturn(stmts) {
		g.buf.Push(asm.Pop{Dst: asm.RAX})
		g.genEpilogue()
	}
}

// endsInReturn reports whether the last top-level statement is
// statically a Return, in which case the tail pop+epilogue that would
// otherwise run after the loop is unreachable and is elided — the
// "may be elided for cleanliness" option this specification's third
// open question allows.
func endsInReturn(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(ast.Return)
	return ok
}

func (g *Generator) genPrologue(localBytes int) {
	g.push() // return address, pushed by `call` before control reaches here
	g.buf.Push(asm.Push{Src: asm.RBP})
	g.push()
	g.buf.Push(asm.Mov{Dst: asm.RBP, Src: asm.RSP})
	g.buf.Push(asm.Sub{Dst: asm.RSP, Src: int64(localBytes)})
}

func (g *Generator) genEpilogue() {
	g.buf.Push(asm.Mov{Dst: asm.RSP, Src: asm.RBP})
	g.buf.Push(asm.Pop{Dst: asm.RBP})
	g.buf.Push(asm.Ret{})
}

func (g *Generator) genStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case ast.ExprStmt:
		g.genExpr(s.Expression)

	case ast.Assign:
		g.genExpr(s.Rhs)
		g.buf.Push(asm.Pop{Dst: asm.RAX})
		g.pop()
		g.buf.Push(asm.Mov{Dst: asm.Mem{Base: asm.RBP, Offset: s.LhsOffset}, Src: asm.RAX})

	case ast.Return:
		g.genExpr(s.Expression)
		g.buf.Push(asm.Pop{Dst: asm.RAX})
		g.pop()
		g.genEpilogue()

	case ast.If:
		g.genIf(s)

	case ast.While:
		g.genWhile(s)

	case ast.Block:
		for _, inner := range s.Stmts {
			g.genStmt(inner)
		}

	default:
		panic(fmt.Sprintf("codegen: unhandled statement type %T", stmt))
	}
}

func (g *Generator) genIf(s ast.If) {
	n := g.newLabel()
	endLabel := fmt.Sprintf("L_if_end_%d", n)

	g.genExpr(s.Cond)
	g.buf.Push(asm.Pop{Dst: asm.RAX})
	g.pop()
	g.buf.Push(asm.Cmp{A: asm.RAX, B: int64(0)})

	if s.Else == nil {
		g.buf.Push(asm.Je(endLabel))
		g.genStmt(s.Then)
		g.buf.Push(asm.Label(endLabel))
		return
	}

	elseLabel := fmt.Sprintf("L_if_else_%d", n)
	g.buf.Push(asm.Je(elseLabel))
	g.genStmt(s.Then)
	g.buf.Push(asm.Jmp(endLabel))
	g.buf.Push(asm.Label(elseLabel))
	g.genStmt(s.Else)
	g.buf.Push(asm.Label(endLabel))
}

func (g *Generator) genWhile(s ast.While) {
	n := g.newLabel()
	beginLabel := fmt.Sprintf("L_loop_begin_%d", n)
	endLabel := fmt.Sprintf("L_loop_end_%d", n)

	g.buf.Push(asm.Label(beginLabel))
	g.genExpr(s.Cond)
	g.buf.Push(asm.Pop{Dst: asm.RAX})
	g.pop()
	g.buf.Push(asm.Cmp{A: asm.RAX, B: int64(0)})
	g.buf.Push(asm.Je(endLabel))
	g.genStmt(s.Body)
	g.buf.Push(asm.Jmp(beginLabel))
	g.buf.Push(asm.Label(endLabel))
}

func (g *Generator) genExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case ast.Num:
		g.buf.Push(asm.Push{Src: int64(e.Value)})
		g.push()

	case ast.Ident:
		g.buf.Push(asm.Mov{Dst: asm.RAX, Src: asm.Mem{Base: asm.RBP, Offset: e.Offset}})
		g.buf.Push(asm.Push{Src: asm.RAX})
		g.push()

	case ast.Call:
		g.genCall(e)

	case ast.Paren:
		g.genExpr(e.Inner)

	case ast.BinOp:
		g.genBinOp(e)

	default:
		panic(fmt.Sprintf("codegen: unhandled expression type %T", expr))
	}
}

func (g *Generator) genCall(c ast.Call) {
	if len(c.Args) > 6 {
		diag.Abort(ArgError{Message: fmt.Sprintf("call to %q: too many arguments (%d > 6)", c.Name, len(c.Args))})
	}

	for _, arg := range c.Args {
		g.genExpr(arg)
	}

	for i := len(c.Args) - 1; i >= 0; i-- {
		g.buf.Push(asm.Pop{Dst: asm.ArgRegs[i]})
		g.pop()
	}

	if g.stackBytes%16 != 0 {
		g.buf.Push(asm.Sub{Dst: asm.RSP, Src: int64(8)})
	}

	g.buf.Push(asm.Call(c.Name))

	// Resolved open question: push the call's return value and count
	// it, so an expression using a call keeps the stack-machine
	// invariant that every expression leaves exactly one value behind.
	g.buf.Push(asm.Push{Src: asm.RAX})
	g.push()
}

func (g *Generator) genBinOp(b ast.BinOp) {
	g.genExpr(b.Lhs)
	g.genExpr(b.Rhs)

	g.buf.Push(asm.Pop{Dst: asm.RDI}) // rhs
	g.pop()
	g.buf.Push(asm.Pop{Dst: asm.RAX}) // lhs
	g.pop()

	switch b.Op {
	case ast.Add:
		g.buf.Push(asm.Add{Dst: asm.RAX, Src: asm.RDI})
	case ast.Sub:
		g.buf.Push(asm.Sub{Dst: asm.RAX, Src: asm.RDI})
	case ast.Mul:
		g.buf.Push(asm.Imul{Dst: asm.RAX, Src: asm.RDI})
	case ast.Div:
		g.buf.Push(asm.Cqo{})
		g.buf.Push(asm.Idiv{Src: asm.RDI})
	case ast.Eq:
		g.buf.Push(asm.Cmp{A: asm.RAX, B: asm.RDI})
		g.buf.Push(asm.Sete{Dst: asm.AL})
		g.buf.Push(asm.Movzx{Dst: asm.RAX, Src: asm.AL})
	case ast.Neq:
		g.buf.Push(asm.Cmp{A: asm.RAX, B: asm.RDI})
		g.buf.Push(asm.Setne{Dst: asm.AL})
		g.buf.Push(asm.Movzx{Dst: asm.RAX, Src: asm.AL})
	case ast.Lt:
		g.buf.Push(asm.Cmp{A: asm.RAX, B: asm.RDI})
		g.buf.Push(asm.Setl{Dst: asm.AL})
		g.buf.Push(asm.Movzx{Dst: asm.RAX, Src: asm.AL})
	case ast.Lte:
		g.buf.Push(asm.Cmp{A: asm.RAX, B: asm.RDI})
		g.buf.Push(asm.Setle{Dst: asm.AL})
		g.buf.Push(asm.Movzx{Dst: asm.RAX, Src: asm.AL})
	default:
		panic(fmt.Sprintf("codegen: unhandled binary operator %v", b.Op))
	}

	g.buf.Push(asm.Push{Src: asm.RAX})
	g.push()
}
