// instructions.go models the small closed family of x86-64 Intel
// syntax instructions the code generator emits, plus a free-form
// Arbitrary escape hatch for directives, labels, jumps and calls.
// Each instruction knows its own mnemonic and renders itself as a
// single indented text line; the sink (AsmBuf, in buf.go) just holds
// them in order.

package asm

import (
	"fmt"
	"io"
)

// Reg names a general-purpose register operand. Registers render in
// lower case, matching the teacher's preference for plain-text
// constants over an enum with a custom stringer doing case folding.
type Reg string

const (
	RAX Reg = "rax"
	RDI Reg = "rdi"
	RSI Reg = "rsi"
	RDX Reg = "rdx"
	RCX Reg = "rcx"
	R8  Reg = "r8"
	R9  Reg = "r9"
	RBP Reg = "rbp"
	RSP Reg = "rsp"
	AL  Reg = "al"
)

// ArgRegs is the System V-style argument register order this
// compiler's calling convention uses, index 0 first.
var ArgRegs = []Reg{RDI, RSI, RDX, RCX, R8, R9}

// Mem is a `[reg - offset]` memory operand, the only addressing mode
// this generator ever needs (locals addressed off the frame pointer).
type Mem struct {
	Base   Reg
	Offset int
}

func (m Mem) String() string {
	if m.Offset == 0 {
		return fmt.Sprintf("[%s]", m.Base)
	}
	return fmt.Sprintf("[%s - %d]", m.Base, m.Offset)
}

// Instruction is the single capability every asm record has: render
// itself as one indented line of text.
type Instruction interface {
	Emit(w io.Writer) error
}

func line(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
	return err
}

type Push struct{ Src any } // Reg or an immediate int64

func (i Push) Emit(w io.Writer) error { return line(w, "push %v", i.Src) }

type Pop struct{ Dst Reg }

func (i Pop) Emit(w io.Writer) error { return line(w, "pop %s", i.Dst) }

type Mov struct {
	Dst any
	Src any
}

func (i Mov) Emit(w io.Writer) error { return line(w, "mov %v, %v", i.Dst, i.Src) }

type Add struct{ Dst, Src any }

func (i Add) Emit(w io.Writer) error { return line(w, "add %v, %v", i.Dst, i.Src) }

type Sub struct{ Dst, Src any }

func (i Sub) Emit(w io.Writer) error { return line(w, "sub %v, %v", i.Dst, i.Src) }

type Imul struct{ Dst, Src any }

func (i Imul) Emit(w io.Writer) error { return line(w, "imul %v, %v", i.Dst, i.Src) }

type Idiv struct{ Src any }

func (i Idiv) Emit(w io.Writer) error { return line(w, "idiv %v", i.Src) }

type Cqo struct{}

func (i Cqo) Emit(w io.Writer) error { return line(w, "cqo") }

type Cmp struct{ A, B any }

func (i Cmp) Emit(w io.Writer) error { return line(w, "cmp %v, %v", i.A, i.B) }

type Sete struct{ Dst Reg }

func (i Sete) Emit(w io.Writer) error { return line(w, "sete %s", i.Dst) }

type Setne struct{ Dst Reg }

func (i Setne) Emit(w io.Writer) error { return line(w, "setne %s", i.Dst) }

type Setl struct{ Dst Reg }

func (i Setl) Emit(w io.Writer) error { return line(w, "setl %s", i.Dst) }

type Setle struct{ Dst Reg }

func (i Setle) Emit(w io.Writer) error { return line(w, "setle %s", i.Dst) }

type Movzx struct{ Dst Reg; Src Reg }

func (i Movzx) Emit(w io.Writer) error { return line(w, "movzx %s, %s", i.Dst, i.Src) }

type Ret struct{}

func (i Ret) Emit(w io.Writer) error { return line(w, "ret") }

// Arbitrary emits its Text verbatim, unindented and without a
// trailing adjustment — used for directives, labels (`Lfoo:`), jumps
// (`je Lfoo`) and calls (`call _name`), which either aren't indented
// the same way (labels) or carry a target this closed family doesn't
// otherwise model.
type Arbitrary struct{ Text string }

func (i Arbitrary) Emit(w io.Writer) error {
	_, err := fmt.Fprintln(w, i.Text)
	return err
}

// Label renders a bare label definition at column 0.
func Label(name string) Arbitrary { return Arbitrary{Text: name + ":"} }

// Jmp renders an unconditional jump, indented like other instructions.
func Jmp(label string) Arbitrary { return Arbitrary{Text: "  jmp " + label} }

// Je renders a conditional jump taken when ZF is set.
func Je(label string) Arbitrary { return Arbitrary{Text: "  je " + label} }

// Call renders a call to the implicit `_name` subroutine.
func Call(name string) Arbitrary { return Arbitrary{Text: "  call _" + name} }
