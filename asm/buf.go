// buf.go implements AsmBuf, the ordered sink of emittable instructions.
// It exists solely to decouple generation order from output and to
// make golden-assembly comparisons in tests straightforward, mirroring
// the teacher's AsmBuf-as-a-Vec-of-boxed-instructions design.

package asm

import (
	"io"
	"os"
	"strings"
)

// AsmBuf is an ordered, appendable buffer of Instructions.
type AsmBuf struct {
	instrs []Instruction
}

// NewBuf returns an empty AsmBuf.
func NewBuf() *AsmBuf {
	return &AsmBuf{}
}

// Push appends a single instruction to the end of the buffer.
func (b *AsmBuf) Push(i Instruction) {
	b.instrs = append(b.instrs, i)
}

// Append concatenates other's instructions onto b, in order, leaving
// other empty — mirroring the teacher's "drain into the caller" move
// semantics without needing Go generics to express ownership.
func (b *AsmBuf) Append(other *AsmBuf) {
	b.instrs = append(b.instrs, other.instrs...)
	other.instrs = nil
}

// Len reports how many instructions are buffered.
func (b *AsmBuf) Len() int { return len(b.instrs) }

// LabelCount reports how many buffered instructions are label
// definitions (an Arbitrary whose rendered text is a bare `name:`,
// as opposed to a directive, jump, or call) — used by corvidtool's
// `asm -labels` to report label density.
func (b *AsmBuf) LabelCount() int {
	n := 0
	for _, i := range b.instrs {
		if a, ok := i.(Arbitrary); ok && strings.HasSuffix(a.Text, ":") {
			n++
		}
	}
	return n
}

// Output writes every buffered instruction, in order, to w.
func (b *AsmBuf) Output(w io.Writer) error {
	for _, i := range b.instrs {
		if err := i.Emit(w); err != nil {
			return err
		}
	}
	return nil
}

// OutputStdout writes the buffer to standard output.
func (b *AsmBuf) OutputStdout() error {
	return b.Output(os.Stdout)
}

// OutputFile writes the buffer to the file at path, creating or
// truncating it.
func (b *AsmBuf) OutputFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.Output(f)
}
