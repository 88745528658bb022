// code.go defines corvid's bytecode format: a debugging side channel
// for corvidtool's repl and disasm subcommands, never part of the
// x86-64 output corvidc produces. Adapted from the teacher's
// compiler.Bytecode/Opcode/Instructions, generalized with jump
// opcodes so control flow (If/While/Block) — which the teacher's
// bytecode backend never finished — actually works here.

package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Bytecode is a compiled program: a flat instruction stream plus the
// constant pool OP_CONSTANT indexes into.
type Bytecode struct {
	Instructions  Instructions
	ConstantsPool []any
}

type Opcode byte

type Instructions []byte

const (
	OP_CONSTANT Opcode = iota
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_EQ
	OP_NEQ
	OP_LT
	OP_LTE
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_POP
	OP_CALL
	OP_END
)

// OpCodeDefinition names an opcode and the byte width of each of its
// operands, following the teacher's definition-table approach.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*OpCodeDefinition{
	OP_CONSTANT:      {Name: "OP_CONSTANT", OperandWidths: []int{2}},
	OP_GET_LOCAL:     {Name: "OP_GET_LOCAL", OperandWidths: []int{2}},
	OP_SET_LOCAL:     {Name: "OP_SET_LOCAL", OperandWidths: []int{2}},
	OP_ADD:           {Name: "OP_ADD", OperandWidths: []int{}},
	OP_SUB:           {Name: "OP_SUB", OperandWidths: []int{}},
	OP_MUL:           {Name: "OP_MUL", OperandWidths: []int{}},
	OP_DIV:           {Name: "OP_DIV", OperandWidths: []int{}},
	OP_EQ:            {Name: "OP_EQ", OperandWidths: []int{}},
	OP_NEQ:           {Name: "OP_NEQ", OperandWidths: []int{}},
	OP_LT:            {Name: "OP_LT", OperandWidths: []int{}},
	OP_LTE:           {Name: "OP_LTE", OperandWidths: []int{}},
	OP_JUMP:          {Name: "OP_JUMP", OperandWidths: []int{2}},
	OP_JUMP_IF_FALSE: {Name: "OP_JUMP_IF_FALSE", OperandWidths: []int{2}},
	OP_POP:           {Name: "OP_POP", OperandWidths: []int{}},
	OP_CALL:          {Name: "OP_CALL", OperandWidths: []int{2, 1}},
	OP_END:           {Name: "OP_END", OperandWidths: []int{}},
}

func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

// MakeInstruction encodes op and its operands (each in Big-Endian
// order, widths per its OpCodeDefinition) into a single instruction.
func MakeInstruction(op Opcode, operands ...int) []byte {
	def, err := Get(op)
	if err != nil {
		return []byte{}
	}

	length := 1
	for _, w := range def.OperandWidths {
		length += w
	}

	instruction := make([]byte, length)
	instruction[0] = byte(op)

	offset := 1
	for i, o := range operands {
		width := def.OperandWidths[i]
		switch width {
		case 1:
			instruction[offset] = byte(o)
		case 2:
			binary.BigEndian.PutUint16(instruction[offset:], uint16(o))
		}
		offset += width
	}
	return instruction
}

// Disassemble renders ins as one mnemonic-plus-operands line per
// instruction, the format corvidtool's disasm subcommand prints.
func Disassemble(ins Instructions) string {
	out := ""
	ip := 0
	for ip < len(ins) {
		op := Opcode(ins[ip])
		def, err := Get(op)
		if err != nil {
			out += fmt.Sprintf("%04d ERROR: %s\n", ip, err)
			ip++
			continue
		}
		operands, read := readOperands(def, ins[ip+1:])
		out += fmt.Sprintf("%04d %s %v\n", ip, def.Name, operands)
		ip += 1 + read
	}
	return out
}

func readOperands(def *OpCodeDefinition, ins Instructions) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0
	for i, width := range def.OperandWidths {
		switch width {
		case 1:
			operands[i] = int(ins[offset])
		case 2:
			operands[i] = int(binary.BigEndian.Uint16(ins[offset:]))
		}
		offset += width
	}
	return operands, offset
}
