// vm.go runs Bytecode for corvidtool's repl and disasm preview —
// never for corvidc's actual compiled output, which always targets
// x86-64. Adapted from the teacher's vm.VM fetch/decode/execute loop.

package bytecode

import (
	"encoding/binary"
)

const localSlots = 64

// VM executes one Bytecode program and reports the value left on top
// of the stack when it halts, for the repl's "show me what this
// expression evaluates to" preview.
type VM struct {
	stack  Stack
	locals [localSlots]any
}

func NewVM() *VM {
	return &VM{}
}

func (vm *VM) Run(bc Bytecode) (any, error) {
	ip := 0
	for ip < len(bc.Instructions) {
		op := Opcode(bc.Instructions[ip])
		switch op {
		case OP_END:
			return vm.top()

		case OP_CONSTANT:
			idx := binary.BigEndian.Uint16(bc.Instructions[ip+1:])
			vm.stack.Push(bc.ConstantsPool[idx])
			ip += 3

		case OP_GET_LOCAL:
			idx := binary.BigEndian.Uint16(bc.Instructions[ip+1:])
			vm.stack.Push(vm.locals[idx])
			ip += 3

		case OP_SET_LOCAL:
			idx := binary.BigEndian.Uint16(bc.Instructions[ip+1:])
			v, err := vm.stack.Pop()
			if err != nil {
				return nil, err
			}
			vm.locals[idx] = v
			ip += 3

		case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_EQ, OP_NEQ, OP_LT, OP_LTE:
			if err := vm.binOp(op); err != nil {
				return nil, err
			}
			ip++

		case OP_JUMP:
			target := binary.BigEndian.Uint16(bc.Instructions[ip+1:])
			ip = int(target)

		case OP_JUMP_IF_FALSE:
			target := binary.BigEndian.Uint16(bc.Instructions[ip+1:])
			v, err := vm.stack.Pop()
			if err != nil {
				return nil, err
			}
			if isFalsey(v) {
				ip = int(target)
			} else {
				ip += 3
			}

		case OP_POP:
			if _, err := vm.stack.Pop(); err != nil {
				return nil, err
			}
			ip++

		case OP_CALL:
			nameIdx := binary.BigEndian.Uint16(bc.Instructions[ip+1:])
			argc := int(bc.Instructions[ip+3])
			name, _ := bc.ConstantsPool[nameIdx].(string)
			if err := vm.call(name, argc); err != nil {
				return nil, err
			}
			ip += 4

		default:
			return nil, DeveloperError{Message: "unknown opcode in bytecode stream"}
		}
	}
	return vm.top()
}

func (vm *VM) top() (any, error) {
	if vm.stack.Len() == 0 {
		return nil, nil
	}
	return vm.stack.Peek()
}

func (vm *VM) binOp(op Opcode) error {
	rhs, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	lhs, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	a, ok := lhs.(int64)
	if !ok {
		return SemanticError{Message: "left operand is not a number"}
	}
	b, ok := rhs.(int64)
	if !ok {
		return SemanticError{Message: "right operand is not a number"}
	}

	switch op {
	case OP_ADD:
		vm.stack.Push(a + b)
	case OP_SUB:
		vm.stack.Push(a - b)
	case OP_MUL:
		vm.stack.Push(a * b)
	case OP_DIV:
		if b == 0 {
			return SemanticError{Message: "division by zero"}
		}
		vm.stack.Push(a / b)
	case OP_EQ:
		vm.stack.Push(boolToInt(a == b))
	case OP_NEQ:
		vm.stack.Push(boolToInt(a != b))
	case OP_LT:
		vm.stack.Push(boolToInt(a < b))
	case OP_LTE:
		vm.stack.Push(boolToInt(a <= b))
	}
	return nil
}

// call has no callee to actually invoke — this bytecode is a flat
// preview of one program's own instructions, not a linked binary —
// so it pops the arguments pushed for the call and leaves a zero
// placeholder, matching the "undefined behavior, diagnostics only"
// status calls to unknown functions have outside of corvidc's real
// code generator.
func (vm *VM) call(name string, argc int) error {
	for i := 0; i < argc; i++ {
		if _, err := vm.stack.Pop(); err != nil {
			return err
		}
	}
	vm.stack.Push(int64(0))
	return nil
}

func isFalsey(v any) bool {
	n, ok := v.(int64)
	return ok && n == 0
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
