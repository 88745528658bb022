// compiler.go compiles an AST into Bytecode, for corvidtool's repl
// and disasm subcommands only — never part of corvidc's x86-64
// output. This is a direct descendant of the teacher's
// compiler.ASTCompiler: same emit/addConstant/patch shape, but with
// VisitBlockStmt/VisitIfStmt/VisitWhileStmt actually implemented
// (via OP_JUMP/OP_JUMP_IF_FALSE) instead of panicking "not yet
// supported", since this language's spec requires control flow the
// teacher's bytecode backend never finished.

package bytecode

import (
	"encoding/binary"

	"corvid/ast"
	"corvid/internal/diag"
)

// ASTCompiler walks a program's statements, emitting Bytecode. Like
// the teacher's version, a single instance is not meant to be reused
// across unrelated programs.
type ASTCompiler struct {
	bytecode Bytecode
}

func NewASTCompiler() *ASTCompiler {
	return &ASTCompiler{}
}

func (ac *ASTCompiler) emit(op Opcode, operands ...int) int {
	pos := len(ac.bytecode.Instructions)
	ac.bytecode.Instructions = append(ac.bytecode.Instructions, MakeInstruction(op, operands...)...)
	return pos
}

func (ac *ASTCompiler) addConstant(v any) int {
	ac.bytecode.ConstantsPool = append(ac.bytecode.ConstantsPool, v)
	return len(ac.bytecode.ConstantsPool) - 1
}

// patchJump overwrites the 2-byte operand of the jump instruction at
// pos (opcode at pos, operand at pos+1) with target, once the target
// address is known.
func (ac *ASTCompiler) patchJump(pos, target int) {
	binary.BigEndian.PutUint16(ac.bytecode.Instructions[pos+1:], uint16(target))
}

func (ac *ASTCompiler) here() int {
	return len(ac.bytecode.Instructions)
}

// CompileAST compiles stmts to Bytecode, converting any internal
// panic (raised via diag.Abort for a malformed node) into a returned
// error rather than letting it escape — the teacher's
// panic/recover-at-the-boundary idiom, reused here with the shared
// diag.Signal mechanism instead of a package-local one.
func (ac *ASTCompiler) CompileAST(stmts []ast.Stmt) (b Bytecode, err error) {
	defer diag.Recover(&err)
	for _, s := range stmts {
		s.Accept(ac)
	}
	ac.emit(OP_END)
	return ac.bytecode, nil
}

func (ac *ASTCompiler) VisitNum(n ast.Num) any {
	idx := ac.addConstant(int64(n.Value))
	ac.emit(OP_CONSTANT, idx)
	return nil
}

// localSlot turns a byte offset (0, 8, 16, ...) into the dense local
// index the bytecode VM's scratch slice uses.
func localSlot(offset int) int { return offset / 8 }

func (ac *ASTCompiler) VisitIdent(i ast.Ident) any {
	ac.emit(OP_GET_LOCAL, localSlot(i.Offset))
	return nil
}

func (ac *ASTCompiler) VisitCall(c ast.Call) any {
	for _, arg := range c.Args {
		arg.Accept(ac)
	}
	nameIdx := ac.addConstant(c.Name)
	ac.emit(OP_CALL, nameIdx, len(c.Args))
	return nil
}

func (ac *ASTCompiler) VisitParen(p ast.Paren) any {
	return p.Inner.Accept(ac)
}

func (ac *ASTCompiler) VisitBinOp(b ast.BinOp) any {
	b.Lhs.Accept(ac)
	b.Rhs.Accept(ac)
	switch b.Op {
	case ast.Add:
		ac.emit(OP_ADD)
	case ast.Sub:
		ac.emit(OP_SUB)
	case ast.Mul:
		ac.emit(OP_MUL)
	case ast.Div:
		ac.emit(OP_DIV)
	case ast.Eq:
		ac.emit(OP_EQ)
	case ast.Neq:
		ac.emit(OP_NEQ)
	case ast.Lt:
		ac.emit(OP_LT)
	case ast.Lte:
		ac.emit(OP_LTE)
	default:
		diag.Abort(DeveloperError{Message: "unhandled BinOpKind in bytecode compiler"})
	}
	return nil
}

func (ac *ASTCompiler) VisitExprStmt(s ast.ExprStmt) any {
	s.Expression.Accept(ac)
	ac.emit(OP_POP)
	return nil
}

func (ac *ASTCompiler) VisitAssign(s ast.Assign) any {
	s.Rhs.Accept(ac)
	ac.emit(OP_SET_LOCAL, localSlot(s.LhsOffset))
	return nil
}

// VisitReturn leaves its value on the stack rather than emitting a
// dedicated return opcode: this bytecode only ever models one flat
// instruction stream for display/preview purposes, not a callable
// subroutine, so there is nothing to return "from".
func (ac *ASTCompiler) VisitReturn(s ast.Return) any {
	s.Expression.Accept(ac)
	return nil
}

func (ac *ASTCompiler) VisitIf(s ast.If) any {
	s.Cond.Accept(ac)
	jumpIfFalse := ac.emit(OP_JUMP_IF_FALSE, 0)

	s.Then.Accept(ac)

	if s.Else == nil {
		ac.patchJump(jumpIfFalse, ac.here())
		return nil
	}

	jump := ac.emit(OP_JUMP, 0)
	ac.patchJump(jumpIfFalse, ac.here())
	s.Else.Accept(ac)
	ac.patchJump(jump, ac.here())
	return nil
}

func (ac *ASTCompiler) VisitWhile(s ast.While) any {
	loopStart := ac.here()
	s.Cond.Accept(ac)
	jumpIfFalse := ac.emit(OP_JUMP_IF_FALSE, 0)

	s.Body.Accept(ac)
	ac.emit(OP_JUMP, loopStart)

	ac.patchJump(jumpIfFalse, ac.here())
	return nil
}

func (ac *ASTCompiler) VisitBlock(s ast.Block) any {
	for _, stmt := range s.Stmts {
		stmt.Accept(ac)
	}
	return nil
}
