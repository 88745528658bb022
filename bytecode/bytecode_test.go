package bytecode

import (
	"reflect"
	"strings"
	"testing"

	"corvid/ast"
)

func TestMakeInstructionEncodesOperands(t *testing.T) {
	got := MakeInstruction(OP_CONSTANT, 65534)
	want := []byte{byte(OP_CONSTANT), 255, 254}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MakeInstruction() = %v, want %v", got, want)
	}
}

func TestDisassembleRendersMnemonics(t *testing.T) {
	ins := Instructions{}
	ins = append(ins, MakeInstruction(OP_CONSTANT, 0)...)
	ins = append(ins, MakeInstruction(OP_ADD)...)
	ins = append(ins, MakeInstruction(OP_END)...)

	out := Disassemble(ins)
	for _, want := range []string{"OP_CONSTANT", "OP_ADD", "OP_END"} {
		if !strings.Contains(out, want) {
			t.Errorf("Disassemble() missing %q:\n%s", want, out)
		}
	}
}

func compileBlock(t *testing.T, stmts []ast.Stmt) Bytecode {
	t.Helper()
	bc, err := NewASTCompiler().CompileAST(stmts)
	if err != nil {
		t.Fatalf("CompileAST() raised an error: %v", err)
	}
	return bc
}

func TestASTCompilerArithmetic(t *testing.T) {
	// return 2 + 3; — Return leaves its value on the stack rather than
	// popping it, unlike ExprStmt, so the VM can report it.
	stmts := []ast.Stmt{
		ast.Return{Expression: ast.BinOp{
			Op:  ast.Add,
			Lhs: ast.Num{Value: 2},
			Rhs: ast.Num{Value: 3},
		}},
	}
	bc := compileBlock(t, stmts)
	result, err := NewVM().Run(bc)
	if err != nil {
		t.Fatalf("Run() raised an error: %v", err)
	}
	if result != int64(5) {
		t.Errorf("result = %v, want 5", result)
	}
}

func TestASTCompilerIfTakesThenBranch(t *testing.T) {
	// if (1) { x = 10; } else { x = 20; } ; x
	stmts := []ast.Stmt{
		ast.If{
			Cond: ast.Num{Value: 1},
			Then: ast.Assign{LhsOffset: 0, Rhs: ast.Num{Value: 10}},
			Else: ast.Assign{LhsOffset: 0, Rhs: ast.Num{Value: 20}},
		},
		ast.Return{Expression: ast.Ident{Name: "x", Offset: 0}},
	}
	bc := compileBlock(t, stmts)
	result, err := NewVM().Run(bc)
	if err != nil {
		t.Fatalf("Run() raised an error: %v", err)
	}
	if result != int64(10) {
		t.Errorf("result = %v, want 10 (then branch)", result)
	}
}

func TestASTCompilerIfTakesElseBranch(t *testing.T) {
	stmts := []ast.Stmt{
		ast.If{
			Cond: ast.Num{Value: 0},
			Then: ast.Assign{LhsOffset: 0, Rhs: ast.Num{Value: 10}},
			Else: ast.Assign{LhsOffset: 0, Rhs: ast.Num{Value: 20}},
		},
		ast.Return{Expression: ast.Ident{Name: "x", Offset: 0}},
	}
	bc := compileBlock(t, stmts)
	result, err := NewVM().Run(bc)
	if err != nil {
		t.Fatalf("Run() raised an error: %v", err)
	}
	if result != int64(20) {
		t.Errorf("result = %v, want 20 (else branch)", result)
	}
}

func TestASTCompilerWhileLoop(t *testing.T) {
	// x = 0; while (x < 3) { x = x + 1; }; x
	stmts := []ast.Stmt{
		ast.Assign{LhsOffset: 0, Rhs: ast.Num{Value: 0}},
		ast.While{
			Cond: ast.BinOp{Op: ast.Lt, Lhs: ast.Ident{Name: "x", Offset: 0}, Rhs: ast.Num{Value: 3}},
			Body: ast.Assign{
				LhsOffset: 0,
				Rhs:       ast.BinOp{Op: ast.Add, Lhs: ast.Ident{Name: "x", Offset: 0}, Rhs: ast.Num{Value: 1}},
			},
		},
		ast.Return{Expression: ast.Ident{Name: "x", Offset: 0}},
	}
	bc := compileBlock(t, stmts)
	result, err := NewVM().Run(bc)
	if err != nil {
		t.Fatalf("Run() raised an error: %v", err)
	}
	if result != int64(3) {
		t.Errorf("result = %v, want 3", result)
	}
}
