// interfaces.go contains the visitor interfaces that any code
// traversing the expression and statement AST must implement, and the
// Expr/Stmt interfaces every node implements to dispatch into them.
// This follows the teacher's visitor design pattern: behaviour (AST
// printing, code generation, bytecode lowering) is decoupled from the
// node types themselves.

package ast

// ExprVisitor is the interface for operating on all Expr AST nodes.
// Each Visit method corresponds to one expression variant named by
// the grammar.
type ExprVisitor interface {
	VisitNum(n Num) any
	VisitIdent(i Ident) any
	VisitCall(c Call) any
	VisitBinOp(b BinOp) any
	VisitParen(p Paren) any
}

// StmtVisitor is the interface for operating on all Stmt AST nodes.
type StmtVisitor interface {
	VisitExprStmt(s ExprStmt) any
	VisitAssign(s Assign) any
	VisitReturn(s Return) any
	VisitIf(s If) any
	VisitWhile(s While) any
	VisitBlock(s Block) any
}

// Expr is the base interface for all expression nodes. Every
// expression evaluates, at code-generation time, to exactly one
// 8-byte value left on top of the stack.
type Expr interface {
	Accept(v ExprVisitor) any
}

// Stmt is the base interface for all statement nodes. Statements
// never themselves produce a value consumed by their parent.
type Stmt interface {
	Accept(v StmtVisitor) any
}
