// expressions.go contains all the expression AST nodes. An expression
// node always leaves exactly one 8-byte value on the stack once the
// code generator lowers it.

package ast

// BinOpKind enumerates the binary operators that survive into the
// AST. Gt and Gte never appear here: the parser desugars them into Lt
// and Lte by swapping operands.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	Lt
	Lte
	Eq
	Neq
)

func (k BinOpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Eq:
		return "=="
	case Neq:
		return "!="
	default:
		return "?"
	}
}

// Num is an unsigned integer literal.
type Num struct {
	Value uint64
}

func (n Num) Accept(v ExprVisitor) any { return v.VisitNum(n) }

// Ident refers to a local variable by its symbol-table offset (a
// positive byte distance from RBP).
type Ident struct {
	Name   string
	Offset int
}

func (i Ident) Accept(v ExprVisitor) any { return v.VisitIdent(i) }

// Call invokes the implicit callee Name with its arguments, evaluated
// left to right. The node holds any number of arguments; the code
// generator rejects a call with more than six.
type Call struct {
	Name string
	Args []Expr
}

func (c Call) Accept(v ExprVisitor) any { return v.VisitCall(c) }

// BinOp applies Op to the result of Lhs and Rhs, both lowered before
// the operator's instruction sequence runs.
type BinOp struct {
	Op  BinOpKind
	Lhs Expr
	Rhs Expr
}

func (b BinOp) Accept(v ExprVisitor) any { return v.VisitBinOp(b) }

// Paren is a parenthesized expression, kept only to mirror source
// structure in tools like the AST printer; it lowers identically to
// its inner expression and emits no instructions of its own.
type Paren struct {
	Inner Expr
}

func (p Paren) Accept(v ExprVisitor) any { return v.VisitParen(p) }
