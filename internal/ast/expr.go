package ast

// Expr is an expression. Every expression carries the type the checker
// resolved for it.
type Expr interface {
	Initializer
	Type() *Type
	SetType(*Type)
	isExpr()
}

// Initializer is the right-hand side of a declarator: an Expr or an *InitList.
type Initializer interface {
	Node
	isInitializer()
}

type typed struct {
	Ty *Type
}

func (t *typed) Type() *Type {
	if t.Ty == nil {
		return Unknown()
	}
	return t.Ty
}

func (t *typed) SetType(ty *Type) { t.Ty = ty }

// LiteralKind distinguishes scalar from aggregate literals.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralArray
)

// LiteralExpr represents an integer literal or, after checking, a fully
// constant (possibly nested) array initializer.
// Example: "42", "{1, 2, {3}}" once folded
type LiteralExpr struct {
	typed
	Pos   Position
	Kind  LiteralKind
	Int   int32
	Elems []*LiteralExpr
}

// LValExpr represents a variable reference with optional subscripts
// Example: "a", "m[i][j]"
type LValExpr struct {
	typed
	Pos     Position
	Name    Ident
	Indices []Expr

	// Const holds the folded value when the reference names a scalar constant.
	Const *LiteralExpr
}

// CallExpr represents a function call
// Example: "putint(a + 1)"
type CallExpr struct {
	typed
	Pos    Position
	Callee Ident
	Args   []Expr
}

// BinaryOp is a binary operator token.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpLt  BinaryOp = "<"
	OpLe  BinaryOp = "<="
	OpGt  BinaryOp = ">"
	OpGe  BinaryOp = ">="
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
)

// IsComparison reports whether op yields a boolean from two ints.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpLt, OpLe, OpGt, OpGe, OpEq, OpNe:
		return true
	}
	return false
}

// IsLogical reports whether op is a short-circuit operator.
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// BinaryExpr represents a binary operation
// Example: "a * (b + 1)", "x < y && y < z"
type BinaryExpr struct {
	typed
	Pos   Position
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// UnaryOp is a prefix operator token.
type UnaryOp string

const (
	OpPlus UnaryOp = "+"
	OpNeg  UnaryOp = "-"
	OpNot  UnaryOp = "!"
)

// UnaryExpr represents a prefix operation
// Example: "-x", "!done"
type UnaryExpr struct {
	typed
	Pos     Position
	Op      UnaryOp
	Operand Expr
}

// InitList represents a braced initializer. After checking, Elems is shaped
// like the declared array type: each element is an Expr (scalar slot) or a
// nested *InitList (sub-array).
// Example: "{1, 2, {3, 4}}"
type InitList struct {
	Pos   Position
	Elems []Initializer
	Type  *Type
}

func (*LiteralExpr) isExpr() {}
func (*LValExpr) isExpr()    {}
func (*CallExpr) isExpr()    {}
func (*BinaryExpr) isExpr()  {}
func (*UnaryExpr) isExpr()   {}

func (*LiteralExpr) isInitializer() {}
func (*LValExpr) isInitializer()    {}
func (*CallExpr) isInitializer()    {}
func (*BinaryExpr) isInitializer()  {}
func (*UnaryExpr) isInitializer()   {}
func (*InitList) isInitializer()    {}

func (e *LiteralExpr) NodePos() Position { return e.Pos }
func (e *LValExpr) NodePos() Position    { return e.Pos }
func (e *CallExpr) NodePos() Position    { return e.Pos }
func (e *BinaryExpr) NodePos() Position  { return e.Pos }
func (e *UnaryExpr) NodePos() Position   { return e.Pos }
func (l *InitList) NodePos() Position    { return l.Pos }

// NewIntLiteral builds a checked integer literal.
func NewIntLiteral(pos Position, v int32) *LiteralExpr {
	lit := &LiteralExpr{Pos: pos, Kind: LiteralInt, Int: v}
	lit.Ty = Int()
	return lit
}

// NewArrayLiteral builds a checked array literal of type ty.
func NewArrayLiteral(pos Position, ty *Type, elems []*LiteralExpr) *LiteralExpr {
	lit := &LiteralExpr{Pos: pos, Kind: LiteralArray, Elems: elems}
	lit.Ty = ty
	return lit
}
