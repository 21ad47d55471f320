package ast

// BlockItem is anything that may appear between the braces of a Block.
type BlockItem interface {
	Node
	isBlockItem()
}

// Stmt is a statement.
type Stmt interface {
	BlockItem
	isStmt()
}

// Block represents a braced list of declarations and statements
// Example: "{ int x = 1; x = x + 1; }"
type Block struct {
	Pos    Position
	EndPos Position
	Items  []BlockItem
}

// AssignStmt represents an assignment to an lvalue
// Example: "a[i] = a[i - 1] + 1;"
type AssignStmt struct {
	Pos    Position
	Target *LValExpr
	Value  Expr
}

// ExprStmt represents an expression evaluated for its side effects. Expr is
// nil for the empty statement ";".
// Example: "putint(x);"
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

// IfStmt represents a conditional with an optional else arm
// Example: "if (a < b) return a; else return b;"
type IfStmt struct {
	Pos  Position
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt represents a pre-tested loop
// Example: "while (i < n) { i = i + 1; }"
type WhileStmt struct {
	Pos  Position
	Cond Expr
	Body Stmt
}

// BreakStmt represents "break;"
type BreakStmt struct {
	Pos Position
}

// ContinueStmt represents "continue;"
type ContinueStmt struct {
	Pos Position
}

// ReturnStmt represents a return with an optional value
// Example: "return 0;"
type ReturnStmt struct {
	Pos   Position
	Value Expr
}

func (*Block) isBlockItem()        {}
func (*AssignStmt) isBlockItem()   {}
func (*ExprStmt) isBlockItem()     {}
func (*IfStmt) isBlockItem()       {}
func (*WhileStmt) isBlockItem()    {}
func (*BreakStmt) isBlockItem()    {}
func (*ContinueStmt) isBlockItem() {}
func (*ReturnStmt) isBlockItem()   {}
func (*VarDecl) isBlockItem()      {}

func (*Block) isStmt()        {}
func (*AssignStmt) isStmt()   {}
func (*ExprStmt) isStmt()     {}
func (*IfStmt) isStmt()       {}
func (*WhileStmt) isStmt()    {}
func (*BreakStmt) isStmt()    {}
func (*ContinueStmt) isStmt() {}
func (*ReturnStmt) isStmt()   {}

func (b *Block) NodePos() Position        { return b.Pos }
func (s *AssignStmt) NodePos() Position   { return s.Pos }
func (s *ExprStmt) NodePos() Position     { return s.Pos }
func (s *IfStmt) NodePos() Position       { return s.Pos }
func (s *WhileStmt) NodePos() Position    { return s.Pos }
func (s *BreakStmt) NodePos() Position    { return s.Pos }
func (s *ContinueStmt) NodePos() Position { return s.Pos }
func (s *ReturnStmt) NodePos() Position   { return s.Pos }
