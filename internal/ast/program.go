package ast

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Node is implemented by every syntax tree node.
type Node interface {
	NodePos() Position
	String() string
}

// Program represents a whole SysY compilation unit (the entire source file)
// Example: "const int N = 4; int a[N]; int main() { return a[0]; }"
type Program struct {
	Pos   Position
	Items []Item
}

// Item is a top-level declaration: a function definition or a declaration statement.
type Item interface {
	Node
	isItem()
}

// FuncDecl represents a function definition
// Example: "int add(int a, int b) { return a + b; }"
type FuncDecl struct {
	Pos     Position
	EndPos  Position
	Name    Ident
	RetType *Type
	Params  []*Param
	Body    *Block

	// Ty is the function type, filled in by the checker.
	Ty *Type
}

// Param represents a function parameter
// Example: "int n", "int a[]", "int m[][4]"
type Param struct {
	Pos  Position
	Name Ident
	Type *Type
	// Dims holds the trailing dimensions of an array parameter ("[4]" in "m[][4]").
	Dims []Expr
}

// VarDecl represents a declaration statement, global or local
// Example: "const int a = 1, b[2] = {1, 2};"
type VarDecl struct {
	Pos    Position
	EndPos Position
	Const  bool
	Defs   []*VarDef
}

// VarDef represents a single declarator of a VarDecl
// Example: "b[2] = {1, 2}"
type VarDef struct {
	Pos  Position
	Name Ident
	// Dims holds the raw dimension expressions. The checker folds them into Type.
	Dims []Expr
	Init Initializer
	Type *Type

	// ConstInit is set by the checker when the initializer is a compile-time
	// constant (always for const declarations and globals).
	ConstInit *LiteralExpr
}

// Ident represents any identifier like variable and function names
// Example: "main", "n", "buf"
type Ident struct {
	Pos   Position
	Value string
}

func (*FuncDecl) isItem() {}
func (*VarDecl) isItem()  {}

func (p *Program) NodePos() Position  { return p.Pos }
func (f *FuncDecl) NodePos() Position { return f.Pos }
func (p *Param) NodePos() Position    { return p.Pos }
func (d *VarDecl) NodePos() Position  { return d.Pos }
func (d *VarDef) NodePos() Position   { return d.Pos }
func (i *Ident) NodePos() Position    { return i.Pos }
