package grammar

import "github.com/alecthomas/participle/v2/lexer"

// CompUnit is the root of a SysY source file.
type CompUnit struct {
	Pos   lexer.Position
	Items []*TopLevel `@@*`
}

// TopLevel is a declaration statement or a function definition. Both may
// start with "int Ident", so the declaration is tried first and abandoned at
// the opening parenthesis of a function.
type TopLevel struct {
	Pos  lexer.Position
	Decl *Decl    `  @@`
	Func *FuncDef `| @@`
}

// PosIdent is an identifier that keeps its own position, for names that do
// not start the production they belong to.
type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type FuncDef struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	RetType string       `@( "int" | "void" )`
	Name    PosIdent     `@@`
	Params  []*FuncParam `"(" ( @@ ( "," @@ )* )? ")"`
	Body    *Block       `@@`
}

type FuncParam struct {
	Pos   lexer.Position
	Name  PosIdent  `"int" @@`
	Array bool      `@( "[" "]" )?`
	Dims  []*AddExp `( "[" @@ "]" )*`
}

type Decl struct {
	Pos   lexer.Position
	Const bool      `@"const"? "int"`
	Defs  []*VarDef `@@ ( "," @@ )* ";"`
}

type VarDef struct {
	Pos  lexer.Position
	Name string    `@Ident`
	Dims []*AddExp `( "[" @@ "]" )*`
	Init *InitVal  `( "=" @@ )?`
}

type InitVal struct {
	Pos   lexer.Position
	Exp   *AddExp    `  @@`
	Brace bool       `| @"{"`
	List  []*InitVal `  ( @@ ( "," @@ )* )? "}"`
}

type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Items  []*BlockItem `"{" @@* "}"`
}

type BlockItem struct {
	Pos  lexer.Position
	Decl *Decl `  @@`
	Stmt *Stmt `| @@`
}

type Stmt struct {
	Pos      lexer.Position
	Block    *Block      `  @@`
	If       *IfStmt     `| @@`
	While    *WhileStmt  `| @@`
	Break    bool        `| @"break" ";"`
	Continue bool        `| @"continue" ";"`
	Return   *ReturnStmt `| @@`
	Expr     *ExprStmt   `| @@`
}

type IfStmt struct {
	Pos  lexer.Position
	Cond *LOrExp `"if" "(" @@ ")"`
	Then *Stmt   `@@`
	Else *Stmt   `( "else" @@ )?`
}

type WhileStmt struct {
	Pos  lexer.Position
	Cond *LOrExp `"while" "(" @@ ")"`
	Body *Stmt   `@@`
}

type ReturnStmt struct {
	Pos   lexer.Position
	Value *AddExp `"return" @@? ";"`
}

// ExprStmt covers both "Exp;" and "LVal = Exp;". The parser checks that the
// left side of an assignment is a plain lvalue.
type ExprStmt struct {
	Pos    lexer.Position
	Expr   *AddExp `@@?`
	Assign *AddExp `( "=" @@ )? ";"`
}

type LOrExp struct {
	Pos  lexer.Position
	Left *LAndExp   `@@`
	Rest []*LAndExp `( "||" @@ )*`
}

type LAndExp struct {
	Pos  lexer.Position
	Left *EqExp   `@@`
	Rest []*EqExp `( "&&" @@ )*`
}

type EqExp struct {
	Pos  lexer.Position
	Left *RelExp `@@`
	Rest []*EqOp `@@*`
}

type EqOp struct {
	Pos   lexer.Position
	Op    string  `@( "==" | "!=" )`
	Right *RelExp `@@`
}

type RelExp struct {
	Pos  lexer.Position
	Left *AddExp  `@@`
	Rest []*RelOp `@@*`
}

type RelOp struct {
	Pos   lexer.Position
	Op    string  `@( "<=" | ">=" | "<" | ">" )`
	Right *AddExp `@@`
}

type AddExp struct {
	Pos  lexer.Position
	Left *MulExp  `@@`
	Rest []*AddOp `@@*`
}

type AddOp struct {
	Pos   lexer.Position
	Op    string  `@( "+" | "-" )`
	Right *MulExp `@@`
}

type MulExp struct {
	Pos  lexer.Position
	Left *UnaryExp `@@`
	Rest []*MulOp  `@@*`
}

type MulOp struct {
	Pos   lexer.Position
	Op    string    `@( "*" | "/" | "%" )`
	Right *UnaryExp `@@`
}

type UnaryExp struct {
	Pos     lexer.Position
	Op      string      `  @( "+" | "-" | "!" )`
	Operand *UnaryExp   `  @@`
	Primary *PrimaryExp `| @@`
}

type PrimaryExp struct {
	Pos    lexer.Position
	Paren  *LOrExp  `  "(" @@ ")"`
	Call   *CallExp `| @@`
	LVal   *LVal    `| @@`
	Number string   `| @Int`
}

type CallExp struct {
	Pos  lexer.Position
	Name string    `@Ident "("`
	Args []*AddExp `( @@ ( "," @@ )* )? ")"`
}

type LVal struct {
	Pos     lexer.Position
	Name    string    `@Ident`
	Indices []*AddExp `( "[" @@ "]" )*`
}
