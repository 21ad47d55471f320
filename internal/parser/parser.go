package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/tu10ng/racoon/grammar"
	"github.com/tu10ng/racoon/internal/ast"
)

// ParseError is a syntax error with the position it was detected at.
type ParseError struct {
	Message  string
	Position ast.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Position.Filename, e.Position.Line, e.Position.Column, e.Message)
}

func ParseFile(path string) (*ast.Program, []ParseError) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, []ParseError{{Message: fmt.Sprintf("failed to read file: %v", err), Position: ast.Position{Filename: path}}}
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source and converts it to an ast.Program. The program is
// nil whenever errors are returned. Every invalid character span is reported,
// and parsing carries on over the remaining tokens so later errors are found
// too.
func ParseSource(sourceName string, source string) (*ast.Program, []ParseError) {
	errs, err := lexErrors(sourceName, source)
	if err != nil {
		return nil, []ParseError{toParseError(sourceName, err)}
	}

	unit, err := grammar.ParseString(sourceName, source)
	if err != nil {
		return nil, append(errs, toParseError(sourceName, err))
	}

	c := &converter{errors: errs}
	program := c.compUnit(unit)
	if len(c.errors) > 0 {
		return nil, c.errors
	}
	return program, nil
}

func lexErrors(sourceName, source string) ([]ParseError, error) {
	spans, err := grammar.ScanInvalid(sourceName, source)
	if err != nil {
		return nil, err
	}
	errs := make([]ParseError, 0, len(spans))
	for _, span := range spans {
		errs = append(errs, ParseError{
			Message:  fmt.Sprintf("invalid character sequence %q", span.Text),
			Position: position(span.Pos),
		})
	}
	return errs, nil
}

func toParseError(sourceName string, err error) ParseError {
	var pe participle.Error
	if errors.As(err, &pe) {
		return ParseError{Message: pe.Message(), Position: position(pe.Position())}
	}
	return ParseError{Message: err.Error(), Position: ast.Position{Filename: sourceName, Line: 1, Column: 1}}
}

func position(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

type converter struct {
	errors []ParseError
}

func (c *converter) errorf(pos lexer.Position, format string, args ...any) {
	c.errors = append(c.errors, ParseError{Message: fmt.Sprintf(format, args...), Position: position(pos)})
}

func (c *converter) compUnit(unit *grammar.CompUnit) *ast.Program {
	program := &ast.Program{Pos: position(unit.Pos)}
	for _, item := range unit.Items {
		switch {
		case item.Decl != nil:
			program.Items = append(program.Items, c.decl(item.Decl))
		case item.Func != nil:
			program.Items = append(program.Items, c.funcDef(item.Func))
		}
	}
	return program
}

func (c *converter) funcDef(fn *grammar.FuncDef) *ast.FuncDecl {
	ret := ast.Int()
	if fn.RetType == "void" {
		ret = ast.Void()
	}
	decl := &ast.FuncDecl{
		Pos:     position(fn.Pos),
		EndPos:  position(fn.EndPos),
		Name:    ast.Ident{Pos: position(fn.Name.Pos), Value: fn.Name.Value},
		RetType: ret,
		Body:    c.block(fn.Body),
	}
	for _, p := range fn.Params {
		decl.Params = append(decl.Params, c.param(p))
	}
	return decl
}

// param records array parameters as a pointer to an unsized placeholder; the
// checker folds the trailing dimensions.
func (c *converter) param(p *grammar.FuncParam) *ast.Param {
	param := &ast.Param{
		Pos:  position(p.Pos),
		Name: ast.Ident{Pos: position(p.Name.Pos), Value: p.Name.Value},
		Type: ast.Int(),
	}
	if !p.Array && len(p.Dims) > 0 {
		c.errorf(p.Pos, "array parameter %q must start with []", p.Name.Value)
		return param
	}
	if p.Array {
		param.Type = ast.PtrTo(ast.Int())
		for _, d := range p.Dims {
			param.Dims = append(param.Dims, c.addExp(d))
		}
	}
	return param
}

func (c *converter) decl(d *grammar.Decl) *ast.VarDecl {
	decl := &ast.VarDecl{Pos: position(d.Pos), Const: d.Const}
	for _, def := range d.Defs {
		v := &ast.VarDef{
			Pos:  position(def.Pos),
			Name: ast.Ident{Pos: position(def.Pos), Value: def.Name},
		}
		for _, dim := range def.Dims {
			v.Dims = append(v.Dims, c.addExp(dim))
		}
		if def.Init != nil {
			v.Init = c.initVal(def.Init)
		} else if d.Const {
			c.errorf(def.Pos, "constant %q must be initialized", def.Name)
		}
		decl.Defs = append(decl.Defs, v)
	}
	return decl
}

func (c *converter) initVal(iv *grammar.InitVal) ast.Initializer {
	if !iv.Brace {
		return c.addExp(iv.Exp)
	}
	list := &ast.InitList{Pos: position(iv.Pos)}
	for _, el := range iv.List {
		list.Elems = append(list.Elems, c.initVal(el))
	}
	return list
}

func (c *converter) block(b *grammar.Block) *ast.Block {
	block := &ast.Block{Pos: position(b.Pos), EndPos: position(b.EndPos)}
	for _, item := range b.Items {
		if item.Decl != nil {
			block.Items = append(block.Items, c.decl(item.Decl))
			continue
		}
		block.Items = append(block.Items, c.stmt(item.Stmt))
	}
	return block
}

func (c *converter) stmt(s *grammar.Stmt) ast.Stmt {
	pos := position(s.Pos)
	switch {
	case s.Block != nil:
		return c.block(s.Block)
	case s.If != nil:
		out := &ast.IfStmt{Pos: pos, Cond: c.lOrExp(s.If.Cond), Then: c.stmt(s.If.Then)}
		if s.If.Else != nil {
			out.Else = c.stmt(s.If.Else)
		}
		return out
	case s.While != nil:
		return &ast.WhileStmt{Pos: pos, Cond: c.lOrExp(s.While.Cond), Body: c.stmt(s.While.Body)}
	case s.Break:
		return &ast.BreakStmt{Pos: pos}
	case s.Continue:
		return &ast.ContinueStmt{Pos: pos}
	case s.Return != nil:
		out := &ast.ReturnStmt{Pos: pos}
		if s.Return.Value != nil {
			out.Value = c.addExp(s.Return.Value)
		}
		return out
	case s.Expr != nil:
		return c.exprStmt(s.Expr)
	}
	return &ast.ExprStmt{Pos: pos}
}

func (c *converter) exprStmt(s *grammar.ExprStmt) ast.Stmt {
	pos := position(s.Pos)
	if s.Expr == nil {
		if s.Assign != nil {
			c.errorf(s.Pos, "assignment without a target")
		}
		return &ast.ExprStmt{Pos: pos}
	}
	lhs := c.addExp(s.Expr)
	if s.Assign == nil {
		return &ast.ExprStmt{Pos: pos, Expr: lhs}
	}
	target, ok := lhs.(*ast.LValExpr)
	if !ok {
		c.errorf(s.Pos, "left side of assignment is not assignable")
		return &ast.ExprStmt{Pos: pos, Expr: lhs}
	}
	return &ast.AssignStmt{Pos: pos, Target: target, Value: c.addExp(s.Assign)}
}

func (c *converter) lOrExp(e *grammar.LOrExp) ast.Expr {
	out := c.lAndExp(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryExpr{Pos: position(r.Pos), Op: ast.OpOr, Left: out, Right: c.lAndExp(r)}
	}
	return out
}

func (c *converter) lAndExp(e *grammar.LAndExp) ast.Expr {
	out := c.eqExp(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryExpr{Pos: position(r.Pos), Op: ast.OpAnd, Left: out, Right: c.eqExp(r)}
	}
	return out
}

func (c *converter) eqExp(e *grammar.EqExp) ast.Expr {
	out := c.relExp(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryExpr{Pos: position(r.Pos), Op: ast.BinaryOp(r.Op), Left: out, Right: c.relExp(r.Right)}
	}
	return out
}

func (c *converter) relExp(e *grammar.RelExp) ast.Expr {
	out := c.addExp(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryExpr{Pos: position(r.Pos), Op: ast.BinaryOp(r.Op), Left: out, Right: c.addExp(r.Right)}
	}
	return out
}

func (c *converter) addExp(e *grammar.AddExp) ast.Expr {
	out := c.mulExp(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryExpr{Pos: position(r.Pos), Op: ast.BinaryOp(r.Op), Left: out, Right: c.mulExp(r.Right)}
	}
	return out
}

func (c *converter) mulExp(e *grammar.MulExp) ast.Expr {
	out := c.unaryExp(e.Left)
	for _, r := range e.Rest {
		out = &ast.BinaryExpr{Pos: position(r.Pos), Op: ast.BinaryOp(r.Op), Left: out, Right: c.unaryExp(r.Right)}
	}
	return out
}

func (c *converter) unaryExp(e *grammar.UnaryExp) ast.Expr {
	if e.Primary != nil {
		return c.primaryExp(e.Primary)
	}
	return &ast.UnaryExpr{Pos: position(e.Pos), Op: ast.UnaryOp(e.Op), Operand: c.unaryExp(e.Operand)}
}

func (c *converter) primaryExp(e *grammar.PrimaryExp) ast.Expr {
	pos := position(e.Pos)
	switch {
	case e.Paren != nil:
		return c.lOrExp(e.Paren)
	case e.Call != nil:
		call := &ast.CallExpr{Pos: pos, Callee: ast.Ident{Pos: pos, Value: e.Call.Name}}
		for _, a := range e.Call.Args {
			call.Args = append(call.Args, c.addExp(a))
		}
		return call
	case e.LVal != nil:
		lval := &ast.LValExpr{Pos: pos, Name: ast.Ident{Pos: pos, Value: e.LVal.Name}}
		for _, idx := range e.LVal.Indices {
			lval.Indices = append(lval.Indices, c.addExp(idx))
		}
		return lval
	}
	return c.number(e.Pos, e.Number)
}

// number accepts anything that fits in 32 bits, signed or not, so that
// -2147483648 can be written as a negated literal.
func (c *converter) number(pos lexer.Position, text string) ast.Expr {
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil || v > math.MaxUint32 {
		c.errorf(pos, "integer literal %s out of range", text)
		return ast.NewIntLiteral(position(pos), 0)
	}
	return ast.NewIntLiteral(position(pos), int32(uint32(v)))
}
