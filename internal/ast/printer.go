package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for i, item := range p.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(item.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (f *FuncDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s %s(%s) %s", f.RetType, f.Name.Value, strings.Join(params, ", "), f.Body)
}

func (p *Param) String() string {
	if p.Type.Is(PtrType) {
		dims := ""
		for _, d := range p.Type.Elem.Dims() {
			dims += fmt.Sprintf("[%d]", d)
		}
		return fmt.Sprintf("int %s[]%s", p.Name.Value, dims)
	}
	return fmt.Sprintf("int %s", p.Name.Value)
}

func (d *VarDecl) String() string {
	defs := make([]string, len(d.Defs))
	for i, def := range d.Defs {
		defs[i] = def.String()
	}
	prefix := "int "
	if d.Const {
		prefix = "const int "
	}
	return prefix + strings.Join(defs, ", ") + ";"
}

func (d *VarDef) String() string {
	var b strings.Builder
	b.WriteString(d.Name.Value)
	if d.Type.Is(ArrayType) {
		for _, dim := range d.Type.Dims() {
			fmt.Fprintf(&b, "[%d]", dim)
		}
	} else {
		for _, dim := range d.Dims {
			fmt.Fprintf(&b, "[%s]", dim)
		}
	}
	switch {
	case d.ConstInit != nil:
		b.WriteString(" = " + d.ConstInit.String())
	case d.Init != nil:
		b.WriteString(" = " + d.Init.String())
	}
	return b.String()
}

func (i *Ident) String() string { return i.Value }

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, item := range b.Items {
		sb.WriteString("  " + strings.ReplaceAll(item.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (s *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", s.Target, s.Value)
}

func (s *ExprStmt) String() string {
	if s.Expr == nil {
		return ";"
	}
	return s.Expr.String() + ";"
}

func (s *IfStmt) String() string {
	out := fmt.Sprintf("if (%s) %s", s.Cond, s.Then)
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

func (s *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", s.Cond, s.Body)
}

func (*BreakStmt) String() string    { return "break;" }
func (*ContinueStmt) String() string { return "continue;" }

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", s.Value)
}

func (e *LiteralExpr) String() string {
	if e.Kind == LiteralInt {
		return strconv.Itoa(int(e.Int))
	}
	elems := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		elems[i] = el.String()
	}
	return "{" + strings.Join(elems, ", ") + "}"
}

func (e *LValExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Name.Value)
	for _, idx := range e.Indices {
		fmt.Fprintf(&b, "[%s]", idx)
	}
	return b.String()
}

func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.Value, strings.Join(args, ", "))
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s%s", e.Op, e.Operand)
}

func (l *InitList) String() string {
	elems := make([]string, len(l.Elems))
	for i, el := range l.Elems {
		elems[i] = el.String()
	}
	return "{" + strings.Join(elems, ", ") + "}"
}
