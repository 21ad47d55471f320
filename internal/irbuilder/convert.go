package irbuilder

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/ir"
)

// irType lowers a checked source type. Unknown types never survive the
// checker, so meeting one here is a bug.
func irType(t *ast.Type) ir.Type {
	switch t.Kind {
	case ast.VoidType:
		return ir.Void
	case ast.IntType:
		return ir.I32
	case ast.BoolType:
		return ir.I1
	case ast.ArrayType:
		return ir.ArrayOf(t.Size, irType(t.Elem))
	case ast.PtrType:
		return ir.PtrTo(irType(t.Elem))
	case ast.FuncType:
		return irFuncType(t)
	}
	panic(fmt.Sprintf("irbuilder: cannot lower type %s", t))
}

func irFuncType(t *ast.Type) *ir.FuncType {
	params := make([]ir.Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = irType(p)
	}
	return &ir.FuncType{Ret: irType(t.Ret), Params: params}
}

// constant converts a folded literal. Array constants keep the literal's
// own length; missing trailing elements are zero.
func constant(lit *ast.LiteralExpr) ir.Constant {
	if lit.Kind == ast.LiteralInt {
		return ir.ConstInt(lit.Int)
	}
	elems := make([]ir.Constant, len(lit.Elems))
	for i, e := range lit.Elems {
		elems[i] = constant(e)
	}
	return &ir.ArrayConst{Ty: irType(lit.Type()), Elems: elems}
}
