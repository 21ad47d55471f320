package irbuilder

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/ir"
)

var binaryInsts = map[ast.BinaryOp]ir.InstKind{
	ast.OpAdd: ir.InstAdd,
	ast.OpSub: ir.InstSub,
	ast.OpMul: ir.InstMul,
	ast.OpDiv: ir.InstSDiv,
	ast.OpMod: ir.InstSRem,
	ast.OpEq:  ir.InstEq,
	ast.OpNe:  ir.InstNe,
	ast.OpLt:  ir.InstSlt,
	ast.OpLe:  ir.InstSle,
	ast.OpGt:  ir.InstSgt,
	ast.OpGe:  ir.InstSge,
}

func pointee(t ir.Type) ir.Type {
	return t.(*ir.PtrType).Elem
}

// buildExpr lowers e to its natural operand: i32 for arithmetic, i1 for
// comparisons and logic, a pointer for decayed arrays.
func (b *Builder) buildExpr(e ast.Expr) (ir.Operand, error) {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		return ir.ConstOperand(constant(e)), nil
	case *ast.LValExpr:
		return b.buildLValValue(e)
	case *ast.CallExpr:
		return b.buildCall(e)
	case *ast.UnaryExpr:
		return b.buildUnary(e)
	case *ast.BinaryExpr:
		if e.Op.IsLogical() {
			return b.buildLogicalValue(e)
		}
		return b.buildBinary(e)
	}
	panic(fmt.Sprintf("irbuilder: unexpected expression %T", e))
}

// buildValue lowers e where an int is needed, widening i1 results.
func (b *Builder) buildValue(e ast.Expr) (ir.Operand, error) {
	v, err := b.buildExpr(e)
	if err != nil {
		return ir.Operand{}, err
	}
	if ir.IsInt(b.ctx.TypeOf(v), 1) {
		v = ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstZext, ir.I32, v))
	}
	return v, nil
}

func (b *Builder) buildUnary(e *ast.UnaryExpr) (ir.Operand, error) {
	v, err := b.buildValue(e.Operand)
	if err != nil {
		return ir.Operand{}, err
	}
	if found := b.ctx.TypeOf(v); !found.Equal(ir.I32) {
		return ir.Operand{}, typeMismatch(e.Operand.NodePos(), ir.I32, found)
	}
	zero := ir.ConstOperand(ir.ConstInt(0))
	switch e.Op {
	case ast.OpNeg:
		return ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstSub, ir.I32, zero, v)), nil
	case ast.OpNot:
		return ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstEq, ir.I1, v, zero)), nil
	}
	return v, nil
}

func (b *Builder) buildBinary(e *ast.BinaryExpr) (ir.Operand, error) {
	lhs, err := b.buildValue(e.Left)
	if err != nil {
		return ir.Operand{}, err
	}
	rhs, err := b.buildValue(e.Right)
	if err != nil {
		return ir.Operand{}, err
	}
	for _, side := range []struct {
		v   ir.Operand
		pos ast.Position
	}{{lhs, e.Left.NodePos()}, {rhs, e.Right.NodePos()}} {
		if found := b.ctx.TypeOf(side.v); !found.Equal(ir.I32) {
			return ir.Operand{}, typeMismatch(side.pos, ir.I32, found)
		}
	}

	kind := binaryInsts[e.Op]
	ty := ir.Type(ir.I32)
	if kind.IsCompare() {
		ty = ir.I1
	}
	return ir.InstOperand(b.ctx.BuildInstEndOfCur(kind, ty, lhs, rhs)), nil
}

// buildLogicalValue materializes && or || as an i32 through a stack slot,
// keeping the short-circuit evaluation of buildCond. Source reaches it
// through a parenthesized condition used as an operand, as in
// "return (a || b) + 1;".
func (b *Builder) buildLogicalValue(e *ast.BinaryExpr) (ir.Operand, error) {
	slot := ir.InstOperand(b.ctx.BuildAlloca(ir.I32))
	onTrue := b.ctx.BuildBlockAfterCur()
	onFalse := b.ctx.CurFunc().NewBlockAfter(onTrue)
	merge := b.ctx.CurFunc().NewBlockAfter(onFalse)

	if err := b.buildCond(e, onTrue, onFalse); err != nil {
		return ir.Operand{}, err
	}
	for i, bb := range []ir.BlockID{onFalse, onTrue} {
		b.ctx.SetCurBlock(bb)
		b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, ir.ConstOperand(ir.ConstInt(int32(i))), slot)
		b.ctx.BuildBr(merge)
	}
	b.ctx.SetCurBlock(merge)
	return ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstLoad, ir.I32, slot)), nil
}

// buildCond lowers e as a branch to t when it holds and to f otherwise.
// && and || short-circuit through intermediate blocks placed after the
// current one.
func (b *Builder) buildCond(e ast.Expr, t, f ir.BlockID) error {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		if e.Op.IsLogical() {
			rhs := b.ctx.BuildBlockAfterCur()
			var err error
			if e.Op == ast.OpAnd {
				err = b.buildCond(e.Left, rhs, f)
			} else {
				err = b.buildCond(e.Left, t, rhs)
			}
			if err != nil {
				return err
			}
			b.ctx.SetCurBlock(rhs)
			return b.buildCond(e.Right, t, f)
		}
	case *ast.UnaryExpr:
		if e.Op == ast.OpNot {
			return b.buildCond(e.Operand, f, t)
		}
	}

	v, err := b.buildExpr(e)
	if err != nil {
		return err
	}
	switch ty := b.ctx.TypeOf(v); {
	case ir.IsInt(ty, 1):
	case ir.IsInt(ty, 32):
		v = ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstNe, ir.I1, v, ir.ConstOperand(ir.ConstInt(0))))
	default:
		return typeMismatch(e.NodePos(), ir.I32, ty)
	}
	b.ctx.BuildCondBr(v, t, f)
	return nil
}

func (b *Builder) lookup(name ast.Ident) (NameID, error) {
	id, ok := b.ctx.Scopes.FindNameRec(name.Value)
	if !ok {
		return NameID{}, &Error{
			Kind:       ErrUnknownName,
			Pos:        name.Pos,
			Name:       name.Value,
			Candidates: b.ctx.Scopes.Visible(),
		}
	}
	return id, nil
}

// buildLValAddr computes the address an lvalue designates. Arrays are
// stepped into with a leading zero index; array parameters are already
// pointers to their first element.
func (b *Builder) buildLValAddr(lv *ast.LValExpr) (ir.Operand, error) {
	id, err := b.lookup(lv.Name)
	if err != nil {
		return ir.Operand{}, err
	}
	if id.Kind == NameFunc {
		return ir.Operand{}, typeMismatch(lv.Pos, ir.I32, b.ctx.GetFuncTy(id.Func))
	}

	base := id.Operand()
	if len(lv.Indices) == 0 {
		return base, nil
	}

	var indices []ir.Operand
	if id.Kind != NameParam {
		indices = append(indices, ir.ConstOperand(ir.ConstInt(0)))
	}
	for _, idx := range lv.Indices {
		v, err := b.buildValue(idx)
		if err != nil {
			return ir.Operand{}, err
		}
		if found := b.ctx.TypeOf(v); !found.Equal(ir.I32) {
			return ir.Operand{}, typeMismatch(idx.NodePos(), ir.I32, found)
		}
		indices = append(indices, v)
	}
	return b.buildGEP(base, indices), nil
}

// buildGEP emits a getelementptr over base. The first index steps over the
// pointer and each further index steps into one array level.
func (b *Builder) buildGEP(base ir.Operand, indices []ir.Operand) ir.Operand {
	elem := pointee(b.ctx.TypeOf(base))
	for range indices[1:] {
		elem = elem.(*ir.ArrayType).Elem
	}
	ops := append([]ir.Operand{base}, indices...)
	return ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstGEP, ir.PtrTo(elem), ops...))
}

// buildLValValue reads an lvalue. Scalars are loaded; arrays decay to a
// pointer to their first element; folded constants are used directly.
func (b *Builder) buildLValValue(lv *ast.LValExpr) (ir.Operand, error) {
	if lv.Const != nil {
		if _, err := b.lookup(lv.Name); err != nil {
			return ir.Operand{}, err
		}
		return ir.ConstOperand(constant(lv.Const)), nil
	}

	addr, err := b.buildLValAddr(lv)
	if err != nil {
		return ir.Operand{}, err
	}
	if addr.Kind == ir.OperandParam {
		return addr, nil
	}

	elem := pointee(b.ctx.TypeOf(addr))
	if arr, ok := elem.(*ir.ArrayType); ok {
		zero := ir.ConstOperand(ir.ConstInt(0))
		return ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstGEP, ir.PtrTo(arr.Elem), addr, zero, zero)), nil
	}
	return ir.InstOperand(b.ctx.BuildInstEndOfCur(ir.InstLoad, elem, addr)), nil
}

func (b *Builder) buildCall(e *ast.CallExpr) (ir.Operand, error) {
	id, err := b.lookup(e.Callee)
	if err != nil {
		return ir.Operand{}, err
	}
	if id.Kind != NameFunc {
		return ir.Operand{}, &Error{Kind: ErrExpectedFunction, Pos: e.Callee.Pos, Name: e.Callee.Value}
	}

	params := b.ctx.GetFuncTy(id.Func).Params
	if b.timers[id.Func] {
		// The line argument is supplied here, not by the caller.
		params = nil
	}
	if len(e.Args) != len(params) {
		return ir.Operand{}, &Error{
			Kind:        ErrWrongParamLength,
			Pos:         e.Pos,
			Name:        e.Callee.Value,
			ExpectedLen: len(params),
			FoundLen:    len(e.Args),
		}
	}

	args := make([]ir.Operand, 0, len(e.Args)+1)
	for i, arg := range e.Args {
		var v ir.Operand
		if _, isPtr := params[i].(*ir.PtrType); isPtr {
			v, err = b.buildExpr(arg)
		} else {
			v, err = b.buildValue(arg)
		}
		if err != nil {
			return ir.Operand{}, err
		}
		if found := b.ctx.TypeOf(v); !found.Equal(params[i]) {
			return ir.Operand{}, typeMismatch(arg.NodePos(), params[i], found)
		}
		args = append(args, v)
	}
	if b.timers[id.Func] {
		args = append(args, ir.ConstOperand(ir.ConstInt(int32(e.Pos.Line))))
	}

	return ir.InstOperand(b.ctx.BuildCall(id.Func, args...)), nil
}
