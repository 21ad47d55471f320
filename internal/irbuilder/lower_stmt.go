package irbuilder

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/ir"
)

// ensureOpen moves the cursor to a fresh block when the current one is
// already terminated. Code after return, break or continue lands there: it
// is unreachable but still lowered, so its errors are still found.
func (b *Builder) ensureOpen() {
	if b.ctx.Terminated() {
		b.ctx.SetCurBlock(b.ctx.BuildBlockAfterCur())
	}
}

func (b *Builder) buildBlockItem(item ast.BlockItem) error {
	b.ensureOpen()
	switch item := item.(type) {
	case *ast.VarDecl:
		return b.buildLocalDecl(item)
	case ast.Stmt:
		return b.buildStmt(item)
	}
	panic(fmt.Sprintf("irbuilder: unexpected block item %T", item))
}

func (b *Builder) buildStmt(stmt ast.Stmt) error {
	b.ensureOpen()
	switch s := stmt.(type) {
	case *ast.Block:
		b.ctx.Scopes.PushScope()
		for _, item := range s.Items {
			if err := b.buildBlockItem(item); err != nil {
				return err
			}
		}
		b.ctx.Scopes.PopScope()
		return nil
	case *ast.AssignStmt:
		return b.buildAssign(s)
	case *ast.ExprStmt:
		if s.Expr == nil {
			return nil
		}
		_, err := b.buildExpr(s.Expr)
		return err
	case *ast.IfStmt:
		return b.buildIf(s)
	case *ast.WhileStmt:
		return b.buildWhile(s)
	case *ast.BreakStmt:
		b.ctx.BuildBr(b.ctx.CurLoop().Break)
		return nil
	case *ast.ContinueStmt:
		b.ctx.BuildBr(b.ctx.CurLoop().Continue)
		return nil
	case *ast.ReturnStmt:
		return b.buildReturn(s)
	}
	panic(fmt.Sprintf("irbuilder: unexpected statement %T", stmt))
}

func (b *Builder) buildLocalDecl(decl *ast.VarDecl) error {
	for _, def := range decl.Defs {
		ty := irType(def.Type)
		slot := ir.InstOperand(b.ctx.BuildAlloca(ty))

		if err := b.buildLocalInit(def, ty, slot); err != nil {
			return err
		}
		// The initializer is lowered before the name is bound, so it sees
		// any outer binding of the same name.
		if !b.ctx.Scopes.Insert(def.Name.Value, InstName(slot.Inst)) {
			return duplicateName(def.Name.Pos, def.Name.Value)
		}
	}
	return nil
}

func (b *Builder) buildLocalInit(def *ast.VarDef, ty ir.Type, slot ir.Operand) error {
	if def.Init == nil {
		return nil
	}
	if def.ConstInit != nil {
		b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, ir.ConstOperand(constant(def.ConstInit)), slot)
		return nil
	}

	switch init := def.Init.(type) {
	case *ast.InitList:
		b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, ir.ConstOperand(ir.ZeroOf(ty)), slot)
		return b.buildInitList(init, slot, []ir.Operand{ir.ConstOperand(ir.ConstInt(0))})
	case ast.Expr:
		v, err := b.buildValue(init)
		if err != nil {
			return err
		}
		if found := b.ctx.TypeOf(v); !found.Equal(ty) {
			return typeMismatch(init.NodePos(), ty, found)
		}
		b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, v, slot)
	}
	return nil
}

// buildInitList stores every element of a normalized initializer list
// through the array at base. path holds the indices leading to list.
func (b *Builder) buildInitList(list *ast.InitList, base ir.Operand, path []ir.Operand) error {
	for i, elem := range list.Elems {
		idx := append(path[:len(path):len(path)], ir.ConstOperand(ir.ConstInt(int32(i))))
		switch elem := elem.(type) {
		case *ast.InitList:
			if err := b.buildInitList(elem, base, idx); err != nil {
				return err
			}
		case ast.Expr:
			v, err := b.buildValue(elem)
			if err != nil {
				return err
			}
			addr := b.buildGEP(base, idx)
			if want := pointee(b.ctx.TypeOf(addr)); !want.Equal(b.ctx.TypeOf(v)) {
				return typeMismatch(elem.NodePos(), want, b.ctx.TypeOf(v))
			}
			b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, v, addr)
		}
	}
	return nil
}

func (b *Builder) buildAssign(s *ast.AssignStmt) error {
	addr, err := b.buildLValAddr(s.Target)
	if err != nil {
		return err
	}
	v, err := b.buildValue(s.Value)
	if err != nil {
		return err
	}
	want := pointee(b.ctx.TypeOf(addr))
	if found := b.ctx.TypeOf(v); !want.Equal(found) {
		return typeMismatch(s.Value.NodePos(), want, found)
	}
	b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, v, addr)
	return nil
}

// buildIf lays out then, else and merge blocks right after the current one,
// in that order.
func (b *Builder) buildIf(s *ast.IfStmt) error {
	then := b.ctx.BuildBlockAfterCur()
	els := ir.BlockID{}
	merge := b.ctx.CurFunc().NewBlockAfter(then)
	if s.Else != nil {
		els = b.ctx.CurFunc().NewBlockAfter(then)
	}

	falseDest := merge
	if s.Else != nil {
		falseDest = els
	}
	if err := b.buildCond(s.Cond, then, falseDest); err != nil {
		return err
	}

	b.ctx.SetCurBlock(then)
	if err := b.buildStmt(s.Then); err != nil {
		return err
	}
	if !b.ctx.Terminated() {
		b.ctx.BuildBr(merge)
	}

	if s.Else != nil {
		b.ctx.SetCurBlock(els)
		if err := b.buildStmt(s.Else); err != nil {
			return err
		}
		if !b.ctx.Terminated() {
			b.ctx.BuildBr(merge)
		}
	}

	b.ctx.SetCurBlock(merge)
	return nil
}

func (b *Builder) buildWhile(s *ast.WhileStmt) error {
	cond := b.ctx.BuildBlockAfterCur()
	body := b.ctx.CurFunc().NewBlockAfter(cond)
	exit := b.ctx.CurFunc().NewBlockAfter(body)

	b.ctx.BuildBr(cond)
	b.ctx.SetCurBlock(cond)
	if err := b.buildCond(s.Cond, body, exit); err != nil {
		return err
	}

	b.ctx.PushLoop(BCTarget{Break: exit, Continue: cond})
	b.ctx.SetCurBlock(body)
	if err := b.buildStmt(s.Body); err != nil {
		return err
	}
	if !b.ctx.Terminated() {
		b.ctx.BuildBr(cond)
	}
	b.ctx.PopLoop()

	b.ctx.SetCurBlock(exit)
	return nil
}

func (b *Builder) buildReturn(s *ast.ReturnStmt) error {
	ret := b.ctx.CurFunc().RetType()
	if s.Value == nil {
		if !ret.Equal(ir.Void) {
			return typeMismatch(s.Pos, ret, ir.Void)
		}
		b.ctx.BuildInstEndOfCur(ir.InstRet, ir.Void)
		return nil
	}

	v, err := b.buildValue(s.Value)
	if err != nil {
		return err
	}
	if found := b.ctx.TypeOf(v); !found.Equal(ret) {
		return typeMismatch(s.Value.NodePos(), ret, found)
	}
	b.ctx.BuildInstEndOfCur(ir.InstRet, ir.Void, v)
	return nil
}
