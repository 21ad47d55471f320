// Package irbuilder lowers a checked syntax tree into an ir.Module.
//
// The walk is single pass and fail fast: the first error aborts the build
// and no partial module is returned.
package irbuilder

import (
	"github.com/tliron/commonlog"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/ir"
)

var log = commonlog.GetLogger("racoon.irbuilder")

// Builder walks one program. It is not reusable.
type Builder struct {
	ctx    *Context
	timers map[ir.FuncID]bool
}

// Build lowers prog into a fresh module named name.
func Build(name string, prog *ast.Program) (*ir.Module, error) {
	b := &Builder{
		ctx:    NewContext(name),
		timers: make(map[ir.FuncID]bool),
	}
	b.ctx.Scopes.PushScope()
	b.declareRuntime()

	for _, item := range prog.Items {
		var err error
		switch item := item.(type) {
		case *ast.VarDecl:
			err = b.buildGlobalDecl(item)
		case *ast.FuncDecl:
			err = b.buildFunc(item)
		}
		if err != nil {
			log.Debugf("build of %s aborted: %s", name, err)
			return nil, err
		}
	}

	b.ctx.Scopes.PopScope()
	return b.ctx.Module, nil
}

func (b *Builder) buildGlobalDecl(decl *ast.VarDecl) error {
	for _, def := range decl.Defs {
		var init ir.Constant
		if def.ConstInit != nil {
			init = constant(def.ConstInit)
		}
		id := b.ctx.BuildGlobal(def.Name.Value, irType(def.Type), init, decl.Const)
		if !b.ctx.Scopes.Insert(def.Name.Value, GlobalName(id)) {
			return duplicateName(def.Name.Pos, def.Name.Value)
		}
	}
	return nil
}

func (b *Builder) buildFunc(decl *ast.FuncDecl) error {
	ty := irFuncType(decl.Ty)
	id := b.ctx.BuildFunc(decl.Name.Value, ty, false)
	// Bound before the body so the function can call itself.
	if !b.ctx.Scopes.Insert(decl.Name.Value, FuncName(id)) {
		return duplicateName(decl.Name.Pos, decl.Name.Value)
	}
	log.Debugf("building function %s: %s", decl.Name.Value, ty)

	b.ctx.SetCurFunc(id)
	entry := b.ctx.BuildBlock()
	b.ctx.CurFunc().SetEntry(entry)
	b.ctx.SetCurBlock(entry)

	b.ctx.Scopes.PushScope()
	for i, param := range decl.Params {
		pid := b.ctx.BuildFuncParam(ty.Params[i])
		name := ParamName(pid)
		if _, isPtr := ty.Params[i].(*ir.PtrType); !isPtr {
			// Scalars are spilled so they can be assigned like locals.
			slot := b.ctx.BuildAlloca(ty.Params[i])
			b.ctx.BuildInstEndOfCur(ir.InstStore, ir.Void, ir.ParamOperand(pid), ir.InstOperand(slot))
			name = InstName(slot)
		}
		if !b.ctx.Scopes.Insert(param.Name.Value, name) {
			return duplicateName(param.Name.Pos, param.Name.Value)
		}
	}

	// Parameters and the outermost block of the body share one scope.
	for _, item := range decl.Body.Items {
		if err := b.buildBlockItem(item); err != nil {
			return err
		}
	}
	b.ctx.Scopes.PopScope()

	if !b.ctx.Terminated() {
		if ir.IsInt(ty.Ret, 32) {
			b.ctx.BuildInstEndOfCur(ir.InstRet, ir.Void, ir.ConstOperand(ir.ConstInt(0)))
		} else {
			b.ctx.BuildInstEndOfCur(ir.InstRet, ir.Void)
		}
	}
	return nil
}
