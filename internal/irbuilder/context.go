package irbuilder

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ir"
)

// BCTarget is where break and continue jump inside one loop.
type BCTarget struct {
	Break    ir.BlockID
	Continue ir.BlockID
}

// Context is the builder's cursor: the module being built, the function and
// block receiving instructions, the open scopes and the enclosing loops.
type Context struct {
	Scopes *ScopeBuilder[NameID]
	Module *ir.Module

	curFunc  ir.FuncID
	curBlock ir.BlockID
	loops    []BCTarget
}

func NewContext(moduleName string) *Context {
	return &Context{
		Scopes: NewScopeBuilder[NameID](),
		Module: ir.NewModule(moduleName),
	}
}

func (c *Context) CurFuncID() ir.FuncID      { return c.curFunc }
func (c *Context) CurFunc() *ir.Function     { return c.Module.Func(c.curFunc) }
func (c *Context) CurBlock() ir.BlockID      { return c.curBlock }
func (c *Context) SetCurFunc(id ir.FuncID)   { c.curFunc = id }
func (c *Context) SetCurBlock(bb ir.BlockID) { c.curBlock = bb }

// BuildInstEnd appends an instruction to bb of the current function.
func (c *Context) BuildInstEnd(bb ir.BlockID, kind ir.InstKind, ty ir.Type, ops ...ir.Operand) ir.InstID {
	return c.CurFunc().AppendInst(bb, ir.Instruction{Kind: kind, Ty: ty, Operands: ops})
}

// BuildInstEndOfCur appends an instruction to the current block.
func (c *Context) BuildInstEndOfCur(kind ir.InstKind, ty ir.Type, ops ...ir.Operand) ir.InstID {
	return c.BuildInstEnd(c.curBlock, kind, ty, ops...)
}

// BuildAlloca reserves a stack slot holding ty. Slots live at the top of
// the entry block, after the ones already there, wherever the cursor is.
func (c *Context) BuildAlloca(ty ir.Type) ir.InstID {
	fn := c.CurFunc()
	entry, ok := fn.Entry()
	if !ok {
		panic(fmt.Sprintf("irbuilder: %s has no entry block", fn.Name))
	}
	n := 0
	for _, id := range fn.Block(entry).Insts {
		if fn.Inst(id).Kind != ir.InstAlloca {
			break
		}
		n++
	}
	return fn.InsertInst(entry, n, ir.Instruction{Kind: ir.InstAlloca, Ty: ir.PtrTo(ty)})
}

// BuildBr ends the current block with an unconditional jump.
func (c *Context) BuildBr(dest ir.BlockID) {
	c.CurFunc().AppendInst(c.curBlock, ir.Instruction{Kind: ir.InstBr, Ty: ir.Void, Targets: []ir.BlockID{dest}})
}

// BuildCondBr ends the current block with a two-way branch on an i1.
func (c *Context) BuildCondBr(cond ir.Operand, then, els ir.BlockID) {
	c.CurFunc().AppendInst(c.curBlock, ir.Instruction{
		Kind:     ir.InstCondBr,
		Ty:       ir.Void,
		Operands: []ir.Operand{cond},
		Targets:  []ir.BlockID{then, els},
	})
}

// BuildCall calls callee with args in the current block.
func (c *Context) BuildCall(callee ir.FuncID, args ...ir.Operand) ir.InstID {
	ret := c.GetFuncTy(callee).Ret
	return c.CurFunc().AppendInst(c.curBlock, ir.Instruction{Kind: ir.InstCall, Ty: ret, Operands: args, Callee: callee})
}

// BuildBlockAfterCur creates a block laid out right after the current one.
func (c *Context) BuildBlockAfterCur() ir.BlockID {
	return c.CurFunc().NewBlockAfter(c.curBlock)
}

// BuildBlock creates a block at the end of the current function.
func (c *Context) BuildBlock() ir.BlockID {
	return c.CurFunc().NewBlock()
}

func (c *Context) BuildFunc(name string, ty *ir.FuncType, builtin bool) ir.FuncID {
	return c.Module.DeclareFunc(name, ty, builtin)
}

func (c *Context) BuildGlobal(name string, ty ir.Type, init ir.Constant, isConst bool) ir.GlobalID {
	return c.Module.DeclareGlobal(name, ty, init, isConst)
}

func (c *Context) BuildFuncParam(ty ir.Type) ir.ParamID {
	return c.CurFunc().AddParam(ty)
}

func (c *Context) GetFuncTy(id ir.FuncID) *ir.FuncType {
	return c.Module.Func(id).Ty
}

// TypeOf resolves an operand's type in the current function.
func (c *Context) TypeOf(op ir.Operand) ir.Type {
	return c.Module.TypeOf(c.CurFunc(), op)
}

// Terminated reports whether the current block is already closed.
func (c *Context) Terminated() bool {
	return c.CurFunc().Terminated(c.curBlock)
}

func (c *Context) PushLoop(t BCTarget) { c.loops = append(c.loops, t) }

func (c *Context) PopLoop() {
	if len(c.loops) == 0 {
		panic("irbuilder: pop of empty loop stack")
	}
	c.loops = c.loops[:len(c.loops)-1]
}

// CurLoop returns the innermost loop. break and continue outside any loop
// are rejected before IR construction, so an empty stack is a bug.
func (c *Context) CurLoop() BCTarget {
	if len(c.loops) == 0 {
		panic("irbuilder: break or continue outside a loop")
	}
	return c.loops[len(c.loops)-1]
}

func (c *Context) LoopDepth() int { return len(c.loops) }
