package irbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu10ng/racoon/internal/ir"
)

func newFuncContext(t *testing.T) *Context {
	t.Helper()
	c := NewContext("test")
	id := c.BuildFunc("f", &ir.FuncType{Ret: ir.Void}, false)
	c.SetCurFunc(id)
	entry := c.BuildBlock()
	c.CurFunc().SetEntry(entry)
	c.SetCurBlock(entry)
	return c
}

func TestContextBlockAfterCur(t *testing.T) {
	c := newFuncContext(t)
	entry := c.CurBlock()
	last := c.BuildBlock()
	mid := c.BuildBlockAfterCur()

	assert.Equal(t, []ir.BlockID{entry, mid, last}, c.CurFunc().Blocks())
}

func TestContextBuildAfterTerminatorPanics(t *testing.T) {
	c := newFuncContext(t)
	c.BuildInstEndOfCur(ir.InstRet, ir.Void)
	assert.True(t, c.Terminated())

	assert.Panics(t, func() {
		c.BuildInstEndOfCur(ir.InstAlloca, ir.PtrTo(ir.I32))
	})
}

func TestContextLoopStack(t *testing.T) {
	c := newFuncContext(t)
	assert.Panics(t, func() { c.CurLoop() })

	outer := BCTarget{Break: c.BuildBlock(), Continue: c.BuildBlock()}
	inner := BCTarget{Break: c.BuildBlock(), Continue: c.BuildBlock()}
	c.PushLoop(outer)
	c.PushLoop(inner)
	assert.Equal(t, inner, c.CurLoop())
	assert.Equal(t, 2, c.LoopDepth())

	c.PopLoop()
	assert.Equal(t, outer, c.CurLoop())
	c.PopLoop()
	assert.Panics(t, func() { c.PopLoop() })
}

func TestContextParamsAndCalls(t *testing.T) {
	c := NewContext("test")
	callee := c.BuildFunc("g", &ir.FuncType{Ret: ir.I32, Params: []ir.Type{ir.I32}}, false)
	caller := c.BuildFunc("f", &ir.FuncType{Ret: ir.Void}, false)
	c.SetCurFunc(caller)
	c.SetCurBlock(c.BuildBlock())

	call := c.BuildCall(callee, ir.ConstOperand(ir.ConstInt(3)))
	assert.True(t, c.TypeOf(ir.InstOperand(call)).Equal(ir.I32))

	c.SetCurFunc(callee)
	p := c.BuildFuncParam(ir.I32)
	assert.True(t, c.TypeOf(ir.ParamOperand(p)).Equal(ir.I32))
	assert.Equal(t, []ir.ParamID{p}, c.CurFunc().Params)
}

func TestContextAllocaGoesToEntry(t *testing.T) {
	c := newFuncContext(t)
	entry := c.CurBlock()
	first := c.BuildAlloca(ir.I32)

	body := c.BuildBlockAfterCur()
	c.BuildBr(body)
	c.SetCurBlock(body)
	c.BuildInstEndOfCur(ir.InstAdd, ir.I32, ir.ConstOperand(ir.ConstInt(1)), ir.ConstOperand(ir.ConstInt(2)))
	second := c.BuildAlloca(ir.ArrayOf(2, ir.I32))

	fn := c.CurFunc()
	insts := fn.Block(entry).Insts
	require.Len(t, insts, 3)
	assert.Equal(t, first, insts[0])
	assert.Equal(t, second, insts[1])
	assert.Equal(t, ir.InstBr, fn.Inst(insts[2]).Kind)
	assert.Equal(t, "[2 x i32]*", fn.Inst(second).Ty.String())
	assert.Len(t, fn.Block(body).Insts, 1)
}
