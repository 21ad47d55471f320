package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFunc() *Function {
	return NewFunction("f", &FuncType{Ret: Void}, false)
}

func TestFunctionEntrySetOnce(t *testing.T) {
	fn := newTestFunc()
	_, ok := fn.Entry()
	assert.False(t, ok)

	bb := fn.NewBlock()
	fn.SetEntry(bb)
	entry, ok := fn.Entry()
	require.True(t, ok)
	assert.Equal(t, bb, entry)

	assert.Panics(t, func() { fn.SetEntry(fn.NewBlock()) })
}

func TestNewBlockAfterKeepsLayoutOrder(t *testing.T) {
	fn := newTestFunc()
	a := fn.NewBlock()
	c := fn.NewBlock()
	b := fn.NewBlockAfter(a)

	assert.Equal(t, []BlockID{a, b, c}, fn.Blocks())
}

func TestAppendInstAfterTerminatorPanics(t *testing.T) {
	fn := newTestFunc()
	bb := fn.NewBlock()
	fn.AppendInst(bb, Instruction{Kind: InstAlloca, Ty: PtrTo(I32)})
	assert.False(t, fn.Terminated(bb))

	fn.AppendInst(bb, Instruction{Kind: InstRet, Ty: Void})
	assert.True(t, fn.Terminated(bb))

	assert.Panics(t, func() {
		fn.AppendInst(bb, Instruction{Kind: InstAlloca, Ty: PtrTo(I32)})
	})
	assert.Len(t, fn.Block(bb).Insts, 2)
}

func TestSuccessorsFromTerminator(t *testing.T) {
	fn := newTestFunc()
	entry := fn.NewBlock()
	then := fn.NewBlock()
	els := fn.NewBlock()
	merge := fn.NewBlock()

	cond := ConstOperand(ConstInt(1))
	fn.AppendInst(entry, Instruction{Kind: InstCondBr, Ty: Void, Operands: []Operand{cond}, Targets: []BlockID{then, els}})
	fn.AppendInst(then, Instruction{Kind: InstBr, Ty: Void, Targets: []BlockID{merge}})
	fn.AppendInst(els, Instruction{Kind: InstBr, Ty: Void, Targets: []BlockID{merge}})

	assert.Equal(t, []BlockID{then, els}, fn.Successors(entry))
	assert.Empty(t, fn.Successors(merge))
	assert.Equal(t, []BlockID{then, els}, fn.Predecessors(merge))
}

func TestBuiltinHasNoBody(t *testing.T) {
	fn := NewFunction("getint", &FuncType{Ret: I32}, true)
	assert.Panics(t, func() { fn.NewBlock() })
}

func TestAddParamIndexes(t *testing.T) {
	fn := NewFunction("g", &FuncType{Ret: I32, Params: []Type{I32, PtrTo(I32)}}, false)
	p0 := fn.AddParam(I32)
	p1 := fn.AddParam(PtrTo(I32))

	assert.Equal(t, 0, fn.Param(p0).Index)
	assert.Equal(t, 1, fn.Param(p1).Index)
	assert.True(t, fn.Param(p1).Type().Equal(PtrTo(I32)))
}

func TestModuleTypeOfGlobalIsAddress(t *testing.T) {
	m := NewModule("t")
	g := m.DeclareGlobal("arr", ArrayOf(4, I32), nil, false)
	fn := m.Func(m.DeclareFunc("main", &FuncType{Ret: I32}, false))

	assert.Equal(t, "[4 x i32]", m.Global(g).Type().String())
	assert.Equal(t, "[4 x i32]*", m.TypeOf(fn, GlobalOperand(g)).String())
}

func TestInsertInst(t *testing.T) {
	fn := newTestFunc()
	bb := fn.NewBlock()
	ret := fn.AppendInst(bb, Instruction{Kind: InstRet, Ty: Void})
	slot := fn.InsertInst(bb, 0, Instruction{Kind: InstAlloca, Ty: PtrTo(I32)})

	assert.Equal(t, []InstID{slot, ret}, fn.Block(bb).Insts)
	assert.True(t, fn.Terminated(bb))

	assert.Panics(t, func() { fn.InsertInst(bb, 0, Instruction{Kind: InstBr, Ty: Void}) })
	assert.Panics(t, func() { fn.InsertInst(bb, 3, Instruction{Kind: InstAlloca, Ty: PtrTo(I32)}) })
}
