package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintModule(t *testing.T) {
	m := NewModule("t")
	m.DeclareGlobal("g", I32, ConstInt(5), false)
	m.DeclareGlobal("c", ArrayOf(2, I32), &ArrayConst{Ty: ArrayOf(2, I32), Elems: []Constant{ConstInt(1), ConstInt(2)}}, true)
	m.DeclareGlobal("z", ArrayOf(3, I32), nil, false)
	for _, r := range Runtime {
		m.DeclareFunc(r.Name, r.Ty, true)
	}

	id := m.DeclareFunc("main", &FuncType{Ret: I32, Params: []Type{I32}}, false)
	fn := m.Func(id)
	a0 := fn.AddParam(I32)
	entry := fn.NewBlock()
	fn.SetEntry(entry)
	exit := fn.NewBlock()

	slot := fn.AppendInst(entry, Instruction{Kind: InstAlloca, Ty: PtrTo(I32)})
	fn.AppendInst(entry, Instruction{Kind: InstStore, Ty: Void, Operands: []Operand{ParamOperand(a0), InstOperand(slot)}})
	getint, _ := m.FuncByName("getint")
	call := fn.AppendInst(entry, Instruction{Kind: InstCall, Ty: I32, Callee: getint})
	sum := fn.AppendInst(entry, Instruction{Kind: InstAdd, Ty: I32, Operands: []Operand{InstOperand(call), ConstOperand(ConstInt(1))}})
	fn.AppendInst(entry, Instruction{Kind: InstBr, Ty: Void, Targets: []BlockID{exit}})
	fn.AppendInst(exit, Instruction{Kind: InstRet, Ty: Void, Operands: []Operand{InstOperand(sum)}})

	expected := strings.Join([]string{
		"@g = global i32 5",
		"@c = constant [[2 x i32] i32 1, i32 2]",
		"@z = global [[3 x i32] zeroinitializer]",
		"",
		"declare i32 @getint()",
		"declare i32 @getch()",
		"declare i32 @getarray(i32*)",
		"declare void @putint(i32)",
		"declare void @putch(i32)",
		"declare void @putarray(i32, i32*)",
		"declare void @_sysy_starttime(i32)",
		"declare void @_sysy_stoptime(i32)",
		"",
		"define i32 @main(i32 %a0) {",
		"bb0:",
		"  %v0 = alloca i32",
		"  store i32 %a0, i32* %v0",
		"  %v1 = call i32 @getint()",
		"  %v2 = add i32 %v1, 1",
		"  br label %bb1",
		"bb1:",
		"  ret i32 %v2",
		"}",
		"",
	}, "\n")

	assert.Equal(t, expected, Print(m))
}

func TestPrintBranchesAndMemory(t *testing.T) {
	m := NewModule("t")
	arr := m.DeclareGlobal("arr", ArrayOf(4, I32), nil, false)
	fn := m.Func(m.DeclareFunc("f", &FuncType{Ret: Void}, false))
	entry := fn.NewBlock()
	then := fn.NewBlock()
	done := fn.NewBlock()

	addr := fn.AppendInst(entry, Instruction{
		Kind:     InstGEP,
		Ty:       PtrTo(I32),
		Operands: []Operand{GlobalOperand(arr), ConstOperand(ConstInt(0)), ConstOperand(ConstInt(2))},
	})
	val := fn.AppendInst(entry, Instruction{Kind: InstLoad, Ty: I32, Operands: []Operand{InstOperand(addr)}})
	cmp := fn.AppendInst(entry, Instruction{Kind: InstSlt, Ty: I1, Operands: []Operand{InstOperand(val), ConstOperand(ConstInt(3))}})
	fn.AppendInst(entry, Instruction{Kind: InstCondBr, Ty: Void, Operands: []Operand{InstOperand(cmp)}, Targets: []BlockID{then, done}})
	ext := fn.AppendInst(then, Instruction{Kind: InstZext, Ty: I32, Operands: []Operand{InstOperand(cmp)}})
	fn.AppendInst(then, Instruction{Kind: InstStore, Ty: Void, Operands: []Operand{InstOperand(ext), InstOperand(addr)}})
	fn.AppendInst(then, Instruction{Kind: InstBr, Ty: Void, Targets: []BlockID{done}})
	fn.AppendInst(done, Instruction{Kind: InstRet, Ty: Void})

	out := Print(m)
	assert.Contains(t, out, "%v0 = getelementptr [4 x i32], [4 x i32]* @arr, i32 0, i32 2")
	assert.Contains(t, out, "%v1 = load i32, i32* %v0")
	assert.Contains(t, out, "%v2 = icmp slt i32 %v1, 3")
	assert.Contains(t, out, "br i1 %v2, label %bb1, label %bb2")
	assert.Contains(t, out, "%v3 = zext i1 %v2 to i32")
	assert.Contains(t, out, "store i32 %v3, i32* %v0")
	assert.Contains(t, out, "ret void")
}
