package ir

import (
	"fmt"
	"strings"
)

// Value is anything that can be used as an operand: it knows its IR type.
type Value interface {
	Type() Type
}

// Constant is a compile-time-known value. Constants are immutable once built
// and are embedded by value in operands.
type Constant interface {
	Value
	String() string
	isConstant()
}

// IntConst is a 32-bit signed integer constant.
type IntConst struct {
	Value int32
}

// ArrayConst is an aggregate constant. Ty is the type of the whole constant;
// Elems may be shorter than the array length, in which case the remaining
// elements are zero. An ArrayConst without elements is a zeroinitializer.
type ArrayConst struct {
	Ty    Type
	Elems []Constant
}

func (*IntConst) isConstant()   {}
func (*ArrayConst) isConstant() {}

func (*IntConst) Type() Type     { return I32 }
func (a *ArrayConst) Type() Type { return a.Ty }

func (c *IntConst) String() string { return fmt.Sprintf("i32 %d", c.Value) }

func (a *ArrayConst) String() string {
	if len(a.Elems) == 0 {
		return fmt.Sprintf("[%s zeroinitializer]", a.Ty)
	}
	elems := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		elems[i] = e.String()
	}
	return fmt.Sprintf("[%s %s]", a.Ty, strings.Join(elems, ", "))
}

func ConstInt(v int32) *IntConst { return &IntConst{Value: v} }

// ZeroOf returns the zero constant of an int or array type.
func ZeroOf(t Type) Constant {
	if _, ok := t.(*ArrayType); ok {
		return &ArrayConst{Ty: t}
	}
	return ConstInt(0)
}

// OperandKind tags what an Operand refers to.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandInst
	OperandGlobal
	OperandParam
	OperandConst
)

// Operand is a non-owning reference to a usable value. Inst and Param keys
// are only meaningful within the function that created them.
type Operand struct {
	Kind   OperandKind
	Inst   InstID
	Global GlobalID
	Param  ParamID
	Const  Constant
}

func InstOperand(id InstID) Operand     { return Operand{Kind: OperandInst, Inst: id} }
func GlobalOperand(id GlobalID) Operand { return Operand{Kind: OperandGlobal, Global: id} }
func ParamOperand(id ParamID) Operand   { return Operand{Kind: OperandParam, Param: id} }
func ConstOperand(c Constant) Operand   { return Operand{Kind: OperandConst, Const: c} }

// Global is a module-level variable. Its Type is the type of the stored
// value; as an operand a global denotes the address of that storage.
type Global struct {
	Name  string
	Ty    Type
	Init  Constant
	Const bool
}

func (g *Global) Type() Type { return g.Ty }

// Param is one function parameter.
type Param struct {
	Ty    Type
	Index int
}

func (p *Param) Type() Type { return p.Ty }
