package ir

import (
	"fmt"
	"strings"
)

// Type is an IR type. The set of implementations is closed.
type Type interface {
	String() string
	Equal(Type) bool
	isType()
}

type VoidType struct{}

type IntType struct {
	Bits int
}

type ArrayType struct {
	Len  int
	Elem Type
}

type PtrType struct {
	Elem Type
}

type FuncType struct {
	Ret    Type
	Params []Type
}

var (
	Void = &VoidType{}
	I32  = &IntType{Bits: 32}
	I1   = &IntType{Bits: 1}
)

func (*VoidType) isType()  {}
func (*IntType) isType()   {}
func (*ArrayType) isType() {}
func (*PtrType) isType()   {}
func (*FuncType) isType()  {}

func (*VoidType) String() string    { return "void" }
func (i *IntType) String() string   { return fmt.Sprintf("i%d", i.Bits) }
func (a *ArrayType) String() string { return fmt.Sprintf("[%d x %s]", a.Len, a.Elem) }
func (p *PtrType) String() string   { return p.Elem.String() + "*" }
func (f *FuncType) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s (%s)", f.Ret, strings.Join(params, ", "))
}

func (*VoidType) Equal(o Type) bool {
	_, ok := o.(*VoidType)
	return ok
}

func (i *IntType) Equal(o Type) bool {
	oi, ok := o.(*IntType)
	return ok && oi.Bits == i.Bits
}

func (a *ArrayType) Equal(o Type) bool {
	oa, ok := o.(*ArrayType)
	return ok && oa.Len == a.Len && a.Elem.Equal(oa.Elem)
}

func (p *PtrType) Equal(o Type) bool {
	op, ok := o.(*PtrType)
	return ok && p.Elem.Equal(op.Elem)
}

func (f *FuncType) Equal(o Type) bool {
	of, ok := o.(*FuncType)
	if !ok || !f.Ret.Equal(of.Ret) || len(f.Params) != len(of.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(of.Params[i]) {
			return false
		}
	}
	return true
}

func PtrTo(elem Type) *PtrType { return &PtrType{Elem: elem} }

func ArrayOf(n int, elem Type) *ArrayType { return &ArrayType{Len: n, Elem: elem} }

// IsInt reports whether t is an integer of the given width.
func IsInt(t Type, bits int) bool {
	i, ok := t.(*IntType)
	return ok && i.Bits == bits
}
