package ast

import (
	"fmt"
	"strings"
)

// TypeKind classifies a source-level type.
type TypeKind int

const (
	// UnknownType marks an expression the checker could not type. It must never
	// reach IR construction.
	UnknownType TypeKind = iota
	VoidType
	IntType
	BoolType
	ArrayType
	PtrType
	FuncType
)

// Type is a source-level type as resolved by the semantic checker.
// Example: "int", "int[3][4]", "int*" (array parameter), "int (int, int*)"
type Type struct {
	Kind   TypeKind
	Size   int     // array length
	Elem   *Type   // array / pointer element
	Ret    *Type   // function return
	Params []*Type // function parameters
}

func Unknown() *Type { return &Type{Kind: UnknownType} }
func Void() *Type    { return &Type{Kind: VoidType} }
func Int() *Type     { return &Type{Kind: IntType} }
func Bool() *Type    { return &Type{Kind: BoolType} }

// ArrayOf builds `elem[size]`.
func ArrayOf(size int, elem *Type) *Type {
	return &Type{Kind: ArrayType, Size: size, Elem: elem}
}

// PtrTo builds a pointer to elem. Only array parameters produce pointers.
func PtrTo(elem *Type) *Type {
	return &Type{Kind: PtrType, Elem: elem}
}

func FuncOf(ret *Type, params ...*Type) *Type {
	return &Type{Kind: FuncType, Ret: ret, Params: params}
}

func (t *Type) Is(kind TypeKind) bool {
	return t != nil && t.Kind == kind
}

// IsScalar reports whether values of t fit in a register (int or bool).
func (t *Type) IsScalar() bool {
	return t.Is(IntType) || t.Is(BoolType)
}

// Equal compares two types structurally.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case ArrayType:
		return t.Size == o.Size && t.Elem.Equal(o.Elem)
	case PtrType:
		return t.Elem.Equal(o.Elem)
	case FuncType:
		if !t.Ret.Equal(o.Ret) || len(t.Params) != len(o.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Dims returns the array dimensions of t, outermost first.
func (t *Type) Dims() []int {
	var dims []int
	for cur := t; cur.Is(ArrayType); cur = cur.Elem {
		dims = append(dims, cur.Size)
	}
	return dims
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case VoidType:
		return "void"
	case IntType:
		return "int"
	case BoolType:
		return "bool"
	case ArrayType:
		base := t
		for base.Is(ArrayType) {
			base = base.Elem
		}
		var b strings.Builder
		b.WriteString(base.String())
		for _, d := range t.Dims() {
			fmt.Fprintf(&b, "[%d]", d)
		}
		return b.String()
	case PtrType:
		return t.Elem.String() + "*"
	case FuncType:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return fmt.Sprintf("%s (%s)", t.Ret, strings.Join(params, ", "))
	default:
		return "unknown"
	}
}
