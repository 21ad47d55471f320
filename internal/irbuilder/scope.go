package irbuilder

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ir"
)

// NameKind says which arena a NameID points into.
type NameKind uint8

const (
	NameInst NameKind = iota
	NameFunc
	NameGlobal
	NameParam
)

// NameID is what a source name is bound to. Inst names are the alloca
// holding a local; Param names are pointer parameters used in place.
type NameID struct {
	Kind   NameKind
	Inst   ir.InstID
	Func   ir.FuncID
	Global ir.GlobalID
	Param  ir.ParamID
}

func InstName(id ir.InstID) NameID     { return NameID{Kind: NameInst, Inst: id} }
func FuncName(id ir.FuncID) NameID     { return NameID{Kind: NameFunc, Func: id} }
func GlobalName(id ir.GlobalID) NameID { return NameID{Kind: NameGlobal, Global: id} }
func ParamName(id ir.ParamID) NameID   { return NameID{Kind: NameParam, Param: id} }

// Operand converts a value name to an operand. Functions are not values.
func (n NameID) Operand() ir.Operand {
	switch n.Kind {
	case NameInst:
		return ir.InstOperand(n.Inst)
	case NameGlobal:
		return ir.GlobalOperand(n.Global)
	case NameParam:
		return ir.ParamOperand(n.Param)
	}
	panic(fmt.Sprintf("irbuilder: name kind %d has no operand", n.Kind))
}

// Scope is one lexical level of bindings.
type Scope[T any] struct {
	names map[string]T
}

func NewScope[T any]() *Scope[T] {
	return &Scope[T]{names: make(map[string]T)}
}

func (s *Scope[T]) Find(name string) (T, bool) {
	v, ok := s.names[name]
	return v, ok
}

// Insert binds name unless it is already bound at this level, in which case
// the scope is left untouched and Insert reports false.
func (s *Scope[T]) Insert(name string, v T) bool {
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = v
	return true
}

// Names lists the bindings of this level in no particular order.
func (s *Scope[T]) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	return names
}

// ScopeBuilder is the stack of open scopes, innermost last.
type ScopeBuilder[T any] struct {
	scopes []*Scope[T]
}

func NewScopeBuilder[T any]() *ScopeBuilder[T] {
	return &ScopeBuilder[T]{}
}

func (b *ScopeBuilder[T]) PushScope() {
	b.scopes = append(b.scopes, NewScope[T]())
}

// PopScope discards the innermost scope and every binding made in it.
func (b *ScopeBuilder[T]) PopScope() {
	if len(b.scopes) == 0 {
		panic("irbuilder: pop of empty scope stack")
	}
	b.scopes = b.scopes[:len(b.scopes)-1]
}

func (b *ScopeBuilder[T]) Depth() int { return len(b.scopes) }

// Insert binds name in the innermost scope only.
func (b *ScopeBuilder[T]) Insert(name string, v T) bool {
	if len(b.scopes) == 0 {
		panic("irbuilder: insert with no open scope")
	}
	return b.scopes[len(b.scopes)-1].Insert(name, v)
}

// FindNameRec resolves name from the innermost scope outwards.
func (b *ScopeBuilder[T]) FindNameRec(name string) (T, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if v, ok := b.scopes[i].Find(name); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Visible returns every name reachable from the innermost scope.
func (b *ScopeBuilder[T]) Visible() []string {
	seen := make(map[string]bool)
	var names []string
	for i := len(b.scopes) - 1; i >= 0; i-- {
		for _, name := range b.scopes[i].Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
