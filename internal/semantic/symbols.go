package semantic

import (
	"sort"

	"github.com/tu10ng/racoon/internal/ast"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolVariable
	SymbolConstant
	SymbolParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolVariable:
		return "variable"
	case SymbolConstant:
		return "constant"
	case SymbolParameter:
		return "parameter"
	}
	return "unknown"
}

type Symbol struct {
	Name string
	Kind SymbolKind
	Type *ast.Type
	// Const is the folded value of a constant, scalar or array.
	Const    *ast.LiteralExpr
	Position ast.Position
}

type SymbolTable struct {
	symbols map[string]*Symbol
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

// Define adds sym to this scope. An existing symbol of the same name is kept
// and false is returned.
func (st *SymbolTable) Define(sym *Symbol) bool {
	if _, exists := st.symbols[sym.Name]; exists {
		return false
	}
	st.symbols[sym.Name] = sym
	return true
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

// Names lists every name visible from this scope, sorted.
func (st *SymbolTable) Names() []string {
	seen := make(map[string]bool)
	for cur := st; cur != nil; cur = cur.parent {
		for name := range cur.symbols {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
