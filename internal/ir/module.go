package ir

import "fmt"

// Module is a whole translation unit: every function and global, in
// declaration order.
type Module struct {
	Name    string
	funcs   Arena[FuncID, *Function]
	globals Arena[GlobalID, Global]
	byName  map[string]FuncID
}

func NewModule(name string) *Module {
	return &Module{Name: name, byName: make(map[string]FuncID)}
}

// DeclareFunc adds a function. Name uniqueness is the caller's concern; the
// module only indexes the most recent declaration of a name.
func (m *Module) DeclareFunc(name string, ty *FuncType, builtin bool) FuncID {
	id := m.funcs.Insert(NewFunction(name, ty, builtin))
	if m.byName == nil {
		m.byName = make(map[string]FuncID)
	}
	m.byName[name] = id
	return id
}

// DeclareGlobal adds a global. A nil init means zero-initialized storage.
func (m *Module) DeclareGlobal(name string, ty Type, init Constant, isConst bool) GlobalID {
	return m.globals.Insert(Global{Name: name, Ty: ty, Init: init, Const: isConst})
}

func (m *Module) Func(id FuncID) *Function   { return *m.funcs.Get(id) }
func (m *Module) Global(id GlobalID) *Global { return m.globals.Get(id) }

func (m *Module) FuncByName(name string) (FuncID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Funcs returns the functions in declaration order.
func (m *Module) Funcs() []FuncID { return m.funcs.Keys() }

// Globals returns the globals in declaration order.
func (m *Module) Globals() []GlobalID { return m.globals.Keys() }

// TypeOf resolves the type of op as seen inside fn. A global operand denotes
// its address, so it has pointer type.
func (m *Module) TypeOf(fn *Function, op Operand) Type {
	switch op.Kind {
	case OperandInst:
		return fn.Inst(op.Inst).Type()
	case OperandParam:
		return fn.Param(op.Param).Type()
	case OperandGlobal:
		return PtrTo(m.Global(op.Global).Type())
	case OperandConst:
		return op.Const.Type()
	}
	panic(fmt.Sprintf("ir: operand kind %d has no type", op.Kind))
}
