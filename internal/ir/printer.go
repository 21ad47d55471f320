package ir

import (
	"fmt"
	"strings"
)

// Printer renders a module as a textual listing. It never mutates the IR.
type Printer struct {
	indent int
	output strings.Builder

	module *Module
	values map[InstID]int
	labels map[BlockID]int
}

// NewPrinter creates a new IR printer
func NewPrinter(m *Module) *Printer {
	return &Printer{module: m}
}

// Print returns the listing of a module
func Print(m *Module) string {
	p := NewPrinter(m)
	p.printModule()
	return p.output.String()
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printModule() {
	globals := p.module.Globals()
	for _, id := range globals {
		p.printGlobal(p.module.Global(id))
	}
	if len(globals) > 0 {
		p.writeLine("")
	}

	// Declarations first so the definitions read top to bottom.
	var defined []*Function
	for _, id := range p.module.Funcs() {
		fn := p.module.Func(id)
		if fn.Builtin {
			p.printDeclare(fn)
			continue
		}
		defined = append(defined, fn)
	}
	for _, fn := range defined {
		p.writeLine("")
		p.printFunction(fn)
	}
}

func (p *Printer) printGlobal(g *Global) {
	kind := "global"
	if g.Const {
		kind = "constant"
	}
	init := g.Init
	if init == nil {
		init = ZeroOf(g.Ty)
	}
	p.writeLine("@%s = %s %s", g.Name, kind, init)
}

func (p *Printer) printDeclare(fn *Function) {
	params := make([]string, len(fn.Ty.Params))
	for i, t := range fn.Ty.Params {
		params[i] = t.String()
	}
	p.writeLine("declare %s @%s(%s)", fn.Ty.Ret, fn.Name, strings.Join(params, ", "))
}

// number assigns %v and bb labels in layout order.
func (p *Printer) number(fn *Function) {
	p.values = make(map[InstID]int)
	p.labels = make(map[BlockID]int)
	next := 0
	for i, bb := range fn.Blocks() {
		p.labels[bb] = i
		for _, id := range fn.Block(bb).Insts {
			if fn.Inst(id).DefinesValue() {
				p.values[id] = next
				next++
			}
		}
	}
}

func (p *Printer) printFunction(fn *Function) {
	p.number(fn)

	params := make([]string, len(fn.Params))
	for i, id := range fn.Params {
		params[i] = fmt.Sprintf("%s %%a%d", fn.Param(id).Ty, fn.Param(id).Index)
	}
	p.writeLine("define %s @%s(%s) {", fn.Ty.Ret, fn.Name, strings.Join(params, ", "))
	for _, bb := range fn.Blocks() {
		p.writeLine("bb%d:", p.labels[bb])
		p.indent++
		for _, id := range fn.Block(bb).Insts {
			p.writeLine("%s", p.instString(fn, id))
		}
		p.indent--
	}
	p.writeLine("}")
}

func (p *Printer) instString(fn *Function, id InstID) string {
	inst := fn.Inst(id)
	body := p.instBody(fn, inst)
	if inst.DefinesValue() {
		return fmt.Sprintf("%%v%d = %s", p.values[id], body)
	}
	return body
}

func (p *Printer) instBody(fn *Function, inst *Instruction) string {
	ops := inst.Operands
	switch {
	case inst.Kind == InstAlloca:
		return fmt.Sprintf("alloca %s", inst.Ty.(*PtrType).Elem)
	case inst.Kind == InstLoad:
		return fmt.Sprintf("load %s, %s", inst.Ty, p.operand(fn, ops[0]))
	case inst.Kind == InstStore:
		return fmt.Sprintf("store %s, %s", p.operand(fn, ops[0]), p.operand(fn, ops[1]))
	case inst.Kind == InstGEP:
		base := p.module.TypeOf(fn, ops[0]).(*PtrType)
		return fmt.Sprintf("getelementptr %s, %s", base.Elem, p.operandList(fn, ops))
	case inst.Kind.IsBinary(), inst.Kind.IsCompare():
		ty := p.module.TypeOf(fn, ops[0])
		return fmt.Sprintf("%s %s %s, %s", inst.Kind, ty, p.ref(fn, ops[0]), p.ref(fn, ops[1]))
	case inst.Kind == InstZext:
		return fmt.Sprintf("zext %s to %s", p.operand(fn, ops[0]), inst.Ty)
	case inst.Kind == InstCall:
		callee := p.module.Func(inst.Callee)
		return fmt.Sprintf("call %s @%s(%s)", callee.Ty.Ret, callee.Name, p.operandList(fn, ops))
	case inst.Kind == InstBr:
		return fmt.Sprintf("br label %%bb%d", p.labels[inst.Targets[0]])
	case inst.Kind == InstCondBr:
		return fmt.Sprintf("br %s, label %%bb%d, label %%bb%d",
			p.operand(fn, ops[0]), p.labels[inst.Targets[0]], p.labels[inst.Targets[1]])
	case inst.Kind == InstRet:
		if len(ops) == 0 {
			return "ret void"
		}
		return fmt.Sprintf("ret %s", p.operand(fn, ops[0]))
	}
	return inst.Kind.String()
}

func (p *Printer) operandList(fn *Function, ops []Operand) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = p.operand(fn, op)
	}
	return strings.Join(parts, ", ")
}

// operand renders a typed reference, e.g. "i32 %v3" or "[4 x i32]* @arr".
func (p *Printer) operand(fn *Function, op Operand) string {
	if op.Kind == OperandConst {
		return op.Const.String()
	}
	return fmt.Sprintf("%s %s", p.module.TypeOf(fn, op), p.ref(fn, op))
}

// ref renders the bare name of an operand.
func (p *Printer) ref(fn *Function, op Operand) string {
	switch op.Kind {
	case OperandInst:
		return fmt.Sprintf("%%v%d", p.values[op.Inst])
	case OperandParam:
		return fmt.Sprintf("%%a%d", fn.Param(op.Param).Index)
	case OperandGlobal:
		return "@" + p.module.Global(op.Global).Name
	case OperandConst:
		if c, ok := op.Const.(*IntConst); ok {
			return fmt.Sprintf("%d", c.Value)
		}
		return op.Const.String()
	}
	return "<none>"
}
