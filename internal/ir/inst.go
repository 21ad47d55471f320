package ir

// InstKind tags an instruction. The set is closed.
type InstKind uint8

const (
	InstInvalid InstKind = iota

	// Memory
	InstAlloca // allocate a stack slot; Ty is the pointer type
	InstLoad   // Operands: [addr]
	InstStore  // Operands: [value, addr]
	InstGEP    // Operands: [base, idx...]; Ty is the resulting pointer type

	// Arithmetic, Operands: [lhs, rhs]
	InstAdd
	InstSub
	InstMul
	InstSDiv
	InstSRem

	// Comparison, Operands: [lhs, rhs], Ty is i1
	InstEq
	InstNe
	InstSlt
	InstSle
	InstSgt
	InstSge

	// Conversion, Operands: [value]
	InstZext

	// Control
	InstCall   // Operands: args; Callee names the function
	InstBr     // Targets: [dest]
	InstCondBr // Operands: [cond]; Targets: [then, else]
	InstRet    // Operands: [] or [value]
)

var instNames = map[InstKind]string{
	InstAlloca: "alloca",
	InstLoad:   "load",
	InstStore:  "store",
	InstGEP:    "getelementptr",
	InstAdd:    "add",
	InstSub:    "sub",
	InstMul:    "mul",
	InstSDiv:   "sdiv",
	InstSRem:   "srem",
	InstEq:     "icmp eq",
	InstNe:     "icmp ne",
	InstSlt:    "icmp slt",
	InstSle:    "icmp sle",
	InstSgt:    "icmp sgt",
	InstSge:    "icmp sge",
	InstZext:   "zext",
	InstCall:   "call",
	InstBr:     "br",
	InstCondBr: "br",
	InstRet:    "ret",
}

func (k InstKind) String() string {
	if name, ok := instNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsTerminator reports whether k ends a basic block.
func (k InstKind) IsTerminator() bool {
	return k == InstBr || k == InstCondBr || k == InstRet
}

func (k InstKind) IsBinary() bool {
	return k >= InstAdd && k <= InstSRem
}

func (k InstKind) IsCompare() bool {
	return k >= InstEq && k <= InstSge
}

// HasResult reports whether instructions of kind k define a value. Calls
// define one unless they return void.
func (k InstKind) HasResult() bool {
	switch k {
	case InstStore, InstBr, InstCondBr, InstRet:
		return false
	}
	return true
}

// Instruction is one IR operation. Branch targets are control-flow metadata
// kept apart from the data operands.
type Instruction struct {
	Kind     InstKind
	Ty       Type
	Operands []Operand
	Targets  []BlockID
	Callee   FuncID
}

func (i *Instruction) Type() Type { return i.Ty }

// DefinesValue reports whether the instruction produces a usable result.
func (i *Instruction) DefinesValue() bool {
	if !i.Kind.HasResult() {
		return false
	}
	_, void := i.Ty.(*VoidType)
	return !void
}
