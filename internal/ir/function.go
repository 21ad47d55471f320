package ir

import (
	"fmt"
	"slices"
)

// BasicBlock is a straight-line instruction sequence. Once a terminator is
// appended the block is closed.
type BasicBlock struct {
	Insts []InstID
}

// Function is a declared or defined routine. It privately owns the arenas of
// its instructions and blocks; keys from those arenas mean nothing outside it.
type Function struct {
	Name    string
	Ty      *FuncType
	Builtin bool
	Params  []ParamID

	entry  BlockID
	insts  Arena[InstID, Instruction]
	blocks Arena[BlockID, BasicBlock]
	params Arena[ParamID, Param]
	layout []BlockID
}

// NewFunction creates an empty function. Builtins never get a body.
func NewFunction(name string, ty *FuncType, builtin bool) *Function {
	return &Function{Name: name, Ty: ty, Builtin: builtin}
}

func (f *Function) RetType() Type { return f.Ty.Ret }

// Entry returns the first block, if one was set.
func (f *Function) Entry() (BlockID, bool) {
	return f.entry, !f.entry.IsZeroKey()
}

// SetEntry records the entry block. It may be set only once.
func (f *Function) SetEntry(bb BlockID) {
	if !f.entry.IsZeroKey() {
		panic(fmt.Sprintf("ir: entry block of %s already set", f.Name))
	}
	f.blocks.Get(bb)
	f.entry = bb
}

// NewBlock allocates a block at the end of the layout.
func (f *Function) NewBlock() BlockID {
	f.mustHaveBody()
	id := f.blocks.Insert(BasicBlock{})
	f.layout = append(f.layout, id)
	return id
}

// NewBlockAfter allocates a block placed right after `after` in the layout,
// keeping generated blocks in source order.
func (f *Function) NewBlockAfter(after BlockID) BlockID {
	f.mustHaveBody()
	pos := slices.Index(f.layout, after)
	if pos < 0 {
		panic(fmt.Sprintf("ir: block %s is not in %s", Key(after), f.Name))
	}
	id := f.blocks.Insert(BasicBlock{})
	f.layout = slices.Insert(f.layout, pos+1, id)
	return id
}

// AppendInst builds an instruction at the end of bb. Appending to a block
// that already ends in a terminator panics.
func (f *Function) AppendInst(bb BlockID, inst Instruction) InstID {
	block := f.blocks.Get(bb)
	if f.terminated(block) {
		panic(fmt.Sprintf("ir: append %s to terminated block %s in %s", inst.Kind, Key(bb), f.Name))
	}
	id := f.insts.Insert(inst)
	block.Insts = append(block.Insts, id)
	return id
}

// InsertInst builds an instruction at position index of bb, shifting the
// rest down. Terminators can only be appended.
func (f *Function) InsertInst(bb BlockID, index int, inst Instruction) InstID {
	block := f.blocks.Get(bb)
	if inst.Kind.IsTerminator() {
		panic(fmt.Sprintf("ir: insert terminator %s into block %s in %s", inst.Kind, Key(bb), f.Name))
	}
	if index < 0 || index > len(block.Insts) {
		panic(fmt.Sprintf("ir: insert at %d out of range in block %s of %s", index, Key(bb), f.Name))
	}
	id := f.insts.Insert(inst)
	block.Insts = slices.Insert(block.Insts, index, id)
	return id
}

// AddParam appends a parameter of type ty.
func (f *Function) AddParam(ty Type) ParamID {
	id := f.params.Insert(Param{Ty: ty, Index: len(f.Params)})
	f.Params = append(f.Params, id)
	return id
}

func (f *Function) Inst(id InstID) *Instruction  { return f.insts.Get(id) }
func (f *Function) Block(id BlockID) *BasicBlock { return f.blocks.Get(id) }
func (f *Function) Param(id ParamID) *Param      { return f.params.Get(id) }

// Blocks returns the blocks in layout order.
func (f *Function) Blocks() []BlockID { return slices.Clone(f.layout) }

func (f *Function) NumInsts() int { return f.insts.Len() }

// Terminated reports whether bb already ends in a terminator.
func (f *Function) Terminated(bb BlockID) bool {
	return f.terminated(f.blocks.Get(bb))
}

// Terminator returns the terminator of bb, if any.
func (f *Function) Terminator(bb BlockID) (*Instruction, bool) {
	block := f.blocks.Get(bb)
	if !f.terminated(block) {
		return nil, false
	}
	return f.insts.Get(block.Insts[len(block.Insts)-1]), true
}

// Successors derives the successor set of bb from its terminator.
func (f *Function) Successors(bb BlockID) []BlockID {
	term, ok := f.Terminator(bb)
	if !ok {
		return nil
	}
	return slices.Clone(term.Targets)
}

// Predecessors scans every block for terminators targeting bb.
func (f *Function) Predecessors(bb BlockID) []BlockID {
	var preds []BlockID
	for _, id := range f.layout {
		if slices.Contains(f.Successors(id), bb) {
			preds = append(preds, id)
		}
	}
	return preds
}

func (f *Function) terminated(block *BasicBlock) bool {
	n := len(block.Insts)
	return n > 0 && f.insts.Get(block.Insts[n-1]).Kind.IsTerminator()
}

func (f *Function) mustHaveBody() {
	if f.Builtin {
		panic(fmt.Sprintf("ir: builtin %s cannot have a body", f.Name))
	}
}

// IsZeroKey reports whether id is the zero (never valid) key.
func (id BlockID) IsZeroKey() bool { return Key(id).IsZero() }
