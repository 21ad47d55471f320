// Package ir is the in-memory intermediate representation produced by the
// builder: a Module owns functions and globals, each Function owns the
// blocks and instructions of its body. Entities live in generational arenas
// and refer to one another by key, never by pointer.
package ir

// Runtime is the name of each SysY runtime routine together with its
// signature. Calls to these resolve against bodiless declarations.
var Runtime = []struct {
	Name string
	Ty   *FuncType
}{
	{"getint", &FuncType{Ret: I32}},
	{"getch", &FuncType{Ret: I32}},
	{"getarray", &FuncType{Ret: I32, Params: []Type{PtrTo(I32)}}},
	{"putint", &FuncType{Ret: Void, Params: []Type{I32}}},
	{"putch", &FuncType{Ret: Void, Params: []Type{I32}}},
	{"putarray", &FuncType{Ret: Void, Params: []Type{I32, PtrTo(I32)}}},
	{"_sysy_starttime", &FuncType{Ret: Void, Params: []Type{I32}}},
	{"_sysy_stoptime", &FuncType{Ret: Void, Params: []Type{I32}}},
}
