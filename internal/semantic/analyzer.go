// Package semantic checks a parsed program and annotates it for the IR
// builder. Every expression gets a type, constant expressions are folded
// and initializer lists are reshaped to the declared array type.
//
// Unknown names, duplicate declarations, calls of non-functions and
// argument count mismatches are not reported here. Those expressions get a
// placeholder int type and the IR builder reports them.
package semantic

import (
	"github.com/tliron/commonlog"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

var log = commonlog.GetLogger("racoon.semantic")

type Analyzer struct {
	errors      []errors.CompilerError
	warnings    []errors.CompilerError
	symbols     *SymbolTable
	currentFunc *ast.FuncDecl
	loopDepth   int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze checks prog in place and returns the errors found. Warnings are
// available from GetWarnings afterwards.
func (a *Analyzer) Analyze(prog *ast.Program) []errors.CompilerError {
	a.errors = nil
	a.warnings = nil
	a.symbols = NewSymbolTable(nil)
	a.currentFunc = nil
	a.loopDepth = 0

	a.defineBuiltins()

	for _, item := range prog.Items {
		switch node := item.(type) {
		case *ast.VarDecl:
			a.analyzeVarDecl(node, true)
		case *ast.FuncDecl:
			a.analyzeFunction(node)
		}
	}

	log.Debugf("checked %d items: %d errors, %d warnings", len(prog.Items), len(a.errors), len(a.warnings))
	return a.errors
}

// GetErrors returns the errors of the last Analyze call
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

// GetWarnings returns the warnings of the last Analyze call
func (a *Analyzer) GetWarnings() []errors.CompilerError {
	return a.warnings
}

// builtins are the runtime routines every program can call. starttime and
// stoptime take no source arguments.
var builtins = []struct {
	name string
	ty   *ast.Type
}{
	{"getint", ast.FuncOf(ast.Int())},
	{"getch", ast.FuncOf(ast.Int())},
	{"getarray", ast.FuncOf(ast.Int(), ast.PtrTo(ast.Int()))},
	{"putint", ast.FuncOf(ast.Void(), ast.Int())},
	{"putch", ast.FuncOf(ast.Void(), ast.Int())},
	{"putarray", ast.FuncOf(ast.Void(), ast.Int(), ast.PtrTo(ast.Int()))},
	{"starttime", ast.FuncOf(ast.Void())},
	{"stoptime", ast.FuncOf(ast.Void())},
}

// Builtin describes a runtime routine as seen from source.
type Builtin struct {
	Name string
	Type *ast.Type
}

// Builtins lists the runtime routines in declaration order.
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	for i, b := range builtins {
		out[i] = Builtin{Name: b.name, Type: b.ty}
	}
	return out
}

// IsBuiltin reports whether name is a runtime routine.
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}

func (a *Analyzer) defineBuiltins() {
	for _, b := range builtins {
		a.symbols.Define(&Symbol{Name: b.name, Kind: SymbolFunction, Type: b.ty})
	}
}

func (a *Analyzer) enterScope() {
	a.symbols = NewSymbolTable(a.symbols)
}

func (a *Analyzer) exitScope() {
	a.symbols = a.symbols.Parent()
}

func (a *Analyzer) analyzeFunction(fn *ast.FuncDecl) {
	params := make([]*ast.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = a.analyzeParamType(p)
	}
	fn.Ty = ast.FuncOf(fn.RetType, params...)

	// Defined before the body so that recursive calls resolve.
	a.symbols.Define(&Symbol{Name: fn.Name.Value, Kind: SymbolFunction, Type: fn.Ty, Position: fn.Name.Pos})

	a.currentFunc = fn
	a.enterScope()
	for i, p := range fn.Params {
		a.symbols.Define(&Symbol{Name: p.Name.Value, Kind: SymbolParameter, Type: params[i], Position: p.Pos})
	}

	// The parameters and the outermost block share a scope.
	terminated := a.analyzeItems(fn.Body.Items)
	if !terminated && fn.RetType.Is(ast.IntType) {
		a.addWarning(errors.MissingReturn(fn.Name.Value, fn.EndPos))
	}

	a.exitScope()
	a.currentFunc = nil
}

// analyzeParamType folds the trailing dimensions of an array parameter and
// records the resulting pointer type on the parameter.
func (a *Analyzer) analyzeParamType(p *ast.Param) *ast.Type {
	if p.Type.Is(ast.PtrType) {
		p.Type = ast.PtrTo(a.arrayType(p.Dims, ast.Int()))
	}
	return p.Type
}
