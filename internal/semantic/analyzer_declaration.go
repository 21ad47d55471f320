package semantic

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

// analyzeVarDecl types every declarator of decl and binds it in the current
// scope. A name is bound only after its initializer has been checked.
func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl, global bool) {
	kind := SymbolVariable
	if decl.Const {
		kind = SymbolConstant
	}

	for _, def := range decl.Defs {
		def.Type = a.arrayType(def.Dims, ast.Int())

		if def.Init != nil {
			a.analyzeInit(def, decl.Const || global)
		}

		sym := &Symbol{Name: def.Name.Value, Kind: kind, Type: def.Type, Position: def.Pos}
		if decl.Const {
			sym.Const = def.ConstInit
		}
		a.symbols.Define(sym)
	}
}

// arrayType builds base[d0][d1]... from the dimension expressions, which
// must fold to positive constants. A bad dimension is reported and replaced
// by 1 so that checking can continue.
func (a *Analyzer) arrayType(dims []ast.Expr, base *ast.Type) *ast.Type {
	ty := base
	for i := len(dims) - 1; i >= 0; i-- {
		a.checkScalar(dims[i])
		size, ok := a.foldRequired(dims[i], "array dimension")
		if ok && size <= 0 {
			a.addCompilerError(errors.InvalidArraySize(int64(size), dims[i].NodePos()))
		}
		if !ok || size <= 0 {
			size = 1
		}
		ty = ast.ArrayOf(int(size), ty)
	}
	return ty
}

// analyzeInit checks the initializer of def against def.Type. When
// requireConst is set every leaf must fold and def.ConstInit is always
// filled; otherwise ConstInit is filled for array initializers that happen
// to be fully constant.
func (a *Analyzer) analyzeInit(def *ast.VarDef, requireConst bool) {
	if !def.Type.Is(ast.ArrayType) {
		expr, ok := def.Init.(ast.Expr)
		if !ok {
			a.addCompilerError(errors.InvalidInitializer(
				fmt.Sprintf("scalar '%s' cannot be initialized with a brace list", def.Name.Value), def.Init.NodePos()))
			return
		}
		a.checkScalar(expr)
		if requireConst {
			if v, ok := a.foldRequired(expr, "initializer"); ok {
				def.ConstInit = ast.NewIntLiteral(expr.NodePos(), v)
			}
		}
		return
	}

	list, ok := def.Init.(*ast.InitList)
	if !ok {
		a.addCompilerError(errors.InvalidInitializer(
			fmt.Sprintf("array '%s' must be initialized with a brace list", def.Name.Value), def.Init.NodePos()))
		return
	}

	normalized := a.reshape(def.Type, list)
	def.Init = normalized
	if lit, ok := a.foldInitList(normalized, requireConst); ok {
		def.ConstInit = lit
	}
}
