package semantic

import (
	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

// checkExpr types e and everything below it, returning the type it
// recorded. Only a call can have type void.
func (a *Analyzer) checkExpr(e ast.Expr) *ast.Type {
	var ty *ast.Type
	switch e := e.(type) {
	case *ast.LiteralExpr:
		ty = e.Type()
		if ty.Is(ast.UnknownType) {
			ty = ast.Int()
		}
	case *ast.LValExpr:
		ty = a.checkLVal(e)
	case *ast.CallExpr:
		ty = a.checkCall(e)
	case *ast.UnaryExpr:
		ty = a.checkUnary(e)
	case *ast.BinaryExpr:
		ty = a.checkBinary(e)
	default:
		ty = ast.Int()
	}
	e.SetType(ty)
	return ty
}

// checkValue types e where its value is used. A void call is reported and
// treated as int from there on.
func (a *Analyzer) checkValue(e ast.Expr) *ast.Type {
	ty := a.checkExpr(e)
	if ty.Is(ast.VoidType) {
		name := ""
		if call, ok := e.(*ast.CallExpr); ok {
			name = call.Callee.Value
		}
		a.addCompilerError(errors.VoidInExpression(name, e.NodePos()))
		return ast.Int()
	}
	return ty
}

// checkScalar types e where an int or bool value is needed.
func (a *Analyzer) checkScalar(e ast.Expr) *ast.Type {
	ty := a.checkValue(e)
	if !ty.IsScalar() {
		a.addTypeMismatchError(ast.Int(), ty, e.NodePos())
		return ast.Int()
	}
	return ty
}

// checkLVal resolves a variable reference. Each subscript steps one level
// into an array or through an array parameter; a partially subscripted
// array keeps its array type. References to scalar constants are folded
// into Const.
func (a *Analyzer) checkLVal(lv *ast.LValExpr) *ast.Type {
	for _, idx := range lv.Indices {
		a.checkScalar(idx)
	}

	sym := a.symbols.Lookup(lv.Name.Value)
	if sym == nil || sym.Kind == SymbolFunction {
		return ast.Int()
	}

	ty := sym.Type
	for range lv.Indices {
		if !ty.Is(ast.ArrayType) && !ty.Is(ast.PtrType) {
			a.addCompilerError(errors.InvalidIndex(lv.Name.Value, lv.Name.Pos))
			return ast.Int()
		}
		ty = ty.Elem
	}

	if sym.Kind == SymbolConstant && ty.Is(ast.IntType) {
		if v, ok := a.tryFold(lv); ok {
			lv.Const = ast.NewIntLiteral(lv.Pos, v)
		}
	}
	return ty
}

func (a *Analyzer) checkCall(call *ast.CallExpr) *ast.Type {
	args := make([]*ast.Type, len(call.Args))
	for i, arg := range call.Args {
		args[i] = a.checkValue(arg)
	}

	sym := a.symbols.Lookup(call.Callee.Value)
	if sym == nil || sym.Kind != SymbolFunction {
		return ast.Int()
	}

	fn := sym.Type
	if len(args) == len(fn.Params) {
		for i, param := range fn.Params {
			if !argAccepts(param, args[i]) {
				a.addTypeMismatchError(param, args[i], call.Args[i].NodePos())
			}
		}
	}
	return fn.Ret
}

// argAccepts reports whether an argument of type arg can be passed for a
// parameter of type param. Arrays decay to a pointer to their first element.
func argAccepts(param, arg *ast.Type) bool {
	if !param.Is(ast.PtrType) {
		return arg.IsScalar()
	}
	switch {
	case arg.Is(ast.ArrayType), arg.Is(ast.PtrType):
		return param.Elem.Equal(arg.Elem)
	}
	return false
}

func (a *Analyzer) checkUnary(e *ast.UnaryExpr) *ast.Type {
	ty := a.checkValue(e.Operand)
	if !ty.IsScalar() {
		a.addCompilerError(errors.InvalidOperation(string(e.Op), ty.String(), e.Pos))
	}
	if e.Op == ast.OpNot {
		return ast.Bool()
	}
	return ast.Int()
}

func (a *Analyzer) checkBinary(e *ast.BinaryExpr) *ast.Type {
	for _, side := range []ast.Expr{e.Left, e.Right} {
		if ty := a.checkValue(side); !ty.IsScalar() {
			a.addCompilerError(errors.InvalidOperation(string(e.Op), ty.String(), side.NodePos()))
		}
	}
	if e.Op.IsComparison() || e.Op.IsLogical() {
		return ast.Bool()
	}
	return ast.Int()
}
