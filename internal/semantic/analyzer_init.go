package semantic

import (
	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

// reshape lays the elements of list out along ty, an array type. The result
// holds at most ty.Size elements; trailing elements that were not written
// are left out and read as zero.
func (a *Analyzer) reshape(ty *ast.Type, list *ast.InitList) *ast.InitList {
	out, used := a.fillArray(ty, list.Elems, list.Pos)
	if used < len(list.Elems) {
		a.addCompilerError(errors.InvalidInitializer(
			"excess elements in array initializer of type "+ty.String(), list.Elems[used].NodePos()))
	}
	return out
}

// fillArray consumes items into one array of type ty and reports how many
// it used. A braced item starts a new sub-array; bare items fill the
// innermost level first, so braces may be elided.
func (a *Analyzer) fillArray(ty *ast.Type, items []ast.Initializer, pos ast.Position) (*ast.InitList, int) {
	out := &ast.InitList{Pos: pos, Type: ty}
	used := 0

	for len(out.Elems) < ty.Size && used < len(items) {
		item := items[used]
		sub, braced := item.(*ast.InitList)

		switch {
		case ty.Elem.Is(ast.ArrayType) && braced:
			out.Elems = append(out.Elems, a.reshape(ty.Elem, sub))
			used++
		case ty.Elem.Is(ast.ArrayType):
			inner, n := a.fillArray(ty.Elem, items[used:], item.NodePos())
			out.Elems = append(out.Elems, inner)
			used += n
		case braced:
			a.addCompilerError(errors.InvalidInitializer("braces around scalar initializer", sub.Pos))
			out.Elems = append(out.Elems, ast.NewIntLiteral(sub.Pos, 0))
			used++
		default:
			expr := item.(ast.Expr)
			a.checkScalar(expr)
			out.Elems = append(out.Elems, expr)
			used++
		}
	}

	return out, used
}

// foldInitList turns a reshaped list into a constant literal. It reports
// whether every leaf folded. With required set, each leaf that does not fold
// is reported.
func (a *Analyzer) foldInitList(list *ast.InitList, required bool) (*ast.LiteralExpr, bool) {
	elems := make([]*ast.LiteralExpr, 0, len(list.Elems))
	allConst := true

	for _, elem := range list.Elems {
		switch elem := elem.(type) {
		case *ast.InitList:
			lit, ok := a.foldInitList(elem, required)
			allConst = allConst && ok
			elems = append(elems, lit)
		case ast.Expr:
			var v int32
			var ok bool
			if required {
				v, ok = a.foldRequired(elem, "initializer")
			} else {
				v, ok = a.tryFold(elem)
			}
			allConst = allConst && ok
			elems = append(elems, ast.NewIntLiteral(elem.NodePos(), v))
		}
	}

	return ast.NewArrayLiteral(list.Pos, list.Type, elems), allConst
}
