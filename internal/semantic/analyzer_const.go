package semantic

import (
	goerrors "errors"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

var errNotConstant = goerrors.New("not a constant expression")

// evalConst folds e to an int. Arithmetic wraps like int32 at run time and
// comparisons and logic yield 0 or 1. The error is errNotConstant, or a
// errors.CompilerError for a fault found while folding.
func (a *Analyzer) evalConst(e ast.Expr) (int32, error) {
	switch e := e.(type) {
	case *ast.LiteralExpr:
		if e.Kind != ast.LiteralInt {
			return 0, errNotConstant
		}
		return e.Int, nil

	case *ast.LValExpr:
		return a.evalConstLVal(e)

	case *ast.UnaryExpr:
		v, err := a.evalConst(e.Operand)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case ast.OpNeg:
			return -v, nil
		case ast.OpNot:
			return boolInt(v == 0), nil
		}
		return v, nil

	case *ast.BinaryExpr:
		return a.evalConstBinary(e)
	}
	return 0, errNotConstant
}

func (a *Analyzer) evalConstBinary(e *ast.BinaryExpr) (int32, error) {
	l, err := a.evalConst(e.Left)
	if err != nil {
		return 0, err
	}
	// && and || fold with the same short circuit as at run time.
	switch {
	case e.Op == ast.OpAnd && l == 0:
		return 0, nil
	case e.Op == ast.OpOr && l != 0:
		return 1, nil
	}

	r, err := a.evalConst(e.Right)
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv, ast.OpMod:
		if r == 0 {
			return 0, errors.DivisionByZero(e.Right.NodePos())
		}
		if e.Op == ast.OpDiv {
			return l / r, nil
		}
		return l % r, nil
	case ast.OpLt:
		return boolInt(l < r), nil
	case ast.OpLe:
		return boolInt(l <= r), nil
	case ast.OpGt:
		return boolInt(l > r), nil
	case ast.OpGe:
		return boolInt(l >= r), nil
	case ast.OpEq:
		return boolInt(l == r), nil
	case ast.OpNe:
		return boolInt(l != r), nil
	case ast.OpAnd, ast.OpOr:
		return boolInt(r != 0), nil
	}
	return 0, errNotConstant
}

// evalConstLVal reads a constant, indexing into constant arrays. Elements
// past the end of the written initializer are zero.
func (a *Analyzer) evalConstLVal(e *ast.LValExpr) (int32, error) {
	sym := a.symbols.Lookup(e.Name.Value)
	if sym == nil {
		return 0, errors.UndefinedName(e.Name.Value, e.Name.Pos, a.symbols.Names())
	}
	if sym.Kind != SymbolConstant || sym.Const == nil {
		return 0, errNotConstant
	}

	ty, lit := sym.Type, sym.Const
	for _, idx := range e.Indices {
		i, err := a.evalConst(idx)
		if err != nil {
			return 0, err
		}
		if !ty.Is(ast.ArrayType) || i < 0 || int(i) >= ty.Size {
			return 0, errNotConstant
		}
		ty = ty.Elem
		if lit != nil && int(i) < len(lit.Elems) {
			lit = lit.Elems[i]
		} else {
			lit = nil
		}
	}

	if !ty.Is(ast.IntType) {
		return 0, errNotConstant
	}
	if lit == nil {
		return 0, nil
	}
	return lit.Int, nil
}

// foldRequired folds an already checked expression, reporting why when it
// cannot be folded.
func (a *Analyzer) foldRequired(e ast.Expr, what string) (int32, bool) {
	v, err := a.evalConst(e)
	if err == nil {
		return v, true
	}

	var ce errors.CompilerError
	if goerrors.As(err, &ce) {
		a.addCompilerError(ce)
	} else {
		a.addCompilerError(errors.NotConstant(what, e.NodePos()))
	}
	return 0, false
}

// tryFold folds an already checked expression, silently giving up when it is
// not constant.
func (a *Analyzer) tryFold(e ast.Expr) (int32, bool) {
	v, err := a.evalConst(e)
	return v, err == nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
