package semantic

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

// analyzeItems checks a list of block items and reports whether control
// cannot fall off its end. The first item after a return, break or continue
// is reported as unreachable; it is still checked.
func (a *Analyzer) analyzeItems(items []ast.BlockItem) bool {
	terminated := false
	warned := false

	for _, item := range items {
		if terminated && !warned {
			a.addWarning(errors.UnreachableCode(item.NodePos()))
			warned = true
		}

		switch node := item.(type) {
		case *ast.VarDecl:
			a.analyzeVarDecl(node, false)
		case ast.Stmt:
			if a.analyzeStmt(node) {
				terminated = true
			}
		}
	}
	return terminated
}

// analyzeStmt checks one statement and reports whether it never completes
// normally. A break or continue outside a loop is already an error and does
// not end the block.
func (a *Analyzer) analyzeStmt(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.Block:
		a.enterScope()
		defer a.exitScope()
		return a.analyzeItems(s.Items)

	case *ast.AssignStmt:
		a.analyzeAssign(s)

	case *ast.ExprStmt:
		if s.Expr != nil {
			a.checkExpr(s.Expr)
		}

	case *ast.IfStmt:
		a.checkScalar(s.Cond)
		thenDone := a.analyzeStmt(s.Then)
		if s.Else == nil {
			return false
		}
		elseDone := a.analyzeStmt(s.Else)
		return thenDone && elseDone

	case *ast.WhileStmt:
		a.checkScalar(s.Cond)
		a.loopDepth++
		a.analyzeStmt(s.Body)
		a.loopDepth--

	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.addCompilerError(errors.LoopControlOutsideLoop("break", s.Pos))
			return false
		}
		return true

	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.addCompilerError(errors.LoopControlOutsideLoop("continue", s.Pos))
			return false
		}
		return true

	case *ast.ReturnStmt:
		a.analyzeReturn(s)
		return true
	}
	return false
}

func (a *Analyzer) analyzeAssign(s *ast.AssignStmt) {
	if sym := a.symbols.Lookup(s.Target.Name.Value); sym != nil && sym.Kind == SymbolConstant {
		a.addCompilerError(errors.AssignToConst(s.Target.Name.Value, s.Target.Name.Pos))
	}

	target := a.checkExpr(s.Target)
	if !target.IsScalar() {
		a.addTypeMismatchError(ast.Int(), target, s.Target.Pos)
	}
	a.checkScalar(s.Value)
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt) {
	fn := a.currentFunc
	name := fn.Name.Value

	switch {
	case s.Value == nil && !fn.RetType.Is(ast.VoidType):
		a.addCompilerError(errors.InvalidReturn(name,
			fmt.Sprintf("function '%s' must return a value of type %s", name, fn.RetType), s.Pos))
	case s.Value != nil && fn.RetType.Is(ast.VoidType):
		a.checkExpr(s.Value)
		a.addCompilerError(errors.InvalidReturn(name,
			fmt.Sprintf("void function '%s' cannot return a value", name), s.Value.NodePos()))
	case s.Value != nil:
		a.checkScalar(s.Value)
	}
}
