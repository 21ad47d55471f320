package lsp

import (
	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/semantic"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the semanticTokenTypes array
// TokenModifiers is a bitmask based on semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

type nameInfo struct {
	tokenType string
	readonly  bool
}

// tokenWalker resolves each identifier against the scopes open at its use
// so that references get the same token type as their declaration.
type tokenWalker struct {
	scopes []map[string]nameInfo
	tokens []SemanticToken
}

func collectSemanticTokens(prog *ast.Program) []SemanticToken {
	if prog == nil {
		return nil
	}

	w := &tokenWalker{}
	w.push()
	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.FuncDecl:
			w.walkFunction(v)
		case *ast.VarDecl:
			w.walkVarDecl(v)
		}
	}
	return w.tokens
}

func (w *tokenWalker) push() {
	w.scopes = append(w.scopes, map[string]nameInfo{})
}

func (w *tokenWalker) pop() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *tokenWalker) declare(id ast.Ident, info nameInfo) {
	w.scopes[len(w.scopes)-1][id.Value] = info
	w.emit(id, info.tokenType, modifierMask(true, info.readonly, false))
}

func (w *tokenWalker) reference(id ast.Ident, call bool) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if info, ok := w.scopes[i][id.Value]; ok {
			w.emit(id, info.tokenType, modifierMask(false, info.readonly, false))
			return
		}
	}
	if call && semantic.IsBuiltin(id.Value) {
		w.emit(id, "function", modifierMask(false, false, true))
		return
	}
	if call {
		w.emit(id, "function", 0)
		return
	}
	w.emit(id, "variable", 0)
}

func (w *tokenWalker) walkFunction(fn *ast.FuncDecl) {
	w.declare(fn.Name, nameInfo{tokenType: "function"})

	w.push()
	defer w.pop()
	for _, p := range fn.Params {
		for _, d := range p.Dims {
			w.walkExpr(d)
		}
		w.declare(p.Name, nameInfo{tokenType: "parameter"})
	}
	if fn.Body != nil {
		// Parameters and the outermost block share a scope.
		w.walkItems(fn.Body.Items)
	}
}

func (w *tokenWalker) walkVarDecl(decl *ast.VarDecl) {
	for _, def := range decl.Defs {
		for _, d := range def.Dims {
			w.walkExpr(d)
		}
		if def.Init != nil {
			w.walkInit(def.Init)
		}
		w.declare(def.Name, nameInfo{tokenType: "variable", readonly: decl.Const})
	}
}

func (w *tokenWalker) walkInit(init ast.Initializer) {
	switch v := init.(type) {
	case *ast.InitList:
		for _, e := range v.Elems {
			w.walkInit(e)
		}
	case ast.Expr:
		w.walkExpr(v)
	}
}

func (w *tokenWalker) walkItems(items []ast.BlockItem) {
	for _, item := range items {
		switch v := item.(type) {
		case *ast.VarDecl:
			w.walkVarDecl(v)
		case ast.Stmt:
			w.walkStmt(v)
		}
	}
}

func (w *tokenWalker) walkStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		w.push()
		w.walkItems(v.Items)
		w.pop()
	case *ast.AssignStmt:
		w.walkExpr(v.Target)
		w.walkExpr(v.Value)
	case *ast.ExprStmt:
		if v.Expr != nil {
			w.walkExpr(v.Expr)
		}
	case *ast.IfStmt:
		w.walkExpr(v.Cond)
		w.walkStmt(v.Then)
		if v.Else != nil {
			w.walkStmt(v.Else)
		}
	case *ast.WhileStmt:
		w.walkExpr(v.Cond)
		w.walkStmt(v.Body)
	case *ast.ReturnStmt:
		if v.Value != nil {
			w.walkExpr(v.Value)
		}
	}
}

func (w *tokenWalker) walkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.LValExpr:
		w.reference(v.Name, false)
		for _, idx := range v.Indices {
			w.walkExpr(idx)
		}
	case *ast.CallExpr:
		w.reference(v.Callee, true)
		for _, arg := range v.Args {
			w.walkExpr(arg)
		}
	case *ast.BinaryExpr:
		w.walkExpr(v.Left)
		w.walkExpr(v.Right)
	case *ast.UnaryExpr:
		w.walkExpr(v.Operand)
	}
}

// emit records a token for id
func (w *tokenWalker) emit(id ast.Ident, tokenType string, modifiers int) {
	if id.Value == "" || id.Pos.Line < 1 || id.Pos.Column < 1 {
		return
	}
	w.tokens = append(w.tokens, SemanticToken{
		Line:           uint32(toUInteger(id.Pos.Line - 1)),   // LSP uses 0-based line numbers
		StartChar:      uint32(toUInteger(id.Pos.Column - 1)), // LSP uses 0-based column numbers
		Length:         uint32(toUInteger(len(id.Value))),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	})
}

func modifierMask(declaration, readonly, defaultLibrary bool) int {
	mask := 0
	if declaration {
		mask |= 1 << indexOf("declaration", SemanticTokenModifiers)
	}
	if readonly {
		mask |= 1 << indexOf("readonly", SemanticTokenModifiers)
	}
	if defaultLibrary {
		mask |= 1 << indexOf("defaultLibrary", SemanticTokenModifiers)
	}
	return mask
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
