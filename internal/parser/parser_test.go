package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu10ng/racoon/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseSource("test.sy", src)
	require.Empty(t, errs)
	require.NotNil(t, prog)
	return prog
}

func mainBody(t *testing.T, prog *ast.Program) []ast.BlockItem {
	t.Helper()
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FuncDecl); ok && fn.Name.Value == "main" {
			return fn.Body.Items
		}
	}
	t.Fatal("no main function")
	return nil
}

func TestParseFunction(t *testing.T) {
	prog := parseOK(t, "int main() { return 1 + 2 * 3; }")
	require.Len(t, prog.Items, 1)

	fn, ok := prog.Items[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name.Value)
	assert.True(t, fn.RetType.Is(ast.IntType))
	assert.Equal(t, "int main() {\n  return (1 + (2 * 3));\n}", fn.String())
}

func TestParseConditionPrecedence(t *testing.T) {
	prog := parseOK(t, `int main() {
    int a, b, c, d, x;
    if (a < b && !c || d == 1) x = 1; else ;
    return -x;
}`)
	body := mainBody(t, prog)
	require.Len(t, body, 3)

	ifStmt, ok := body[1].(*ast.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "(((a < b) && !c) || (d == 1))", ifStmt.Cond.String())

	assign, ok := ifStmt.Then.(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target.Name.Value)

	empty, ok := ifStmt.Else.(*ast.ExprStmt)
	require.True(t, ok)
	assert.Nil(t, empty.Expr)

	ret, ok := body[2].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "-x", ret.Value.String())
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		text string
		want int32
	}{
		{"42", 42},
		{"0x1F", 31},
		{"0XfF", 255},
		{"017", 15},
		{"0", 0},
		{"2147483648", -2147483648},
		{"4294967295", -1},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			prog := parseOK(t, "int main() { return "+tt.text+"; }")
			ret := mainBody(t, prog)[0].(*ast.ReturnStmt)
			lit, ok := ret.Value.(*ast.LiteralExpr)
			require.True(t, ok)
			assert.Equal(t, tt.want, lit.Int)
			assert.True(t, lit.Type().Is(ast.IntType))
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	prog := parseOK(t, "const int N = 4, M = N * 2;\nint a[N][2] = {1, {2, 3}}, s;")
	require.Len(t, prog.Items, 2)

	consts := prog.Items[0].(*ast.VarDecl)
	assert.True(t, consts.Const)
	require.Len(t, consts.Defs, 2)
	assert.Equal(t, "M", consts.Defs[1].Name.Value)
	assert.Equal(t, "(N * 2)", consts.Defs[1].Init.(ast.Expr).String())

	vars := prog.Items[1].(*ast.VarDecl)
	assert.False(t, vars.Const)
	require.Len(t, vars.Defs, 2)

	arr := vars.Defs[0]
	require.Len(t, arr.Dims, 2)
	list, ok := arr.Init.(*ast.InitList)
	require.True(t, ok)
	require.Len(t, list.Elems, 2)
	_, nested := list.Elems[1].(*ast.InitList)
	assert.True(t, nested)

	assert.Nil(t, vars.Defs[1].Init)
}

func TestParseArrayParams(t *testing.T) {
	prog := parseOK(t, "void f(int n, int a[], int m[][4][N]) { }")
	fn := prog.Items[0].(*ast.FuncDecl)

	assert.True(t, fn.RetType.Is(ast.VoidType))
	require.Len(t, fn.Params, 3)
	assert.True(t, fn.Params[0].Type.Is(ast.IntType))
	assert.True(t, fn.Params[1].Type.Is(ast.PtrType))
	assert.Empty(t, fn.Params[1].Dims)
	assert.True(t, fn.Params[2].Type.Is(ast.PtrType))
	assert.Len(t, fn.Params[2].Dims, 2)
}

func TestParseStatements(t *testing.T) {
	prog := parseOK(t, `int main() {
    int i = 0;
    while (i < 10) {
        i = i + 1;
        if (i == 5) continue;
        if (i == 8) break;
    }
    putint(i);
    { ; }
    return 0;
}`)
	body := mainBody(t, prog)
	require.Len(t, body, 5)

	_, ok := body[0].(*ast.VarDecl)
	assert.True(t, ok)

	loop, ok := body[1].(*ast.WhileStmt)
	require.True(t, ok)
	inner := loop.Body.(*ast.Block)
	require.Len(t, inner.Items, 3)
	_, ok = inner.Items[1].(*ast.IfStmt).Then.(*ast.ContinueStmt)
	assert.True(t, ok)
	_, ok = inner.Items[2].(*ast.IfStmt).Then.(*ast.BreakStmt)
	assert.True(t, ok)

	call, ok := body[2].(*ast.ExprStmt).Expr.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "putint", call.Callee.Value)
	require.Len(t, call.Args, 1)

	_, ok = body[3].(*ast.Block)
	assert.True(t, ok)
}

func TestParseComments(t *testing.T) {
	prog := parseOK(t, "// leading\nint /* inline */ main() {\n  /* multi\n     line */ return 0; // trailing\n}\n")
	require.Len(t, prog.Items, 1)
}

func TestParsePositions(t *testing.T) {
	prog := parseOK(t, "const int N = 1;\nint twice(int x) {\n  return x * N;\n}")

	def := prog.Items[0].(*ast.VarDecl).Defs[0]
	assert.Equal(t, 1, def.Name.Pos.Line)
	assert.Equal(t, 11, def.Name.Pos.Column)

	fn := prog.Items[1].(*ast.FuncDecl)
	assert.Equal(t, "test.sy", fn.Pos.Filename)
	assert.Equal(t, 2, fn.Name.Pos.Line)
	assert.Equal(t, 5, fn.Name.Pos.Column)
	assert.Equal(t, 15, fn.Params[0].Name.Pos.Column)

	ret := fn.Body.Items[0].(*ast.ReturnStmt)
	assert.Equal(t, 3, ret.Pos.Line)
	lhs := ret.Value.(*ast.BinaryExpr).Left.(*ast.LValExpr)
	assert.Equal(t, 10, lhs.Name.Pos.Column)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"missing semicolon", "int main() { return 0 }", ""},
		{"not assignable", "int main() { 1 = 2; return 0; }", "left side of assignment is not assignable"},
		{"sized array param", "int f(int a[3]) { return 0; }", "must start with []"},
		{"uninitialized const", "const int a;", `constant "a" must be initialized`},
		{"literal too large", "int main() { return 4294967296; }", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, errs := ParseSource("bad.sy", tt.src)
			assert.Nil(t, prog)
			require.NotEmpty(t, errs)
			assert.Equal(t, 1, errs[0].Position.Line)
			assert.NotEmpty(t, errs[0].Message)
			assert.Contains(t, errs[0].Message, tt.message)
			assert.Contains(t, errs[0].Error(), "bad.sy:1:")
		})
	}
}

func TestParseCollectsLexicalErrors(t *testing.T) {
	source := "int main() {\n  int a = 1 $;\n  int b = 3 #;\n  return a + b;\n}"

	prog, errs := ParseSource("bad.sy", source)
	assert.Nil(t, prog)
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Position.Line)
	assert.Equal(t, 13, errs[0].Position.Column)
	assert.Contains(t, errs[0].Message, `"$"`)
	assert.Equal(t, 3, errs[1].Position.Line)
	assert.Contains(t, errs[1].Message, `"#"`)
}

func TestParseReportsLexicalAndSyntaxErrors(t *testing.T) {
	prog, errs := ParseSource("bad.sy", "int main() {\n  int a = 1 $ 2;\n  int b = 3 # 4;\n  return 0;\n}")
	assert.Nil(t, prog)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Message, `"$"`)
	assert.Contains(t, errs[1].Message, `"#"`)
	assert.Equal(t, 2, errs[2].Position.Line)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.sy")
	require.NoError(t, os.WriteFile(path, []byte("int main() { return 0; }"), 0o644))

	prog, errs := ParseFile(path)
	require.Empty(t, errs)
	require.Len(t, prog.Items, 1)

	_, errs = ParseFile(filepath.Join(t.TempDir(), "missing.sy"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "failed to read file")
}
