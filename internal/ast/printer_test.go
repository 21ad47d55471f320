package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/parser"
	"github.com/tu10ng/racoon/internal/semantic"
)

func TestProgramString(t *testing.T) {
	prog, errs := parser.ParseSource("test.sy", `const int N = 2 + 2;
int a[N] = {1};
int sum(int v[], int n) {
  int i = 0, s = 0;
  while (i < n) {
    if (v[i] > 0) s = s + v[i]; else continue;
    i = i + 1;
  }
  return s;
}`)
	require.Empty(t, errs)

	expected := `const int N = (2 + 2);

int a[N] = {1};

int sum(int v[], int n) {
  int i = 0, s = 0;
  while ((i < n)) {
    if ((v[i] > 0)) s = (s + v[i]); else continue;
    i = (i + 1);
  }
  return s;
}
`
	assert.Equal(t, expected, prog.String())
}

func TestCheckedProgramString(t *testing.T) {
	prog, errs := parser.ParseSource("test.sy", "const int N = 2 + 2;\nint m[N / 2][2];\nvoid f(int g[][N]) { return; }")
	require.Empty(t, errs)
	require.Empty(t, semantic.NewAnalyzer().Analyze(prog))

	expected := "const int N = 4;\n\nint m[2][2];\n\nvoid f(int g[][4]) {\n  return;\n}\n"
	assert.Equal(t, expected, prog.String())
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		ty   *ast.Type
		want string
	}{
		{ast.Int(), "int"},
		{ast.Void(), "void"},
		{ast.Bool(), "bool"},
		{ast.ArrayOf(3, ast.ArrayOf(4, ast.Int())), "int[3][4]"},
		{ast.PtrTo(ast.ArrayOf(2, ast.Int())), "int[2]*"},
		{ast.FuncOf(ast.Int(), ast.Int(), ast.PtrTo(ast.Int())), "int (int, int*)"},
		{ast.Unknown(), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ty.String())
	}
}

func TestTypeEqual(t *testing.T) {
	assert.True(t, ast.ArrayOf(2, ast.Int()).Equal(ast.ArrayOf(2, ast.Int())))
	assert.False(t, ast.ArrayOf(2, ast.Int()).Equal(ast.ArrayOf(3, ast.Int())))
	assert.False(t, ast.PtrTo(ast.Int()).Equal(ast.ArrayOf(1, ast.Int())))
	assert.True(t, ast.FuncOf(ast.Void(), ast.Int()).Equal(ast.FuncOf(ast.Void(), ast.Int())))
	assert.False(t, ast.FuncOf(ast.Void(), ast.Int()).Equal(ast.FuncOf(ast.Void())))
	assert.Equal(t, []int{3, 4}, ast.ArrayOf(3, ast.ArrayOf(4, ast.Int())).Dims())
}

func TestExprUsableAsInitializer(t *testing.T) {
	var value ast.Expr = ast.NewIntLiteral(ast.Position{Line: 1, Column: 9}, 7)
	list := &ast.InitList{Elems: []ast.Initializer{value}}

	elem, ok := list.Elems[0].(ast.Expr)
	assert.True(t, ok)
	assert.Equal(t, "7", elem.String())
	assert.Equal(t, 9, elem.NodePos().Column)
}
