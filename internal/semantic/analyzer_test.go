package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
	"github.com/tu10ng/racoon/internal/parser"
)

func analyze(t *testing.T, source string) (*ast.Program, *Analyzer, []errors.CompilerError) {
	t.Helper()
	prog, parseErrors := parser.ParseSource("test.sy", source)
	require.Empty(t, parseErrors, "Should have no parse errors")
	require.NotNil(t, prog)

	analyzer := NewAnalyzer()
	errs := analyzer.Analyze(prog)
	return prog, analyzer, errs
}

func codes(errs []errors.CompilerError) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Code
	}
	return out
}

func global(prog *ast.Program, name string) *ast.VarDef {
	for _, item := range prog.Items {
		if decl, ok := item.(*ast.VarDecl); ok {
			for _, def := range decl.Defs {
				if def.Name.Value == name {
					return def
				}
			}
		}
	}
	return nil
}

func function(prog *ast.Program, name string) *ast.FuncDecl {
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FuncDecl); ok && fn.Name.Value == name {
			return fn
		}
	}
	return nil
}

func TestValidProgram(t *testing.T) {
	source := `int fib(int n) {
    if (n < 2) return n;
    return fib(n - 1) + fib(n - 2);
}

int main() {
    int i = 0;
    while (i < 10) {
        putint(fib(i));
        putch(10);
        i = i + 1;
    }
    return 0;
}`

	prog, analyzer, errs := analyze(t, source)
	assert.Empty(t, errs)
	assert.Empty(t, analyzer.GetWarnings())
	assert.Equal(t, "int (int)", function(prog, "fib").Ty.String())
	assert.Equal(t, "int ()", function(prog, "main").Ty.String())
}

func TestExpressionTypes(t *testing.T) {
	source := `int main() {
    int a[2][3];
    int x = a[1][2] + 1;
    if (x < 3 && !x) return 1;
    return 0;
}`

	prog, _, errs := analyze(t, source)
	require.Empty(t, errs)

	body := function(prog, "main").Body.Items
	decl := body[1].(*ast.VarDecl)
	init := decl.Defs[0].Init.(*ast.BinaryExpr)
	assert.Equal(t, "int", init.Type().String())
	assert.Equal(t, "int", init.Left.Type().String())

	cond := body[2].(*ast.IfStmt).Cond.(*ast.BinaryExpr)
	assert.Equal(t, "bool", cond.Type().String())
	assert.Equal(t, "bool", cond.Left.Type().String())
	assert.Equal(t, "bool", cond.Right.Type().String())
}

func TestPartialIndexKeepsArrayType(t *testing.T) {
	source := `int main() {
    int a[2][3];
    return getarray(a[1]);
}`

	prog, _, errs := analyze(t, source)
	require.Empty(t, errs)

	call := function(prog, "main").Body.Items[1].(*ast.ReturnStmt).Value.(*ast.CallExpr)
	assert.Equal(t, "int[3]", call.Args[0].Type().String())
	assert.Equal(t, "int", call.Type().String())
}

func TestArrayParameterType(t *testing.T) {
	source := `const int N = 4;
int f(int a[], int m[][N][2]) {
    return a[0] + m[1][2][1];
}`

	prog, _, errs := analyze(t, source)
	require.Empty(t, errs)

	fn := function(prog, "f")
	assert.Equal(t, "int*", fn.Params[0].Type.String())
	assert.Equal(t, "int[4][2]*", fn.Params[1].Type.String())
	assert.Equal(t, "int (int*, int[4][2]*)", fn.Ty.String())
}

func TestArgumentTypeMismatch(t *testing.T) {
	source := `void g(int a[][3]) {}
int main() {
    int x;
    int b[2][4];
    g(x);
    g(b);
    return 0;
}`

	_, _, errs := analyze(t, source)
	require.Len(t, errs, 2)
	assert.Equal(t, errors.ErrorTypeMismatch, errs[0].Code)
	assert.Contains(t, errs[0].Message, "expected int[3]*, found int")
	assert.Contains(t, errs[1].Message, "found int[2][4]")
}

func TestArrayArgumentAccepted(t *testing.T) {
	source := `void g(int a[][3]) {}
int main() {
    int b[2][3];
    int c[4][2][3];
    g(b);
    g(c[1]);
    return 0;
}`

	_, _, errs := analyze(t, source)
	assert.Empty(t, errs)
}

func TestUnknownNamesLeftToBuilder(t *testing.T) {
	source := `int main() {
    int f = 1;
    f();
    putint(1, 2);
    return x + 1;
}`

	prog, _, errs := analyze(t, source)
	assert.Empty(t, errs)

	ret := function(prog, "main").Body.Items[3].(*ast.ReturnStmt).Value.(*ast.BinaryExpr)
	assert.Equal(t, "int", ret.Left.Type().String())
}

func TestVoidInExpression(t *testing.T) {
	source := `void f() {}
int main() {
    return f() + 1;
}`

	_, _, errs := analyze(t, source)
	assert.Equal(t, []string{errors.ErrorVoidInExpression}, codes(errs))
}

func TestVoidCallAsStatement(t *testing.T) {
	source := `void f() {}
int main() {
    f();
    return 0;
}`

	_, _, errs := analyze(t, source)
	assert.Empty(t, errs)
}

func TestInvalidOperation(t *testing.T) {
	source := `int main() {
    int a[3];
    return a + 1;
}`

	_, _, errs := analyze(t, source)
	assert.Equal(t, []string{errors.ErrorInvalidOperation}, codes(errs))
}

func TestTooManySubscripts(t *testing.T) {
	source := `int x;
int main() {
    return x[0];
}`

	_, _, errs := analyze(t, source)
	assert.Equal(t, []string{errors.ErrorInvalidIndex}, codes(errs))
}

func TestAssignToConst(t *testing.T) {
	source := `const int N = 1;
int main() {
    N = 2;
    return 0;
}`

	_, _, errs := analyze(t, source)
	assert.Equal(t, []string{errors.ErrorAssignToConst}, codes(errs))
}

func TestAssignToArray(t *testing.T) {
	source := `int main() {
    int a[2];
    a = 1;
    return 0;
}`

	_, _, errs := analyze(t, source)
	assert.Equal(t, []string{errors.ErrorTypeMismatch}, codes(errs))
}

func TestLoopControlOutsideLoop(t *testing.T) {
	source := `int main() {
    while (1) {
        if (1) break;
        continue;
    }
    break;
    return 0;
}`

	_, analyzer, errs := analyze(t, source)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrorLoopControlOutsideLoop, errs[0].Code)
	assert.Equal(t, 6, errs[0].Position.Line)

	// The rejected break does not make the return after it unreachable.
	assert.Empty(t, analyzer.GetWarnings())
}

func TestInvalidReturn(t *testing.T) {
	source := `void f() { return 1; }
int g() { return; }`

	_, _, errs := analyze(t, source)
	assert.Equal(t, []string{errors.ErrorInvalidReturn, errors.ErrorInvalidReturn}, codes(errs))
}

func TestUnreachableCodeWarning(t *testing.T) {
	source := `int main() {
    return 0;
    putint(1);
    putint(2);
}`

	_, analyzer, errs := analyze(t, source)
	assert.Empty(t, errs)
	warnings := analyzer.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.WarningUnreachableCode, warnings[0].Code)
	assert.Equal(t, 3, warnings[0].Position.Line)
}

func TestMissingReturnWarning(t *testing.T) {
	source := `int f(int x) {
    if (x) return 1;
}
int g(int x) {
    if (x) return 1; else return 2;
}
void h() {}`

	_, analyzer, errs := analyze(t, source)
	assert.Empty(t, errs)
	warnings := analyzer.GetWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.ErrorMissingReturn, warnings[0].Code)
	assert.Equal(t, errors.Warning, warnings[0].Level)
	assert.Contains(t, warnings[0].Message, "'f'")
}

func TestLocalScopes(t *testing.T) {
	source := `int main() {
    const int a = 1;
    {
        int a = a + 1;
        a = 3;
    }
    return a;
}`

	prog, _, errs := analyze(t, source)
	assert.Empty(t, errs)

	ret := function(prog, "main").Body.Items[2].(*ast.ReturnStmt).Value.(*ast.LValExpr)
	require.NotNil(t, ret.Const)
	assert.Equal(t, int32(1), ret.Const.Int)

	inner := function(prog, "main").Body.Items[1].(*ast.Block).Items[0].(*ast.VarDecl).Defs[0]
	init := inner.Init.(*ast.BinaryExpr).Left.(*ast.LValExpr)
	require.NotNil(t, init.Const, "the initializer sees the outer constant")
	assert.Nil(t, inner.ConstInit)
}
