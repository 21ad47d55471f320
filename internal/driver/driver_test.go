package driver

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu10ng/racoon/internal/errors"
)

func TestCompile(t *testing.T) {
	source := `int g = 3;
int main() {
    int x = getint();
    return x + g;
}`

	result, err := Compile("main.sy", source)
	require.NoError(t, err)
	assert.Equal(t, StageDone, result.Stage)
	assert.False(t, result.Failed())
	require.NotNil(t, result.Module)

	expected := strings.Join([]string{
		"@g = global i32 3",
		"",
		"declare i32 @getint()",
		"declare i32 @getch()",
		"declare i32 @getarray(i32*)",
		"declare void @putint(i32)",
		"declare void @putch(i32)",
		"declare void @putarray(i32, i32*)",
		"declare void @_sysy_starttime(i32)",
		"declare void @_sysy_stoptime(i32)",
		"",
		"define i32 @main() {",
		"bb0:",
		"  %v0 = alloca i32",
		"  %v1 = call i32 @getint()",
		"  store i32 %v1, i32* %v0",
		"  %v2 = load i32, i32* %v0",
		"  %v3 = load i32, i32* @g",
		"  %v4 = add i32 %v2, %v3",
		"  ret i32 %v4",
		"}",
		"",
	}, "\n")
	assert.Equal(t, expected, result.IR())
}

func TestCompileParenthesizedCondition(t *testing.T) {
	source := `int main() {
    int a = getint();
    return (a > 0 || a < -5) + 1;
}`

	result, err := Compile("main.sy", source)
	require.NoError(t, err)
	require.False(t, result.Failed(), "%v", result.Errors)

	// The condition value is materialized through a stack slot.
	assert.Contains(t, result.IR(), "store i32 1, i32* %v1")
	assert.Contains(t, result.IR(), "store i32 0, i32* %v1")
	assert.Equal(t, 2, strings.Count(result.IR(), "br i1"))
}

func TestCompileStopsAtFirstFailingStage(t *testing.T) {
	tests := []struct {
		name   string
		source string
		stage  Stage
		code   string
	}{
		{"syntax", "int main() { return 0 }", StageParse, errors.ErrorSyntax},
		{"literal range", "int main() { return 4294967296; }", StageParse, errors.ErrorSyntax},
		{"check", "int main() { break; return 0; }", StageCheck, errors.ErrorLoopControlOutsideLoop},
		{"unknown name", "int main() { return y; }", StageBuild, errors.ErrorUndefinedName},
		{"duplicate", "int a; int a; int main() { return 0; }", StageBuild, errors.ErrorDuplicateDeclaration},
		{"arity", "int main() { putint(); return 0; }", StageBuild, errors.ErrorInvalidArguments},
		{"not a function", "int main() { int f; return f(); }", StageBuild, errors.ErrorExpectedFunction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compile("test.sy", tt.source)
			require.Error(t, err)

			var de *DiagnosticsError
			require.True(t, goerrors.As(err, &de))
			assert.Equal(t, tt.stage, de.Stage)

			assert.Equal(t, tt.stage, result.Stage)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.code, result.Errors[0].Code)
			assert.Nil(t, result.Module)
			assert.Empty(t, result.IR())
		})
	}
}

func TestCompileKeepsWarnings(t *testing.T) {
	result, err := Compile("test.sy", "int f() { putint(1); }\nint main() { return f(); }")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, errors.ErrorMissingReturn, result.Warnings[0].Code)
	assert.Contains(t, result.IR(), "ret i32 0")
}

func TestCheck(t *testing.T) {
	result, err := Check("test.sy", "int main() { return y; }")
	require.NoError(t, err, "unknown names are reported by the builder")
	assert.Equal(t, StageDone, result.Stage)
	assert.NotNil(t, result.Program)
	assert.Nil(t, result.Module)
}

func TestDiagnosticsErrorMessage(t *testing.T) {
	_, err := Compile("bad.sy", "int main() { return y; }")
	require.Error(t, err)
	assert.Equal(t, "bad.sy:1:21: error[E0001]: cannot find 'y' in this scope", err.Error())
}
