package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI with an empty racoon.toml so that the developer's
// own configuration never leaks into the test.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfg := writeFile(t, t.TempDir(), "racoon.toml", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never", "--config", cfg}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildToStdout(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.sy", "int main() { putint(7); return 0; }")

	stdout, stderr, err := run(t, "build", "-o", "-", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "define i32 @main() {")
	assert.Contains(t, stdout, "call void @putint(i32 7)")
	assert.Contains(t, stderr, "Successfully processed 1 files")
}

func TestBuildEmitAST(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.sy", "int main() { return 0; }")

	stdout, _, err := run(t, "build", "-o", "-", "--emit", "ast", src)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "define")
	assert.Contains(t, stdout, "main")
}

func TestBuildWritesOutputDir(t *testing.T) {
	src := writeFile(t, t.TempDir(), "prog.sy", "int main() { return 0; }")
	out := t.TempDir()

	_, _, err := run(t, "build", "-o", out, src)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(out, "prog.ll"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "ret i32 0")
}

func TestBuildReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sy", "int main() { return 0; }")
	bad := writeFile(t, dir, "bad.sy", "int main() {\n    return y;\n}\n")

	_, stderr, err := run(t, "build", "-o", t.TempDir(), good, bad)
	require.ErrorIs(t, err, errCompilationFailed)
	assert.Contains(t, stderr, "cannot find 'y' in this scope")
	assert.Contains(t, stderr, "Compilation failed for 1 of 2 files")
}

func TestBuildInvalidEmit(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.sy", "int main() { return 0; }")

	_, _, err := run(t, "build", "--emit", "asm", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --emit")
}

func TestBuildMissingFile(t *testing.T) {
	_, _, err := run(t, "build", "-o", "-", filepath.Join(t.TempDir(), "missing.sy"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errCompilationFailed)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "main.sy", "int main() { while (1) { break; } return 0; }")

	stdout, stderr, err := run(t, "check", src)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Successfully processed 1 files")

	_, err = os.Stat(filepath.Join(dir, "main.ll"))
	assert.True(t, os.IsNotExist(err), "check never writes output")
}

func TestCheckReportsWarnings(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.sy", "int main() { return 0; putint(1); }")

	_, stderr, err := run(t, "check", src)
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning")
}

func TestInvalidColorMode(t *testing.T) {
	src := writeFile(t, t.TempDir(), "main.sy", "int main() { return 0; }")
	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--color", "rainbow", "--config", writeFile(t, t.TempDir(), "racoon.toml", ""), "check", src})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --color")
}

func TestApplyColorMode(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	require.NoError(t, applyColorMode("always", false))
	assert.False(t, color.NoColor)

	require.NoError(t, applyColorMode("never", true))
	assert.True(t, color.NoColor)

	color.NoColor = false
	require.NoError(t, applyColorMode("auto", false))
	assert.True(t, color.NoColor)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{2 * time.Minute, "2.00min"},
		{1500 * time.Millisecond, "1.50s"},
		{2500 * time.Microsecond, "2.5ms"},
		{1500 * time.Nanosecond, "1.5μs"},
		{42 * time.Nanosecond, "42ns"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}
