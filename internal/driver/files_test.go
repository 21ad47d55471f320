package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu10ng/racoon/internal/config"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileFiles(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "build")

	good := writeSource(t, src, "good.sy", "int main() { putint(42); return 0; }")
	bad := writeSource(t, src, "bad.sy", "int main() { return missing; }")

	results, err := CompileFiles(context.Background(), []string{good, bad}, Options{OutDir: out, Emit: config.EmitIR, Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, good, results[0].Path)
	assert.False(t, results[0].Failed())
	assert.Equal(t, filepath.Join(out, "good.ll"), results[0].Output)
	written, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	assert.Equal(t, results[0].IR(), string(written))
	assert.Contains(t, string(written), "call void @putint(i32 42)")

	assert.Equal(t, bad, results[1].Path)
	assert.True(t, results[1].Failed())
	assert.Empty(t, results[1].Output)
	_, err = os.Stat(filepath.Join(out, "bad.ll"))
	assert.True(t, os.IsNotExist(err))
}

func TestCompileFilesEmitAST(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := writeSource(t, src, "prog.sy", "int main() { return 0; }")

	results, err := CompileFiles(context.Background(), []string{path}, Options{OutDir: out, Emit: config.EmitAST})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(out, "prog.ast"), results[0].Output)

	written, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	assert.Equal(t, results[0].Program.String(), string(written))
}

func TestCompileFilesCheckOnly(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := writeSource(t, src, "prog.sy", "int main() { return 0; }")

	results, err := CompileFiles(context.Background(), []string{path}, Options{OutDir: out, CheckOnly: true})
	require.NoError(t, err)
	assert.False(t, results[0].Failed())
	assert.Nil(t, results[0].Module)
	assert.Empty(t, results[0].Output)
}

func TestCompileFilesMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.sy")

	_, err := CompileFiles(context.Background(), []string{missing}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestCompileFilesCancelled(t *testing.T) {
	path := writeSource(t, t.TempDir(), "prog.sy", "int main() { return 0; }")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CompileFiles(ctx, []string{path}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "fib.ll"), OutputPath("out", filepath.Join("tests", "fib.sy"), ".ll"))
	assert.Equal(t, filepath.Join("out", "noext.ast"), OutputPath("out", "noext", ".ast"))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Build.OutDir = "ll"
	cfg.Build.Jobs = 3

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, Options{OutDir: "ll", Emit: config.EmitIR, Jobs: 3}, opts)
}
