package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tu10ng/racoon/internal/config"
)

// Options controls CompileFiles.
type Options struct {
	// OutDir receives one output file per input. Nothing is written when it
	// is empty.
	OutDir string
	// Emit is config.EmitIR or config.EmitAST.
	Emit string
	// Jobs bounds the number of files compiled at once; 0 means GOMAXPROCS.
	Jobs int
	// CheckOnly stops each compilation after the semantic checker.
	CheckOnly bool
}

// OptionsFromConfig maps the [build] section of cfg onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{OutDir: cfg.Build.OutDir, Emit: cfg.Build.Emit, Jobs: cfg.Build.Jobs}
}

// FileResult is the outcome of compiling one file.
type FileResult struct {
	*Result
	Path   string
	Output string // written file, empty when nothing was written
}

// CompileFiles compiles every path independently and concurrently. Results
// come back in the order of paths. Compile errors stay in each result; the
// returned error is the first I/O failure, which cancels the files not yet
// started.
func CompileFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := compileFile(path, opts)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func compileFile(path string, opts Options) (FileResult, error) {
	fr := FileResult{Path: path, Result: &Result{Name: path}}

	source, err := os.ReadFile(path)
	if err != nil {
		return fr, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if opts.CheckOnly {
		fr.Result, _ = Check(path, string(source))
		return fr, nil
	}
	fr.Result, _ = Compile(path, string(source))
	if fr.Failed() || opts.OutDir == "" {
		return fr, nil
	}

	text, ext := fr.IR(), ".ll"
	if opts.Emit == config.EmitAST {
		text, ext = fr.Program.String(), ".ast"
	}

	out := OutputPath(opts.OutDir, path, ext)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fr, fmt.Errorf("failed to create %s: %w", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fr, fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Infof("wrote %s", out)
	fr.Output = out
	return fr, nil
}

// OutputPath names the file written for input: its base name with the
// extension replaced by ext, inside outDir.
func OutputPath(outDir, input, ext string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+ext)
}
