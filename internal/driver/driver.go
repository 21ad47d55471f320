// Package driver runs the compiler pipeline: parse, check, build the IR
// module and print it.
package driver

import (
	goerrors "errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
	"github.com/tu10ng/racoon/internal/ir"
	"github.com/tu10ng/racoon/internal/irbuilder"
	"github.com/tu10ng/racoon/internal/parser"
	"github.com/tu10ng/racoon/internal/semantic"
)

var log = commonlog.GetLogger("racoon.driver")

// Stage names a step of the pipeline.
type Stage string

const (
	StageParse Stage = "parse"
	StageCheck Stage = "check"
	StageBuild Stage = "build"
	StageDone  Stage = "done"
)

// Result is everything one compilation produced. Stage is the step that
// failed, or StageDone.
type Result struct {
	Name     string
	Source   string
	Stage    Stage
	Program  *ast.Program
	Module   *ir.Module
	Errors   []errors.CompilerError
	Warnings []errors.CompilerError
}

func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// IR renders the built module, empty when the build failed.
func (r *Result) IR() string {
	if r.Module == nil {
		return ""
	}
	return ir.Print(r.Module)
}

// DiagnosticsError reports that a compilation stopped with errors. The
// errors themselves are in the Result.
type DiagnosticsError struct {
	Name   string
	Stage  Stage
	Errors []errors.CompilerError
}

func (e *DiagnosticsError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s:%s", e.Name, e.Errors[0].Error())
	}
	return fmt.Sprintf("%s: %s failed with %d errors, first %s", e.Name, e.Stage, len(e.Errors), e.Errors[0].Error())
}

// Compile runs the whole pipeline on src. The result is always returned;
// the error is a *DiagnosticsError when any stage reported errors.
func Compile(name, src string) (*Result, error) {
	result := &Result{Name: name, Source: src}
	if !result.check() {
		return result, result.fail()
	}

	result.Stage = StageBuild
	module, err := irbuilder.Build(name, result.Program)
	if err != nil {
		var be *irbuilder.Error
		if !goerrors.As(err, &be) {
			return result, err
		}
		result.Errors = append(result.Errors, be.CompilerError())
		return result, result.fail()
	}
	result.Module = module

	result.Stage = StageDone
	log.Debugf("compiled %s: %d functions, %d globals", name, len(module.Funcs()), len(module.Globals()))
	return result, nil
}

// Check runs the pipeline up to and including the semantic checker.
func Check(name, src string) (*Result, error) {
	result := &Result{Name: name, Source: src}
	if !result.check() {
		return result, result.fail()
	}
	result.Stage = StageDone
	return result, nil
}

// check parses and checks the source, reporting whether both succeeded.
func (r *Result) check() bool {
	r.Stage = StageParse
	prog, parseErrors := parser.ParseSource(r.Name, r.Source)
	for _, pe := range parseErrors {
		r.Errors = append(r.Errors, errors.SyntaxError(pe.Message, pe.Position))
	}
	if r.Failed() {
		return false
	}
	r.Program = prog

	r.Stage = StageCheck
	analyzer := semantic.NewAnalyzer()
	r.Errors = analyzer.Analyze(prog)
	r.Warnings = analyzer.GetWarnings()
	return !r.Failed()
}

func (r *Result) fail() error {
	log.Debugf("%s stopped at %s with %d errors", r.Name, r.Stage, len(r.Errors))
	return &DiagnosticsError{Name: r.Name, Stage: r.Stage, Errors: r.Errors}
}
