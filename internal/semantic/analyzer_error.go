package semantic

import (
	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	a.errors = append(a.errors, err)
}

func (a *Analyzer) addWarning(err errors.CompilerError) {
	a.warnings = append(a.warnings, err)
}

func (a *Analyzer) addTypeMismatchError(expected, found *ast.Type, pos ast.Position) {
	a.addCompilerError(errors.TypeMismatch(expected.String(), found.String(), pos))
}
