package irbuilder

import (
	"fmt"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
	"github.com/tu10ng/racoon/internal/ir"
)

// ErrorKind classifies a failed IR construction.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	ErrTypeMismatch
	ErrUnknownName
	ErrDuplicateName
	ErrWrongParamLength
	ErrExpectedFunction
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrUnknownName:
		return "UnknownName"
	case ErrDuplicateName:
		return "DuplicateName"
	case ErrWrongParamLength:
		return "WrongParamLength"
	case ErrExpectedFunction:
		return "ExpectedFunction"
	}
	return "None"
}

// Error is the first problem found while building. Which fields are set
// depends on Kind: Name for name errors, Expected/Found for type mismatches
// and ExpectedLen/FoundLen for arity mismatches.
type Error struct {
	Kind        ErrorKind
	Pos         ast.Position
	Name        string
	Expected    ir.Type
	Found       ir.Type
	ExpectedLen int
	FoundLen    int

	// Candidates are the names visible where an unknown name was used.
	Candidates []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrTypeMismatch:
		return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
	case ErrUnknownName:
		return fmt.Sprintf("unknown name %q", e.Name)
	case ErrDuplicateName:
		return fmt.Sprintf("duplicate name %q", e.Name)
	case ErrWrongParamLength:
		return fmt.Sprintf("wrong number of arguments to %q: expected %d, found %d", e.Name, e.ExpectedLen, e.FoundLen)
	case ErrExpectedFunction:
		return fmt.Sprintf("%q is not a function", e.Name)
	}
	return "irbuilder: unknown error"
}

// CompilerError converts e for the reporter.
func (e *Error) CompilerError() errors.CompilerError {
	switch e.Kind {
	case ErrTypeMismatch:
		return errors.TypeMismatch(e.Expected.String(), e.Found.String(), e.Pos)
	case ErrUnknownName:
		return errors.UndefinedName(e.Name, e.Pos, e.Candidates)
	case ErrDuplicateName:
		return errors.DuplicateDeclaration(e.Name, e.Pos)
	case ErrWrongParamLength:
		return errors.InvalidArguments(e.Name, e.ExpectedLen, e.FoundLen, e.Pos)
	case ErrExpectedFunction:
		return errors.ExpectedFunction(e.Name, e.Pos)
	}
	return errors.NewSemanticError(errors.ErrorTypeMismatch, e.Error(), e.Pos).Build()
}

func typeMismatch(pos ast.Position, expected, found ir.Type) *Error {
	return &Error{Kind: ErrTypeMismatch, Pos: pos, Expected: expected, Found: found}
}

func duplicateName(pos ast.Position, name string) *Error {
	return &Error{Kind: ErrDuplicateName, Pos: pos, Name: name}
}
