package errors

import (
	"fmt"
	"strings"

	"github.com/tu10ng/racoon/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	b := NewSemanticError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Common error constructors with suggestions

// UndefinedName creates an error for an identifier with no visible declaration
func UndefinedName(name string, pos ast.Position, candidates []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedName, fmt.Sprintf("cannot find '%s' in this scope", name), pos).
		WithLength(len(name))

	similar := FindSimilarNames(name, candidates)
	switch len(similar) {
	case 0:
		builder = builder.WithSuggestion("make sure the name is declared before use")
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.Build()
}

// ExpectedFunction creates an error for calling something that is not a function
func ExpectedFunction(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorExpectedFunction, fmt.Sprintf("'%s' is not a function", name), pos).
		WithLength(len(name)).
		WithNote("a local or global variable shadows any function of the same name").
		Build()
}

// TypeMismatch creates an error for type mismatches
func TypeMismatch(expected, found string, pos ast.Position) CompilerError {
	builder := NewSemanticError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, found), pos)

	if strings.HasSuffix(expected, "*") && strings.Contains(found, "[") {
		builder = builder.WithNote("arrays passed as arguments must agree in every dimension but the first")
	}

	return builder.Build()
}

// InvalidReturn creates an error for a return that does not fit the function
func InvalidReturn(functionName, message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidReturn, message, pos).
		WithHelp(fmt.Sprintf("check the declared return type of '%s'", functionName)).
		Build()
}

// InvalidArraySize creates an error for a non-positive array dimension
func InvalidArraySize(size int64, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidArraySize, fmt.Sprintf("array dimension must be positive, found %d", size), pos).
		Build()
}

// AssignToConst creates an error for an assignment whose target is a constant
func AssignToConst(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorAssignToConst, fmt.Sprintf("cannot assign to constant '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("declare '%s' without 'const' if it needs to change", name)).
		Build()
}

// NotConstant creates an error for an expression that must fold at compile time
func NotConstant(what string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNotConstant, fmt.Sprintf("%s must be a constant expression", what), pos).
		WithNote("constant expressions may only use literals, constants and arithmetic").
		Build()
}

// InvalidOperation creates an error for an operator applied to unsupported operands
func InvalidOperation(op, operandType string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidOperation, fmt.Sprintf("operator '%s' cannot be applied to %s", op, operandType), pos).
		WithSuggestion("operators only apply to scalar int values").
		Build()
}

// DuplicateDeclaration creates an error for duplicate declarations
func DuplicateDeclaration(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("'%s' is already declared in this scope", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote("identifiers must be unique within their scope").
		Build()
}

// InvalidInitializer creates an error for an initializer that does not fit the declaration
func InvalidInitializer(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidInitializer, message, pos).Build()
}

// InvalidIndex creates an error for subscripting something that cannot be subscripted
func InvalidIndex(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidIndex, fmt.Sprintf("too many subscripts on '%s'", name), pos).
		WithLength(len(name)).
		Build()
}

// DivisionByZero creates an error for a constant expression dividing by zero
func DivisionByZero(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDivisionByZero, "division by zero in constant expression", pos).Build()
}

// InvalidArguments creates an error for function call argument mismatches
func InvalidArguments(functionName string, expected, actual int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidArguments,
		fmt.Sprintf("function '%s' expects %d arguments, got %d", functionName, expected, actual), pos).
		WithSuggestion(fmt.Sprintf("provide exactly %d argument(s)", expected)).
		Build()
}

// VoidInExpression creates an error for using the result of a void call
func VoidInExpression(functionName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorVoidInExpression, fmt.Sprintf("'%s' returns void and has no value", functionName), pos).
		WithLength(len(functionName)).
		Build()
}

// LoopControlOutsideLoop creates an error for break or continue with no enclosing loop
func LoopControlOutsideLoop(keyword string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorLoopControlOutsideLoop, fmt.Sprintf("'%s' outside of a loop", keyword), pos).
		WithLength(len(keyword)).
		Build()
}

// MissingReturn creates an error for a non-void function whose last statement is not a return
func MissingReturn(functionName string, pos ast.Position) CompilerError {
	return NewSemanticWarning(ErrorMissingReturn, fmt.Sprintf("function '%s' may reach its end without returning a value", functionName), pos).
		WithNote("the function returns 0 when control reaches its end").
		Build()
}

// UnreachableCode creates a warning for statements after return, break or continue
func UnreachableCode(pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnreachableCode, "unreachable statement", pos).
		WithSuggestion("remove this code").
		Build()
}

// SyntaxError creates an error reported by the parser
func SyntaxError(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorSyntax, message, pos).Build()
}

// NumericOverflow creates an error for an integer literal that does not fit in 32 bits
func NumericOverflow(literal string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNumericOverflow, fmt.Sprintf("integer literal %s is out of range", literal), pos).
		WithLength(len(literal)).
		Build()
}

// FindSimilarNames returns the candidates within edit distance 2 of target
func FindSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && len(candidate) > 2 && levenshteinDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
