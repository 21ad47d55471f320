package errors

// Error codes for the racoon compiler
// These codes are used in error messages and in the LSP diagnostics
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: Semantic analysis and IR construction errors
// E0100-E0199: Parser errors
// E0600-E0699: Flow control errors
// W0001-W0099: Warnings

const (
	// E0001: Name resolution errors
	ErrorUndefinedName = "E0001"

	// E0002: Callee is not a function
	ErrorExpectedFunction = "E0002"

	// E0003: Type compatibility errors
	ErrorTypeMismatch = "E0003"

	// E0004: Return value does not match the function
	ErrorInvalidReturn = "E0004"

	// E0005: Array dimension is not a positive constant
	ErrorInvalidArraySize = "E0005"

	// E0006: Assignment to a const binding
	ErrorAssignToConst = "E0006"

	// E0007: Expression must be a compile-time constant
	ErrorNotConstant = "E0007"

	// E0008: Operator applied to unsupported operands
	ErrorInvalidOperation = "E0008"

	// E0009: Duplicate declaration errors
	ErrorDuplicateDeclaration = "E0009"

	// E0010: Initializer does not fit the declared shape
	ErrorInvalidInitializer = "E0010"

	// E0011: Indexing a non-array or over-indexing
	ErrorInvalidIndex = "E0011"

	// E0012: Division by zero in a constant expression
	ErrorDivisionByZero = "E0012"

	// E0013: Function call argument errors
	ErrorInvalidArguments = "E0013"

	// E0020: Void function in expression context
	ErrorVoidInExpression = "E0020"

	// E0100: Syntax error
	ErrorSyntax = "E0100"

	// E0101: Integer literal does not fit in 32 bits
	ErrorNumericOverflow = "E0101"

	// E0600: break or continue outside a loop
	ErrorLoopControlOutsideLoop = "E0600"

	// E0601: Missing return statement
	ErrorMissingReturn = "E0601"

	// W0001: Unreachable code warning
	WarningUnreachableCode = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUndefinedName:
		return "Name is used but not declared in any enclosing scope"
	case ErrorExpectedFunction:
		return "Called name does not refer to a function"
	case ErrorTypeMismatch:
		return "Expression type does not match expected type"
	case ErrorInvalidReturn:
		return "Return value does not match the function's return type"
	case ErrorInvalidArraySize:
		return "Array dimension must be a positive constant"
	case ErrorAssignToConst:
		return "Constants cannot be assigned"
	case ErrorNotConstant:
		return "Expression must be evaluable at compile time"
	case ErrorInvalidOperation:
		return "Operator not supported for these operands"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorInvalidInitializer:
		return "Initializer does not match the declared shape"
	case ErrorInvalidIndex:
		return "Invalid subscript"
	case ErrorDivisionByZero:
		return "Constant expression divides by zero"
	case ErrorInvalidArguments:
		return "Function call has the wrong number of arguments"
	case ErrorVoidInExpression:
		return "Void value used in an expression"
	case ErrorSyntax:
		return "Source does not match the grammar"
	case ErrorNumericOverflow:
		return "Integer literal out of range"
	case ErrorLoopControlOutsideLoop:
		return "break or continue outside a loop"
	case ErrorMissingReturn:
		return "Function declares return type but has no return statement"
	case WarningUnreachableCode:
		return "Code is unreachable"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0600" && code < "E0700":
		return "Flow Control"
	default:
		return "Unknown"
	}
}
