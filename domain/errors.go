// Package domain holds the compiler's error taxonomy and the
// request/response types shared between app, service, mcp, and cmd. It
// follows the shape of the teacher's domain.DomainError exactly: same
// Error()/Unwrap() contract, same NewXxxError-per-code convention.
package domain

import "fmt"

// CompilerError represents every error the compiler core can surface,
// mapped from spec.md §7's taxonomy onto a single struct with one Code
// constant per taxonomy entry (ParseError, ImportFailure,
// DuplicateModule, UnresolvedName, UnresolvedOperator,
// AmbiguousOperator, CoercionFailure, TypeMismatch, ResolverDiverged,
// InvariantViolation).
type CompilerError struct {
	Code     string
	Message  string
	Location string
	Cause    error
}

func (e CompilerError) Error() string {
	prefix := "[" + e.Code + "]"
	if e.Location != "" {
		prefix += " " + e.Location
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

func (e CompilerError) Unwrap() error { return e.Cause }

// Error codes, one per spec.md §7 taxonomy entry.
const (
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeImportFailure     = "IMPORT_FAILURE"
	ErrCodeDuplicateModule   = "DUPLICATE_MODULE"
	ErrCodeUnresolvedName    = "UNRESOLVED_NAME"
	ErrCodeUnresolvedOp      = "UNRESOLVED_OPERATOR"
	ErrCodeAmbiguousOp       = "AMBIGUOUS_OPERATOR"
	ErrCodeCoercionFailure   = "COERCION_FAILURE"
	ErrCodeTypeMismatch      = "TYPE_MISMATCH"
	ErrCodeResolverDiverged  = "RESOLVER_DIVERGED"
	ErrCodeInvariantViolated = "INVARIANT_VIOLATION"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeInternal          = "INTERNAL"
)

func newCompilerError(code, message string, cause error) error {
	return CompilerError{Code: code, Message: message, Cause: cause}
}

// NewParseError wraps a module.ParseError.
func NewParseError(file string, cause error) error {
	return newCompilerError(ErrCodeParseError, fmt.Sprintf("failed to parse %s", file), cause)
}

// NewImportFailureError wraps a module.ImportFailure.
func NewImportFailureError(name string, cause error) error {
	return newCompilerError(ErrCodeImportFailure, fmt.Sprintf("failed to import %s", name), cause)
}

// NewDuplicateModuleError wraps a module.DuplicateModule.
func NewDuplicateModuleError(uid string, cause error) error {
	return newCompilerError(ErrCodeDuplicateModule, fmt.Sprintf("duplicate module %s", uid), cause)
}

// NewUnresolvedNameError reports a name the resolver never matched to a
// declaration by the time the fixed point settled.
func NewUnresolvedNameError(name, location string) error {
	return CompilerError{Code: ErrCodeUnresolvedName, Message: fmt.Sprintf("unresolved name %q", name), Location: location}
}

// NewUnresolvedOperatorError wraps an operator.UnresolvedOperator.
func NewUnresolvedOperatorError(cause error) error {
	return newCompilerError(ErrCodeUnresolvedOp, "no matching operator overload", cause)
}

// NewAmbiguousOperatorError wraps an operator.AmbiguousOperator.
func NewAmbiguousOperatorError(cause error) error {
	return newCompilerError(ErrCodeAmbiguousOp, "ambiguous operator overload", cause)
}

// NewCoercionFailureError wraps an operator.CoercionFailure.
func NewCoercionFailureError(cause error) error {
	return newCompilerError(ErrCodeCoercionFailure, "implicit coercion could not be synthesized", cause)
}

// NewTypeMismatchError reports two types that were expected to unify but
// didn't.
func NewTypeMismatchError(expected, actual, location string) error {
	return CompilerError{
		Code:     ErrCodeTypeMismatch,
		Message:  fmt.Sprintf("expected type %s, got %s", expected, actual),
		Location: location,
	}
}

// NewResolverDivergedError wraps a driver.ResolverDiverged.
func NewResolverDivergedError(cause error) error {
	return newCompilerError(ErrCodeResolverDiverged, "resolver did not reach a fixed point", cause)
}

// NewInvariantViolationError wraps an ast.InvariantViolation, which the
// core returns as an ordinary error rather than raising it as a panic.
func NewInvariantViolationError(cause error) error {
	return newCompilerError(ErrCodeInvariantViolated, "internal invariant violated", cause)
}

// NewConfigError reports a configuration load/parse failure.
func NewConfigError(message string, cause error) error {
	return newCompilerError(ErrCodeConfigError, message, cause)
}

// NewInternalError wraps an unexpected error with no more specific code.
func NewInternalError(message string, cause error) error {
	return newCompilerError(ErrCodeInternal, message, cause)
}
