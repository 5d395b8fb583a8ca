package diag

import (
	"fmt"

	"antimony/internal/source"
)

// Code classifies a diagnostic by the rule it violates.
type Code uint8

const (
	CodeUnknown Code = iota
	// UndefinedSymbol covers unknown variables, functions, methods,
	// structs and fields.
	UndefinedSymbol
	// TypeMismatch covers assignability, operator and condition
	// violations.
	TypeMismatch
	// ArityMismatch covers call argument count violations.
	ArityMismatch
	// StructuralError covers duplicate type names, zero-length arrays and
	// other malformed type shapes.
	StructuralError
	// ContextError covers break/continue/return used outside the scope
	// kind they require.
	ContextError
)

func (c Code) String() string {
	switch c {
	case UndefinedSymbol:
		return "undefined-symbol"
	case TypeMismatch:
		return "type-mismatch"
	case ArityMismatch:
		return "arity-mismatch"
	case StructuralError:
		return "structural-error"
	case ContextError:
		return "context-error"
	default:
		return "unknown"
	}
}

// Diagnostic is a position/message pair produced by the checker. The first
// diagnostic aborts the check; there is no recovery or accumulation.
type Diagnostic struct {
	Code    Code
	Span    source.Span
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Newf builds a diagnostic with a formatted message.
func Newf(code Code, span source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Span: span, Message: fmt.Sprintf(format, args...)}
}
