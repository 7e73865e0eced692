package diag

import "fmt"

// Pos marks a 1-based line/column location in a file.
type Pos struct{ Line, Col int }

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Span marks a half-open range [Start, End) within a file.
type Span struct {
	Start Pos
	End   Pos
}

/* ---------- kinds ---------- */

// Kind classifies a diagnostic. Kinds are themselves errors so callers can
// test a returned diagnostic with errors.Is(err, diag.Redeclaration).
type Kind int

const (
	Internal Kind = iota
	Syntax
	Redeclaration
	UndeclaredName
	TypeMismatch
	NotCallable
	ArityMismatch
	IllegalControlFlow
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Redeclaration:
		return "RedeclarationError"
	case UndeclaredName:
		return "UndeclaredNameError"
	case TypeMismatch:
		return "TypeMismatchError"
	case NotCallable:
		return "NotCallableError"
	case ArityMismatch:
		return "ArityMismatchError"
	case IllegalControlFlow:
		return "IllegalControlFlowError"
	default:
		return "InternalError"
	}
}

func (k Kind) Error() string { return k.String() }

// catalogKey is the key of the kind inside its codes.json domain.
func (k Kind) catalogKey() (domain, key string) {
	switch k {
	case Syntax:
		return "parser", "unexpected_token"
	case Redeclaration:
		return "check", "redeclaration"
	case UndeclaredName:
		return "check", "undeclared_name"
	case TypeMismatch:
		return "check", "type_mismatch"
	case NotCallable:
		return "check", "not_callable"
	case ArityMismatch:
		return "check", "arity_mismatch"
	case IllegalControlFlow:
		return "check", "illegal_control_flow"
	default:
		return "check", "internal"
	}
}

/* ---------- diagnostics ---------- */

// Diagnostic is a compiler message with an optional span.
type Diagnostic struct {
	Kind Kind
	Code string // e.g., SE0001
	Span Span
	Msg  string
}

// New builds a diagnostic at pos, resolving its code from the catalog.
func New(kind Kind, pos Pos, format string, args ...any) *Diagnostic {
	domain, key := kind.catalogKey()
	ce := MustLookup(domain, key, "SE0000", kind.String())
	return &Diagnostic{
		Kind: kind,
		Code: ce.ID,
		Span: Span{Start: pos, End: pos},
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (d *Diagnostic) Error() string {
	if d.Span.Start.Line == 0 {
		return d.Msg
	}
	return fmt.Sprintf("%d:%d %s", d.Span.Start.Line, d.Span.Start.Col, d.Msg)
}

// Unwrap exposes the kind so errors.Is matches on it.
func (d *Diagnostic) Unwrap() error { return d.Kind }

// Pos returns the start of the diagnostic span.
func (d *Diagnostic) Pos() Pos { return d.Span.Start }
