package ir

/* ---------- types ---------- */

// Type is the resolved static type carried by every expression.
type Type int

const (
	TypeAny Type = iota
	TypeNumber
	TypeString
	TypeBoolean
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeVoid:
		return "void"
	default:
		return "any"
	}
}

// IsNumeric reports whether t passes a numeric operand check.
func (t Type) IsNumeric() bool { return t == TypeNumber || t == TypeAny }

// IsBoolean reports whether t passes a boolean operand check.
func (t Type) IsBoolean() bool { return t == TypeBoolean || t == TypeAny }
