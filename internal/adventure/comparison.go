package adventure

import "strings"

// Comparison is the relational operator used by conditions and tests.
type Comparison int

const (
	Greater Comparison = iota
	GreaterEqual
	Less
	LessEqual
	Equal
	NotEqual
)

// ComparisonFrom reads the text form of an operator. Anything it doesn't
// recognize, including an empty token, falls back to LessEqual. Adventure
// documents in the wild rely on the fallback, so it stays.
func ComparisonFrom(token string) Comparison {
	switch strings.TrimSpace(token) {
	case ">":
		return Greater
	case ">=":
		return GreaterEqual
	case "<":
		return Less
	case "=", "==":
		return Equal
	case "!", "!=":
		return NotEqual
	default:
		return LessEqual
	}
}

func (c Comparison) String() string {
	switch c {
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case Equal:
		return "="
	case NotEqual:
		return "!"
	default:
		return "<="
	}
}

// Compare applies the operator to two evaluated expression values.
func (c Comparison) Compare(lhs, rhs int) bool {
	switch c {
	case Greater:
		return lhs > rhs
	case GreaterEqual:
		return lhs >= rhs
	case Less:
		return lhs < rhs
	case Equal:
		return lhs == rhs
	case NotEqual:
		return lhs != rhs
	default:
		return lhs <= rhs
	}
}
