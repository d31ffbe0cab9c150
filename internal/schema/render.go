package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeRules tells RenderType which type families carry a length.
type TypeRules struct {
	Sized     map[string]bool // lower-case type keywords rendered as type(n)
	Unbounded string          // length literal for MAX/absent; "" renders the bare type
}

// RenderType builds the type part of a column declaration.
// Precision and scale of numeric types are not captured and are dropped here.
func RenderType(c Column, rules TypeRules) string {
	if !rules.Sized[strings.ToLower(c.DataType)] {
		return c.DataType
	}

	if c.MaxLength == nil || *c.MaxLength == MaxLengthUnbounded {
		if rules.Unbounded == "" {
			return c.DataType
		}
		return fmt.Sprintf("%s(%s)", c.DataType, rules.Unbounded)
	}
	return fmt.Sprintf("%s(%d)", c.DataType, *c.MaxLength)
}

// NullClause renders the nullability suffix of a column declaration.
func NullClause(c Column) string {
	if c.Nullable {
		return "NULL"
	}
	return "NOT NULL"
}

// FormatLength renders a max length for reports: NULL, MAX or the number.
func FormatLength(n *int) string {
	if n == nil {
		return "NULL"
	}
	if *n == MaxLengthUnbounded {
		return "MAX"
	}
	return strconv.Itoa(*n)
}

// FormatNullable renders nullability the way INFORMATION_SCHEMA does.
func FormatNullable(nullable bool) string {
	if nullable {
		return "YES"
	}
	return "NO"
}
