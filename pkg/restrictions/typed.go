package restrictions

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// Kind identifies the datatype a Typed restriction applies to.
type Kind uint8

const (
	KindNumeric Kind = iota + 1
	KindString
	KindDateTime
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Typed is a per-datatype restriction. Intersect returns false when the two
// restrictions admit no common value, including when their kinds differ.
type Typed interface {
	Kind() Kind
	Intersect(other Typed) (Typed, bool)
	Permits(value any) bool
	Equal(other Typed) bool
	String() string
}

var (
	_ Typed = Numeric{}
	_ Typed = DateTime{}
	_ Typed = String{}
	_ Typed = Boolean{}
)

// Intersect combines two optional restrictions; a nil side is unconstrained.
func Intersect(a, b Typed) (Typed, bool) {
	switch {
	case a == nil:
		return b, true
	case b == nil:
		return a, true
	default:
		return a.Intersect(b)
	}
}

// Equal compares two optional restrictions.
func Equal(a, b Typed) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// AsDecimal converts the numeric representations produced by the profile
// decoders into a decimal. NaN and infinities have no decimal form.
func AsDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case float32:
		if !finite(float64(v)) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(v), true
	case float64:
		if !finite(v) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Decimal{}, false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
