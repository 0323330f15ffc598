package restrictions

import (
	"strings"

	"github.com/shopspring/decimal"
)

// noScale marks a numeric restriction without a granularity.
const noScale = -1

// NumericLimit is one end of a numeric range.
type NumericLimit struct {
	Value     decimal.Decimal
	Inclusive bool
}

func (l NumericLimit) equal(other NumericLimit) bool {
	return l.Inclusive == other.Inclusive && l.Value.Equal(other.Value)
}

// Numeric restricts a field to a range of decimals on a 10^-scale grid.
type Numeric struct {
	min   *NumericLimit
	max   *NumericLimit
	scale int
}

// NewNumeric builds a numeric restriction. Nil limits are unbounded and a
// negative scale leaves the granularity unconstrained.
func NewNumeric(min, max *NumericLimit, scale int) Numeric {
	out := Numeric{scale: noScale}
	if min != nil {
		limit := *min
		out.min = &limit
	}
	if max != nil {
		limit := *max
		out.max = &limit
	}
	if scale >= 0 {
		out.scale = scale
	}
	return out
}

// NumericAbove admits values greater than (or equal to, when inclusive) v.
func NumericAbove(v decimal.Decimal, inclusive bool) Numeric {
	return NewNumeric(&NumericLimit{Value: v, Inclusive: inclusive}, nil, noScale)
}

// NumericBelow admits values less than (or equal to, when inclusive) v.
func NumericBelow(v decimal.Decimal, inclusive bool) Numeric {
	return NewNumeric(nil, &NumericLimit{Value: v, Inclusive: inclusive}, noScale)
}

// NumericGranularTo admits values with at most scale decimal places.
func NumericGranularTo(scale int) Numeric {
	return NewNumeric(nil, nil, scale)
}

// DefaultNumeric is the type default bounded by l.
func DefaultNumeric(l Limits) Numeric {
	return NewNumeric(
		&NumericLimit{Value: l.NumericMin, Inclusive: true},
		&NumericLimit{Value: l.NumericMax, Inclusive: true},
		l.NumericScale,
	)
}

// Min returns the lower limit, if any.
func (n Numeric) Min() (NumericLimit, bool) {
	if n.min == nil {
		return NumericLimit{}, false
	}
	return *n.min, true
}

// Max returns the upper limit, if any.
func (n Numeric) Max() (NumericLimit, bool) {
	if n.max == nil {
		return NumericLimit{}, false
	}
	return *n.max, true
}

// Scale returns the number of permitted decimal places, if constrained.
func (n Numeric) Scale() (int, bool) {
	return n.scale, n.scale >= 0
}

// Kind implements Typed.
func (n Numeric) Kind() Kind { return KindNumeric }

// Intersect implements Typed.
func (n Numeric) Intersect(other Typed) (Typed, bool) {
	o, ok := other.(Numeric)
	if !ok {
		return nil, false
	}
	out := Numeric{
		min:   tighterNumericMin(n.min, o.min),
		max:   tighterNumericMax(n.max, o.max),
		scale: coarserScale(n.scale, o.scale),
	}
	if out.empty() {
		return nil, false
	}
	return out, true
}

func tighterNumericMin(a, b *NumericLimit) *NumericLimit {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	switch a.Value.Cmp(b.Value) {
	case 1:
		return a
	case -1:
		return b
	}
	if !a.Inclusive {
		return a
	}
	return b
}

func tighterNumericMax(a, b *NumericLimit) *NumericLimit {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	switch a.Value.Cmp(b.Value) {
	case -1:
		return a
	case 1:
		return b
	}
	if !a.Inclusive {
		return a
	}
	return b
}

// coarserScale keeps the grid both sides share. Steps are powers of ten, so
// the coarser grid is exactly the set of values on both.
func coarserScale(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// empty reports whether no value on the grid lies inside the range.
func (n Numeric) empty() bool {
	if n.min == nil || n.max == nil {
		return false
	}
	lowest := n.min.Value
	if n.scale >= 0 {
		lowest = lowest.RoundCeil(int32(n.scale))
		if !n.min.Inclusive && lowest.Equal(n.min.Value) {
			lowest = lowest.Add(decimal.New(1, int32(-n.scale)))
		}
	} else if !n.min.Inclusive || !n.max.Inclusive {
		return !n.min.Value.LessThan(n.max.Value)
	}
	if n.max.Inclusive {
		return lowest.GreaterThan(n.max.Value)
	}
	return !lowest.LessThan(n.max.Value)
}

// Permits implements Typed.
func (n Numeric) Permits(value any) bool {
	d, ok := AsDecimal(value)
	if !ok {
		return false
	}
	if n.min != nil {
		if cmp := d.Cmp(n.min.Value); cmp < 0 || (cmp == 0 && !n.min.Inclusive) {
			return false
		}
	}
	if n.max != nil {
		if cmp := d.Cmp(n.max.Value); cmp > 0 || (cmp == 0 && !n.max.Inclusive) {
			return false
		}
	}
	if n.scale >= 0 && !d.Equal(d.Truncate(int32(n.scale))) {
		return false
	}
	return true
}

// Equal implements Typed.
func (n Numeric) Equal(other Typed) bool {
	o, ok := other.(Numeric)
	if !ok {
		return false
	}
	return n.scale == o.scale && numericLimitEqual(n.min, o.min) && numericLimitEqual(n.max, o.max)
}

func numericLimitEqual(a, b *NumericLimit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(*b)
}

func (n Numeric) String() string {
	var b strings.Builder
	b.WriteString("numeric ")
	switch {
	case n.min == nil:
		b.WriteString("(-inf")
	case n.min.Inclusive:
		b.WriteString("[" + n.min.Value.String())
	default:
		b.WriteString("(" + n.min.Value.String())
	}
	b.WriteString(", ")
	switch {
	case n.max == nil:
		b.WriteString("+inf)")
	case n.max.Inclusive:
		b.WriteString(n.max.Value.String() + "]")
	default:
		b.WriteString(n.max.Value.String() + ")")
	}
	if n.scale >= 0 {
		b.WriteString(" step " + ScaleString(n.scale))
	}
	return b.String()
}

// ScaleOf returns the scale matching a granularity operand. Only powers of
// ten no greater than one are valid (1, 0.1, 0.01, ...).
func ScaleOf(granularity decimal.Decimal) (int, bool) {
	for scale := 0; scale <= DefaultNumericScale; scale++ {
		if granularity.Equal(decimal.New(1, int32(-scale))) {
			return scale, true
		}
	}
	return 0, false
}

// ScaleString renders the granularity of a scale, e.g. 2 as "0.01".
func ScaleString(scale int) string {
	return decimal.New(1, int32(-scale)).String()
}
