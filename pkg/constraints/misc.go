package constraints

import (
	"strconv"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// GranularTo restricts values to a grid. Numeric fields use a decimal scale
// (granularity 10^-scale); datetime fields use a calendar unit.
type GranularTo struct {
	base
	scale       int
	granularity restrictions.Granularity
}

// NewNumericGranularTo restricts numbers to scale decimal places.
func NewNumericGranularTo(field profile.Field, scale int, rule profile.Rule) (GranularTo, error) {
	if scale < 0 {
		return GranularTo{}, invalidArgument("non-negative scale")
	}
	return GranularTo{base: base{field, rule}, scale: scale}, nil
}

// NewDateTimeGranularTo restricts instants to a calendar unit.
func NewDateTimeGranularTo(field profile.Field, g restrictions.Granularity, rule profile.Rule) (GranularTo, error) {
	if g == restrictions.GranularityUnset {
		return GranularTo{}, invalidArgument("granularity")
	}
	return GranularTo{base: base{field, rule}, granularity: g}, nil
}

// Scale reports the numeric scale, if this is a numeric granularity.
func (c GranularTo) Scale() (int, bool) {
	return c.scale, c.granularity == restrictions.GranularityUnset
}

// DateTimeGranularity reports the calendar unit, if this is a datetime granularity.
func (c GranularTo) DateTimeGranularity() (restrictions.Granularity, bool) {
	return c.granularity, c.granularity != restrictions.GranularityUnset
}

func (c GranularTo) Kind() Kind { return KindGranularTo }

func (c GranularTo) Negate() Atomic { return Not{inner: c} }

func (c GranularTo) operand() string {
	if g, ok := c.DateTimeGranularity(); ok {
		return g.String()
	}
	return restrictions.ScaleString(c.scale)
}

func (c GranularTo) Label() string { return c.field.Name + " granular to " + c.operand() }

func (c GranularTo) String() string { return c.quoted() + " granular to " + c.operand() }

func (c GranularTo) key() string {
	if g, ok := c.DateTimeGranularity(); ok {
		return KindGranularTo.String() + "|" + c.fieldKey() + "|t:" + g.String()
	}
	return KindGranularTo.String() + "|" + c.fieldKey() + "|n:" + strconv.Itoa(c.scale)
}

// IsNull requires the field to be absent.
type IsNull struct{ base }

func NewIsNull(field profile.Field, rule profile.Rule) IsNull {
	return IsNull{base{field, rule}}
}

func (c IsNull) Kind() Kind { return KindIsNull }

func (c IsNull) Negate() Atomic { return Not{inner: c} }

func (c IsNull) Label() string { return c.field.Name + " is null" }

func (c IsNull) String() string { return c.quoted() + " is null" }

func (c IsNull) key() string { return KindIsNull.String() + "|" + c.fieldKey() }

// IsOfType requires values of one datatype.
type IsOfType struct {
	base
	typ profile.FieldType
}

func NewIsOfType(field profile.Field, typ profile.FieldType, rule profile.Rule) (IsOfType, error) {
	if typ == "" {
		return IsOfType{}, invalidArgument("type")
	}
	if !typ.Valid() {
		return IsOfType{}, invalidArgument("supported type")
	}
	return IsOfType{base{field, rule}, typ}, nil
}

func (c IsOfType) Type() profile.FieldType { return c.typ }

func (c IsOfType) Kind() Kind { return KindIsOfType }

func (c IsOfType) Negate() Atomic { return Not{inner: c} }

func (c IsOfType) Label() string { return c.field.Name + " is " + string(c.typ) }

func (c IsOfType) String() string { return c.quoted() + " is " + string(c.typ) }

func (c IsOfType) key() string {
	return KindIsOfType.String() + "|" + c.fieldKey() + "|" + string(c.typ)
}

// FormatAs attaches an output format to the field. It does not narrow the
// value space.
type FormatAs struct {
	base
	format string
}

func NewFormatAs(field profile.Field, format string, rule profile.Rule) (FormatAs, error) {
	if format == "" {
		return FormatAs{}, invalidArgument("format")
	}
	return FormatAs{base{field, rule}, format}, nil
}

func (c FormatAs) Format() string { return c.format }

func (c FormatAs) Kind() Kind { return KindFormatAs }

func (c FormatAs) Negate() Atomic { return Not{inner: c} }

func (c FormatAs) Label() string { return c.field.Name + " formatted as " + c.format }

func (c FormatAs) String() string { return c.quoted() + " formatted as " + c.format }

func (c FormatAs) key() string {
	return KindFormatAs.String() + "|" + c.fieldKey() + "|" + c.format
}
