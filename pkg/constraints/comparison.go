package constraints

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

type numericOperand struct {
	base
	value decimal.Decimal
}

// Value returns the comparison operand.
func (n numericOperand) Value() decimal.Decimal { return n.value }

func (n numericOperand) keyWith(k Kind) string {
	return k.String() + "|" + n.fieldKey() + "|" + n.value.String()
}

func (n numericOperand) labelWith(op string) string {
	return n.field.Name + " " + op + " " + n.value.String()
}

func (n numericOperand) stringWith(op string) string {
	return n.quoted() + " " + op + " " + n.value.String()
}

// GreaterThan requires values strictly above the operand.
type GreaterThan struct{ numericOperand }

// GreaterThanOrEqual requires values at or above the operand.
type GreaterThanOrEqual struct{ numericOperand }

// LessThan requires values strictly below the operand.
type LessThan struct{ numericOperand }

// LessThanOrEqual requires values at or below the operand.
type LessThanOrEqual struct{ numericOperand }

func NewGreaterThan(field profile.Field, value decimal.Decimal, rule profile.Rule) GreaterThan {
	return GreaterThan{numericOperand{base{field, rule}, value}}
}

func NewGreaterThanOrEqual(field profile.Field, value decimal.Decimal, rule profile.Rule) GreaterThanOrEqual {
	return GreaterThanOrEqual{numericOperand{base{field, rule}, value}}
}

func NewLessThan(field profile.Field, value decimal.Decimal, rule profile.Rule) LessThan {
	return LessThan{numericOperand{base{field, rule}, value}}
}

func NewLessThanOrEqual(field profile.Field, value decimal.Decimal, rule profile.Rule) LessThanOrEqual {
	return LessThanOrEqual{numericOperand{base{field, rule}, value}}
}

func (c GreaterThan) Kind() Kind { return KindGreaterThan }
func (c GreaterThan) Negate() Atomic { return LessThanOrEqual(c) }
func (c GreaterThan) Label() string { return c.labelWith(">") }
func (c GreaterThan) String() string { return c.stringWith(">") }
func (c GreaterThan) key() string { return c.keyWith(c.Kind()) }

func (c GreaterThanOrEqual) Kind() Kind { return KindGreaterThanOrEqual }
func (c GreaterThanOrEqual) Negate() Atomic { return LessThan(c) }
func (c GreaterThanOrEqual) Label() string { return c.labelWith(">=") }
func (c GreaterThanOrEqual) String() string { return c.stringWith(">=") }
func (c GreaterThanOrEqual) key() string { return c.keyWith(c.Kind()) }

func (c LessThan) Kind() Kind { return KindLessThan }
func (c LessThan) Negate() Atomic { return GreaterThanOrEqual(c) }
func (c LessThan) Label() string { return c.labelWith("<") }
func (c LessThan) String() string { return c.stringWith("<") }
func (c LessThan) key() string { return c.keyWith(c.Kind()) }

func (c LessThanOrEqual) Kind() Kind { return KindLessThanOrEqual }
func (c LessThanOrEqual) Negate() Atomic { return GreaterThan(c) }
func (c LessThanOrEqual) Label() string { return c.labelWith("<=") }
func (c LessThanOrEqual) String() string { return c.stringWith("<=") }
func (c LessThanOrEqual) key() string { return c.keyWith(c.Kind()) }

type dateTimeOperand struct {
	base
	value time.Time
}

// Value returns the comparison instant in UTC.
func (d dateTimeOperand) Value() time.Time { return d.value }

func (d dateTimeOperand) keyWith(k Kind) string {
	return k.String() + "|" + d.fieldKey() + "|" + d.value.Format(time.RFC3339Nano)
}

func (d dateTimeOperand) labelWith(op string) string {
	return d.field.Name + " " + op + " " + restrictions.FormatDateTime(d.value)
}

func (d dateTimeOperand) stringWith(op string) string {
	return d.quoted() + " " + op + " " + restrictions.FormatDateTime(d.value)
}

func newDateTimeOperand(field profile.Field, value time.Time, rule profile.Rule) (dateTimeOperand, error) {
	if value.IsZero() {
		return dateTimeOperand{}, invalidArgument("datetime operand")
	}
	return dateTimeOperand{base{field, rule}, value.UTC()}, nil
}

// Before requires instants strictly earlier than the operand.
type Before struct{ dateTimeOperand }

// BeforeOrEqual requires instants at or earlier than the operand.
type BeforeOrEqual struct{ dateTimeOperand }

// After requires instants strictly later than the operand.
type After struct{ dateTimeOperand }

// AfterOrEqual requires instants at or later than the operand.
type AfterOrEqual struct{ dateTimeOperand }

func NewBefore(field profile.Field, value time.Time, rule profile.Rule) (Before, error) {
	op, err := newDateTimeOperand(field, value, rule)
	return Before{op}, err
}

func NewBeforeOrEqual(field profile.Field, value time.Time, rule profile.Rule) (BeforeOrEqual, error) {
	op, err := newDateTimeOperand(field, value, rule)
	return BeforeOrEqual{op}, err
}

func NewAfter(field profile.Field, value time.Time, rule profile.Rule) (After, error) {
	op, err := newDateTimeOperand(field, value, rule)
	return After{op}, err
}

func NewAfterOrEqual(field profile.Field, value time.Time, rule profile.Rule) (AfterOrEqual, error) {
	op, err := newDateTimeOperand(field, value, rule)
	return AfterOrEqual{op}, err
}

func (c Before) Kind() Kind { return KindBefore }
func (c Before) Negate() Atomic { return AfterOrEqual(c) }
func (c Before) Label() string { return c.labelWith("before") }
func (c Before) String() string { return c.stringWith("before") }
func (c Before) key() string { return c.keyWith(c.Kind()) }

func (c BeforeOrEqual) Kind() Kind { return KindBeforeOrEqual }
func (c BeforeOrEqual) Negate() Atomic { return After(c) }
func (c BeforeOrEqual) Label() string { return c.labelWith("before or at") }
func (c BeforeOrEqual) String() string { return c.stringWith("before or at") }
func (c BeforeOrEqual) key() string { return c.keyWith(c.Kind()) }

func (c After) Kind() Kind { return KindAfter }
func (c After) Negate() Atomic { return BeforeOrEqual(c) }
func (c After) Label() string { return c.labelWith("after") }
func (c After) String() string { return c.stringWith("after") }
func (c After) key() string { return c.keyWith(c.Kind()) }

func (c AfterOrEqual) Kind() Kind { return KindAfterOrEqual }
func (c AfterOrEqual) Negate() Atomic { return Before(c) }
func (c AfterOrEqual) Label() string { return c.labelWith("after or at") }
func (c AfterOrEqual) String() string { return c.stringWith("after or at") }
func (c AfterOrEqual) key() string { return c.keyWith(c.Kind()) }
