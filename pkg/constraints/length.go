package constraints

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-datagen/pkg/profile"
)

type lengthOperand struct {
	base
	length int
}

// Length returns the operand in characters.
func (l lengthOperand) Length() int { return l.length }

func newLengthOperand(field profile.Field, n int, rule profile.Rule) (lengthOperand, error) {
	if n < 0 {
		return lengthOperand{}, fmt.Errorf("%w: length %d is negative", ErrInvalidArgument, n)
	}
	return lengthOperand{base{field, rule}, n}, nil
}

func (l lengthOperand) keyWith(k Kind) string {
	return k.String() + "|" + l.fieldKey() + "|" + strconv.Itoa(l.length)
}

// LongerThan requires strings with more than n characters.
type LongerThan struct{ lengthOperand }

func NewLongerThan(field profile.Field, n int, rule profile.Rule) (LongerThan, error) {
	op, err := newLengthOperand(field, n, rule)
	return LongerThan{op}, err
}

func (c LongerThan) Kind() Kind { return KindLongerThan }

func (c LongerThan) Negate() Atomic { return Not{inner: c} }

func (c LongerThan) Label() string { return fmt.Sprintf("%s length > %d", c.field.Name, c.length) }

func (c LongerThan) String() string { return fmt.Sprintf("%s length > %d", c.quoted(), c.length) }

func (c LongerThan) key() string { return c.keyWith(KindLongerThan) }

// ShorterThan requires strings with fewer than n characters. n must be
// positive.
type ShorterThan struct{ lengthOperand }

func NewShorterThan(field profile.Field, n int, rule profile.Rule) (ShorterThan, error) {
	if n == 0 {
		return ShorterThan{}, fmt.Errorf("%w: length must be positive", ErrInvalidArgument)
	}
	op, err := newLengthOperand(field, n, rule)
	return ShorterThan{op}, err
}

func (c ShorterThan) Kind() Kind { return KindShorterThan }

func (c ShorterThan) Negate() Atomic { return Not{inner: c} }

func (c ShorterThan) Label() string { return fmt.Sprintf("%s length < %d", c.field.Name, c.length) }

func (c ShorterThan) String() string { return fmt.Sprintf("%s length < %d", c.quoted(), c.length) }

func (c ShorterThan) key() string { return c.keyWith(KindShorterThan) }

// HasLength requires strings of exactly n characters.
type HasLength struct{ lengthOperand }

func NewHasLength(field profile.Field, n int, rule profile.Rule) (HasLength, error) {
	op, err := newLengthOperand(field, n, rule)
	return HasLength{op}, err
}

func (c HasLength) Kind() Kind { return KindHasLength }

func (c HasLength) Negate() Atomic { return Not{inner: c} }

func (c HasLength) Label() string { return fmt.Sprintf("%s length = %d", c.field.Name, c.length) }

func (c HasLength) String() string { return fmt.Sprintf("%s length = %d", c.quoted(), c.length) }

func (c HasLength) key() string { return c.keyWith(KindHasLength) }
