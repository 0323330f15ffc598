package constraints

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/goliatone/go-datagen/pkg/profile"
)

// ErrInvalidArgument is returned when a constructor is missing a required
// operand.
var ErrInvalidArgument = errors.New("constraints: invalid argument")

func invalidArgument(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
}

// Atomic is an indivisible rule on a single field.
type Atomic interface {
	Field() profile.Field
	Rule() profile.Rule
	Kind() Kind
	// Negate returns the logical complement on the same field.
	Negate() Atomic
	// Label is the short display form, e.g. "price > 10".
	Label() string
	String() string

	// key is the canonical identity used by Equal and Hash.
	key() string
}

// Equal reports structural equality over field, kind and operand.
func Equal(a, b Atomic) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.key() == b.key()
}

// Hash returns a hash consistent with Equal.
func Hash(c Atomic) uint64 {
	if c == nil {
		return 0
	}
	return xxhash.Sum64String(c.key())
}

// base carries the field and owning rule shared by every variant.
type base struct {
	field profile.Field
	rule  profile.Rule
}

func (b base) Field() profile.Field { return b.field }

func (b base) Rule() profile.Rule { return b.rule }

func (b base) fieldKey() string {
	return b.field.Name + "|" + string(b.field.Type)
}

func (b base) quoted() string {
	return "`" + b.field.Name + "`"
}
