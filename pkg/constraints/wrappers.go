package constraints

import "github.com/goliatone/go-datagen/pkg/profile"

// Not is the complement of a constraint without a structural opposite. It
// is only produced by Negate, so Not{c}.Negate() always yields c.
type Not struct {
	inner Atomic
}

// Inner returns the negated constraint.
func (c Not) Inner() Atomic { return c.inner }

func (c Not) Field() profile.Field { return c.inner.Field() }

func (c Not) Rule() profile.Rule { return c.inner.Rule() }

func (c Not) Kind() Kind { return KindNot }

func (c Not) Negate() Atomic { return c.inner }

func (c Not) Label() string { return "not(" + c.inner.Label() + ")" }

func (c Not) String() string { return "NOT(" + c.inner.String() + ")" }

func (c Not) key() string { return "not(" + c.inner.key() + ")" }

// Violated re-attributes a constraint to the violated counterpart of its
// rule. It admits exactly the values the inner constraint admits, and
// compares equal to it.
type Violated struct {
	inner Atomic
}

// NewViolated wraps c. Wrapping an already violated constraint returns it
// unchanged.
func NewViolated(c Atomic) (Violated, error) {
	if c == nil {
		return Violated{}, invalidArgument("constraint")
	}
	if v, ok := c.(Violated); ok {
		return v, nil
	}
	return Violated{inner: c}, nil
}

// Inner returns the wrapped constraint.
func (c Violated) Inner() Atomic { return c.inner }

func (c Violated) Field() profile.Field { return c.inner.Field() }

func (c Violated) Rule() profile.Rule { return c.inner.Rule().Violate() }

func (c Violated) Kind() Kind { return KindViolated }

func (c Violated) Negate() Atomic { return Violated{inner: c.inner.Negate()} }

func (c Violated) Label() string { return c.inner.Label() }

func (c Violated) String() string { return "Violated: " + c.inner.String() }

func (c Violated) key() string { return c.inner.key() }

// Unwrap strips Violated wrappers and reports the underlying constraint.
func Unwrap(c Atomic) Atomic {
	for {
		v, ok := c.(Violated)
		if !ok {
			return c
		}
		c = v.inner
	}
}
