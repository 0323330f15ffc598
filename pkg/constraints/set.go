package constraints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// EqualTo requires the field to equal a single literal.
type EqualTo struct {
	base
	value any
}

// NewEqualTo normalises value (decimals, UTC instants, strings, booleans).
func NewEqualTo(field profile.Field, value any, rule profile.Rule) (EqualTo, error) {
	v, ok := restrictions.NormalizeValue(value)
	if !ok {
		if value == nil {
			return EqualTo{}, invalidArgument("value")
		}
		return EqualTo{}, fmt.Errorf("%w: unsupported value %T", ErrInvalidArgument, value)
	}
	return EqualTo{base: base{field, rule}, value: v}, nil
}

func (c EqualTo) Value() any { return c.value }

func (c EqualTo) Kind() Kind { return KindEqualTo }

func (c EqualTo) Negate() Atomic { return Not{inner: c} }

func (c EqualTo) Label() string {
	return c.field.Name + " = " + restrictions.FormatValue(c.value)
}

func (c EqualTo) String() string {
	return c.quoted() + " = " + restrictions.FormatValue(c.value)
}

func (c EqualTo) key() string {
	return KindEqualTo.String() + "|" + c.fieldKey() + "|" + restrictions.ValueKey(c.value)
}

// InSet requires the field to equal one of a set of literals. Duplicate
// members collapse; the first occurrence fixes the order.
type InSet struct {
	base
	values []any
}

func NewInSet(field profile.Field, values []any, rule profile.Rule) (InSet, error) {
	if len(values) == 0 {
		return InSet{}, invalidArgument("values")
	}
	out := make([]any, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for i, raw := range values {
		v, ok := restrictions.NormalizeValue(raw)
		if !ok {
			if raw == nil {
				return InSet{}, fmt.Errorf("%w: values[%d] is null", ErrInvalidArgument, i)
			}
			return InSet{}, fmt.Errorf("%w: values[%d] has unsupported type %T", ErrInvalidArgument, i, raw)
		}
		k := restrictions.ValueKey(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return InSet{base: base{field, rule}, values: out}, nil
}

// Values returns a copy of the distinct members.
func (c InSet) Values() []any {
	return append([]any(nil), c.values...)
}

func (c InSet) Kind() Kind { return KindInSet }

func (c InSet) Negate() Atomic { return Not{inner: c} }

func (c InSet) Label() string {
	return c.field.Name + " in " + c.members()
}

func (c InSet) String() string {
	return c.quoted() + " in " + c.members()
}

func (c InSet) members() string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = restrictions.FormatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// key ignores member order.
func (c InSet) key() string {
	keys := make([]string, len(c.values))
	for i, v := range c.values {
		keys[i] = restrictions.ValueKey(v)
	}
	sort.Strings(keys)
	return KindInSet.String() + "|" + c.fieldKey() + "|" + strings.Join(keys, "\x1f")
}
