package fieldspec

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// ErrUnsupportedType is matched by UnsupportedTypeError.
var ErrUnsupportedType = errors.New("fieldspec: unsupported type")

// UnsupportedTypeError reports a type default requested for an unknown
// datatype.
type UnsupportedTypeError struct {
	Type profile.FieldType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("fieldspec: no type default for %q", string(e.Type))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// Option customises a Factory.
type Option func(*Factory)

// WithLimits replaces the global bounds applied to type defaults. Callers
// should check l.Validate first.
func WithLimits(l restrictions.Limits) Option {
	return func(f *Factory) {
		f.limits = l
	}
}

// Factory builds starting specs. It holds no mutable state and is safe for
// concurrent use.
type Factory struct {
	limits restrictions.Limits
}

// NewFactory returns a factory bound to restrictions.DefaultLimits unless
// overridden.
func NewFactory(options ...Option) *Factory {
	f := &Factory{limits: restrictions.DefaultLimits()}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Limits returns the bounds used for type defaults.
func (f *Factory) Limits() restrictions.Limits {
	return f.limits
}

// FromType returns the widest spec of a datatype, bounded by the factory
// limits. Null stays permitted.
func (f *Factory) FromType(t profile.FieldType) (FieldSpec, error) {
	var r restrictions.Typed
	switch t {
	case profile.FieldTypeNumeric:
		r = restrictions.DefaultNumeric(f.limits)
	case profile.FieldTypeString:
		r = restrictions.DefaultString(f.limits)
	case profile.FieldTypeDateTime:
		r = restrictions.DefaultDateTime(f.limits)
	case profile.FieldTypeBoolean:
		r = restrictions.AnyBoolean()
	default:
		return FieldSpec{}, &UnsupportedTypeError{Type: t}
	}
	return FieldSpec{restriction: r}, nil
}

var defaultFactory = NewFactory()

// FromType uses the default limits.
func FromType(t profile.FieldType) (FieldSpec, error) {
	return defaultFactory.FromType(t)
}

// FromWhitelist admits exactly values (and null, unless narrowed later).
func FromWhitelist(values ...any) (FieldSpec, error) {
	if len(values) == 0 {
		return FieldSpec{}, errors.New("fieldspec: whitelist must not be empty")
	}
	w, err := NewWhitelist(values...)
	if err != nil {
		return FieldSpec{}, err
	}
	return FieldSpec{whitelist: w, hasWhitelist: true}, nil
}

// FromRestriction wraps a typed restriction. A nil restriction yields the
// zero spec.
func FromRestriction(r restrictions.Typed) FieldSpec {
	return FieldSpec{restriction: r}
}

// NullOnly admits only null.
func NullOnly() FieldSpec {
	return FieldSpec{nullness: restrictions.NullMustBe}
}

// NotNull admits every non-null value.
func NotNull() FieldSpec {
	return FieldSpec{nullness: restrictions.NullMustNot}
}

// FromGenerator backs a spec by an external source. accept filters the
// values the source may supply; nil accepts everything.
func FromGenerator(source GeneratorSource, accept func(any) bool) (FieldSpec, error) {
	if source == nil || source.Name() == "" {
		return FieldSpec{}, errors.New("fieldspec: generator source must be named")
	}
	return FieldSpec{generator: &generator{source: source, accept: accept}}, nil
}

// ForValue describes a single literal: null yields NullOnly, anything else
// a one-member whitelist that excludes null.
func ForValue(value any) (FieldSpec, error) {
	if value == nil {
		return NullOnly(), nil
	}
	spec, err := FromWhitelist(value)
	if err != nil {
		return FieldSpec{}, err
	}
	spec.nullness = restrictions.NullMustNot
	return spec, nil
}
