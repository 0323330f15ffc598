package reader

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

func parseEqualTo(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	raw, err := requireValue(rec)
	if err != nil {
		return nil, err
	}
	v, err := fieldLiteral(rec, field, raw)
	if err != nil {
		return nil, err
	}
	c, err := constraints.NewEqualTo(field, v, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return one(c), nil
}

func parseInSet(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	members := rec.Values
	if members == nil {
		if list, ok := rec.Value.([]any); ok {
			members = list
		}
	}
	if len(members) == 0 {
		return nil, profile.Invalid(rec, "values must be a non-empty list")
	}
	values := make([]any, len(members))
	for i, raw := range members {
		if raw == nil {
			return nil, profile.Invalid(rec, "values[%d] is null; null cannot be a set member, use the null constraint instead", i)
		}
		v, err := fieldLiteral(rec, field, raw)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	c, err := constraints.NewInSet(field, values, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return one(c), nil
}

func parseMatchingRegex(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, re, err := regexOperand(rec, fields)
	if err != nil {
		return nil, err
	}
	c, err := constraints.NewMatchesRegex(field, re, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return one(c), nil
}

func parseContainingRegex(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, re, err := regexOperand(rec, fields)
	if err != nil {
		return nil, err
	}
	c, err := constraints.NewContainsRegex(field, re, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return one(c), nil
}

func regexOperand(rec profile.Record, fields profile.FieldResolver) (profile.Field, *regexp.Regexp, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return profile.Field{}, nil, err
	}
	src, err := stringOperand(rec)
	if err != nil {
		return profile.Field{}, nil, err
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return profile.Field{}, nil, profile.Invalid(rec, "value %q is not a valid regular expression: %v", src, err)
	}
	return field, re, nil
}

func parseAValid(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	name, err := stringOperand(rec)
	if err != nil {
		return nil, err
	}
	std, ok := restrictions.ParseStandard(name)
	if !ok {
		return nil, profile.Invalid(rec, "value %q must be one of %s", name, strings.Join(restrictions.StandardNames(), ", "))
	}
	c, err := constraints.NewMatchesStandard(field, std, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return one(c), nil
}

func numericParser[T constraints.Atomic](build func(profile.Field, decimal.Decimal, profile.Rule) T) Parser {
	return func(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
		field, err := resolveField(rec, fields)
		if err != nil {
			return nil, err
		}
		d, err := numericOperand(rec)
		if err != nil {
			return nil, err
		}
		return one(build(field, d, rule)), nil
	}
}

func dateParser[T constraints.Atomic](build func(profile.Field, time.Time, profile.Rule) (T, error)) Parser {
	return func(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
		field, err := resolveField(rec, fields)
		if err != nil {
			return nil, err
		}
		t, err := dateOperand(rec)
		if err != nil {
			return nil, err
		}
		c, err := build(field, t, rule)
		if err != nil {
			return nil, profile.Invalid(rec, "%s", err.Error())
		}
		return one(c), nil
	}
}

// lengthBounds is the admissible operand range of a length constraint.
type lengthBounds struct {
	minInclusive bool
	maxInclusive bool
}

var (
	ofLengthBounds    = lengthBounds{minInclusive: true, maxInclusive: true}
	longerThanBounds  = lengthBounds{minInclusive: true, maxInclusive: false}
	shorterThanBounds = lengthBounds{minInclusive: false, maxInclusive: true}
)

var maxLength = decimal.NewFromInt(restrictions.MaxLengthOperand)

func (b lengthBounds) check(rec profile.Record, d decimal.Decimal) error {
	switch {
	case b.minInclusive && d.IsNegative():
		return profile.Invalid(rec, "length %s must be greater than or equal to 0", d)
	case !b.minInclusive && !d.IsPositive():
		return profile.Invalid(rec, "length %s must be greater than 0", d)
	case b.maxInclusive && d.GreaterThan(maxLength):
		return profile.Invalid(rec, "length %s must be less than or equal to %s", d, maxLength)
	case !b.maxInclusive && d.GreaterThanOrEqual(maxLength):
		return profile.Invalid(rec, "length %s must be less than %s", d, maxLength)
	}
	return nil
}

func lengthParser[T constraints.Atomic](bounds lengthBounds, build func(profile.Field, int, profile.Rule) (T, error)) Parser {
	return func(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
		field, err := resolveField(rec, fields)
		if err != nil {
			return nil, err
		}
		raw, err := requireValue(rec)
		if err != nil {
			return nil, err
		}
		d, ok := toDecimal(raw)
		if !ok {
			return nil, profile.Invalid(rec, "length must be an integer, got %s", describe(raw))
		}
		if !d.Equal(d.Truncate(0)) {
			return nil, profile.Invalid(rec, "length %s must be an integer", d)
		}
		if err := bounds.check(rec, d); err != nil {
			return nil, err
		}
		c, err := build(field, int(d.IntPart()), rule)
		if err != nil {
			return nil, profile.Invalid(rec, "%s", err.Error())
		}
		return one(c), nil
	}
}

func parseGranularTo(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	raw, err := requireValue(rec)
	if err != nil {
		return nil, err
	}

	var c constraints.Atomic
	if name, ok := raw.(string); ok {
		if g, ok := restrictions.ParseGranularity(name); ok {
			if field.Type != profile.FieldTypeDateTime {
				return nil, profile.Invalid(rec, "datetime unit %q applies to datetime fields, %q is %s", name, field.Name, field.Type)
			}
			c, err = constraints.NewDateTimeGranularTo(field, g, rule)
		} else if d, derr := decimal.NewFromString(name); derr == nil {
			c, err = numericGranularity(rec, field, d, rule)
		} else {
			return nil, profile.Invalid(rec, "value %q must be a power of ten no greater than 1 or one of %s",
				name, strings.Join(restrictions.GranularityNames(), ", "))
		}
	} else if d, ok := toDecimal(raw); ok {
		c, err = numericGranularity(rec, field, d, rule)
	} else {
		return nil, profile.Invalid(rec, "value must be a number or a datetime unit, got %s", describe(raw))
	}
	if err != nil {
		return nil, err
	}
	return one(c), nil
}

func numericGranularity(rec profile.Record, field profile.Field, d decimal.Decimal, rule profile.Rule) (constraints.Atomic, error) {
	if field.Type != profile.FieldTypeNumeric {
		return nil, profile.Invalid(rec, "numeric granularity applies to numeric fields, %q is %s", field.Name, field.Type)
	}
	scale, ok := restrictions.ScaleOf(d)
	if !ok {
		return nil, profile.Invalid(rec, "granularity %s must be a power of ten between 1e-%d and 1", d, restrictions.DefaultNumericScale)
	}
	c, err := constraints.NewNumericGranularTo(field, scale, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return c, nil
}

func parseNull(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	return one(constraints.NewIsNull(field, rule)), nil
}

// Accepted ofType operands. "integer" adds a unit granularity.
const (
	TypeDecimal  = "decimal"
	TypeInteger  = "integer"
	TypeString   = "string"
	TypeDateTime = "datetime"
	TypeBoolean  = "boolean"
)

var ofTypes = map[string]profile.FieldType{
	TypeDecimal:  profile.FieldTypeNumeric,
	TypeInteger:  profile.FieldTypeNumeric,
	TypeString:   profile.FieldTypeString,
	TypeDateTime: profile.FieldTypeDateTime,
	TypeBoolean:  profile.FieldTypeBoolean,
}

func parseOfType(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	name, err := stringOperand(rec)
	if err != nil {
		return nil, err
	}
	if name == "numeric" {
		return nil, profile.Invalid(rec, `type "numeric" is no longer supported; use %q or %q`, TypeDecimal, TypeInteger)
	}
	typ, ok := ofTypes[name]
	if !ok {
		return nil, profile.Invalid(rec, "type %q must be one of %s, %s, %s, %s, %s",
			name, TypeDecimal, TypeInteger, TypeString, TypeDateTime, TypeBoolean)
	}
	if typ != field.Type {
		return nil, profile.Invalid(rec, "type %q applies to %s fields, %q is %s", name, typ, field.Name, field.Type)
	}
	c, err := constraints.NewIsOfType(field, typ, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	if name != TypeInteger {
		return one(c), nil
	}
	g, err := constraints.NewNumericGranularTo(field, 0, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return []constraints.Atomic{c, g}, nil
}

func parseFormattedAs(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	field, err := resolveField(rec, fields)
	if err != nil {
		return nil, err
	}
	format, err := stringOperand(rec)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(format) == "" {
		return nil, profile.Invalid(rec, "format must not be empty")
	}
	c, err := constraints.NewFormatAs(field, format, rule)
	if err != nil {
		return nil, profile.Invalid(rec, "%s", err.Error())
	}
	return one(c), nil
}
