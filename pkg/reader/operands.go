package reader

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

var numericBounds = restrictions.DefaultLimits()

func resolveField(rec profile.Record, fields profile.FieldResolver) (profile.Field, error) {
	if strings.TrimSpace(rec.Field) == "" {
		return profile.Field{}, profile.Invalid(rec, "missing field name")
	}
	if fields == nil {
		return profile.Field{}, profile.Invalid(rec, "no fields declared")
	}
	f, ok := fields.ByName(rec.Field)
	if !ok {
		return profile.Field{}, profile.Invalid(rec, "field is not declared in the profile")
	}
	return f, nil
}

func requireValue(rec profile.Record) (any, error) {
	if rec.Value == nil {
		return nil, profile.Invalid(rec, "missing value")
	}
	return rec.Value, nil
}

// toDecimal accepts JSON and YAML numbers. Numeric strings are not numbers.
func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), true
	default:
		return restrictions.AsDecimal(value)
	}
}

func numericOperand(rec profile.Record) (decimal.Decimal, error) {
	raw, err := requireValue(rec)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, ok := toDecimal(raw)
	if !ok {
		return decimal.Decimal{}, profile.Invalid(rec, "value must be a number, got %s", describe(raw))
	}
	if d.LessThan(numericBounds.NumericMin) || d.GreaterThan(numericBounds.NumericMax) {
		return decimal.Decimal{}, profile.Invalid(rec, "value %s must be between %s and %s inclusive",
			d, numericBounds.NumericMin, numericBounds.NumericMax)
	}
	return d, nil
}

func stringOperand(rec profile.Record) (string, error) {
	raw, err := requireValue(rec)
	if err != nil {
		return "", err
	}
	s, ok := raw.(string)
	if !ok {
		return "", profile.Invalid(rec, "value must be a string, got %s", describe(raw))
	}
	return s, nil
}

func dateOperand(rec profile.Record) (time.Time, error) {
	raw, err := requireValue(rec)
	if err != nil {
		return time.Time{}, err
	}
	lit, ok := dateObject(raw)
	if !ok {
		return time.Time{}, profile.Invalid(rec, `value must be an object of the form {"date": %q}, got %s`, DatePattern, describe(raw))
	}
	return parseDateLiteral(rec, lit)
}

func parseDateLiteral(rec profile.Record, lit any) (time.Time, error) {
	s, ok := lit.(string)
	if !ok {
		return time.Time{}, profile.Invalid(rec, "date must be a string of the form %s, got %s", DatePattern, describe(lit))
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, profile.Invalid(rec, "%s", err.Error())
	}
	return t, nil
}

// literal normalises an equalTo or inSet member. Date objects unwrap to UTC
// instants and numbers to decimals, so scalar and set operands share one
// representation.
func literal(rec profile.Record, raw any) (any, error) {
	if raw == nil {
		return nil, profile.Invalid(rec, "null is not a valid value; use the null constraint instead")
	}
	if lit, ok := dateObject(raw); ok {
		return parseDateLiteral(rec, lit)
	}
	switch v := raw.(type) {
	case string, bool:
		return v, nil
	}
	d, ok := toDecimal(raw)
	if !ok {
		return nil, profile.Invalid(rec, "unsupported value %s", describe(raw))
	}
	if d.LessThan(numericBounds.NumericMin) || d.GreaterThan(numericBounds.NumericMax) {
		return nil, profile.Invalid(rec, "value %s must be between %s and %s inclusive",
			d, numericBounds.NumericMin, numericBounds.NumericMax)
	}
	return d, nil
}

// fieldLiteral normalises raw and requires it to be a value of field's type.
func fieldLiteral(rec profile.Record, field profile.Field, raw any) (any, error) {
	v, err := literal(rec, raw)
	if err != nil {
		return nil, err
	}
	var want profile.FieldType
	switch v.(type) {
	case string:
		want = profile.FieldTypeString
	case bool:
		want = profile.FieldTypeBoolean
	case time.Time:
		want = profile.FieldTypeDateTime
	default:
		want = profile.FieldTypeNumeric
	}
	if want != field.Type {
		return nil, profile.Invalid(rec, "%s value %s does not fit %s field %q", want, describe(raw), field.Type, field.Name)
	}
	return v, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("boolean %v", v)
	case json.Number, int, int64, float64, uint64:
		return fmt.Sprintf("number %v", v)
	case map[string]any, map[any]any:
		return "object"
	case []any:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}
