package reader

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

var (
	testFields = profile.MustNewFields(
		profile.Field{Name: "price", Type: profile.FieldTypeNumeric},
		profile.Field{Name: "code", Type: profile.FieldTypeString},
		profile.Field{Name: "created", Type: profile.FieldTypeDateTime},
		profile.Field{Name: "active", Type: profile.FieldTypeBoolean},
	)
	testRule = profile.NewRule("reader rule")
)

func parseOne(t *testing.T, rec profile.Record) constraints.Atomic {
	t.Helper()
	out, err := Parse(rec, testFields, testRule)
	if err != nil {
		t.Fatalf("parse %+v: %v", rec, err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one constraint, got %d", len(out))
	}
	return out[0]
}

func expectInvalid(t *testing.T, rec profile.Record, fragment string) {
	t.Helper()
	_, err := Parse(rec, testFields, testRule)
	if err == nil {
		t.Fatalf("expected %+v to be rejected", rec)
	}
	if !errors.Is(err, profile.ErrValidation) {
		t.Fatalf("expected validation error, got %T: %v", err, err)
	}
	if fragment != "" && !strings.Contains(err.Error(), fragment) {
		t.Fatalf("expected error to mention %q, got %q", fragment, err)
	}
}

func date(literal string) map[string]any {
	return map[string]any{"date": literal}
}

func TestParse_LengthOperands(t *testing.T) {
	maxInt := json.Number("2147483647")
	overMax := json.Number("2147483648")

	valid := []struct {
		name string
		rec  profile.Record
		want int
	}{
		{"ofLength zero", profile.Record{Field: "code", Is: CodeOfLength, Value: json.Number("0")}, 0},
		{"ofLength max", profile.Record{Field: "code", Is: CodeOfLength, Value: maxInt}, restrictions.MaxLengthOperand},
		{"longerThan zero", profile.Record{Field: "code", Is: CodeLongerThan, Value: 0}, 0},
		{"shorterThan max", profile.Record{Field: "code", Is: CodeShorterThan, Value: maxInt}, restrictions.MaxLengthOperand},
		{"integral decimal", profile.Record{Field: "code", Is: CodeOfLength, Value: json.Number("3.0")}, 3},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			c := parseOne(t, tc.rec)
			type lengthed interface{ Length() int }
			l, ok := c.(lengthed)
			if !ok {
				t.Fatalf("expected a length constraint, got %T", c)
			}
			if l.Length() != tc.want {
				t.Fatalf("expected length %d, got %d", tc.want, l.Length())
			}
		})
	}

	invalid := []struct {
		name     string
		rec      profile.Record
		fragment string
	}{
		{"fractional", profile.Record{Field: "code", Is: CodeOfLength, Value: json.Number("2.5")}, "must be an integer"},
		{"negative", profile.Record{Field: "code", Is: CodeOfLength, Value: json.Number("-1")}, "greater than or equal to 0"},
		{"ofLength over max", profile.Record{Field: "code", Is: CodeOfLength, Value: overMax}, "less than or equal to"},
		{"longerThan max", profile.Record{Field: "code", Is: CodeLongerThan, Value: maxInt}, "must be less than"},
		{"shorterThan zero", profile.Record{Field: "code", Is: CodeShorterThan, Value: 0}, "greater than 0"},
		{"string operand", profile.Record{Field: "code", Is: CodeOfLength, Value: "3"}, "must be an integer"},
		{"missing", profile.Record{Field: "code", Is: CodeOfLength}, "missing value"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			expectInvalid(t, tc.rec, tc.fragment)
		})
	}
}

func TestParseDate(t *testing.T) {
	valid := []struct {
		literal string
		want    time.Time
	}{
		{"2020-01-01T00:00:00.000", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T00:00:00.000Z", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T02:00:00.000+02:00", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-02-29T12:30:45.123Z", time.Date(2020, time.February, 29, 12, 30, 45, 123_000_000, time.UTC)},
		{"0001-01-01T00:00:00.000Z", time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"9999-12-31T23:59:59.999Z", time.Date(9999, time.December, 31, 23, 59, 59, 999_000_000, time.UTC)},
	}
	for _, tc := range valid {
		t.Run(tc.literal, func(t *testing.T) {
			got, err := ParseDate(tc.literal)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !got.Equal(tc.want) || got.Location() != time.UTC {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}

	invalid := []string{
		"2020-02-30T00:00:00.000Z",
		"2019-02-29T00:00:00.000Z",
		"10000-01-01T00:00:00.000Z",
		"0000-01-01T00:00:00.000Z",
		"2020-01-01",
		"2020-01-01T00:00:00Z",
		"2020-01-01T24:00:00.000Z",
		"2020-13-01T00:00:00.000Z",
	}
	for _, literal := range invalid {
		t.Run("reject "+literal, func(t *testing.T) {
			if _, err := ParseDate(literal); err == nil {
				t.Fatalf("expected %q to be rejected", literal)
			}
		})
	}
}

func TestParse_DateOperands(t *testing.T) {
	c := parseOne(t, profile.Record{Field: "created", Is: CodeBefore, Value: date("2020-01-01T00:00:00.000Z")})
	before, ok := c.(constraints.Before)
	if !ok {
		t.Fatalf("expected Before, got %T", c)
	}
	if want := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC); !before.Value().Equal(want) {
		t.Fatalf("expected %s, got %s", want, before.Value())
	}

	yamlStyle := parseOne(t, profile.Record{Field: "created", Is: CodeAfterOrAt, Value: map[any]any{"date": "2020-01-01T00:00:00.000Z"}})
	if yamlStyle.Kind() != constraints.KindAfterOrEqual {
		t.Fatalf("expected afterOrAt, got %s", yamlStyle.Kind())
	}

	expectInvalid(t, profile.Record{Field: "created", Is: CodeBefore, Value: "2020-01-01T00:00:00.000Z"}, "must be an object")
	expectInvalid(t, profile.Record{Field: "created", Is: CodeBefore, Value: date("2020-02-30T00:00:00.000Z")}, "not a valid calendar date")
	expectInvalid(t, profile.Record{Field: "created", Is: CodeAfter, Value: date("10000-01-01T00:00:00.000Z")}, "year between")
	expectInvalid(t, profile.Record{Field: "created", Is: CodeAfter, Value: map[string]any{"date": 20200101}}, "must be a string")
}

func TestParse_NumericOperands(t *testing.T) {
	c := parseOne(t, profile.Record{Field: "price", Is: CodeGreaterThanOrEqualTo, Value: json.Number("10.50")})
	gte, ok := c.(constraints.GreaterThanOrEqual)
	if !ok {
		t.Fatalf("expected GreaterThanOrEqual, got %T", c)
	}
	if !gte.Value().Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("unexpected operand %s", gte.Value())
	}

	expectInvalid(t, profile.Record{Field: "price", Is: CodeLessThan, Value: "10"}, "must be a number")
	expectInvalid(t, profile.Record{Field: "price", Is: CodeLessThan, Value: json.Number("1e21")}, "between")
}

func TestParse_NonFiniteNumbers(t *testing.T) {
	cases := []struct {
		name string
		rec  profile.Record
	}{
		{"NaN bound", profile.Record{Field: "price", Is: CodeGreaterThan, Value: math.NaN()}},
		{"infinite bound", profile.Record{Field: "price", Is: CodeLessThan, Value: math.Inf(1)}},
		{"negative infinity", profile.Record{Field: "price", Is: CodeEqualTo, Value: math.Inf(-1)}},
		{"float32 NaN", profile.Record{Field: "price", Is: CodeGreaterThan, Value: float32(math.NaN())}},
		{"infinite length", profile.Record{Field: "code", Is: CodeOfLength, Value: math.Inf(1)}},
		{"NaN granularity", profile.Record{Field: "price", Is: CodeGranularTo, Value: math.NaN()}},
		{"NaN set member", profile.Record{Field: "price", Is: CodeInSet, Values: []any{1, math.NaN()}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectInvalid(t, tc.rec, "")
		})
	}

	p, err := profile.Decode([]byte(`fields:
  - {name: price, type: numeric}
rules:
  - rule: not a number
    constraints:
      - {field: price, is: equalTo, value: .nan}
      - {field: price, is: greaterThan, value: .inf}
`), profile.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	fields, err := p.FieldSet()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	for _, rec := range p.Rules[0].Constraints {
		if _, err := Parse(rec, fields, testRule); !errors.Is(err, profile.ErrValidation) {
			t.Fatalf("expected %s %v to be rejected, got %v", rec.Is, rec.Value, err)
		}
	}
}

func TestParse_FieldTypeMismatch(t *testing.T) {
	cases := []struct {
		name     string
		rec      profile.Record
		fragment string
	}{
		{"numeric bound on string", profile.Record{Field: "code", Is: CodeGreaterThan, Value: 10}, `greaterThan applies to numeric fields, "code" is string`},
		{"date bound on numeric", profile.Record{Field: "price", Is: CodeBefore, Value: date("2020-01-01T00:00:00.000Z")}, `before applies to datetime fields, "price" is numeric`},
		{"length on datetime", profile.Record{Field: "created", Is: CodeOfLength, Value: 3}, "applies to string fields"},
		{"regex on boolean", profile.Record{Field: "active", Is: CodeMatchingRegex, Value: "x"}, "applies to string fields"},
		{"standard on numeric", profile.Record{Field: "price", Is: CodeAValid, Value: "ISIN"}, "applies to string fields"},
		{"granularity on string", profile.Record{Field: "code", Is: CodeGranularTo, Value: 1}, "numeric or datetime fields"},
		{"datetime unit on numeric", profile.Record{Field: "price", Is: CodeGranularTo, Value: "days"}, "applies to datetime fields"},
		{"numeric step on datetime", profile.Record{Field: "created", Is: CodeGranularTo, Value: 1}, "applies to numeric fields"},
		{"ofType on another type", profile.Record{Field: "code", Is: CodeOfType, Value: TypeDecimal}, `type "decimal" applies to numeric fields`},
		{"string literal on numeric", profile.Record{Field: "price", Is: CodeEqualTo, Value: "10"}, `does not fit numeric field "price"`},
		{"number in string set", profile.Record{Field: "code", Is: CodeInSet, Values: []any{"a", 1}}, `does not fit string field "code"`},
		{"date on boolean", profile.Record{Field: "active", Is: CodeEqualTo, Value: date("2020-01-01T00:00:00.000Z")}, "does not fit boolean field"},
		{"negated mismatch", profile.Record{Not: &profile.Record{Field: "code", Is: CodeLessThan, Value: 1}}, "applies to numeric fields"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectInvalid(t, tc.rec, tc.fragment)
		})
	}

	var verr profile.ValidationError
	_, err := Parse(profile.Record{Field: "code", Is: CodeGreaterThan, Value: 10}, testFields, testRule)
	if !errors.As(err, &verr) || verr.Field != "code" || verr.Code != CodeGreaterThan {
		t.Fatalf("expected error to name field and code, got %#v", err)
	}

	// codes without a type restriction still apply everywhere
	for _, field := range []string{"price", "code", "created", "active"} {
		parseOne(t, profile.Record{Field: field, Is: CodeNull})
		parseOne(t, profile.Record{Field: field, Is: CodeFormattedAs, Value: "%s"})
	}
}

func TestParse_OfType(t *testing.T) {
	c := parseOne(t, profile.Record{Field: "code", Is: CodeOfType, Value: TypeString})
	if typed, ok := c.(constraints.IsOfType); !ok || typed.Type() != profile.FieldTypeString {
		t.Fatalf("expected ofType string, got %s", c)
	}

	out, err := Parse(profile.Record{Field: "price", Is: CodeOfType, Value: TypeInteger}, testFields, testRule)
	if err != nil {
		t.Fatalf("parse integer: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected integer to expand to two constraints, got %d", len(out))
	}
	if out[0].Kind() != constraints.KindIsOfType || out[1].Kind() != constraints.KindGranularTo {
		t.Fatalf("unexpected expansion %s, %s", out[0], out[1])
	}
	if scale, ok := out[1].(constraints.GranularTo).Scale(); !ok || scale != 0 {
		t.Fatalf("expected unit granularity, got %d", scale)
	}

	expectInvalid(t, profile.Record{Field: "price", Is: CodeOfType, Value: "numeric"}, "no longer supported")
	expectInvalid(t, profile.Record{Field: "price", Is: CodeOfType, Value: "blob"}, "must be one of")
}

func TestParse_GranularTo(t *testing.T) {
	cases := []struct {
		name  string
		rec   profile.Record
		scale int
		unit  restrictions.Granularity
	}{
		{"decimal number", profile.Record{Field: "price", Is: CodeGranularTo, Value: json.Number("0.01")}, 2, restrictions.GranularityUnset},
		{"decimal string", profile.Record{Field: "price", Is: CodeGranularTo, Value: "0.1"}, 1, restrictions.GranularityUnset},
		{"unit", profile.Record{Field: "price", Is: CodeGranularTo, Value: 1}, 0, restrictions.GranularityUnset},
		{"datetime unit", profile.Record{Field: "created", Is: CodeGranularTo, Value: "days"}, 0, restrictions.GranularityDays},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, ok := parseOne(t, tc.rec).(constraints.GranularTo)
			if !ok {
				t.Fatalf("expected GranularTo")
			}
			if tc.unit != restrictions.GranularityUnset {
				if unit, ok := g.DateTimeGranularity(); !ok || unit != tc.unit {
					t.Fatalf("expected %s, got %s", tc.unit, unit)
				}
				return
			}
			if scale, ok := g.Scale(); !ok || scale != tc.scale {
				t.Fatalf("expected scale %d, got %d", tc.scale, scale)
			}
		})
	}

	expectInvalid(t, profile.Record{Field: "price", Is: CodeGranularTo, Value: json.Number("0.5")}, "power of ten")
	expectInvalid(t, profile.Record{Field: "price", Is: CodeGranularTo, Value: json.Number("10")}, "power of ten")
	expectInvalid(t, profile.Record{Field: "created", Is: CodeGranularTo, Value: "fortnights"}, "power of ten")
}

func TestParse_SetsAndEquality(t *testing.T) {
	set := parseOne(t, profile.Record{Field: "code", Is: CodeInSet, Values: []any{"a", "b", "a"}})
	if got := len(set.(constraints.InSet).Values()); got != 2 {
		t.Fatalf("expected two distinct members, got %d", got)
	}

	legacy := parseOne(t, profile.Record{Field: "code", Is: CodeInSet, Value: []any{"a"}})
	if legacy.Kind() != constraints.KindInSet {
		t.Fatalf("expected inSet from value list, got %s", legacy.Kind())
	}

	dates := parseOne(t, profile.Record{Field: "created", Is: CodeInSet, Values: []any{date("2020-01-01T00:00:00.000Z")}})
	eq := parseOne(t, profile.Record{Field: "created", Is: CodeEqualTo, Value: date("2020-01-01T00:00:00.000Z")})
	member := dates.(constraints.InSet).Values()[0]
	if !eq.(constraints.EqualTo).Value().(time.Time).Equal(member.(time.Time)) {
		t.Fatalf("equalTo and inSet must normalise dates the same way")
	}

	expectInvalid(t, profile.Record{Field: "code", Is: CodeInSet, Values: []any{"a", nil}}, "values[1] is null")
	expectInvalid(t, profile.Record{Field: "code", Is: CodeInSet}, "non-empty list")
	expectInvalid(t, profile.Record{Field: "code", Is: CodeEqualTo}, "missing value")
	expectInvalid(t, profile.Record{Field: "code", Is: CodeEqualTo, Value: []any{"a"}}, "unsupported value")
}

func TestParse_Patterns(t *testing.T) {
	c := parseOne(t, profile.Record{Field: "code", Is: CodeAValid, Value: "isin"})
	if std, ok := c.(constraints.MatchesStandard); !ok || std.Standard() != restrictions.StandardISIN {
		t.Fatalf("expected ISIN standard, got %s", c)
	}
	if parseOne(t, profile.Record{Field: "code", Is: CodeMatchingRegex, Value: "^[a-z]+$"}).Kind() != constraints.KindMatchesRegex {
		t.Fatalf("expected matchingRegex")
	}
	expectInvalid(t, profile.Record{Field: "code", Is: CodeContainingRegex, Value: "[a-"}, "not a valid regular expression")
	expectInvalid(t, profile.Record{Field: "code", Is: CodeAValid, Value: "IBAN"}, "must be one of")
	expectInvalid(t, profile.Record{Field: "code", Is: CodeFormattedAs, Value: "  "}, "must not be empty")
}

func TestParse_Not(t *testing.T) {
	c := parseOne(t, profile.Record{Not: &profile.Record{Field: "price", Is: CodeGreaterThan, Value: 10}})
	if c.Kind() != constraints.KindLessThanOrEqual {
		t.Fatalf("expected not(>) to read as <=, got %s", c.Kind())
	}

	null := parseOne(t, profile.Record{Not: &profile.Record{Field: "code", Is: CodeNull}})
	if null.Kind() != constraints.KindNot {
		t.Fatalf("expected Not wrapper, got %s", null.Kind())
	}

	double := parseOne(t, profile.Record{Not: &profile.Record{Not: &profile.Record{Field: "code", Is: CodeNull}}})
	if double.Kind() != constraints.KindIsNull {
		t.Fatalf("expected double negation to cancel, got %s", double.Kind())
	}

	expectInvalid(t, profile.Record{Not: &profile.Record{Field: "price", Is: CodeOfType, Value: TypeInteger}}, "expands to 2")
	expectInvalid(t, profile.Record{Field: "code", Is: CodeNull, Not: &profile.Record{Field: "code", Is: CodeNull}}, "alongside")
}

func TestParse_Resolution(t *testing.T) {
	expectInvalid(t, profile.Record{Field: "missing", Is: CodeNull}, "not declared")
	expectInvalid(t, profile.Record{Is: CodeNull}, "missing field name")
	expectInvalid(t, profile.Record{Field: "code"}, "missing constraint type")
	expectInvalid(t, profile.Record{Field: "code", Is: "sortOf"}, "unknown constraint type")

	if _, err := Parse(profile.Record{Field: "code", Is: CodeNull}, nil, testRule); !errors.Is(err, profile.ErrValidation) {
		t.Fatalf("expected validation error without fields, got %v", err)
	}

	var verr profile.ValidationError
	_, err := Parse(profile.Record{Field: "code", Is: "sortOf"}, testFields, testRule)
	if !errors.As(err, &verr) || verr.Field != "code" || verr.Code != "sortOf" {
		t.Fatalf("expected error to carry field and code, got %#v", err)
	}
}

func TestTypeCodes(t *testing.T) {
	codes := TypeCodes()
	if len(codes) != 20 {
		t.Fatalf("expected 20 type codes, got %d: %v", len(codes), codes)
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("type codes not sorted: %v", codes)
		}
	}
	if _, ok := Lookup(CodeFormattedAs); !ok {
		t.Fatalf("expected formattedAs to be registered")
	}
}

func TestParse_PreservesRule(t *testing.T) {
	c := parseOne(t, profile.Record{Field: "active", Is: CodeEqualTo, Value: true})
	if c.Rule() != testRule {
		t.Fatalf("expected rule %q, got %q", testRule, c.Rule())
	}
	if c.Field().Name != "active" {
		t.Fatalf("unexpected field %s", c.Field())
	}
}
