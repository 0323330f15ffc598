package reader

import (
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/profile"
)

// Parser reads one record. The returned constraints form a conjunction; most
// codes yield exactly one.
type Parser func(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error)

// Type codes as they appear in profiles.
const (
	CodeEqualTo              = "equalTo"
	CodeInSet                = "inSet"
	CodeMatchingRegex        = "matchingRegex"
	CodeContainingRegex      = "containingRegex"
	CodeAValid               = "aValid"
	CodeGreaterThan          = "greaterThan"
	CodeGreaterThanOrEqualTo = "greaterThanOrEqualTo"
	CodeLessThan             = "lessThan"
	CodeLessThanOrEqualTo    = "lessThanOrEqualTo"
	CodeBefore               = "before"
	CodeBeforeOrAt           = "beforeOrAt"
	CodeAfter                = "after"
	CodeAfterOrAt            = "afterOrAt"
	CodeGranularTo           = "granularTo"
	CodeNull                 = "null"
	CodeOfType               = "ofType"
	CodeLongerThan           = "longerThan"
	CodeShorterThan          = "shorterThan"
	CodeOfLength             = "ofLength"
	CodeFormattedAs          = "formattedAs"
)

var parsers = func() map[string]Parser {
	return map[string]Parser{
		CodeEqualTo:              parseEqualTo,
		CodeInSet:                parseInSet,
		CodeMatchingRegex:        parseMatchingRegex,
		CodeContainingRegex:      parseContainingRegex,
		CodeAValid:               parseAValid,
		CodeGreaterThan:          numericParser(constraints.NewGreaterThan),
		CodeGreaterThanOrEqualTo: numericParser(constraints.NewGreaterThanOrEqual),
		CodeLessThan:             numericParser(constraints.NewLessThan),
		CodeLessThanOrEqualTo:    numericParser(constraints.NewLessThanOrEqual),
		CodeBefore:               dateParser(constraints.NewBefore),
		CodeBeforeOrAt:           dateParser(constraints.NewBeforeOrEqual),
		CodeAfter:                dateParser(constraints.NewAfter),
		CodeAfterOrAt:            dateParser(constraints.NewAfterOrEqual),
		CodeGranularTo:           parseGranularTo,
		CodeNull:                 parseNull,
		CodeOfType:               parseOfType,
		CodeLongerThan:           lengthParser(longerThanBounds, constraints.NewLongerThan),
		CodeShorterThan:          lengthParser(shorterThanBounds, constraints.NewShorterThan),
		CodeOfLength:             lengthParser(ofLengthBounds, constraints.NewHasLength),
		CodeFormattedAs:          parseFormattedAs,
	}
}()

var (
	numericOnly  = []profile.FieldType{profile.FieldTypeNumeric}
	stringOnly   = []profile.FieldType{profile.FieldTypeString}
	dateTimeOnly = []profile.FieldType{profile.FieldTypeDateTime}
)

// appliesTo restricts codes to field types. Unlisted codes apply to every
// field or check their operand against the field themselves.
var appliesTo = map[string][]profile.FieldType{
	CodeMatchingRegex:        stringOnly,
	CodeContainingRegex:      stringOnly,
	CodeAValid:               stringOnly,
	CodeLongerThan:           stringOnly,
	CodeShorterThan:          stringOnly,
	CodeOfLength:             stringOnly,
	CodeGreaterThan:          numericOnly,
	CodeGreaterThanOrEqualTo: numericOnly,
	CodeLessThan:             numericOnly,
	CodeLessThanOrEqualTo:    numericOnly,
	CodeBefore:               dateTimeOnly,
	CodeBeforeOrAt:           dateTimeOnly,
	CodeAfter:                dateTimeOnly,
	CodeAfterOrAt:            dateTimeOnly,
	CodeGranularTo:           {profile.FieldTypeNumeric, profile.FieldTypeDateTime},
}

// Lookup returns the parser registered for a type code.
func Lookup(code string) (Parser, bool) {
	p, ok := parsers[code]
	return p, ok
}

// TypeCodes lists the supported type codes in sorted order.
func TypeCodes() []string {
	out := make([]string, 0, len(parsers))
	for code := range parsers {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Parse reads a record through the registry. A record carrying "not" is read
// recursively and its single resulting constraint is negated.
func Parse(rec profile.Record, fields profile.FieldResolver, rule profile.Rule) ([]constraints.Atomic, error) {
	if rec.Not != nil {
		if rec.Is != "" || rec.Field != "" {
			return nil, profile.Invalid(rec, "a negated record must not declare field or type alongside \"not\"")
		}
		inner, err := Parse(*rec.Not, fields, rule)
		if err != nil {
			return nil, err
		}
		if len(inner) != 1 {
			return nil, profile.Invalid(*rec.Not, "cannot negate a constraint that expands to %d constraints", len(inner))
		}
		return []constraints.Atomic{inner[0].Negate()}, nil
	}

	if rec.Is == "" {
		return nil, profile.Invalid(rec, "missing constraint type")
	}
	p, ok := Lookup(rec.Is)
	if !ok {
		return nil, profile.Invalid(rec, "unknown constraint type %q", rec.Is)
	}
	if err := checkFieldType(rec, fields); err != nil {
		return nil, err
	}
	return p(rec, fields, rule)
}

// checkFieldType rejects a code used on a field type it cannot constrain.
// Unresolvable fields are left to the parser to report.
func checkFieldType(rec profile.Record, fields profile.FieldResolver) error {
	types, ok := appliesTo[rec.Is]
	if !ok || fields == nil {
		return nil
	}
	field, ok := fields.ByName(rec.Field)
	if !ok || slices.Contains(types, field.Type) {
		return nil
	}
	return mismatch(rec, field, types...)
}

func mismatch(rec profile.Record, field profile.Field, types ...profile.FieldType) error {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return profile.Invalid(rec, "%s applies to %s fields, %q is %s",
		rec.Is, strings.Join(names, " or "), field.Name, field.Type)
}

func one(c constraints.Atomic) []constraints.Atomic {
	return []constraints.Atomic{c}
}
