package fieldspec

import (
	"fmt"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// FromConstraint seeds a spec from one constraint using the default limits.
func FromConstraint(c constraints.Atomic) FieldSpec {
	return defaultFactory.FromConstraint(c)
}

// FromConstraint returns the spec admitting exactly the values c admits.
// The spec is attributed to c's rule.
func (f *Factory) FromConstraint(c constraints.Atomic) FieldSpec {
	if c == nil {
		return FieldSpec{}
	}
	return f.seed(constraints.Unwrap(c)).WithSource(SourceOf(c.Rule()))
}

func (f *Factory) seed(c constraints.Atomic) FieldSpec {
	switch c.Kind() {
	case constraints.KindEqualTo:
		return whitelistOf(c.(constraints.EqualTo).Value())
	case constraints.KindInSet:
		return whitelistOf(c.(constraints.InSet).Values()...)
	case constraints.KindMatchesRegex:
		return stringSpec(restrictions.StringMatching(restrictions.MatchingRegex(c.(constraints.MatchesRegex).Regexp())))
	case constraints.KindContainsRegex:
		return stringSpec(restrictions.StringMatching(restrictions.ContainingRegex(c.(constraints.ContainsRegex).Regexp())))
	case constraints.KindMatchesStandard:
		return stringSpec(restrictions.StringMatching(restrictions.MatchingStandard(c.(constraints.MatchesStandard).Standard())))
	case constraints.KindGreaterThan:
		return FromRestriction(restrictions.NumericAbove(c.(constraints.GreaterThan).Value(), false))
	case constraints.KindGreaterThanOrEqual:
		return FromRestriction(restrictions.NumericAbove(c.(constraints.GreaterThanOrEqual).Value(), true))
	case constraints.KindLessThan:
		return FromRestriction(restrictions.NumericBelow(c.(constraints.LessThan).Value(), false))
	case constraints.KindLessThanOrEqual:
		return FromRestriction(restrictions.NumericBelow(c.(constraints.LessThanOrEqual).Value(), true))
	case constraints.KindBefore:
		return FromRestriction(restrictions.DateTimeBefore(c.(constraints.Before).Value(), false))
	case constraints.KindBeforeOrEqual:
		return FromRestriction(restrictions.DateTimeBefore(c.(constraints.BeforeOrEqual).Value(), true))
	case constraints.KindAfter:
		return FromRestriction(restrictions.DateTimeAfter(c.(constraints.After).Value(), false))
	case constraints.KindAfterOrEqual:
		return FromRestriction(restrictions.DateTimeAfter(c.(constraints.AfterOrEqual).Value(), true))
	case constraints.KindGranularTo:
		g := c.(constraints.GranularTo)
		if unit, ok := g.DateTimeGranularity(); ok {
			return FromRestriction(restrictions.DateTimeGranularTo(unit))
		}
		scale, _ := g.Scale()
		return FromRestriction(restrictions.NumericGranularTo(scale))
	case constraints.KindIsNull:
		return NullOnly()
	case constraints.KindIsOfType:
		return f.seedOfType(c.(constraints.IsOfType), false)
	case constraints.KindLongerThan:
		return stringSpec(restrictions.StringMinLength(c.(constraints.LongerThan).Length() + 1))
	case constraints.KindShorterThan:
		return stringSpec(restrictions.StringMaxLength(c.(constraints.ShorterThan).Length() - 1))
	case constraints.KindHasLength:
		return stringSpec(restrictions.StringLength(c.(constraints.HasLength).Length()))
	case constraints.KindFormatAs:
		return FieldSpec{formatting: c.(constraints.FormatAs).Format()}
	case constraints.KindNot:
		return f.seedNegated(c.(constraints.Not).Inner())
	case constraints.KindViolated:
		return f.seed(constraints.Unwrap(c))
	default:
		panic(fmt.Sprintf("fieldspec: unhandled constraint kind %s", c.Kind()))
	}
}

// seedNegated handles the complements that have no structural opposite.
func (f *Factory) seedNegated(c constraints.Atomic) FieldSpec {
	switch c.Kind() {
	case constraints.KindEqualTo:
		return blacklistOf(c.(constraints.EqualTo).Value())
	case constraints.KindInSet:
		return blacklistOf(c.(constraints.InSet).Values()...)
	case constraints.KindMatchesRegex:
		return stringSpec(restrictions.StringMatching(restrictions.MatchingRegex(c.(constraints.MatchesRegex).Regexp()).Negate()))
	case constraints.KindContainsRegex:
		return stringSpec(restrictions.StringMatching(restrictions.ContainingRegex(c.(constraints.ContainsRegex).Regexp()).Negate()))
	case constraints.KindMatchesStandard:
		return stringSpec(restrictions.StringMatching(restrictions.MatchingStandard(c.(constraints.MatchesStandard).Standard()).Negate()))
	case constraints.KindIsNull:
		return NotNull()
	case constraints.KindIsOfType:
		return f.seedOfType(c.(constraints.IsOfType), true)
	case constraints.KindLongerThan:
		return stringSpec(restrictions.StringMaxLength(c.(constraints.LongerThan).Length()))
	case constraints.KindShorterThan:
		return stringSpec(restrictions.StringMinLength(c.(constraints.ShorterThan).Length()))
	case constraints.KindHasLength:
		return stringSpec(restrictions.StringExcludingLength(c.(constraints.HasLength).Length()))
	case constraints.KindGranularTo, constraints.KindFormatAs:
		// complement is not representable; left unconstrained
		return FieldSpec{}
	case constraints.KindNot:
		return f.seed(c.(constraints.Not).Inner())
	default:
		return f.seed(c.Negate())
	}
}

// seedOfType treats null as belonging to every type. A field only ever holds
// values of its declared type, so ofType either admits the whole field or
// null alone, and its negation admits the rest.
func (f *Factory) seedOfType(c constraints.IsOfType, negated bool) FieldSpec {
	field := c.Field()
	if (field.Type == c.Type()) == negated {
		return NullOnly()
	}
	spec, err := f.FromType(field.Type)
	if err != nil {
		return FieldSpec{}
	}
	return spec
}

func whitelistOf(values ...any) FieldSpec {
	spec, err := FromWhitelist(values...)
	if err != nil {
		// constraint operands are normalised on construction
		panic(err)
	}
	return spec
}

func blacklistOf(values ...any) FieldSpec {
	w, err := NewWhitelist(values...)
	if err != nil {
		panic(err)
	}
	return FieldSpec{blacklist: w}
}

func stringSpec(r restrictions.String) FieldSpec {
	return FromRestriction(r)
}

// FromMustContain builds a spec whose values must satisfy at least one of
// the seeds of cs.
func FromMustContain(cs ...constraints.Atomic) FieldSpec {
	return defaultFactory.FromMustContain(cs...)
}

func (f *Factory) FromMustContain(cs ...constraints.Atomic) FieldSpec {
	var alts []FieldSpec
	for _, c := range cs {
		alts = unionSpecs(alts, []FieldSpec{f.FromConstraint(c)})
	}
	return FieldSpec{mustContain: alts}
}

// Reduce merges every constraint of field onto the field's type default. It
// returns false when the constraints contradict each other.
func Reduce(field profile.Field, cs []constraints.Atomic) (FieldSpec, bool, error) {
	return defaultFactory.Reduce(field, cs)
}

func (f *Factory) Reduce(field profile.Field, cs []constraints.Atomic) (FieldSpec, bool, error) {
	spec, err := f.FromType(field.Type)
	if err != nil {
		return FieldSpec{}, false, err
	}
	for _, c := range cs {
		if c.Field() != field {
			return FieldSpec{}, false, fmt.Errorf("fieldspec: constraint %s targets field %s, not %s", c, c.Field(), field)
		}
		merged, ok := spec.Merge(f.FromConstraint(c))
		if !ok {
			return FieldSpec{}, false, nil
		}
		spec = merged
	}
	return spec, true, nil
}
