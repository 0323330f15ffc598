package constraints

import (
	"regexp"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

type regexOperand struct {
	base
	re *regexp.Regexp
}

// Regexp returns the compiled pattern.
func (r regexOperand) Regexp() *regexp.Regexp { return r.re }

// Source returns the pattern text used for equality.
func (r regexOperand) Source() string { return r.re.String() }

// MatchesRegex requires the whole value to match a pattern.
type MatchesRegex struct{ regexOperand }

func NewMatchesRegex(field profile.Field, re *regexp.Regexp, rule profile.Rule) (MatchesRegex, error) {
	if re == nil {
		return MatchesRegex{}, invalidArgument("regex")
	}
	return MatchesRegex{regexOperand{base{field, rule}, re}}, nil
}

func (c MatchesRegex) Kind() Kind { return KindMatchesRegex }

func (c MatchesRegex) Negate() Atomic { return Not{inner: c} }

func (c MatchesRegex) Label() string { return c.field.Name + " matches /" + c.Source() + "/" }

func (c MatchesRegex) String() string { return c.quoted() + " matches /" + c.Source() + "/" }

func (c MatchesRegex) key() string {
	return KindMatchesRegex.String() + "|" + c.fieldKey() + "|" + c.Source()
}

// ContainsRegex requires some substring of the value to match a pattern.
type ContainsRegex struct{ regexOperand }

func NewContainsRegex(field profile.Field, re *regexp.Regexp, rule profile.Rule) (ContainsRegex, error) {
	if re == nil {
		return ContainsRegex{}, invalidArgument("regex")
	}
	return ContainsRegex{regexOperand{base{field, rule}, re}}, nil
}

func (c ContainsRegex) Kind() Kind { return KindContainsRegex }

func (c ContainsRegex) Negate() Atomic { return Not{inner: c} }

func (c ContainsRegex) Label() string { return c.field.Name + " contains /" + c.Source() + "/" }

func (c ContainsRegex) String() string { return c.quoted() + " contains /" + c.Source() + "/" }

func (c ContainsRegex) key() string {
	return KindContainsRegex.String() + "|" + c.fieldKey() + "|" + c.Source()
}

// MatchesStandard requires a valid identifier of a financial standard.
type MatchesStandard struct {
	base
	standard restrictions.StandardFormat
}

func NewMatchesStandard(field profile.Field, standard restrictions.StandardFormat, rule profile.Rule) (MatchesStandard, error) {
	if standard == "" {
		return MatchesStandard{}, invalidArgument("standard")
	}
	return MatchesStandard{base{field, rule}, standard}, nil
}

func (c MatchesStandard) Standard() restrictions.StandardFormat { return c.standard }

func (c MatchesStandard) Kind() Kind { return KindMatchesStandard }

func (c MatchesStandard) Negate() Atomic { return Not{inner: c} }

func (c MatchesStandard) Label() string {
	return c.field.Name + " is a valid " + string(c.standard)
}

func (c MatchesStandard) String() string {
	return c.quoted() + " is a valid " + string(c.standard)
}

func (c MatchesStandard) key() string {
	return KindMatchesStandard.String() + "|" + c.fieldKey() + "|" + string(c.standard)
}
