package orchestrator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/reader"
)

// RuleConstraints are the parsed constraints of one rule, in declaration
// order.
type RuleConstraints struct {
	Rule        profile.Rule
	Constraints []constraints.Atomic
}

// Compiled is a profile whose records have all been read and validated.
type Compiled struct {
	Fields profile.Fields
	Rules  []RuleConstraints
}

// Compile reads every constraint record of p. Validation errors from all
// records are joined so a profile can be fixed in one pass.
func Compile(p profile.Profile) (Compiled, error) {
	fields, err := p.FieldSet()
	if err != nil {
		return Compiled{}, err
	}

	out := Compiled{Fields: fields}
	var errs []error
	seen := make(map[string]bool, len(p.Rules))
	for i, decl := range p.Rules {
		if seen[decl.Rule] && decl.Rule != "" {
			errs = append(errs, fmt.Errorf("rule %q is declared more than once", decl.Rule))
			continue
		}
		seen[decl.Rule] = true

		rule := profile.NewRule(decl.Rule)
		rc := RuleConstraints{Rule: rule}
		for j, rec := range decl.Constraints {
			cs, err := reader.Parse(rec, fields, rule)
			if err != nil {
				errs = append(errs, fmt.Errorf("rules[%d].constraints[%d]: %w", i, j, err))
				continue
			}
			rc.Constraints = append(rc.Constraints, cs...)
		}
		out.Rules = append(out.Rules, rc)
	}
	if len(errs) > 0 {
		return Compiled{}, errors.Join(errs...)
	}
	return out, nil
}

// Rule returns the parsed constraints of the rule with the given description.
func (c Compiled) Rule(description string) (RuleConstraints, bool) {
	for _, rc := range c.Rules {
		if rc.Rule.Description == description {
			return rc, true
		}
	}
	return RuleConstraints{}, false
}

// byField groups constraints by target field name.
func byField(rules []RuleConstraints) map[string][]constraints.Atomic {
	out := make(map[string][]constraints.Atomic)
	for _, rc := range rules {
		for _, c := range rc.Constraints {
			name := c.Field().Name
			out[name] = append(out[name], c)
		}
	}
	return out
}

// ViolationAlternatives splits the negation of a rule into disjoint
// alternatives. For constraints c1..cn, alternative i keeps c1..c(i-1) and
// replaces ci with its violated negation; later constraints are dropped.
// Every record breaking the rule satisfies exactly one alternative.
func (c Compiled) ViolationAlternatives(description string) ([][]RuleConstraints, error) {
	target, ok := c.Rule(description)
	if !ok {
		return nil, fmt.Errorf("orchestrator: rule %q not found", description)
	}
	if len(target.Constraints) == 0 {
		return nil, fmt.Errorf("orchestrator: rule %q has no constraints to violate", description)
	}

	var others []RuleConstraints
	for _, rc := range c.Rules {
		if rc.Rule.Description != description {
			others = append(others, rc)
		}
	}

	out := make([][]RuleConstraints, 0, len(target.Constraints))
	for i, ci := range target.Constraints {
		violated, err := constraints.NewViolated(ci)
		if err != nil {
			return nil, err
		}
		kept := append([]constraints.Atomic(nil), target.Constraints[:i]...)
		alt := append([]RuleConstraints(nil), others...)
		alt = append(alt,
			RuleConstraints{Rule: target.Rule, Constraints: kept},
			RuleConstraints{Rule: target.Rule.Violate(), Constraints: []constraints.Atomic{violated.Negate()}},
		)
		out = append(out, alt)
	}
	return out, nil
}
