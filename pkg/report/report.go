// Package report holds the outcome of reducing a profile: the merged field
// specification of every declared field.
package report

import (
	"fmt"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/fieldspec"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// Field is the reduction of one field.
type Field struct {
	Field       profile.Field
	Constraints []constraints.Atomic
	// Spec is the merged specification; meaningful only when Possible.
	Spec     fieldspec.FieldSpec
	Possible bool
}

// Report covers every declared field in declaration order. Violated names the
// rule whose constraints were negated, or is empty for the profile as
// written.
type Report struct {
	Violated    string
	Alternative int
	Fields      []Field
}

// Possible reports whether every field admits at least one value.
func (r Report) Possible() bool {
	for _, f := range r.Fields {
		if !f.Possible {
			return false
		}
	}
	return true
}

// Contradictions returns the fields whose constraints admit no value.
func (r Report) Contradictions() []Field {
	var out []Field
	for _, f := range r.Fields {
		if !f.Possible {
			out = append(out, f)
		}
	}
	return out
}

// Lookup returns the reduction of the named field.
func (r Report) Lookup(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Field.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Title is a one-line heading for the report.
func (r Report) Title() string {
	if r.Violated == "" {
		return "profile"
	}
	return fmt.Sprintf("violating %q (alternative %d)", r.Violated, r.Alternative+1)
}

// FieldView is the serialisable form of a Field.
type FieldView struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Possible    bool     `json:"possible" yaml:"possible"`
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Spec        string   `json:"spec,omitempty" yaml:"spec,omitempty"`
	Nullness    string   `json:"nullness,omitempty" yaml:"nullness,omitempty"`
	Whitelist   []string `json:"whitelist,omitempty" yaml:"whitelist,omitempty"`
	Rules       []string `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// View is the serialisable form of a Report.
type View struct {
	Title       string      `json:"title" yaml:"title"`
	Violated    string      `json:"violated,omitempty" yaml:"violated,omitempty"`
	Alternative int         `json:"alternative,omitempty" yaml:"alternative,omitempty"`
	Possible    bool        `json:"possible" yaml:"possible"`
	Fields      []FieldView `json:"fields" yaml:"fields"`
}

// View flattens the report for renderers.
func (r Report) View() View {
	out := View{
		Title:       r.Title(),
		Violated:    r.Violated,
		Alternative: r.Alternative,
		Possible:    r.Possible(),
		Fields:      make([]FieldView, 0, len(r.Fields)),
	}
	for _, f := range r.Fields {
		fv := FieldView{
			Name:     f.Field.Name,
			Type:     string(f.Field.Type),
			Possible: f.Possible,
		}
		for _, c := range f.Constraints {
			fv.Constraints = append(fv.Constraints, c.String())
		}
		if f.Possible {
			fv.Spec = f.Spec.String()
			fv.Nullness = f.Spec.Nullness().String()
			if w, ok := f.Spec.Whitelist(); ok {
				for _, v := range w.Values() {
					fv.Whitelist = append(fv.Whitelist, restrictions.FormatValue(v))
				}
			}
			for _, rule := range f.Spec.Source().Rules() {
				fv.Rules = append(fv.Rules, rule.String())
			}
		}
		out.Fields = append(out.Fields, fv)
	}
	return out
}
