// Package validation lints profile documents without running a full check.
// Every malformed record is reported with a JSON pointer to its location so a
// profile can be fixed in one pass.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-datagen/pkg/constraints"
	"github.com/goliatone/go-datagen/pkg/fieldspec"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/reader"
	"github.com/goliatone/go-datagen/pkg/source"
)

// Issue is a validation failure with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Path != "" {
		b.WriteString(i.Path + ": ")
	}
	if i.Field != "" {
		fmt.Fprintf(&b, "field %q: ", i.Field)
	}
	b.WriteString(i.Message)
	return b.String()
}

// Result captures the validation outcome.
type Result struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func (r *Result) add(issue Issue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

// located is a parsed constraint and the record it came from.
type located struct {
	path       string
	constraint constraints.Atomic
}

// Options configures validation behaviour.
type Options struct {
	// Format overrides the format derived from the source location.
	Format profile.Format

	// Factory enables the satisfiability pass: every field is reduced and
	// fields admitting no value are reported. Nil skips the pass.
	Factory *fieldspec.Factory
}

// ValidateProfile decodes raw and reads every constraint record.
func ValidateProfile(ctx context.Context, src source.Source, raw []byte, opts Options) Result {
	result := Result{Valid: true}
	if src == nil {
		src = source.FromFS("profile.json")
	}

	doc, err := source.NewDocument(src, raw)
	if err != nil {
		result.add(issueFromError("", err))
		return result
	}
	format := opts.Format
	if format == "" {
		format = profile.FormatFromPath(doc.Location())
	}
	p, err := profile.Decode(doc.Raw(), format)
	if err != nil {
		result.add(issueFromError("", err))
		return result
	}
	return ValidateDecoded(ctx, p, opts)
}

// ValidateDecoded validates an in-memory profile.
func ValidateDecoded(ctx context.Context, p profile.Profile, opts Options) Result {
	result := Result{Valid: true}

	fields, err := p.FieldSet()
	if err != nil {
		result.add(issueFromError("/fields", err))
		return result
	}

	byField := make(map[string][]located, fields.Len())
	seen := make(map[string]int, len(p.Rules))
	for i, decl := range p.Rules {
		if err := ctx.Err(); err != nil {
			result.add(issueFromError("", err))
			return result
		}
		if first, ok := seen[decl.Rule]; ok && decl.Rule != "" {
			result.add(Issue{
				Path:    fmt.Sprintf("/rules/%d/rule", i),
				Rule:    decl.Rule,
				Message: fmt.Sprintf("rule is already declared at /rules/%d", first),
			})
			continue
		}
		seen[decl.Rule] = i

		rule := profile.NewRule(decl.Rule)
		for j, rec := range decl.Constraints {
			path := fmt.Sprintf("/rules/%d/constraints/%d", i, j)
			cs, err := reader.Parse(rec, fields, rule)
			if err != nil {
				issue := issueFromError(path, err)
				issue.Rule = decl.Rule
				result.add(issue)
				continue
			}
			for _, c := range cs {
				name := c.Field().Name
				byField[name] = append(byField[name], located{path: path, constraint: c})
			}
		}
	}

	if opts.Factory == nil || !result.Valid {
		return result
	}
	for k, field := range fields.List() {
		parsed := byField[field.Name]
		cs := make([]constraints.Atomic, 0, len(parsed))
		for _, l := range parsed {
			cs = append(cs, l.constraint)
		}
		_, ok, err := opts.Factory.Reduce(field, cs)
		switch {
		case err != nil:
			result.add(Issue{Path: fmt.Sprintf("/fields/%d", k), Field: field.Name, Message: err.Error()})
		case !ok:
			paths := make([]string, 0, len(parsed))
			for _, l := range parsed {
				paths = append(paths, l.path)
			}
			result.add(Issue{
				Path:    fmt.Sprintf("/fields/%d", k),
				Field:   field.Name,
				Message: fmt.Sprintf("constraints admit no value (%s)", strings.Join(paths, ", ")),
			})
		}
	}
	return result
}

func issueFromError(path string, err error) Issue {
	if err == nil {
		return Issue{Path: path, Message: "unknown error"}
	}
	var verr profile.ValidationError
	if errors.As(err, &verr) {
		msg := strings.TrimSpace(verr.Message)
		if verr.Code != "" {
			msg = fmt.Sprintf("%s: %s", verr.Code, msg)
		}
		return Issue{Path: path, Field: verr.Field, Message: msg}
	}

	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "profile: ")
	msg = strings.TrimPrefix(msg, "source: ")
	return Issue{Path: path, Message: msg}
}
