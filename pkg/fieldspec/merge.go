package fieldspec

import "github.com/goliatone/go-datagen/pkg/restrictions"

// Merge intersects two specs. It returns false when no value satisfies both:
// opposite null policies, conflicting formats or generators, disjoint typed
// restrictions, or a whitelist left empty after filtering.
func (s FieldSpec) Merge(other FieldSpec) (FieldSpec, bool) {
	nullness, ok := s.nullness.Intersect(other.nullness)
	if !ok {
		return FieldSpec{}, false
	}

	formatting := s.formatting
	if other.formatting != "" {
		if formatting != "" && formatting != other.formatting {
			return FieldSpec{}, false
		}
		formatting = other.formatting
	}

	restriction, ok := restrictions.Intersect(s.restriction, other.restriction)
	if !ok {
		return FieldSpec{}, false
	}

	gen, ok := mergeGenerators(s.generator, other.generator)
	if !ok {
		return FieldSpec{}, false
	}

	out := FieldSpec{
		blacklist:   s.blacklist.union(other.blacklist),
		restriction: restriction,
		nullness:    nullness,
		mustContain: unionSpecs(s.mustContain, other.mustContain),
		formatting:  formatting,
		generator:   gen,
		source:      s.source.merge(other.source),
	}

	switch {
	case s.hasWhitelist && other.hasWhitelist:
		out.whitelist, out.hasWhitelist = s.whitelist.intersect(other.whitelist), true
	case s.hasWhitelist:
		out.whitelist, out.hasWhitelist = s.whitelist, true
	case other.hasWhitelist:
		out.whitelist, out.hasWhitelist = other.whitelist, true
	}
	if out.hasWhitelist {
		out.whitelist = out.whitelist.filter(func(v any, key string) bool {
			return out.permitsValue(v, key) && out.generator.permits(v)
		})
		if out.whitelist.Len() == 0 {
			return FieldSpec{}, false
		}
	}
	return out, true
}

// MergeAll folds specs left to right. With no arguments it returns the zero
// spec.
func MergeAll(specs ...FieldSpec) (FieldSpec, bool) {
	var out FieldSpec
	for i, spec := range specs {
		if i == 0 {
			out = spec
			continue
		}
		merged, ok := out.Merge(spec)
		if !ok {
			return FieldSpec{}, false
		}
		out = merged
	}
	return out, true
}

func mergeGenerators(a, b *generator) (*generator, bool) {
	switch {
	case a == nil:
		return b, true
	case b == nil:
		return a, true
	case a.source.Name() != b.source.Name():
		return nil, false
	}
	return &generator{
		source: a.source,
		accept: func(v any) bool { return a.permits(v) && b.permits(v) },
	}, true
}

// unionSpecs keeps each distinct alternative once.
func unionSpecs(a, b []FieldSpec) []FieldSpec {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := append([]FieldSpec(nil), a...)
	for _, spec := range b {
		dup := false
		for _, existing := range out {
			if existing.Hash() == spec.Hash() && existing.Equal(spec) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, spec)
		}
	}
	return out
}
