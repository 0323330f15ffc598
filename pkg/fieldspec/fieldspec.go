package fieldspec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// GeneratorSource is an external supplier of values, such as a file of
// names. Sources are identified by Name.
type GeneratorSource interface {
	Name() string
}

type generator struct {
	source GeneratorSource
	accept func(any) bool
}

func (g *generator) permits(value any) bool {
	return g == nil || g.accept == nil || g.accept(value)
}

// Source records which rules contributed to a spec. It is diagnostic only and
// never affects equality.
type Source struct {
	rules []profile.Rule
}

// SourceOf returns the provenance of a single rule.
func SourceOf(rule profile.Rule) Source {
	return Source{rules: []profile.Rule{rule}}
}

// Rules returns the contributing rules in first-seen order.
func (s Source) Rules() []profile.Rule {
	return append([]profile.Rule(nil), s.rules...)
}

func (s Source) merge(other Source) Source {
	out := Source{rules: append([]profile.Rule(nil), s.rules...)}
	for _, r := range other.rules {
		dup := false
		for _, existing := range out.rules {
			if existing == r {
				dup = true
				break
			}
		}
		if !dup {
			out.rules = append(out.rules, r)
		}
	}
	return out
}

// FieldSpec is the legal value space of one field. The zero value admits
// every value, including null.
type FieldSpec struct {
	whitelist    Whitelist
	hasWhitelist bool
	blacklist    Whitelist
	restriction  restrictions.Typed
	nullness     restrictions.Nullness
	mustContain  []FieldSpec
	formatting   string
	generator    *generator
	source       Source
}

// Whitelist returns the explicit set of permitted values, if any.
func (s FieldSpec) Whitelist() (Whitelist, bool) {
	return s.whitelist, s.hasWhitelist
}

// Blacklist returns the values excluded by negated equality or membership.
func (s FieldSpec) Blacklist() []any {
	return s.blacklist.Values()
}

// Restriction returns the typed restriction, or nil.
func (s FieldSpec) Restriction() restrictions.Typed {
	return s.restriction
}

func (s FieldSpec) Nullness() restrictions.Nullness {
	return s.nullness
}

// MustContain returns the alternatives of which a value must satisfy at
// least one.
func (s FieldSpec) MustContain() []FieldSpec {
	return append([]FieldSpec(nil), s.mustContain...)
}

// Formatting returns the output format, or "".
func (s FieldSpec) Formatting() string {
	return s.formatting
}

// Generator returns the backing value source, if any.
func (s FieldSpec) Generator() (GeneratorSource, bool) {
	if s.generator == nil {
		return nil, false
	}
	return s.generator.source, true
}

func (s FieldSpec) Source() Source {
	return s.source
}

// WithSource returns a copy of s attributed to src.
func (s FieldSpec) WithSource(src Source) FieldSpec {
	s.source = src
	return s
}

// Permits reports whether value lies in the spec. A nil value stands for
// null.
func (s FieldSpec) Permits(value any) bool {
	if value == nil {
		return s.nullness.PermitsNull() && s.permitsNullAlternatives()
	}
	if !s.nullness.PermitsValues() {
		return false
	}
	v, ok := restrictions.NormalizeValue(value)
	if !ok {
		return false
	}
	if !s.permitsValue(v, restrictions.ValueKey(v)) || !s.generator.permits(v) {
		return false
	}
	if len(s.mustContain) == 0 {
		return true
	}
	for _, alt := range s.mustContain {
		if alt.Permits(v) {
			return true
		}
	}
	return false
}

func (s FieldSpec) permitsNullAlternatives() bool {
	if len(s.mustContain) == 0 {
		return true
	}
	for _, alt := range s.mustContain {
		if alt.Permits(nil) {
			return true
		}
	}
	return false
}

// permitsValue checks a normalised value against the whitelist, blacklist
// and restriction.
func (s FieldSpec) permitsValue(v any, key string) bool {
	if s.hasWhitelist && !s.whitelist.hasKey(key) {
		return false
	}
	if s.blacklist.hasKey(key) {
		return false
	}
	return s.restriction == nil || s.restriction.Permits(v)
}

// Equal compares content, ignoring provenance. Generators compare by source
// name.
func (s FieldSpec) Equal(other FieldSpec) bool {
	if s.hasWhitelist != other.hasWhitelist || s.nullness != other.nullness || s.formatting != other.formatting {
		return false
	}
	if s.hasWhitelist && !s.whitelist.Equal(other.whitelist) {
		return false
	}
	if !s.blacklist.Equal(other.blacklist) {
		return false
	}
	if !restrictions.Equal(s.restriction, other.restriction) {
		return false
	}
	if s.generatorName() != other.generatorName() {
		return false
	}
	return sameSpecs(s.mustContain, other.mustContain)
}

func sameSpecs(a, b []FieldSpec) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && x.Equal(y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s FieldSpec) generatorName() string {
	if s.generator == nil {
		return ""
	}
	return s.generator.source.Name()
}

// Hash is consistent with Equal.
func (s FieldSpec) Hash() uint64 {
	return xxhash.Sum64String(s.canonical())
}

func (s FieldSpec) canonical() string {
	var b strings.Builder
	if s.hasWhitelist {
		b.WriteString("w:" + strings.Join(s.whitelist.sortedKeys(), "\x1f") + ";")
	}
	b.WriteString("b:" + strings.Join(s.blacklist.sortedKeys(), "\x1f") + ";")
	if s.restriction != nil {
		b.WriteString("r:" + s.restriction.String() + ";")
	}
	b.WriteString("n:" + strconv.Itoa(int(s.nullness)) + ";")
	b.WriteString("f:" + s.formatting + ";")
	b.WriteString("g:" + s.generatorName() + ";")
	if len(s.mustContain) > 0 {
		hashes := make([]string, len(s.mustContain))
		for i, alt := range s.mustContain {
			hashes[i] = strconv.FormatUint(alt.Hash(), 16)
		}
		sort.Strings(hashes)
		b.WriteString("m:" + strings.Join(hashes, ",") + ";")
	}
	return b.String()
}

func (s FieldSpec) String() string {
	var parts []string
	if s.nullness == restrictions.NullMustBe {
		parts = append(parts, "null only")
	} else if s.nullness == restrictions.NullMustNot {
		parts = append(parts, "not null")
	}
	if s.hasWhitelist {
		parts = append(parts, "whitelist "+s.whitelist.String())
	}
	if s.blacklist.Len() > 0 {
		parts = append(parts, "blacklist "+s.blacklist.String())
	}
	if s.restriction != nil {
		parts = append(parts, s.restriction.String())
	}
	if s.formatting != "" {
		parts = append(parts, "formatted as "+strconv.Quote(s.formatting))
	}
	if name := s.generatorName(); name != "" {
		parts = append(parts, "generator "+name)
	}
	if len(s.mustContain) > 0 {
		alts := make([]string, len(s.mustContain))
		for i, alt := range s.mustContain {
			alts[i] = alt.String()
		}
		parts = append(parts, "one of {"+strings.Join(alts, " | ")+"}")
	}
	if len(parts) == 0 {
		return "FieldSpec{any}"
	}
	return "FieldSpec{" + strings.Join(parts, ", ") + "}"
}
