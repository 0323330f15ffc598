package restrictions

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// MatcherKind selects how a Matcher tests a string.
type MatcherKind uint8

const (
	// MatchWhole requires the whole string to match the pattern.
	MatchWhole MatcherKind = iota + 1
	// MatchContains requires the pattern to match somewhere in the string.
	MatchContains
	// MatchStandard requires the string to be a valid StandardFormat.
	MatchStandard
)

func (k MatcherKind) String() string {
	switch k {
	case MatchWhole:
		return "matches"
	case MatchContains:
		return "contains"
	case MatchStandard:
		return "a valid"
	default:
		return "unknown"
	}
}

// Matcher is one accumulated pattern requirement. Two matchers are equal when
// their kind, source text and negation agree.
type Matcher struct {
	Kind    MatcherKind
	Source  string
	Negated bool
	re      *regexp.Regexp
}

// MatchingRegex requires the whole string to match re.
func MatchingRegex(re *regexp.Regexp) Matcher {
	return Matcher{Kind: MatchWhole, Source: re.String(), re: regexp.MustCompile(`^(?:` + re.String() + `)$`)}
}

// ContainingRegex requires re to match a substring.
func ContainingRegex(re *regexp.Regexp) Matcher {
	return Matcher{Kind: MatchContains, Source: re.String(), re: re}
}

// MatchingStandard requires a valid instance of std.
func MatchingStandard(std StandardFormat) Matcher {
	return Matcher{Kind: MatchStandard, Source: string(std)}
}

// Negate returns the complementary matcher.
func (m Matcher) Negate() Matcher {
	m.Negated = !m.Negated
	return m
}

func (m Matcher) key() string {
	return fmt.Sprintf("%d/%t/%s", m.Kind, m.Negated, m.Source)
}

func (m Matcher) opposes(other Matcher) bool {
	return m.Kind == other.Kind && m.Source == other.Source && m.Negated != other.Negated
}

// Test reports whether value satisfies the matcher.
func (m Matcher) Test(value string) bool {
	var ok bool
	switch m.Kind {
	case MatchStandard:
		ok = StandardFormat(m.Source).Valid(value)
	default:
		ok = m.re != nil && m.re.MatchString(value)
	}
	return ok != m.Negated
}

func (m Matcher) String() string {
	prefix := ""
	if m.Negated {
		prefix = "not "
	}
	if m.Kind == MatchStandard {
		return prefix + "a valid " + m.Source
	}
	return fmt.Sprintf("%s%s /%s/", prefix, m.Kind, m.Source)
}

// noMaxLength marks a string restriction without an upper length bound.
const noMaxLength = -1

// String restricts string length and accumulates pattern requirements. A value
// must satisfy every matcher.
type String struct {
	minLength int
	maxLength int
	excluded  []int
	matchers  []Matcher
}

// AnyString admits every string.
func AnyString() String {
	return String{maxLength: noMaxLength}
}

// StringMaxLength admits strings of at most n characters.
func StringMaxLength(n int) String {
	return String{maxLength: n}
}

// StringMinLength admits strings of at least n characters.
func StringMinLength(n int) String {
	return String{minLength: n, maxLength: noMaxLength}
}

// StringLength admits strings of exactly n characters.
func StringLength(n int) String {
	return String{minLength: n, maxLength: n}
}

// StringExcludingLength admits strings of any length but n.
func StringExcludingLength(n int) String {
	return String{maxLength: noMaxLength, excluded: []int{n}}
}

// StringMatching admits strings satisfying m.
func StringMatching(m Matcher) String {
	return String{maxLength: noMaxLength, matchers: []Matcher{m}}
}

// DefaultString is the type default bounded by l.
func DefaultString(l Limits) String {
	return StringMaxLength(l.MaxStringLength)
}

// MinLength returns the shortest permitted length.
func (s String) MinLength() int { return s.minLength }

// MaxLength returns the longest permitted length, if bounded.
func (s String) MaxLength() (int, bool) {
	return s.maxLength, s.maxLength != noMaxLength
}

// ExcludedLengths returns the lengths ruled out by negated length constraints.
func (s String) ExcludedLengths() []int {
	return append([]int(nil), s.excluded...)
}

// Matchers returns the accumulated pattern requirements in canonical order.
func (s String) Matchers() []Matcher {
	return append([]Matcher(nil), s.matchers...)
}

// Kind implements Typed.
func (s String) Kind() Kind { return KindString }

// Intersect implements Typed.
func (s String) Intersect(other Typed) (Typed, bool) {
	o, ok := other.(String)
	if !ok {
		return nil, false
	}
	out := String{
		minLength: max(s.minLength, o.minLength),
		maxLength: s.maxLength,
		excluded:  unionInts(s.excluded, o.excluded),
	}
	if o.maxLength != noMaxLength && (out.maxLength == noMaxLength || o.maxLength < out.maxLength) {
		out.maxLength = o.maxLength
	}

	matchers, ok := unionMatchers(s.matchers, o.matchers)
	if !ok {
		return nil, false
	}
	out.matchers = matchers

	if out.empty() {
		return nil, false
	}
	return out, true
}

func (s String) empty() bool {
	if s.maxLength == noMaxLength {
		return false
	}
	if s.minLength > s.maxLength {
		return true
	}
	span := s.maxLength - s.minLength + 1
	if span > len(s.excluded) {
		return false
	}
	for n := s.minLength; n <= s.maxLength; n++ {
		if !containsInt(s.excluded, n) {
			return false
		}
	}
	return true
}

func unionInts(a, b []int) []int {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := append(append([]int(nil), a...), b...)
	sort.Ints(out)
	dedup := out[:0]
	for i, v := range out {
		if i > 0 && v == out[i-1] {
			continue
		}
		dedup = append(dedup, v)
	}
	return dedup
}

func containsInt(list []int, v int) bool {
	idx := sort.SearchInts(list, v)
	return idx < len(list) && list[idx] == v
}

func unionMatchers(a, b []Matcher) ([]Matcher, bool) {
	if len(a) == 0 && len(b) == 0 {
		return nil, true
	}
	byKey := make(map[string]Matcher, len(a)+len(b))
	for _, m := range append(append([]Matcher(nil), a...), b...) {
		byKey[m.key()] = m
	}
	out := make([]Matcher, 0, len(byKey))
	for _, m := range byKey {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			if out[i].opposes(out[j]) {
				return nil, false
			}
		}
	}
	return out, true
}

// Permits implements Typed.
func (s String) Permits(value any) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	length := utf8.RuneCountInString(str)
	if length < s.minLength {
		return false
	}
	if s.maxLength != noMaxLength && length > s.maxLength {
		return false
	}
	if containsInt(s.excluded, length) {
		return false
	}
	for _, m := range s.matchers {
		if !m.Test(str) {
			return false
		}
	}
	return true
}

// Equal implements Typed.
func (s String) Equal(other Typed) bool {
	o, ok := other.(String)
	if !ok {
		return false
	}
	if s.minLength != o.minLength || s.maxLength != o.maxLength {
		return false
	}
	if len(s.excluded) != len(o.excluded) || len(s.matchers) != len(o.matchers) {
		return false
	}
	for i := range s.excluded {
		if s.excluded[i] != o.excluded[i] {
			return false
		}
	}
	for i := range s.matchers {
		if s.matchers[i].key() != o.matchers[i].key() {
			return false
		}
	}
	return true
}

func (s String) String() string {
	var b strings.Builder
	b.WriteString("string length [")
	fmt.Fprintf(&b, "%d, ", s.minLength)
	if s.maxLength == noMaxLength {
		b.WriteString("+inf)")
	} else {
		fmt.Fprintf(&b, "%d]", s.maxLength)
	}
	if len(s.excluded) > 0 {
		fmt.Fprintf(&b, " excluding %v", s.excluded)
	}
	for _, m := range s.matchers {
		b.WriteString(", " + m.String())
	}
	return b.String()
}
