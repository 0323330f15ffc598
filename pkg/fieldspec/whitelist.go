package fieldspec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// Whitelist is an ordered set of distinct normalised values. Equality
// ignores order.
type Whitelist struct {
	values []any
	keys   []string
}

// NewWhitelist normalises values and drops duplicates, keeping the first
// occurrence.
func NewWhitelist(values ...any) (Whitelist, error) {
	var w Whitelist
	seen := make(map[string]struct{}, len(values))
	for i, raw := range values {
		v, ok := restrictions.NormalizeValue(raw)
		if !ok {
			if raw == nil {
				return Whitelist{}, fmt.Errorf("fieldspec: whitelist value %d is null", i)
			}
			return Whitelist{}, fmt.Errorf("fieldspec: whitelist value %d has unsupported type %T", i, raw)
		}
		k := restrictions.ValueKey(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		w.values = append(w.values, v)
		w.keys = append(w.keys, k)
	}
	return w, nil
}

// Values returns a copy of the members in order.
func (w Whitelist) Values() []any {
	return append([]any(nil), w.values...)
}

// Len returns the number of members.
func (w Whitelist) Len() int { return len(w.values) }

// Contains reports whether value is a member.
func (w Whitelist) Contains(value any) bool {
	v, ok := restrictions.NormalizeValue(value)
	if !ok {
		return false
	}
	return w.hasKey(restrictions.ValueKey(v))
}

// Equal compares members as sets.
func (w Whitelist) Equal(other Whitelist) bool {
	if len(w.keys) != len(other.keys) {
		return false
	}
	a, b := w.sortedKeys(), other.sortedKeys()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (w Whitelist) sortedKeys() []string {
	out := append([]string(nil), w.keys...)
	sort.Strings(out)
	return out
}

// filter keeps the members for which keep returns true.
func (w Whitelist) filter(keep func(v any, key string) bool) Whitelist {
	var out Whitelist
	for i, v := range w.values {
		if keep(v, w.keys[i]) {
			out.values = append(out.values, v)
			out.keys = append(out.keys, w.keys[i])
		}
	}
	return out
}

// intersect keeps the members of w also present in other.
func (w Whitelist) intersect(other Whitelist) Whitelist {
	index := make(map[string]struct{}, len(other.keys))
	for _, k := range other.keys {
		index[k] = struct{}{}
	}
	return w.filter(func(_ any, key string) bool {
		_, ok := index[key]
		return ok
	})
}

func (w Whitelist) String() string {
	parts := make([]string, len(w.values))
	for i, v := range w.values {
		parts[i] = restrictions.FormatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// union appends the members of other missing from w.
func (w Whitelist) union(other Whitelist) Whitelist {
	out := Whitelist{
		values: append([]any(nil), w.values...),
		keys:   append([]string(nil), w.keys...),
	}
	for i, k := range other.keys {
		if !containsKey(out.keys, k) {
			out.values = append(out.values, other.values[i])
			out.keys = append(out.keys, k)
		}
	}
	return out
}

func (w Whitelist) hasKey(key string) bool {
	return containsKey(w.keys, key)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
