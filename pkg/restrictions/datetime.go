package restrictions

import (
	"strings"
	"time"
)

// Granularity is the step between adjacent legal datetime values.
type Granularity uint8

const (
	GranularityUnset Granularity = iota
	GranularityMillis
	GranularitySeconds
	GranularityMinutes
	GranularityHours
	GranularityDays
	GranularityMonths
	GranularityYears
)

var granularityNames = map[Granularity]string{
	GranularityMillis:  "millis",
	GranularitySeconds: "seconds",
	GranularityMinutes: "minutes",
	GranularityHours:   "hours",
	GranularityDays:    "days",
	GranularityMonths:  "months",
	GranularityYears:   "years",
}

// ParseGranularity resolves a datetime granularity name (case-insensitive).
func ParseGranularity(name string) (Granularity, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for unit, candidate := range granularityNames {
		if candidate == needle {
			return unit, true
		}
	}
	return GranularityUnset, false
}

// GranularityNames lists the accepted names from finest to coarsest.
func GranularityNames() []string {
	out := make([]string, 0, len(granularityNames))
	for unit := GranularityMillis; unit <= GranularityYears; unit++ {
		out = append(out, granularityNames[unit])
	}
	return out
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return "unset"
}

// Truncate rounds t down to the granularity. Times are handled in UTC.
func (g Granularity) Truncate(t time.Time) time.Time {
	t = t.UTC()
	switch g {
	case GranularityMillis:
		return t.Truncate(time.Millisecond)
	case GranularitySeconds:
		return t.Truncate(time.Second)
	case GranularityMinutes:
		return t.Truncate(time.Minute)
	case GranularityHours:
		return t.Truncate(time.Hour)
	case GranularityDays:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityMonths:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityYears:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// Next returns the value one step after t, which must already be truncated.
func (g Granularity) Next(t time.Time) time.Time {
	switch g {
	case GranularityMillis:
		return t.Add(time.Millisecond)
	case GranularitySeconds:
		return t.Add(time.Second)
	case GranularityMinutes:
		return t.Add(time.Minute)
	case GranularityHours:
		return t.Add(time.Hour)
	case GranularityDays:
		return t.AddDate(0, 0, 1)
	case GranularityMonths:
		return t.AddDate(0, 1, 0)
	case GranularityYears:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}

// coarser keeps the granularity both sides share; units nest, so the coarser
// unit is the exact intersection.
func (g Granularity) coarser(other Granularity) Granularity {
	if other > g {
		return other
	}
	return g
}

// DateTimeLimit is one end of a datetime range.
type DateTimeLimit struct {
	Value     time.Time
	Inclusive bool
}

// DateTime restricts a field to a range of instants on a calendar grid.
type DateTime struct {
	min         *DateTimeLimit
	max         *DateTimeLimit
	granularity Granularity
}

// NewDateTime builds a datetime restriction. Nil limits are unbounded; limit
// values are normalised to UTC.
func NewDateTime(min, max *DateTimeLimit, granularity Granularity) DateTime {
	out := DateTime{granularity: granularity}
	if min != nil {
		limit := DateTimeLimit{Value: min.Value.UTC(), Inclusive: min.Inclusive}
		out.min = &limit
	}
	if max != nil {
		limit := DateTimeLimit{Value: max.Value.UTC(), Inclusive: max.Inclusive}
		out.max = &limit
	}
	return out
}

// DateTimeAfter admits instants after (or at, when inclusive) t.
func DateTimeAfter(t time.Time, inclusive bool) DateTime {
	return NewDateTime(&DateTimeLimit{Value: t, Inclusive: inclusive}, nil, GranularityUnset)
}

// DateTimeBefore admits instants before (or at, when inclusive) t.
func DateTimeBefore(t time.Time, inclusive bool) DateTime {
	return NewDateTime(nil, &DateTimeLimit{Value: t, Inclusive: inclusive}, GranularityUnset)
}

// DateTimeGranularTo admits instants aligned to g.
func DateTimeGranularTo(g Granularity) DateTime {
	return NewDateTime(nil, nil, g)
}

// DefaultDateTime is the type default bounded by l.
func DefaultDateTime(l Limits) DateTime {
	return NewDateTime(
		&DateTimeLimit{Value: l.DateTimeMin, Inclusive: true},
		&DateTimeLimit{Value: l.DateTimeMax, Inclusive: true},
		GranularityMillis,
	)
}

// Min returns the lower limit, if any.
func (d DateTime) Min() (DateTimeLimit, bool) {
	if d.min == nil {
		return DateTimeLimit{}, false
	}
	return *d.min, true
}

// Max returns the upper limit, if any.
func (d DateTime) Max() (DateTimeLimit, bool) {
	if d.max == nil {
		return DateTimeLimit{}, false
	}
	return *d.max, true
}

// Granularity returns the step, GranularityUnset when unconstrained.
func (d DateTime) Granularity() Granularity {
	return d.granularity
}

// Kind implements Typed.
func (d DateTime) Kind() Kind { return KindDateTime }

// Intersect implements Typed.
func (d DateTime) Intersect(other Typed) (Typed, bool) {
	o, ok := other.(DateTime)
	if !ok {
		return nil, false
	}
	out := DateTime{
		min:         tighterDateTime(d.min, o.min, 1),
		max:         tighterDateTime(d.max, o.max, -1),
		granularity: d.granularity.coarser(o.granularity),
	}
	if out.empty() {
		return nil, false
	}
	return out, true
}

// tighterDateTime picks the later lower bound (sign 1) or the earlier upper
// bound (sign -1); ties prefer the exclusive limit.
func tighterDateTime(a, b *DateTimeLimit, sign int) *DateTimeLimit {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	switch cmp := a.Value.Compare(b.Value); {
	case cmp == sign:
		return a
	case cmp == -sign:
		return b
	}
	if !a.Inclusive {
		return a
	}
	return b
}

func (d DateTime) empty() bool {
	if d.min == nil || d.max == nil {
		return false
	}
	lowest := d.min.Value
	if d.granularity != GranularityUnset {
		truncated := d.granularity.Truncate(lowest)
		if truncated.Before(lowest) || (!d.min.Inclusive && truncated.Equal(lowest)) {
			truncated = d.granularity.Next(truncated)
		}
		lowest = truncated
	} else if !d.min.Inclusive || !d.max.Inclusive {
		return !lowest.Before(d.max.Value)
	}
	if d.max.Inclusive {
		return lowest.After(d.max.Value)
	}
	return !lowest.Before(d.max.Value)
}

// Permits implements Typed.
func (d DateTime) Permits(value any) bool {
	t, ok := value.(time.Time)
	if !ok {
		return false
	}
	if d.min != nil {
		if cmp := t.Compare(d.min.Value); cmp < 0 || (cmp == 0 && !d.min.Inclusive) {
			return false
		}
	}
	if d.max != nil {
		if cmp := t.Compare(d.max.Value); cmp > 0 || (cmp == 0 && !d.max.Inclusive) {
			return false
		}
	}
	if d.granularity != GranularityUnset && !d.granularity.Truncate(t).Equal(t) {
		return false
	}
	return true
}

// Equal implements Typed.
func (d DateTime) Equal(other Typed) bool {
	o, ok := other.(DateTime)
	if !ok {
		return false
	}
	return d.granularity == o.granularity && dateTimeLimitEqual(d.min, o.min) && dateTimeLimitEqual(d.max, o.max)
}

func dateTimeLimitEqual(a, b *DateTimeLimit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Inclusive == b.Inclusive && a.Value.Equal(b.Value)
}

func (d DateTime) String() string {
	var b strings.Builder
	b.WriteString("datetime ")
	switch {
	case d.min == nil:
		b.WriteString("(-inf")
	case d.min.Inclusive:
		b.WriteString("[" + FormatDateTime(d.min.Value))
	default:
		b.WriteString("(" + FormatDateTime(d.min.Value))
	}
	b.WriteString(", ")
	switch {
	case d.max == nil:
		b.WriteString("+inf)")
	case d.max.Inclusive:
		b.WriteString(FormatDateTime(d.max.Value) + "]")
	default:
		b.WriteString(FormatDateTime(d.max.Value) + ")")
	}
	if d.granularity != GranularityUnset {
		b.WriteString(" step " + d.granularity.String())
	}
	return b.String()
}

// DateTimeLayout is the canonical rendering of datetime values.
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatDateTime renders t in UTC using DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
