package restrictions

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNumericIntersect(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Numeric
		possible bool
		want     string
	}{
		{
			name:     "contradictory bounds",
			a:        NumericAbove(dec("10"), false),
			b:        NumericBelow(dec("5"), false),
			possible: false,
		},
		{
			name:     "half open range",
			a:        NumericAbove(dec("0"), true),
			b:        NumericBelow(dec("100"), false),
			possible: true,
			want:     "numeric [0, 100)",
		},
		{
			name:     "tighter bound wins",
			a:        NewNumeric(&NumericLimit{Value: dec("0"), Inclusive: true}, &NumericLimit{Value: dec("100"), Inclusive: true}, noScale),
			b:        NumericAbove(dec("10"), false),
			possible: true,
			want:     "numeric (10, 100]",
		},
		{
			name:     "exclusive wins a tie",
			a:        NumericAbove(dec("10"), true),
			b:        NumericAbove(dec("10"), false),
			possible: true,
			want:     "numeric (10, +inf)",
		},
		{
			name:     "equal exclusive bounds",
			a:        NumericAbove(dec("5"), false),
			b:        NumericBelow(dec("5"), true),
			possible: false,
		},
		{
			name:     "single point",
			a:        NumericAbove(dec("5"), true),
			b:        NumericBelow(dec("5"), true),
			possible: true,
			want:     "numeric [5, 5]",
		},
		{
			name:     "no grid point in range",
			a:        NewNumeric(&NumericLimit{Value: dec("0.001")}, &NumericLimit{Value: dec("0.009"), Inclusive: true}, noScale),
			b:        NumericGranularTo(2),
			possible: false,
		},
		{
			name:     "grid keeps the coarser step",
			a:        NumericGranularTo(2),
			b:        NumericGranularTo(0),
			possible: true,
			want:     "numeric (-inf, +inf) step 1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.a.Intersect(tc.b)
			if ok != tc.possible {
				t.Fatalf("expected possible=%v, got %v (%v)", tc.possible, ok, got)
			}
			if !ok {
				return
			}
			if got.String() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got.String())
			}
			back, _ := tc.b.Intersect(tc.a)
			if !got.Equal(back) {
				t.Fatalf("intersection is not commutative: %s vs %s", got, back)
			}
		})
	}
}

func TestNumericPermits(t *testing.T) {
	n := NewNumeric(&NumericLimit{Value: dec("0"), Inclusive: true}, &NumericLimit{Value: dec("100")}, 2)
	cases := []struct {
		value any
		want  bool
	}{
		{0, true},
		{dec("99.99"), true},
		{100, false},
		{-1, false},
		{1.005, false},
		{"12", false},
	}
	for _, tc := range cases {
		if got := n.Permits(tc.value); got != tc.want {
			t.Fatalf("Permits(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestScaleOf(t *testing.T) {
	cases := []struct {
		in    string
		scale int
		ok    bool
	}{
		{"1", 0, true},
		{"0.1", 1, true},
		{"0.001", 3, true},
		{"0.5", 0, false},
		{"10", 0, false},
	}
	for _, tc := range cases {
		scale, ok := ScaleOf(dec(tc.in))
		if ok != tc.ok || (ok && scale != tc.scale) {
			t.Fatalf("ScaleOf(%s) = %d, %v; want %d, %v", tc.in, scale, ok, tc.scale, tc.ok)
		}
	}
	if got := ScaleString(2); got != "0.01" {
		t.Fatalf("ScaleString(2) = %q", got)
	}
}

func TestStringIntersect(t *testing.T) {
	upper := MatchingRegex(regexp.MustCompile(`[A-Z]+`))

	if _, ok := StringMinLength(5).Intersect(StringMaxLength(3)); ok {
		t.Fatalf("min 5 and max 3 must be impossible")
	}

	got, ok := StringMinLength(2).Intersect(StringMaxLength(4))
	if !ok {
		t.Fatalf("expected lengths [2, 4]")
	}
	s := got.(String)
	if s.MinLength() != 2 {
		t.Fatalf("unexpected min %d", s.MinLength())
	}
	if max, bounded := s.MaxLength(); !bounded || max != 4 {
		t.Fatalf("unexpected max %d (%v)", max, bounded)
	}

	excluded := StringExcludingLength(2)
	excluded, _ = intersectString(t, excluded, StringExcludingLength(3))
	if _, ok := StringLength(2).Intersect(excluded); ok {
		t.Fatalf("excluded length must be impossible")
	}
	both, ok := intersectString(t, StringMinLength(2), StringMaxLength(3))
	if !ok {
		t.Fatalf("expected lengths [2, 3] to be possible")
	}
	if _, ok := both.Intersect(excluded); ok {
		t.Fatalf("every length in [2, 3] is excluded")
	}

	if _, ok := StringMatching(upper).Intersect(StringMatching(upper.Negate())); ok {
		t.Fatalf("a pattern and its negation must be impossible")
	}
	merged, ok := StringMatching(upper).Intersect(StringMatching(upper))
	if !ok || len(merged.(String).Matchers()) != 1 {
		t.Fatalf("duplicate matchers must collapse, got %v", merged)
	}
}

func intersectString(t *testing.T, a, b String) (String, bool) {
	t.Helper()
	got, ok := a.Intersect(b)
	if !ok {
		return String{}, false
	}
	return got.(String), true
}

func TestStringPermits(t *testing.T) {
	s, ok := intersectString(t, StringLength(8), StringMatching(MatchingRegex(regexp.MustCompile(`[A-Z]+`))))
	if !ok {
		t.Fatalf("expected possible")
	}
	cases := map[string]bool{
		"ABCDEFGH":  true,
		"ABCDEFG":   false,
		"ABCDEFGh":  false,
		"xABCDEFGH": false,
	}
	for value, want := range cases {
		if got := s.Permits(value); got != want {
			t.Fatalf("Permits(%q) = %v, want %v", value, got, want)
		}
	}

	contains := StringMatching(ContainingRegex(regexp.MustCompile(`\d`)))
	if !contains.Permits("ab1") || contains.Permits("abc") {
		t.Fatalf("containing matcher must look for a substring")
	}
	if contains.Permits(12) {
		t.Fatalf("non-string values are never permitted")
	}
}

func TestStandards(t *testing.T) {
	cases := []struct {
		std   StandardFormat
		value string
		want  bool
	}{
		{StandardISIN, "US0378331005", true},
		{StandardISIN, "US0378331006", false},
		{StandardISIN, "us0378331005", false},
		{StandardSEDOL, "0263494", true},
		{StandardSEDOL, "0263495", false},
		{StandardSEDOL, "A263494", false},
		{StandardCUSIP, "037833100", true},
		{StandardCUSIP, "037833101", false},
		{StandardRIC, "VOD.L", true},
		{StandardRIC, "VOD", false},
	}
	for _, tc := range cases {
		if got := tc.std.Valid(tc.value); got != tc.want {
			t.Fatalf("%s.Valid(%q) = %v, want %v", tc.std, tc.value, got, tc.want)
		}
	}

	std, ok := ParseStandard(" isin ")
	if !ok || std != StandardISIN {
		t.Fatalf("expected ISIN, got %q (%v)", std, ok)
	}
	if _, ok := ParseStandard("LEI"); ok {
		t.Fatalf("unexpected standard")
	}

	negated := StringMatching(MatchingStandard(StandardISIN).Negate())
	if negated.Permits("US0378331005") || !negated.Permits("nope") {
		t.Fatalf("negated standard must invert validity")
	}
}

func TestDateTimeIntersect(t *testing.T) {
	jan1 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan2 := jan1.AddDate(0, 0, 1)

	if _, ok := DateTimeAfter(jan2, false).Intersect(DateTimeBefore(jan1, false)); ok {
		t.Fatalf("after jan 2 and before jan 1 must be impossible")
	}

	within := NewDateTime(
		&DateTimeLimit{Value: jan1.Add(time.Hour), Inclusive: true},
		&DateTimeLimit{Value: jan1.Add(23 * time.Hour), Inclusive: true},
		GranularityUnset,
	)
	if _, ok := within.Intersect(DateTimeGranularTo(GranularityDays)); ok {
		t.Fatalf("no whole day lies between 01:00 and 23:00")
	}
	got, ok := within.Intersect(DateTimeGranularTo(GranularityHours))
	if !ok {
		t.Fatalf("expected hours to fit")
	}
	if !got.Permits(jan1.Add(2*time.Hour)) || got.Permits(jan1.Add(90*time.Minute)) {
		t.Fatalf("unexpected permits for %s", got)
	}

	g, _ := DateTimeGranularTo(GranularitySeconds).Intersect(DateTimeGranularTo(GranularityDays))
	if g.(DateTime).Granularity() != GranularityDays {
		t.Fatalf("expected coarser days, got %s", g.(DateTime).Granularity())
	}

	zone := time.FixedZone("plus1", 3600)
	a := DateTimeAfter(jan1, true)
	b := DateTimeAfter(jan1.In(zone), true)
	if !a.Equal(b) {
		t.Fatalf("limits in different zones must compare equal")
	}
}

func TestGranularity(t *testing.T) {
	names := GranularityNames()
	want := []string{"millis", "seconds", "minutes", "hours", "days", "months", "years"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("granularity names mismatch (-want +got):\n%s", diff)
	}
	g, ok := ParseGranularity("Months")
	if !ok || g != GranularityMonths {
		t.Fatalf("expected months, got %s (%v)", g, ok)
	}
	ts := time.Date(2021, time.March, 15, 10, 30, 0, 0, time.UTC)
	if got := GranularityMonths.Truncate(ts); !got.Equal(time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected truncation %s", got)
	}
	if got := GranularityYears.Next(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)); got.Year() != 2022 {
		t.Fatalf("unexpected next %s", got)
	}
}

func TestBoolean(t *testing.T) {
	if _, ok := BooleanOf(true).Intersect(BooleanOf(false)); ok {
		t.Fatalf("true and false must be impossible")
	}
	got, ok := AnyBoolean().Intersect(BooleanOf(false))
	if !ok || got.String() != "boolean {false}" {
		t.Fatalf("unexpected %v (%v)", got, ok)
	}
	if got.Permits(true) || !got.Permits(false) {
		t.Fatalf("unexpected permits")
	}
}

func TestIntersectAcrossKinds(t *testing.T) {
	if _, ok := Intersect(AnyString(), AnyBoolean()); ok {
		t.Fatalf("different kinds must be impossible")
	}
	got, ok := Intersect(nil, AnyBoolean())
	if !ok || !Equal(got, AnyBoolean()) {
		t.Fatalf("nil side must be unconstrained")
	}
}

func TestNullness(t *testing.T) {
	if _, ok := NullMustBe.Intersect(NullMustNot); ok {
		t.Fatalf("opposite policies must be impossible")
	}
	if got, ok := NullUnconstrained.Intersect(NullMustNot); !ok || got != NullMustNot {
		t.Fatalf("unexpected %s (%v)", got, ok)
	}
	if NullMustNot.PermitsNull() || NullMustBe.PermitsValues() {
		t.Fatalf("unexpected permits")
	}
}

func TestLimitsValidate(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	l := DefaultLimits()
	l.NumericMin, l.NumericMax = dec("10"), dec("5")
	if err := l.Validate(); err == nil {
		t.Fatalf("expected inverted numeric range to fail")
	}
	l = DefaultLimits()
	l.NumericScale = DefaultNumericScale + 1
	if err := l.Validate(); err == nil {
		t.Fatalf("expected scale beyond 20 to fail")
	}
	l = DefaultLimits()
	l.DateTimeMax = l.DateTimeMax.Add(time.Hour)
	if err := l.Validate(); err == nil {
		t.Fatalf("expected datetime beyond year 9999 to fail")
	}
}

func TestValues(t *testing.T) {
	a, _ := NormalizeValue(1)
	b, _ := NormalizeValue(1.0)
	if ValueKey(a) != ValueKey(b) {
		t.Fatalf("1 and 1.0 must share a key")
	}
	zone := time.FixedZone("plus2", 7200)
	ts := time.Date(2020, time.January, 1, 2, 0, 0, 0, zone)
	n, ok := NormalizeValue(ts)
	if !ok || n.(time.Time).Location() != time.UTC {
		t.Fatalf("datetimes must normalise to UTC")
	}
	if got := FormatValue(n); got != "2020-01-01T00:00:00.000Z" {
		t.Fatalf("unexpected formatting %q", got)
	}
	if _, ok := NormalizeValue(nil); ok {
		t.Fatalf("null is not a value")
	}
	if got := FormatValue("x"); got != `"x"` {
		t.Fatalf("strings are quoted, got %s", got)
	}
}
