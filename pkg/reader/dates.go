package reader

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// DatePattern is the accepted shape of a date literal.
const DatePattern = "yyyy-MM-ddTHH:mm:ss.SSS[Z|±HH:MM]"

var dateShape = regexp.MustCompile(`^([+-]?\d+)-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})\.(\d{3})(Z|[+-]\d{2}:\d{2})?$`)

const (
	layoutWithZone = "2006-01-02T15:04:05.000Z07:00"
	layoutNoZone   = "2006-01-02T15:04:05.000"
)

// ParseDate parses a date literal strictly. Invalid calendar dates (such as
// February 30th) and years outside [1, 9999] are rejected. Literals without
// an offset are read as UTC; the result is always UTC.
func ParseDate(literal string) (time.Time, error) {
	m := dateShape.FindStringSubmatch(literal)
	if m == nil {
		return time.Time{}, fmt.Errorf("date %q must match %s", literal, DatePattern)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year < restrictions.MinYear || year > restrictions.MaxYear || len(m[1]) != 4 {
		return time.Time{}, fmt.Errorf("date %q must have a year between %04d and %04d", literal, restrictions.MinYear, restrictions.MaxYear)
	}

	layout := layoutWithZone
	if m[8] == "" {
		layout = layoutNoZone
	}
	t, err := time.Parse(layout, literal)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not a valid calendar date for %s", literal, DatePattern)
	}
	t = t.UTC()
	if t.Year() < restrictions.MinYear || t.Year() > restrictions.MaxYear {
		return time.Time{}, fmt.Errorf("date %q must have a year between %04d and %04d", literal, restrictions.MinYear, restrictions.MaxYear)
	}
	return t, nil
}

// dateObject reports whether value is a {"date": "..."} wrapper and returns
// the literal it carries.
func dateObject(value any) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) != 1 {
			return nil, false
		}
		lit, ok := v["date"]
		return lit, ok
	case map[any]any:
		if len(v) != 1 {
			return nil, false
		}
		lit, ok := v["date"]
		return lit, ok
	default:
		return nil, false
	}
}
