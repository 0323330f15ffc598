package restrictions

import (
	"fmt"
	"strconv"
	"time"
)

// NormalizeValue converts a literal into its canonical representation:
// numbers become decimals, datetimes move to UTC, strings and booleans pass
// through. Any other value is rejected.
func NormalizeValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		return v, true
	case bool:
		return v, true
	case time.Time:
		return v.UTC(), true
	default:
		if d, ok := AsDecimal(v); ok {
			return d, true
		}
		return nil, false
	}
}

// ValueKey returns an identity key for a normalised value. Numerically equal
// decimals and identical instants share a key regardless of their scale or
// location.
func ValueKey(value any) string {
	switch v := value.(type) {
	case string:
		return "s:" + v
	case bool:
		return "b:" + strconv.FormatBool(v)
	case time.Time:
		return "t:" + v.UTC().Format(time.RFC3339Nano)
	default:
		if d, ok := AsDecimal(v); ok {
			return "n:" + d.String()
		}
		return fmt.Sprintf("%T:%v", value, value)
	}
}

// FormatValue renders a value for labels and diagnostics.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case time.Time:
		return FormatDateTime(v)
	default:
		if d, ok := AsDecimal(v); ok {
			return d.String()
		}
		return fmt.Sprint(value)
	}
}
