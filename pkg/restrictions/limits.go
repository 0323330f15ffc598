package restrictions

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultNumericScale is the finest numeric granularity (10^-20).
	DefaultNumericScale = 20
	// DefaultMaxStringLength bounds generated strings when no length
	// constraint applies.
	DefaultMaxStringLength = 1000
	// MaxLengthOperand is the largest length a profile may reference. It is
	// pinned to the 32-bit int range so profiles stay portable.
	MaxLengthOperand = math.MaxInt32
	// MinYear and MaxYear bound datetime operands.
	MinYear = 1
	MaxYear = 9999
)

// Limits are the global bounds applied to type defaults.
type Limits struct {
	NumericMin      decimal.Decimal
	NumericMax      decimal.Decimal
	NumericScale    int
	MaxStringLength int
	DateTimeMin     time.Time
	DateTimeMax     time.Time
}

// DefaultLimits returns the engine-wide bounds: numbers within ±1e20, strings
// up to 1000 characters, datetimes from year 1 to the last millisecond of 9999.
func DefaultLimits() Limits {
	return Limits{
		NumericMin:      decimal.New(-1, 20),
		NumericMax:      decimal.New(1, 20),
		NumericScale:    DefaultNumericScale,
		MaxStringLength: DefaultMaxStringLength,
		DateTimeMin:     time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		DateTimeMax:     time.Date(MaxYear, time.December, 31, 23, 59, 59, 999_000_000, time.UTC),
	}
}

// Validate checks that the limits describe non-empty ranges inside the
// engine-wide bounds.
func (l Limits) Validate() error {
	def := DefaultLimits()
	if l.NumericMin.GreaterThan(l.NumericMax) {
		return errors.New("restrictions: numeric min exceeds numeric max")
	}
	if l.NumericMin.LessThan(def.NumericMin) || l.NumericMax.GreaterThan(def.NumericMax) {
		return fmt.Errorf("restrictions: numeric limits must lie within [%s, %s]", def.NumericMin, def.NumericMax)
	}
	if l.NumericScale < 0 || l.NumericScale > DefaultNumericScale {
		return fmt.Errorf("restrictions: numeric scale must lie within [0, %d]", DefaultNumericScale)
	}
	if l.MaxStringLength < 0 || l.MaxStringLength > MaxLengthOperand {
		return fmt.Errorf("restrictions: max string length must lie within [0, %d]", MaxLengthOperand)
	}
	if l.DateTimeMin.After(l.DateTimeMax) {
		return errors.New("restrictions: datetime min is after datetime max")
	}
	if l.DateTimeMin.Before(def.DateTimeMin) || l.DateTimeMax.After(def.DateTimeMax) {
		return fmt.Errorf("restrictions: datetime limits must lie within years %d-%d", MinYear, MaxYear)
	}
	return nil
}
