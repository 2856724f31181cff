// Package tenor parses and applies signed calendar tenors such as "3M" or "-5Y".
package tenor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/bondlib/utils"
)

// ErrInvalidFormat is returned when a tenor string is not [sign]digits+unit.
var ErrInvalidFormat = errors.New("invalid tenor format")

// Unit is a calendar tenor unit.
type Unit byte

const (
	Day   Unit = 'D'
	Week  Unit = 'W'
	Month Unit = 'M'
	Year  Unit = 'Y'
)

// Period is a signed calendar offset, e.g. {3, Month} for "3M".
//
// A negative count means "before": "-5Y" is five years prior.
type Period struct {
	Count int
	Unit  Unit
}

// Parse converts a tenor string like "1W", "3M", "10Y" or "-30D" into a Period.
func Parse(s string) (Period, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	if len(text) < 2 {
		return Period{}, fmt.Errorf("tenor %q: %w", s, ErrInvalidFormat)
	}

	var unit Unit
	switch text[len(text)-1] {
	case 'D':
		unit = Day
	case 'W':
		unit = Week
	case 'M':
		unit = Month
	case 'Y':
		unit = Year
	default:
		return Period{}, fmt.Errorf("tenor %q: unknown unit %q: %w", s, text[len(text)-1:], ErrInvalidFormat)
	}

	num := text[:len(text)-1]
	body := strings.TrimPrefix(strings.TrimPrefix(num, "+"), "-")
	if body == "" {
		return Period{}, fmt.Errorf("tenor %q: missing count: %w", s, ErrInvalidFormat)
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return Period{}, fmt.Errorf("tenor %q: %w", s, ErrInvalidFormat)
		}
	}

	count, err := strconv.Atoi(num)
	if err != nil {
		return Period{}, fmt.Errorf("tenor %q: %w", s, ErrInvalidFormat)
	}
	return Period{Count: count, Unit: unit}, nil
}

// MustParse is like Parse but panics on error. Intended for fixed conventions.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String formats the period so that Parse(p.String()) == p.
func (p Period) String() string {
	return fmt.Sprintf("%d%c", p.Count, p.Unit)
}

// Neg returns the period with the opposite sign.
func (p Period) Neg() Period {
	return Period{Count: -p.Count, Unit: p.Unit}
}

// AddTo applies the period to a date.
//
// Day and Week counts are pure calendar-day addition (week = 7 days). Month and
// Year counts add calendar months, clamping the day-of-month to the last valid
// day of the target month (Jan 31 + 1M = Feb 28/29). No business-day awareness:
// adjustment is the calendar package's job.
func (p Period) AddTo(t time.Time) time.Time {
	switch p.Unit {
	case Day:
		return t.AddDate(0, 0, p.Count)
	case Week:
		return t.AddDate(0, 0, 7*p.Count)
	case Month:
		return utils.AddMonth(t, p.Count)
	case Year:
		return utils.AddMonth(t, 12*p.Count)
	default:
		return t
	}
}
