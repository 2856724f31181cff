// Package daycount converts date intervals into year fractions under the
// standard fixed-income day count conventions.
package daycount

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/bondlib/utils"
)

// ErrInvalidDateRange is returned when the end date precedes the start date.
var ErrInvalidDateRange = errors.New("end date before start date")

// Convention identifies a day count convention.
type Convention string

const (
	Act360      Convention = "ACT/360"
	Act365Fixed Convention = "ACT/365F"
	ActActISDA  Convention = "ACT/ACT ISDA"
	Thirty360US Convention = "30/360 US"
	Thirty360E  Convention = "30E/360"
)

// Parse resolves a convention name, accepting the common market aliases.
func Parse(s string) (Convention, error) {
	switch s {
	case "ACT/360":
		return Act360, nil
	case "ACT/365F", "ACT/365":
		return Act365Fixed, nil
	case "ACT/ACT ISDA", "ACT/ACT":
		return ActActISDA, nil
	case "30/360 US", "30/360":
		return Thirty360US, nil
	case "30E/360":
		return Thirty360E, nil
	default:
		return "", fmt.Errorf("daycount.Parse: unknown convention %q", s)
	}
}

// Days returns the whole calendar days from start to end.
func Days(start, end time.Time) int {
	return int(utils.Days(midnight(start), midnight(end)))
}

// Fraction returns the year fraction from start to end under the convention.
//
// The result is ≥ 0 and may exceed 1 for multi-year spans. An end date before
// the start date returns ErrInvalidDateRange.
func (c Convention) Fraction(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("daycount %s: start %s end %s: %w",
			c, start.Format("2006-01-02"), end.Format("2006-01-02"), ErrInvalidDateRange)
	}
	start, end = midnight(start), midnight(end)

	switch c {
	case Act360:
		return utils.Days(start, end) / 360.0, nil

	case Act365Fixed:
		return utils.Days(start, end) / 365.0, nil

	case ActActISDA:
		return actActISDA(start, end), nil

	case Thirty360US, Thirty360E:
		d1, m1, y1 := start.Day(), int(start.Month()), start.Year()
		d2, m2, y2 := end.Day(), int(end.Month()), end.Year()

		if c == Thirty360US {
			// US (NASD) end-of-February handling precedes the day-31 clamp.
			if isLastOfFebruary(start) && isLastOfFebruary(end) {
				d2 = 30
			}
			if isLastOfFebruary(start) {
				d1 = 30
			}
			if d2 == 31 && d1 >= 30 {
				d2 = 30
			}
			if d1 == 31 {
				d1 = 30
			}
		} else {
			if d1 == 31 {
				d1 = 30
			}
			if d2 == 31 {
				d2 = 30
			}
		}
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0, nil

	default:
		return 0, fmt.Errorf("daycount: unknown convention %q", c)
	}
}

// actActISDA splits the interval at each January 1 and sums
// days-in-segment / days-in-that-calendar-year, so leap years use 366.
func actActISDA(start, end time.Time) float64 {
	if start.Equal(end) {
		return 0
	}

	frac := 0.0
	for year := start.Year(); year <= end.Year(); year++ {
		segStart := start
		if year > start.Year() {
			segStart = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		segEnd := end
		if year < end.Year() {
			segEnd = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		frac += utils.Days(segStart, segEnd) / float64(daysInYear(year))
	}
	return frac
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func isLastOfFebruary(t time.Time) bool {
	return t.Month() == time.February && t.Day() == utils.DaysInMonth(t.Year(), time.February)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
