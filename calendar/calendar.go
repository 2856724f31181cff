// Package calendar evaluates rule-based holiday calendars and business-day
// adjustment conventions.
package calendar

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Adjustment is a business-day adjustment convention for non-business dates.
type Adjustment string

const (
	Following         Adjustment = "FOLLOWING"
	Preceding         Adjustment = "PRECEDING"
	ModifiedFollowing Adjustment = "MODIFIED_FOLLOWING"
	ModifiedPreceding Adjustment = "MODIFIED_PRECEDING"
	NoAdjustment      Adjustment = "NO_ADJUSTMENT"
)

// ParseAdjustment converts an adjustment name to an Adjustment.
func ParseAdjustment(s string) (Adjustment, error) {
	switch Adjustment(s) {
	case Following, Preceding, ModifiedFollowing, ModifiedPreceding, NoAdjustment:
		return Adjustment(s), nil
	}
	return "", fmt.Errorf("ParseAdjustment: unknown adjustment %q", s)
}

// BusinessCalendar is the contract shared by single and union calendars.
type BusinessCalendar interface {
	// IsBusinessDay reports whether t is neither a weekend nor a holiday.
	IsBusinessDay(t time.Time) bool
	// HolidaysInYear returns the holiday dates of a year in ascending order.
	HolidaysInYear(year int) []time.Time
}

// Calendar owns an ordered rule set with a Saturday/Sunday weekend.
//
// Holiday dates are computed lazily per year and cached; the cache is guarded
// so a Calendar is safe for concurrent readers. Rule evaluation is
// deterministic, so recomputing a year is always safe.
type Calendar struct {
	rules []Rule

	mu    sync.RWMutex
	years map[int]map[time.Time]struct{}
}

// New builds a calendar from holiday rules. A calendar with no rules treats
// every weekday as a business day.
func New(rules ...Rule) *Calendar {
	return &Calendar{
		rules: append([]Rule(nil), rules...),
		years: make(map[int]map[time.Time]struct{}),
	}
}

// Rules returns a copy of the calendar's rule set.
func (c *Calendar) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// IsBusinessDay reports whether t is neither a Saturday/Sunday nor a holiday.
//
// Observed-shift rules may push a holiday into an adjacent year (Dec 31 → Jan),
// so the adjacent years' rule output is consulted as well.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	d := midnightUTC(t)
	y := d.Year()
	for _, year := range [3]int{y - 1, y, y + 1} {
		if _, ok := c.holidaySet(year)[d]; ok {
			return false
		}
	}
	return true
}

// HolidaysInYear returns the holidays a calendar's rules produce for a year,
// sorted ascending. Duplicate dates from overlapping rules are counted once.
// Note an observed shift near New Year may return a date in an adjacent year.
func (c *Calendar) HolidaysInYear(year int) []time.Time {
	set := c.holidaySet(year)
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (c *Calendar) holidaySet(year int) map[time.Time]struct{} {
	c.mu.RLock()
	set, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	set = make(map[time.Time]struct{}, len(c.rules))
	for _, r := range c.rules {
		if d, ok := r.DateIn(year); ok {
			set[d] = struct{}{}
		}
	}

	c.mu.Lock()
	c.years[year] = set
	c.mu.Unlock()
	return set
}

// Union combines member calendars: a date is a holiday if any member says so.
// It satisfies BusinessCalendar, so adjustment works on it unchanged.
type Union []BusinessCalendar

// IsBusinessDay reports whether t is a business day on every member calendar.
func (u Union) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	for _, cal := range u {
		if !cal.IsBusinessDay(t) {
			return false
		}
	}
	return true
}

// HolidaysInYear merges the members' holidays for a year, deduplicated and sorted.
func (u Union) HolidaysInYear(year int) []time.Time {
	set := make(map[time.Time]struct{})
	for _, cal := range u {
		for _, d := range cal.HolidaysInYear(year) {
			set[d] = struct{}{}
		}
	}
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Adjust shifts a non-business date per the given convention.
//
// Following and Preceding walk one day at a time. The Modified variants fall
// back to the opposite direction when the walk crosses a month boundary.
// NoAdjustment returns the input unchanged even if it is not a business day.
func Adjust(cal BusinessCalendar, t time.Time, adj Adjustment) time.Time {
	switch adj {
	case NoAdjustment:
		return t

	case Following:
		return walk(cal, t, 1)

	case Preceding:
		return walk(cal, t, -1)

	case ModifiedFollowing:
		d := walk(cal, t, 1)
		if d.Month() != t.Month() {
			return walk(cal, t, -1)
		}
		return d

	case ModifiedPreceding:
		d := walk(cal, t, -1)
		if d.Month() != t.Month() {
			return walk(cal, t, 1)
		}
		return d

	default:
		return walk(cal, t, 1)
	}
}

func walk(cal BusinessCalendar, t time.Time, step int) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal BusinessCalendar, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if cal.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal BusinessCalendar, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}
