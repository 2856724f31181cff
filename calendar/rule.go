package calendar

import (
	"fmt"
	"time"

	"github.com/meenmo/bondlib/utils"
)

// RuleKind discriminates the holiday rule variants.
type RuleKind string

const (
	// KindFixedDate is a holiday on the same month/day every year.
	KindFixedDate RuleKind = "FIXED_DATE"
	// KindFixedDateObserved is a fixed date shifted off weekends per an ObservedShift.
	KindFixedDateObserved RuleKind = "FIXED_DATE_OBSERVED"
	// KindNthWeekday is the nth weekday of a month (negative ordinal counts from the end).
	KindNthWeekday RuleKind = "NTH_WEEKDAY"
	// KindEasterOffset is a day offset relative to Easter Sunday.
	KindEasterOffset RuleKind = "EASTER_OFFSET"
	// KindSingular is a one-off holiday on a single literal date.
	KindSingular RuleKind = "SINGULAR"
)

// ObservedShift is the weekend-shift policy for FixedDateObserved rules.
type ObservedShift string

const (
	// NextMonday moves Saturday and Sunday occurrences to the following Monday.
	NextMonday ObservedShift = "NEXT_MONDAY"
	// PreviousFriday moves Saturday and Sunday occurrences to the preceding Friday.
	PreviousFriday ObservedShift = "PREVIOUS_FRIDAY"
	// NearestWeekday moves Saturday to Friday and Sunday to Monday (US federal style).
	NearestWeekday ObservedShift = "NEAREST_WEEKDAY"
	// NextMondayOrTuesday moves Saturday to Monday and Sunday to Tuesday.
	// Used for the second of paired holidays (Christmas/Boxing Day): applying
	// it to both dates yields the Monday+Tuesday substitute pair whichever of
	// the two falls on the weekend.
	NextMondayOrTuesday ObservedShift = "NEXT_MONDAY_OR_TUESDAY"
)

// Rule is a single holiday rule. It is a plain comparable value so calendars
// stay serializable and testable; the kinds form a closed set rather than
// arbitrary callbacks. Given a year, a rule produces zero or one date.
type Rule struct {
	Kind    RuleKind
	Month   time.Month
	Day     int
	Weekday time.Weekday
	// Ordinal selects the nth occurrence of Weekday within Month for
	// KindNthWeekday: 1..5 from the month start, -1..-5 from the month end.
	Ordinal int
	// Offset is the day offset from Easter Sunday for KindEasterOffset.
	Offset int
	// Date is the literal holiday for KindSingular.
	Date time.Time
	// Observed is the weekend policy for KindFixedDateObserved.
	Observed ObservedShift
}

// FixedDate returns a rule for a holiday on the same month/day every year.
func FixedDate(month time.Month, day int) Rule {
	return Rule{Kind: KindFixedDate, Month: month, Day: day}
}

// FixedDateObserved returns a fixed-date rule whose weekend occurrences are
// shifted per the given policy.
func FixedDateObserved(month time.Month, day int, shift ObservedShift) Rule {
	return Rule{Kind: KindFixedDateObserved, Month: month, Day: day, Observed: shift}
}

// NthWeekday returns a rule for the nth weekday of a month. A negative ordinal
// counts from the month end: -1 is the last such weekday.
func NthWeekday(month time.Month, weekday time.Weekday, ordinal int) Rule {
	return Rule{Kind: KindNthWeekday, Month: month, Weekday: weekday, Ordinal: ordinal}
}

// EasterOffset returns a rule for a moveable feast at the given day offset from
// Easter Sunday (Good Friday is -2, Easter Monday is +1, Whit Monday is +50).
func EasterOffset(days int) Rule {
	return Rule{Kind: KindEasterOffset, Offset: days}
}

// Singular returns a one-off rule for exactly one literal date. It never recurs.
func Singular(date time.Time) Rule {
	return Rule{Kind: KindSingular, Date: midnightUTC(date)}
}

// DateIn evaluates the rule for a year. The second return is false when the
// rule produces no date in that year (a Singular rule outside its own year, or
// an nth-weekday ordinal that does not exist).
func (r Rule) DateIn(year int) (time.Time, bool) {
	switch r.Kind {
	case KindFixedDate:
		return time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC), true

	case KindFixedDateObserved:
		d := time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)
		return observe(d, r.Observed), true

	case KindNthWeekday:
		return nthWeekdayOfMonth(year, r.Month, r.Weekday, r.Ordinal)

	case KindEasterOffset:
		return easterSunday(year).AddDate(0, 0, r.Offset), true

	case KindSingular:
		if r.Date.Year() != year {
			return time.Time{}, false
		}
		return r.Date, true

	default:
		return time.Time{}, false
	}
}

// String renders the rule for diagnostics.
func (r Rule) String() string {
	switch r.Kind {
	case KindFixedDate:
		return fmt.Sprintf("%s %d", r.Month, r.Day)
	case KindFixedDateObserved:
		return fmt.Sprintf("%s %d (observed %s)", r.Month, r.Day, r.Observed)
	case KindNthWeekday:
		return fmt.Sprintf("%s #%d of %s", r.Weekday, r.Ordinal, r.Month)
	case KindEasterOffset:
		return fmt.Sprintf("Easter%+d", r.Offset)
	case KindSingular:
		return r.Date.Format("2006-01-02")
	default:
		return string(r.Kind)
	}
}

func observe(d time.Time, shift ObservedShift) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		switch shift {
		case PreviousFriday, NearestWeekday:
			return d.AddDate(0, 0, -1)
		default:
			return d.AddDate(0, 0, 2)
		}
	case time.Sunday:
		switch shift {
		case PreviousFriday:
			return d.AddDate(0, 0, -2)
		case NextMondayOrTuesday:
			return d.AddDate(0, 0, 2)
		default:
			return d.AddDate(0, 0, 1)
		}
	default:
		return d
	}
}

func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, ordinal int) (time.Time, bool) {
	if ordinal == 0 {
		return time.Time{}, false
	}

	if ordinal > 0 {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		shift := (int(weekday) - int(first.Weekday()) + 7) % 7
		d := first.AddDate(0, 0, shift+7*(ordinal-1))
		if d.Month() != month {
			return time.Time{}, false
		}
		return d, true
	}

	last := time.Date(year, month, utils.DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	shift := (int(last.Weekday()) - int(weekday) + 7) % 7
	d := last.AddDate(0, 0, -shift-7*(-ordinal-1))
	if d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// easterSunday computes Easter Sunday for a year in the Gregorian calendar
// (anonymous Gregorian computus).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
