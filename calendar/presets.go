package calendar

import (
	"fmt"
	"time"
)

// UKSettlement returns the UK bank holiday calendar used for gilt settlement.
//
// New Year, Christmas and Boxing Day observe the next-working-day convention;
// Good Friday and Easter Monday float with Easter; the early May, spring and
// summer bank holidays are Monday rules.
func UKSettlement() *Calendar {
	return New(
		FixedDateObserved(time.January, 1, NextMonday),
		EasterOffset(-2), // Good Friday
		EasterOffset(1),  // Easter Monday
		NthWeekday(time.May, time.Monday, 1),
		NthWeekday(time.May, time.Monday, -1),
		NthWeekday(time.August, time.Monday, -1),
		FixedDateObserved(time.December, 25, NextMondayOrTuesday),
		FixedDateObserved(time.December, 26, NextMondayOrTuesday),
		// One-off holidays: Platinum Jubilee and the state funeral of
		// Queen Elizabeth II (the spring bank holiday moved that year).
		Singular(time.Date(2022, time.June, 3, 0, 0, 0, 0, time.UTC)),
		Singular(time.Date(2022, time.September, 19, 0, 0, 0, 0, time.UTC)),
		Singular(time.Date(2023, time.May, 8, 0, 0, 0, 0, time.UTC)), // coronation
	)
}

// TARGET returns the TARGET2 settlement calendar used for EUR instruments.
func TARGET() *Calendar {
	return New(
		FixedDate(time.January, 1),
		EasterOffset(-2), // Good Friday
		EasterOffset(1),  // Easter Monday
		FixedDate(time.May, 1),
		FixedDate(time.December, 25),
		FixedDate(time.December, 26),
	)
}

// USSettlement returns the US federal holiday calendar (bond settlement).
func USSettlement() *Calendar {
	return New(
		FixedDateObserved(time.January, 1, NearestWeekday),
		NthWeekday(time.January, time.Monday, 3),  // Martin Luther King Jr. Day
		NthWeekday(time.February, time.Monday, 3), // Presidents' Day
		NthWeekday(time.May, time.Monday, -1),     // Memorial Day
		FixedDateObserved(time.June, 19, NearestWeekday),
		FixedDateObserved(time.July, 4, NearestWeekday),
		NthWeekday(time.September, time.Monday, 1), // Labor Day
		NthWeekday(time.October, time.Monday, 2),   // Columbus Day
		FixedDateObserved(time.November, 11, NearestWeekday),
		NthWeekday(time.November, time.Thursday, 4), // Thanksgiving
		FixedDateObserved(time.December, 25, NearestWeekday),
	)
}

// WeekendsOnly returns a calendar with no holiday rules.
func WeekendsOnly() *Calendar {
	return New()
}

// ByName resolves a calendar name as stored in configuration or the database.
func ByName(name string) (*Calendar, error) {
	switch name {
	case "UK", "UK_SETTLEMENT":
		return UKSettlement(), nil
	case "TARGET", "TARGET2":
		return TARGET(), nil
	case "US", "US_SETTLEMENT":
		return USSettlement(), nil
	case "NONE", "WEEKENDS_ONLY":
		return WeekendsOnly(), nil
	default:
		return nil, fmt.Errorf("ByName: unknown calendar %q", name)
	}
}
