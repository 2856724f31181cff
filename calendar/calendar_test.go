package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/bondlib/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUKSettlement_2021Fixtures(t *testing.T) {
	t.Parallel()

	cal := calendar.UKSettlement()

	cases := []struct {
		date time.Time
		want bool
		name string
	}{
		{date(2021, time.January, 1), false, "New Year's Day (Friday)"},
		{date(2021, time.April, 2), false, "Good Friday"},
		{date(2021, time.April, 5), false, "Easter Monday"},
		{date(2021, time.May, 3), false, "early May bank holiday"},
		{date(2021, time.May, 31), false, "spring bank holiday (last Monday of May)"},
		{date(2021, time.August, 30), false, "summer bank holiday"},
		{date(2021, time.December, 27), false, "Christmas Day observed (Sat -> Mon)"},
		{date(2021, time.December, 28), false, "Boxing Day observed (Sun -> Tue)"},
		{date(2021, time.May, 28), true, "Friday before spring bank holiday"},
		{date(2021, time.June, 1), true, "Tuesday after spring bank holiday"},
		{date(2021, time.December, 29), true, "Wednesday after observed holidays"},
	}

	for _, tc := range cases {
		if got := cal.IsBusinessDay(tc.date); got != tc.want {
			t.Fatalf("%s (%s): IsBusinessDay = %v, want %v",
				tc.name, tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestUKSettlement_ObservedNewYear2022(t *testing.T) {
	t.Parallel()

	cal := calendar.UKSettlement()

	// Jan 1, 2022 is a Saturday: the holiday observes on Monday Jan 3.
	if cal.IsBusinessDay(date(2022, time.January, 1)) {
		t.Fatalf("Jan 1, 2022 (Saturday) must not be a business day")
	}
	if cal.IsBusinessDay(date(2022, time.January, 3)) {
		t.Fatalf("Jan 3, 2022 (observed New Year) must not be a business day")
	}
	if !cal.IsBusinessDay(date(2022, time.January, 4)) {
		t.Fatalf("Jan 4, 2022 must be a business day")
	}

	holidays := cal.HolidaysInYear(2022)
	found := false
	for _, h := range holidays {
		if h.Equal(date(2022, time.January, 3)) {
			found = true
		}
		if h.Equal(date(2022, time.January, 1)) {
			t.Fatalf("unobserved Jan 1 must not appear in the 2022 holiday set")
		}
	}
	if !found {
		t.Fatalf("observed Jan 3 missing from 2022 holidays: %v", holidays)
	}
}

func TestSingularRules_DoNotRecur(t *testing.T) {
	t.Parallel()

	cal := calendar.UKSettlement()

	// Platinum Jubilee, June 3, 2022 (one-off).
	if cal.IsBusinessDay(date(2022, time.June, 3)) {
		t.Fatalf("Jun 3, 2022 must not be a business day")
	}
	// Same calendar date in other years is an ordinary Friday/business day.
	if !cal.IsBusinessDay(date(2021, time.June, 3)) {
		t.Fatalf("Jun 3, 2021 must be a business day")
	}
	if !cal.IsBusinessDay(date(2024, time.June, 3)) {
		t.Fatalf("Jun 3, 2024 must be a business day")
	}
}

func TestHolidaysInYear_DeterministicAndDeduplicated(t *testing.T) {
	t.Parallel()

	// Two rules producing the same date must yield one holiday.
	cal := calendar.New(
		calendar.FixedDate(time.May, 3),
		calendar.NthWeekday(time.May, time.Monday, 1), // May 3, 2021
	)

	first := cal.HolidaysInYear(2021)
	second := cal.HolidaysInYear(2021)

	if len(first) != 1 {
		t.Fatalf("expected 1 deduplicated holiday, got %d: %v", len(first), first)
	}
	if len(first) != len(second) || !first[0].Equal(second[0]) {
		t.Fatalf("repeated calls disagree: %v vs %v", first, second)
	}
	for i := 1; i < len(first); i++ {
		if !first[i-1].Before(first[i]) {
			t.Fatalf("holidays not strictly ascending: %v", first)
		}
	}
}

func TestAdjust_Conventions(t *testing.T) {
	t.Parallel()

	cal := calendar.WeekendsOnly()

	sat := date(2021, time.July, 31) // Saturday, month end

	if got := calendar.Adjust(cal, sat, calendar.Following); !got.Equal(date(2021, time.August, 2)) {
		t.Fatalf("Following: got %s", got.Format("2006-01-02"))
	}
	if got := calendar.Adjust(cal, sat, calendar.Preceding); !got.Equal(date(2021, time.July, 30)) {
		t.Fatalf("Preceding: got %s", got.Format("2006-01-02"))
	}
	// Following would cross into August, so ModifiedFollowing falls back.
	if got := calendar.Adjust(cal, sat, calendar.ModifiedFollowing); !got.Equal(date(2021, time.July, 30)) {
		t.Fatalf("ModifiedFollowing: got %s", got.Format("2006-01-02"))
	}

	sun := date(2021, time.August, 1) // Sunday, month start
	// Preceding would cross into July, so ModifiedPreceding falls back.
	if got := calendar.Adjust(cal, sun, calendar.ModifiedPreceding); !got.Equal(date(2021, time.August, 2)) {
		t.Fatalf("ModifiedPreceding: got %s", got.Format("2006-01-02"))
	}

	if got := calendar.Adjust(cal, sat, calendar.NoAdjustment); !got.Equal(sat) {
		t.Fatalf("NoAdjustment must return the input unchanged, got %s", got.Format("2006-01-02"))
	}

	// Business days pass through every convention untouched.
	mon := date(2021, time.July, 26)
	for _, adj := range []calendar.Adjustment{
		calendar.Following, calendar.Preceding,
		calendar.ModifiedFollowing, calendar.ModifiedPreceding, calendar.NoAdjustment,
	} {
		if got := calendar.Adjust(cal, mon, adj); !got.Equal(mon) {
			t.Fatalf("%s moved a business day to %s", adj, got.Format("2006-01-02"))
		}
	}
}

func TestAdjust_SkipsHolidayRuns(t *testing.T) {
	t.Parallel()

	cal := calendar.UKSettlement()

	// Christmas 2021: Dec 25 Sat, Dec 26 Sun, observed Mon 27 and Tue 28.
	if got := calendar.Adjust(cal, date(2021, time.December, 25), calendar.Following); !got.Equal(date(2021, time.December, 29)) {
		t.Fatalf("Following over Christmas run: got %s", got.Format("2006-01-02"))
	}
}

func TestUnion_CombinesHolidays(t *testing.T) {
	t.Parallel()

	uk := calendar.UKSettlement()
	target := calendar.TARGET()
	both := calendar.Union{uk, target}

	// May 3, 2021 (early May bank holiday) is UK-only.
	if both.IsBusinessDay(date(2021, time.May, 3)) {
		t.Fatalf("union must inherit UK early May holiday")
	}
	if both.IsBusinessDay(date(2021, time.May, 1)) {
		t.Fatalf("May 1, 2021 is a Saturday")
	}
	// TARGET-only: Good Friday is shared, but UK Aug bank holiday is not TARGET's.
	if target.IsBusinessDay(date(2021, time.April, 2)) {
		t.Fatalf("TARGET Good Friday must not be a business day")
	}
	if !target.IsBusinessDay(date(2021, time.August, 30)) {
		t.Fatalf("UK summer bank holiday must be a TARGET business day")
	}
	if both.IsBusinessDay(date(2021, time.August, 30)) {
		t.Fatalf("union must inherit UK summer bank holiday")
	}

	// Union implements the same contract, so Adjust works on it directly.
	if got := calendar.Adjust(both, date(2021, time.August, 28), calendar.Following); !got.Equal(date(2021, time.August, 31)) {
		t.Fatalf("Adjust over union: got %s", got.Format("2006-01-02"))
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	cal := calendar.UKSettlement()

	// Two business days after Thu May 27, 2021 skips the weekend and the
	// spring bank holiday Monday.
	got := calendar.AddBusinessDays(cal, date(2021, time.May, 27), 2)
	if !got.Equal(date(2021, time.June, 1)) {
		t.Fatalf("AddBusinessDays(+2): got %s", got.Format("2006-01-02"))
	}

	back := calendar.AddBusinessDays(cal, date(2021, time.June, 1), -2)
	if !back.Equal(date(2021, time.May, 27)) {
		t.Fatalf("AddBusinessDays(-2): got %s", back.Format("2006-01-02"))
	}
}

func TestLastBusinessDayOfMonth(t *testing.T) {
	t.Parallel()

	cal := calendar.UKSettlement()

	// May 2021: May 31 is the spring bank holiday, May 30/29 the weekend.
	got := calendar.LastBusinessDayOfMonth(cal, date(2021, time.May, 10))
	if !got.Equal(date(2021, time.May, 28)) {
		t.Fatalf("LastBusinessDayOfMonth: got %s", got.Format("2006-01-02"))
	}
}

func TestUSSettlement_NearestWeekday(t *testing.T) {
	t.Parallel()

	cal := calendar.USSettlement()

	// July 4, 2020 is a Saturday: observed Friday July 3.
	if cal.IsBusinessDay(date(2020, time.July, 3)) {
		t.Fatalf("Jul 3, 2020 (observed Independence Day) must not be a business day")
	}
	// July 4, 2021 is a Sunday: observed Monday July 5.
	if cal.IsBusinessDay(date(2021, time.July, 5)) {
		t.Fatalf("Jul 5, 2021 (observed Independence Day) must not be a business day")
	}
	// Thanksgiving: fourth Thursday of November.
	if cal.IsBusinessDay(date(2021, time.November, 25)) {
		t.Fatalf("Thanksgiving 2021 must not be a business day")
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"UK", "TARGET", "US", "NONE"} {
		if _, err := calendar.ByName(name); err != nil {
			t.Fatalf("ByName(%q) error: %v", name, err)
		}
	}
	if _, err := calendar.ByName("ATLANTIS"); err == nil {
		t.Fatalf("ByName must reject unknown calendars")
	}
}
