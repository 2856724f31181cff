package tenor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/meenmo/bondlib/tenor"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want tenor.Period
	}{
		{"1D", tenor.Period{Count: 1, Unit: tenor.Day}},
		{"2W", tenor.Period{Count: 2, Unit: tenor.Week}},
		{"3M", tenor.Period{Count: 3, Unit: tenor.Month}},
		{"10Y", tenor.Period{Count: 10, Unit: tenor.Year}},
		{"-5Y", tenor.Period{Count: -5, Unit: tenor.Year}},
		{"+6m", tenor.Period{Count: 6, Unit: tenor.Month}},
		{" 30d ", tenor.Period{Count: 30, Unit: tenor.Day}},
	}

	for _, tc := range cases {
		got, err := tenor.Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}

		back, err := tenor.Parse(got.String())
		if err != nil {
			t.Fatalf("Parse(%q) round-trip error: %v", got.String(), err)
		}
		if back != got {
			t.Fatalf("round-trip mismatch: %+v vs %+v", back, got)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "M", "3", "3X", "M3", "3.5M", "--3M", "3 M", "threeM"} {
		if _, err := tenor.Parse(in); !errors.Is(err, tenor.ErrInvalidFormat) {
			t.Fatalf("Parse(%q): want ErrInvalidFormat, got %v", in, err)
		}
	}
}

func TestAddTo_DaysAndWeeks(t *testing.T) {
	t.Parallel()

	d := date(2021, time.March, 15)
	if got := tenor.MustParse("10D").AddTo(d); !got.Equal(date(2021, time.March, 25)) {
		t.Fatalf("10D: got %s", got.Format("2006-01-02"))
	}
	if got := tenor.MustParse("2W").AddTo(d); !got.Equal(date(2021, time.March, 29)) {
		t.Fatalf("2W: got %s", got.Format("2006-01-02"))
	}
	if got := tenor.MustParse("-1W").AddTo(d); !got.Equal(date(2021, time.March, 8)) {
		t.Fatalf("-1W: got %s", got.Format("2006-01-02"))
	}
}

func TestAddTo_MonthEndClamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start  time.Time
		period string
		want   time.Time
	}{
		{date(2021, time.January, 31), "1M", date(2021, time.February, 28)},
		{date(2020, time.January, 31), "1M", date(2020, time.February, 29)},
		{date(2021, time.March, 31), "-1M", date(2021, time.February, 28)},
		{date(2021, time.August, 31), "1M", date(2021, time.September, 30)},
		{date(2020, time.February, 29), "1Y", date(2021, time.February, 28)},
		{date(2021, time.June, 15), "3M", date(2021, time.September, 15)},
		{date(2024, time.February, 29), "-2Y", date(2022, time.February, 28)},
	}

	for _, tc := range cases {
		got := tenor.MustParse(tc.period).AddTo(tc.start)
		if !got.Equal(tc.want) {
			t.Fatalf("%s + %s = %s, want %s",
				tc.start.Format("2006-01-02"), tc.period,
				got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestAddTo_NeverInvalidDate(t *testing.T) {
	t.Parallel()

	// Walking a month-end date through every month must always land on a
	// valid day of the target month.
	start := date(2020, time.January, 31)
	for months := 1; months <= 48; months++ {
		p := tenor.Period{Count: months, Unit: tenor.Month}
		got := p.AddTo(start)
		wantMonth := time.Month((int(start.Month())-1+months)%12 + 1)
		if got.Month() != wantMonth {
			t.Fatalf("+%dM: landed in %s, want %s", months, got.Month(), wantMonth)
		}
	}
}

func TestNeg(t *testing.T) {
	t.Parallel()

	p := tenor.MustParse("3M")
	if p.Neg() != tenor.MustParse("-3M") {
		t.Fatalf("Neg mismatch: %+v", p.Neg())
	}
}
