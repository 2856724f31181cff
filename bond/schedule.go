package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/utils"
)

// RollOut generates the bond's cash-flow schedule from its terms.
//
// Unadjusted payment dates are rolled backward from maturity in steps of
// 12/Frequency months (market convention: the stub, if any, falls at the
// front). Accrual fractions use the unadjusted period boundaries; only the
// payment date of each flow passes through the business-day adjustment. The
// final flow carries the notional redemption on top of its coupon.
func RollOut(terms Terms) ([]Cashflow, error) {
	dates, err := unadjustedDates(terms)
	if err != nil {
		return nil, err
	}

	cal := terms.Calendar
	if cal == nil {
		cal = calendar.WeekendsOnly()
	}

	cfs := make([]Cashflow, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		frac, err := terms.DayCount.Fraction(dates[i-1], dates[i])
		if err != nil {
			return nil, fmt.Errorf("RollOut: %w", err)
		}

		cf := Cashflow{
			Date:   calendar.Adjust(cal, dates[i], terms.Adjustment),
			Coupon: terms.CouponRate * frac * terms.Notional,
		}
		if i == len(dates)-1 {
			cf.Principal = terms.Notional
		}
		cfs = append(cfs, cf)
	}
	return cfs, nil
}

// AccruedInterest returns the coupon accrued from the start of the period
// containing asOf up to asOf, in currency units. Outside the bond's life it
// is zero.
func AccruedInterest(terms Terms, asOf time.Time) (float64, error) {
	dates, err := unadjustedDates(terms)
	if err != nil {
		return 0, err
	}
	if !asOf.After(dates[0]) || !asOf.Before(dates[len(dates)-1]) {
		return 0, nil
	}

	periodStart := dates[0]
	for _, d := range dates[1:] {
		if d.After(asOf) {
			break
		}
		periodStart = d
	}

	frac, err := terms.DayCount.Fraction(periodStart, asOf)
	if err != nil {
		return 0, fmt.Errorf("AccruedInterest: %w", err)
	}
	return terms.CouponRate * frac * terms.Notional, nil
}

// unadjustedDates rolls period boundaries backward from maturity and applies
// the front-stub policy. The returned slice starts at the issue date, ends at
// the maturity date, and is strictly increasing.
func unadjustedDates(terms Terms) ([]time.Time, error) {
	if !terms.MaturityDate.After(terms.IssueDate) {
		return nil, fmt.Errorf("RollOut: maturity %s not after issue %s: %w",
			terms.MaturityDate.Format("2006-01-02"), terms.IssueDate.Format("2006-01-02"), ErrInvalidTerms)
	}
	if terms.Frequency <= 0 || 12%terms.Frequency != 0 {
		return nil, fmt.Errorf("RollOut: unsupported payment frequency %d: %w", terms.Frequency, ErrInvalidTerms)
	}

	months := 12 / terms.Frequency
	maxDates := config.GetConfig().MaxPaymentDates

	var dates []time.Time
	current := terms.MaturityDate
	for current.After(terms.IssueDate) {
		if len(dates) >= maxDates {
			return nil, fmt.Errorf("RollOut: schedule exceeds %d periods: %w", maxDates, ErrInvalidTerms)
		}
		dates = append([]time.Time{current}, dates...)
		current = utils.AddMonth(current, -months)
	}

	// current <= issue. If the roll did not land exactly on the issue date the
	// first period is a front stub; LongFrontStub folds it into the next
	// regular period (never past maturity).
	if !current.Equal(terms.IssueDate) && terms.Stub == LongFrontStub && len(dates) > 1 {
		dates = dates[1:]
	}

	return append([]time.Time{terms.IssueDate}, dates...), nil
}
