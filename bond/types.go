// Package bond rolls out fixed-coupon cash-flow schedules and solves yield,
// duration and convexity from a price.
package bond

import (
	"errors"
	"time"

	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/daycount"
	"github.com/meenmo/bondlib/money"
)

var (
	// ErrInvalidTerms is returned when instrument terms are inconsistent.
	ErrInvalidTerms = errors.New("invalid instrument terms")
	// ErrNoCashFlows is returned when no cash flow falls after the valuation date.
	ErrNoCashFlows = errors.New("no cash flows after valuation date")
	// ErrNonConvergent is returned when the yield solve exhausts its iteration
	// budget. The accompanying YieldResult carries the last estimate for
	// diagnostics; it is not a valid result.
	ErrNonConvergent = errors.New("yield solver did not converge")
)

// StubPolicy decides how an irregular first period is handled when the
// backward roll does not land exactly on the issue date.
type StubPolicy string

const (
	// ShortFrontStub keeps the irregular short first period as-is.
	ShortFrontStub StubPolicy = "SHORT_FRONT"
	// LongFrontStub merges the short first period into the following one.
	LongFrontStub StubPolicy = "LONG_FRONT"
)

// Terms are the prospectus inputs to RollOut. Immutable once built.
type Terms struct {
	IssueDate    time.Time
	MaturityDate time.Time

	// CouponRate is the annual coupon as a decimal (0.05 == 5%).
	CouponRate float64
	// Frequency is the number of coupon payments per year (1, 2, 4, 12).
	Frequency int
	Notional  float64
	Currency  money.Currency

	DayCount   daycount.Convention
	Calendar   calendar.BusinessCalendar
	Adjustment calendar.Adjustment
	Stub       StubPolicy
}

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are in currency units (e.g., EUR), not price-per-100. Date is the
// business-day adjusted payment date; accrual was computed on the unadjusted
// schedule dates.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// CashflowsAfter returns the cash flows strictly after the given date.
func CashflowsAfter(cfs []Cashflow, date time.Time) []Cashflow {
	out := make([]Cashflow, 0, len(cfs))
	for _, cf := range cfs {
		if cf.Date.After(date) {
			out = append(out, cf)
		}
	}
	return out
}

// YieldResult is the output of SolveYield.
type YieldResult struct {
	// Yield is the annually-compounded yield to maturity as a decimal.
	Yield float64
	// MacaulayDuration is the discounted-time-weighted average maturity in years.
	MacaulayDuration float64
	// ModifiedDuration is MacaulayDuration / (1 + Yield).
	ModifiedDuration float64
	// Convexity is the second derivative of price with respect to yield,
	// normalized by price. Computed analytically, so results are reproducible.
	Convexity float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
	// Converged reports whether |PV - price| met the configured tolerance.
	Converged bool
}
