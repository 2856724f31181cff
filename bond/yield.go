package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/bondlib/config"
	"github.com/meenmo/bondlib/daycount"
)

// SolveYield finds the yield to maturity implied by a price.
//
// Discounting uses annual compounding on the day-count-derived fraction:
//
//	PV(y) = Σ a_i · (1+y)^(-t_i),  t_i = dc.Fraction(valuation, date_i)
//
// over the cash flows strictly after the valuation date. The root of
// PV(y) - price = 0 is found by Newton-Raphson with the analytic first
// derivative, starting from guess (pass 0 to use the configured default),
// with each step clamped to the configured rate range.
//
// On convergence the result carries Macaulay/modified duration and analytic
// convexity evaluated at the solved rate. If the iteration budget runs out
// the last estimate is returned alongside ErrNonConvergent with
// Converged == false.
func SolveYield(cfs []Cashflow, valuation time.Time, price float64, dc daycount.Convention, guess float64) (YieldResult, error) {
	future := CashflowsAfter(cfs, valuation)
	if len(future) == 0 {
		return YieldResult{}, fmt.Errorf("SolveYield: valuation %s: %w",
			valuation.Format("2006-01-02"), ErrNoCashFlows)
	}

	fracs := make([]float64, len(future))
	for i, cf := range future {
		t, err := dc.Fraction(valuation, cf.Date)
		if err != nil {
			return YieldResult{}, fmt.Errorf("SolveYield: %w", err)
		}
		fracs[i] = t
	}

	cfg := config.GetConfig()
	y := guess
	if y == 0 {
		y = cfg.InitialGuess
	}
	y = clamp(y, cfg.YieldFloor, cfg.YieldCeiling)

	iterations := 0
	for iter := 0; iter < cfg.MaxYieldIterations; iter++ {
		iterations = iter + 1

		pv, dPdy := pvAndDeriv(y, future, fracs)
		f := pv - price

		if math.Abs(f) < cfg.ConvergenceTolerance {
			return resultAt(y, future, fracs, iterations), nil
		}
		if math.Abs(dPdy) < cfg.DerivativeThreshold {
			res := resultAt(y, future, fracs, iterations)
			res.Converged = false
			return res, fmt.Errorf("SolveYield: derivative too small at iter %d: %w", iter, ErrNonConvergent)
		}

		y = clamp(y-f/dPdy, cfg.YieldFloor, cfg.YieldCeiling)
	}

	res := resultAt(y, future, fracs, iterations)
	res.Converged = false
	return res, fmt.Errorf("SolveYield: after %d iterations: %w", cfg.MaxYieldIterations, ErrNonConvergent)
}

// PresentValue discounts the cash flows after the valuation date at a flat
// annually-compounded rate.
func PresentValue(cfs []Cashflow, valuation time.Time, rate float64, dc daycount.Convention) (float64, error) {
	pv := 0.0
	for _, cf := range CashflowsAfter(cfs, valuation) {
		t, err := dc.Fraction(valuation, cf.Date)
		if err != nil {
			return 0, fmt.Errorf("PresentValue: %w", err)
		}
		pv += cf.Amount() * math.Pow(1.0+rate, -t)
	}
	return pv, nil
}

// pvAndDeriv returns (PV, dPV/dy) at rate y.
//
//	PV    = Σ a_i · (1+y)^(-t_i)
//	dP/dy = Σ −t_i · a_i · (1+y)^(-t_i-1)
func pvAndDeriv(y float64, cfs []Cashflow, fracs []float64) (float64, float64) {
	var pv, deriv float64
	for i, cf := range cfs {
		t := fracs[i]
		amt := cf.Amount()
		disc := math.Pow(1.0+y, -t)
		pv += amt * disc
		deriv += -t * amt * math.Pow(1.0+y, -t-1)
	}
	return pv, deriv
}

// resultAt fills duration and convexity at rate y.
//
// Macaulay duration is Σ t_i·a_i·d_i / PV, modified duration divides by
// (1+y), and convexity is the analytic second derivative
// Σ t_i(t_i+1)·a_i·(1+y)^(-t_i-2) normalized by PV.
func resultAt(y float64, cfs []Cashflow, fracs []float64, iterations int) YieldResult {
	var pv, weighted, second float64
	for i, cf := range cfs {
		t := fracs[i]
		amt := cf.Amount()
		disc := math.Pow(1.0+y, -t)
		pv += amt * disc
		weighted += t * amt * disc
		second += t * (t + 1) * amt * math.Pow(1.0+y, -t-2)
	}

	res := YieldResult{
		Yield:      y,
		Iterations: iterations,
		Converged:  true,
	}
	if pv != 0 {
		res.MacaulayDuration = weighted / pv
		res.ModifiedDuration = res.MacaulayDuration / (1.0 + y)
		res.Convexity = second / pv
	}
	return res
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
