// Package config holds solver and schedule-generation parameters.
package config

// Config holds the yield solver and roll-out parameters.
type Config struct {
	// ConvergenceTolerance is the absolute |PV - price| tolerance for
	// Newton-Raphson convergence in the yield solver.
	ConvergenceTolerance float64

	// MaxYieldIterations is the iteration cap for the yield solve.
	MaxYieldIterations int

	// DerivativeThreshold is the minimum |dPV/dy| magnitude. Below this the
	// Newton step would divide by near-zero and the solve aborts.
	DerivativeThreshold float64

	// InitialGuess is the starting rate when no coupon-based guess is available.
	InitialGuess float64

	// YieldFloor and YieldCeiling clamp each Newton step to a plausible
	// rate range, preventing overshoot into (1+y) <= 0 territory.
	YieldFloor   float64
	YieldCeiling float64

	// MaxPaymentDates caps generated schedule length.
	// 600 supports up to 50Y with monthly frequency.
	MaxPaymentDates int
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ConvergenceTolerance: 1e-11,
	MaxYieldIterations:   100,
	DerivativeThreshold:  1e-15,
	InitialGuess:         0.05,
	YieldFloor:           -0.9,
	YieldCeiling:         10.0,
	MaxPaymentDates:      600,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
