package annealer

import (
	"fmt"
	"log/slog"
)

const (
	DefaultInitialTemperature = 0.05
	DefaultCoolingFactor      = 0.9
	DefaultPeriodFloor        = 100
	DefaultParetoShape        = 0.5
)

// Config holds the tunables of a search. The zero value is not usable, start from
// DefaultConfig.
type Config struct {
	InitialTemperature float64
	CoolingFactor      float64 // Temperature multiplier applied once per period
	PeriodFloor        int     // Lower bound for both the cooling period and the stall limit
	ParetoShape        float64 // Shape of the merge takeover size distribution
	Seed               uint64  // 0 seeds from the runtime
	Logger             *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		InitialTemperature: DefaultInitialTemperature,
		CoolingFactor:      DefaultCoolingFactor,
		PeriodFloor:        DefaultPeriodFloor,
		ParetoShape:        DefaultParetoShape,
	}
}

func (c Config) Validate() (err error) {
	switch {
	case c.InitialTemperature <= 0:
		err = fmt.Errorf("%w: initial temperature %v must be > 0", ErrBadConfig, c.InitialTemperature)
	case c.CoolingFactor <= 0 || c.CoolingFactor > 1:
		err = fmt.Errorf("%w: cooling factor %v must be in (0, 1]", ErrBadConfig, c.CoolingFactor)
	case c.PeriodFloor <= 0:
		err = fmt.Errorf("%w: period floor %d must be > 0", ErrBadConfig, c.PeriodFloor)
	case c.ParetoShape <= 0:
		err = fmt.Errorf("%w: pareto shape %v must be > 0", ErrBadConfig, c.ParetoShape)
	}
	return
}
