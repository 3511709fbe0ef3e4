//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f under a hardware instruction counter. Counter failures, usually
// missing perf_event permissions, are logged and f runs uncounted.
func countInstructions(f func() error) (err error) {
	var ran bool
	pv, perr := perf.CPUInstructions(func() error {
		ran = true
		err = f()
		return err
	})
	if perr != nil && !ran {
		logger.Warn("instruction counter unavailable", "err", perr)
		return f()
	}
	if perr == nil {
		logger.Info("search instruction count", "instructions", pv.Value)
	}
	return
}
