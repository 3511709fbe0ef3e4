package annealer

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/boxcut/boxes"
)

// Restart is the outcome of one of the independent searches run by Multistart.
type Restart struct {
	Seed    uint64 // 0 when the search was seeded from the runtime
	Best    *boxes.Partition
	Fitness float64
	Stats   Stats
}

// Multistart runs restarts independent searches from the all-singleton partition, spread over
// parallelDegree goroutines, and returns every outcome along with the index of the best. Restart
// r is seeded with cfg.Seed+r when cfg.Seed is set. Ties go to the lowest index, so a seeded run
// is reproducible regardless of the parallel degree.
func Multistart(M mat.Matrix, cfg Config, restarts, parallelDegree int) (results []Restart, best int, err error) {
	if restarts < 1 {
		return nil, 0, fmt.Errorf("%w: restarts %d must be > 0", ErrBadConfig, restarts)
	}
	if err = cfg.Validate(); err != nil {
		return
	}
	if parallelDegree < 1 {
		parallelDegree = runtime.NumCPU()
	}
	parallelDegree = min(parallelDegree, restarts)
	var (
		wg   = sync.WaitGroup{}
		errs = make([]error, restarts)
	)
	results = make([]Restart, restarts)
	for np := 0; np < parallelDegree; np++ {
		bucket := splitRange(restarts, parallelDegree, np)
		wg.Add(1)
		go func(bucket [2]int) {
			defer wg.Done()
			for r := bucket[0]; r < bucket[1]; r++ {
				results[r], errs[r] = runRestart(M, cfg, r)
			}
		}(bucket)
	}
	wg.Wait()
	for r := range results {
		if errs[r] != nil {
			return nil, 0, fmt.Errorf("restart %d: %w", r, errs[r])
		}
		if boxes.Better(results[r].Best, results[best].Best) {
			best = r
		}
	}
	return
}

func runRestart(M mat.Matrix, cfg Config, r int) (res Restart, err error) {
	if cfg.Seed != 0 {
		cfg.Seed += uint64(r)
	}
	var a *Annealer
	if a, err = New(cfg); err != nil {
		return
	}
	res.Seed = cfg.Seed
	if res.Best, res.Fitness, err = a.Fit(M, nil); err != nil {
		return
	}
	res.Stats = a.Stats()
	return
}

// splitRange divides [0, count) into parts contiguous buckets, spreading the remainder over
// the first buckets so sizes differ by at most one.
func splitRange(count, parts, part int) (bucket [2]int) {
	var (
		npart            = count / parts
		remainder        = count % parts
		startAdd, endAdd int
	)
	if remainder != 0 {
		if part+1 > remainder {
			startAdd = remainder
		} else {
			startAdd, endAdd = part, 1
		}
	}
	bucket[0] = part*npart + startAdd
	bucket[1] = bucket[0] + npart + endAdd
	return
}
