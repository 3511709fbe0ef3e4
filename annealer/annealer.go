package annealer

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/boxcut/boxes"
)

// Annealer searches for the block diagonal partition of a square matrix with the lowest
// least squares fitness. One Annealer runs one search at a time; independent searches need
// independent Annealers, though they may share the (read only) matrix.
type Annealer struct {
	cfg   Config
	rng   *rand.Rand
	mover *boxes.Mover
	log   *slog.Logger
	// Search state, rebuilt by every Run
	M             mat.Matrix
	temperature   float64
	evals, stall  int
	current, best *boxes.Partition
}

// Stats summarises the state of the most recent search.
type Stats struct {
	Evals       int
	Stall       int
	Temperature float64
	BestFitness float64
	BestBoxes   int
}

func New(cfg Config) (a *Annealer, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	var (
		seed = cfg.Seed
		log  = cfg.Logger
	)
	if seed == 0 {
		seed = rand.Uint64()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	a = &Annealer{
		cfg:   cfg,
		rng:   rng,
		mover: boxes.NewMover(rng, cfg.ParetoShape),
		log:   log,
	}
	return
}

// Fit runs a search to convergence and returns the best partition found and its fitness. A
// nil start begins from the all-singleton partition.
func (a *Annealer) Fit(M mat.Matrix, start *boxes.Partition) (best *boxes.Partition, fitness float64, err error) {
	return a.Run(M, start, nil)
}

// Debug runs a search from the all-singleton partition and records every turn that produced
// a candidate.
func (a *Annealer) Debug(M mat.Matrix) (tr Trace, err error) {
	_, _, err = a.Run(M, nil, func(rec TurnRecord) {
		tr = append(tr, rec)
	})
	return
}

// Run drives the search, calling onTurn (if not nil) after each turn that produced a
// candidate. The turn that trips the stall limit is not reported.
func (a *Annealer) Run(M mat.Matrix, start *boxes.Partition, onTurn func(TurnRecord)) (best *boxes.Partition, fitness float64, err error) {
	if err = a.initialize(M, start); err != nil {
		return
	}
	period := a.Period()
	a.log.Debug("search started",
		"n", a.current.Size(), "period", period, "temp", a.temperature, "fit", a.current.Fitness)
	for i := 0; ; i++ {
		if i%period == 0 {
			a.temperature *= a.cfg.CoolingFactor
			a.log.Debug("cooling", "evals", a.evals, "temp", a.temperature, "best_fit", a.best.Fitness)
		}
		rec, ok := a.turn()
		if a.stall > period {
			break
		}
		if ok && onTurn != nil {
			onTurn(rec)
		}
	}
	a.log.Debug("search converged",
		"evals", a.evals, "temp", a.temperature, "best_fit", a.best.Fitness, "best_len", a.best.Len())
	return a.best, a.best.Fitness, nil
}

// Period is the cooling interval and stall limit for the current matrix: its size, but
// never less than the configured floor.
func (a *Annealer) Period() int {
	var n int
	if a.M != nil {
		n, _ = a.M.Dims()
	}
	return max(n, a.cfg.PeriodFloor)
}

func (a *Annealer) Stats() Stats {
	st := Stats{
		Evals:       a.evals,
		Stall:       a.stall,
		Temperature: a.temperature,
		BestFitness: math.Inf(1),
	}
	if a.best != nil {
		st.BestFitness = a.best.Fitness
		st.BestBoxes = a.best.Len()
	}
	return st
}

func (a *Annealer) initialize(M mat.Matrix, start *boxes.Partition) (err error) {
	nr, nc := M.Dims()
	switch {
	case nr == 0 || nc == 0:
		return ErrEmptyMatrix
	case nr != nc:
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, nr, nc)
	}
	var current *boxes.Partition
	if start == nil {
		if current, err = boxes.NewPartition(nr); err != nil {
			return
		}
	} else {
		if err = start.Validate(nr); err != nil {
			return fmt.Errorf("starting partition: %w", err)
		}
		current = start.Copy()
	}
	current.CalculateFitness(M)
	a.M = M
	a.temperature = a.cfg.InitialTemperature
	a.evals, a.stall = 0, 0
	a.current, a.best = current, current
	return
}

// turn proposes one move and applies the acceptance test. ok is false when no legal move
// was produced; the counters still advance.
func (a *Annealer) turn() (rec TurnRecord, ok bool) {
	a.evals++
	a.stall++
	candidate := a.mover.ProposeMove(a.current)
	if candidate == nil {
		return
	}
	candidate.CalculateFitness(a.M)
	// A new best counts even if the candidate is then rejected as current
	a.updateIfBest(candidate)
	accepted := a.accept(a.current.Fitness, candidate.Fitness)
	if accepted {
		a.current = candidate
	}
	rec = TurnRecord{
		Evals:            a.evals,
		Stall:            a.stall,
		Accepted:         accepted,
		Temperature:      a.temperature,
		CurrentFitness:   a.current.Fitness,
		CandidateFitness: candidate.Fitness,
		BestFitness:      a.best.Fitness,
		CurrentLen:       a.current.Len(),
		CandidateLen:     candidate.Len(),
		BestLen:          a.best.Len(),
	}
	return rec, true
}

func (a *Annealer) updateIfBest(candidate *boxes.Partition) {
	if boxes.Better(candidate, a.best) {
		a.best = candidate
		a.stall = 0
	}
}

func (a *Annealer) accept(cur, cand float64) bool {
	if cand < cur {
		return true
	}
	return a.rng.Float64() < AcceptProbability(cur, cand, a.temperature)
}

// AcceptProbability is the Metropolis acceptance probability for minimisation, using the
// fitness change relative to the current fitness. Improvements are always accepted, as is
// any move away from a zero (perfect) current fitness where the relative change is undefined.
func AcceptProbability(cur, cand, temperature float64) float64 {
	if cand < cur || cur == 0 {
		return 1
	}
	if temperature <= 0 {
		return 0
	}
	improvement := (cur - cand) / cur
	return math.Exp(improvement / temperature)
}
