package annealer

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/boxcut/boxes"
)

func twoBlock() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		0, 1, 5, 5,
		1, 0, 5, 5,
		5, 5, 0, 1,
		5, 5, 1, 0,
	})
}

func seeded(t *testing.T, seed uint64) *Annealer {
	cfg := DefaultConfig()
	cfg.Seed = seed
	a, err := New(cfg)
	require.NoError(t, err)
	return a
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 0.05, cfg.InitialTemperature)
	assert.Equal(t, 0.9, cfg.CoolingFactor)
	assert.Equal(t, 100, cfg.PeriodFloor)
	assert.Equal(t, 0.5, cfg.ParetoShape)
	for _, mutate := range []func(c *Config){
		func(c *Config) { c.InitialTemperature = 0 },
		func(c *Config) { c.CoolingFactor = 1.5 },
		func(c *Config) { c.CoolingFactor = 0 },
		func(c *Config) { c.PeriodFloor = 0 },
		func(c *Config) { c.ParetoShape = -1 },
	} {
		c := DefaultConfig()
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), ErrBadConfig)
		_, err := New(c)
		assert.ErrorIs(t, err, ErrBadConfig)
	}
}

func TestAcceptProbability(t *testing.T) {
	{ // Better candidates are always taken, at any temperature
		for _, T := range []float64{1, 1.e-3, 1.e-12, 0} {
			assert.Equal(t, 1., AcceptProbability(10, 9, T))
		}
	}
	{ // Worse candidates fade out as the temperature drops
		var last = 1.
		for _, T := range []float64{1, 0.1, 0.01, 0.001} {
			p := AcceptProbability(10, 11, T)
			assert.Less(t, p, last)
			last = p
		}
		assert.Less(t, last, 1.e-40)
		assert.Equal(t, 0., AcceptProbability(10, 11, 0))
		assert.InDelta(t, math.Exp(-0.1/0.05), AcceptProbability(10, 11, 0.05), 1.e-15)
	}
	{ // Equal fitness is a free move, zero current fitness accepts anything
		assert.Equal(t, 1., AcceptProbability(10, 10, 0.05))
		assert.Equal(t, 1., AcceptProbability(0, 3, 0.05))
		assert.Equal(t, 1., AcceptProbability(0, 0, 0))
	}
}

func TestFit(t *testing.T) {
	M := twoBlock()
	{ // Two exact blocks are recovered from the singleton start
		a := seeded(t, 42)
		best, fit, err := a.Fit(M, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0, fit, 1.e-12)
		assert.Equal(t, []int{2, 4}, best.Edges())
		st := a.Stats()
		assert.Equal(t, 0., st.BestFitness)
		assert.Equal(t, 2, st.BestBoxes)
		// Stopped on the first turn past the stall limit
		assert.Equal(t, a.Period()+1, st.Stall)
		assert.Greater(t, st.Evals, a.Period())
	}
	{ // A supplied start is copied, not mutated
		a := seeded(t, 3)
		start, _ := boxes.FromEdges([]int{1, 3, 4})
		best, _, err := a.Fit(M, start)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4}, best.Edges())
		assert.Equal(t, []int{1, 3, 4}, start.Edges())
		assert.True(t, math.IsInf(start.Fitness, 1))
	}
	{ // Starting at the optimum keeps it
		a := seeded(t, 5)
		start, _ := boxes.FromEdges([]int{2, 4})
		best, fit, err := a.Fit(M, start)
		require.NoError(t, err)
		assert.Equal(t, 0., fit)
		assert.Equal(t, []int{2, 4}, best.Edges())
		assert.Equal(t, a.Period()+1, a.Stats().Evals)
	}
	{ // Same seed, same search
		b1, f1, _ := seeded(t, 9).Fit(M, nil)
		b2, f2, _ := seeded(t, 9).Fit(M, nil)
		assert.Equal(t, b1.Edges(), b2.Edges())
		assert.Equal(t, f1, f2)
	}
	{ // Terminates on trivial and uniform inputs
		for _, n := range []int{1, 2, 7} {
			U := mat.NewDense(n, n, nil)
			best, fit, err := seeded(t, 1).Fit(U, nil)
			require.NoError(t, err)
			assert.Equal(t, 0., fit)
			assert.NoError(t, best.Validate(n))
		}
	}
	{ // Matrices larger than the period floor cool and stall on their own size
		cfg := DefaultConfig()
		cfg.Seed = 11
		cfg.PeriodFloor = 3
		a, err := New(cfg)
		require.NoError(t, err)
		_, _, err = a.Fit(M, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, a.Period())
		assert.Less(t, a.Stats().Temperature, cfg.InitialTemperature)
	}
}

func TestFitErrors(t *testing.T) {
	a := seeded(t, 1)
	{
		_, _, err := a.Fit(&mat.Dense{}, nil)
		assert.ErrorIs(t, err, ErrEmptyMatrix)
	}
	{
		_, _, err := a.Fit(mat.NewDense(2, 3, nil), nil)
		assert.ErrorIs(t, err, ErrNotSquare)
	}
	{
		start, _ := boxes.FromEdges([]int{1, 3})
		_, _, err := a.Fit(twoBlock(), start)
		assert.ErrorIs(t, err, boxes.ErrLastEdge)
	}
}

func TestDebug(t *testing.T) {
	var (
		buf bytes.Buffer
		log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	)
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Logger = log
	a, err := New(cfg)
	require.NoError(t, err)
	tr, err := a.Debug(twoBlock())
	require.NoError(t, err)
	require.NotEmpty(t, tr)
	{ // Records are ordered by evals and reflect the search
		prev := 0
		for _, rec := range tr {
			assert.Greater(t, rec.Evals, prev)
			prev = rec.Evals
			assert.LessOrEqual(t, rec.BestFitness, rec.CurrentFitness)
			assert.LessOrEqual(t, rec.BestFitness, rec.CandidateFitness)
			assert.LessOrEqual(t, rec.Stall, a.Period())
			if rec.Accepted {
				assert.Equal(t, rec.CandidateFitness, rec.CurrentFitness)
			}
		}
		last := tr[len(tr)-1]
		assert.Equal(t, 0., last.BestFitness)
		assert.Equal(t, 2, last.BestLen)
		assert.Less(t, last.Evals, a.Stats().Evals)
	}
	{
		rec, ok := tr.ByEval(tr[0].Evals)
		assert.True(t, ok)
		assert.Equal(t, tr[0], rec)
		_, ok = tr.ByEval(-1)
		assert.False(t, ok)
	}
	{ // Table form
		var out bytes.Buffer
		require.NoError(t, tr.WriteCSV(&out))
		rows, err := csv.NewReader(&out).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, len(tr)+1, len(rows))
		assert.Equal(t, tr.Header(), rows[0])
		assert.Equal(t, "evals", rows[0][0])
		assert.Equal(t, tr[0].Row(), rows[1])
		require.NoError(t, tr.WriteCSV(&out))
		back, err := ReadCSV(&out)
		require.NoError(t, err)
		assert.Equal(t, tr, back)
		_, err = ReadCSV(strings.NewReader("a,b\n"))
		assert.Error(t, err)
		_, err = ReadCSV(strings.NewReader(strings.Join(traceHeader, ",") + "\n1,0,maybe,0,0,0,0,1,1,1\n"))
		assert.Error(t, err)
	}
	assert.True(t, strings.Contains(buf.String(), "search converged"))
	assert.True(t, strings.Contains(buf.String(), "cooling"))
}

func TestMultistart(t *testing.T) {
	{ // Buckets cover the range with at most one item of imbalance
		for _, tc := range [][2]int{{10, 3}, {4, 4}, {7, 1}, {5, 2}} {
			count, parts := tc[0], tc[1]
			next := 0
			for part := 0; part < parts; part++ {
				bucket := splitRange(count, parts, part)
				assert.Equal(t, next, bucket[0])
				size := bucket[1] - bucket[0]
				assert.True(t, size == count/parts || size == count/parts+1)
				next = bucket[1]
			}
			assert.Equal(t, count, next)
		}
	}
	cfg := DefaultConfig()
	cfg.Seed = 100
	results, best, err := Multistart(twoBlock(), cfg, 5, 2)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for r, res := range results {
		assert.Equal(t, uint64(100+r), res.Seed)
		assert.GreaterOrEqual(t, res.Fitness, results[best].Fitness)
		assert.Equal(t, res.Fitness, res.Stats.BestFitness)
	}
	assert.Equal(t, []int{2, 4}, results[best].Best.Edges())
	{ // Each restart matches a standalone search with its seed
		b, f, err := seeded(t, 102).Fit(twoBlock(), nil)
		require.NoError(t, err)
		assert.Equal(t, b.Edges(), results[2].Best.Edges())
		assert.Equal(t, f, results[2].Fitness)
	}
	{ // The parallel degree does not change the answer
		serial, sb, err := Multistart(twoBlock(), cfg, 5, 1)
		require.NoError(t, err)
		assert.Equal(t, best, sb)
		for r := range serial {
			assert.Equal(t, results[r].Best.Edges(), serial[r].Best.Edges())
		}
	}
	{
		_, _, err := Multistart(twoBlock(), cfg, 0, 1)
		assert.ErrorIs(t, err, ErrBadConfig)
		_, _, err = Multistart(mat.NewDense(2, 3, nil), cfg, 2, 0)
		assert.ErrorIs(t, err, ErrNotSquare)
	}
}
