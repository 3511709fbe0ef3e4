package BlockDiagonal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/boxcut/annealer"
	"github.com/notargets/boxcut/boxes"
)

func TestBlockDiagonal(t *testing.T) {
	{
		assert.Equal(t, []int{4, 3, 3}, EvenSizes(10, 3))
		assert.Equal(t, []int{2, 2}, EvenSizes(4, 2))
		assert.Nil(t, EvenSizes(2, 3))
		assert.Nil(t, EvenSizes(5, 0))
	}
	{
		_, err := NewBlockDiagonal(nil, 1, 0, 0, 1)
		assert.Error(t, err)
		_, err = NewBlockDiagonal([]int{2, 0}, 1, 0, 0, 1)
		assert.Error(t, err)
		_, err = NewBlockDiagonal([]int{2, 2}, 1, 0, -1, 1)
		assert.Error(t, err)
	}
	{ // Noise free matrices score zero on their own blocks
		bd, err := NewBlockDiagonal([]int{3, 2, 4}, 1, 0.1, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 9, bd.N())
		assert.Equal(t, []int{3, 5, 9}, bd.Edges())
		M := bd.Matrix()
		assert.Equal(t, 0., M.At(4, 4))
		assert.Equal(t, 1., M.At(0, 2))
		assert.Equal(t, 0.1, M.At(2, 3))
		assert.Equal(t, M.At(3, 2), M.At(2, 3))
		p, _ := boxes.FromEdges(bd.Edges())
		assert.InDelta(t, 0, p.CalculateFitness(M), 1.e-12)
	}
	{ // Seeded noise is reproducible and symmetric
		bd, _ := NewBlockDiagonal(EvenSizes(12, 3), 1, 0, 0.05, 7)
		A, B := bd.Matrix(), bd.Matrix()
		assert.Equal(t, A, B)
		assert.NotEqual(t, 1., A.At(0, 1))
		assert.Equal(t, A.At(1, 0), A.At(0, 1))
	}
	{ // The search recovers well separated blocks
		bd, _ := NewBlockDiagonal(EvenSizes(12, 3), 1, 0, 0.01, 3)
		M := bd.Matrix()
		cfg := annealer.DefaultConfig()
		cfg.Seed = 2024
		cfg.PeriodFloor = 1000
		a, err := annealer.New(cfg)
		require.NoError(t, err)
		best, fit, err := a.Fit(M, nil)
		require.NoError(t, err)
		truth, _ := boxes.FromEdges(bd.Edges())
		truth.CalculateFitness(M)
		assert.LessOrEqual(t, fit, truth.Fitness+1.e-9)
		assert.Equal(t, bd.Edges(), best.Edges())
	}
}
