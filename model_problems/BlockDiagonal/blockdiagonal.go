package BlockDiagonal

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// BlockDiagonal is a synthetic similarity matrix with known community structure: cells
// inside a diagonal block are Within, all others Between, each perturbed by Gaussian noise.
// The diagonal is left at zero.
type BlockDiagonal struct {
	Sizes           []int
	Within, Between float64
	Noise           float64 // Standard deviation of the additive noise
	Seed            uint64
}

func NewBlockDiagonal(sizes []int, within, between, noise float64, seed uint64) (bd *BlockDiagonal, err error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("block diagonal: no blocks")
	}
	for i, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("block diagonal: block %d has size %d", i, s)
		}
	}
	if noise < 0 {
		return nil, fmt.Errorf("block diagonal: noise %v must be >= 0", noise)
	}
	bd = &BlockDiagonal{
		Sizes:   append([]int(nil), sizes...),
		Within:  within,
		Between: between,
		Noise:   noise,
		Seed:    seed,
	}
	return
}

// EvenSizes splits n into k blocks whose sizes differ by at most one.
func EvenSizes(n, k int) (sizes []int) {
	if k <= 0 || n < k {
		return
	}
	sizes = make([]int, k)
	for i := range sizes {
		sizes[i] = n / k
		if i < n%k {
			sizes[i]++
		}
	}
	return
}

func (bd *BlockDiagonal) N() (n int) {
	for _, s := range bd.Sizes {
		n += s
	}
	return
}

// Edges returns the exclusive right edge of every block, the partition the search should
// recover.
func (bd *BlockDiagonal) Edges() (edges []int) {
	var e int
	edges = make([]int, len(bd.Sizes))
	for i, s := range bd.Sizes {
		e += s
		edges[i] = e
	}
	return
}

// Matrix builds the symmetric matrix. The same seed always gives the same matrix.
func (bd *BlockDiagonal) Matrix() (M *mat.SymDense) {
	var (
		n     = bd.N()
		label = make([]int, n)
		noise = distuv.Normal{Mu: 0, Sigma: bd.Noise, Src: rand.NewPCG(bd.Seed, bd.Seed+1)}
		ind   int
	)
	for b, s := range bd.Sizes {
		for k := 0; k < s; k++ {
			label[ind] = b
			ind++
		}
	}
	M = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			val := bd.Between
			if label[i] == label[j] {
				val = bd.Within
			}
			if bd.Noise > 0 {
				val += noise.Rand()
			}
			M.SetSym(i, j, val)
		}
	}
	return
}
