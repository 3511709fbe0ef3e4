package boxes

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Evaluate scores the partition against M after checking that M is square and matches the
// partitioned range.
func (p *Partition) Evaluate(M mat.Matrix) (err error) {
	nr, nc := M.Dims()
	if nr != nc || nr != p.Size() {
		return fmt.Errorf("%w: matrix is %dx%d, partition covers %d", ErrSizeMismatch, nr, nc, p.Size())
	}
	p.CalculateFitness(M)
	return
}

// CalculateFitness sets and returns the least squares fitness of the partition:
//
//	sum over boxes of the squared error from the box mean, diagonal excluded
//	+ squared error from the mean of every cell outside all boxes
//
// A box of size 1 has no off-diagonal cells and contributes nothing, as does an empty
// outside set (a single box spanning the matrix).
func (p *Partition) CalculateFitness(M mat.Matrix) float64 {
	var (
		n, nc   = M.Dims()
		label   = make([]int, n)
		row     = make([]float64, n)
		inside  = make([]float64, 0, n)
		outside = make([]float64, 0, n*n)
		fitness float64
	)
	if n != nc || n != p.Size() {
		panic(fmt.Errorf("%w: matrix is %dx%d, partition covers %d", ErrSizeMismatch, n, nc, p.Size()))
	}
	var b int
	for begin, end := range p.Items() {
		for i := begin; i < end; i++ {
			label[i] = b
		}
		b++
	}
	for begin, end := range p.Items() {
		if end-begin <= 1 {
			continue
		}
		inside = inside[:0]
		for i := begin; i < end; i++ {
			row = mat.Row(row, i, M)
			for j := begin; j < end; j++ {
				if i != j {
					inside = append(inside, row[j])
				}
			}
		}
		fitness += sumSquares(inside)
	}
	for i := 0; i < n; i++ {
		row = mat.Row(row, i, M)
		for j, val := range row {
			if label[i] != label[j] {
				outside = append(outside, val)
			}
		}
	}
	if len(outside) != 0 {
		fitness += sumSquares(outside)
	}
	p.Fitness = fitness
	return fitness
}

// sumSquares returns the sum of squared deviations from the mean of x, overwriting x.
func sumSquares(x []float64) float64 {
	m := stat.Mean(x, nil)
	floats.AddConst(-m, x)
	return floats.Dot(x, x)
}
