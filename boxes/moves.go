package boxes

import (
	"math/rand/v2"
)

// Mover generates candidate partitions. It owns the random stream used for move selection
// and cut placement, and is not safe for concurrent use.
type Mover struct {
	rng      *rand.Rand
	Takeover Sampler
}

// NewMover returns a mover whose takeover sizes follow a Pareto law with the given shape,
// drawn from the same stream as move selection.
func NewMover(rng *rand.Rand, shape float64) *Mover {
	return &Mover{
		rng:      rng,
		Takeover: NewParetoSampler(shape, rng),
	}
}

// Split cuts box pos in two at a uniformly chosen interior point; the new edge is inserted
// before pos. Returns nil when the box is too small to cut.
func (mv *Mover) Split(p *Partition, pos int) (candidate *Partition) {
	if pos < 0 || pos >= len(p.edges) {
		return
	}
	var (
		upper = p.edges[pos]
		lower = 1 // box 0 uses a floor of 1, not 0
	)
	if pos > 0 {
		lower = p.edges[pos-1]
	}
	if upper-lower <= 1 {
		return
	}
	cut := lower + 1 + mv.rng.IntN(upper-lower-1)
	candidate = p.Copy()
	candidate.insert(pos, cut)
	return
}

// MergeRight grows box pos by taking elements from the box to its right. When the whole
// right box is taken the two boxes merge. Returns nil when pos is the last box.
func (mv *Mover) MergeRight(p *Partition, pos int) (candidate *Partition) {
	if pos < 0 || pos >= len(p.edges)-1 {
		return
	}
	var (
		current = p.edges[pos]
		upper   = p.edges[pos+1]
		edge    = current + mv.Takeover.Sample(upper-current)
	)
	candidate = p.Copy()
	if edge == upper {
		candidate.remove(pos)
	} else {
		candidate.edges[pos] = edge
	}
	return
}

// MergeLeft grows box pos by taking elements from the box to its left, moving edge pos-1
// down. When the whole left box is taken the two boxes merge. Returns nil when pos is 0.
func (mv *Mover) MergeLeft(p *Partition, pos int) (candidate *Partition) {
	if pos <= 0 || pos >= len(p.edges) {
		return
	}
	var (
		lower   int
		current = p.edges[pos-1]
	)
	if pos > 1 {
		lower = p.edges[pos-2]
	}
	edge := current - mv.Takeover.Sample(current-lower)
	candidate = p.Copy()
	if edge == lower {
		candidate.remove(pos - 1)
	} else {
		candidate.edges[pos-1] = edge
	}
	return
}

// ProposeMove picks a split half of the time, otherwise a right or left merge with equal
// odds, each at a uniformly chosen legal position. Returns nil if the chosen move does not
// apply there.
func (mv *Mover) ProposeMove(p *Partition) *Partition {
	k := len(p.edges)
	if mv.rng.Float64() < 0.5 {
		return mv.Split(p, mv.rng.IntN(k))
	}
	if k < 2 {
		// a single box has no neighbour to merge with
		return nil
	}
	if mv.rng.Float64() < 0.5 {
		return mv.MergeRight(p, mv.rng.IntN(k-1))
	}
	return mv.MergeLeft(p, 1+mv.rng.IntN(k-1))
}
