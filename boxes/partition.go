package boxes

import (
	"fmt"
	"iter"
	"math"
)

// Partition splits the index range [0, n) into contiguous half-open boxes. Each entry of
// edges is the exclusive right edge of a box, so box i spans [edges[i-1], edges[i]) with an
// implied leading edge of 0. The last edge is always n.
type Partition struct {
	edges   []int
	Fitness float64 // Lower is better, +Inf until evaluated
}

// NewPartition returns the all-singleton partition [1, 2, ..., n].
func NewPartition(n int) (p *Partition, err error) {
	if n <= 0 {
		err = fmt.Errorf("%w: n = %d", ErrBadSize, n)
		return
	}
	edges := make([]int, n)
	for i := range edges {
		edges[i] = i + 1
	}
	p = &Partition{edges: edges, Fitness: math.Inf(1)}
	return
}

// FromEdges builds a partition over a private copy of edges.
func FromEdges(edges []int) (p *Partition, err error) {
	if len(edges) == 0 {
		err = ErrEmptyEdges
		return
	}
	var (
		prev int
	)
	for i, e := range edges {
		if e <= prev {
			err = fmt.Errorf("%w: edges[%d] = %d follows %d", ErrNotIncreasing, i, e, prev)
			return
		}
		prev = e
	}
	p = &Partition{edges: append([]int(nil), edges...), Fitness: math.Inf(1)}
	return
}

// Validate checks the partition invariants against a matrix of size n.
func (p *Partition) Validate(n int) (err error) {
	if n <= 0 {
		return fmt.Errorf("%w: n = %d", ErrBadSize, n)
	}
	if len(p.edges) == 0 {
		return ErrEmptyEdges
	}
	var prev int
	for i, e := range p.edges {
		if e <= prev {
			return fmt.Errorf("%w: edges[%d] = %d follows %d", ErrNotIncreasing, i, e, prev)
		}
		prev = e
	}
	if prev != n {
		return fmt.Errorf("%w: last edge %d, n = %d", ErrLastEdge, prev, n)
	}
	return
}

// Copy returns an independent partition with the same edges and fitness.
func (p *Partition) Copy() *Partition {
	return &Partition{
		edges:   append(make([]int, 0, len(p.edges)+1), p.edges...),
		Fitness: p.Fitness,
	}
}

// Len is the number of boxes.
func (p *Partition) Len() int { return len(p.edges) }

// Edge returns the exclusive right edge of box i.
func (p *Partition) Edge(i int) int { return p.edges[i] }

// Size is the length of the partitioned range, the last edge.
func (p *Partition) Size() int { return p.edges[len(p.edges)-1] }

// Edges returns a copy of the edge list.
func (p *Partition) Edges() []int { return append([]int(nil), p.edges...) }

// Items yields the (begin, end) bounds of every box in order.
func (p *Partition) Items() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		var begin int
		for _, end := range p.edges {
			if !yield(begin, end) {
				return
			}
			begin = end
		}
	}
}

// Boxes returns the (begin, end) bounds of every box.
func (p *Partition) Boxes() (bx [][2]int) {
	bx = make([][2]int, 0, len(p.edges))
	for begin, end := range p.Items() {
		bx = append(bx, [2]int{begin, end})
	}
	return
}

func (p *Partition) String() string {
	return fmt.Sprintf("Fit:%.2f Boxes: %v", p.Fitness, p.edges)
}

// Better reports whether a has strictly lower fitness than b.
func Better(a, b *Partition) bool { return a.Fitness < b.Fitness }

// Compare orders partitions by fitness, for use with slices.SortFunc.
func Compare(a, b *Partition) int {
	switch {
	case a.Fitness < b.Fitness:
		return -1
	case a.Fitness > b.Fitness:
		return 1
	}
	return 0
}

func (p *Partition) insert(pos, edge int) {
	p.edges = append(p.edges, 0)
	copy(p.edges[pos+1:], p.edges[pos:])
	p.edges[pos] = edge
}

func (p *Partition) remove(pos int) {
	p.edges = append(p.edges[:pos], p.edges[pos+1:]...)
}
