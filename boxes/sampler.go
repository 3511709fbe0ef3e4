package boxes

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler picks how many elements cross a box boundary during a merge. Sample must return a
// value in [1, limit] for any limit >= 1.
type Sampler interface {
	Sample(limit int) int
}

// ParetoSampler draws heavy tailed takeover sizes: usually 1, occasionally most of the
// donating box. Draws are ceil(X-1) with X ~ Pareto(1, Shape), resampled until they fit.
type ParetoSampler struct {
	dist distuv.Pareto
}

func NewParetoSampler(shape float64, src rand.Source) *ParetoSampler {
	return &ParetoSampler{
		dist: distuv.Pareto{Xm: 1, Alpha: shape, Src: src},
	}
}

func (ps *ParetoSampler) Sample(limit int) (d int) {
	if limit <= 1 {
		return 1
	}
	for {
		// Compare in float space, a far tail draw can exceed the int range
		x := math.Ceil(ps.dist.Rand() - 1)
		if x >= 1 && x <= float64(limit) {
			return int(x)
		}
	}
}
