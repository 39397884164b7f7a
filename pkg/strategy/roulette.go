package strategy

import (
	"math/rand"
	"sort"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
)

// Roulette picks each slot independently with probability proportional to
// scaled fitness. The wheel is kept as cumulative sums rather than one entry
// per unit of fitness.
type Roulette struct{}

func (Roulette) Name() string { return SelectRoulette.String() }

func (Roulette) Select(pop fitness.Population, scaled []int, rng *rand.Rand) fitness.Population {
	n := len(pop)
	next := make(fitness.Population, n)

	cumulative := make([]int, n)
	total := 0
	for i, f := range scaled {
		total += f
		cumulative[i] = total
	}

	for i := range next {
		spin := rng.Intn(total)
		// First slot whose cumulative sum exceeds spin.
		idx := sort.SearchInts(cumulative, spin+1)
		next[i] = pop[idx].Clone()
	}
	return next
}
