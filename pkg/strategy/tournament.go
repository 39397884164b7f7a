package strategy

import (
	"math/rand"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
)

// tournamentDivisor sets the default tournament size to a fifth of the population.
const tournamentDivisor = 5

// Tournament fills every slot with the fittest of Size individuals drawn
// uniformly with replacement.
type Tournament struct {
	// Size is the number of contenders per slot; 0 means len(pop)/5.
	Size int
	// FirstMatch resolves the winner as the lowest population index whose
	// scaled fitness equals the best contender's, even if that index was
	// not drawn.
	FirstMatch bool
}

func (t Tournament) Name() string {
	if t.FirstMatch {
		return SelectTournamentFirstMatch.String()
	}
	return SelectTournament.String()
}

// EffectiveSize resolves the tournament size for a population of n.
func (t Tournament) EffectiveSize(n int) int {
	if t.Size > 0 {
		return t.Size
	}
	return n / tournamentDivisor
}

func (t Tournament) Select(pop fitness.Population, scaled []int, rng *rand.Rand) fitness.Population {
	n := len(pop)
	size := t.EffectiveSize(n)
	next := make(fitness.Population, n)

	for i := range next {
		bestIdx := rng.Intn(n)
		for j := 1; j < size; j++ {
			idx := rng.Intn(n)
			if scaled[idx] > scaled[bestIdx] {
				bestIdx = idx
			}
		}
		if t.FirstMatch {
			bestIdx = firstIndexOf(scaled, scaled[bestIdx])
		}
		next[i] = pop[bestIdx].Clone()
	}
	return next
}

func firstIndexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
