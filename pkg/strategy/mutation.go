package strategy

import (
	"math/rand"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
)

// MutateIndividual returns a copy of ind with one random bit flipped.
func MutateIndividual(ind fitness.Individual, rng *rand.Rand) fitness.Individual {
	out := ind.Clone()
	i := rng.Intn(len(out))
	out[i] = !out[i]
	return out
}

// Mutate replaces each individual, with probability p, by a single-bit
// mutant. Individuals are never modified in place.
func Mutate(pop fitness.Population, p float64, rng *rand.Rand) fitness.Population {
	next := make(fitness.Population, len(pop))
	for i, ind := range pop {
		if rng.Float64() < p {
			next[i] = MutateIndividual(ind, rng)
		} else {
			next[i] = ind
		}
	}
	return next
}
