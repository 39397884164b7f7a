package fitness

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

// Individual is a candidate assignment: bit i holds the value of variable i+1.
type Individual []bool

// RandomIndividual returns a uniformly random assignment of n variables.
func RandomIndividual(rng *rand.Rand, n int) Individual {
	ind := make(Individual, n)
	for i := range ind {
		ind[i] = rng.Intn(2) == 1
	}
	return ind
}

// Clone returns an independent copy of the individual.
func (ind Individual) Clone() Individual {
	out := make(Individual, len(ind))
	copy(out, ind)
	return out
}

// String renders the individual as a bit string, e.g. "0110".
func (ind Individual) String() string {
	var sb strings.Builder
	sb.Grow(len(ind))
	for _, b := range ind {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// MarshalText encodes the individual as its bit string.
func (ind Individual) MarshalText() ([]byte, error) {
	return []byte(ind.String()), nil
}

// UnmarshalText decodes a bit string such as "0110".
func (ind *Individual) UnmarshalText(text []byte) error {
	out := make(Individual, len(text))
	for i, c := range text {
		switch c {
		case '0':
		case '1':
			out[i] = true
		default:
			return errors.Errorf("invalid bit %q at position %d", c, i)
		}
	}
	*ind = out
	return nil
}

// Population is an ordered set of individuals.
type Population []Individual

// RandomPopulation returns size random individuals of n variables each.
func RandomPopulation(rng *rand.Rand, size, n int) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = RandomIndividual(rng, n)
	}
	return pop
}

// Clone deep-copies every individual.
func (pop Population) Clone() Population {
	out := make(Population, len(pop))
	for i, ind := range pop {
		out[i] = ind.Clone()
	}
	return out
}
