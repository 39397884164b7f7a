package strategy

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
)

// Crossover recombines two parents into two offspring. Parents are not
// modified.
type Crossover interface {
	Name() string
	Cross(a, b fitness.Individual, rng *rand.Rand) (fitness.Individual, fitness.Individual)
}

// CrossoverKind identifies one of the available crossover operators.
type CrossoverKind int

const (
	CrossOnePoint CrossoverKind = iota
	CrossUniform
)

var crossoverNames = map[CrossoverKind]string{
	CrossOnePoint: "onepoint",
	CrossUniform:  "uniform",
}

func (k CrossoverKind) String() string {
	if n, ok := crossoverNames[k]; ok {
		return n
	}
	return fmt.Sprintf("CrossoverKind(%d)", int(k))
}

func (k CrossoverKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CrossoverKind) UnmarshalText(text []byte) error {
	v, err := ParseCrossover(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseCrossover resolves a crossover operator by name.
func ParseCrossover(name string) (CrossoverKind, error) {
	for k, n := range crossoverNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown crossover: %s (available: %v)", name, CrossoverNames())
}

// CrossoverNames returns all crossover operator names.
func CrossoverNames() []string {
	return []string{CrossOnePoint.String(), CrossUniform.String()}
}

// NewCrossover returns the operator for k.
func NewCrossover(k CrossoverKind) (Crossover, error) {
	switch k {
	case CrossOnePoint:
		return OnePoint{}, nil
	case CrossUniform:
		return Uniform{}, nil
	default:
		return nil, errors.Errorf("unknown crossover: %v", k)
	}
}

// OnePoint cuts both parents at the same random position and swaps tails.
type OnePoint struct{}

func (OnePoint) Name() string { return CrossOnePoint.String() }

func (OnePoint) Cross(a, b fitness.Individual, rng *rand.Rand) (fitness.Individual, fitness.Individual) {
	cut := rng.Intn(len(a))
	c1 := make(fitness.Individual, 0, len(a))
	c2 := make(fitness.Individual, 0, len(b))
	c1 = append(append(c1, a[:cut]...), b[cut:]...)
	c2 = append(append(c2, b[:cut]...), a[cut:]...)
	return c1, c2
}

// Uniform swaps each bit between the offspring on a fair coin flip.
type Uniform struct{}

func (Uniform) Name() string { return CrossUniform.String() }

func (Uniform) Cross(a, b fitness.Individual, rng *rand.Rand) (fitness.Individual, fitness.Individual) {
	c1 := make(fitness.Individual, len(a))
	c2 := make(fitness.Individual, len(b))
	for i := range a {
		if rng.Intn(2) == 1 {
			c1[i], c2[i] = b[i], a[i]
		} else {
			c1[i], c2[i] = a[i], b[i]
		}
	}
	return c1, c2
}

// Recombine walks pop in consecutive pairs (0,1), (2,3), ... and crosses each
// pair with probability p. Pairs left alone and an odd trailing individual
// are carried over unchanged. The result has len(pop) individuals.
func Recombine(pop fitness.Population, x Crossover, p float64, rng *rand.Rand) fitness.Population {
	next := make(fitness.Population, 0, len(pop))
	for i := 0; i+1 < len(pop); i += 2 {
		if rng.Float64() < p {
			c1, c2 := x.Cross(pop[i], pop[i+1], rng)
			next = append(next, c1, c2)
		} else {
			next = append(next, pop[i], pop[i+1])
		}
	}
	if len(pop)%2 == 1 {
		next = append(next, pop[len(pop)-1])
	}
	return next
}
