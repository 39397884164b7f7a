package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
)

func hamming(a, b fitness.Individual) int {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

func testInstance(t *testing.T) *instance.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	inst, err := instance.Generate(rng, instance.GenerateOptions{NumClauses: 40, Ratio: 4, MaxAttempts: 1})
	require.NoError(t, err)
	return inst
}

func TestSelectors_PreserveSize(t *testing.T) {
	inst := testInstance(t)
	rng := rand.New(rand.NewSource(42))

	for _, sel := range []Selector{Roulette{}, Tournament{}, Tournament{FirstMatch: true}, Tournament{Size: 3}} {
		for _, n := range []int{5, 6, 17, 50} {
			pop := fitness.RandomPopulation(rng, n, inst.NumVars)
			next := SelectFrom(sel, pop, inst, fitness.DefaultConfig(), rng)
			assert.Len(t, next, n, "%s with %d individuals", sel.Name(), n)
		}
	}
}

func TestSelectors_CopiesIndividuals(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := fitness.Population{{true, false}, {false, true}, {true, true}, {false, false}, {true, false}}
	scaled := []int{1, 1, 1, 1, 1}

	for _, sel := range []Selector{Roulette{}, Tournament{}} {
		next := sel.Select(pop, scaled, rng)
		before := pop.Clone()
		for _, ind := range next {
			ind[0] = !ind[0]
		}
		assert.Equal(t, before, pop, sel.Name())
	}
}

func TestRoulette_Proportional(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := fitness.Population{{false}, {true}}
	scaled := []int{100, 200}

	trues := 0
	const rounds = 2000
	for r := 0; r < rounds; r++ {
		for _, ind := range (Roulette{}).Select(pop, scaled, rng) {
			if ind[0] {
				trues++
			}
		}
	}
	// Expected share is 2/3.
	share := float64(trues) / float64(rounds*len(pop))
	assert.InDelta(t, 2.0/3.0, share, 0.05)
}

func TestRoulette_NeverPicksAbsent(t *testing.T) {
	// Every scaled value is at least 1, so every slot is reachable; a single
	// individual must always be chosen.
	rng := rand.New(rand.NewSource(9))
	pop := fitness.Population{{true, true}}
	next := Roulette{}.Select(pop, []int{1}, rng)
	assert.Equal(t, pop, next)
}

func TestTournament_WinnerComesFromSample(t *testing.T) {
	// Size 1 degenerates to uniform sampling; with distinct fitness values
	// the winner is the drawn individual itself.
	rng := rand.New(rand.NewSource(5))
	pop := fitness.Population{{false, false}, {false, true}, {true, false}, {true, true}}
	scaled := []int{100, 133, 166, 200}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		for _, ind := range (Tournament{Size: 1}).Select(pop, scaled, rng) {
			seen[ind.String()] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestTournament_FullSizeAlwaysPicksBest(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pop := fitness.Population{{false, false}, {true, true}, {false, true}, {true, false}, {false, false}}
	scaled := []int{100, 200, 150, 120, 100}

	next := (Tournament{Size: 200}).Select(pop, scaled, rng)
	for _, ind := range next {
		assert.Equal(t, "11", ind.String())
	}
}

func TestTournament_FirstMatch(t *testing.T) {
	// Individuals 0 and 2 share the top fitness. With FirstMatch the lowest
	// index always wins; without it both appear.
	pop := fitness.Population{{true, false}, {false, false}, {false, true}, {false, false}, {false, false}}
	scaled := []int{200, 100, 200, 100, 100}

	rng := rand.New(rand.NewSource(8))
	counts := map[string]int{}
	for i := 0; i < 40; i++ {
		for _, ind := range (Tournament{FirstMatch: true}).Select(pop, scaled, rng) {
			counts[ind.String()]++
		}
	}
	assert.Zero(t, counts["01"], "index 2 must never win with FirstMatch")
	assert.Positive(t, counts["10"])

	counts = map[string]int{}
	for i := 0; i < 40; i++ {
		for _, ind := range (Tournament{}).Select(pop, scaled, rng) {
			counts[ind.String()]++
		}
	}
	assert.Positive(t, counts["01"])
	assert.Positive(t, counts["10"])
}

func TestTournament_EffectiveSize(t *testing.T) {
	assert.Equal(t, 4, Tournament{}.EffectiveSize(20))
	assert.Equal(t, 0, Tournament{}.EffectiveSize(4))
	assert.Equal(t, 3, Tournament{Size: 3}.EffectiveSize(20))
}

func TestOnePoint(t *testing.T) {
	a := fitness.Individual{true, true, true, true, true, true}
	b := fitness.Individual{false, false, false, false, false, false}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		c1, c2 := OnePoint{}.Cross(a, b, rng)
		require.Len(t, c1, len(a))
		require.Len(t, c2, len(a))

		// c1 is a prefix of ones followed by zeros; c2 is its complement.
		cut := 0
		for cut < len(c1) && c1[cut] {
			cut++
		}
		for j := range c1 {
			assert.Equal(t, j < cut, c1[j])
			assert.Equal(t, !c1[j], c2[j])
		}
	}
	assert.Equal(t, "111111", a.String(), "parent modified")
	assert.Equal(t, "000000", b.String(), "parent modified")
}

func TestUniform(t *testing.T) {
	a := fitness.Individual{true, false, true, false, true, false, true, false}
	b := fitness.Individual{false, true, false, true, false, true, false, true}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		c1, c2 := Uniform{}.Cross(a, b, rng)
		for j := range a {
			// Each position holds the two parental bits, in some order.
			assert.ElementsMatch(t, []bool{a[j], b[j]}, []bool{c1[j], c2[j]})
		}
	}
}

func TestRecombine_PreservesSize(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, x := range []Crossover{OnePoint{}, Uniform{}} {
		for _, n := range []int{0, 1, 2, 7, 20} {
			pop := fitness.RandomPopulation(rng, n, 8)
			assert.Len(t, Recombine(pop, x, 0.7, rng), n, "%s, n=%d", x.Name(), n)
		}
	}
}

func TestRecombine_OddTailAndZeroProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pop := fitness.RandomPopulation(rng, 5, 10)

	next := Recombine(pop, Uniform{}, 0, rng)
	assert.Equal(t, pop, next)

	next = Recombine(pop, OnePoint{}, 1, rng)
	assert.Equal(t, pop[4], next[4], "unpaired individual must be carried over")
}

func TestMutate_AtMostOneBit(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := fitness.RandomPopulation(rng, 30, 12)
	before := pop.Clone()

	next := Mutate(pop, 0.5, rng)
	require.Len(t, next, len(pop))
	assert.Equal(t, before, pop, "input population modified")

	mutated := 0
	for i := range next {
		d := hamming(pop[i], next[i])
		assert.LessOrEqual(t, d, 1)
		mutated += d
	}
	assert.Positive(t, mutated)
}

func TestMutate_Always(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := fitness.RandomPopulation(rng, 10, 5)
	next := Mutate(pop, 1, rng)
	for i := range next {
		assert.Equal(t, 1, hamming(pop[i], next[i]))
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for _, name := range SelectionNames() {
		s, err := ParseSelection(name)
		require.NoError(t, err)
		sel, err := NewSelector(s, 0)
		require.NoError(t, err)
		assert.Equal(t, name, sel.Name())
	}
	for _, name := range CrossoverNames() {
		k, err := ParseCrossover(name)
		require.NoError(t, err)
		x, err := NewCrossover(k)
		require.NoError(t, err)
		assert.Equal(t, name, x.Name())
	}

	_, err := ParseSelection("nonexistent")
	assert.Error(t, err)
	_, err = ParseCrossover("nonexistent")
	assert.Error(t, err)
}

func TestHillClimb_Small(t *testing.T) {
	inst, err := instance.New(3, []instance.Clause{{1, 2, -3}, {-1, -2, 3}}, []int{10, 20, 30})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	start := fitness.Individual{false, true, false}
	got := HillClimb(start, inst, rng)
	assert.Equal(t, "111", got.String())
	assert.Equal(t, "010", start.String(), "input must not be modified")
}

func TestHillClimb_EveryOrder(t *testing.T) {
	// Variable 1 only becomes settable after variable 3.
	inst, err := instance.New(3, []instance.Clause{{1, 2, -3}, {-1, -2, 3}}, []int{10, 20, 30})
	require.NoError(t, err)

	for seed := int64(0); seed < 50; seed++ {
		got := HillClimb(fitness.Individual{false, true, false}, inst, rand.New(rand.NewSource(seed)))
		assert.Equal(t, "111", got.String(), "seed %d", seed)
	}
}

func TestHillClimb_InvalidUnchanged(t *testing.T) {
	inst, err := instance.New(3, []instance.Clause{{1, 2, -3}}, []int{10, 20, 30})
	require.NoError(t, err)

	start := fitness.Individual{false, false, true}
	got := HillClimb(start, inst, rand.New(rand.NewSource(1)))
	assert.Equal(t, start, got)
}

func TestHillClimb_LocalOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	inst, err := instance.Generate(rng, instance.GenerateOptions{NumClauses: 12, Ratio: 1.2, MaxAttempts: 1})
	require.NoError(t, err)

	climbed := 0
	for i := 0; i < 200; i++ {
		ind := fitness.RandomIndividual(rng, inst.NumVars)
		if !fitness.IsValid(ind, inst) {
			continue
		}
		climbed++
		got := HillClimb(ind, inst, rng)
		require.True(t, fitness.IsValid(got, inst))
		assert.GreaterOrEqual(t, fitness.WeightsSum(got, inst), fitness.WeightsSum(ind, inst))
		for v, b := range got {
			if b {
				continue
			}
			flipped := got.Clone()
			flipped[v] = true
			assert.False(t, fitness.IsValid(flipped, inst), "variable %d could still be set", v+1)
		}
	}
	assert.Positive(t, climbed)
}
