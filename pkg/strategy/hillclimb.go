package strategy

import (
	"math/rand"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
)

// HillClimb improves a valid individual by directed single-bit mutation:
// each false variable, in random order, is set true on a copy and the copy
// is kept if every clause is still satisfied. The weights sum never drops.
//
// A successful flip can satisfy a clause through its positive literal and
// unblock a variable rejected earlier, so passes over the remaining false
// variables repeat until one makes no progress. The result is a local
// optimum: no single remaining false variable can be set true.
// Invalid individuals are returned unchanged (as a copy).
func HillClimb(ind fitness.Individual, inst *instance.Instance, rng *rand.Rand) fitness.Individual {
	best := ind.Clone()
	if !fitness.IsValid(best, inst) {
		return best
	}

	var falses []int
	for i, b := range best {
		if !b {
			falses = append(falses, i)
		}
	}
	rng.Shuffle(len(falses), func(i, j int) { falses[i], falses[j] = falses[j], falses[i] })

	// occurs[v] lists the clauses mentioning variable v+1 negatively.
	occurs := make([][]int, inst.NumVars)
	for ci, c := range inst.Clauses {
		for _, lit := range c {
			if lit < 0 {
				occurs[-lit-1] = append(occurs[-lit-1], ci)
			}
		}
	}

	for progress := true; progress; {
		progress = false
		blocked := falses[:0]
		for _, i := range falses {
			if setIfValid(best, inst, occurs[i], i) {
				progress = true
			} else {
				blocked = append(blocked, i)
			}
		}
		falses = blocked
	}
	return best
}

// setIfValid sets bit i of ind and keeps it if every clause in negated, the
// clauses mentioning variable i+1 negatively, is still satisfied.
func setIfValid(ind fitness.Individual, inst *instance.Instance, negated []int, i int) bool {
	ind[i] = true
	for _, ci := range negated {
		if !fitness.ClauseSatisfied(ind, inst.Clauses[ci]) {
			ind[i] = false
			return false
		}
	}
	return true
}
