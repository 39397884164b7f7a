// Package oracle computes exact optima of small weighted MAX-3SAT instances
// with a complete MaxSAT solver. It is used to measure how far the genetic
// search lands from the true optimum; the search itself never calls it.
package oracle

import (
	"strconv"

	"github.com/crillab/gophersat/maxsat"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
)

func varName(v int) string {
	return "x" + strconv.Itoa(v)
}

// Optimum returns an assignment that satisfies every clause of inst and
// maximizes the weights sum, or nil if the formula is unsatisfiable.
//
// Clauses become hard constraints. Each variable contributes a soft unit
// clause weighted by its weight, so the solver's cost is the weight of the
// variables left false.
func Optimum(inst *instance.Instance) (*fitness.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	constrs := make([]maxsat.Constr, 0, len(inst.Clauses)+inst.NumVars)
	for _, c := range inst.Clauses {
		c, tautology := normalize(c)
		if tautology {
			continue
		}
		lits := make([]maxsat.Lit, len(c))
		for i, lit := range c {
			if lit > 0 {
				lits[i] = maxsat.Var(varName(lit))
			} else {
				lits[i] = maxsat.Not(varName(-lit))
			}
		}
		constrs = append(constrs, maxsat.HardClause(lits...))
	}
	for v := 1; v <= inst.NumVars; v++ {
		constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(varName(v))}, inst.Weights[v-1]))
	}

	model, _ := maxsat.New(constrs...).Solve()
	if model == nil {
		return nil, nil
	}

	ind := make(fitness.Individual, inst.NumVars)
	for v := 1; v <= inst.NumVars; v++ {
		ind[v-1] = model[varName(v)]
	}
	return &fitness.Solution{Individual: ind, WeightsSum: fitness.WeightsSum(ind, inst)}, nil
}

// normalize drops repeated literals and reports clauses containing both a
// variable and its negation.
func normalize(c instance.Clause) (instance.Clause, bool) {
	seen := make(map[int]bool, len(c))
	out := make(instance.Clause, 0, len(c))
	for _, lit := range c {
		if seen[-lit] {
			return nil, true
		}
		if !seen[lit] {
			seen[lit] = true
			out = append(out, lit)
		}
	}
	return out, false
}

// Gap is the relative distance of weightsSum below the optimum, in [0, 1].
func Gap(weightsSum, optimum int) float64 {
	if optimum <= 0 {
		return 0
	}
	g := float64(optimum-weightsSum) / float64(optimum)
	if g < 0 {
		return 0
	}
	return g
}
