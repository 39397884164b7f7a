package fitness

import (
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
)

// Config holds the bonuses that steer the search towards valid assignments.
type Config struct {
	// SatisfiedClauseBonus is added once per satisfied clause.
	SatisfiedClauseBonus int `json:"satisfied_clause_bonus" yaml:"satisfied_clause_bonus"`
	// SatisfiedFormulaBonus is added once more when every clause is satisfied.
	SatisfiedFormulaBonus int `json:"satisfied_formula_bonus" yaml:"satisfied_formula_bonus"`
}

// DefaultConfig returns the default bonuses.
func DefaultConfig() Config {
	return Config{
		SatisfiedClauseBonus:  500,
		SatisfiedFormulaBonus: 1100,
	}
}

// Solution is a valid individual together with its weights sum.
type Solution struct {
	Individual Individual `json:"individual"`
	WeightsSum int        `json:"weights_sum"`
}

// Fitness scores ind: the weights of its true variables, plus the clause
// bonus for each satisfied clause, plus the formula bonus if all are.
func Fitness(ind Individual, inst *instance.Instance, cfg Config) int {
	satisfied := SatisfiedClauses(ind, inst)
	score := WeightsSum(ind, inst) + satisfied*cfg.SatisfiedClauseBonus
	if satisfied == inst.NumClauses {
		score += cfg.SatisfiedFormulaBonus
	}
	return score
}

// Evaluate returns the fitness of every individual in pop.
func Evaluate(pop Population, inst *instance.Instance, cfg Config) []int {
	out := make([]int, len(pop))
	for i, ind := range pop {
		out[i] = Fitness(ind, inst, cfg)
	}
	return out
}

// WeightsSum sums the weights of the variables set true.
func WeightsSum(ind Individual, inst *instance.Instance) int {
	sum := 0
	for i, b := range ind {
		if b {
			sum += inst.Weights[i]
		}
	}
	return sum
}

// ClauseSatisfied reports whether any literal of c is true under ind.
func ClauseSatisfied(ind Individual, c instance.Clause) bool {
	for _, lit := range c {
		if lit > 0 && ind[lit-1] {
			return true
		}
		if lit < 0 && !ind[-lit-1] {
			return true
		}
	}
	return false
}

// SatisfiedClauses counts the clauses of inst satisfied by ind.
func SatisfiedClauses(ind Individual, inst *instance.Instance) int {
	n := 0
	for _, c := range inst.Clauses {
		if ClauseSatisfied(ind, c) {
			n++
		}
	}
	return n
}

// IsValid reports whether ind satisfies every clause.
func IsValid(ind Individual, inst *instance.Instance) bool {
	for _, c := range inst.Clauses {
		if !ClauseSatisfied(ind, c) {
			return false
		}
	}
	return true
}
