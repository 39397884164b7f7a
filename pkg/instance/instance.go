package instance

import (
	"github.com/pkg/errors"
)

// ErrInvalidInstance is returned (wrapped) for any malformed problem instance.
var ErrInvalidInstance = errors.New("invalid instance")

// Clause is a disjunction of literals. A positive literal v refers to
// variable v, a negative literal -v to its negation. Variables are 1-based.
type Clause []int

// Instance is a weighted MAX-3SAT problem: a CNF formula plus a positive
// weight for every variable. Weights[i] belongs to variable i+1.
type Instance struct {
	NumVars    int      `json:"n_var"`
	NumClauses int      `json:"n_clauses"`
	Clauses    []Clause `json:"clauses"`
	Weights    []int    `json:"weights"`
}

// New builds and validates an instance.
func New(numVars int, clauses []Clause, weights []int) (*Instance, error) {
	inst := &Instance{
		NumVars:    numVars,
		NumClauses: len(clauses),
		Clauses:    clauses,
		Weights:    weights,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate checks the structural invariants of the instance.
func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.Wrap(ErrInvalidInstance, "nil instance")
	}
	if inst.NumVars < 1 {
		return errors.Wrapf(ErrInvalidInstance, "need at least one variable, got %d", inst.NumVars)
	}
	if inst.NumClauses != len(inst.Clauses) {
		return errors.Wrapf(ErrInvalidInstance, "header declares %d clauses, found %d", inst.NumClauses, len(inst.Clauses))
	}
	if len(inst.Weights) != inst.NumVars {
		return errors.Wrapf(ErrInvalidInstance, "expected %d weights, found %d", inst.NumVars, len(inst.Weights))
	}
	for i, w := range inst.Weights {
		if w <= 0 {
			return errors.Wrapf(ErrInvalidInstance, "weight of variable %d must be positive, got %d", i+1, w)
		}
	}
	for i, c := range inst.Clauses {
		if len(c) == 0 {
			return errors.Wrapf(ErrInvalidInstance, "clause %d is empty", i)
		}
		for _, lit := range c {
			if lit == 0 {
				return errors.Wrapf(ErrInvalidInstance, "clause %d contains literal 0", i)
			}
			if v := abs(lit); v > inst.NumVars {
				return errors.Wrapf(ErrInvalidInstance, "clause %d references variable %d, only %d declared", i, v, inst.NumVars)
			}
		}
	}
	return nil
}

// TotalWeight is the sum of all variable weights, an upper bound on any
// solution's weights sum.
func (inst *Instance) TotalWeight() int {
	total := 0
	for _, w := range inst.Weights {
		total += w
	}
	return total
}

// Var returns the 1-based variable index of a literal.
func Var(lit int) int {
	return abs(lit)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
