package instance

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

const (
	literalsPerClause = 3
	maxWeight         = 100
)

// GenerateOptions controls random instance generation.
type GenerateOptions struct {
	NumClauses int
	// Ratio is the clauses-to-variables ratio; the variable count is
	// int(NumClauses / Ratio).
	Ratio float64
	// Satisfiable rejects formulas that have no satisfying assignment.
	Satisfiable bool
	// MaxAttempts bounds the retries when Satisfiable is set.
	MaxAttempts int
}

// DefaultGenerateOptions returns the options used for the benchmark sets:
// 4.5 clauses per variable sits near the 3-SAT phase transition.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		NumClauses:  50,
		Ratio:       4.5,
		MaxAttempts: 1000,
	}
}

// Generate draws a random 3-CNF instance with weights uniform in [1, 100].
func Generate(rng *rand.Rand, opts GenerateOptions) (*Instance, error) {
	if opts.NumClauses < 1 {
		return nil, errors.Wrapf(ErrInvalidInstance, "need at least one clause, got %d", opts.NumClauses)
	}
	if opts.Ratio <= 0 {
		return nil, errors.Wrapf(ErrInvalidInstance, "ratio must be positive, got %g", opts.Ratio)
	}
	numVars := int(float64(opts.NumClauses) / opts.Ratio)
	if numVars < 1 {
		return nil, errors.Wrapf(ErrInvalidInstance, "%d clauses at ratio %g leaves no variables", opts.NumClauses, opts.Ratio)
	}

	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		inst := randomInstance(rng, numVars, opts.NumClauses)
		if !opts.Satisfiable || Satisfiable(inst) {
			return inst, nil
		}
	}
	return nil, errors.Errorf("no satisfiable instance with %d clauses over %d variables after %d attempts",
		opts.NumClauses, numVars, attempts)
}

func randomInstance(rng *rand.Rand, numVars, numClauses int) *Instance {
	clauses := make([]Clause, numClauses)
	for i := range clauses {
		c := make(Clause, literalsPerClause)
		for j := range c {
			v := rng.Intn(numVars) + 1
			if rng.Intn(2) == 1 {
				v = -v
			}
			c[j] = v
		}
		clauses[i] = c
	}
	weights := make([]int, numVars)
	for i := range weights {
		weights[i] = rng.Intn(maxWeight) + 1
	}
	return &Instance{
		NumVars:    numVars,
		NumClauses: numClauses,
		Clauses:    clauses,
		Weights:    weights,
	}
}

// Satisfiable reports whether the hard formula of inst has a model,
// ignoring weights.
func Satisfiable(inst *Instance) bool {
	g := gini.New()
	for _, c := range inst.Clauses {
		for _, lit := range c {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(0)
	}
	return g.Solve() == 1
}

// FileName is the name under which GenerateFiles stores the i-th instance.
func FileName(opts GenerateOptions, i int) string {
	return fmt.Sprintf("3_SAT_%d_%g_%d.txt", opts.NumClauses, opts.Ratio, i)
}

// GenerateFiles writes count generated instances into dir and returns the
// paths written.
func GenerateFiles(rng *rand.Rand, opts GenerateOptions, count int, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		inst, err := Generate(rng, opts)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, FileName(opts, i))
		if err := os.WriteFile(path, []byte(Format(inst)), 0o644); err != nil {
			return paths, errors.Wrapf(err, "writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
