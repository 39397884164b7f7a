// Package sweep runs the solver over grids of parameters and instance groups
// and aggregates the outcomes for plotting.
package sweep

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/wildfunctions/genetic_maxsat/pkg/engine"
	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/strategy"
)

// ErrInvalidPlan is returned (wrapped) for plans that cannot be run.
var ErrInvalidPlan = errors.New("invalid sweep plan")

// Names of the numeric parameters an Axis may vary. GroupAxis is accepted by
// Points as an x coordinate but is not a parameter.
const (
	ParamPopulation   = "population"
	ParamGenerations  = "generations"
	ParamCrossover    = "crossover"
	ParamMutation     = "mutation"
	ParamClauseBonus  = "clause_bonus"
	ParamFormulaBonus = "formula_bonus"

	GroupAxis = "group"
)

var paramNames = []string{
	ParamPopulation, ParamGenerations, ParamCrossover,
	ParamMutation, ParamClauseBonus, ParamFormulaBonus,
}

// ParamNames lists the parameters an Axis may vary.
func ParamNames() []string {
	return append([]string(nil), paramNames...)
}

// Params are the solver settings of one sweep cell.
type Params struct {
	Population     int                    `yaml:"population"`
	Generations    int                    `yaml:"generations"`
	Crossover      float64                `yaml:"crossover"`
	Mutation       float64                `yaml:"mutation"`
	ClauseBonus    int                    `yaml:"clause_bonus"`
	FormulaBonus   int                    `yaml:"formula_bonus"`
	Selection      strategy.Selection     `yaml:"selection"`
	CrossoverKind  strategy.CrossoverKind `yaml:"crossover_kind"`
	TournamentSize int                    `yaml:"tournament_size"`
	HillClimb      bool                   `yaml:"hill_climb"`
}

// DefaultParams mirrors engine.DefaultConfig.
func DefaultParams() Params {
	cfg := engine.DefaultConfig()
	return Params{
		Population:     cfg.Population,
		Generations:    cfg.Generations,
		Crossover:      cfg.CrossoverProbability,
		Mutation:       cfg.MutationProbability,
		ClauseBonus:    cfg.Bonuses.SatisfiedClauseBonus,
		FormulaBonus:   cfg.Bonuses.SatisfiedFormulaBonus,
		Selection:      cfg.Selection,
		CrossoverKind:  cfg.Crossover,
		TournamentSize: cfg.TournamentSize,
		HillClimb:      cfg.HillClimb,
	}
}

// Get returns the named parameter as a float.
func (p Params) Get(name string) (float64, error) {
	switch name {
	case ParamPopulation:
		return float64(p.Population), nil
	case ParamGenerations:
		return float64(p.Generations), nil
	case ParamCrossover:
		return p.Crossover, nil
	case ParamMutation:
		return p.Mutation, nil
	case ParamClauseBonus:
		return float64(p.ClauseBonus), nil
	case ParamFormulaBonus:
		return float64(p.FormulaBonus), nil
	}
	return 0, errors.Errorf("unknown parameter %q", name)
}

// Set assigns the named parameter. Integer parameters are truncated.
func (p *Params) Set(name string, v float64) error {
	switch name {
	case ParamPopulation:
		p.Population = int(v)
	case ParamGenerations:
		p.Generations = int(v)
	case ParamCrossover:
		p.Crossover = v
	case ParamMutation:
		p.Mutation = v
	case ParamClauseBonus:
		p.ClauseBonus = int(v)
	case ParamFormulaBonus:
		p.FormulaBonus = int(v)
	default:
		return errors.Errorf("unknown parameter %q", name)
	}
	return nil
}

// Config converts the parameters to an engine configuration.
func (p Params) Config() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Population = p.Population
	cfg.Generations = p.Generations
	cfg.CrossoverProbability = p.Crossover
	cfg.MutationProbability = p.Mutation
	cfg.Bonuses = fitness.Config{
		SatisfiedClauseBonus:  p.ClauseBonus,
		SatisfiedFormulaBonus: p.FormulaBonus,
	}
	cfg.Selection = p.Selection
	cfg.Crossover = p.CrossoverKind
	cfg.TournamentSize = p.TournamentSize
	cfg.HillClimb = p.HillClimb
	return cfg
}

// Group is a set of instance files reported together under Label, typically
// the clause/variable ratio they were generated with.
type Group struct {
	Label float64  `yaml:"label"`
	Files []string `yaml:"files"` // glob patterns
}

// Axis varies one parameter over Values.
type Axis struct {
	Param  string    `yaml:"param"`
	Values []float64 `yaml:"values"`
}

// Plan describes a sweep. Every combination of axis values is run on every
// group; each instance of a group is solved Repeats times.
type Plan struct {
	Instances []Group `yaml:"instances"`
	Base      Params  `yaml:"base"`
	Axes      []Axis  `yaml:"axes"`
	Repeats   int     `yaml:"repeats"`
	Workers   int     `yaml:"workers"` // 0 = number of CPUs
	Seed      int64   `yaml:"seed"`    // 0 = every run seeded randomly, else run i uses Seed+i
	Oracle    bool    `yaml:"oracle"`
}

// DefaultPlan returns an empty plan with default parameters.
func DefaultPlan() Plan {
	return Plan{Base: DefaultParams(), Repeats: 1}
}

// LoadPlan reads a YAML plan. Fields missing from the file keep the values
// of DefaultPlan.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, errors.Wrapf(err, "reading plan %s", path)
	}
	plan := DefaultPlan()
	if err := yaml.UnmarshalStrict(data, &plan); err != nil {
		return Plan{}, errors.Wrapf(ErrInvalidPlan, "decoding %s: %v", path, err)
	}
	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Validate checks the structure of the plan. Parameter values are checked
// by the engine when the runs are created.
func (p Plan) Validate() error {
	if len(p.Instances) == 0 {
		return errors.Wrap(ErrInvalidPlan, "no instance groups")
	}
	for i, g := range p.Instances {
		if len(g.Files) == 0 {
			return errors.Wrapf(ErrInvalidPlan, "instance group %d has no files", i)
		}
	}
	if p.Repeats < 1 {
		return errors.Wrapf(ErrInvalidPlan, "repeats must be positive (got %d)", p.Repeats)
	}
	if p.Seed < 0 {
		return errors.Wrapf(ErrInvalidPlan, "seed must not be negative (got %d)", p.Seed)
	}
	if p.Workers < 0 {
		return errors.Wrapf(ErrInvalidPlan, "workers must not be negative (got %d)", p.Workers)
	}
	seen := make(map[string]bool, len(p.Axes))
	for _, a := range p.Axes {
		if _, err := p.Base.Get(a.Param); err != nil {
			return errors.Wrap(ErrInvalidPlan, err.Error())
		}
		if seen[a.Param] {
			return errors.Wrapf(ErrInvalidPlan, "parameter %q varied twice", a.Param)
		}
		seen[a.Param] = true
		if len(a.Values) == 0 {
			return errors.Wrapf(ErrInvalidPlan, "axis %q has no values", a.Param)
		}
	}
	return nil
}

// Combinations expands the axes into the parameter sets of every cell, the
// last axis varying fastest.
func (p Plan) Combinations() []Params {
	out := []Params{p.Base}
	for _, a := range p.Axes {
		next := make([]Params, 0, len(out)*len(a.Values))
		for _, base := range out {
			for _, v := range a.Values {
				params := base
				// Validate has already rejected unknown names.
				_ = params.Set(a.Param, v)
				next = append(next, params)
			}
		}
		out = next
	}
	return out
}

// expand resolves the glob patterns of g into a sorted, duplicate-free list.
func (g Group) expand() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range g.Files {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPlan, "bad pattern %q: %v", pattern, err)
		}
		if len(matches) == 0 {
			return nil, errors.Wrapf(ErrInvalidPlan, "pattern %q matches no files", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
