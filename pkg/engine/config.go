package engine

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
	"github.com/wildfunctions/genetic_maxsat/pkg/strategy"
)

// ErrInvalidConfig is returned (wrapped) when a configuration cannot drive a run.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config holds all parameters for an evolutionary run.
type Config struct {
	Population           int                    `json:"population"`
	Generations          int                    `json:"generations"`
	CrossoverProbability float64                `json:"crossover_probability"`
	MutationProbability  float64                `json:"mutation_probability"`
	Bonuses              fitness.Config         `json:"bonuses"`
	Selection            strategy.Selection     `json:"selection"`
	Crossover            strategy.CrossoverKind `json:"crossover"`
	TournamentSize       int                    `json:"tournament_size,omitempty"` // 0 = population/5
	Seed                 int64                  `json:"seed"`                      // 0 = random
	HillClimb            bool                   `json:"hill_climb"`                // polish the final solution by local search
	RecordStats          bool                   `json:"record_stats"`
	Verbose              bool                   `json:"verbose"`

	Logger logrus.FieldLogger `json:"-"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Population:           50,
		Generations:          500,
		CrossoverProbability: 0.7,
		MutationProbability:  0.06,
		Bonuses:              fitness.DefaultConfig(),
		Selection:            strategy.SelectTournament,
		Crossover:            strategy.CrossOnePoint,
		Seed:                 0,
	}
}

// Validate rejects configurations that would make a run on inst undefined.
func (c Config) Validate(inst *instance.Instance) error {
	if c.Population < 1 {
		return errors.Wrapf(ErrInvalidConfig, "population must be positive (got %d)", c.Population)
	}
	if c.Generations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "generations must not be negative (got %d)", c.Generations)
	}
	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		return errors.Wrapf(ErrInvalidConfig, "crossover probability must be in [0,1] (got %g)", c.CrossoverProbability)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return errors.Wrapf(ErrInvalidConfig, "mutation probability must be in [0,1] (got %g)", c.MutationProbability)
	}
	if c.Bonuses.SatisfiedClauseBonus < 0 || c.Bonuses.SatisfiedFormulaBonus < 0 {
		return errors.Wrapf(ErrInvalidConfig, "bonuses must not be negative (got %d, %d)",
			c.Bonuses.SatisfiedClauseBonus, c.Bonuses.SatisfiedFormulaBonus)
	}
	if c.TournamentSize < 0 {
		return errors.Wrapf(ErrInvalidConfig, "tournament size must not be negative (got %d)", c.TournamentSize)
	}
	if inst != nil && inst.NumVars < 1 {
		return errors.Wrap(ErrInvalidConfig, "individuals would have zero length")
	}

	sel, err := strategy.NewSelector(c.Selection, c.TournamentSize)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	if t, ok := sel.(strategy.Tournament); ok && t.EffectiveSize(c.Population) < 1 {
		return errors.Wrapf(ErrInvalidConfig,
			"tournament selection over %d individuals has no contenders; use at least 5 individuals or set a tournament size",
			c.Population)
	}
	if _, err := strategy.NewCrossover(c.Crossover); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}
