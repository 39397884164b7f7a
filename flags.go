package main

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/wildfunctions/genetic_maxsat/pkg/engine"
	"github.com/wildfunctions/genetic_maxsat/pkg/strategy"
)

type selectionValue struct{ s *strategy.Selection }

func (v selectionValue) String() string {
	if v.s == nil {
		return ""
	}
	return v.s.String()
}
func (v selectionValue) Set(name string) error { return v.s.UnmarshalText([]byte(name)) }
func (selectionValue) Type() string            { return "selection" }

type crossoverValue struct{ k *strategy.CrossoverKind }

func (v crossoverValue) String() string {
	if v.k == nil {
		return ""
	}
	return v.k.String()
}
func (v crossoverValue) Set(name string) error { return v.k.UnmarshalText([]byte(name)) }
func (crossoverValue) Type() string            { return "crossover" }

// bindEngineFlags registers the engine parameters on fs, defaulting to the
// current values of cfg.
func bindEngineFlags(fs *pflag.FlagSet, cfg *engine.Config) {
	fs.IntVarP(&cfg.Population, "population", "n", cfg.Population, "population size")
	fs.IntVarP(&cfg.Generations, "generations", "g", cfg.Generations, "number of generations")
	fs.Float64Var(&cfg.CrossoverProbability, "crossover-probability", cfg.CrossoverProbability, "probability that a pair is recombined")
	fs.Float64Var(&cfg.MutationProbability, "mutation-probability", cfg.MutationProbability, "probability that an individual is mutated")
	fs.IntVar(&cfg.Bonuses.SatisfiedClauseBonus, "clause-bonus", cfg.Bonuses.SatisfiedClauseBonus, "fitness bonus per satisfied clause")
	fs.IntVar(&cfg.Bonuses.SatisfiedFormulaBonus, "formula-bonus", cfg.Bonuses.SatisfiedFormulaBonus, "fitness bonus when every clause is satisfied")
	fs.Var(selectionValue{&cfg.Selection}, "selection", "selection scheme ("+strings.Join(strategy.SelectionNames(), ", ")+")")
	fs.Var(crossoverValue{&cfg.Crossover}, "crossover", "crossover operator ("+strings.Join(strategy.CrossoverNames(), ", ")+")")
	fs.IntVar(&cfg.TournamentSize, "tournament-size", cfg.TournamentSize, "tournament size (0 = population/5)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.BoolVar(&cfg.HillClimb, "hill-climb", cfg.HillClimb, "polish the final solution by local search")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log statistics of every generation at debug level")
}
