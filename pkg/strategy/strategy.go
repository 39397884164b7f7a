package strategy

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
	"github.com/wildfunctions/genetic_maxsat/pkg/scaling"
)

// Selector builds the next generation from the current one.
// scaled holds one linearly scaled fitness value per individual.
// The result has len(pop) independent copies; duplicates are allowed.
type Selector interface {
	Name() string
	Select(pop fitness.Population, scaled []int, rng *rand.Rand) fitness.Population
}

// Selection identifies one of the available selection schemes.
type Selection int

const (
	SelectTournament           Selection = iota // tournament among sampled individuals
	SelectRoulette                              // fitness proportional
	SelectTournamentFirstMatch                  // tournament, winner resolved by first index with the winning fitness
)

var selectionNames = map[Selection]string{
	SelectTournament:           "tournament",
	SelectRoulette:             "roulette",
	SelectTournamentFirstMatch: "tournament-first-match",
}

func (s Selection) String() string {
	if n, ok := selectionNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Selection(%d)", int(s))
}

func (s Selection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Selection) UnmarshalText(text []byte) error {
	v, err := ParseSelection(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSelection resolves a selection scheme by name.
func ParseSelection(name string) (Selection, error) {
	for s, n := range selectionNames {
		if n == name {
			return s, nil
		}
	}
	return 0, errors.Errorf("unknown selection: %s (available: %v)", name, SelectionNames())
}

// SelectionNames returns all selection scheme names.
func SelectionNames() []string {
	return []string{
		SelectTournament.String(),
		SelectRoulette.String(),
		SelectTournamentFirstMatch.String(),
	}
}

// NewSelector returns the selector for s. tournamentSize is ignored by
// roulette; 0 means one fifth of the population.
func NewSelector(s Selection, tournamentSize int) (Selector, error) {
	switch s {
	case SelectRoulette:
		return Roulette{}, nil
	case SelectTournament:
		return Tournament{Size: tournamentSize}, nil
	case SelectTournamentFirstMatch:
		return Tournament{Size: tournamentSize, FirstMatch: true}, nil
	default:
		return nil, errors.Errorf("unknown selection: %v", s)
	}
}

// SelectFrom scores pop, scales the scores and applies sel.
func SelectFrom(sel Selector, pop fitness.Population, inst *instance.Instance, cfg fitness.Config, rng *rand.Rand) fitness.Population {
	scaled := scaling.Linear(fitness.Evaluate(pop, inst, cfg))
	return sel.Select(pop, scaled, rng)
}
