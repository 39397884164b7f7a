package engine

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
	"github.com/wildfunctions/genetic_maxsat/pkg/strategy"
)

// Engine runs the evolutionary search on one instance. An Engine is not safe
// for concurrent use; independent runs should use independent engines.
type Engine struct {
	cfg       Config
	inst      *instance.Instance
	selector  strategy.Selector
	crossover strategy.Crossover
	seed      int64
	rng       *rand.Rand
	log       logrus.FieldLogger

	population fitness.Population
	generation int
	stats      []GenerationReport
}

// New creates an engine for inst. Both the instance and the config are
// validated; the run itself has no failure modes.
func New(inst *instance.Instance, cfg Config) (*Engine, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(inst); err != nil {
		return nil, err
	}
	sel, err := strategy.NewSelector(cfg.Selection, cfg.TournamentSize)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	x, err := strategy.NewCrossover(cfg.Crossover)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Engine{
		cfg:       cfg,
		inst:      inst,
		selector:  sel,
		crossover: x,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		log:       log,
	}, nil
}

// Seed returns the seed actually used, which differs from Config.Seed when
// that was 0.
func (e *Engine) Seed() int64 { return e.seed }

// Generation returns the number of generations evolved so far.
func (e *Engine) Generation() int { return e.generation }

// Population returns a copy of the current population.
func (e *Engine) Population() fitness.Population { return e.population.Clone() }

// Stats returns the per-generation statistics recorded so far. It is empty
// unless Config.RecordStats is set.
func (e *Engine) Stats() []GenerationReport { return e.stats }

// Initialize draws a fresh random population and resets the generation counter.
func (e *Engine) Initialize() {
	e.population = fitness.RandomPopulation(e.rng, e.cfg.Population, e.inst.NumVars)
	e.generation = 0
	e.stats = nil
	e.record()
}

// Step evolves one generation: selection, then recombination, then
// mutation, each replacing the whole population.
func (e *Engine) Step() {
	if e.population == nil {
		e.Initialize()
	}
	pop := strategy.SelectFrom(e.selector, e.population, e.inst, e.cfg.Bonuses, e.rng)
	pop = strategy.Recombine(pop, e.crossover, e.cfg.CrossoverProbability, e.rng)
	pop = strategy.Mutate(pop, e.cfg.MutationProbability, e.rng)
	e.population = pop
	e.generation++
	e.record()
}

// Best returns the valid individual with the largest weights sum, the first
// one in population order on ties, or nil if no individual is valid.
func (e *Engine) Best() *fitness.Solution {
	return BestValid(e.population, e.inst)
}

// Run evolves a fresh population for exactly Config.Generations generations
// and reports the best valid individual of the final population, polished
// by HillClimb when Config.HillClimb is set.
func (e *Engine) Run() Report {
	start := time.Now()
	log := e.log.WithFields(logrus.Fields{
		"vars":        e.inst.NumVars,
		"clauses":     e.inst.NumClauses,
		"population":  e.cfg.Population,
		"generations": e.cfg.Generations,
		"selection":   e.selector.Name(),
		"crossover":   e.crossover.Name(),
		"seed":        e.seed,
	})
	log.Debug("starting run")

	e.Initialize()
	for e.generation < e.cfg.Generations {
		e.Step()
	}
	best := e.Best()
	if best != nil && e.cfg.HillClimb {
		best = e.climb(best, log)
	}

	report := Report{
		Config:      e.cfg,
		Seed:        e.seed,
		Generations: e.stats,
		Solution:    best,
		Duration:    time.Since(start),
	}
	report.Config.Seed = e.seed
	if fp, err := instance.Fingerprint(e.inst); err != nil {
		log.WithError(err).Warn("could not fingerprint instance")
	} else {
		report.Fingerprint = fp
	}

	if best == nil {
		log.WithField("duration", report.Duration).Debug("no valid individual in final population")
	} else {
		log.WithFields(logrus.Fields{
			"weights_sum": best.WeightsSum,
			"duration":    report.Duration,
		}).Debug("found solution")
	}
	return report
}

// climb applies HillClimb to the best individual of the final population.
func (e *Engine) climb(best *fitness.Solution, log logrus.FieldLogger) *fitness.Solution {
	ind := strategy.HillClimb(best.Individual, e.inst, e.rng)
	sum := fitness.WeightsSum(ind, e.inst)
	if sum <= best.WeightsSum {
		return best
	}
	log.WithFields(logrus.Fields{
		"before": best.WeightsSum,
		"after":  sum,
	}).Debug("hill climb improved solution")
	return &fitness.Solution{Individual: ind, WeightsSum: sum}
}

// record appends statistics for the current generation when enabled.
func (e *Engine) record() {
	if !e.cfg.RecordStats && !e.cfg.Verbose {
		return
	}
	r := Summarize(e.generation, e.population, e.inst, e.cfg.Bonuses)
	if e.cfg.RecordStats {
		e.stats = append(e.stats, r)
	}
	if e.cfg.Verbose {
		e.log.WithFields(logrus.Fields{
			"generation":  r.Generation,
			"min":         r.MinFitness,
			"max":         r.MaxFitness,
			"avg":         r.AvgFitness,
			"valid":       r.Valid,
			"best_weight": r.BestWeightsSum,
		}).Debug("generation")
	}
}

// BestValid extracts the valid individual of pop with the largest weights
// sum. Ties go to the earliest individual. It returns nil if none is valid.
func BestValid(pop fitness.Population, inst *instance.Instance) *fitness.Solution {
	var best *fitness.Solution
	for _, ind := range pop {
		if !fitness.IsValid(ind, inst) {
			continue
		}
		sum := fitness.WeightsSum(ind, inst)
		if best == nil || sum > best.WeightsSum {
			best = &fitness.Solution{Individual: ind.Clone(), WeightsSum: sum}
		}
	}
	return best
}

// Summarize computes the statistics of one generation.
func Summarize(generation int, pop fitness.Population, inst *instance.Instance, cfg fitness.Config) GenerationReport {
	r := GenerationReport{Generation: generation}
	if len(pop) == 0 {
		return r
	}
	scores := fitness.Evaluate(pop, inst, cfg)
	r.MinFitness, r.MaxFitness = scores[0], scores[0]
	total := 0
	for _, s := range scores {
		total += s
		if s < r.MinFitness {
			r.MinFitness = s
		}
		if s > r.MaxFitness {
			r.MaxFitness = s
		}
	}
	r.AvgFitness = float64(total) / float64(len(scores))
	for _, ind := range pop {
		if fitness.IsValid(ind, inst) {
			r.Valid++
		}
	}
	if best := BestValid(pop, inst); best != nil {
		r.BestWeightsSum = best.WeightsSum
	}
	return r
}

// Run solves inst with the default bonuses. A nil solution means no valid
// individual survived the final generation.
func Run(inst *instance.Instance, nIndividuals, nIterations int, crossoverProbability, mutationProbability float64) (*fitness.Solution, error) {
	def := fitness.DefaultConfig()
	return RunWithBonuses(inst, nIndividuals, nIterations, crossoverProbability, mutationProbability,
		def.SatisfiedClauseBonus, def.SatisfiedFormulaBonus)
}

// RunWithBonuses is Run with explicit fitness bonuses.
func RunWithBonuses(inst *instance.Instance, nIndividuals, nIterations int, crossoverProbability, mutationProbability float64,
	satisfiedClauseBonus, satisfiedFormulaBonus int) (*fitness.Solution, error) {
	cfg := DefaultConfig()
	cfg.Population = nIndividuals
	cfg.Generations = nIterations
	cfg.CrossoverProbability = crossoverProbability
	cfg.MutationProbability = mutationProbability
	cfg.Bonuses = fitness.Config{
		SatisfiedClauseBonus:  satisfiedClauseBonus,
		SatisfiedFormulaBonus: satisfiedFormulaBonus,
	}
	e, err := New(inst, cfg)
	if err != nil {
		return nil, err
	}
	return e.Run().Solution, nil
}
