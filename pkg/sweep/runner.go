package sweep

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/genetic_maxsat/pkg/engine"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
	"github.com/wildfunctions/genetic_maxsat/pkg/metrics"
	"github.com/wildfunctions/genetic_maxsat/pkg/oracle"
)

// Result aggregates the runs of one cell: one parameter set on one group.
type Result struct {
	Params       Params        `json:"params"`
	Group        float64       `json:"group"`
	Runs         int           `json:"runs"`
	Solved       int           `json:"solved"`
	SolvedRatio  float64       `json:"solved_ratio"`
	MeanDuration time.Duration `json:"mean_duration_ns"`
	// MeanGap is the mean relative distance below the exact optimum over the
	// solved runs. It is only computed when the plan enables the oracle.
	MeanGap float64 `json:"mean_gap"`
}

// Runner executes plans. The zero value logs to the standard logger and
// records no metrics.
type Runner struct {
	Log     logrus.FieldLogger
	Metrics *metrics.Recorder
}

type loaded struct {
	path    string
	inst    *instance.Instance
	optimum int // -1 when unknown or unsatisfiable
}

type job struct {
	cell int
	file *loaded
	seed int64
}

type outcome struct {
	solved   bool
	duration time.Duration
	gap      float64
	hasGap   bool
}

// Run executes every run of plan and returns one Result per cell, ordered by
// parameter combination and then by group. Runs are independent and spread
// over plan.Workers goroutines. The first failing run cancels the sweep.
func (r *Runner) Run(ctx context.Context, plan Plan) ([]Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	groups, err := r.load(plan, log)
	if err != nil {
		return nil, err
	}
	combos := plan.Combinations()

	// Fail fast on parameter combinations the engine would reject.
	for _, params := range combos {
		if err := params.Config().Validate(nil); err != nil {
			return nil, err
		}
	}

	var jobs []job
	for c := range combos {
		for g, files := range groups {
			cell := c*len(groups) + g
			for rep := 0; rep < plan.Repeats; rep++ {
				for _, f := range files {
					seed := int64(0)
					if plan.Seed != 0 {
						seed = plan.Seed + int64(len(jobs))
					}
					jobs = append(jobs, job{cell: cell, file: f, seed: seed})
				}
			}
		}
	}
	log.WithFields(logrus.Fields{
		"cells": len(combos) * len(groups),
		"runs":  len(jobs),
	}).Info("starting sweep")

	workers := plan.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	outcomes := make([]outcome, len(jobs))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			j := jobs[i]
			cfg := combos[j.cell/len(groups)].Config()
			cfg.Seed = j.seed
			cfg.Logger = log.WithFields(logrus.Fields{"run": i, "file": j.file.path})

			e, err := engine.New(j.file.inst, cfg)
			if err != nil {
				return errors.Wrapf(err, "run %d on %s", i, j.file.path)
			}
			report := e.Run()

			o := outcome{solved: report.Solved(), duration: report.Duration}
			if o.solved && j.file.optimum > 0 {
				o.gap = oracle.Gap(report.Solution.WeightsSum, j.file.optimum)
				o.hasGap = true
				r.Metrics.ObserveGap(o.gap)
			}
			r.Metrics.ObserveRun(o.solved, o.duration)
			outcomes[i] = o
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return aggregate(plan, combos, jobs, outcomes, len(groups)), nil
}

// load parses every instance named by the plan's groups. Files shared
// between groups are parsed once, and with the oracle enabled each distinct
// instance is solved exactly once.
func (r *Runner) load(plan Plan, log logrus.FieldLogger) ([][]*loaded, error) {
	byPath := make(map[string]*loaded)
	optima := make(map[uint64]int)
	groups := make([][]*loaded, len(plan.Instances))
	for g, group := range plan.Instances {
		paths, err := group.expand()
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if l, ok := byPath[path]; ok {
				groups[g] = append(groups[g], l)
				continue
			}
			inst, err := instance.Load(path)
			if err != nil {
				return nil, err
			}
			l := &loaded{path: path, inst: inst, optimum: -1}
			if plan.Oracle {
				fp, err := instance.Fingerprint(inst)
				if err != nil {
					return nil, errors.Wrapf(err, "fingerprinting %s", path)
				}
				opt, ok := optima[fp]
				if !ok {
					opt = -1
					sol, err := oracle.Optimum(inst)
					if err != nil {
						return nil, errors.Wrapf(err, "solving %s exactly", path)
					}
					if sol != nil {
						opt = sol.WeightsSum
					} else {
						log.WithField("file", path).Warn("instance is unsatisfiable")
					}
					optima[fp] = opt
				}
				l.optimum = opt
			}
			byPath[path] = l
			groups[g] = append(groups[g], l)
		}
	}
	return groups, nil
}

func aggregate(plan Plan, combos []Params, jobs []job, outcomes []outcome, nGroups int) []Result {
	results := make([]Result, len(combos)*nGroups)
	for c, params := range combos {
		for g := 0; g < nGroups; g++ {
			results[c*nGroups+g] = Result{Params: params, Group: plan.Instances[g].Label}
		}
	}

	total := make([]time.Duration, len(results))
	gaps := make([]float64, len(results))
	gapRuns := make([]int, len(results))
	for i, j := range jobs {
		res := &results[j.cell]
		o := outcomes[i]
		res.Runs++
		total[j.cell] += o.duration
		if o.solved {
			res.Solved++
		}
		if o.hasGap {
			gaps[j.cell] += o.gap
			gapRuns[j.cell]++
		}
	}
	for i := range results {
		res := &results[i]
		if res.Runs > 0 {
			res.SolvedRatio = float64(res.Solved) / float64(res.Runs)
			res.MeanDuration = total[i] / time.Duration(res.Runs)
		}
		if gapRuns[i] > 0 {
			res.MeanGap = gaps[i] / float64(gapRuns[i])
		}
	}
	return results
}
