package sweep

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/genetic_maxsat/pkg/engine"
	"github.com/wildfunctions/genetic_maxsat/pkg/metrics"
	"github.com/wildfunctions/genetic_maxsat/pkg/strategy"
)

const (
	easy  = "3 2 0 1 2 -3 0 -1 -2 3 0 % 10 20 30 #"
	other = "4 3 0 1 2 3 0 -1 4 2 0 -4 -3 1 0 % 5 15 25 35 #"
)

func writeInstances(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func testPlan(dir string) Plan {
	plan := DefaultPlan()
	plan.Base.Population = 10
	plan.Base.Generations = 15
	plan.Instances = []Group{
		{Label: 1.5, Files: []string{filepath.Join(dir, "a_*.txt")}},
		{Label: 2.5, Files: []string{filepath.Join(dir, "b.txt")}},
	}
	plan.Axes = []Axis{{Param: ParamPopulation, Values: []float64{10, 20}}}
	plan.Repeats = 2
	plan.Workers = 2
	plan.Seed = 7
	return plan
}

func newRunner() *Runner {
	log, _ := test.NewNullLogger()
	return &Runner{Log: log}
}

func TestCombinations(t *testing.T) {
	plan := DefaultPlan()
	plan.Axes = []Axis{
		{Param: ParamPopulation, Values: []float64{10, 20}},
		{Param: ParamMutation, Values: []float64{0.1, 0.2, 0.3}},
	}
	combos := plan.Combinations()
	require.Len(t, combos, 6)
	assert.Equal(t, 10, combos[0].Population)
	assert.Equal(t, 0.1, combos[0].Mutation)
	assert.Equal(t, 10, combos[2].Population)
	assert.Equal(t, 0.3, combos[2].Mutation)
	assert.Equal(t, 20, combos[3].Population)
	assert.Equal(t, 0.1, combos[3].Mutation)
	assert.Equal(t, plan.Base.Generations, combos[5].Generations)
}

func TestCombinations_NoAxes(t *testing.T) {
	plan := DefaultPlan()
	assert.Equal(t, []Params{plan.Base}, plan.Combinations())
}

func TestParams_GetSet(t *testing.T) {
	p := DefaultParams()
	for i, name := range ParamNames() {
		require.NoError(t, p.Set(name, float64(i+1)))
		v, err := p.Get(name)
		require.NoError(t, err)
		assert.Equal(t, float64(i+1), v, name)
	}
	assert.Error(t, p.Set("nope", 1))
	_, err := p.Get("nope")
	assert.Error(t, err)
}

func TestParams_Config(t *testing.T) {
	p := DefaultParams()
	p.Population = 30
	p.ClauseBonus = 7
	p.Selection = strategy.SelectRoulette
	cfg := p.Config()
	assert.Equal(t, 30, cfg.Population)
	assert.Equal(t, 7, cfg.Bonuses.SatisfiedClauseBonus)
	assert.Equal(t, strategy.SelectRoulette, cfg.Selection)

	def := engine.DefaultConfig()
	assert.Equal(t, def.Generations, cfg.Generations)
	assert.Equal(t, def.Bonuses.SatisfiedFormulaBonus, cfg.Bonuses.SatisfiedFormulaBonus)
}

func TestPlan_Validate(t *testing.T) {
	valid := func() Plan {
		p := DefaultPlan()
		p.Instances = []Group{{Files: []string{"x"}}}
		return p
	}
	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Plan)
	}{
		{"no groups", func(p *Plan) { p.Instances = nil }},
		{"empty group", func(p *Plan) { p.Instances[0].Files = nil }},
		{"no repeats", func(p *Plan) { p.Repeats = 0 }},
		{"negative workers", func(p *Plan) { p.Workers = -1 }},
		{"negative seed", func(p *Plan) { p.Seed = -3 }},
		{"unknown axis", func(p *Plan) { p.Axes = []Axis{{Param: "speed", Values: []float64{1}}} }},
		{"empty axis", func(p *Plan) { p.Axes = []Axis{{Param: ParamMutation}} }},
		{"repeated axis", func(p *Plan) {
			p.Axes = []Axis{
				{Param: ParamMutation, Values: []float64{0.1}},
				{Param: ParamMutation, Values: []float64{0.2}},
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlan), "got %v", err)
		})
	}
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	body := `
instances:
  - label: 4.5
    files: ["inst/*.txt"]
base:
  generations: 100
  selection: roulette
  crossover_kind: uniform
axes:
  - param: mutation
    values: [0.01, 0.05]
repeats: 3
seed: 11
oracle: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)

	want := DefaultPlan()
	want.Instances = []Group{{Label: 4.5, Files: []string{"inst/*.txt"}}}
	want.Base.Generations = 100
	want.Base.Selection = strategy.SelectRoulette
	want.Base.CrossoverKind = strategy.CrossUniform
	want.Axes = []Axis{{Param: ParamMutation, Values: []float64{0.01, 0.05}}}
	want.Repeats = 3
	want.Seed = 11
	want.Oracle = true
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPlan_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPlan(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("instances: []\nspeed: 3\n"), 0o644))
	_, err = LoadPlan(unknown)
	assert.True(t, errors.Is(err, ErrInvalidPlan), "got %v", err)

	badSelection := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badSelection, []byte("base:\n  selection: lottery\n"), 0o644))
	_, err = LoadPlan(badSelection)
	assert.True(t, errors.Is(err, ErrInvalidPlan), "got %v", err)
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	writeInstances(t, dir, map[string]string{"a_1.txt": easy, "a_2.txt": other, "b.txt": easy})
	plan := testPlan(dir)
	plan.Oracle = true

	rec := metrics.NewRecorder()
	r := newRunner()
	r.Metrics = rec

	results, err := r.Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, results, 4)

	wantOrder := []struct {
		population int
		group      float64
		runs       int
	}{
		{10, 1.5, 4}, {10, 2.5, 2}, {20, 1.5, 4}, {20, 2.5, 2},
	}
	for i, w := range wantOrder {
		res := results[i]
		assert.Equal(t, w.population, res.Params.Population, "cell %d", i)
		assert.Equal(t, w.group, res.Group, "cell %d", i)
		assert.Equal(t, w.runs, res.Runs, "cell %d", i)
		assert.InDelta(t, float64(res.Solved)/float64(res.Runs), res.SolvedRatio, 1e-9)
		assert.GreaterOrEqual(t, res.MeanGap, 0.0)
		assert.LessOrEqual(t, res.MeanGap, 1.0)
		assert.Positive(t, int64(res.MeanDuration))
	}

	families, err := rec.Registry().Gather()
	require.NoError(t, err)
	var runs float64
	for _, mf := range families {
		if mf.GetName() == "genetic_maxsat_runs_total" {
			for _, m := range mf.GetMetric() {
				runs += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 12.0, runs)
}

func TestRunner_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeInstances(t, dir, map[string]string{"a_1.txt": easy, "a_2.txt": other, "b.txt": easy})
	plan := testPlan(dir)

	first, err := newRunner().Run(context.Background(), plan)
	require.NoError(t, err)
	second, err := newRunner().Run(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Solved, second[i].Solved, "cell %d", i)
	}
}

func TestRunner_Errors(t *testing.T) {
	dir := t.TempDir()
	writeInstances(t, dir, map[string]string{"a_1.txt": easy, "b.txt": easy})

	t.Run("no matching files", func(t *testing.T) {
		plan := testPlan(dir)
		plan.Instances[1].Files = []string{filepath.Join(dir, "nothing_*.txt")}
		_, err := newRunner().Run(context.Background(), plan)
		assert.True(t, errors.Is(err, ErrInvalidPlan), "got %v", err)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		plan := testPlan(dir)
		plan.Axes = []Axis{{Param: ParamMutation, Values: []float64{0.1, 2}}}
		_, err := newRunner().Run(context.Background(), plan)
		assert.True(t, errors.Is(err, engine.ErrInvalidConfig), "got %v", err)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newRunner().Run(ctx, testPlan(dir))
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}

func TestPoints(t *testing.T) {
	p1, p2 := DefaultParams(), DefaultParams()
	p1.Mutation, p2.Mutation = 0.01, 0.05
	results := []Result{
		{Params: p1, Group: 3, Runs: 4, Solved: 2, SolvedRatio: 0.5, MeanGap: 0.1},
		{Params: p2, Group: 4, Runs: 4, Solved: 4, SolvedRatio: 1, MeanGap: 0.2},
	}

	pts, err := Points(results, ParamMutation, MeasureSolvedRatio)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0.01, 0.5}, {0.05, 1}}, pts)

	pts, err = Points(results, GroupAxis, MeasureSolved)
	require.NoError(t, err)
	assert.Equal(t, []Point{{3, 2}, {4, 4}}, pts)

	_, err = Points(results, "speed", MeasureSolved)
	assert.Error(t, err)
	_, err = Points(results, GroupAxis, "beauty")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	results := []Result{{Params: DefaultParams(), Group: 4.5, Runs: 2, Solved: 1, SolvedRatio: 0.5}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "4.5", rows[1][0])
	assert.Equal(t, "50", rows[1][1])
	assert.Equal(t, "tournament", rows[1][7])
	assert.Equal(t, "onepoint", rows[1][8])
	assert.Equal(t, "0.5", rows[1][11])
}
