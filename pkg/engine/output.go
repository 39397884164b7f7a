package engine

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/wildfunctions/genetic_maxsat/pkg/fitness"
)

// GenerationReport summarizes one generation.
type GenerationReport struct {
	Generation     int     `json:"generation"`
	MinFitness     int     `json:"min_fitness"`
	MaxFitness     int     `json:"max_fitness"`
	AvgFitness     float64 `json:"avg_fitness"`
	Valid          int     `json:"valid"`
	BestWeightsSum int     `json:"best_weights_sum"` // 0 when Valid == 0
}

// Report summarizes an entire run.
type Report struct {
	Config      Config             `json:"config"`
	Seed        int64              `json:"seed"`
	Fingerprint uint64             `json:"instance_fingerprint"`
	Generations []GenerationReport `json:"generations,omitempty"`
	Solution    *fitness.Solution  `json:"solution"`
	Duration    time.Duration      `json:"duration_ns"`
}

// Solved reports whether the run produced a valid individual.
func (r Report) Solved() bool { return r.Solution != nil }

// WriteTextReport writes a generation report in human-readable format.
func WriteTextReport(w io.Writer, r GenerationReport) {
	fmt.Fprintf(w, "Gen %4d | Max: %d | Min: %d | Avg: %.1f | Valid: %d | Best weights: %d\n",
		r.Generation, r.MaxFitness, r.MinFitness, r.AvgFitness, r.Valid, r.BestWeightsSum)
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r Report) {
	for _, g := range r.Generations {
		WriteTextReport(w, g)
	}
	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	fmt.Fprintf(w, "Instance:    %016x\n", r.Fingerprint)
	fmt.Fprintf(w, "Selection:   %s\n", r.Config.Selection)
	fmt.Fprintf(w, "Crossover:   %s\n", r.Config.Crossover)
	fmt.Fprintf(w, "Population:  %d\n", r.Config.Population)
	fmt.Fprintf(w, "Generations: %d\n", r.Config.Generations)
	fmt.Fprintf(w, "Seed:        %d\n", r.Seed)
	fmt.Fprintf(w, "Duration:    %s\n", r.Duration)
	if r.Solution == nil {
		fmt.Fprintln(w, "Solution:    none")
	} else {
		fmt.Fprintf(w, "Solution:    %s\n", r.Solution.Individual)
		fmt.Fprintf(w, "Weights sum: %d\n", r.Solution.WeightsSum)
	}
	fmt.Fprintln(w, "==================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteStatsCSV writes per-generation statistics, one row per generation,
// for plotting.
func WriteStatsCSV(w io.Writer, stats []GenerationReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"generation", "min", "max", "avg", "valid", "best_weights_sum"}); err != nil {
		return err
	}
	for _, g := range stats {
		row := []string{
			strconv.Itoa(g.Generation),
			strconv.Itoa(g.MinFitness),
			strconv.Itoa(g.MaxFitness),
			strconv.FormatFloat(g.AvgFitness, 'f', 2, 64),
			strconv.Itoa(g.Valid),
			strconv.Itoa(g.BestWeightsSum),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
