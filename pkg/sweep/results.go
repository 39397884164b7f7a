package sweep

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Measures a Point may report on its y axis.
const (
	MeasureSolved       = "solved"
	MeasureSolvedRatio  = "solved_ratio"
	MeasureMeanDuration = "mean_duration"
	MeasureMeanGap      = "mean_gap"
)

// Point is one (x, y) pair of a plotted series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Points projects results onto a series. x is a parameter name or GroupAxis;
// y is one of the Measure constants. Durations are in seconds.
func Points(results []Result, x, y string) ([]Point, error) {
	points := make([]Point, 0, len(results))
	for _, res := range results {
		var p Point
		if x == GroupAxis {
			p.X = res.Group
		} else {
			v, err := res.Params.Get(x)
			if err != nil {
				return nil, err
			}
			p.X = v
		}
		switch y {
		case MeasureSolved:
			p.Y = float64(res.Solved)
		case MeasureSolvedRatio:
			p.Y = res.SolvedRatio
		case MeasureMeanDuration:
			p.Y = res.MeanDuration.Seconds()
		case MeasureMeanGap:
			p.Y = res.MeanGap
		default:
			return nil, errors.Errorf("unknown measure %q", y)
		}
		points = append(points, p)
	}
	return points, nil
}

var csvHeader = []string{
	GroupAxis,
	ParamPopulation, ParamGenerations, ParamCrossover, ParamMutation,
	ParamClauseBonus, ParamFormulaBonus,
	"selection", "crossover_kind",
	"runs", MeasureSolved, MeasureSolvedRatio, "mean_duration_seconds", MeasureMeanGap,
}

// WriteCSV writes one row per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, res := range results {
		p := res.Params
		row := []string{
			f(res.Group),
			strconv.Itoa(p.Population),
			strconv.Itoa(p.Generations),
			f(p.Crossover),
			f(p.Mutation),
			strconv.Itoa(p.ClauseBonus),
			strconv.Itoa(p.FormulaBonus),
			p.Selection.String(),
			p.CrossoverKind.String(),
			strconv.Itoa(res.Runs),
			strconv.Itoa(res.Solved),
			f(res.SolvedRatio),
			strconv.FormatFloat(res.MeanDuration.Seconds(), 'f', 6, 64),
			f(res.MeanGap),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
