package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/genetic_maxsat/pkg/metrics"
	"github.com/wildfunctions/genetic_maxsat/pkg/sweep"
)

func newSweepCmd() *cobra.Command {
	var (
		csvPath     string
		metricsPath string
		x, y        string
	)
	cmd := &cobra.Command{
		Use:   "sweep PLAN",
		Short: "Run a parameter sweep described by a YAML plan",
		Long: `Sweep solves every instance group of the plan under every combination
of the plan's axes and prints one "x y" line per cell.

        $ genetic_maxsat sweep plan.yaml --x population --y solved_ratio --csv results.csv
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := sweep.LoadPlan(args[0])
			if err != nil {
				return err
			}
			if x == "" {
				x = sweep.GroupAxis
				if len(plan.Axes) > 0 {
					x = plan.Axes[0].Param
				}
			}

			runner := &sweep.Runner{Log: log.StandardLogger()}
			if metricsPath != "" {
				runner.Metrics = metrics.NewRecorder()
			}
			results, err := runner.Run(cmd.Context(), plan)
			if err != nil {
				return err
			}

			points, err := sweep.Points(results, x, y)
			if err != nil {
				return err
			}
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%g %g\n", p.X, p.Y)
			}

			if csvPath != "" {
				if err := writeResults(csvPath, results); err != nil {
					return err
				}
			}
			return runner.Metrics.WriteFile(metricsPath)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the aggregated results to this CSV file")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "write prometheus metrics to this file")
	cmd.Flags().StringVar(&x, "x", "", "x coordinate: a parameter name or \"group\" (default: first axis)")
	cmd.Flags().StringVar(&y, "y", sweep.MeasureSolvedRatio, "y coordinate (solved, solved_ratio, mean_duration, mean_gap)")
	return cmd
}

func writeResults(path string, results []sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := sweep.WriteCSV(f, results); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
