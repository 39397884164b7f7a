package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/genetic_maxsat/pkg/engine"
	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
	"github.com/wildfunctions/genetic_maxsat/pkg/oracle"
)

func newSolveCmd() *cobra.Command {
	cfg := engine.DefaultConfig()
	var (
		format    string
		statsPath string
		withOpt   bool
	)
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Run the genetic algorithm on an instance file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return errors.Errorf("unknown output format %q (text, json)", format)
			}
			inst, err := instance.Load(args[0])
			if err != nil {
				return err
			}
			if cfg.Verbose {
				log.SetLevel(log.DebugLevel)
			}
			cfg.RecordStats = statsPath != ""
			cfg.Logger = log.WithField("file", args[0])

			e, err := engine.New(inst, cfg)
			if err != nil {
				return err
			}
			report := e.Run()

			if statsPath != "" {
				if err := writeStats(statsPath, report.Generations); err != nil {
					return err
				}
				// Already in the CSV; keep the report short.
				report.Generations = nil
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				if err := engine.WriteJSONFinal(out, report); err != nil {
					return err
				}
			} else {
				engine.WriteTextFinal(out, report)
			}

			if withOpt {
				opt, err := oracle.Optimum(inst)
				if err != nil {
					return err
				}
				switch {
				case opt == nil:
					fmt.Fprintln(out, "Optimum:     unsatisfiable")
				case report.Solution == nil:
					fmt.Fprintf(out, "Optimum:     %d\n", opt.WeightsSum)
				default:
					fmt.Fprintf(out, "Optimum:     %d (gap %.2f%%)\n", opt.WeightsSum,
						100*oracle.Gap(report.Solution.WeightsSum, opt.WeightsSum))
				}
			}
			return nil
		},
	}

	bindEngineFlags(cmd.Flags(), &cfg)
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	cmd.Flags().StringVar(&statsPath, "stats", "", "write per-generation statistics to this CSV file")
	cmd.Flags().BoolVar(&withOpt, "optimum", false, "also compute the exact optimum and report the gap")
	return cmd
}

func writeStats(path string, stats []engine.GenerationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := engine.WriteStatsCSV(f, stats); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
