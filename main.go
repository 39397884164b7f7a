package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug     bool
		logFormat string
	)
	rootCmd := &cobra.Command{
		Use:   "genetic_maxsat",
		Short: "Genetic algorithm for weighted MAX-3SAT",
		Long: `genetic_maxsat searches for satisfying assignments of 3-CNF formulas
that maximize the total weight of the variables set true.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
			switch logFormat {
			case "json":
				log.SetFormatter(&log.JSONFormatter{})
			case "text":
				log.SetFormatter(&log.TextFormatter{})
			default:
				return errors.Errorf("unknown log format %q (text, json)", logFormat)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(
		newSolveCmd(),
		newGenerateCmd(),
		newOptimumCmd(),
		newInspectCmd(),
		newSweepCmd(),
	)
	return rootCmd
}
