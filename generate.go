package main

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
)

func newGenerateCmd() *cobra.Command {
	opts := instance.DefaultGenerateOptions()
	var (
		count int
		out   string
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write random weighted 3-SAT instances",
		Long: `Generate writes random weighted 3-CNF instances. The variable count
is the clause count divided by the ratio; weights are uniform in [1, 100].

        $ genetic_maxsat generate --clauses 100 --ratio 4.5 --count 10 --out data/
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			paths, err := instance.GenerateFiles(rng, opts, count, out)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"count": len(paths),
				"dir":   out,
				"seed":  seed,
			}).Info("generated instances")
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.NumClauses, "clauses", opts.NumClauses, "clauses per instance")
	cmd.Flags().Float64Var(&opts.Ratio, "ratio", opts.Ratio, "clauses per variable")
	cmd.Flags().BoolVar(&opts.Satisfiable, "satisfiable", opts.Satisfiable, "only keep satisfiable formulas")
	cmd.Flags().IntVar(&opts.MaxAttempts, "attempts", opts.MaxAttempts, "draws per instance before giving up on --satisfiable")
	cmd.Flags().IntVar(&count, "count", 1, "number of instances")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = random)")
	return cmd
}
