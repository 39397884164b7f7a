package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
	"github.com/wildfunctions/genetic_maxsat/pkg/oracle"
)

func newOptimumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimum FILE",
		Short: "Compute the exact optimum of an instance with a MaxSAT solver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := instance.Load(args[0])
			if err != nil {
				return err
			}
			sol, err := oracle.Optimum(inst)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sol == nil {
				fmt.Fprintln(out, "unsatisfiable")
				return nil
			}
			fmt.Fprintf(out, "Solution:    %s\n", sol.Individual)
			fmt.Fprintf(out, "Weights sum: %d\n", sol.WeightsSum)
			return nil
		},
	}
}
