package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/genetic_maxsat/pkg/instance"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the shape of an instance as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := instance.Load(args[0])
			if err != nil {
				return err
			}
			fp, err := instance.Fingerprint(inst)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				instance.Stats
				Fingerprint string `json:"fingerprint"`
				Satisfiable bool   `json:"satisfiable"`
			}{
				Stats:       instance.ComputeStats(inst),
				Fingerprint: fmt.Sprintf("%016x", fp),
				Satisfiable: instance.Satisfiable(inst),
			})
		},
	}
}
