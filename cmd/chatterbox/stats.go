package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(cfgPath *string) *cobra.Command {
	var tf trainFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Train a model and print its statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			model, err := buildModel(cmd, a, &tf)
			if err != nil {
				return err
			}

			stats := model.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "order:           %d\n", model.Order())
			fmt.Fprintf(out, "vocabulary:      %d\n", stats.VocabSize)
			fmt.Fprintf(out, "nodes:           %d\n", stats.NodeCount)
			fmt.Fprintf(out, "prefixes:        %d\n", stats.PrefixCount)
			fmt.Fprintf(out, "arrows:          %d\n", stats.ArrowCount)
			fmt.Fprintf(out, "transitions:     %d\n", stats.TotalFrequency)
			fmt.Fprintf(out, "dead-end nodes:  %d\n", stats.DeadEnds)
			return nil
		},
	}

	tf.register(cmd)

	return cmd
}
