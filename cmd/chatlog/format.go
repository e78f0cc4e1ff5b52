package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grantHarris/chatlog-model-tuner/internal/dataset"
	"github.com/grantHarris/chatlog-model-tuner/internal/training"
)

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <threads.json> <output-dir>",
		Short: "Write per-participant Input/Output training pairs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd, "format")
			if err != nil {
				return err
			}
			in, dir := args[0], args[1]

			threads, err := dataset.LoadThreads(in)
			if err != nil {
				return fmt.Errorf("load %s: %w", in, err)
			}

			counts, err := training.WriteFiles(dir, training.Pairs(threads))
			if err != nil {
				return err
			}
			for file, n := range counts {
				log.WithField("file", file).WithField("pairs", n).Info("training data written")
			}
			return nil
		},
	}
}
