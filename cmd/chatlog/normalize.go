package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grantHarris/chatlog-model-tuner/internal/dataset"
	"github.com/grantHarris/chatlog-model-tuner/internal/transcript"
)

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <transcript.txt|URL> <output.json>",
		Short: "Parse a raw chat export into a JSON array of messages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd, "normalize")
			if err != nil {
				return err
			}
			in, out := args[0], args[1]

			msgs, err := transcript.Load(cmd.Context(), in, log)
			if err != nil {
				return fmt.Errorf("parse %s: %w", in, err)
			}
			if err := dataset.WriteJSON(out, msgs); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			log.WithField("messages", len(msgs)).WithField("output", out).Info("transcript normalized")
			return nil
		},
	}
}
