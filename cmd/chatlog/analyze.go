package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grantHarris/chatlog-model-tuner/internal/aggregator"
	"github.com/grantHarris/chatlog-model-tuner/internal/annotator"
	"github.com/grantHarris/chatlog-model-tuner/internal/classifier"
	"github.com/grantHarris/chatlog-model-tuner/internal/config"
	"github.com/grantHarris/chatlog-model-tuner/internal/dataset"
	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
	"github.com/grantHarris/chatlog-model-tuner/internal/pipeline"
	"github.com/grantHarris/chatlog-model-tuner/internal/sentiment"
	"github.com/grantHarris/chatlog-model-tuner/internal/tagger"
)

func analyzeCmd() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "analyze <messages.json> <threads.json>",
		Short: "Merge, thread and annotate normalized messages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, "analyze")
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			in, out := args[0], args[1]

			msgs, err := dataset.LoadMessages(in)
			if err != nil {
				return fmt.Errorf("load %s: %w", in, err)
			}

			threads, err := pipeline.Run(cmd.Context(), msgs, newAnnotator(cfg, log), pipeline.Options{
				MergeGap:        cfg.MergeGap.Duration,
				ThreadGap:       cfg.ThreadGap.Duration,
				TimestampLayout: cfg.TimestampLayout,
			}, log)
			if err != nil {
				return err
			}

			if err := dataset.WriteJSON(out, threads); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			ins := aggregator.Aggregate(threads)
			log.WithFields(map[string]interface{}{
				"threads":        ins.Threads,
				"messages":       ins.Messages,
				"questions":      ins.Questions,
				"sentiments":     ins.SentimentCounts,
				"dominant_label": ins.DominantLabel,
				"output":         out,
			}).Info("threaded chat data written")

			if xlsxPath != "" {
				if err := dataset.ExportWorkbook(xlsxPath, threads, ins); err != nil {
					return fmt.Errorf("export %s: %w", xlsxPath, err)
				}
				log.WithField("workbook", xlsxPath).Info("workbook exported")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also export an XLSX report to this path")
	return cmd
}

// newAnnotator wires the concrete capabilities from config.
func newAnnotator(cfg config.Config, log *logger.Logger) *annotator.Annotator {
	var cls annotator.Classifier
	if cfg.UseMockClassifier {
		log.Info("mock classifier mode ON - every label scores uniformly")
		cls = classifier.Uniform{}
	} else {
		cls = classifier.NewHTTP(cfg.ClassifierURL, cfg.ClassifierToken, cfg.ClassifierTimeout.Duration, log)
	}

	return annotator.New(sentiment.NewVader(), cls, tagger.New(), annotator.Options{
		Workers:              cfg.Workers,
		TaskTimeout:          cfg.TaskTimeout.Duration,
		RetryAttempts:        cfg.RetryAttempts,
		RetryInitialInterval: cfg.RetryInitialInterval.Duration,
		Labels:               annotator.CandidateLabels,
	}, log)
}
