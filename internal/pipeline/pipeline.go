package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// ErrEmptyInput is returned when there are no records to process.
var ErrEmptyInput = errors.New("no messages to process")

const DefaultGap = 10 * time.Minute

// ThreadAnnotator annotates every message of one thread.
type ThreadAnnotator interface {
	AnnotateThread(ctx context.Context, thread types.Thread) ([]types.AnnotatedMessage, error)
}

type Options struct {
	MergeGap        time.Duration
	ThreadGap       time.Duration
	TimestampLayout string
}

func (o Options) withDefaults() Options {
	if o.MergeGap <= 0 {
		o.MergeGap = DefaultGap
	}
	if o.ThreadGap <= 0 {
		o.ThreadGap = DefaultGap
	}
	return o
}

// Reconstruct parses timestamps, merges fragments and splits the result into threads.
func Reconstruct(msgs []types.Message, opts Options) ([]types.Thread, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyInput
	}
	opts = opts.withDefaults()

	parsed, err := ParseTimestamps(msgs, opts.TimestampLayout)
	if err != nil {
		return nil, err
	}
	merged, err := Merge(parsed, opts.MergeGap)
	if err != nil {
		return nil, err
	}
	return Thread(merged, opts.ThreadGap), nil
}

// Run is the analyze driver: reconstruct threads, then annotate them one at a
// time in order. Any annotation failure aborts the run.
func Run(ctx context.Context, msgs []types.Message, ann ThreadAnnotator, opts Options, log *logger.Logger) ([][]types.AnnotatedMessage, error) {
	log = log.WithComponent("pipeline")

	threads, err := Reconstruct(msgs, opts)
	if err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{
		"records": len(msgs),
		"threads": len(threads),
	}).Info("conversation reconstructed")

	out := make([][]types.AnnotatedMessage, 0, len(threads))
	for i, th := range threads {
		start := time.Now()
		annotated, err := ann.AnnotateThread(ctx, th)
		if err != nil {
			return nil, fmt.Errorf("annotate thread %d: %w", i, err)
		}
		out = append(out, annotated)
		log.WithFields(map[string]interface{}{
			"thread":      i,
			"messages":    len(th),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("thread annotated")
	}
	return out, nil
}
