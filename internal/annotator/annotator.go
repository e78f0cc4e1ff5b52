package annotator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// SentimentScorer returns a compound polarity score in [-1, 1].
type SentimentScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Classifier scores text against a set of candidate labels.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (map[string]float64, error)
}

// Tagger splits text into sentences of Penn Treebank tagged tokens.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]types.Sentence, error)
}

type Options struct {
	Workers              int
	TaskTimeout          time.Duration
	RetryAttempts        int
	RetryInitialInterval time.Duration
	Labels               []string
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = 60 * time.Second
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = 3
	}
	if o.RetryInitialInterval <= 0 {
		o.RetryInitialInterval = 500 * time.Millisecond
	}
	if len(o.Labels) == 0 {
		o.Labels = CandidateLabels
	}
	return o
}

// AnnotationError reports a message whose annotation failed after all retries.
type AnnotationError struct {
	Index    int
	Author   string
	Attempts int
	Err      error
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("annotate message %d (author %q) failed after %d attempt(s): %v",
		e.Index, e.Author, e.Attempts, e.Err)
}

func (e *AnnotationError) Unwrap() error { return e.Err }

type Annotator struct {
	scorer SentimentScorer
	cls    Classifier
	tagger Tagger
	opts   Options
	log    *logger.Logger
}

func New(scorer SentimentScorer, cls Classifier, tagger Tagger, opts Options, log *logger.Logger) *Annotator {
	if log == nil {
		log = logger.Discard()
	}
	return &Annotator{
		scorer: scorer,
		cls:    cls,
		tagger: tagger,
		opts:   opts.withDefaults(),
		log:    log.WithComponent("annotator"),
	}
}

// AnnotateThread annotates every message of thread on a bounded pool and
// returns the results in input order. The first message that exhausts its
// retries cancels the remaining work and is returned as an *AnnotationError.
func (a *Annotator) AnnotateThread(ctx context.Context, thread types.Thread) ([]types.AnnotatedMessage, error) {
	out := make([]types.AnnotatedMessage, len(thread))
	if len(thread) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)

	for i, m := range thread {
		// stop scheduling once a task has failed
		if gctx.Err() != nil {
			break
		}
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ann, attempts, err := a.annotateWithRetry(gctx, m)
			if err != nil {
				return &AnnotationError{Index: i, Author: m.Author, Attempts: attempts, Err: err}
			}
			out[i] = types.AnnotatedMessage{Message: m, Annotation: ann}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.log.WithError(err).Error("thread annotation aborted")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Annotator) annotateWithRetry(ctx context.Context, m types.Message) (types.Annotation, int, error) {
	var (
		result   types.Annotation
		attempts int
	)

	op := func() error {
		attempts++
		tctx, cancel := context.WithTimeout(ctx, a.opts.TaskTimeout)
		defer cancel()

		ann, err := a.annotate(tctx, m.Text)
		if err != nil {
			a.log.WithError(err).WithField("attempt", attempts).Warn("annotation attempt failed")
			return err
		}
		result = ann
		return nil
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = a.opts.RetryInitialInterval
	exp.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(a.opts.RetryAttempts-1)), ctx)

	if err := backoff.Retry(op, b); err != nil {
		return types.Annotation{}, attempts, err
	}
	return result, attempts, nil
}

func (a *Annotator) annotate(ctx context.Context, text string) (types.Annotation, error) {
	sentiment, err := a.sentiment(ctx, text)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("sentiment: %w", err)
	}

	scores, err := a.cls.Classify(ctx, text, a.opts.Labels)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("classify: %w", err)
	}

	sentences, err := a.tagger.Tag(ctx, text)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("tag: %w", err)
	}

	return types.Annotation{
		Sentiment:      sentiment,
		Classification: scores,
		Question:       questionTag(sentences),
	}, nil
}

// sentiment prefers emoticons and falls back to the lexical compound score.
func (a *Annotator) sentiment(ctx context.Context, text string) (types.Sentiment, error) {
	if s, ok := EmoticonSentiment(text); ok {
		return s, nil
	}
	score, err := a.scorer.Score(ctx, text)
	if err != nil {
		return "", err
	}
	return PolarityLabel(score), nil
}
