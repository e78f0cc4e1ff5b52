package pipeline_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/grantHarris/chatlog-model-tuner/internal/annotator"
	"github.com/grantHarris/chatlog-model-tuner/internal/classifier"
	"github.com/grantHarris/chatlog-model-tuner/internal/logger"
	"github.com/grantHarris/chatlog-model-tuner/internal/pipeline"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

type recordingAnnotator struct {
	seen   []types.Thread
	failAt int
	err    error
}

func (r *recordingAnnotator) AnnotateThread(ctx context.Context, th types.Thread) ([]types.AnnotatedMessage, error) {
	r.seen = append(r.seen, th)
	if r.err != nil && len(r.seen)-1 == r.failAt {
		return nil, r.err
	}
	out := make([]types.AnnotatedMessage, len(th))
	for i, m := range th {
		out[i] = types.AnnotatedMessage{Message: m, Annotation: types.Annotation{Sentiment: types.Neutral}}
	}
	return out, nil
}

// flatScorer finds no polarity in any text.
type flatScorer struct{}

func (flatScorer) Score(ctx context.Context, text string) (float64, error) {
	return 0, nil
}

type statementTagger struct{}

func (statementTagger) Tag(ctx context.Context, text string) ([]types.Sentence, error) {
	return []types.Sentence{{{Text: text, Tag: "NN"}}}, nil
}

func exported(clock, author, text string) types.Message {
	return types.Message{DateTime: "2023-05-01, " + clock, Author: author, Text: text}
}

var _ = Describe("ParseTimestamp", func() {
	It("accepts the export layout with a narrow no-break space", func() {
		ts, err := pipeline.ParseTimestamp("2023-05-01, 9:07:30\u202fPM", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(ts).To(Equal(time.Date(2023, 5, 1, 21, 7, 30, 0, time.UTC)))
	})

	It("accepts a plain space and 24-hour clocks", func() {
		a, err := pipeline.ParseTimestamp("2023-05-01, 9:07:30 PM", "")
		Expect(err).NotTo(HaveOccurred())
		b, err := pipeline.ParseTimestamp("2023-05-01, 21:07:30", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("tries a configured layout first", func() {
		ts, err := pipeline.ParseTimestamp("01/05/2023 21:07", "02/01/2006 15:04")
		Expect(err).NotTo(HaveOccurred())
		Expect(ts.Month()).To(Equal(time.May))
	})

	It("rejects unknown formats", func() {
		_, err := pipeline.ParseTimestamp("yesterday", "")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Reconstruct", func() {
	It("rejects empty input", func() {
		_, err := pipeline.Reconstruct(nil, pipeline.Options{})
		Expect(err).To(MatchError(pipeline.ErrEmptyInput))
	})

	It("reports the offending record on a bad timestamp", func() {
		_, err := pipeline.Reconstruct([]types.Message{
			exported("9:00:00 AM", "A", "hi"),
			{DateTime: "garbage", Author: "B", Text: "x"},
		}, pipeline.Options{})
		Expect(err).To(MatchError(ContainSubstring("message 1")))
	})

	It("uses separate merge and thread gaps", func() {
		msgs := []types.Message{
			exported("9:00:00 AM", "A", "one"),
			exported("9:03:00 AM", "A", "two"),
			exported("9:20:00 AM", "B", "three"),
		}
		threads, err := pipeline.Reconstruct(msgs, pipeline.Options{
			MergeGap:  time.Minute,
			ThreadGap: 30 * time.Minute,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(threads).To(HaveLen(1))
		Expect(threads[0]).To(HaveLen(3))
	})

	It("keeps the raw date string of the first fragment", func() {
		threads, err := pipeline.Reconstruct([]types.Message{
			exported("9:00:00\u202fAM", "A", "hi"),
			exported("9:01:00\u202fAM", "A", "again"),
		}, pipeline.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(threads[0][0].DateTime).To(Equal("2023-05-01, 9:00:00\u202fAM"))
	})
})

var _ = Describe("Run", func() {
	var log *logger.Logger

	BeforeEach(func() {
		log = logger.Discard()
	})

	It("rejects empty input without calling the annotator", func() {
		ann := &recordingAnnotator{}
		_, err := pipeline.Run(context.Background(), nil, ann, pipeline.Options{}, log)
		Expect(err).To(MatchError(pipeline.ErrEmptyInput))
		Expect(ann.seen).To(BeEmpty())
	})

	It("annotates threads one at a time in order", func() {
		ann := &recordingAnnotator{}
		out, err := pipeline.Run(context.Background(), []types.Message{
			exported("9:00:00 AM", "A", "first"),
			exported("10:00:00 AM", "B", "second"),
			exported("11:00:00 AM", "A", "third"),
		}, ann, pipeline.Options{}, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(3))
		Expect(ann.seen).To(HaveLen(3))
		Expect(ann.seen[2][0].Text).To(Equal("third"))
	})

	It("aborts on the first annotation failure", func() {
		boom := errors.New("boom")
		ann := &recordingAnnotator{failAt: 1, err: boom}
		out, err := pipeline.Run(context.Background(), []types.Message{
			exported("9:00:00 AM", "A", "first"),
			exported("10:00:00 AM", "B", "second"),
			exported("11:00:00 AM", "A", "third"),
		}, ann, pipeline.Options{}, log)
		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("thread 1"))
		Expect(out).To(BeNil())
		Expect(ann.seen).To(HaveLen(2))
	})

	It("merges, threads and annotates a short conversation", func() {
		ann := annotator.New(flatScorer{}, classifier.Uniform{}, statementTagger{}, annotator.Options{
			Workers:              2,
			TaskTimeout:          time.Second,
			RetryAttempts:        1,
			RetryInitialInterval: time.Millisecond,
		}, log)

		out, err := pipeline.Run(context.Background(), []types.Message{
			exported("9:00:00\u202fAM", "A", "hi 🙂"),
			exported("9:02:00\u202fAM", "A", "there"),
			exported("9:40:00\u202fAM", "B", "ok"),
		}, ann, pipeline.Options{}, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(2))

		Expect(out[0]).To(HaveLen(1))
		Expect(out[0][0].Text).To(Equal("hi 🙂 there"))
		Expect(out[0][0].Sentiment).To(Equal(types.Positive))
		Expect(out[0][0].Question).To(Equal(types.Statement))
		Expect(out[0][0].Classification).To(HaveLen(len(annotator.CandidateLabels)))

		Expect(out[1]).To(HaveLen(1))
		Expect(out[1][0].Author).To(Equal("B"))
		Expect(out[1][0].Sentiment).To(Equal(types.Neutral))
	})
})
