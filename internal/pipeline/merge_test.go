package pipeline_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/grantHarris/chatlog-model-tuner/internal/pipeline"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

var base = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func msg(offset time.Duration, author, text string) types.Message {
	return types.Message{Timestamp: base.Add(offset), Author: author, Text: text}
}

func texts(msgs []types.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

var _ = Describe("Merge", func() {
	It("rejects empty input", func() {
		_, err := pipeline.Merge(nil, 10*time.Minute)
		Expect(err).To(MatchError(pipeline.ErrEmptyInput))
	})

	It("fuses three one-minute fragments into one space-joined message", func() {
		merged, err := pipeline.Merge([]types.Message{
			msg(0, "A", "one"),
			msg(time.Minute, "A", "two"),
			msg(2*time.Minute, "A", "three"),
		}, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged).To(HaveLen(1))
		Expect(merged[0].Text).To(Equal("one two three"))
		Expect(merged[0].Timestamp).To(Equal(base))
	})

	It("keeps the earlier timestamp and starts over on author change", func() {
		merged, err := pipeline.Merge([]types.Message{
			msg(0, "A", "hi"),
			msg(2*time.Minute, "A", "there"),
			msg(3*time.Minute, "B", "yo"),
			msg(4*time.Minute, "A", "back"),
		}, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(texts(merged)).To(Equal([]string{"hi there", "yo", "back"}))
		Expect(merged[0].Timestamp).To(Equal(base))
		Expect(merged[2].Timestamp).To(Equal(base.Add(4 * time.Minute)))
	})

	It("does not fuse same-author messages beyond the gap", func() {
		merged, err := pipeline.Merge([]types.Message{
			msg(0, "A", "morning"),
			msg(11*time.Minute, "A", "anyone?"),
		}, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(merged).To(HaveLen(2))
	})

	It("measures the gap from the accumulator's first fragment", func() {
		merged, err := pipeline.Merge([]types.Message{
			msg(0, "A", "a"),
			msg(8*time.Minute, "A", "b"),
			msg(16*time.Minute, "A", "c"),
		}, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(texts(merged)).To(Equal([]string{"a b", "c"}))
	})

	It("is idempotent", func() {
		in := []types.Message{
			msg(0, "A", "a"),
			msg(8*time.Minute, "A", "b"),
			msg(16*time.Minute, "A", "c"),
			msg(17*time.Minute, "B", "d"),
			msg(18*time.Minute, "B", "e"),
			msg(5*time.Minute, "B", "out of order"),
			msg(90*time.Minute, "A", "f"),
		}
		once, err := pipeline.Merge(in, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		twice, err := pipeline.Merge(once, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(twice).To(Equal(once))
	})

	It("does not modify its input", func() {
		in := []types.Message{msg(0, "A", "x"), msg(time.Minute, "A", "y")}
		_, err := pipeline.Merge(in, 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(texts(in)).To(Equal([]string{"x", "y"}))
	})
})
