package pipeline_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/grantHarris/chatlog-model-tuner/internal/pipeline"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

var _ = Describe("Thread", func() {
	const gap = 10 * time.Minute

	It("returns nothing for empty input", func() {
		Expect(pipeline.Thread(nil, gap)).To(BeEmpty())
	})

	It("splits wherever consecutive messages are further apart than the gap", func() {
		msgs := []types.Message{
			msg(0, "A", "1"),
			msg(5*time.Minute, "B", "2"),
			msg(15*time.Minute, "A", "3"),
			msg(26*time.Minute, "B", "4"),
			msg(36*time.Minute, "A", "5"),
		}
		threads := pipeline.Thread(msgs, gap)
		Expect(threads).To(HaveLen(2))
		Expect(texts(threads[0])).To(Equal([]string{"1", "2", "3"}))
		Expect(texts(threads[1])).To(Equal([]string{"4", "5"}))
	})

	It("treats a gap of exactly the threshold as continuous", func() {
		threads := pipeline.Thread([]types.Message{msg(0, "A", "1"), msg(gap, "B", "2")}, gap)
		Expect(threads).To(HaveLen(1))
	})

	It("tolerates out-of-order timestamps by magnitude", func() {
		msgs := []types.Message{
			msg(30*time.Minute, "A", "late"),
			msg(25*time.Minute, "B", "earlier"),
			msg(0, "C", "much earlier"),
		}
		threads := pipeline.Thread(msgs, gap)
		Expect(threads).To(HaveLen(2))
		Expect(texts(threads[0])).To(Equal([]string{"late", "earlier"}))
	})

	It("holds the gap invariants and loses no message", func() {
		offsets := []time.Duration{0, 3, 4, 20, 21, 22, 40, 41, 60, 75, 76}
		var msgs []types.Message
		for i, o := range offsets {
			msgs = append(msgs, msg(o*time.Minute, []string{"A", "B"}[i%2], string(rune('a'+i))))
		}
		threads := pipeline.Thread(msgs, gap)

		var flat []types.Message
		for _, th := range threads {
			Expect(th).NotTo(BeEmpty())
			for i := 1; i < len(th); i++ {
				d := th[i].Timestamp.Sub(th[i-1].Timestamp)
				Expect(d.Abs()).To(BeNumerically("<=", gap))
			}
			flat = append(flat, th...)
		}
		Expect(flat).To(Equal(msgs))

		for i := 1; i < len(threads); i++ {
			prev := threads[i-1][len(threads[i-1])-1]
			Expect(threads[i][0].Timestamp.Sub(prev.Timestamp).Abs()).To(BeNumerically(">", gap))
		}
	})
})
