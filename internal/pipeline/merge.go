package pipeline

import (
	"time"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// Merge fuses consecutive messages from the same author. The next message is
// folded into the accumulator when |next - acc| <= gap, where acc keeps the
// timestamp of its first fragment. Comparing against that fixed timestamp is
// what makes Merge idempotent.
func Merge(msgs []types.Message, gap time.Duration) ([]types.Message, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyInput
	}

	merged := make([]types.Message, 0, len(msgs))
	current := msgs[0]
	for _, next := range msgs[1:] {
		if next.Author == current.Author && absDiff(next.Timestamp, current.Timestamp) <= gap {
			current.Text += " " + next.Text
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged, nil
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
