package pipeline

import (
	"time"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// Thread splits msgs into maximal runs where each message is within gap of the
// one before it. Out-of-order timestamps are compared by magnitude.
func Thread(msgs []types.Message, gap time.Duration) []types.Thread {
	if len(msgs) == 0 {
		return nil
	}

	var threads []types.Thread
	current := types.Thread{msgs[0]}
	for _, next := range msgs[1:] {
		last := current[len(current)-1]
		if absDiff(next.Timestamp, last.Timestamp) <= gap {
			current = append(current, next)
			continue
		}
		threads = append(threads, current)
		current = types.Thread{next}
	}
	return append(threads, current)
}
