package aggregator

import (
	"sort"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// Insight summarizes an annotated conversation.
type Insight struct {
	Threads         int            `json:"threads"`
	Messages        int            `json:"messages"`
	SentimentCounts map[string]int `json:"sentiment_counts"`
	Questions       int            `json:"questions"`
	ByAuthor        map[string]int `json:"by_author"`
	// DominantLabel has the highest mean classification score across messages.
	DominantLabel      string  `json:"dominant_label"`
	DominantLabelScore float64 `json:"dominant_label_score"`
}

func Aggregate(threads [][]types.AnnotatedMessage) Insight {
	ins := Insight{
		Threads:         len(threads),
		SentimentCounts: map[string]int{},
		ByAuthor:        map[string]int{},
	}
	sums := map[string]float64{}
	for _, th := range threads {
		for _, m := range th {
			ins.Messages++
			ins.SentimentCounts[string(m.Sentiment)]++
			ins.ByAuthor[m.Author]++
			if m.Question == types.Question {
				ins.Questions++
			}
			for label, score := range m.Classification {
				sums[label] += score
			}
		}
	}
	if ins.Messages > 0 {
		means := make(map[string]float64, len(sums))
		for label, s := range sums {
			means[label] = s / float64(ins.Messages)
		}
		ins.DominantLabel, ins.DominantLabelScore = TopLabel(means)
	}
	return ins
}

// TopLabel returns the highest scoring label. Ties go to the alphabetically
// first label so results are stable across runs.
func TopLabel(scores map[string]float64) (string, float64) {
	labels := make([]string, 0, len(scores))
	for l := range scores {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	best, bestScore := "", 0.0
	for _, l := range labels {
		if best == "" || scores[l] > bestScore {
			best, bestScore = l, scores[l]
		}
	}
	return best, bestScore
}
