// Package sentiment scores message polarity with VADER.
package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// Vader returns the VADER compound score, a normalized polarity in [-1, 1].
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Score(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return v.analyzer.PolarityScores(text).Compound, nil
}
