package annotator

import (
	"strings"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

type emoticon struct {
	symbol    string
	sentiment types.Sentiment
}

// emoticonTable holds one entry per symbol, in lookup order. Symbols that
// carry both a polarity and a more specific affect map to the specific one.
// When two sentiments tie on count, the one whose first matching entry comes
// earlier in this table wins. That tie-break is arbitrary but fixed.
var emoticonTable = []emoticon{
	{"🙂", types.Positive},
	{"😊", types.Positive},
	{"😀", types.Positive},
	{"😁", types.Positive},
	{"😂", types.Positive},
	{"🤣", types.Positive},
	{"😍", types.Love},
	{"😘", types.Love},
	{"😚", types.Love},
	{"😋", types.Positive},
	{"😜", types.Positive},
	{"😛", types.Positive},
	{"🤪", types.Positive},
	{"😎", types.Positive},
	{"🥳", types.Positive},
	{"😇", types.Positive},
	{"🤤", types.Positive},
	{"😔", types.Negative},
	{"😞", types.Negative},
	{"😟", types.Negative},
	{"😠", types.Negative},
	{"😡", types.Negative},
	{"🤬", types.Negative},
	{"😢", types.Negative},
	{"😭", types.Negative},
	{"😤", types.Negative},
	{"😩", types.Negative},
	{"😫", types.Negative},
	{"😒", types.Skeptical},
	{"🙁", types.Negative},
	{"😕", types.Confused},
	{"😖", types.Confused},
	{"😨", types.Fear},
	{"😰", types.Fear},
	{"😥", types.Negative},
	{"🤯", types.Surprise},
	{"😐", types.Neutral},
	{"😑", types.Neutral},
	{"😶", types.Neutral},
	{"🤔", types.Neutral},
	{"🤐", types.Neutral},
	{"😬", types.Neutral},
	{"🙄", types.Skeptical},
	{"😯", types.Neutral},
	{"😦", types.Neutral},
	{"😧", types.Neutral},
	{"😲", types.Surprise},
	{"😳", types.Surprise},
	{"🤨", types.Confused},
	{"❤️", types.Love},
	{"💕", types.Love},
	{"💖", types.Love},
	{"💗", types.Love},
	{"💓", types.Love},
	{"💞", types.Love},
	{"💘", types.Love},
	{"💝", types.Love},
	{"😱", types.Fear},
	{"🤢", types.Sick},
	{"🤮", types.Sick},
	{"😴", types.Tired},
	{"🤒", types.Sick},
	{"🤕", types.Sick},
	{"😵", types.Dizzy},
	{"🥴", types.Woozy},
	{"🤠", types.Playful},
	{"😷", types.Sick},
}

// EmoticonSentiment returns the sentiment with the most emoticon occurrences
// in text, or false if no known emoticon is present.
func EmoticonSentiment(text string) (types.Sentiment, bool) {
	counts := make(map[types.Sentiment]int)
	var order []types.Sentiment

	for _, e := range emoticonTable {
		n := strings.Count(text, e.symbol)
		if n == 0 {
			continue
		}
		if _, seen := counts[e.sentiment]; !seen {
			order = append(order, e.sentiment)
		}
		counts[e.sentiment] += n
	}
	if len(order) == 0 {
		return "", false
	}

	best := order[0]
	for _, s := range order[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best, true
}

// PolarityLabel maps a compound lexical score in [-1, 1] to a polarity.
func PolarityLabel(score float64) types.Sentiment {
	switch {
	case score >= 0.05:
		return types.Positive
	case score <= -0.05:
		return types.Negative
	default:
		return types.Neutral
	}
}
