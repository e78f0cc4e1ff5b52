package tagger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

// Prose segments text into sentences and tags each token with its Penn
// Treebank part of speech using the bundled averaged perceptron model.
type Prose struct{}

func New() Prose { return Prose{} }

func (Prose) Tag(ctx context.Context, text string) ([]types.Sentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	var out []types.Sentence
	for _, s := range doc.Sentences() {
		sd, err := prose.NewDocument(s.Text,
			prose.WithSegmentation(false),
			prose.WithExtraction(false))
		if err != nil {
			return nil, fmt.Errorf("tag sentence: %w", err)
		}
		toks := sd.Tokens()
		sent := make(types.Sentence, 0, len(toks))
		for _, t := range toks {
			sent = append(sent, types.Token{Text: t.Text, Tag: t.Tag})
		}
		out = append(out, sent)
	}
	return out, nil
}
