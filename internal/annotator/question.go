package annotator

import "github.com/grantHarris/chatlog-model-tuner/internal/types"

// IsQuestion reports whether any sentence carries a wh-pronoun (WP) or
// wh-adverb (WRB) tag.
func IsQuestion(sentences []types.Sentence) bool {
	for _, s := range sentences {
		for _, tok := range s {
			if tok.Tag == "WP" || tok.Tag == "WRB" {
				return true
			}
		}
	}
	return false
}

func questionTag(sentences []types.Sentence) types.QuestionTag {
	if IsQuestion(sentences) {
		return types.Question
	}
	return types.Statement
}
