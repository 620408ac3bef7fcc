package summarizer

import (
	"context"
	"fmt"

	"github.com/didasy/tldr"
)

// LexRankSummarizer ranks sentences with a LexRank graph over their stemmed
// content words.
type LexRankSummarizer struct {
	profile *EnglishProfile
}

func (s *LexRankSummarizer) Summarize(ctx context.Context, text string, sentenceCount int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sentences, ok := shortcut(s.profile, text, sentenceCount); ok {
		return sentences, nil
	}

	idx := buildTermIndex(s.profile, s.profile.Sentences(text))
	if len(idx.sentences) <= sentenceCount {
		return idx.sentences, nil
	}

	// With OriginalSentences preset tldr skips its own splitting and
	// returns the chosen sentences verbatim, in text order.
	bag := tldr.New()
	bag.OriginalSentences = idx.sentences
	bag.SetWordTokenizer(s.profile.Terms)
	bag.SetDictionary(idx.dictionary())

	ranked, err := bag.Summarize("", sentenceCount)
	if err != nil {
		return nil, fmt.Errorf("lexrank summarize: %w", err)
	}

	return ranked, nil
}
