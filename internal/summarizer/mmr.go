package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ramenjuniti/lexrankmmr"
)

// MMRSummarizer ranks with LexRank and then applies maximal marginal
// relevance so near-duplicate comments do not crowd the summary.
type MMRSummarizer struct {
	profile       *EnglishProfile
	maxCharacters int
}

func (s *MMRSummarizer) Summarize(ctx context.Context, text string, sentenceCount int) ([]string, error) {
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

	data, err := lexrankmmr.New(
		lexrankmmr.MaxLines(sentenceCount),
		lexrankmmr.MaxCharacters(s.maxCharacters),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lexrankmmr: %w", err)
	}

	// lexrankmmr splits sentences on '。' and drops the trailing empty piece.
	if err := data.Summarize(strings.Join(idx.lines, "。") + "。"); err != nil {
		return nil, fmt.Errorf("mmr summarize: %w", err)
	}

	ranked := make([]string, 0, len(data.LineLimitedSummary))
	for _, score := range data.LineLimitedSummary {
		ranked = append(ranked, score.Sentence)
	}

	return idx.resolve(ranked), nil
}
