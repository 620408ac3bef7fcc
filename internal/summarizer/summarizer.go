// Package summarizer turns the aggregated comment text into a short
// extractive summary.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"reddit-digest/internal/config"
)

// Summarizer picks the sentenceCount most salient sentences of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, sentenceCount int) ([]string, error)
}

func New(engine string) (Summarizer, error) {
	profile, err := NewEnglishProfile()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(engine) {
	case config.EngineLexRank, "":
		return &LexRankSummarizer{profile: profile}, nil
	case config.EngineMMR:
		return &MMRSummarizer{profile: profile, maxCharacters: 1 << 20}, nil
	default:
		return nil, fmt.Errorf("unknown summarizer engine %q", engine)
	}
}

// shortcut handles inputs that need no ranking: blank text yields nothing
// and text with no more than sentenceCount sentences is returned whole.
func shortcut(p *EnglishProfile, text string, sentenceCount int) ([]string, bool) {
	if strings.TrimSpace(text) == "" || sentenceCount <= 0 {
		return nil, true
	}

	sentences := p.Sentences(text)
	if len(sentences) <= sentenceCount {
		return sentences, true
	}

	return nil, false
}
