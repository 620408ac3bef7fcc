package mocks

import "context"

// MockSummarizer records every call it receives.
type MockSummarizer struct {
	SummarizeFunc func(ctx context.Context, text string, sentenceCount int) ([]string, error)
	Calls         []SummarizeCall
}

type SummarizeCall struct {
	Text          string
	SentenceCount int
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string, sentenceCount int) ([]string, error) {
	m.Calls = append(m.Calls, SummarizeCall{Text: text, SentenceCount: sentenceCount})
	if m.SummarizeFunc == nil {
		return nil, nil
	}
	return m.SummarizeFunc(ctx, text, sentenceCount)
}
