package mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"reddit-digest/internal/models"
)

type MockArchiveClient struct {
	FetchJSONFunc              func(ctx context.Context, url string) (json.RawMessage, error)
	GetSubmissionSearchURLFunc func(query models.SearchQuery, before string, size int) string
	GetCommentSearchURLFunc    func(linkID int64, keyword string, before string, size int) string
}

func (m *MockArchiveClient) FetchJSON(ctx context.Context, url string) (json.RawMessage, error) {
	return m.FetchJSONFunc(ctx, url)
}

func (m *MockArchiveClient) GetSubmissionSearchURL(query models.SearchQuery, before string, size int) string {
	if m.GetSubmissionSearchURLFunc == nil {
		return fmt.Sprintf("submission?q=%s&subreddit=%s&before=%s&size=%d", query.Question, query.SubredditFilter(), before, size)
	}
	return m.GetSubmissionSearchURLFunc(query, before, size)
}

func (m *MockArchiveClient) GetCommentSearchURL(linkID int64, keyword string, before string, size int) string {
	if m.GetCommentSearchURLFunc == nil {
		return fmt.Sprintf("comment?link_id=%d&q=%s&before=%s&size=%d", linkID, keyword, before, size)
	}
	return m.GetCommentSearchURLFunc(linkID, keyword, before, size)
}
