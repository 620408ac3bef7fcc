package mocks

import (
	"context"
	"encoding/json"

	"reddit-digest/internal/models"
)

type MockParser struct {
	ParseSubmissionsFunc func(ctx context.Context, data json.RawMessage) (models.SubmissionPage, error)
	ParseCommentsFunc    func(ctx context.Context, data json.RawMessage) (models.CommentPage, error)
}

func (m *MockParser) ParseSubmissions(ctx context.Context, data json.RawMessage) (models.SubmissionPage, error) {
	return m.ParseSubmissionsFunc(ctx, data)
}

func (m *MockParser) ParseComments(ctx context.Context, data json.RawMessage) (models.CommentPage, error) {
	return m.ParseCommentsFunc(ctx, data)
}
