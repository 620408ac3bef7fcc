// internal/parser/interface.go
package parser

import (
	"context"
	"encoding/json"

	"reddit-digest/internal/models"
)

type ParserInterface interface {
	ParseSubmissions(ctx context.Context, data json.RawMessage) (models.SubmissionPage, error)
	ParseComments(ctx context.Context, data json.RawMessage) (models.CommentPage, error)
}
