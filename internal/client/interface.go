// internal/client/interface.go
package client

import (
	"context"
	"encoding/json"

	"reddit-digest/internal/models"
)

type ArchiveClientInterface interface {
	FetchJSON(ctx context.Context, url string) (json.RawMessage, error)
	GetSubmissionSearchURL(query models.SearchQuery, before string, size int) string
	GetCommentSearchURL(linkID int64, keyword string, before string, size int) string
}
