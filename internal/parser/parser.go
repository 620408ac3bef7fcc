// internal/parser/parser.go
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reddit-digest/internal/models"
	"reddit-digest/pkg/utils"
)

// ErrMalformedResponse marks a response that decoded but did not have the
// shape of an archive search page.
var ErrMalformedResponse = errors.New("malformed archive response")

type ArchiveParser struct{}

func NewArchiveParser() *ArchiveParser {
	return &ArchiveParser{}
}

func decodeEnvelope(data json.RawMessage) ([]models.RawItem, error) {
	var envelope struct {
		Data *[]models.RawItem `json:"data"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode JSON: %v", ErrMalformedResponse, err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: missing data array", ErrMalformedResponse)
	}

	return *envelope.Data, nil
}

// cursorOf renders updated_utc as the opaque before value. Numbers are kept
// exactly as the archive wrote them.
func cursorOf(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}

	return "", false
}

func (p *ArchiveParser) ParseSubmissions(ctx context.Context, data json.RawMessage) (models.SubmissionPage, error) {
	items, err := decodeEnvelope(data)
	if err != nil {
		return models.SubmissionPage{}, fmt.Errorf("parse submissions: %w", err)
	}

	page := models.SubmissionPage{}
	for i, item := range items {
		if item.ID == "" {
			return models.SubmissionPage{}, fmt.Errorf("parse submissions: %w: item %d has no id", ErrMalformedResponse, i)
		}

		linkID, err := utils.Base36ToInt(strings.TrimPrefix(item.ID, "t3_"))
		if err != nil {
			return models.SubmissionPage{}, fmt.Errorf("parse submission %d: %w", i, err)
		}

		cursor, ok := cursorOf(item.UpdatedUTC)
		if !ok {
			return models.SubmissionPage{}, fmt.Errorf("parse submissions: %w: item %s has no updated_utc", ErrMalformedResponse, item.ID)
		}

		page.Submissions = append(page.Submissions, models.Submission{
			ID:     item.ID,
			LinkID: linkID,
			Cursor: cursor,
		})
	}

	if n := len(page.Submissions); n > 0 {
		page.NextBefore = page.Submissions[n-1].Cursor
	}

	return page, nil
}

func (p *ArchiveParser) ParseComments(ctx context.Context, data json.RawMessage) (models.CommentPage, error) {
	items, err := decodeEnvelope(data)
	if err != nil {
		return models.CommentPage{}, fmt.Errorf("parse comments: %w", err)
	}

	page := models.CommentPage{}
	for i, item := range items {
		if item.Body == nil {
			return models.CommentPage{}, fmt.Errorf("parse comments: %w: item %d has no body", ErrMalformedResponse, i)
		}

		cursor, ok := cursorOf(item.UpdatedUTC)
		if !ok {
			return models.CommentPage{}, fmt.Errorf("parse comments: %w: item %d has no updated_utc", ErrMalformedResponse, i)
		}

		page.Comments = append(page.Comments, models.Comment{
			Body:   *item.Body,
			Cursor: cursor,
		})
	}

	if n := len(page.Comments); n > 0 {
		page.NextBefore = page.Comments[n-1].Cursor
	}

	return page, nil
}
