package parser_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"reddit-digest/internal/parser"
	"reddit-digest/pkg/utils"
)

func TestParseSubmissions(t *testing.T) {
	p := parser.NewArchiveParser()
	ctx := context.Background()

	data := []byte(`{
		"data": [
			{"id": "abc", "title": "First", "updated_utc": 1620000500},
			{"id": "1", "title": "Second", "updated_utc": 1620000000}
		]
	}`)

	page, err := p.ParseSubmissions(ctx, json.RawMessage(data))
	if err != nil {
		t.Fatalf("Failed to parse submissions: %v", err)
	}

	if len(page.Submissions) != 2 {
		t.Fatalf("Expected 2 submissions, got %d", len(page.Submissions))
	}

	if page.Submissions[0].LinkID != 13368 {
		t.Errorf("Expected link id 13368, got %d", page.Submissions[0].LinkID)
	}

	if page.Submissions[1].ID != "1" || page.Submissions[1].LinkID != 1 {
		t.Errorf("Unexpected second submission %+v", page.Submissions[1])
	}

	if page.NextBefore != "1620000000" {
		t.Errorf("Expected cursor '1620000000', got '%s'", page.NextBefore)
	}
}

func TestParseSubmissionsEmptyPage(t *testing.T) {
	page, err := parser.NewArchiveParser().ParseSubmissions(context.Background(), json.RawMessage(`{"data":[]}`))
	if err != nil {
		t.Fatalf("Failed to parse empty page: %v", err)
	}
	if len(page.Submissions) != 0 || page.NextBefore != "" {
		t.Errorf("Expected empty page, got %+v", page)
	}
}

func TestParseSubmissionsInvalidID(t *testing.T) {
	data := json.RawMessage(`{"data":[{"id":"ab-c","updated_utc":1}]}`)
	_, err := parser.NewArchiveParser().ParseSubmissions(context.Background(), data)
	if !errors.Is(err, utils.ErrInvalidNumeral) {
		t.Errorf("Expected ErrInvalidNumeral, got %v", err)
	}
}

func TestParseCommentsKeepsBodiesVerbatim(t *testing.T) {
	data := []byte(`{
		"data": [
			{"body": "Great idea!\n\nReally.", "updated_utc": "1620000100"},
			{"body": "", "updated_utc": 1620000050.5}
		]
	}`)

	page, err := parser.NewArchiveParser().ParseComments(context.Background(), json.RawMessage(data))
	if err != nil {
		t.Fatalf("Failed to parse comments: %v", err)
	}

	if len(page.Comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(page.Comments))
	}

	if page.Comments[0].Body != "Great idea!\n\nReally." {
		t.Errorf("Unexpected body %q", page.Comments[0].Body)
	}

	if page.Comments[0].Cursor != "1620000100" {
		t.Errorf("Expected string cursor to be unquoted, got %q", page.Comments[0].Cursor)
	}

	if page.NextBefore != "1620000050.5" {
		t.Errorf("Expected cursor '1620000050.5', got '%s'", page.NextBefore)
	}
}

func TestParseMalformedResponses(t *testing.T) {
	p := parser.NewArchiveParser()
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `<html>rate limited</html>`},
		{"missing data", `{"error":"oops"}`},
		{"null data", `{"data":null}`},
		{"data not array", `{"data":{"children":[]}}`},
		{"missing body", `{"data":[{"updated_utc":1}]}`},
		{"missing cursor", `{"data":[{"body":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.ParseComments(ctx, json.RawMessage(tt.data)); !errors.Is(err, parser.ErrMalformedResponse) {
				t.Errorf("Expected ErrMalformedResponse, got %v", err)
			}
		})
	}

	if _, err := p.ParseSubmissions(ctx, json.RawMessage(`{"data":[{"updated_utc":1}]}`)); !errors.Is(err, parser.ErrMalformedResponse) {
		t.Errorf("Expected ErrMalformedResponse for submission without id, got %v", err)
	}
}
