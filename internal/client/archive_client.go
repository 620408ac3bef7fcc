// internal/client/archive_client.go
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reddit-digest/internal/config"
	"reddit-digest/internal/models"
	"reddit-digest/pkg/utils"
)

// ErrTransport wraps every failure to get a 2xx body back from the archive.
var ErrTransport = errors.New("archive transport failure")

type ArchiveClient struct {
	client  *utils.SingleAttemptClient
	baseURL string
}

func NewArchiveClient(cfg *config.Config) (*ArchiveClient, error) {
	if cfg.ArchiveBaseURL == "" {
		return nil, fmt.Errorf("ARCHIVE_BASE_URL must not be empty")
	}

	client, err := utils.NewSingleAttemptClient(utils.ClientOptions{
		ProxyURLs:      cfg.ProxyURLs,
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.RequestTimeout,
		TLSFingerprint: cfg.TLSFingerprint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	log.Printf("Initialized archive client for %s (request timeout %v)", cfg.ArchiveBaseURL, client.Timeout())

	return &ArchiveClient{
		client:  client,
		baseURL: strings.TrimRight(cfg.ArchiveBaseURL, "/"),
	}, nil
}

func (a *ArchiveClient) FetchJSON(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	_, bodyBytes, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchJSON request: %w: %w", ErrTransport, err)
	}

	return bodyBytes, nil
}

// GetSubmissionSearchURL builds a submission search page request. The
// question is form-encoded, so its spaces travel as '+'.
func (a *ArchiveClient) GetSubmissionSearchURL(query models.SearchQuery, before string, size int) string {
	params := url.Values{}
	params.Set("q", query.Question)
	params.Set("subreddit", query.SubredditFilter())
	if before != "" {
		params.Set("before", before)
	}
	params.Set("size", strconv.Itoa(size))

	return a.baseURL + "/reddit/search/submission?" + params.Encode()
}

func (a *ArchiveClient) GetCommentSearchURL(linkID int64, keyword string, before string, size int) string {
	params := url.Values{}
	params.Set("link_id", strconv.FormatInt(linkID, 10))
	params.Set("q", keyword)
	if before != "" {
		params.Set("before", before)
	}
	params.Set("size", strconv.Itoa(size))

	return a.baseURL + "/reddit/comment/search?" + params.Encode()
}
