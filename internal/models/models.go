package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidQuery = errors.New("invalid search query")

// SearchQuery holds the three prompted inputs for a run.
type SearchQuery struct {
	// Free-text question sent as the submission search query
	Question string
	// Single term used to filter comments
	Keyword string
	// Subreddit names in the order they were entered
	Subreddits []string
}

// ParseSubreddits splits the comma-delimited prompt input. Empty and
// repeated entries are dropped; names are otherwise kept verbatim.
func ParseSubreddits(raw string) []string {
	var subs []string
	seen := make(map[string]bool)
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		subs = append(subs, s)
	}
	return subs
}

func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question is empty", ErrInvalidQuery)
	}
	if q.Keyword == "" {
		return fmt.Errorf("%w: keyword is empty", ErrInvalidQuery)
	}
	if strings.ContainsAny(q.Keyword, " \t\r\n") {
		return fmt.Errorf("%w: keyword %q must be a single word", ErrInvalidQuery, q.Keyword)
	}
	if len(q.Subreddits) == 0 {
		return fmt.Errorf("%w: no subreddits given", ErrInvalidQuery)
	}
	return nil
}

// SubredditFilter is the value sent as the subreddit query parameter.
func (q SearchQuery) SubredditFilter() string {
	return strings.Join(q.Subreddits, ",")
}

// Submission is a top-level post found by the submission search.
type Submission struct {
	// Base-36 id as returned by the archive
	ID string
	// Base-10 form of ID, used as link_id in comment search
	LinkID int64
	// Pagination cursor taken from updated_utc
	Cursor string
}

// Comment is a reply on a submission. Only the body is used.
type Comment struct {
	Body   string
	Cursor string
}

// SubmissionPage is one decoded page of submission search results.
type SubmissionPage struct {
	Submissions []Submission
	// Cursor of the last item, empty when the page is empty
	NextBefore string
}

// CommentPage is one decoded page of comment search results.
type CommentPage struct {
	Comments   []Comment
	NextBefore string
}

// RawItem is the subset of an archive search item this tool reads.
type RawItem struct {
	ID         string          `json:"id"`
	Body       *string         `json:"body"`
	UpdatedUTC json.RawMessage `json:"updated_utc"`
}
