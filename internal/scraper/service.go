// internal/scraper/service.go
package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"reddit-digest/internal/client"
	"reddit-digest/internal/models"
	"reddit-digest/internal/parser"
	"reddit-digest/pkg/utils"
)

// ScraperService walks the archive's submission and comment search.
type ScraperService interface {
	FetchSubmissions(ctx context.Context, query models.SearchQuery, visit func(models.Submission) error) error
	AggregateComments(ctx context.Context, linkID int64, keyword string, buf *strings.Builder) (int, error)
	CollectText(ctx context.Context, query models.SearchQuery, buf *strings.Builder) (CrawlStats, error)
}

type Options struct {
	// Items requested per page
	PageSize int
	// Maximum number of submission search requests per run
	SubmissionRequestLimit int
}

type CrawlStats struct {
	Submissions int
	Comments    int
}

type scraperService struct {
	client client.ArchiveClientInterface
	parser parser.ParserInterface
	opts   Options
}

func NewScraperService(client client.ArchiveClientInterface, parser parser.ParserInterface, opts Options) ScraperService {
	if opts.PageSize <= 0 {
		opts.PageSize = 500
	}
	if opts.SubmissionRequestLimit <= 0 {
		opts.SubmissionRequestLimit = 1
	}

	return &scraperService{
		client: client,
		parser: parser,
		opts:   opts,
	}
}

// FetchSubmissions pages backwards through submission search and calls
// visit for every submission, in page order. Each page is fully visited
// before the next one is requested. Pagination ends on an empty page or
// once SubmissionRequestLimit requests have been made.
func (s *scraperService) FetchSubmissions(
	ctx context.Context,
	query models.SearchQuery,
	visit func(models.Submission) error,
) error {
	before := ""
	requestCount := 0
	exhausted := false

	for requestCount < s.opts.SubmissionRequestLimit {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		requestCount++
		log.Printf("Attempting to load submission request #%d", requestCount)

		apiURL := s.client.GetSubmissionSearchURL(query, before, s.opts.PageSize)

		data, err := s.client.FetchJSON(ctx, apiURL)
		if err != nil {
			return fmt.Errorf("fetch submissions: %w", err)
		}

		page, err := s.parser.ParseSubmissions(ctx, data)
		if err != nil {
			return fmt.Errorf("parse submissions: %w", err)
		}

		if len(page.Submissions) == 0 {
			log.Println("No more submissions available or empty page")
			exhausted = true
			break
		}

		log.Printf("Submission page %d yielded %d submissions", requestCount, len(page.Submissions))

		for _, sub := range page.Submissions {
			if err := visit(sub); err != nil {
				return err
			}
		}

		before = page.NextBefore
	}

	if !exhausted {
		log.Printf("Reached submission request limit (%d), stopping pagination", s.opts.SubmissionRequestLimit)
	}

	return nil
}

// AggregateComments appends every matching comment body on one submission
// to buf, whitespace-collapsed and with no separator between bodies. It
// stops on an empty page or when the archive hands back the same cursor
// twice in a row; the repeated page is not appended.
func (s *scraperService) AggregateComments(
	ctx context.Context,
	linkID int64,
	keyword string,
	buf *strings.Builder,
) (int, error) {
	before := ""
	appended := 0
	pageCount := 0

	for {
		if ctx.Err() != nil {
			return appended, ctx.Err()
		}

		pageCount++
		log.Println("Attempting to load a comment request")

		apiURL := s.client.GetCommentSearchURL(linkID, keyword, before, s.opts.PageSize)

		data, err := s.client.FetchJSON(ctx, apiURL)
		if err != nil {
			return appended, fmt.Errorf("fetch comments for link %d: %w", linkID, err)
		}

		page, err := s.parser.ParseComments(ctx, data)
		if err != nil {
			return appended, fmt.Errorf("parse comments for link %d: %w", linkID, err)
		}

		if len(page.Comments) == 0 {
			break
		}

		previous := before
		before = page.NextBefore
		if previous == before {
			log.Printf("Cursor %s did not advance on page %d, stopping pagination", before, pageCount)
			break
		}

		for _, comment := range page.Comments {
			buf.WriteString(utils.NormalizeWhitespace(comment.Body))
		}
		appended += len(page.Comments)
	}

	return appended, nil
}

// CollectText runs the whole crawl: every submission found for query has its
// keyword-matching comments appended to buf.
func (s *scraperService) CollectText(ctx context.Context, query models.SearchQuery, buf *strings.Builder) (CrawlStats, error) {
	startTime := time.Now()
	stats := CrawlStats{}

	err := s.FetchSubmissions(ctx, query, func(sub models.Submission) error {
		stats.Submissions++
		n, err := s.AggregateComments(ctx, sub.LinkID, query.Keyword, buf)
		stats.Comments += n
		if err != nil {
			return fmt.Errorf("submission %s: %w", sub.ID, err)
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	log.Printf("Collected %d comments from %d submissions (%d characters) in %v",
		stats.Comments, stats.Submissions, buf.Len(), time.Since(startTime))
	return stats, nil
}
