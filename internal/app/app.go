// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"reddit-digest/internal/client"
	"reddit-digest/internal/config"
	"reddit-digest/internal/models"
	"reddit-digest/internal/parser"
	"reddit-digest/internal/scraper"
	"reddit-digest/internal/summarizer"
)

type App struct {
	Config     *config.Config
	Service    scraper.ScraperService
	Summarizer summarizer.Summarizer
	RunID      string
}

// Result is what a successful run prints.
type Result struct {
	Sentences  []string
	Stats      scraper.CrawlStats
	TextLength int
}

func Initialize() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	archiveClient, err := client.NewArchiveClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}

	scraperService := scraper.NewScraperService(archiveClient, parser.NewArchiveParser(), scraper.Options{
		PageSize:               cfg.PageSize,
		SubmissionRequestLimit: cfg.SubmissionRequestLimit,
	})

	sum, err := summarizer.New(cfg.SummarizerEngine)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}

	return New(cfg, scraperService, sum), nil
}

func New(cfg *config.Config, svc scraper.ScraperService, sum summarizer.Summarizer) *App {
	return &App{
		Config:     cfg,
		Service:    svc,
		Summarizer: sum,
		RunID:      uuid.New().String(),
	}
}

// Run crawls the archive for query and summarizes what it found. Any
// failure aborts the run and comes back as a *RunError with no partial
// result.
func (a *App) Run(ctx context.Context, query models.SearchQuery) (*Result, error) {
	if err := query.Validate(); err != nil {
		return nil, Classify(err, KindInput)
	}

	log.Printf("Run %s: question=%q keyword=%q subreddits=%s",
		a.RunID, query.Question, query.Keyword, query.SubredditFilter())

	var text strings.Builder
	stats, err := a.Service.CollectText(ctx, query, &text)
	if err != nil {
		return nil, Classify(err, KindTransport)
	}

	log.Println("INFO: All requests complete.")
	log.Println("Summarizing data...")
	log.Println("Now attempting to summarize. Please wait...")

	startTime := time.Now()
	sentences, err := a.Summarizer.Summarize(ctx, text.String(), a.Config.SummarySentences)
	if err != nil {
		return nil, Classify(err, KindSummarize)
	}

	log.Printf("Summarized %d characters into %d sentences in %v",
		text.Len(), len(sentences), time.Since(startTime))

	return &Result{
		Sentences:  sentences,
		Stats:      stats,
		TextLength: text.Len(),
	}, nil
}
