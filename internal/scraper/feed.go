package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

// FeedAdapter extracts headlines from an RSS or Atom feed. The format is
// structured, so no selector fallback chain is needed.
type FeedAdapter struct {
	name    string
	feedURL string
	parser  *gofeed.Parser
	logger  *slog.Logger
}

var _ ports.Extractor = (*FeedAdapter)(nil)

// NewFeedAdapter builds a feed adapter with its own parser instance.
// Timeouts come from the caller's context.
func NewFeedAdapter(name, feedURL, userAgent string, logger *slog.Logger) *FeedAdapter {
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedAdapter{
		name:    name,
		feedURL: feedURL,
		parser:  parser,
		logger:  logger,
	}
}

// Name identifies the adapter.
func (a *FeedAdapter) Name() string {
	return a.name
}

// Extract parses the feed into title/link candidates. Entries without a
// usable link fall back to the GUID when it looks like an HTTP URL and are
// skipped otherwise.
func (a *FeedAdapter) Extract(ctx context.Context) ([]domain.CandidateArticle, error) {
	feed, err := a.parser.ParseURLWithContext(a.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	candidates := make([]domain.CandidateArticle, 0, len(feed.Items))
	for _, entry := range feed.Items {
		link := entryLink(entry)
		headline := strings.TrimSpace(entry.Title)
		if headline == "" || link == "" {
			continue
		}

		candidates = append(candidates, domain.CandidateArticle{
			Headline: headline,
			URL:      link,
			Source:   a.name,
		})
	}

	a.logger.Debug("feed extraction done", "source", a.name, "count", len(candidates))
	return candidates, nil
}

// entryLink returns the best available URL from a feed entry, preferring the
// explicit link and falling back to a URL-shaped GUID.
func entryLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	if strings.HasPrefix(entry.GUID, "http") {
		return entry.GUID
	}
	return ""
}
