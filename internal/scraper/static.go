package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

// StaticAdapter extracts headlines from a server-rendered page with a single
// timed GET and an ordered chain of selector strategies.
type StaticAdapter struct {
	name       string
	pageURL    string
	baseURL    string
	userAgent  string
	strategies []SelectorStrategy
	client     *http.Client
	logger     *slog.Logger
}

var _ ports.Extractor = (*StaticAdapter)(nil)

// NewStaticAdapter wires an HTTP client; a nil client gets a 20s timeout default.
func NewStaticAdapter(name, pageURL, baseURL, userAgent string, strategies []SelectorStrategy, client *http.Client, logger *slog.Logger) *StaticAdapter {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticAdapter{
		name:       name,
		pageURL:    pageURL,
		baseURL:    baseURL,
		userAgent:  userAgent,
		strategies: strategies,
		client:     client,
		logger:     logger,
	}
}

// Name identifies the adapter; candidates are tagged with it at creation.
func (a *StaticAdapter) Name() string {
	return a.name
}

// Extract downloads the page and walks the strategy chain. A page where every
// strategy misses yields an empty result, never fabricated candidates.
func (a *StaticAdapter) Extract(ctx context.Context) ([]domain.CandidateArticle, error) {
	doc, err := a.fetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	candidates, strategyIdx := runStrategies(a.strategies, doc, a.baseURL, a.name)
	if strategyIdx < 0 {
		a.logger.Warn("no selector strategy matched", "source", a.name, "url", a.pageURL)
		return nil, nil
	}
	if strategyIdx > 0 {
		a.logger.Warn("primary selector missed, used fallback",
			"source", a.name, "strategy", strategyIdx)
	}

	a.logger.Debug("static extraction done", "source", a.name, "count", len(candidates))
	return candidates, nil
}

func (a *StaticAdapter) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", a.name, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}
