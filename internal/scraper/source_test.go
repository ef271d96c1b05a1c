package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

func extractors(list ...ports.Extractor) []ports.Extractor {
	return list
}

type stubExtractor struct {
	name       string
	candidates []domain.CandidateArticle
	err        error
	delay      time.Duration
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) Extract(ctx context.Context) ([]domain.CandidateArticle, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.candidates, s.err
}

func TestSourcesIsolateFailures(t *testing.T) {
	t.Parallel()

	healthy := &stubExtractor{
		name: "healthy",
		candidates: []domain.CandidateArticle{
			{Headline: "Fed holds rates steady", URL: "https://a.test/1", Source: "healthy"},
		},
	}
	broken := &stubExtractor{name: "broken", err: errors.New("markup changed")}

	merged := NewSources(extractors(broken, healthy), time.Second, nil, nil).
		ExtractAll(context.Background())

	if len(merged) != 1 {
		t.Fatalf("expected 1 candidate from the healthy source, got %d", len(merged))
	}
	if merged[0].Source != "healthy" {
		t.Fatalf("unexpected source tag: %q", merged[0].Source)
	}
}

func TestSourcesTimeoutContributesEmpty(t *testing.T) {
	t.Parallel()

	slow := &stubExtractor{
		name:  "slow",
		delay: 500 * time.Millisecond,
		candidates: []domain.CandidateArticle{
			{Headline: "never arrives", URL: "https://slow.test/1", Source: "slow"},
		},
	}
	fast := &stubExtractor{
		name: "fast",
		candidates: []domain.CandidateArticle{
			{Headline: "Oil climbs on supply fears", URL: "https://a.test/2", Source: "fast"},
		},
	}

	timeouts := map[string]time.Duration{"slow": 50 * time.Millisecond}
	merged := NewSources(extractors(slow, fast), time.Second, timeouts, nil).
		ExtractAll(context.Background())

	if len(merged) != 1 {
		t.Fatalf("expected only the fast source's candidate, got %d", len(merged))
	}
	if merged[0].Source != "fast" {
		t.Fatalf("unexpected source tag: %q", merged[0].Source)
	}
}

func TestSourcesNames(t *testing.T) {
	t.Parallel()

	sources := NewSources(extractors(
		&stubExtractor{name: "one"},
		&stubExtractor{name: "two"},
	), time.Second, nil, nil)

	names := sources.Names()
	if len(names) != 2 || names[0] != "one" || names[1] != "two" {
		t.Fatalf("unexpected names: %v", names)
	}
}
