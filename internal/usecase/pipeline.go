package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

// Extractor fans extraction out over the configured sources; implemented by
// scraper.Sources. Isolation of per-source failures happens behind this
// boundary, so the pipeline only ever sees the merged candidate list.
type Extractor interface {
	ExtractAll(ctx context.Context) []domain.CandidateArticle
}

// PipelineDeps wires all collaborators into the orchestration pipeline.
type PipelineDeps struct {
	Sources  Extractor
	Scorer   ports.Scorer
	Loader   *Loader
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Pipeline implements the single-pass ingestion run:
// extract, validate, dedup within the run, score and load per item, report.
type Pipeline struct {
	sources  Extractor
	scorer   ports.Scorer
	loader   *Loader
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		sources:  deps.Sources,
		scorer:   deps.Scorer,
		loader:   deps.Loader,
		notifier: deps.Notifier,
		logger:   logger,
	}
}

// Run executes one full pass for the given ingestion day. Item- and
// source-level failures are tallied, never fatal; only a store infrastructure
// failure stops loading early, and even then the partial statistics are
// reported before the error is returned.
func (p *Pipeline) Run(ctx context.Context, day time.Time) (domain.RunStats, error) {
	var stats domain.RunStats

	p.logger.Info("pipeline run starting", "day", day.UTC().Format("2006-01-02"))

	extracted := p.sources.ExtractAll(ctx)
	stats.Extracted = len(extracted)
	if stats.Extracted == 0 {
		p.logger.Warn("no articles extracted from any source, ending run")
		p.report(ctx, day, stats)
		return stats, nil
	}

	valid := make([]domain.CandidateArticle, 0, len(extracted))
	for _, candidate := range extracted {
		if !candidate.Valid() {
			stats.Rejected++
			p.logger.Warn("dropping invalid candidate",
				"source", candidate.Source, "url", candidate.URL)
			continue
		}
		valid = append(valid, candidate)
	}
	stats.Validated = len(valid)

	candidates := dedupByURL(valid)
	stats.Deduplicated = len(valid) - len(candidates)

	var storeErr error
	for _, candidate := range candidates {
		sentiment, err := p.scorer.Score(ctx, candidate.Headline)
		if err != nil {
			stats.Rejected++
			p.logger.Warn("scoring failed, skipping item",
				"source", candidate.Source, "headline", truncate(candidate.Headline, 60), "error", err)
			continue
		}
		stats.Scored++

		outcome, err := p.loader.Load(ctx, domain.ScoredArticle{
			CandidateArticle: candidate,
			Sentiment:        sentiment,
		}, day)

		switch outcome {
		case domain.OutcomeInserted:
			stats.Inserted++
			p.logger.Debug("article inserted",
				"source", candidate.Source, "headline", truncate(candidate.Headline, 60))
		case domain.OutcomeDuplicate:
			stats.Duplicates++
		case domain.OutcomeFailed:
			stats.Failed++
			p.logger.Error("load failed, stopping further load attempts",
				"source", candidate.Source, "error", err)
			storeErr = err
		}

		if storeErr != nil {
			break
		}
	}

	p.report(ctx, day, stats)
	return stats, storeErr
}

func (p *Pipeline) report(ctx context.Context, day time.Time, stats domain.RunStats) {
	p.logger.Info("pipeline run finished", "stats", stats.Summary())

	if p.notifier == nil {
		return
	}
	if err := p.notifier.PublishSummary(ctx, day, stats); err != nil {
		p.logger.Warn("publishing run summary failed", "error", err)
	}
}

// dedupByURL keeps the first occurrence of each URL so adapters independently
// surfacing the same link cannot waste scorer calls or double-load.
func dedupByURL(candidates []domain.CandidateArticle) []domain.CandidateArticle {
	seen := make(map[string]struct{}, len(candidates))
	deduped := make([]domain.CandidateArticle, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate.URL]; ok {
			continue
		}
		seen[candidate.URL] = struct{}{}
		deduped = append(deduped, candidate)
	}
	return deduped
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
