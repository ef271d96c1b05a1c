package scraper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

// Sources fans extraction out over the registered adapters. Adapters share no
// state and own their sessions, so they run concurrently, each under its own
// timeout. A failed or timed-out adapter contributes an empty result and a
// logged diagnostic; one source's breakage never aborts the run.
type Sources struct {
	adapters       []ports.Extractor
	defaultTimeout time.Duration
	timeouts       map[string]time.Duration
	logger         *slog.Logger
}

// NewSources builds the fan-out over the given adapters. Per-adapter timeouts
// override the default where present.
func NewSources(adapters []ports.Extractor, defaultTimeout time.Duration, timeouts map[string]time.Duration, logger *slog.Logger) *Sources {
	if defaultTimeout <= 0 {
		defaultTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sources{
		adapters:       adapters,
		defaultTimeout: defaultTimeout,
		timeouts:       timeouts,
		logger:         logger,
	}
}

// Names lists the registered adapter names in registration order.
func (s *Sources) Names() []string {
	names := make([]string, 0, len(s.adapters))
	for _, adapter := range s.adapters {
		names = append(names, adapter.Name())
	}
	return names
}

// ExtractAll runs every adapter and merges the results. Order between sources
// is not significant; within one source the adapter's order is kept.
func (s *Sources) ExtractAll(ctx context.Context) []domain.CandidateArticle {
	results := make([][]domain.CandidateArticle, len(s.adapters))

	var wg sync.WaitGroup
	for i, adapter := range s.adapters {
		wg.Add(1)
		go func(i int, adapter ports.Extractor) {
			defer wg.Done()
			results[i] = s.extractOne(ctx, adapter)
		}(i, adapter)
	}
	wg.Wait()

	var merged []domain.CandidateArticle
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	return merged
}

func (s *Sources) extractOne(ctx context.Context, adapter ports.Extractor) []domain.CandidateArticle {
	timeout := s.defaultTimeout
	if t, ok := s.timeouts[adapter.Name()]; ok && t > 0 {
		timeout = t
	}

	adapterCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	candidates, err := adapter.Extract(adapterCtx)
	if err != nil {
		s.logger.Error("source extraction failed",
			"source", adapter.Name(), "elapsed", time.Since(start), "error", err)
		return nil
	}

	s.logger.Info("source extracted",
		"source", adapter.Name(), "count", len(candidates), "elapsed", time.Since(start))
	return candidates
}
