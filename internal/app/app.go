package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/config"
	"github.com/Viiraj7/financial-sentiment-etl/internal/logging"
	"github.com/Viiraj7/financial-sentiment-etl/internal/nlp"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
	"github.com/Viiraj7/financial-sentiment-etl/internal/report"
	"github.com/Viiraj7/financial-sentiment-etl/internal/scraper"
	"github.com/Viiraj7/financial-sentiment-etl/internal/storage"
	"github.com/Viiraj7/financial-sentiment-etl/internal/usecase"
)

// Application wires configuration to the ingestion pipeline.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *storage.PostgresStore
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. Store connectivity is verified
// here: a dead store is the one condition that aborts a run before it starts.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	if err := store.InitSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("prepare store: %w", err)
	}

	scorer := nlp.NewClient(cfg.Scorer.InferenceURL, cfg.Scorer.APIKey, cfg.Scorer.Timeout.Std())

	adapters, timeouts := buildAdapters(cfg, baseLogger)
	sources := scraper.NewSources(adapters, cfg.Scraper.Timeout.Std(), timeouts,
		baseLogger.With("component", "sources"))
	baseLogger.Info("sources configured", "names", sources.Names())

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = report.NewTelegramNotifier(
			cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:  sources,
		Scorer:   scorer,
		Loader:   usecase.NewLoader(store, nlp.ModelVersion),
		Notifier: notifier,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, store: store, pipeline: pipeline}, nil
}

// Run performs a single synchronous pipeline execution for today's date.
func (a *Application) Run(ctx context.Context) error {
	day := time.Now().UTC()

	stats, err := a.pipeline.Run(ctx, day)
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	if counts, countErr := a.store.CountBySource(ctx); countErr == nil {
		a.logger.Debug("store totals by source", "counts", fmt.Sprint(counts))
	}

	a.logger.Info("run complete", "inserted", stats.Inserted, "duplicates", stats.Duplicates)
	return nil
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// buildAdapters turns source configs into extractors. A source missing its
// required fields is disabled with an error log instead of failing startup.
func buildAdapters(cfg config.Config, logger *slog.Logger) ([]ports.Extractor, map[string]time.Duration) {
	adapters := make([]ports.Extractor, 0, len(cfg.Sources))
	timeouts := make(map[string]time.Duration)

	for _, src := range cfg.Sources {
		if src.URL == "" {
			logger.Error("source disabled: url missing", "source", src.Name)
			continue
		}

		switch src.Kind {
		case config.KindStatic:
			if cfg.Scraper.UserAgent == "" {
				logger.Error("source disabled: user agent missing", "source", src.Name)
				continue
			}
			if len(src.Selectors) == 0 {
				logger.Error("source disabled: no selectors configured", "source", src.Name)
				continue
			}
			adapters = append(adapters, scraper.NewStaticAdapter(
				src.Name, src.URL, src.BaseURL, cfg.Scraper.UserAgent,
				toStrategies(src.Selectors), nil,
				logger.With("component", "scraper."+src.Name)))

		case config.KindFeed:
			adapters = append(adapters, scraper.NewFeedAdapter(
				src.Name, src.URL, cfg.Scraper.UserAgent,
				logger.With("component", "scraper."+src.Name)))

		case config.KindBrowser:
			if cfg.Scraper.UserAgent == "" {
				logger.Error("source disabled: user agent missing", "source", src.Name)
				continue
			}
			if src.WaitSelector == "" || src.ContainerSelector == "" || src.LinkSelector == "" {
				logger.Error("source disabled: browser selectors missing", "source", src.Name)
				continue
			}
			adapters = append(adapters, scraper.NewBrowserAdapter(
				src.Name, src.URL, src.BaseURL, cfg.Scraper.UserAgent,
				scraper.BrowserOptions{
					WaitSelector:      src.WaitSelector,
					ConsentSelector:   src.ConsentSelector,
					ContainerSelector: src.ContainerSelector,
					LinkSelector:      src.LinkSelector,
					ScrollCount:       src.ScrollCount,
					ScrollDelay:       src.ScrollDelay.Std(),
					MinHeadlineLength: src.MinHeadlineLength,
				},
				logger.With("component", "scraper."+src.Name)))

		default:
			logger.Error("source disabled: unknown kind", "source", src.Name, "kind", src.Kind)
			continue
		}

		if src.Timeout > 0 {
			timeouts[src.Name] = src.Timeout.Std()
		}
	}

	return adapters, timeouts
}

func toStrategies(cfg []config.SelectorConfig) []scraper.SelectorStrategy {
	strategies := make([]scraper.SelectorStrategy, 0, len(cfg))
	for _, sel := range cfg {
		strategies = append(strategies, scraper.SelectorStrategy{
			Container: sel.Container,
			Link:      sel.Link,
		})
	}
	return strategies
}
