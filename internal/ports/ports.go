package ports

import (
	"context"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
)

// Extractor produces candidate articles from one upstream source.
// Implementations own their network or browser session for the duration of
// the call and must release it on every exit path.
type Extractor interface {
	Name() string
	Extract(ctx context.Context) ([]domain.CandidateArticle, error)
}

// Scorer classifies headline sentiment via an external model service.
// A failed or empty classification is reported as an error; callers skip the
// item and continue.
type Scorer interface {
	Score(ctx context.Context, text string) (domain.Sentiment, error)
}

// ArticleStore persists scored articles exactly once per fingerprint.
type ArticleStore interface {
	// InitSchema creates tables and indexes if absent; safe to call every run.
	InitSchema(ctx context.Context) error
	// InsertIfAbsent atomically inserts the record unless one already exists
	// for its fingerprint, reporting whether insertion occurred.
	InsertIfAbsent(ctx context.Context, rec domain.PersistedRecord) (bool, error)
}

// Notifier publishes run summaries to an external channel.
type Notifier interface {
	PublishSummary(ctx context.Context, day time.Time, stats domain.RunStats) error
}
