package usecase

import (
	"context"
	"time"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/fingerprint"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

// Loader commits scored articles under their content fingerprint. Duplicates
// are an expected, frequent outcome, not an error; no retry happens here.
type Loader struct {
	store        ports.ArticleStore
	modelVersion string
}

// NewLoader wires the store boundary.
func NewLoader(store ports.ArticleStore, modelVersion string) *Loader {
	return &Loader{store: store, modelVersion: modelVersion}
}

// Load computes the (headline, url, day) fingerprint and performs a single
// atomic insert-if-absent. One record is committed or none; the store never
// sees a partial write.
func (l *Loader) Load(ctx context.Context, article domain.ScoredArticle, day time.Time) (domain.LoadOutcome, error) {
	fp := fingerprint.Compute(article.Headline, article.URL, day)

	inserted, err := l.store.InsertIfAbsent(ctx, domain.PersistedRecord{
		Fingerprint:  fp,
		Source:       article.Source,
		Headline:     article.Headline,
		URL:          article.URL,
		Label:        article.Label,
		Score:        article.Sentiment.Score,
		ModelVersion: l.modelVersion,
		ScrapedAt:    time.Now().UTC(),
	})
	if err != nil {
		return domain.OutcomeFailed, err
	}

	if inserted {
		return domain.OutcomeInserted, nil
	}
	return domain.OutcomeDuplicate, nil
}
