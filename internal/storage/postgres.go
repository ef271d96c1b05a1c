// Package storage persists scored articles in Postgres with exactly-once
// semantics per fingerprint.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS news_sentiment (
    fingerprint     VARCHAR(64) PRIMARY KEY,
    source          TEXT        NOT NULL,
    headline        TEXT        NOT NULL,
    article_url     TEXT        NOT NULL,
    sentiment_label TEXT        NOT NULL,
    sentiment_score DOUBLE PRECISION NOT NULL,
    model_version   TEXT        NOT NULL,
    scraped_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_news_sentiment_source ON news_sentiment (source);
CREATE INDEX IF NOT EXISTS idx_news_sentiment_scraped_at ON news_sentiment (scraped_at);
`

// PostgresStore implements ports.ArticleStore on database/sql.
type PostgresStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.ArticleStore = (*PostgresStore)(nil)

// Open connects to Postgres and verifies the connection. A failure here is
// catastrophic for the run; the caller surfaces it as a terminal error.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db), nil
}

// NewPostgresStore wires an existing sql.DB.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// InitSchema creates the table and indexes if absent. Safe to call every run.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// InsertIfAbsent commits the record unless one already exists for its
// fingerprint. ON CONFLICT DO NOTHING makes the check-and-insert a single
// atomic statement, so concurrent attempts on the same fingerprint resolve to
// exactly one insertion.
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, rec domain.PersistedRecord) (bool, error) {
	query, args, err := s.sb.
		Insert("news_sentiment").
		Columns("fingerprint", "source", "headline", "article_url",
			"sentiment_label", "sentiment_score", "model_version", "scraped_at").
		Values(rec.Fingerprint, rec.Source, rec.Headline, rec.URL,
			rec.Label, rec.Score, rec.ModelVersion, rec.ScrapedAt).
		Suffix("ON CONFLICT (fingerprint) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// CountBySource reports how many records each source has contributed; used by
// reporting and ad-hoc inspection.
func (s *PostgresStore) CountBySource(ctx context.Context) (map[string]int, error) {
	query, args, err := s.sb.
		Select("source", "COUNT(*)").
		From("news_sentiment").
		GroupBy("source").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[source] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return counts, nil
}
