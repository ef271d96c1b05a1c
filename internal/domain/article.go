package domain

import (
	"fmt"
	"time"
)

// CandidateArticle is an extracted, not-yet-scored headline emitted by a
// source adapter. Source carries the adapter name tagged at creation time,
// never inferred from the URL.
type CandidateArticle struct {
	Headline string
	URL      string
	Source   string
}

// Valid reports whether the candidate carries both a headline and a URL.
// Adapters should never emit an invalid candidate; the pipeline re-checks.
func (c CandidateArticle) Valid() bool {
	return c.Headline != "" && c.URL != ""
}

// Sentiment is the opaque result returned by the external scorer.
// The zero value means "no usable result".
type Sentiment struct {
	Label string
	Score float64
}

// Usable reports whether the scorer produced a classification.
func (s Sentiment) Usable() bool {
	return s.Label != ""
}

// ScoredArticle pairs a candidate with its sentiment ahead of the load attempt.
type ScoredArticle struct {
	CandidateArticle
	Sentiment
}

// PersistedRecord is the full row committed to storage, keyed by Fingerprint.
type PersistedRecord struct {
	Fingerprint  string
	Source       string
	Headline     string
	URL          string
	Label        string
	Score        float64
	ModelVersion string
	ScrapedAt    time.Time
}

// LoadOutcome classifies the result of one load attempt.
type LoadOutcome int

const (
	OutcomeInserted LoadOutcome = iota
	OutcomeDuplicate
	OutcomeFailed
)

// String renders the outcome for logs.
func (o LoadOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// RunStats aggregates per-run counters reported after every pipeline pass.
type RunStats struct {
	Extracted    int
	Deduplicated int
	Validated    int
	Scored       int
	Inserted     int
	Duplicates   int
	Rejected     int
	Failed       int
}

// Summary renders a single-line digest suitable for logs and notifications.
func (s RunStats) Summary() string {
	return fmt.Sprintf(
		"extracted=%d deduplicated=%d validated=%d scored=%d inserted=%d duplicates=%d rejected=%d failed=%d",
		s.Extracted, s.Deduplicated, s.Validated, s.Scored,
		s.Inserted, s.Duplicates, s.Rejected, s.Failed)
}
