package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
)

// SelectorStrategy locates headline anchors in a parsed document. Strategies
// form an ordered fallback chain: the first one yielding candidates wins, so a
// markup change upstream degrades to a looser selector instead of an empty run.
type SelectorStrategy struct {
	// Container scopes the scan to a region of the page; empty means the
	// whole document.
	Container string
	// Link selects anchor elements within the container.
	Link string
}

// extract applies the strategy to doc and returns normalized candidates.
// Anchors without an href or with empty trimmed text are skipped; relative
// hrefs are resolved against baseURL.
func (s SelectorStrategy) extract(doc *goquery.Document, baseURL, source string) []domain.CandidateArticle {
	scope := doc.Selection
	if s.Container != "" {
		scope = doc.Find(s.Container)
		if scope.Length() == 0 {
			return nil
		}
	}

	var candidates []domain.CandidateArticle
	scope.Find(s.Link).Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		headline := strings.TrimSpace(anchor.Text())
		link := absoluteURL(baseURL, href)
		if headline == "" || link == "" {
			return
		}

		candidates = append(candidates, domain.CandidateArticle{
			Headline: headline,
			URL:      link,
			Source:   source,
		})
	})

	return candidates
}

// runStrategies tries each strategy in order and returns the first non-empty
// result along with the index of the strategy that produced it. A -1 index
// means every strategy came up empty.
func runStrategies(strategies []SelectorStrategy, doc *goquery.Document, baseURL, source string) ([]domain.CandidateArticle, int) {
	for i, strategy := range strategies {
		if candidates := strategy.extract(doc, baseURL, source); len(candidates) > 0 {
			return candidates, i
		}
	}
	return nil, -1
}
