// Package scraper contains the source adapters that translate upstream sites
// into normalized candidate articles, plus the concurrent fan-out that runs
// them with failure isolation.
package scraper

import (
	"net/url"
	"strings"
)

// absoluteURL resolves a scraped href against the source's base URL.
// Links that are already absolute pass through unchanged; site-relative links
// (leading "/") are prefixed with the source origin. Anything else that cannot
// be resolved comes back empty so the caller drops the candidate.
func absoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if base == "" {
		return ""
	}

	parsedBase, err := url.Parse(base)
	if err != nil || parsedBase.Host == "" {
		return ""
	}
	parsedHref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return parsedBase.ResolveReference(parsedHref).String()
}
