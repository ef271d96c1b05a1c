package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/Viiraj7/financial-sentiment-etl/internal/domain"
	"github.com/Viiraj7/financial-sentiment-etl/internal/ports"
)

const consentClickTimeout = 3 * time.Second

// BrowserOptions carries the tunables of one rendered-page source.
type BrowserOptions struct {
	// WaitSelector is the marker element whose appearance signals the page
	// rendered; the adapter waits on it instead of sleeping a fixed duration.
	WaitSelector string
	// ConsentSelector, when set, is clicked to dismiss a cookie interstitial.
	// Its absence is tolerated without error.
	ConsentSelector string
	// ContainerSelector scopes extraction so page chrome is never picked up.
	ContainerSelector string
	// LinkSelector selects headline anchors inside the container.
	LinkSelector string
	// ScrollCount bounds the scroll-and-wait cycles that trigger lazy loading.
	ScrollCount int
	// ScrollDelay is the per-cycle sleep that lets new items render.
	ScrollDelay time.Duration
	// MinHeadlineLength rejects short link text such as navigation items.
	MinHeadlineLength int
}

// BrowserAdapter extracts headlines from a JavaScript-rendered page by driving
// a headless Chrome session. Each extraction owns its session exclusively and
// tears it down on every exit path.
type BrowserAdapter struct {
	name      string
	pageURL   string
	baseURL   string
	userAgent string
	opts      BrowserOptions
	logger    *slog.Logger
}

var _ ports.Extractor = (*BrowserAdapter)(nil)

// NewBrowserAdapter validates nothing beyond defaults; URL presence is checked
// by the wiring layer before construction.
func NewBrowserAdapter(name, pageURL, baseURL, userAgent string, opts BrowserOptions, logger *slog.Logger) *BrowserAdapter {
	if opts.ScrollCount <= 0 {
		opts.ScrollCount = 3
	}
	if opts.ScrollDelay <= 0 {
		opts.ScrollDelay = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserAdapter{
		name:      name,
		pageURL:   pageURL,
		baseURL:   baseURL,
		userAgent: userAgent,
		opts:      opts,
		logger:    logger,
	}
}

// Name identifies the adapter.
func (a *BrowserAdapter) Name() string {
	return a.name
}

// Extract renders the page, scrolls to trigger lazy loading, and parses the
// scoped container HTML. The browser session lives inside this call; the
// deferred cancels release it whether extraction succeeds or fails.
func (a *BrowserAdapter) Extract(ctx context.Context) ([]domain.CandidateArticle, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(a.userAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(a.pageURL),
		chromedp.WaitVisible(a.opts.WaitSelector, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("navigate and wait for %s: %w", a.opts.WaitSelector, err)
	}

	a.dismissConsent(tabCtx)

	for i := 0; i < a.opts.ScrollCount; i++ {
		if err := chromedp.Run(tabCtx,
			chromedp.Evaluate("window.scrollTo(0, document.body.scrollHeight);", nil),
			chromedp.Sleep(a.opts.ScrollDelay),
		); err != nil {
			return nil, fmt.Errorf("scroll cycle %d: %w", i+1, err)
		}
	}

	var containerHTML string
	if err := chromedp.Run(tabCtx,
		chromedp.OuterHTML(a.opts.ContainerSelector, &containerHTML, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("read container %s: %w", a.opts.ContainerSelector, err)
	}

	candidates, err := a.parseContainer(containerHTML)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("browser extraction done", "source", a.name, "count", len(candidates))
	return candidates, nil
}

// dismissConsent clicks the cookie interstitial when one is configured and
// present. A page without the interstitial is the common case, so the short
// bounded wait failing is not an error.
func (a *BrowserAdapter) dismissConsent(tabCtx context.Context) {
	if a.opts.ConsentSelector == "" {
		return
	}

	clickCtx, cancel := context.WithTimeout(tabCtx, consentClickTimeout)
	defer cancel()

	if err := chromedp.Run(clickCtx, chromedp.Click(a.opts.ConsentSelector, chromedp.ByQuery)); err != nil {
		a.logger.Debug("consent interstitial not present", "source", a.name)
	}
}

func (a *BrowserAdapter) parseContainer(html string) ([]domain.CandidateArticle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered container: %w", err)
	}

	var candidates []domain.CandidateArticle
	doc.Find(a.opts.LinkSelector).Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}

		headline := strings.TrimSpace(anchor.Text())
		if !headlineLongEnough(headline, a.opts.MinHeadlineLength) {
			return
		}

		link := absoluteURL(a.baseURL, href)
		if link == "" {
			return
		}

		candidates = append(candidates, domain.CandidateArticle{
			Headline: headline,
			URL:      link,
			Source:   a.name,
		})
	})

	return candidates, nil
}

// headlineLongEnough filters out navigation links and other short anchor text
// that is not a headline. Counted in runes so non-ASCII headlines are not
// penalized.
func headlineLongEnough(headline string, minLength int) bool {
	if minLength <= 0 {
		return headline != ""
	}
	return len([]rune(headline)) >= minLength
}
