package scraper

import (
	"testing"
	"time"
)

func TestBrowserAdapterParseContainer(t *testing.T) {
	t.Parallel()

	adapter := NewBrowserAdapter("test-browser", "https://dyn.test/news", "https://dyn.test",
		"test-agent", BrowserOptions{
			WaitSelector:      "#stream",
			ContainerSelector: "#stream",
			LinkSelector:      "li.stream-item a",
			MinHeadlineLength: 20,
		}, nil)

	html := `
	<div id="stream">
	  <li class="stream-item"><a href="/story/1">Central bank signals slower tightening ahead</a></li>
	  <li class="stream-item"><a href="/story/2">More</a></li>
	  <li class="stream-item"><a href="https://dyn.test/story/3">Tech shares rally on upbeat earnings reports</a></li>
	  <a href="/nav/home">Unrelated navigation link far from stream items</a>
	</div>`

	candidates, err := adapter.parseContainer(html)
	if err != nil {
		t.Fatalf("parseContainer error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates after length filter, got %d", len(candidates))
	}
	if candidates[0].URL != "https://dyn.test/story/1" {
		t.Fatalf("relative link not resolved: %q", candidates[0].URL)
	}
	if candidates[1].URL != "https://dyn.test/story/3" {
		t.Fatalf("unexpected second candidate: %q", candidates[1].URL)
	}
	if candidates[0].Source != "test-browser" {
		t.Fatalf("candidate not tagged with adapter name: %q", candidates[0].Source)
	}
}

func TestHeadlineLongEnough(t *testing.T) {
	t.Parallel()

	if headlineLongEnough("More", 20) {
		t.Fatalf("short navigation text should be rejected")
	}
	if !headlineLongEnough("Central bank signals slower tightening", 20) {
		t.Fatalf("real headline should pass")
	}
	if !headlineLongEnough("anything", 0) {
		t.Fatalf("zero minimum should accept non-empty text")
	}
	if headlineLongEnough("", 0) {
		t.Fatalf("empty text should never pass")
	}
}

func TestBrowserAdapterDefaults(t *testing.T) {
	t.Parallel()

	adapter := NewBrowserAdapter("d", "https://dyn.test", "https://dyn.test", "ua",
		BrowserOptions{WaitSelector: "#s", ContainerSelector: "#s", LinkSelector: "a"}, nil)

	if adapter.opts.ScrollCount != 3 {
		t.Fatalf("expected default scroll count 3, got %d", adapter.opts.ScrollCount)
	}
	if adapter.opts.ScrollDelay != 2*time.Second {
		t.Fatalf("expected default scroll delay 2s, got %v", adapter.opts.ScrollDelay)
	}
}
