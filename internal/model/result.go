package model

import (
	"sort"
	"time"
)

// CrawlResult holds the outcome of one crawl invocation.
// It is handed, read-only, to the sitemap and report writers; nothing in it
// survives past the invocation.
type CrawlResult struct {
	// StartURL is the URL the crawl was seeded with.
	StartURL string

	// Pages maps each successfully visited URL to its resolved
	// last-modified timestamp. Redirected and failed URLs are excluded.
	Pages map[string]time.Time

	// Stats summarizes what happened during the crawl.
	Stats CrawlStats
}

// CrawlStats counts per-URL outcomes during a crawl.
type CrawlStats struct {
	// Visited is the number of pages fetched successfully.
	Visited int

	// Failed is the number of URLs dropped due to transport or
	// protocol errors.
	Failed int

	// Redirected is the number of URLs that answered with an HTTP
	// redirect and were replaced by their targets.
	Redirected int

	// RobotsBlocked is the number of candidate links skipped because
	// robots.txt disallowed them.
	RobotsBlocked int

	// Duration is the wall-clock time of the whole crawl.
	Duration time.Duration

	// Interrupted reports whether the crawl was cancelled before the
	// frontier was exhausted. The partial result is still valid.
	Interrupted bool
}

// NewCrawlResult creates an empty result for the given start URL.
func NewCrawlResult(startURL string) *CrawlResult {
	return &CrawlResult{
		StartURL: startURL,
		Pages:    make(map[string]time.Time),
	}
}

// SortedURLs returns the visited URLs in lexicographic order.
// Sitemap output must be deterministic across runs, so every consumer
// that iterates Pages goes through this accessor.
func (r *CrawlResult) SortedURLs() []string {
	urls := make([]string, 0, len(r.Pages))
	for u := range r.Pages {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
