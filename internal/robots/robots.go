// Package robots enforces the robots exclusion policy for the crawl.
//
// The policy is loaded once from /robots.txt at the start URL's origin and
// reused for every allow/deny check during the crawl. A missing or
// unreachable robots.txt degrades to "allow everything"; it never aborts
// the crawl.
//
// Design decision: We use github.com/temoto/robotstxt rather than parsing
// robots.txt ourselves because it implements the de-facto standard matching
// rules (longest-match precedence, wildcards, $ anchors) that hand-rolled
// prefix matching gets wrong.
package robots

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/nao1215/sitemapgen/internal/fetcher"
)

// Policy answers allow/deny checks against a site's robots.txt.
// The zero value and a policy loaded from an unreachable robots.txt both
// allow everything. A Policy is immutable once loaded.
type Policy struct {
	data *robotstxt.RobotsData
}

// AllowAll returns a policy with no restrictions.
func AllowAll() *Policy {
	return &Policy{}
}

// Load fetches and parses /robots.txt relative to the start URL's origin.
// The fetch follows redirects, since only the final robots content matters.
// When the file cannot be fetched or parsed, Load logs the fact and returns
// an unrestricted policy; callers must not treat that as fatal.
func Load(ctx context.Context, f *fetcher.Fetcher, startURL string, logger *slog.Logger) (*Policy, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL %q: %w", startURL, err)
	}

	robotsURL := start.ResolveReference(&url.URL{Path: "/robots.txt"}).String()

	res, err := f.Fetch(ctx, robotsURL, true)
	if err != nil {
		// ctx errors must still stop the crawl; only HTTP-level failures
		// degrade to allow-all.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("could not read robots.txt, allowing all URLs",
			"url", robotsURL, "error", err)
		return AllowAll(), nil
	}

	data, err := robotstxt.FromBytes(res.Body)
	if err != nil {
		logger.Warn("could not parse robots.txt, allowing all URLs",
			"url", robotsURL, "error", err)
		return AllowAll(), nil
	}

	logger.Debug("loaded robots.txt", "url", robotsURL)
	return &Policy{data: data}, nil
}

// Allowed reports whether the given URL may be crawled by the given agent.
// URLs that do not parse are denied.
func (p *Policy) Allowed(rawURL, agent string) bool {
	if p == nil || p.data == nil {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return p.data.TestAgent(path, agent)
}
