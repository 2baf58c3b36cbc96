package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/sitemapgen/internal/extract"
	"github.com/nao1215/sitemapgen/internal/fetcher"
	"github.com/nao1215/sitemapgen/internal/model"
	"github.com/nao1215/sitemapgen/internal/robots"
)

// Default engine settings.
const (
	// DefaultMaxURLs is the default frontier size ceiling.
	DefaultMaxURLs = 1000

	// DefaultRobotsAgent is the agent token used for robots.txt matching.
	DefaultRobotsAgent = "sitemapgen"
)

// Engine crawls a single site and builds the frontier of discovered URLs.
//
// The engine owns all crawl state: the frontier (URL to visitation state),
// the set of URLs known to have redirected, and the fetch order. One URL is
// fetched, parsed, and merged at a time, so no locking is needed.
type Engine struct {
	// fetcher retrieves pages through the rate limiter.
	fetcher *fetcher.Fetcher

	// extractor pulls candidate links out of fetched pages.
	extractor *extract.Extractor

	// policy is the robots exclusion policy. When nil, Crawl loads it
	// from the start URL's origin.
	policy *robots.Policy

	// logger receives progress and non-fatal error reports.
	logger *slog.Logger

	// maxURLs bounds the number of frontier entries. Once reached, no
	// further discovery happens; already-queued URLs are still processed.
	maxURLs int

	// blockedExts holds blocked path suffixes in upper case with a
	// leading dot (".DOC").
	blockedExts []string

	// agent is the token used for robots.txt group matching.
	agent string

	// host is the start URL's host; candidates must match it exactly.
	host string

	// frontier maps each discovered URL to its visitation state.
	// A key, once present, is never re-added.
	frontier map[string]model.PageEntry

	// queue holds unvisited URLs in FIFO order. FIFO is not required by
	// the data model but makes crawls reproducible.
	queue []string

	// redirected records URLs that answered with a redirect. Membership
	// is permanent and excludes a URL from re-entering the frontier.
	redirected map[string]struct{}

	// stats accumulates per-URL outcomes.
	stats model.CrawlStats
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxURLs sets the frontier size ceiling.
func WithMaxURLs(n int) Option {
	return func(e *Engine) {
		e.maxURLs = n
	}
}

// WithBlockedExtensions sets the file extensions (without the leading dot)
// whose URLs are never admitted. Comparison is case-insensitive.
func WithBlockedExtensions(exts []string) Option {
	return func(e *Engine) {
		e.blockedExts = make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
			if ext == "" {
				continue
			}
			e.blockedExts = append(e.blockedExts, "."+strings.ToUpper(ext))
		}
	}
}

// WithRobotsPolicy injects a pre-loaded robots policy.
// Without this option, Crawl loads the policy from the site itself.
func WithRobotsPolicy(p *robots.Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithRobotsAgent sets the agent token for robots.txt matching.
func WithRobotsAgent(agent string) Option {
	return func(e *Engine) {
		e.agent = agent
	}
}

// WithLogger sets the logger for progress and non-fatal errors.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a crawl Engine using the given fetcher.
//
// Design decision: We require an external fetcher because rate limiting,
// timeouts, and the User-Agent are configured there once and shared with
// the robots.txt load, and tests can point the engine at httptest servers.
func New(f *fetcher.Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher:    f,
		extractor:  extract.New(),
		logger:     slog.Default(),
		maxURLs:    DefaultMaxURLs,
		agent:      DefaultRobotsAgent,
		frontier:   make(map[string]model.PageEntry),
		redirected: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Crawl crawls the site reachable from startURL and returns the final
// URL-to-date mapping. Individual page failures are logged and skipped;
// the crawl only stops when no unvisited URL remains, the URL budget is
// exhausted, or the context is cancelled.
//
// On cancellation the partial result is returned together with ctx.Err();
// the frontier is left in a consistent state and can still be written out.
func (e *Engine) Crawl(ctx context.Context, startURL string) (*model.CrawlResult, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL %q: %w", startURL, err)
	}
	if start.Scheme != "http" && start.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, startURL)
	}
	if start.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingHost, startURL)
	}

	start.Fragment = ""
	e.host = start.Host
	seed := start.String()

	if e.policy == nil {
		policy, err := robots.Load(ctx, e.fetcher, seed, e.logger)
		if err != nil {
			return nil, err
		}
		e.policy = policy
	}

	e.frontier[seed] = model.Unvisited()
	e.queue = append(e.queue, seed)

	began := time.Now()
	result := model.NewCrawlResult(seed)

	for len(e.queue) > 0 {
		select {
		case <-ctx.Done():
			e.stats.Interrupted = true
			e.finish(result, began)
			return result, ctx.Err()
		default:
		}

		current := e.queue[0]
		e.queue = e.queue[1:]

		e.logger.Info("fetching", "url", current)
		e.step(ctx, current)
	}

	e.finish(result, began)
	return result, nil
}

// step fetches one URL and applies the per-iteration state transitions.
func (e *Engine) step(ctx context.Context, current string) {
	res, err := e.fetcher.Fetch(ctx, current, false)
	switch {
	case err != nil:
		// Transport and redirect-protocol errors are non-fatal: the URL
		// is treated as if it had never been discovered.
		e.logger.Warn("fetch failed, skipping", "url", current, "error", err)
		delete(e.frontier, current)
		e.stats.Failed++

	case res.RedirectTo != "":
		target := stripFragment(res.RedirectTo)
		e.logger.Info("redirect", "url", current, "target", target)
		delete(e.frontier, current)
		e.redirected[current] = struct{}{}
		e.stats.Redirected++
		e.admitRedirectTarget(target)

	default:
		e.frontier[current] = model.Visited(res.LastModified)
		e.stats.Visited++
		e.mergeLinks(current, res.Body)
	}
}

// admitRedirectTarget admits a redirect target as a new unvisited entry
// when it stays on the same host, has not been seen before, and is
// robots-allowed. Blocked extensions are deliberately not checked here;
// the filter applies to discovered links only.
func (e *Engine) admitRedirectTarget(target string) {
	u, err := url.Parse(target)
	if err != nil || u.Host != e.host {
		return
	}
	if _, seen := e.frontier[target]; seen {
		return
	}
	if _, wasRedirect := e.redirected[target]; wasRedirect {
		return
	}
	if !e.policy.Allowed(target, e.agent) {
		e.logger.Info("redirect target restricted by robots.txt", "url", target)
		e.stats.RobotsBlocked++
		return
	}
	e.frontier[target] = model.Unvisited()
	e.queue = append(e.queue, target)
}

// mergeLinks extracts candidate links from a fetched page and admits the
// eligible ones into the frontier.
func (e *Engine) mergeLinks(pageURL string, content []byte) {
	_, links, err := e.extractor.Extract(pageURL, content)
	if err != nil {
		// The page still counts as visited; it just contributes no links.
		e.logger.Warn("link extraction failed", "url", pageURL, "error", err)
		return
	}

	for _, link := range links {
		e.admit(link)
	}
}

// admit inserts a candidate URL as a new unvisited frontier entry if every
// admission filter passes. Insertion is idempotent: already-present keys
// are silently ignored.
func (e *Engine) admit(candidate string) {
	if len(e.frontier) >= e.maxURLs {
		return
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Host != e.host {
		return
	}
	if e.hasBlockedExtension(u) {
		return
	}
	if _, seen := e.frontier[candidate]; seen {
		return
	}
	if _, wasRedirect := e.redirected[candidate]; wasRedirect {
		return
	}
	if !e.policy.Allowed(candidate, e.agent) {
		e.logger.Info("URL restricted by robots.txt", "url", candidate)
		e.stats.RobotsBlocked++
		return
	}

	e.frontier[candidate] = model.Unvisited()
	e.queue = append(e.queue, candidate)
}

// hasBlockedExtension reports whether the URL path ends with one of the
// blocked extensions, compared case-insensitively.
func (e *Engine) hasBlockedExtension(u *url.URL) bool {
	path := strings.ToUpper(u.Path)
	for _, ext := range e.blockedExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// finish copies the visited frontier entries into the result.
func (e *Engine) finish(result *model.CrawlResult, began time.Time) {
	for u, entry := range e.frontier {
		if entry.State == model.StateVisited {
			result.Pages[u] = entry.LastModified
		}
	}
	e.stats.Duration = time.Since(began)
	result.Stats = e.stats
}

// stripFragment removes the fragment from a URL string, leaving the rest
// untouched when the URL does not parse.
func stripFragment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	return u.String()
}
