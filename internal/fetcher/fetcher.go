package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/sitemapgen/internal/ratelimit"
)

// Default fetcher settings.
const (
	// DefaultTimeout is the per-request timeout. Ten seconds is generous
	// enough for slow origins while keeping the single-worker crawl moving.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies sitemapgen in HTTP requests.
	// Using a descriptive User-Agent is good practice and allows operators
	// to identify crawler traffic in their logs.
	DefaultUserAgent = "sitemapgen/1.0 (+https://github.com/nao1215/sitemapgen)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 10MB is sufficient for any sane HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// maxRedirects bounds internal redirect following (robots.txt fetches).
	// Page fetches never follow redirects; the engine handles them.
	maxRedirects = 10
)

// Fetcher issues rate-limited HTTP GET requests and classifies the outcome.
//
// Design decision: We use a struct with a shared http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeouts, redirect policy) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers
type Fetcher struct {
	// client is the HTTP client. Automatic redirect following is disabled;
	// redirects are surfaced to the caller or followed explicitly.
	client *http.Client

	// limiter throttles fetch starts. Nil means unlimited.
	limiter *ratelimit.Limiter

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits the response body size to prevent memory exhaustion.
	maxBodySize int64
}

// Result is the outcome of a successful or redirected fetch.
// Exactly one of the two shapes applies: when RedirectTo is non-empty the
// fetch ended in a redirect and Body/LastModified are not meaningful;
// otherwise Body holds the page content and LastModified the resolved
// timestamp. Transport and protocol errors are returned as errors instead.
type Result struct {
	// Body is the response content.
	Body []byte

	// LastModified is the page timestamp: the Last-Modified header if
	// parseable, else the Date header, else the fetch start time.
	LastModified time.Time

	// RedirectTo is the absolute redirect target for 301/302/303/307
	// responses, re-encoded and resolved against the request URL.
	RedirectTo string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRateLimiter sets the rate limiter applied before each request.
func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// New creates a Fetcher.
//
// Design decision: The fetcher owns its http.Client rather than accepting
// one because the redirect policy is part of the fetcher's contract: the
// client must never follow redirects on its own, otherwise the engine
// cannot do frontier bookkeeping for redirected URLs.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// UserAgent returns the User-Agent header the fetcher sends.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// Fetch performs one rate-limited GET of the given URL.
//
// When followRedirects is false, a 301/302/303/307 response is returned as
// a Result with RedirectTo set and the caller decides what to do with it.
// When followRedirects is true, redirects are followed internally up to
// maxRedirects hops and the final page is returned; this mode is used for
// robots.txt, where only the final content matters.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, followRedirects bool) (*Result, error) {
	current := rawURL
	for i := 0; i < maxRedirects; i++ {
		res, err := f.fetchOnce(ctx, current)
		if err != nil {
			return nil, err
		}
		if res.RedirectTo == "" || !followRedirects {
			return res, nil
		}
		current = res.RedirectTo
	}
	return nil, fmt.Errorf("%w: %s", ErrTooManyRedirects, rawURL)
}

// fetchOnce performs a single GET without following redirects.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*Result, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort cleanup

	if isRedirect(resp.StatusCode) {
		target, err := redirectTarget(req.URL, resp)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
		}
		return &Result{RedirectTo: target}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", rawURL, ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", rawURL, err)
	}

	return &Result{
		Body:         body,
		LastModified: lastModified(resp.Header, start),
	}, nil
}

// isRedirect reports whether the status is one of the four redirect codes
// the crawler handles. 308 is deliberately excluded to match the documented
// redirect semantics.
func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther, http.StatusTemporaryRedirect:
		return true
	}
	return false
}

// redirectTarget resolves the Location header of a redirect response to an
// absolute URL.
//
// Header values are transport-decoded as ISO-8859-1, losing the original
// byte fidelity, so non-ASCII and unsafe bytes must be percent-encoded
// again before the value can be treated as a URL.
func redirectTarget(reqURL *url.URL, resp *http.Response) (string, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("%w (status %d)", ErrMissingLocation, resp.StatusCode)
	}

	u, err := url.Parse(encodeLocation(location))
	if err != nil {
		return "", fmt.Errorf("invalid Location %q: %w", location, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp", "":
	default:
		return "", fmt.Errorf("%w: %q", ErrDisallowedScheme, u.Scheme)
	}

	// A URL like "http://example.com?q=1" has an empty path; normalize it
	// to "/" so the frontier never holds two spellings of the site root.
	if u.Path == "" && u.Host != "" {
		u.Path = "/"
	}

	return reqURL.ResolveReference(u).String(), nil
}

// encodeLocation percent-encodes every byte of a Location header value that
// is not a printable ASCII character. Existing percent escapes and URL
// punctuation are left untouched.
func encodeLocation(location string) string {
	var b strings.Builder
	b.Grow(len(location))
	for i := 0; i < len(location); i++ {
		c := location[i]
		if c <= 0x20 || c >= 0x7f {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// lastModified resolves the page timestamp from response headers.
// Unparseable or missing dates fall back to the fetch start time.
func lastModified(header http.Header, fallback time.Time) time.Time {
	value := header.Get("Last-Modified")
	if value == "" {
		value = header.Get("Date")
	}
	if value == "" {
		return fallback
	}

	t, err := http.ParseTime(value)
	if err != nil {
		return fallback
	}
	return t
}
