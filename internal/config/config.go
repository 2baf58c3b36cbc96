package config

import (
	"net/url"
	"time"

	"github.com/nao1215/sitemapgen/internal/sitemap"
)

// Default configuration values.
const (
	// DefaultMaxURLs is the default frontier size ceiling. The sitemap
	// protocol allows up to 50000 URLs in a single file; the default is
	// deliberately far below that.
	DefaultMaxURLs = 1000

	// MaxURLsLimit is the largest allowed frontier size. A single sitemap
	// file must not list more than 50000 URLs.
	MaxURLsLimit = 50000

	// DefaultOutputFile is the sitemap file written when -o is not given.
	DefaultOutputFile = "sitemap.xml"

	// DefaultTimeout is the per-request timeout. Ten seconds is enough
	// for slow origins without stalling the crawl on dead ones.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the crawler in HTTP requests and is
	// also the product token matched against robots.txt groups.
	DefaultUserAgent = "sitemapgen/1.0 (+https://github.com/nao1215/sitemapgen)"

	// DefaultMaxBodySize limits the response body size read per page.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// AppName is the application name used for XDG directory paths.
	AppName = "sitemapgen"
)

// Config holds all configuration options for one crawl invocation.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// StartURL is the absolute http/https URL the crawl starts from.
	StartURL string

	// BlockedExtensions are path suffixes (without the leading dot) whose
	// URLs are never admitted to the frontier. Case-insensitive.
	BlockedExtensions []string

	// ChangeFreq is the change-frequency label written for every sitemap
	// entry. Empty means the element is omitted.
	ChangeFreq string

	// Priority is the priority value written for every sitemap entry.
	// Must be in [0.0, 1.0]; 0.0 means the element is omitted.
	Priority float64

	// MaxURLs is the maximum number of URLs admitted to the frontier.
	// Must be in [1, MaxURLsLimit].
	MaxURLs int

	// RateLimit is the maximum fetch rate in requests per second.
	// Zero means unlimited.
	RateLimit float64

	// OutputFile is the sitemap file path. Must not be empty, ".", or "..".
	OutputFile string

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// ReportFormat selects the crawl summary format: "" (none),
	// "text", or "markdown".
	ReportFormat string

	// ConfigFilePath is an explicit config file path. When empty, the
	// default search locations are tried.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// New creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, max URLs).
// This also serves as documentation of what the defaults are.
func New() *Config {
	return &Config{
		MaxURLs:     DefaultMaxURLs,
		OutputFile:  DefaultOutputFile,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after CLI parsing, before any crawling
// begins, to fail fast with a clear message. The first error found is
// returned because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}

	u, err := url.Parse(c.StartURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidStartURL
	}

	if !sitemap.ValidChangeFreq(c.ChangeFreq) {
		return ErrInvalidChangeFreq
	}

	if c.Priority < 0.0 || c.Priority > 1.0 {
		return ErrInvalidPriority
	}

	if c.MaxURLs < 1 || c.MaxURLs > MaxURLsLimit {
		return ErrInvalidMaxURLs
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	switch c.OutputFile {
	case "", ".", "..":
		return ErrInvalidOutputFile
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	switch c.ReportFormat {
	case "", "text", "markdown":
	default:
		return ErrInvalidReportFormat
	}

	return nil
}
