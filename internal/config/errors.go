package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoStartURL is returned when no starting URL is given.
	ErrNoStartURL = errors.New("no start URL specified: provide the starting URL as an argument")

	// ErrInvalidStartURL is returned when the starting URL is not an
	// absolute http or https URL.
	ErrInvalidStartURL = errors.New("invalid start URL: must be an absolute http or https URL")

	// ErrInvalidChangeFreq is returned when the change frequency is not
	// one of: always, hourly, daily, weekly, monthly, yearly, never.
	ErrInvalidChangeFreq = errors.New("invalid changefreq: allowed values are always, hourly, daily, weekly, monthly, yearly, never")

	// ErrInvalidPriority is returned when the priority is outside [0.0, 1.0].
	ErrInvalidPriority = errors.New("invalid priority: must be between 0.0 and 1.0")

	// ErrInvalidMaxURLs is returned when the URL budget is outside [1, 50000].
	ErrInvalidMaxURLs = errors.New("invalid max-urls: must be between 1 and 50000")

	// ErrInvalidRateLimit is returned when the rate limit is negative.
	// Use 0 for unlimited.
	ErrInvalidRateLimit = errors.New("invalid ratelimit: must be non-negative")

	// ErrInvalidOutputFile is returned for unusable output paths.
	ErrInvalidOutputFile = errors.New("invalid output file: must not be empty, \".\", or \"..\"")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidReportFormat is returned for unknown summary formats.
	ErrInvalidReportFormat = errors.New("invalid report format: allowed values are text and markdown")
)
