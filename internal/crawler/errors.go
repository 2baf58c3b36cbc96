package crawler

import "errors"

// Crawl setup errors. These are fatal: they are detected before any
// fetching starts.
var (
	// ErrUnsupportedScheme is returned when the start URL is not http or https.
	ErrUnsupportedScheme = errors.New("start URL must use http or https")

	// ErrMissingHost is returned when the start URL has no host component.
	ErrMissingHost = errors.New("start URL has no host")
)
