package fetcher

import "errors"

// Fetch errors.
//
// Design decision: We use package-level sentinel errors so the engine can
// classify outcomes with errors.Is() while the wrapped message still names
// the URL that failed.
var (
	// ErrUnexpectedStatus is returned for any non-2xx status that is not
	// one of the handled redirect codes (301, 302, 303, 307).
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrMissingLocation is returned when a redirect response carries no
	// Location header.
	ErrMissingLocation = errors.New("redirect without Location header")

	// ErrDisallowedScheme is returned when a redirect target uses a scheme
	// other than http, https, ftp, or a relative reference.
	ErrDisallowedScheme = errors.New("redirect to disallowed scheme")

	// ErrTooManyRedirects is returned when internal redirect following
	// exceeds the hop limit.
	ErrTooManyRedirects = errors.New("too many redirects")
)
