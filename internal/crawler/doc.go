// Package crawler implements the crawl engine at the heart of sitemapgen.
//
// # Architecture
//
// The Engine owns the frontier: the set of discovered URLs, their
// visitation state, and their resolved last-modified dates. It drives the
// fetch/extract loop, applies the robots policy and deduplication, and
// bounds the total number of discovered URLs.
//
// # State machine
//
// Each URL moves through exactly one of these paths:
//
//	unvisited -> visited(timestamp)     successful fetch
//	unvisited -> discarded(redirected)  HTTP 301/302/303/307
//	unvisited -> discarded(failed)      transport or protocol error
//
// The set of keys ever inserted into the frontier or the redirect set grows
// monotonically; the loop terminates when no unvisited URL remains. A URL
// recorded as redirected is permanently excluded from re-admission, which
// breaks redirect loops.
//
// # Concurrency
//
// One URL is fetched, parsed, and merged at a time, so frontier mutation
// needs no locking. The context is honored between iterations; on
// cancellation the partial frontier is still handed to the caller.
package crawler
