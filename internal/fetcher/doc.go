// Package fetcher performs rate-limited HTTP page retrieval for the crawler.
//
// The fetcher issues exactly one GET per call and classifies the outcome:
// success (content plus a resolved last-modified timestamp), redirect (the
// absolute target of a 301/302/303/307 response), or an error. It never
// follows redirects on page fetches; the crawl engine owns that decision so
// it can keep the frontier's redirect bookkeeping correct. Robots.txt
// fetches opt into internal redirect following instead.
//
// All outcome state is returned, not retained; the fetcher has no side
// effects beyond the network call and the rate limiter's pacing.
package fetcher
