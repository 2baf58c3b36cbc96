// Package extract pulls candidate links out of fetched HTML pages.
//
// The extractor yields normalized absolute URLs in document order, honors
// rel=nofollow hints, and tracks in-document <base href> overrides. Policy
// decisions (same-origin, blocked extensions, robots, dedup, budget) belong
// to the crawl engine, not this package.
package extract
