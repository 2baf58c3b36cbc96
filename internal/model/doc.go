// Package model defines the core data structures used throughout sitemapgen.
//
// This package contains the following main types:
//   - PageEntry: the per-URL frontier value (unvisited or visited+timestamp)
//   - CrawlResult: the final URL-to-date mapping plus crawl statistics
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawler, sitemap, report) need to use these
// types, so centralizing them prevents import cycles.
package model
