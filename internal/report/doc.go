// Package report renders crawl summaries for the operator.
//
// Two formats are available: a plain-text summary for terminal display and
// a Markdown summary for documentation. Both consume the same read-only
// crawl result the sitemap writer consumes.
package report
