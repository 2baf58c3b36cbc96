// Package log provides structured logging helpers for the crawler.
//
// The package wraps log/slog with a redacting handler that keeps
// credentials embedded in crawled URLs out of the log output and caps
// the length of URL-valued attributes.
package log
