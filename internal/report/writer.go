package report

import (
	"io"

	"github.com/nao1215/sitemapgen/internal/model"
)

// Writer defines the interface for crawl summary output.
// Implementations render the same crawl result in different formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers
// with the same API.
type Writer interface {
	// Write outputs the crawl summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.CrawlResult) (int, error)
}

// baseWriter provides the common output plumbing for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
