package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/sitemapgen/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display after a crawl finishes.
type SimpleWriter struct {
	baseWriter

	// verbose adds the full URL listing to the summary.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-URL listing in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the crawl summary in human-readable format.
func (w *SimpleWriter) Write(result *model.CrawlResult) (int, error) {
	var b strings.Builder

	b.WriteString("Crawl summary\n")
	b.WriteString("=============\n")
	fmt.Fprintf(&b, "Start URL:      %s\n", result.StartURL)
	fmt.Fprintf(&b, "Pages visited:  %d\n", result.Stats.Visited)
	fmt.Fprintf(&b, "Redirects:      %d\n", result.Stats.Redirected)
	fmt.Fprintf(&b, "Failures:       %d\n", result.Stats.Failed)
	fmt.Fprintf(&b, "Robots-blocked: %d\n", result.Stats.RobotsBlocked)
	fmt.Fprintf(&b, "Duration:       %s\n", result.Stats.Duration.Round(time.Millisecond))
	if result.Stats.Interrupted {
		b.WriteString("Status:         interrupted (partial result)\n")
	} else {
		b.WriteString("Status:         complete\n")
	}

	if w.verbose && len(result.Pages) > 0 {
		b.WriteString("\nVisited URLs:\n")
		for _, u := range result.SortedURLs() {
			fmt.Fprintf(&b, "  %s\n", u)
		}
	}

	return io.WriteString(w.output, b.String())
}
