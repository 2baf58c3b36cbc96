package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/sitemapgen/internal/model"
)

// MarkdownWriter outputs crawl summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown output
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the crawl summary in Markdown format.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Sitemap Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + result.StartURL + "`"},
			{"Pages visited", strconv.Itoa(result.Stats.Visited)},
			{"Redirects", strconv.Itoa(result.Stats.Redirected)},
			{"Failures", strconv.Itoa(result.Stats.Failed)},
			{"Robots-blocked", strconv.Itoa(result.Stats.RobotsBlocked)},
			{"Duration", result.Stats.Duration.String()},
			{"Status", statusText(result)},
		},
	})
	md.PlainText("")

	if len(result.Pages) > 0 {
		md.H2("Visited URLs")
		urls := result.SortedURLs()
		items := make([]string, 0, len(urls))
		for _, u := range urls {
			items = append(items, "`"+u+"`")
		}
		md.BulletList(items...)
	}

	return len(md.String()), md.Build()
}

// statusText returns the status cell based on the crawl outcome.
func statusText(result *model.CrawlResult) string {
	if result.Stats.Interrupted {
		return "interrupted (partial result)"
	}
	return "complete"
}
