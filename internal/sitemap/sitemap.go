// Package sitemap renders the final URL-to-date mapping as a sitemap
// document in the sitemaps.org 0.9 XML format.
//
// The writer makes no decisions: admission, deduplication, and policy all
// happened in the crawl engine. Rendering is deterministic; URLs are
// emitted in lexicographic order so repeated runs produce identical files.
package sitemap

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/sitemapgen/internal/model"
)

// Namespace is the sitemap protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreqs lists the change-frequency labels the sitemap protocol allows.
var ChangeFreqs = []string{"always", "hourly", "daily", "weekly", "monthly", "yearly", "never"}

// ValidChangeFreq reports whether the label is one of the allowed
// change-frequency values. The empty string is valid and means "omit".
func ValidChangeFreq(label string) bool {
	if label == "" {
		return true
	}
	for _, allowed := range ChangeFreqs {
		if label == allowed {
			return true
		}
	}
	return false
}

// Writer renders sitemap documents to an io.Writer.
type Writer struct {
	output io.Writer

	// changeFreq is emitted for every URL when non-empty.
	changeFreq string

	// priority is emitted with one decimal place, only when > 0.0.
	priority float64
}

// Option configures a Writer.
type Option func(*Writer)

// WithChangeFreq sets the change-frequency label for all entries.
func WithChangeFreq(label string) Option {
	return func(w *Writer) {
		w.changeFreq = label
	}
}

// WithPriority sets the priority value for all entries.
// Zero means "omit the element".
func WithPriority(priority float64) Option {
	return func(w *Writer) {
		w.priority = priority
	}
}

// NewWriter creates a Writer that renders to the given output.
func NewWriter(output io.Writer, opts ...Option) *Writer {
	w := &Writer{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the visited pages of the crawl result as a sitemap.
// It returns the number of bytes written.
func (w *Writer) Write(result *model.CrawlResult) (int, error) {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<urlset xmlns=%q>\n", Namespace)

	for _, u := range result.SortedURLs() {
		b.WriteString("<url>\n")
		fmt.Fprintf(&b, "  <loc>%s</loc>\n", escape(u))
		if lastMod := result.Pages[u]; !lastMod.IsZero() {
			fmt.Fprintf(&b, "  <lastmod>%s</lastmod>\n", lastMod.Format("2006-01-02"))
		}
		if w.changeFreq != "" {
			fmt.Fprintf(&b, "  <changefreq>%s</changefreq>\n", w.changeFreq)
		}
		if w.priority > 0.0 {
			fmt.Fprintf(&b, "  <priority>%.1f</priority>\n", w.priority)
		}
		b.WriteString("</url>\n")
	}

	b.WriteString("</urlset>\n")

	return io.WriteString(w.output, b.String())
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escape escapes the characters with special meaning in XML character data.
func escape(s string) string {
	return escaper.Replace(s)
}
