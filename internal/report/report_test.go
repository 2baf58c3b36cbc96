package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nao1215/sitemapgen/internal/model"
)

func sampleResult() *model.CrawlResult {
	result := model.NewCrawlResult("http://example.com/")
	result.Pages["http://example.com/"] = time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC)
	result.Pages["http://example.com/about"] = time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	result.Stats = model.CrawlStats{
		Visited:       2,
		Failed:        1,
		Redirected:    1,
		RobotsBlocked: 3,
		Duration:      1500 * time.Millisecond,
	}
	return result
}

// TestSimpleWriter tests the plain-text summary.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders statistics", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		n, err := NewSimpleWriter(&out).Write(sampleResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != out.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, out.Len())
		}

		doc := out.String()
		for _, want := range []string{
			"Start URL:      http://example.com/",
			"Pages visited:  2",
			"Redirects:      1",
			"Failures:       1",
			"Robots-blocked: 3",
			"Status:         complete",
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("missing %q in output:\n%s", want, doc)
			}
		}

		// Not verbose: no URL listing.
		if strings.Contains(doc, "Visited URLs") {
			t.Error("URL listing present without verbose option")
		}
	})

	t.Run("verbose lists URLs in order", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		if _, err := NewSimpleWriter(&out, WithVerbose(true)).Write(sampleResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc := out.String()
		root := strings.Index(doc, "http://example.com/\n")
		about := strings.Index(doc, "http://example.com/about")
		if root < 0 || about < 0 || root > about {
			t.Errorf("expected sorted URL listing:\n%s", doc)
		}
	})

	t.Run("marks interrupted crawls", func(t *testing.T) {
		t.Parallel()

		result := sampleResult()
		result.Stats.Interrupted = true

		var out strings.Builder
		if _, err := NewSimpleWriter(&out).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "interrupted (partial result)") {
			t.Errorf("missing interrupted status:\n%s", out.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown summary.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	if _, err := NewMarkdownWriter(&out).Write(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := out.String()
	for _, want := range []string{
		"# Sitemap Crawl Report",
		"`http://example.com/`",
		"## Visited URLs",
		"`http://example.com/about`",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q in output:\n%s", want, doc)
		}
	}
}
