package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/nao1215/sitemapgen/internal/model"
)

// TestWriterOutput tests the rendered document structure.
func TestWriterOutput(t *testing.T) {
	t.Parallel()

	t.Run("renders URLs in lexicographic order", func(t *testing.T) {
		t.Parallel()

		result := model.NewCrawlResult("http://example.com/")
		ts := time.Date(2020, 3, 14, 23, 59, 0, 0, time.UTC)
		result.Pages["http://example.com/b"] = ts
		result.Pages["http://example.com/a"] = ts
		result.Pages["http://example.com/c"] = ts

		var out strings.Builder
		n, err := NewWriter(&out).Write(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != out.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, out.Len())
		}

		doc := out.String()
		ia := strings.Index(doc, "http://example.com/a")
		ib := strings.Index(doc, "http://example.com/b")
		ic := strings.Index(doc, "http://example.com/c")
		if ia < 0 || ib < 0 || ic < 0 || !(ia < ib && ib < ic) {
			t.Errorf("URLs not in lexicographic order:\n%s", doc)
		}

		if !strings.Contains(doc, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
			t.Error("missing urlset namespace declaration")
		}
		if !strings.Contains(doc, "<lastmod>2020-03-14</lastmod>") {
			t.Error("missing or misformatted lastmod")
		}
	})

	t.Run("is stable across repeated runs", func(t *testing.T) {
		t.Parallel()

		result := model.NewCrawlResult("http://example.com/")
		ts := time.Now()
		for _, p := range []string{"/x", "/m", "/a", "/q", "/b"} {
			result.Pages["http://example.com"+p] = ts
		}

		var first, second strings.Builder
		if _, err := NewWriter(&first).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewWriter(&second).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.String() != second.String() {
			t.Error("output differs between runs")
		}
	})

	t.Run("escapes XML special characters in loc", func(t *testing.T) {
		t.Parallel()

		result := model.NewCrawlResult("http://example.com/")
		result.Pages["http://example.com/s?a=1&b=<2>"] = time.Now()

		var out strings.Builder
		if _, err := NewWriter(&out).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "<loc>http://example.com/s?a=1&amp;b=&lt;2&gt;</loc>") {
			t.Errorf("loc not escaped:\n%s", out.String())
		}
	})

	t.Run("omits lastmod for zero timestamps", func(t *testing.T) {
		t.Parallel()

		result := model.NewCrawlResult("http://example.com/")
		result.Pages["http://example.com/"] = time.Time{}

		var out strings.Builder
		if _, err := NewWriter(&out).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.String(), "<lastmod>") {
			t.Error("lastmod emitted for zero timestamp")
		}
	})
}

// TestWriterOptions tests changefreq and priority rendering.
func TestWriterOptions(t *testing.T) {
	t.Parallel()

	result := model.NewCrawlResult("http://example.com/")
	result.Pages["http://example.com/"] = time.Now()

	t.Run("changefreq and priority emitted when set", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		w := NewWriter(&out, WithChangeFreq("weekly"), WithPriority(0.75))
		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out.String(), "<changefreq>weekly</changefreq>") {
			t.Error("missing changefreq")
		}
		// One decimal place.
		if !strings.Contains(out.String(), "<priority>0.8</priority>") {
			t.Errorf("expected priority 0.8, got:\n%s", out.String())
		}
	})

	t.Run("zero priority and empty changefreq omitted", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		if _, err := NewWriter(&out).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.String(), "<priority>") {
			t.Error("priority emitted despite zero value")
		}
		if strings.Contains(out.String(), "<changefreq>") {
			t.Error("changefreq emitted despite empty label")
		}
	})
}

// TestValidChangeFreq tests the label validation helper.
func TestValidChangeFreq(t *testing.T) {
	t.Parallel()

	for _, label := range ChangeFreqs {
		if !ValidChangeFreq(label) {
			t.Errorf("expected %q to be valid", label)
		}
	}
	if !ValidChangeFreq("") {
		t.Error("empty label should be valid (omit)")
	}
	for _, label := range []string{"sometimes", "WEEKLY", "annually"} {
		if ValidChangeFreq(label) {
			t.Errorf("expected %q to be invalid", label)
		}
	}
}
