package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/sitemapgen/internal/fetcher"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestLoad tests robots.txt loading behavior.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads and applies disallow rules", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/robots.txt" {
				fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
				return
			}
			http.NotFound(w, r)
		}))
		defer server.Close()

		policy, err := Load(context.Background(), fetcher.New(), server.URL+"/index.html", discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if policy.Allowed(server.URL+"/private/page.html", "sitemapgen") {
			t.Error("expected /private/page.html to be disallowed")
		}
		if !policy.Allowed(server.URL+"/public/page.html", "sitemapgen") {
			t.Error("expected /public/page.html to be allowed")
		}
	})

	t.Run("missing robots.txt allows everything", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		policy, err := Load(context.Background(), fetcher.New(), server.URL+"/", discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !policy.Allowed(server.URL+"/anything", "sitemapgen") {
			t.Error("expected allow-all policy when robots.txt is missing")
		}
	})

	t.Run("unreachable origin allows everything", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		target := server.URL
		server.Close()

		policy, err := Load(context.Background(), fetcher.New(), target+"/", discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !policy.Allowed(target+"/page", "sitemapgen") {
			t.Error("expected allow-all policy for unreachable robots.txt")
		}
	})

	t.Run("follows redirects to robots.txt", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/robots.txt":
				http.Redirect(w, r, "/real-robots.txt", http.StatusMovedPermanently)
			case "/real-robots.txt":
				fmt.Fprint(w, "User-agent: *\nDisallow: /blocked/\n")
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		policy, err := Load(context.Background(), fetcher.New(), server.URL+"/", discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.Allowed(server.URL+"/blocked/x", "sitemapgen") {
			t.Error("expected rules from redirected robots.txt to apply")
		}
	})
}

// TestPolicyAllowed tests matching rules against a parsed policy.
func TestPolicyAllowed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, `User-agent: *
Disallow: /tmp/
Disallow: /*.json$

User-agent: sitemapgen
Disallow: /staging/
`)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	policy, err := Load(context.Background(), fetcher.New(), server.URL+"/", discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		url   string
		agent string
		want  bool
	}{
		{"agent-specific group wins", server.URL + "/staging/a.html", "sitemapgen", false},
		{"wildcard group does not bind named agent", server.URL + "/tmp/x", "sitemapgen", true},
		{"wildcard group binds other agents", server.URL + "/tmp/x", "otherbot", false},
		{"dollar anchor", server.URL + "/data/file.json", "otherbot", false},
		{"plain page allowed", server.URL + "/index.html", "otherbot", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := policy.Allowed(tt.url, tt.agent); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.url, tt.agent, got, tt.want)
			}
		})
	}
}

// TestAllowAll tests the unrestricted policy.
func TestAllowAll(t *testing.T) {
	t.Parallel()

	policy := AllowAll()
	if !policy.Allowed("http://example.com/anything", "any-agent") {
		t.Error("AllowAll policy should allow everything")
	}

	var nilPolicy *Policy
	if !nilPolicy.Allowed("http://example.com/", "any-agent") {
		t.Error("nil policy should allow everything")
	}

	// Unparseable URLs are denied even by a permissive policy.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow:\n")
			return
		}
	}))
	defer server.Close()

	loaded, err := Load(context.Background(), fetcher.New(), server.URL+"/", discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Allowed("http://%zz invalid", "sitemapgen") {
		t.Error("expected unparseable URL to be denied")
	}
}
