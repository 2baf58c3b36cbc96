package extract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Extractor parses one fetched page and yields candidate links.
//
// Design decision: We use the golang.org/x/net/html tokenizer rather than
// building a full DOM because:
//  1. It correctly handles malformed HTML common on the web
//  2. Link extraction only needs start tags, not the tree structure
//  3. Tokenizing streams the document in a single pass in document order
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract tokenizes the page and returns the candidate link URLs in
// document order, each resolved to an absolute form with its fragment
// stripped. The returned base URL is the effective base after any
// <base href> tag (first occurrence wins).
//
// Anchors whose rel attribute contains the token "nofollow" yield no link.
// Anchors resolve against the in-document base, not the page URL, once a
// <base> tag has been seen.
//
// Content that is not valid UTF-8 returns ErrInvalidEncoding and zero
// links; the caller treats the page as visited anyway.
func (e *Extractor) Extract(baseURL string, content []byte) (string, []string, error) {
	if !utf8.Valid(content) {
		return baseURL, nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, baseURL)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL, nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	var (
		links    []string
		baseSeen bool
	)

	tokenizer := html.NewTokenizer(strings.NewReader(string(content)))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF ends the document; real tokenizer errors cannot
			// occur on an in-memory reader.
			return base.String(), links, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "base":
				if baseSeen {
					continue
				}
				if href := attrValue(token, "href"); href != "" {
					if resolved := resolve(base, href); resolved != nil {
						base = resolved
						baseSeen = true
					}
				}
			case "a":
				if link, ok := anchorTarget(base, token); ok {
					links = append(links, link)
				}
			}
		}
	}
}

// anchorTarget extracts the candidate URL from an <a> tag.
// It returns false when the tag carries rel=nofollow or has no usable href.
func anchorTarget(base *url.URL, token html.Token) (string, bool) {
	var href string
	for _, attr := range token.Attr {
		switch strings.ToLower(attr.Key) {
		case "rel":
			if containsToken(attr.Val, "nofollow") {
				return "", false
			}
		case "href":
			if href != "" {
				continue // first href wins
			}
			if !strings.HasPrefix(strings.ToLower(attr.Val), "mailto:") {
				href = attr.Val
			}
		}
	}

	if href == "" {
		return "", false
	}

	resolved := resolve(base, href)
	if resolved == nil {
		return "", false
	}
	return resolved.String(), true
}

// resolve joins href against base and strips the fragment.
// It returns nil when href does not parse as a URL reference.
func resolve(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved
}

// containsToken reports whether a space-separated attribute value contains
// the given token, compared case-insensitively.
func containsToken(value, token string) bool {
	for _, field := range strings.Fields(value) {
		if strings.EqualFold(field, token) {
			return true
		}
	}
	return false
}

// attrValue returns the value of the first attribute with the given name.
func attrValue(token html.Token, name string) string {
	for _, attr := range token.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val
		}
	}
	return ""
}
