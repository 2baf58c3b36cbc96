// Package main provides the entry point for the sitemapgen CLI.
//
// sitemapgen crawls a web site from a given starting URL and generates a
// sitemap file in the format accepted by search engines. The crawler does
// not follow links to other sites, respects rel=nofollow hints, and will
// not crawl into directories disallowed by robots.txt.
//
// Usage:
//
//	sitemapgen generate http://www.example.com/index.html
//	sitemapgen generate -b doc -b bmp -o sitemap.xml http://www.example.com/
//
// See --help for all available options.
package main

// main is the entry point for sitemapgen.
func main() {
	Execute()
}
