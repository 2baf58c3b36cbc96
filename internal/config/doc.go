// Package config defines the crawl configuration, its defaults, and its
// validation rules.
//
// Configuration flows from three layers, weakest first: built-in defaults,
// the optional .sitemapgen YAML file (with per-host overrides), and CLI
// flags. Validation happens once, after all layers are merged and before
// any crawling starts; configuration errors are fatal.
package config
