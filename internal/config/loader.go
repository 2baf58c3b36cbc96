package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sitemapgen"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// SiteConfig holds crawl options for a single site, or the defaults
// applied to every site.
type SiteConfig struct {
	// Block lists file extensions (without the leading dot) to exclude.
	Block []string `yaml:"block,omitempty"`

	// ChangeFreq is the change-frequency label for sitemap entries.
	ChangeFreq string `yaml:"changefreq,omitempty"`

	// Priority is the priority value for sitemap entries.
	Priority float64 `yaml:"priority,omitempty"`

	// MaxURLs overrides the URL budget. Zero keeps the global value.
	MaxURLs int `yaml:"maxUrls,omitempty"`

	// RateLimit is the fetch rate limit in requests per second.
	RateLimit float64 `yaml:"ratelimit,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File represents the structure of the .sitemapgen configuration file.
type File struct {
	// Defaults applies to every crawled site unless overridden.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Sites maps host names (e.g., "www.example.com") to site-specific
	// overrides.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`
}

// LoadConfigFile loads crawl configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .sitemapgen in the current directory
//  3. Look for .sitemapgen in the XDG config directory
//  4. Look for .sitemapgen in the user's home directory
//
// Returns the path to the configuration file if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Merge folds the file configuration for the start URL's host into the
// Config. Values the file does not set are left untouched; values the
// user set on the command line take precedence and are applied by the
// caller after this merge.
func (c *Config) Merge(cf *File) {
	if cf == nil {
		return
	}

	site := cf.Defaults
	if u, err := url.Parse(c.StartURL); err == nil {
		if override, ok := cf.Sites[u.Host]; ok {
			site = mergeSiteConfig(cf.Defaults, override)
		}
	}

	if len(site.Block) > 0 {
		c.BlockedExtensions = site.Block
	}
	if site.ChangeFreq != "" {
		c.ChangeFreq = site.ChangeFreq
	}
	if site.Priority != 0 {
		c.Priority = site.Priority
	}
	if site.MaxURLs != 0 {
		c.MaxURLs = site.MaxURLs
	}
	if site.RateLimit != 0 {
		c.RateLimit = site.RateLimit
	}
	if site.UserAgent != "" {
		c.UserAgent = site.UserAgent
	}
}

// mergeSiteConfig merges default config with site-specific overrides.
func mergeSiteConfig(defaults, override SiteConfig) SiteConfig {
	result := defaults

	if len(override.Block) > 0 {
		result.Block = override.Block
	}
	if override.ChangeFreq != "" {
		result.ChangeFreq = override.ChangeFreq
	}
	if override.Priority != 0 {
		result.Priority = override.Priority
	}
	if override.MaxURLs != 0 {
		result.MaxURLs = override.MaxURLs
	}
	if override.RateLimit != 0 {
		result.RateLimit = override.RateLimit
	}
	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}

	return result
}
