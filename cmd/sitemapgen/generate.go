package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/sitemapgen/internal/config"
	"github.com/nao1215/sitemapgen/internal/crawler"
	"github.com/nao1215/sitemapgen/internal/fetcher"
	"github.com/nao1215/sitemapgen/internal/log"
	"github.com/nao1215/sitemapgen/internal/model"
	"github.com/nao1215/sitemapgen/internal/ratelimit"
	"github.com/nao1215/sitemapgen/internal/report"
	"github.com/nao1215/sitemapgen/internal/sitemap"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] <start-url>",
		Short: "Crawl a site and write its sitemap",
		Long: `Generate crawls a web site starting from the given URL and writes a
sitemap.xml file describing every page it discovered.

The crawl stays on the start URL's host, skips links marked rel=nofollow,
honors the site's robots.txt, and can be rate limited to stay polite.

Examples:
  # Crawl a site with the defaults (1000 URL budget, sitemap.xml output)
  sitemapgen generate http://www.example.com/index.html

  # Block doc and bmp files, write a custom output file
  sitemapgen generate -b doc -b bmp -o test_sitemap.xml http://www.example.com/

  # Annotate every entry and limit the crawl to two requests per second
  sitemapgen generate -c weekly -p 0.5 -r 2 http://www.example.com/

Configuration file (.sitemapgen) example:
  defaults:
    block: [doc, bmp]
    changefreq: weekly
  sites:
    www.example.com:
      priority: 0.8
      ratelimit: 2.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringSliceP("block", "b", nil,
		"Exclude URLs with the given extension (without the leading dot); repeatable")
	cmd.Flags().StringP("changefreq", "c", "",
		"Change frequency for all entries (always, hourly, daily, weekly, monthly, yearly, never)")
	cmd.Flags().Float64P("priority", "p", 0,
		"Priority for all entries, between 0.0 and 1.0 (0 omits the element)")
	cmd.Flags().IntP("max-urls", "m", config.DefaultMaxURLs,
		"Maximum number of URLs to crawl (1 to 50000)")
	cmd.Flags().Float64P("ratelimit", "r", 0,
		"Crawl rate limit in requests per second (0 = unlimited)")
	cmd.Flags().StringP("output-file", "o", config.DefaultOutputFile,
		"Name of the generated sitemap file")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().String("report", "",
		"Print a crawl summary in the given format (text or markdown)")
	cmd.Flags().String("config", "",
		"Configuration file path (default: .sitemapgen in current directory, XDG config directory, or home)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown.
	// An interrupt stops the crawl between iterations; the partial
	// frontier is still written out.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, finishing current page...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cfg, logger)
}

// buildConfig creates a Config from the config file and command flags.
// CLI flags take precedence over file values, which take precedence over
// the built-in defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.New()
	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	found := config.FindConfigFile(configPath)
	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cfg.Merge(cf)
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	// Flags the user set explicitly override file values; flags left at
	// their defaults only fill in what the file did not set.
	flags := cmd.Flags()
	if flags.Changed("block") || len(cfg.BlockedExtensions) == 0 {
		if cfg.BlockedExtensions, err = flags.GetStringSlice("block"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("changefreq") || cfg.ChangeFreq == "" {
		if cfg.ChangeFreq, err = flags.GetString("changefreq"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("priority") || cfg.Priority == 0 {
		if cfg.Priority, err = flags.GetFloat64("priority"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-urls") || cfg.MaxURLs == config.DefaultMaxURLs {
		if cfg.MaxURLs, err = flags.GetInt("max-urls"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("ratelimit") || cfg.RateLimit == 0 {
		if cfg.RateLimit, err = flags.GetFloat64("ratelimit"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") || cfg.UserAgent == config.DefaultUserAgent {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}

	if cfg.OutputFile, err = flags.GetString("output-file"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.ReportFormat, err = flags.GetString("report"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// URL attributes pass through credential redaction before being written.
func setupLogger(verbose bool) *slog.Logger {
	return log.New(os.Stderr, verbose)
}

// runGenerate executes the crawl and writes the sitemap.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"startURL", cfg.StartURL,
		"maxURLs", cfg.MaxURLs,
		"ratelimit", cfg.RateLimit,
		"output", cfg.OutputFile,
	)

	f := fetcher.New(
		fetcher.WithRateLimiter(ratelimit.New(cfg.RateLimit)),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
	)

	engine := crawler.New(f,
		crawler.WithMaxURLs(cfg.MaxURLs),
		crawler.WithBlockedExtensions(cfg.BlockedExtensions),
		crawler.WithRobotsAgent(robotsAgent(cfg.UserAgent)),
		crawler.WithLogger(logger),
	)

	fmt.Println("Crawling the site...")
	result, err := engine.Crawl(ctx, cfg.StartURL)
	if err != nil {
		if result == nil || !errors.Is(err, context.Canceled) {
			return err
		}
		// Interrupted: write out the consistent partial frontier.
		fmt.Fprintln(os.Stderr, "Crawl interrupted; writing partial sitemap.")
	}

	fmt.Printf("Generating sitemap: %d URLs\n", len(result.Pages))
	if err := writeSitemap(cfg, result); err != nil {
		return err
	}

	if err := writeReport(cfg, result); err != nil {
		return err
	}

	fmt.Println("Finished.")
	return nil
}

// writeSitemap renders the crawl result into the configured output file.
func writeSitemap(cfg *config.Config, result *model.CrawlResult) error {
	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create sitemap file: %w", err)
	}
	defer file.Close() //nolint:errcheck // double close is harmless here

	w := sitemap.NewWriter(file,
		sitemap.WithChangeFreq(cfg.ChangeFreq),
		sitemap.WithPriority(cfg.Priority),
	)
	if _, err := w.Write(result); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return file.Close()
}

// writeReport prints a crawl summary to stdout when a report format was
// requested.
func writeReport(cfg *config.Config, result *model.CrawlResult) error {
	var w report.Writer
	switch cfg.ReportFormat {
	case "":
		return nil
	case "text":
		w = report.NewSimpleWriter(os.Stdout, report.WithVerbose(cfg.Verbose))
	case "markdown":
		w = report.NewMarkdownWriter(os.Stdout)
	}
	if _, err := w.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// robotsAgent derives the robots.txt matching token from the User-Agent
// header: the product name before the first slash or space.
func robotsAgent(userAgent string) string {
	if i := strings.IndexAny(userAgent, "/ "); i > 0 {
		return userAgent[:i]
	}
	return userAgent
}
