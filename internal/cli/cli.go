// Package cli wires the components together behind a run-once command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uninews/internal/config"
	"uninews/internal/crawl"
	"uninews/internal/extract"
	"uninews/internal/fetch"
	"uninews/internal/gateway"
	"uninews/internal/logging"
	"uninews/internal/probe"
	"uninews/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagFormat      string
	flagVerbose     bool
	flagSkipCleanup bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninews",
		Short: "Crawl university news listings into a local database",
		Long: `Fetches configured university news listing pages, extracts news items
(title, link, publication date) from their HTML, categorizes and
deduplicates them, stores them in SQLite, and prunes records whose links
have gone dead.`,
		SilenceUsage: true,
		RunE:         runOnce,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "Path to YAML configuration")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging with colored output")
	cmd.Flags().BoolVar(&flagSkipCleanup, "skip-cleanup", false, "Skip the dead-link cleanup pass")

	return cmd
}

// runOnce executes a single crawl-and-cleanup pass. Only configuration,
// store-open, and schema-initialization failures surface as a non-zero
// exit; per-site and per-record failures are logged and absorbed.
func runOnce(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(flagVerbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	fetcher := fetch.New(time.Duration(cfg.Fetch.TimeoutSec)*time.Second, cfg.Fetch.UserAgent)
	prober := probe.New(time.Duration(cfg.Probe.TimeoutSec)*time.Second, cfg.Probe.Workers, log)
	extractor := extract.New(log)
	gw := gateway.New(store, prober, log)
	crawler := crawl.New(fetcher, extractor, gw, log, cfg.Crawl.SiteWorkers)

	log.Info("starting crawl", zap.Int("sites", len(cfg.Sites)))
	summary := crawler.Run(ctx, cfg.Sites, flagSkipCleanup)

	log.Info("run complete",
		zap.Int("sites_processed", summary.SitesProcessed),
		zap.Int("sites_failed", summary.SitesFailed),
		zap.Int("records_inserted", summary.Inserted),
		zap.Int("records_deleted", summary.Deleted))

	if err := WriteSummary(os.Stdout, summary, format); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
