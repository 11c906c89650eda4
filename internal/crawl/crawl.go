// Package crawl orchestrates a single run: every configured site is
// fetched, extracted, and persisted, then dead links are pruned. Failure
// isolation is per-site and per-link, never global.
package crawl

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"uninews/internal/config"
	"uninews/internal/extract"
	"uninews/internal/news"
)

// Fetcher downloads a listing page as UTF-8 text.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Extractor recovers candidates from listing-page HTML.
type Extractor interface {
	Extract(htmlContent, baseURL string) ([]extract.Candidate, error)
}

// Gateway persists validated records and prunes dead ones.
type Gateway interface {
	InsertBatch(ctx context.Context, records []news.Record) (int, error)
	CleanupUnreachable(ctx context.Context) (int, error)
}

// Summary is the user-visible outcome of a run.
type Summary struct {
	SitesProcessed int
	SitesFailed    int
	Inserted       int
	Deleted        int
}

// Crawler runs the per-site pipeline.
type Crawler struct {
	fetcher     Fetcher
	extractor   Extractor
	gateway     Gateway
	log         *zap.Logger
	siteWorkers int
}

// New creates a Crawler that processes sites on a pool of siteWorkers
// goroutines. Fetch and extract are read-only per site, so sites
// parallelize freely; insert serialization is the store's unique
// constraint, no extra locking needed.
func New(fetcher Fetcher, extractor Extractor, gw Gateway, log *zap.Logger, siteWorkers int) *Crawler {
	if siteWorkers < 1 {
		siteWorkers = 1
	}
	return &Crawler{
		fetcher:     fetcher,
		extractor:   extractor,
		gateway:     gw,
		log:         log,
		siteWorkers: siteWorkers,
	}
}

// Run processes every site and, unless skipCleanup is set, prunes stored
// records whose links no longer respond. Per-site failures are logged and
// counted, never escalated.
func (c *Crawler) Run(ctx context.Context, sites []config.Site, skipCleanup bool) Summary {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		summary Summary
	)

	jobs := make(chan config.Site)
	for i := 0; i < c.siteWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for site := range jobs {
				inserted, err := c.processSite(ctx, site)
				mu.Lock()
				if err != nil {
					summary.SitesFailed++
				} else {
					summary.SitesProcessed++
				}
				summary.Inserted += inserted
				mu.Unlock()
			}
		}()
	}
	for _, site := range sites {
		jobs <- site
	}
	close(jobs)
	wg.Wait()

	if !skipCleanup {
		c.log.Info("cleaning up dead links")
		deleted, err := c.gateway.CleanupUnreachable(ctx)
		if err != nil {
			c.log.Error("cleanup failed", zap.Error(err))
		}
		summary.Deleted = deleted
	}

	return summary
}

func (c *Crawler) processSite(ctx context.Context, site config.Site) (int, error) {
	log := c.log.With(zap.String("university", site.Name), zap.String("url", site.URL))
	log.Info("processing site")

	body, err := c.fetcher.Get(ctx, site.URL)
	if err != nil {
		log.Warn("fetch failed, skipping site", zap.Error(err))
		return 0, err
	}

	candidates, err := c.extractor.Extract(body, site.URL)
	if err != nil {
		log.Warn("extraction failed, skipping site", zap.Error(err))
		return 0, err
	}

	records := make([]news.Record, 0, len(candidates))
	for _, cand := range candidates {
		records = append(records, news.Record{
			University: site.Name,
			Title:      cand.Title,
			Date:       cand.Date,
			Link:       cand.URL,
			Category:   news.Categorize(cand.Title),
		})
	}

	inserted, err := c.gateway.InsertBatch(ctx, records)
	if err != nil {
		log.Error("insert batch aborted", zap.Int("inserted", inserted), zap.Error(err))
		return inserted, err
	}

	log.Info("site done",
		zap.Int("candidates", len(candidates)),
		zap.Int("inserted", inserted))
	return inserted, nil
}
