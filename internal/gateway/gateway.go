// Package gateway mediates between the extraction pipeline and the store:
// it filters candidates through the reachability probe on the way in and
// prunes records whose links have gone dead.
package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"uninews/internal/news"
	"uninews/internal/storage"
)

// Prober reports URL reachability for a batch of links.
type Prober interface {
	Batch(ctx context.Context, urls []string) map[string]bool
}

// Store is the storage surface the gateway needs.
type Store interface {
	Insert(ctx context.Context, rec news.Record) (storage.InsertOutcome, error)
	ListLinks(ctx context.Context) ([]storage.StoredLink, error)
	DeleteRecords(ctx context.Context, ids []int64) error
}

// Gateway validates and persists news records.
type Gateway struct {
	store  Store
	prober Prober
	log    *zap.Logger
}

// New creates a Gateway.
func New(store Store, prober Prober, log *zap.Logger) *Gateway {
	return &Gateway{store: store, prober: prober, log: log}
}

// InsertBatch probes every record's link and inserts the reachable ones.
// Unreachable links and duplicate titles are skipped, not errors; any other
// storage failure aborts the batch and is returned with the count inserted
// so far.
func (g *Gateway) InsertBatch(ctx context.Context, records []news.Record) (int, error) {
	urls := make([]string, 0, len(records))
	for _, rec := range records {
		urls = append(urls, rec.Link)
	}
	reachable := g.prober.Batch(ctx, urls)

	inserted := 0
	for _, rec := range records {
		if !reachable[rec.Link] {
			g.log.Warn("link unreachable, skipping record",
				zap.String("link", truncate(rec.Link, 50)))
			continue
		}
		outcome, err := g.store.Insert(ctx, rec)
		if err != nil {
			return inserted, fmt.Errorf("inserting batch: %w", err)
		}
		switch outcome {
		case storage.Inserted:
			inserted++
		case storage.Duplicate:
			g.log.Debug("duplicate title, skipping",
				zap.String("title", truncate(rec.Title, 20)))
		}
	}
	return inserted, nil
}

// CleanupUnreachable scans every stored record, probes its link, and deletes
// the unreachable ones. Deletions commit in one transaction after the full
// scan, so a crash mid-scan nets zero deletions.
func (g *Gateway) CleanupUnreachable(ctx context.Context) (int, error) {
	links, err := g.store.ListLinks(ctx)
	if err != nil {
		return 0, err
	}

	urls := make([]string, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.Link)
	}
	reachable := g.prober.Batch(ctx, urls)

	var dead []int64
	for _, l := range links {
		if !reachable[l.Link] {
			dead = append(dead, l.ID)
			g.log.Warn("deleting record with dead link",
				zap.String("link", truncate(l.Link, 50)))
		}
	}

	if err := g.store.DeleteRecords(ctx, dead); err != nil {
		return 0, err
	}
	return len(dead), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
