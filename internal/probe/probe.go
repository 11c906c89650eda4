// Package probe checks URL reachability without downloading content.
package probe

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Prober issues lightweight existence checks against URLs.
type Prober struct {
	client  *http.Client
	workers int
	log     *zap.Logger
}

// New creates a Prober with the given per-probe timeout and worker-pool
// size for batch probing.
func New(timeout time.Duration, workers int, log *zap.Logger) *Prober {
	if workers < 1 {
		workers = 1
	}
	return &Prober{
		client:  &http.Client{Timeout: timeout},
		workers: workers,
		log:     log,
	}
}

// IsReachable issues a HEAD request, following redirects, and reports
// whether the URL answered with status 200. It never returns an error:
// a malformed URL, transport failure, or timeout all mean "unreachable" —
// absence of proof of reachability is itself the negative result.
func (p *Prober) IsReachable(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Debug("probe failed", zap.String("url", rawURL), zap.Error(err))
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Batch probes urls on a bounded worker pool and returns reachability keyed
// by URL. Probes are idempotent and side-effect free, so they can run in
// parallel safely; duplicate URLs are probed once.
func (p *Prober) Batch(ctx context.Context, urls []string) map[string]bool {
	results := make(map[string]bool, len(urls))
	jobs := make(chan string)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				ok := p.IsReachable(ctx, u)
				mu.Lock()
				results[u] = ok
				mu.Unlock()
			}
		}()
	}

	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	return results
}
