// internal/local/batch.go
package local

import (
	"context"
	"runtime"
	"sync"

	"github.com/law-makers/sgai/pkg/models"
)

// FetchResult pairs one page of a batch with its fetch error
type FetchResult struct {
	URL   string
	Data  *models.PageData
	Error error
}

// OptimalConcurrency sizes the fetch worker count for I/O bound work
func OptimalConcurrency() int {
	numCPU := runtime.NumCPU()

	optimal := numCPU * 3
	if optimal < numCPU {
		optimal = numCPU
	}
	if optimal > 32 {
		optimal = 32
	}
	return optimal
}

// FetchAll fetches every URL concurrently with at most concurrency workers
// and streams results as they finish. The channel closes when all URLs are
// done or the context is cancelled. Order is not preserved.
func (e *Engine) FetchAll(ctx context.Context, urls []string, opts models.FetchOptions, concurrency int) <-chan FetchResult {
	if concurrency <= 0 {
		concurrency = OptimalConcurrency()
	}

	results := make(chan FetchResult, len(urls))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup

	go func() {
		for _, u := range urls {
			select {
			case <-ctx.Done():
				wg.Wait()
				close(results)
				return
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(target string) {
				defer wg.Done()
				defer func() { <-sem }()

				pageOpts := opts
				pageOpts.URL = target
				data, err := e.Fetch(ctx, pageOpts)
				results <- FetchResult{URL: target, Data: data, Error: err}
			}(u)
		}

		wg.Wait()
		close(results)
	}()

	return results
}
