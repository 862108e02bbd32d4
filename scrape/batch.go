package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/pagescrape"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Batch.Concurrency is not positive.
const DefaultConcurrency = pagescrape.DefaultConcurrency

// Batch scrapes many inputs concurrently and pushes each record to a sink.
type Batch struct {
	Scraper     *Scraper
	Sink        pagescrape.ResultSink
	Concurrency int
}

// Run scrapes every input and returns the records in input order. Records
// are pushed to the sink one at a time as they complete. A sink error stops
// the batch and is returned; records not yet produced are left nil.
func (b *Batch) Run(ctx context.Context, inputs []pagescrape.Input) ([]*pagescrape.ScrapeResult, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*pagescrape.ScrapeResult, len(inputs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := b.Scraper.Scrape(gctx, in)

			mu.Lock()
			defer mu.Unlock()
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r
			if b.Sink == nil {
				return nil
			}
			return b.Sink.Push(gctx, r)
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
