package mock

import (
	"context"

	"github.com/fwojciec/pagescrape"
)

var _ pagescrape.ResultSink = (*ResultSink)(nil)

// ResultSink is a mock implementation of pagescrape.ResultSink.
type ResultSink struct {
	PushFn func(ctx context.Context, r *pagescrape.ScrapeResult) error
}

func (s *ResultSink) Push(ctx context.Context, r *pagescrape.ScrapeResult) error {
	return s.PushFn(ctx, r)
}

var _ pagescrape.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of pagescrape.ResultService.
type ResultService struct {
	PushFn        func(ctx context.Context, r *pagescrape.ScrapeResult) error
	FindResultsFn func(ctx context.Context, filter pagescrape.ResultFilter) ([]*pagescrape.ScrapeResult, error)
	TextHashesFn  func(ctx context.Context, url string) ([]string, error)
}

func (s *ResultService) Push(ctx context.Context, r *pagescrape.ScrapeResult) error {
	return s.PushFn(ctx, r)
}

func (s *ResultService) FindResults(ctx context.Context, filter pagescrape.ResultFilter) ([]*pagescrape.ScrapeResult, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) TextHashes(ctx context.Context, url string) ([]string, error) {
	return s.TextHashesFn(ctx, url)
}
