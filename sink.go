package pagescrape

import "context"

// ResultSink receives finished records.
type ResultSink interface {
	// Push stores or forwards one record.
	Push(ctx context.Context, result *ScrapeResult) error
}

// ResultService represents a service for storing and querying records.
type ResultService interface {
	ResultSink

	// FindResults retrieves records matching the filter, oldest first.
	FindResults(ctx context.Context, filter ResultFilter) ([]*ScrapeResult, error)

	// TextHashes returns the text hashes of successful records for url,
	// oldest first. Equal hashes mean the page text did not change.
	TextHashes(ctx context.Context, url string) ([]string, error)
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	URL     *string `json:"url"`
	Success *bool   `json:"success"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
