package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/pagescrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagescrape.ResultService = (*ResultService)(nil)

// ResultService implements pagescrape.ResultService using SQLite.
// Each record is stored as its JSON encoding alongside indexed columns.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// Push stores r under a new random ID.
func (s *ResultService) Push(ctx context.Context, r *pagescrape.ScrapeResult) error {
	if r == nil {
		return pagescrape.Errorf(pagescrape.EINVALID, "result required")
	}

	record, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	var textHash string
	if r.Success {
		textHash = hashContent(r.TextContent)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, url, success, error_type, text_hash, record, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), r.URL, r.Success, string(r.ErrorType), textHash, string(record),
		r.ScrapedAt.Format(pagescrape.TimestampLayout))

	return err
}

// FindResults retrieves records matching the filter in insertion order.
func (s *ResultService) FindResults(ctx context.Context, filter pagescrape.ResultFilter) ([]*pagescrape.ScrapeResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT record FROM results WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Success != nil {
		query.WriteString(" AND success = ?")
		args = append(args, *filter.Success)
	}

	query.WriteString(" ORDER BY seq ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*pagescrape.ScrapeResult, 0)
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var r pagescrape.ScrapeResult
		if err := json.Unmarshal([]byte(record), &r); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		results = append(results, &r)
	}

	return results, rows.Err()
}

// TextHashes returns the stored content hash of every successful record for
// url, oldest first. Equal hashes mean the page text did not change.
func (s *ResultService) TextHashes(ctx context.Context, url string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text_hash FROM results
		WHERE url = ? AND success = 1
		ORDER BY seq ASC
	`, url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}
