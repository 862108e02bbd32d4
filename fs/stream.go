// Package fs provides file-based sinks for scrape records.
package fs

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/fwojciec/pagescrape"
)

// Ensure StreamWriter implements pagescrape.ResultSink at compile time.
var _ pagescrape.ResultSink = (*StreamWriter)(nil)

// StreamWriter writes each record as one JSON line.
type StreamWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewStreamWriter creates a StreamWriter that writes to w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &StreamWriter{enc: enc}
}

// Push encodes r followed by a newline.
func (s *StreamWriter) Push(ctx context.Context, r *pagescrape.ScrapeResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(r)
}
