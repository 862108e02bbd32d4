package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fwojciec/pagescrape"
)

// Ensure DatasetWriter implements pagescrape.ResultSink at compile time.
var _ pagescrape.ResultSink = (*DatasetWriter)(nil)

// DatasetWriter stores each record as a numbered JSON file in a directory:
// 000000001.json, 000000002.json, and so on. Numbering continues after the
// highest file already present.
type DatasetWriter struct {
	dir string

	mu   sync.Mutex
	next int
	init bool
}

// NewDatasetWriter creates a DatasetWriter for dir. The directory is created
// on the first push.
func NewDatasetWriter(dir string) *DatasetWriter {
	return &DatasetWriter{dir: dir}
}

// Dir returns the dataset directory.
func (w *DatasetWriter) Dir() string {
	return w.dir
}

// Push writes r to the next numbered file. The file is written to a
// temporary name and renamed into place.
func (w *DatasetWriter) Push(ctx context.Context, r *pagescrape.ScrapeResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.init {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return err
		}
		last, err := lastItemNumber(w.dir)
		if err != nil {
			return err
		}
		w.next = last + 1
		w.init = true
	}

	name := filepath.Join(w.dir, itemFileName(w.next))
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	w.next++
	return nil
}

func itemFileName(n int) string {
	return fmt.Sprintf("%09d.json", n)
}

// lastItemNumber returns the highest item number in dir, or 0.
func lastItemNumber(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	last := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}
		last = max(last, n)
	}
	return last, nil
}
