// Package trafilatura extracts main page text with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/pagescrape"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements pagescrape.TextExtractor at compile time.
var _ pagescrape.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main text of a page.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with fallback extraction enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// ExtractText returns the plain text of the main content, or "" when the
// page has none.
//
// go-trafilatura reports pages without enough content as errors. Parsing an
// in-memory string cannot fail for any other reason, so every library error
// is treated as an absence of content.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil || result == nil {
		return "", nil
	}
	return strings.TrimSpace(result.ContentText), nil
}
