// Package readability extracts main page text with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pagescrape"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagescrape.TextExtractor at compile time.
var _ pagescrape.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main text of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the trimmed text of the readable article, or "" when
// the library cannot locate one.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(article.TextContent), nil
}
