package mock

import "github.com/fwojciec/pagescrape"

var _ pagescrape.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of pagescrape.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
