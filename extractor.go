package pagescrape

import "strings"

// TextExtractor isolates the main readable text of a page, removing
// boilerplate such as navigation, footers and ads.
type TextExtractor interface {
	// ExtractText processes raw HTML and returns the main text.
	// A page with no identifiable main content yields "" and no error.
	// An error means the extractor itself failed.
	ExtractText(html string) (string, error)
}

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
