// Package scrape runs the single-page scrape pipeline: validate the input,
// fetch the page, parse it, extract metadata, media and main text, and
// assemble exactly one record.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/pagescrape"
)

// Failure messages. The cause is appended where the format has a verb.
const (
	msgMissingInput = "No URL provided in input"
	msgInvalidURL   = "Invalid URL provided: %s"
	msgFetch        = "Failed to fetch URL: %v"
	msgExtraction   = "Error extracting content: %v"
	msgProcessing   = "Error processing URL: %v"
)

// Scraper turns one input into one record. It is safe for concurrent use
// when its collaborators are.
type Scraper struct {
	Fetcher   pagescrape.Fetcher
	Parser    pagescrape.Parser
	Extractor pagescrape.TextExtractor

	// Limiter is optional. When set, fetches wait for the target host.
	Limiter pagescrape.HostLimiter

	// Now returns the record timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Scrape processes in and always returns a record. Every failure, including
// a panic in a collaborator, becomes a failure record.
func (s *Scraper) Scrape(ctx context.Context, in pagescrape.Input) (result *pagescrape.ScrapeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = s.fail(in.URL, pagescrape.ErrorTypeProcessing, fmt.Sprintf(msgProcessing, r))
		}
	}()

	if in.URL == nil {
		return s.fail(nil, pagescrape.ErrorTypeMissingInput, msgMissingInput)
	}
	raw := *in.URL

	base, err := pagescrape.ValidateURL(raw)
	if err != nil {
		return s.fail(in.URL, pagescrape.ErrorTypeValidation, fmt.Sprintf(msgInvalidURL, raw))
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, base.Host); err != nil {
			return s.fail(in.URL, pagescrape.ErrorTypeNetwork, fmt.Sprintf(msgFetch, err))
		}
	}

	html, err := s.Fetcher.Fetch(ctx, raw)
	if err != nil {
		return s.fail(in.URL, pagescrape.ErrorTypeNetwork, fmt.Sprintf(msgFetch, err))
	}

	page, err := s.extract(html, base)
	if err != nil {
		return s.fail(in.URL, pagescrape.ErrorTypeExtraction, fmt.Sprintf(msgExtraction, err))
	}

	return pagescrape.NewSuccessResult(raw, page.meta, page.media, page.text, s.now())
}

type extracted struct {
	meta  pagescrape.PageMetadata
	media []pagescrape.MediaEntry
	text  string
}

// extract parses html and runs the three extractors over it. A panic while
// doing so is returned as an error.
func (s *Scraper) extract(html string, base *url.URL) (page extracted, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	root, err := s.Parser.Parse(html)
	if err != nil {
		return extracted{}, err
	}

	page.meta = pagescrape.ExtractMetadata(root)
	page.media = pagescrape.BuildCatalog(root, base)
	page.text, err = s.Extractor.ExtractText(html)
	if err != nil {
		return extracted{}, err
	}
	return page, nil
}

func (s *Scraper) fail(rawURL *string, typ pagescrape.ErrorType, message string) *pagescrape.ScrapeResult {
	return pagescrape.NewFailureResult(rawURL, message, typ, s.now())
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
