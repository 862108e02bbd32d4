package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagescrape"
)

// Ensure LoggingTextExtractor implements pagescrape.TextExtractor.
var _ pagescrape.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with debug logging.
type LoggingTextExtractor struct {
	next   pagescrape.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next pagescrape.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// ExtractText delegates to the wrapped extractor and logs at debug level.
func (e *LoggingTextExtractor) ExtractText(html string) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract text",
			"bytes", len(html),
			"words", pagescrape.WordCount(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractText(html)
}
