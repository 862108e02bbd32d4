package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagescrape"
)

// Ensure LoggingSink implements pagescrape.ResultSink.
var _ pagescrape.ResultSink = (*LoggingSink)(nil)

// LoggingSink wraps a ResultSink and logs every record pushed through it.
type LoggingSink struct {
	next   pagescrape.ResultSink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next pagescrape.ResultSink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Push delegates to the wrapped sink. Failed scrapes are logged as warnings.
func (s *LoggingSink) Push(ctx context.Context, r *pagescrape.ScrapeResult) (err error) {
	defer func() {
		if r.Success {
			s.logger.Info("scrape",
				"url", r.RequestedURL(),
				"success", true,
				"words", r.WordCount,
				"media", r.MediaCount().Total(),
				"err", err,
			)
			return
		}
		s.logger.Warn("scrape",
			"url", r.RequestedURL(),
			"success", false,
			"error_type", r.ErrorType,
			"error", r.Error,
			"err", err,
		)
	}()
	return s.next.Push(ctx, r)
}
