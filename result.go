package pagescrape

import (
	"encoding/json"
	"time"
)

// TimestampLayout formats ScrapedAt as an ISO-8601 local timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// ScrapeResult is the record produced for one scrape. Success selects which
// group of fields is meaningful; the other group stays zero and is never
// encoded.
type ScrapeResult struct {
	// URL is the input URL. Nil only when the input carried no URL.
	URL *string

	Success bool

	// Success fields.
	Title       string
	Description string
	TextContent string
	WordCount   int
	MediaFiles  []MediaEntry

	// Failure fields.
	Error     string
	ErrorType ErrorType

	ScrapedAt time.Time
}

// NewSuccessResult assembles a successful record.
func NewSuccessResult(url string, meta PageMetadata, media []MediaEntry, text string, at time.Time) *ScrapeResult {
	if media == nil {
		media = []MediaEntry{}
	}
	return &ScrapeResult{
		URL:         &url,
		Success:     true,
		Title:       meta.Title,
		Description: meta.Description,
		TextContent: text,
		WordCount:   WordCount(text),
		MediaFiles:  media,
		ScrapedAt:   at,
	}
}

// NewFailureResult assembles a failed record.
func NewFailureResult(url *string, message string, typ ErrorType, at time.Time) *ScrapeResult {
	return &ScrapeResult{
		URL:       url,
		Error:     message,
		ErrorType: typ,
		ScrapedAt: at,
	}
}

// MediaCount tallies MediaFiles by kind.
func (r *ScrapeResult) MediaCount() MediaCount {
	return CountMedia(r.MediaFiles)
}

// RequestedURL returns the input URL or "" if there was none.
func (r *ScrapeResult) RequestedURL() string {
	if r.URL == nil {
		return ""
	}
	return *r.URL
}

type successRecord struct {
	URL         *string      `json:"url"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	TextContent string       `json:"text_content"`
	WordCount   int          `json:"word_count"`
	MediaFiles  []MediaEntry `json:"media_files"`
	MediaCount  MediaCount   `json:"media_count"`
	ScrapedAt   string       `json:"scraped_at"`
	Success     bool         `json:"success"`
}

type failureRecord struct {
	URL       *string   `json:"url"`
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	ErrorType ErrorType `json:"error_type"`
	ScrapedAt string    `json:"scraped_at"`
}

// MarshalJSON encodes the success or the failure shape of the record.
func (r ScrapeResult) MarshalJSON() ([]byte, error) {
	at := r.ScrapedAt.Format(TimestampLayout)
	if !r.Success {
		return json.Marshal(failureRecord{
			URL:       r.URL,
			Error:     r.Error,
			ErrorType: r.ErrorType,
			ScrapedAt: at,
		})
	}

	media := r.MediaFiles
	if media == nil {
		media = []MediaEntry{}
	}
	return json.Marshal(successRecord{
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
		TextContent: r.TextContent,
		WordCount:   r.WordCount,
		MediaFiles:  media,
		MediaCount:  CountMedia(media),
		ScrapedAt:   at,
		Success:     true,
	})
}

// UnmarshalJSON decodes a record produced by MarshalJSON. The timestamp is
// interpreted in the local time zone. media_count is derived, so it is ignored.
func (r *ScrapeResult) UnmarshalJSON(data []byte) error {
	var rec struct {
		URL         *string      `json:"url"`
		Success     bool         `json:"success"`
		Title       string       `json:"title"`
		Description string       `json:"description"`
		TextContent string       `json:"text_content"`
		WordCount   int          `json:"word_count"`
		MediaFiles  []MediaEntry `json:"media_files"`
		Error       string       `json:"error"`
		ErrorType   ErrorType    `json:"error_type"`
		ScrapedAt   string       `json:"scraped_at"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	at, err := time.ParseInLocation(TimestampLayout, rec.ScrapedAt, time.Local)
	if err != nil {
		return Errorf(EINVALID, "invalid scraped_at %q", rec.ScrapedAt)
	}

	if rec.Success {
		*r = ScrapeResult{
			URL:         rec.URL,
			Success:     true,
			Title:       rec.Title,
			Description: rec.Description,
			TextContent: rec.TextContent,
			WordCount:   rec.WordCount,
			MediaFiles:  rec.MediaFiles,
			ScrapedAt:   at,
		}
		if r.MediaFiles == nil {
			r.MediaFiles = []MediaEntry{}
		}
		return nil
	}

	*r = ScrapeResult{
		URL:       rec.URL,
		Error:     rec.Error,
		ErrorType: rec.ErrorType,
		ScrapedAt: at,
	}
	return nil
}
