package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pagescrape"
	main "github.com/fwojciec/pagescrape/cmd/pagescrape"
	"github.com/fwojciec/pagescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>Field Notes</title>
<meta name="description" content="Notes from the field">
</head>
<body>
<article>
<h1>Field Notes</h1>
<p>We walked along the river and counted the birds that nested near the old bridge.</p>
<p>The survey continued for several weeks while the weather stayed mild and dry.</p>
<img src="/img/heron.jpg" alt="Heron">
<a href="/files/survey.pdf">Full survey</a>
</article>
</body>
</html>`

// pageFetcher serves fixed HTML per URL and fails for anything else.
func pageFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if html, ok := pages[url]; ok {
				return html, nil
			}
			return "", errors.New("HTTP 404 for " + url)
		},
		CloseFn: func() error { return nil },
	}
}

func newMain(t *testing.T, stdin string, pages map[string]string) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.Stdin = strings.NewReader(stdin)
	m.DBPath = filepath.Join(t.TempDir(), "pagescrape.db")
	m.Fetcher = pageFetcher(pages)
	return m
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		records = append(records, rec)
	}
	return records
}

// Story: Help
//
// Users discover the available flags through help output.

func TestCLI_ShowsHelpWhenAsked(t *testing.T) {
	t.Parallel()

	// Given: a CLI instance
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	// When: running with --help flag
	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	// Then: help is displayed without error
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "pagescrape")
	assert.Contains(t, stdout.String(), "results")
}

// Story: Scraping single pages
//
// A user passes URLs on the command line and gets one JSON record per URL
// on stdout. Failures are records too, so the command still succeeds.

func TestCLI_ScrapesURLArgumentToStdout(t *testing.T) {
	t.Parallel()

	// Given: a site serving one article
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer

	// When: scraping its URL
	err := m.Run(context.Background(), []string{"https://example.com/notes"}, &stdout, &stderr)

	// Then: one success record is printed
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, true, rec["success"])
	assert.Equal(t, "https://example.com/notes", rec["url"])
	assert.Equal(t, "Field Notes", rec["title"])
	assert.Equal(t, "Notes from the field", rec["description"])
	assert.Equal(t, map[string]any{"images": 1.0, "videos": 0.0, "documents": 1.0}, rec["media_count"])
	media := rec["media_files"].([]any)
	require.Len(t, media, 2)
	assert.Equal(t, "https://example.com/img/heron.jpg", media[0].(map[string]any)["url"])
	assert.Equal(t, "https://example.com/files/survey.pdf", media[1].(map[string]any)["url"])
}

func TestCLI_ReportsFailuresAsRecords(t *testing.T) {
	t.Parallel()

	// Given: a site with no pages
	m := newMain(t, "", nil)
	var stdout, stderr bytes.Buffer

	// When: scraping an unreachable page and an invalid URL
	err := m.Run(context.Background(), []string{"-c", "1", "https://example.com/gone", "not a url"}, &stdout, &stderr)

	// Then: the command succeeds and both failures are reported
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 2)
	assert.Equal(t, "network_error", records[0]["error_type"])
	assert.Equal(t, "Failed to fetch URL: HTTP 404 for https://example.com/gone", records[0]["error"])
	assert.Equal(t, "validation_error", records[1]["error_type"])
	assert.Equal(t, "not a url", records[1]["url"])
}

func TestCLI_FetchesOverHTTP(t *testing.T) {
	t.Parallel()

	// Given: a real HTTP server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notes" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	m := main.NewMain()
	m.Stdin = strings.NewReader("")
	var stdout, stderr bytes.Buffer

	// When: scraping with the built-in HTTP fetcher
	err := m.Run(context.Background(), []string{"-c", "1", server.URL + "/notes", server.URL + "/missing"}, &stdout, &stderr)

	// Then: the page succeeds and the missing page is a network error
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 2)
	assert.Equal(t, true, records[0]["success"])
	assert.Equal(t, server.URL+"/img/heron.jpg", records[0]["media_files"].([]any)[0].(map[string]any)["url"])
	assert.Equal(t, "network_error", records[1]["error_type"])
	assert.Contains(t, records[1]["error"], "HTTP 404")
}

// Story: Input records
//
// Without URL arguments, input records are read as JSON from stdin or a
// file. Records without a url are reported, not skipped.

func TestCLI_ReadsInputRecordsFromStdin(t *testing.T) {
	t.Parallel()

	// Given: JSON lines on stdin, one of them without a url
	stdin := `{"url": "https://example.com/notes"}
{"url": null}
{"url": ""}
`
	m := newMain(t, stdin, map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer

	// When: running without URL arguments
	err := m.Run(context.Background(), []string{"-c", "1"}, &stdout, &stderr)

	// Then: every input yields a record
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 3)
	assert.Equal(t, true, records[0]["success"])
	assert.Equal(t, "missing_input", records[1]["error_type"])
	assert.Nil(t, records[1]["url"])
	assert.Equal(t, "No URL provided in input", records[1]["error"])
	assert.Equal(t, "validation_error", records[2]["error_type"])
	assert.Equal(t, "Invalid URL provided: ", records[2]["error"])
}

func TestCLI_ReadsInputFile(t *testing.T) {
	t.Parallel()

	// Given: an input file holding a JSON array
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"url": "https://example.com/notes"}]`), 0644))
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer

	// When: pointing --input at it
	err := m.Run(context.Background(), []string{"--input", path}, &stdout, &stderr)

	// Then: the listed page is scraped
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	assert.Equal(t, "Field Notes", records[0]["title"])
}

func TestCLI_ReportsUndecodableInputAsProcessingError(t *testing.T) {
	t.Parallel()

	// Given: an input whose url is not a string
	m := newMain(t, `{"url": 42}`, nil)
	var stdout, stderr bytes.Buffer

	// When: running
	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	// Then: a single processing error record is produced
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	assert.Equal(t, "processing_error", records[0]["error_type"])
	assert.True(t, strings.HasPrefix(records[0]["error"].(string), "Error processing URL: "))
}

func TestCLI_TreatsEmptyStdinAsMissingURL(t *testing.T) {
	t.Parallel()

	// Given: nothing on stdin
	m := newMain(t, "", nil)
	var stdout, stderr bytes.Buffer

	// When: running without arguments
	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	// Then: a missing input record is produced
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	assert.Equal(t, "missing_input", records[0]["error_type"])
}

// Story: Outputs
//
// Records can be written to a dataset directory or a SQLite database and
// listed back later.

func TestCLI_WritesDataset(t *testing.T) {
	t.Parallel()

	// Given: a dataset directory
	dir := filepath.Join(t.TempDir(), "dataset")
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer

	// When: scraping with dataset output
	err := m.Run(context.Background(), []string{
		"--output", "dataset", "--dataset-dir", dir,
		"https://example.com/notes", "not a url",
	}, &stdout, &stderr)

	// Then: one file per record is written and a summary is printed
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "000000001.json"))
	assert.FileExists(t, filepath.Join(dir, "000000002.json"))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Scraped 2 pages (1 succeeded, 1 failed) into "+dir)
}

func TestCLI_StoresAndListsResults(t *testing.T) {
	t.Parallel()

	// Given: a database receiving two records
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{
		"--output", "sqlite", "https://example.com/notes", "https://example.com/gone",
	}, &stdout, &stderr)
	require.NoError(t, err)

	// When: listing failed records
	stdout.Reset()
	err = m.Run(context.Background(), []string{"results", "--failed"}, &stdout, &stderr)

	// Then: only the failure is listed
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/gone", records[0]["url"])

	// When: listing every record for the article
	stdout.Reset()
	err = m.Run(context.Background(), []string{"results", "--url", "https://example.com/notes"}, &stdout, &stderr)

	// Then: the stored success record is returned intact
	require.NoError(t, err)
	records = decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	assert.Equal(t, "Field Notes", records[0]["title"])
}

// Repeated scrapes of one page can be compared by their text hashes.
func TestCLI_ListsTextHashes(t *testing.T) {
	t.Parallel()

	// Given: the same page stored twice
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer
	for range 2 {
		err := m.Run(context.Background(), []string{"--output", "sqlite", "https://example.com/notes"}, &stdout, &stderr)
		require.NoError(t, err)
	}

	// When: listing the text hashes for the page
	stdout.Reset()
	err := m.Run(context.Background(), []string{"results", "--hashes", "--url", "https://example.com/notes"}, &stdout, &stderr)

	// Then: one equal hash per stored success
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 16)
	assert.Equal(t, lines[0], lines[1])
}

func TestCLI_RejectsHashesWithoutURL(t *testing.T) {
	t.Parallel()

	m := newMain(t, "", nil)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"results", "--hashes"}, &stdout, &stderr)

	assert.Error(t, err)
	assert.Empty(t, stdout.String())
}

func TestCLI_ReportsResultStoreErrors(t *testing.T) {
	t.Parallel()

	// Given: a result store that cannot be read
	m := newMain(t, "", nil)
	m.Results = &mock.ResultService{
		FindResultsFn: func(_ context.Context, _ pagescrape.ResultFilter) ([]*pagescrape.ScrapeResult, error) {
			return nil, errors.New("database is locked")
		},
		TextHashesFn: func(_ context.Context, _ string) ([]string, error) {
			return nil, errors.New("database is locked")
		},
	}
	var stdout, stderr bytes.Buffer

	// When: listing records and hashes
	listErr := m.Run(context.Background(), []string{"results"}, &stdout, &stderr)
	hashErr := m.Run(context.Background(), []string{"results", "--hashes", "--url", "https://example.com"}, &stdout, &stderr)

	// Then: both fail and the cause is reported
	require.Error(t, listErr)
	require.Error(t, hashErr)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "database is locked")
}

func TestCLI_RejectsConflictingResultFilters(t *testing.T) {
	t.Parallel()

	m := newMain(t, "", nil)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"results", "--failed", "--ok"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestCLI_WritesMetricsFile(t *testing.T) {
	t.Parallel()

	// Given: a metrics file path
	path := filepath.Join(t.TempDir(), "pagescrape.prom")
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})
	var stdout, stderr bytes.Buffer

	// When: scraping with --metrics-file
	err := m.Run(context.Background(), []string{
		"--metrics-file", path, "https://example.com/notes", "https://example.com/gone",
	}, &stdout, &stderr)

	// Then: outcome counters are written
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pagescrape_results_total{error_type="",outcome="success"} 1`)
	assert.Contains(t, string(data), `pagescrape_results_total{error_type="network_error",outcome="failure"} 1`)
}

// Story: Configuration
//
// Settings come from flags, then an optional YAML file, then defaults.

func TestCLI_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	// Given: a config file naming an unknown extractor
	path := filepath.Join(t.TempDir(), "pagescrape.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extractor: magic\n"), 0644))
	m := newMain(t, "", map[string]string{"https://example.com/notes": articlePage})

	// When: running with the config alone
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{"--config", path, "https://example.com/notes"}, &stdout, &stderr)

	// Then: the config is rejected
	require.Error(t, err)
	assert.Contains(t, stderr.String(), `unknown extractor "magic"`)

	// When: overriding the extractor with a flag
	stdout.Reset()
	stderr.Reset()
	err = m.Run(context.Background(), []string{"--config", path, "--extractor", "readability", "https://example.com/notes"}, &stdout, &stderr)

	// Then: the scrape runs
	require.NoError(t, err)
	records := decodeLines(t, stdout.String())
	require.Len(t, records, 1)
	assert.Equal(t, true, records[0]["success"])
}

func TestCLI_RejectsUnknownOutput(t *testing.T) {
	t.Parallel()

	m := newMain(t, "", nil)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--output", "s3", "https://example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Empty(t, stdout.String())
}
