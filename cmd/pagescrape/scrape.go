package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/pagescrape"
	"github.com/fwojciec/pagescrape/fs"
	"github.com/fwojciec/pagescrape/goquery"
	pshttp "github.com/fwojciec/pagescrape/http"
	psprom "github.com/fwojciec/pagescrape/prometheus"
	"github.com/fwojciec/pagescrape/readability"
	"github.com/fwojciec/pagescrape/scrape"
	psslog "github.com/fwojciec/pagescrape/slog"
	"github.com/fwojciec/pagescrape/sqlite"
	"github.com/fwojciec/pagescrape/trafilatura"
	"github.com/fwojciec/pagescrape/yaml"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg, err := c.config(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagescrape.ErrorMessage(err))
		return err
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	sink, dest, closeSink, err := openSink(deps, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	var metrics *psprom.Metrics
	if cfg.MetricsFile != "" {
		metrics = psprom.NewMetrics()
		sink = psprom.NewMetricsSink(sink, metrics)
	}
	sink = psslog.NewLoggingSink(sink, logger)

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = pshttp.NewFetcher(
			pshttp.WithTimeout(cfg.Timeout),
			pshttp.WithUserAgent(cfg.UserAgent),
		)
	}
	defer fetcher.Close()

	scraper := &scrape.Scraper{
		Fetcher:   psslog.NewLoggingFetcher(fetcher, logger),
		Parser:    goquery.NewParser(),
		Extractor: psslog.NewLoggingTextExtractor(newExtractor(cfg.Extractor), logger),
	}
	if cfg.RPS > 0 {
		scraper.Limiter = scrape.NewHostLimiter(cfg.RPS)
	}

	inputs, err := c.inputs(deps)
	if err != nil {
		if pagescrape.ErrorCode(err) != pagescrape.EINVALID {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		// Undecodable input still yields a record.
		r := pagescrape.NewFailureResult(nil,
			"Error processing URL: "+pagescrape.ErrorMessage(err),
			pagescrape.ErrorTypeProcessing, time.Now())
		if err := sink.Push(deps.Ctx, r); err != nil {
			return err
		}
		return writeMetrics(metrics, cfg.MetricsFile)
	}

	batch := &scrape.Batch{
		Scraper:     scraper,
		Sink:        sink,
		Concurrency: cfg.Concurrency,
	}
	results, err := batch.Run(deps.Ctx, inputs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if cfg.Output != pagescrape.OutputStdout {
		printSummary(deps.Stderr, results, dest)
	}

	return writeMetrics(metrics, cfg.MetricsFile)
}

// config layers explicit flags over the config file over defaults.
func (c *ScrapeCmd) config(deps *Dependencies) (pagescrape.Config, error) {
	cfg := pagescrape.DefaultConfig()
	if deps.DBPath != "" {
		cfg.DBPath = deps.DBPath
	}

	if c.Config != "" {
		var err error
		cfg, err = yaml.LoadConfig(c.Config, cfg)
		if err != nil {
			return cfg, err
		}
	}

	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.DatasetDir != "" {
		cfg.DatasetDir = c.DatasetDir
	}
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if c.Extractor != "" {
		cfg.Extractor = c.Extractor
	}
	if c.Timeout != 0 {
		cfg.Timeout = c.Timeout
	}
	if c.Concurrency != 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.RPS != 0 {
		cfg.RPS = c.RPS
	}
	if c.MetricsFile != "" {
		cfg.MetricsFile = c.MetricsFile
	}

	return cfg, cfg.Validate()
}

// inputs returns the records to scrape: positional URLs first, then the
// input file, then stdin.
func (c *ScrapeCmd) inputs(deps *Dependencies) ([]pagescrape.Input, error) {
	if len(c.URLs) > 0 {
		inputs := make([]pagescrape.Input, 0, len(c.URLs))
		for _, u := range c.URLs {
			inputs = append(inputs, pagescrape.NewInput(u))
		}
		return inputs, nil
	}

	var r io.Reader = deps.Stdin
	if c.Input != "" && c.Input != "-" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return []pagescrape.Input{{}}, nil
	}
	return pagescrape.DecodeInputs(r)
}

func newExtractor(name string) pagescrape.TextExtractor {
	if name == pagescrape.ExtractorReadability {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

// openSink builds the configured output and names where records go. The
// returned func releases it.
func openSink(deps *Dependencies, cfg pagescrape.Config) (pagescrape.ResultSink, string, func(), error) {
	switch cfg.Output {
	case pagescrape.OutputDataset:
		w := fs.NewDatasetWriter(cfg.DatasetDir)
		return w, w.Dir(), func() {}, nil
	case pagescrape.OutputSQLite:
		db := sqlite.NewDB(cfg.DBPath)
		if err := db.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set PAGESCRAPE_DB or --db to use a different database path\n")
			return nil, "", nil, fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		return sqlite.NewResultService(db), cfg.DBPath, func() { _ = db.Close() }, nil
	default:
		return fs.NewStreamWriter(deps.Stdout), "stdout", func() {}, nil
	}
}

func writeMetrics(metrics *psprom.Metrics, path string) error {
	if metrics == nil {
		return nil
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, results []*pagescrape.ScrapeResult, dest string) {
	var ok, failed int
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	fmt.Fprintf(w, "Scraped %d pages (%d succeeded, %d failed) into %s\n", ok+failed, ok, failed, dest)
}
