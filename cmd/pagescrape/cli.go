package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pagescrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DBPath is the database path used unless a flag or config overrides it.
	DBPath string

	// Fetcher, when set, is used instead of building an HTTP fetcher.
	Fetcher pagescrape.Fetcher

	// Results, when set, is used instead of opening the SQLite database.
	Results pagescrape.ResultService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" default:"withargs" help:"Scrape pages and emit one record per input (default)"`
	Results ResultsCmd `cmd:"" help:"List records stored in the database"`
}

// ScrapeCmd is the "scrape" subcommand. Flags left unset fall back to the
// config file and then to built-in defaults.
type ScrapeCmd struct {
	URLs []string `arg:"" optional:"" name:"url" help:"URLs to scrape; inputs are read from --input or stdin when omitted"`

	Input       string        `short:"i" help:"Read input records from a JSON file ('-' for stdin)"`
	Config      string        `short:"C" help:"YAML config file"`
	Output      string        `short:"o" help:"Where records go: stdout, dataset or sqlite"`
	DatasetDir  string        `name:"dataset-dir" help:"Directory for dataset output"`
	DB          string        `name:"db" help:"SQLite database path for sqlite output"`
	Extractor   string        `short:"e" help:"Main text extractor: trafilatura or readability"`
	Timeout     time.Duration `short:"t" help:"Fetch timeout per page (default 30s)"`
	Concurrency int           `short:"c" help:"Concurrent scrape limit (default 4)"`
	RPS         float64       `name:"rps" help:"Requests per second per host; 0 disables limiting"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics to this file when done"`
	Verbose     bool          `short:"v" help:"Log debug output"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	DB     string `name:"db" help:"SQLite database path"`
	URL    string `name:"url" help:"Only records for this URL"`
	Failed bool   `help:"Only failed records"`
	OK     bool   `name:"ok" help:"Only successful records"`
	Hashes bool   `help:"Print the text hash of each successful record for --url, oldest first"`
	Limit  int    `short:"n" help:"Maximum number of records"`
	Offset int    `help:"Number of records to skip"`
}
