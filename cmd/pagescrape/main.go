package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagescrape"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin supplies input records when no URL or input file is given.
	Stdin io.Reader

	// DBPath is the default database path. Set before calling Run().
	DBPath string

	// Fetcher replaces the HTTP fetcher when set. Used by end-to-end tests.
	Fetcher pagescrape.Fetcher

	// Results replaces the SQLite store read by the results command when set.
	Results pagescrape.ResultService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:  os.Stdin,
		DBPath: defaultDBPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdin:   m.Stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		DBPath:  m.DBPath,
		Fetcher: m.Fetcher,
		Results: m.Results,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagescrape"),
		kong.Description("Scrape web pages into structured JSON records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PAGESCRAPE_DB"); path != "" {
		return path
	}
	return pagescrape.DefaultConfig().DBPath
}
