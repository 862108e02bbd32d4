package main

import (
	"fmt"

	"github.com/fwojciec/pagescrape"
	"github.com/fwojciec/pagescrape/fs"
	"github.com/fwojciec/pagescrape/sqlite"
)

// Run executes the results command.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	if c.Failed && c.OK {
		return pagescrape.Errorf(pagescrape.EINVALID, "--failed and --ok are mutually exclusive")
	}
	if c.Hashes && c.URL == "" {
		return pagescrape.Errorf(pagescrape.EINVALID, "--hashes requires --url")
	}

	results, closeResults, err := c.open(deps)
	if err != nil {
		return err
	}
	defer closeResults()

	if c.Hashes {
		return c.printHashes(deps, results)
	}

	filter := pagescrape.ResultFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Failed || c.OK {
		success := c.OK
		filter.Success = &success
	}

	records, err := results.FindResults(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	out := fs.NewStreamWriter(deps.Stdout)
	for _, r := range records {
		if err := out.Push(deps.Ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// printHashes writes one text hash per line.
func (c *ResultsCmd) printHashes(deps *Dependencies, results pagescrape.ResultService) error {
	hashes, err := results.TextHashes(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	for _, h := range hashes {
		fmt.Fprintln(deps.Stdout, h)
	}
	return nil
}

// open returns the injected result store or opens the SQLite database.
func (c *ResultsCmd) open(deps *Dependencies) (pagescrape.ResultService, func(), error) {
	if deps.Results != nil {
		return deps.Results, func() {}, nil
	}

	path := deps.DBPath
	if c.DB != "" {
		path = c.DB
	}

	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set PAGESCRAPE_DB or --db to use a different database path\n")
		return nil, nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewResultService(db), func() { _ = db.Close() }, nil
}
