package pagescrape_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/pagescrape"
	"github.com/fwojciec/pagescrape/goquery"
	"github.com/stretchr/testify/require"
)

// parse parses html into a document tree, failing the test on error.
func parse(t *testing.T, html string) pagescrape.Node {
	t.Helper()
	root, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return root
}

// mustURL parses an absolute URL, failing the test on error.
func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
