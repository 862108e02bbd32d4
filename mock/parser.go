package mock

import "github.com/fwojciec/pagescrape"

var _ pagescrape.Parser = (*Parser)(nil)

// Parser is a mock implementation of pagescrape.Parser.
type Parser struct {
	ParseFn func(html string) (pagescrape.Node, error)
}

func (p *Parser) Parse(html string) (pagescrape.Node, error) {
	return p.ParseFn(html)
}
