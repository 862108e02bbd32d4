// Package goquery provides a goquery-backed document tree for pagescrape.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagescrape"
	"golang.org/x/net/html"
)

// Ensure Parser implements pagescrape.Parser at compile time.
var _ pagescrape.Parser = (*Parser)(nil)

// Parser parses HTML into a tree of goquery selections.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML and returns the <html> root element.
// Scripting is disabled so that <noscript> content is parsed as markup.
func (p *Parser) Parse(rawHTML string) (pagescrape.Node, error) {
	root, err := html.ParseWithOptions(strings.NewReader(rawHTML), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, pagescrape.Errorf(pagescrape.EINVALID, "failed to parse HTML: %v", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	// The HTML parser always synthesizes an <html> element.
	top := doc.Children().First()
	if top.Length() == 0 {
		return nil, pagescrape.Errorf(pagescrape.EINVALID, "document has no root element")
	}
	return &Node{sel: top}, nil
}

// Ensure Node implements pagescrape.Node at compile time.
var _ pagescrape.Node = (*Node)(nil)

// Node wraps a single-element goquery selection.
type Node struct {
	sel *goquery.Selection
}

// TagName returns the lowercased element name.
func (n *Node) TagName() string {
	if len(n.sel.Nodes) == 0 || n.sel.Nodes[0].Type != html.ElementNode {
		return ""
	}
	return n.sel.Nodes[0].Data
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text returns the combined text of the element and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}

// Children returns the element children in document order.
func (n *Node) Children() []pagescrape.Node {
	children := n.sel.Children()
	nodes := make([]pagescrape.Node, 0, children.Length())
	children.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}
