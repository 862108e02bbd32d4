package pagescrape

// Node is an element in a parsed document tree. Extraction logic only ever
// sees the tree through this interface.
type Node interface {
	// TagName returns the lowercased element name, e.g. "img".
	TagName() string

	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the combined text of the node and all its descendants.
	Text() string

	// Children returns the element children of the node in document order.
	Children() []Node
}

// Parser parses raw markup into a document tree.
type Parser interface {
	// Parse returns the root element of the document. Malformed markup is
	// repaired the way browsers do; an error means the input could not be
	// read at all.
	Parse(html string) (Node, error)
}

// Walk calls fn for n and every element below it in document order.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
