package pagescrape

import "strings"

// PageMetadata holds page-level metadata. Missing values are empty strings.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExtractMetadata derives the page title and description from the document.
//
// Title comes from the first <title> element, falling back to og:title.
// Description comes from the first <meta name="description">, falling back
// to og:description. Whitespace-only values fall through to the next source.
func ExtractMetadata(root Node) PageMetadata {
	var title, description, ogTitle, ogDescription Node

	Walk(root, func(n Node) {
		switch n.TagName() {
		case "title":
			if title == nil {
				title = n
			}
		case "meta":
			if name, _ := n.Attr("name"); name == "description" && description == nil {
				description = n
			}
			switch property, _ := n.Attr("property"); property {
			case "og:title":
				if ogTitle == nil {
					ogTitle = n
				}
			case "og:description":
				if ogDescription == nil {
					ogDescription = n
				}
			}
		}
	})

	var meta PageMetadata
	if title != nil {
		meta.Title = strings.TrimSpace(title.Text())
	}
	if meta.Title == "" {
		meta.Title = metaContent(ogTitle)
	}
	meta.Description = metaContent(description)
	if meta.Description == "" {
		meta.Description = metaContent(ogDescription)
	}
	return meta
}

// metaContent returns the trimmed content attribute of a meta element.
func metaContent(n Node) string {
	if n == nil {
		return ""
	}
	content, _ := n.Attr("content")
	return strings.TrimSpace(content)
}
