package pagescrape

import (
	"net/url"
	"strings"
)

// DocumentExtensions lists the link suffixes that mark a document reference.
var DocumentExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt"}

// BuildCatalog walks the document once and returns every media and document
// reference with its URL resolved against base.
//
// Entries appear grouped by rule, in this order: <img>, <video>, <source>,
// document links. Within a group they follow document order. <source> is
// always treated as video, whatever element encloses it.
func BuildCatalog(root Node, base *url.URL) []MediaEntry {
	var images, videos, sources, documents []MediaEntry

	Walk(root, func(n Node) {
		switch n.TagName() {
		case "img":
			if src, ok := n.Attr("src"); ok && src != "" {
				alt, _ := n.Attr("alt")
				title, _ := n.Attr("title")
				images = append(images, NewImageEntry(ResolveURL(base, src), alt, title))
			}
		case "video":
			if src, ok := n.Attr("src"); ok && src != "" {
				title, _ := n.Attr("title")
				videos = append(videos, NewVideoEntry(ResolveURL(base, src), title))
			}
		case "source":
			if src, ok := n.Attr("src"); ok && src != "" {
				mimeType, _ := n.Attr("type")
				sources = append(sources, NewSourceEntry(ResolveURL(base, src), mimeType))
			}
		case "a":
			href, ok := n.Attr("href")
			if !ok || href == "" {
				return
			}
			lower := strings.ToLower(href)
			if !isDocumentLink(lower) {
				return
			}
			// Matching uses the lowercased href; the URL keeps the original case.
			documents = append(documents, NewDocumentEntry(
				ResolveURL(base, href),
				strings.TrimSpace(n.Text()),
				documentExtension(lower),
			))
		}
	})

	entries := make([]MediaEntry, 0, len(images)+len(videos)+len(sources)+len(documents))
	entries = append(entries, images...)
	entries = append(entries, videos...)
	entries = append(entries, sources...)
	entries = append(entries, documents...)
	return entries
}

func isDocumentLink(lowerHref string) bool {
	for _, ext := range DocumentExtensions {
		if strings.HasSuffix(lowerHref, ext) {
			return true
		}
	}
	return false
}

// documentExtension returns the text after the last '.' or "unknown".
func documentExtension(lowerHref string) string {
	i := strings.LastIndex(lowerHref, ".")
	if i < 0 {
		return "unknown"
	}
	return lowerHref[i+1:]
}
