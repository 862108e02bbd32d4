package pagescrape

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MediaKind classifies a media entry.
type MediaKind string

// Media kinds.
const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// Attribute names used by media entries.
const (
	AttrAlt       = "alt"
	AttrTitle     = "title"
	AttrMimeType  = "mime_type"
	AttrText      = "text"
	AttrExtension = "extension"
)

// attributeOrder is the canonical order of auxiliary fields in encoded entries.
var attributeOrder = []string{AttrAlt, AttrTitle, AttrMimeType, AttrText, AttrExtension}

// Attribute is a named auxiliary field of a media entry.
type Attribute struct {
	Name  string
	Value string
}

// MediaEntry is one media or document reference discovered in a page.
// Entries are built by the New*Entry constructors and not modified afterwards.
type MediaEntry struct {
	Kind MediaKind

	// URL is absolute, resolved against the page URL.
	URL string

	// Attributes depend on the element the entry was built from.
	Attributes []Attribute
}

// NewImageEntry returns an entry for an <img> element.
func NewImageEntry(url, alt, title string) MediaEntry {
	return MediaEntry{Kind: MediaImage, URL: url, Attributes: []Attribute{
		{Name: AttrAlt, Value: alt},
		{Name: AttrTitle, Value: title},
	}}
}

// NewVideoEntry returns an entry for a <video> element.
func NewVideoEntry(url, title string) MediaEntry {
	return MediaEntry{Kind: MediaVideo, URL: url, Attributes: []Attribute{
		{Name: AttrTitle, Value: title},
	}}
}

// NewSourceEntry returns an entry for a <source> element.
func NewSourceEntry(url, mimeType string) MediaEntry {
	return MediaEntry{Kind: MediaVideo, URL: url, Attributes: []Attribute{
		{Name: AttrMimeType, Value: mimeType},
	}}
}

// NewDocumentEntry returns an entry for a link to a document file.
func NewDocumentEntry(url, text, extension string) MediaEntry {
	return MediaEntry{Kind: MediaDocument, URL: url, Attributes: []Attribute{
		{Name: AttrText, Value: text},
		{Name: AttrExtension, Value: extension},
	}}
}

// Attr returns the value of the named attribute, or "" if the entry has none.
func (e MediaEntry) Attr(name string) string {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// MarshalJSON encodes the entry as {"type": ..., "url": ..., <attributes>}.
func (e MediaEntry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, "type", string(e.Kind))
	buf.WriteByte(',')
	writeField(&buf, "url", e.URL)
	for _, a := range e.Attributes {
		buf.WriteByte(',')
		writeField(&buf, a.Name, a.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an entry produced by MarshalJSON.
func (e *MediaEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	kind := MediaKind(fields["type"])
	switch kind {
	case MediaImage, MediaVideo, MediaDocument:
	default:
		return fmt.Errorf("unknown media type %q", fields["type"])
	}

	entry := MediaEntry{Kind: kind, URL: fields["url"]}
	for _, name := range attributeOrder {
		if v, ok := fields[name]; ok {
			entry.Attributes = append(entry.Attributes, Attribute{Name: name, Value: v})
		}
	}
	*e = entry
	return nil
}

func writeField(buf *bytes.Buffer, name, value string) {
	k, _ := json.Marshal(name)
	v, _ := json.Marshal(value)
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
}

// MediaCount tallies media entries by kind.
type MediaCount struct {
	Images    int `json:"images"`
	Videos    int `json:"videos"`
	Documents int `json:"documents"`
}

// CountMedia tallies entries by kind.
func CountMedia(entries []MediaEntry) MediaCount {
	var c MediaCount
	for _, e := range entries {
		switch e.Kind {
		case MediaImage:
			c.Images++
		case MediaVideo:
			c.Videos++
		case MediaDocument:
			c.Documents++
		}
	}
	return c
}

// Total returns the number of counted entries.
func (c MediaCount) Total() int {
	return c.Images + c.Videos + c.Documents
}
