package pagescrape

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveURL joins ref onto base following standard relative reference
// resolution. Absolute references ignore the base. It never fails: stray '%'
// and control characters are escaped before parsing, and a reference that
// still cannot be parsed is joined onto the base's directory as a string.
func ResolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	u, err := parseLenient(ref)
	if err != nil {
		return joinRaw(base, ref)
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

// ValidateURL requires raw to be absolute, i.e. to carry both a scheme and a
// host. Malformed escapes alone do not make it invalid. Returns EINVALID
// otherwise.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := parseLenient(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "URL %q must have a scheme and a host", raw)
	}
	return u, nil
}

// parseLenient parses raw, retrying once with the bytes url.Parse rejects
// but browsers accept escaped.
func parseLenient(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil {
		return u, nil
	}
	escaped := escapeLoose(raw)
	if escaped == raw {
		return nil, err
	}
	return url.Parse(escaped)
}

// escapeLoose escapes '%' not followed by two hex digits as %25 and ASCII
// control characters as %XX. Everything else is left alone.
func escapeLoose(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])):
			b.WriteString("%25")
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// joinRaw joins ref onto base as a string when ref cannot be parsed at all.
// References that already carry a scheme are returned unchanged.
func joinRaw(base *url.URL, ref string) string {
	if base == nil || hasScheme(ref) {
		return ref
	}
	origin := base.Scheme + "://" + base.Host
	switch {
	case strings.HasPrefix(ref, "//"):
		return base.Scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		return origin + ref
	}
	dir := base.EscapedPath()
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[:i+1]
	} else {
		dir = "/"
	}
	return origin + dir + ref
}

// hasScheme reports whether ref starts with an RFC 3986 scheme and ':'.
func hasScheme(ref string) bool {
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return true
		default:
			return false
		}
	}
	return false
}
