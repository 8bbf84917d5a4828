package internal

import (
	"fmt"
	"strings"
)

// URL is a request address relative to its site. Path carries no leading
// slash, so the site root is the empty path.
type URL struct {
	Host     string
	Path     string
	Query    string // with the leading "?", or empty
	Fragment string // without the leading "#"
}

// IndexError reports an out of range segment index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("segment index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfBounds
}

// ParseURL builds a URL from an absolute http(s) address or an absolute
// path. Paths use defaultHost. A leading "www." is dropped from the host.
func ParseURL(raw, defaultHost string) (URL, error) {
	var host, rest string
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		_, addr, _ := strings.Cut(raw, "://")
		end := strings.IndexAny(addr, "/?#")
		if end < 0 {
			end = len(addr)
		}
		host, rest = addr[:end], addr[end:]
		if host == "" {
			return URL{}, fmt.Errorf("%w: %q has no host", ErrMalformedURL, raw)
		}
		host = strings.TrimPrefix(host, "www.")
	case strings.HasPrefix(raw, "/"):
		host, rest = defaultHost, raw
	default:
		return URL{}, fmt.Errorf("%w: %q", ErrMalformedURL, raw)
	}

	u := URL{Host: host}
	if before, frag, ok := strings.Cut(rest, "#"); ok {
		rest, u.Fragment = before, frag
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest, u.Query = rest[:i], rest[i:]
	}
	u.Path = strings.TrimPrefix(rest, "/")
	return u, nil
}

// Segments splits the path on "/". Empty segments are kept, so the root
// path yields a single empty segment.
func (u URL) Segments() []string {
	return strings.Split(u.Path, "/")
}

// Len returns the number of path segments.
func (u URL) Len() int {
	return strings.Count(u.Path, "/") + 1
}

// Segment returns the i-th path segment.
func (u URL) Segment(i int) (string, error) {
	segs := u.Segments()
	if i < 0 || i >= len(segs) {
		return "", &IndexError{Index: i, Len: len(segs)}
	}
	return segs[i], nil
}

// IsRoot reports whether the first path segment is empty, which is how
// the site index is addressed.
func (u URL) IsRoot() bool {
	return u.Path == "" || u.Path[0] == '/'
}

// String renders the URL as an absolute path with query and fragment.
func (u URL) String() string {
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(u.Path)
	b.WriteString(u.Query)
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}
