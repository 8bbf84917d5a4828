package internal

import (
	"context"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// IndexName is the name tried first for the site root.
const IndexName = "Index"

// SegmentName turns a path segment into a name fragment: dash separated
// pieces get an upper-case first letter and are joined ("about-us" gives
// "AboutUs").
func SegmentName(segment string) string {
	var b strings.Builder
	b.Grow(len(segment))
	for piece := range strings.SplitSeq(segment, "-") {
		r, size := utf8.DecodeRuneInString(piece)
		if size == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(piece[size:])
	}
	return b.String()
}

// CandidateNames lists the names tried for u, most specific first: for
// segments [about team bios] that is About_Team_Bios, About_Team, About.
func CandidateNames(u URL) []string {
	segs := u.Segments()
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = SegmentName(s)
	}

	names := make([]string, 0, len(parts))
	for n := len(parts); n > 0; n-- {
		names = append(names, strings.Join(parts[:n], "_"))
	}
	return names
}

// nameResolver looks names up in an ordered list of sources. The source
// registered last is asked first.
type nameResolver[T any] struct {
	sources []Source[T]
	mu      sync.RWMutex
}

// RegisterSource puts s in front of the sources registered so far.
func (r *nameResolver[T]) RegisterSource(s Source[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append([]Source[T]{s}, r.sources...)
}

// lookup instantiates name from the first source defining it.
func (r *nameResolver[T]) lookup(name string) (T, bool, error) {
	r.mu.RLock()
	sources := r.sources
	r.mu.RUnlock()

	var zero T
	for _, s := range sources {
		if !s.IsDefined(name) {
			continue
		}
		v, err := s.Instantiate(name)
		if err != nil {
			return zero, false, err
		}
		return v, true, nil
	}
	return zero, false, nil
}

// resolvePath tries Index for the root, then every candidate of u.
func (r *nameResolver[T]) resolvePath(u URL) (T, bool, error) {
	if u.IsRoot() {
		if v, ok, err := r.lookup(IndexName); ok || err != nil {
			return v, ok, err
		}
	}
	for _, name := range CandidateNames(u) {
		if v, ok, err := r.lookup(name); ok || err != nil {
			return v, ok, err
		}
	}
	var zero T
	return zero, false, nil
}

// PathCommandResolver picks the command named after the longest matching
// prefix of the request path.
type PathCommandResolver struct {
	nameResolver[Command]
}

// NewPathCommandResolver registers sources in order, so the last one has
// the highest priority.
func NewPathCommandResolver(sources ...CommandSource) *PathCommandResolver {
	r := &PathCommandResolver{}
	for _, s := range sources {
		r.RegisterSource(s)
	}
	return r
}

func (r *PathCommandResolver) Resolve(_ context.Context, req *Request) (Command, error) {
	cmd, _, err := r.resolvePath(req.URL())
	return cmd, err
}

// PathViewResolver picks the view named after the longest matching prefix
// of the request path.
type PathViewResolver struct {
	nameResolver[View]
}

// NewPathViewResolver registers sources in order, so the last one has the
// highest priority.
func NewPathViewResolver(sources ...ViewSource) *PathViewResolver {
	r := &PathViewResolver{}
	for _, s := range sources {
		r.RegisterSource(s)
	}
	return r
}

func (r *PathViewResolver) Resolve(_ context.Context, resp *Response) (View, error) {
	view, _, err := r.resolvePath(resp.Request().URL())
	return view, err
}
