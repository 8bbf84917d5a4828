package hostrouter

import "strings"

// Table maps host patterns to values.
// Exact: "api.example.com"
// Wildcard: "*.example.com" (one label deep)
type Table[T any] struct {
	exact    map[string]T
	wildcard map[string]T
}

// NewTable builds a table from patterns. Blank patterns are skipped.
func NewTable[T any](patterns map[string]T) *Table[T] {
	t := &Table[T]{
		exact:    make(map[string]T),
		wildcard: make(map[string]T),
	}
	for pattern, v := range patterns {
		t.Add(pattern, v)
	}
	return t
}

// Add registers v under pattern, replacing an earlier value.
func (t *Table[T]) Add(pattern string, v T) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return
	}
	if strings.HasPrefix(pattern, "*.") {
		t.wildcard[pattern[2:]] = v
		return
	}
	t.exact[pattern] = v
}

// Match looks host up. Exact patterns win over wildcards; the port and
// letter case of host are ignored.
func (t *Table[T]) Match(host string) (T, bool) {
	host = Normalize(host)

	if v, ok := t.exact[host]; ok {
		return v, true
	}
	if _, domain, ok := strings.Cut(host, "."); ok {
		if v, ok := t.wildcard[domain]; ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}

// Len returns the number of registered patterns.
func (t *Table[T]) Len() int {
	return len(t.exact) + len(t.wildcard)
}

// Normalize strips the port from host and lower-cases it. Bracketed IPv6
// addresses keep their brackets.
func Normalize(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.ToLower(host)
}
