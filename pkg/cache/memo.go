package cache

import (
	"context"
	"sync"
)

type memoKey struct{}

// memo is a request-scoped copy of values read or written through a cache.
type memo struct {
	entries map[string][]byte
	mu      sync.Mutex
}

// WithMemo returns a context carrying a fresh local memo. Caches used with
// the returned context serve repeated reads of a key from memory instead of
// the backend; Set and Delete keep the memo in step.
func WithMemo(ctx context.Context) context.Context {
	return context.WithValue(ctx, memoKey{}, &memo{entries: make(map[string][]byte)})
}

func memoFromContext(ctx context.Context) *memo {
	m, _ := ctx.Value(memoKey{}).(*memo)
	return m
}

func (m *memo) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *memo) put(key string, v []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = v
}

func (m *memo) forget(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
