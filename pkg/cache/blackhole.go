package cache

import (
	"context"
	"time"
)

// Blackhole is a Cache that stores nothing. Every read misses.
type Blackhole struct {
	namespace string
}

// NewBlackhole returns a cache that discards all writes.
func NewBlackhole() *Blackhole {
	return &Blackhole{}
}

func (b *Blackhole) Get(context.Context, string, any) (bool, error) { return false, nil }

func (b *Blackhole) Set(context.Context, string, any, time.Duration) error { return nil }

func (b *Blackhole) Delete(context.Context, string) error { return nil }

func (b *Blackhole) IsCached(context.Context, string) bool { return false }

func (b *Blackhole) AccessNamespace(namespace string) Cache {
	return &Blackhole{namespace: joinNamespace(b.namespace, namespace)}
}

func (b *Blackhole) Namespace() string { return b.namespace }

var _ Cache = (*Blackhole)(nil)
