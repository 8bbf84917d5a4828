package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

var sfGroup singleflight.Group

type getOrSetResult[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key, or calls fn on a miss and
// caches its result. Concurrent misses for the same namespaced key share a
// single fn call.
func GetOrSet[V any](ctx context.Context, c Cache, key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	var cached V
	if ok, err := c.Get(ctx, key, &cached); ok && err == nil {
		return cached, nil
	}

	v, err, _ := sfGroup.Do(joinNamespace(c.Namespace(), key), func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return getOrSetResult[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := v.(getOrSetResult[V])
	_ = c.Set(ctx, key, r.val, r.ttl)
	return r.val, nil
}
