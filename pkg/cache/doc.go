// Package cache provides a namespaced key-value cache over pluggable byte
// backends.
//
// # Backends
//
// A [Backend] stores raw bytes:
//
//   - [Memcached]: one or more memcached servers (gomemcache)
//   - [Redis]: a go-redis client
//   - [Memory]: in-process LRU with TTL expiration
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// backend default, negative never expires.
//
// # Namespaces
//
// [New] wraps a backend in a [Cache]. [Cache.AccessNamespace] returns a
// child view whose keys are prefixed with the namespace path, sharing the
// parent's backend connection:
//
//	root := cache.New(cache.NewMemcached([]string{"127.0.0.1:11211"}), cache.WithNamespace("site"))
//	langs := root.AccessNamespace("lang")
//	langs.Set(ctx, "en", lang, time.Hour) // key "site:lang:en"
//
// Keys longer than [MaxKeyLength] bytes are logged as a warning.
//
// # Request memo
//
// [WithMemo] attaches a request-local memo to a context. Within it,
// repeated reads of the same key hit the backend once, and a Set followed
// by a Get never reaches the backend at all:
//
//	ctx = cache.WithMemo(ctx)
//	c.Set(ctx, "k", v, 0)
//	c.Get(ctx, "k", &out) // served from the memo
//
// # Failure handling
//
// Backend read failures are logged and reported as misses, so an
// unreachable cache slows the application down instead of breaking it.
// [Blackhole] is a cache that never stores anything, for environments
// without a cache server.
package cache
