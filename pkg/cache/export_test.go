package cache

import "time"

// MemcachedExpiration exposes the TTL conversion of the memcached backend.
func MemcachedExpiration(defaultTTL, ttl time.Duration) int32 {
	m := &Memcached{defaultTTL: defaultTTL}
	return m.expiration(ttl)
}
