// Package session holds per-visitor state between requests.
//
// A [Session] is addressed by an opaque token kept in a cookie. [Store]
// persists sessions; [CacheStore] keeps them in any cache backend, so the
// same memcached or redis servers that serve the page cache also hold
// sessions.
package session
