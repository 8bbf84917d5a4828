package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned by backends when a key does not exist or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed backend.
	ErrClosed = errors.New("cache: closed")

	// ErrMarshal is returned when value serialization fails.
	ErrMarshal = errors.New("cache: failed to marshal value")

	// ErrUnmarshal is returned when value deserialization fails.
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")

	// ErrNoServers is returned when a memcached backend has no reachable server.
	ErrNoServers = errors.New("cache: no cache servers available")

	// ErrConnectionFailed is returned when a redis connection cannot be established.
	ErrConnectionFailed = errors.New("cache: connection failed")

	// ErrInvalidURL is returned for malformed backend URLs.
	ErrInvalidURL = errors.New("cache: invalid connection url")
)
