package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// MaxKeyLength is the longest key memcached accepts. Longer keys are logged
// as a warning and still sent to the backend.
const MaxKeyLength = 250

// namespaceSeparator joins namespace levels and the key.
const namespaceSeparator = ":"

// Cache is a namespaced key-value cache.
//
// Read failures degrade to misses: Get and IsCached never surface backend
// errors, they log them and report "not cached".
type Cache interface {
	// Get decodes the value stored under key into dst and reports whether
	// it was found. The error is non-nil only when decoding fails.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value under key. TTL semantics follow [Backend].
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// IsCached reports whether key holds a value.
	IsCached(ctx context.Context, key string) bool

	// AccessNamespace returns a view scoped under a child namespace that
	// shares this cache's backend.
	AccessNamespace(namespace string) Cache

	// Namespace returns the fully qualified namespace of this view.
	Namespace() string
}

// Marshaler serializes values for byte backends.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, dst any) error
}

type jsonMarshaler struct{}

func (jsonMarshaler) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler) Unmarshal(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Join(ErrUnmarshal, err)
	}
	return nil
}

// Option configures a Namespaced cache.
type Option func(*Namespaced)

// WithLogger sets the logger for key-length warnings and backend failures.
func WithLogger(l *logger.Logger) Option {
	return func(c *Namespaced) {
		c.log = l.WithOrigin("CACHE")
	}
}

// WithMarshaler replaces the default JSON marshaler.
func WithMarshaler(m Marshaler) Option {
	return func(c *Namespaced) {
		c.marshaler = m
	}
}

// WithNamespace sets the root namespace.
func WithNamespace(ns string) Option {
	return func(c *Namespaced) {
		c.namespace = ns
	}
}

// Namespaced is the Backend-backed Cache implementation.
type Namespaced struct {
	backend   Backend
	marshaler Marshaler
	log       *logger.Logger
	namespace string
}

// New creates a cache over backend.
//
//	c := cache.New(cache.NewMemcached(servers), cache.WithNamespace("esprit"))
//	users := c.AccessNamespace("users")
//	_ = users.Set(ctx, "42", user, time.Hour) // stored as esprit:users:42
func New(backend Backend, opts ...Option) *Namespaced {
	c := &Namespaced{
		backend:   backend,
		marshaler: jsonMarshaler{},
		log:       logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Namespaced) Get(ctx context.Context, key string, dst any) (bool, error) {
	full := c.fullKey(key)

	if m := memoFromContext(ctx); m != nil {
		if data, ok := m.get(full); ok {
			memoHits.Inc()
			return true, c.marshaler.Unmarshal(data, dst)
		}
	}

	data, err := c.backend.Get(ctx, full)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.ErrorContext(ctx, "cache read failed", slog.String("key", full), slog.String("error", err.Error()))
		}
		misses.Inc()
		return false, nil
	}
	backendHits.Inc()

	if m := memoFromContext(ctx); m != nil {
		m.put(full, data)
	}
	return true, c.marshaler.Unmarshal(data, dst)
}

func (c *Namespaced) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	full := c.fullKey(key)
	data, err := c.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	m := memoFromContext(ctx)
	if err := c.backend.Set(ctx, full, data, ttl); err != nil {
		if m != nil {
			m.forget(full)
		}
		c.log.ErrorContext(ctx, "cache write failed", slog.String("key", full), slog.String("error", err.Error()))
		return err
	}
	if m != nil {
		m.put(full, data)
	}
	return nil
}

func (c *Namespaced) Delete(ctx context.Context, key string) error {
	full := c.fullKey(key)
	if m := memoFromContext(ctx); m != nil {
		m.forget(full)
	}
	return c.backend.Delete(ctx, full)
}

func (c *Namespaced) IsCached(ctx context.Context, key string) bool {
	full := c.fullKey(key)
	if m := memoFromContext(ctx); m != nil {
		if _, ok := m.get(full); ok {
			return true
		}
	}
	ok, err := c.backend.Has(ctx, full)
	if err != nil {
		c.log.ErrorContext(ctx, "cache lookup failed", slog.String("key", full), slog.String("error", err.Error()))
		return false
	}
	return ok
}

func (c *Namespaced) AccessNamespace(namespace string) Cache {
	child := *c
	child.namespace = joinNamespace(c.namespace, namespace)
	return &child
}

func (c *Namespaced) Namespace() string {
	return c.namespace
}

// Backend returns the shared backend.
func (c *Namespaced) Backend() Backend {
	return c.backend
}

func (c *Namespaced) fullKey(key string) string {
	full := joinNamespace(c.namespace, key)
	if len(full) > MaxKeyLength {
		c.log.Warning("cache key exceeds maximum length",
			slog.String("key", full),
			slog.Int("length", len(full)),
			slog.Int("max", MaxKeyLength),
		)
	}
	return full
}

func joinNamespace(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + namespaceSeparator + child
}

var _ Cache = (*Namespaced)(nil)
