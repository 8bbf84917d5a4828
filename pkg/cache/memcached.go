package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// maxRelativeExpiration is the largest expiration memcached treats as a
// relative number of seconds; larger values are read as unix timestamps.
const maxRelativeExpiration = 30 * 24 * time.Hour

// Memcached is a backend over one or more memcached servers.
type Memcached struct {
	client     *memcache.Client
	defaultTTL time.Duration
	servers    []string
}

// MemcachedOption configures the memcached backend.
type MemcachedOption func(*memcachedOptions)

type memcachedOptions struct {
	log        *logger.Logger
	timeout    time.Duration
	defaultTTL time.Duration
}

// WithMemcachedLogger sets the logger used for connection diagnostics.
func WithMemcachedLogger(l *logger.Logger) MemcachedOption {
	return func(o *memcachedOptions) {
		o.log = l
	}
}

// WithMemcachedTimeout sets the socket read/write timeout.
func WithMemcachedTimeout(d time.Duration) MemcachedOption {
	return func(o *memcachedOptions) {
		o.timeout = d
	}
}

// WithMemcachedDefaultTTL sets the expiration used for zero TTLs.
// Default: 0, which memcached keeps until evicted.
func WithMemcachedDefaultTTL(d time.Duration) MemcachedOption {
	return func(o *memcachedOptions) {
		o.defaultTTL = d
	}
}

// NewMemcached pings each server and builds a client over the reachable
// ones. Unreachable servers are logged at ERROR. When no server answers the
// failure is logged at SEVERE and the backend is still returned: every read
// then misses, so the application keeps running without a cache.
func NewMemcached(servers []string, opts ...MemcachedOption) *Memcached {
	o := &memcachedOptions{log: logger.NewNope(), timeout: memcache.DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}
	log := o.log.WithOrigin("MEMCACHED")

	reachable := make([]string, 0, len(servers))
	for _, server := range servers {
		conn := memcache.New(server)
		conn.Timeout = o.timeout
		if err := conn.Ping(); err != nil {
			log.Error("unable to connect to cache server", slog.String("server", server), slog.String("error", err.Error()))
			continue
		}
		reachable = append(reachable, server)
	}
	if len(reachable) == 0 {
		log.Severe("no cache servers connected", slog.Int("configured", len(servers)))
	}

	var client *memcache.Client
	if len(reachable) > 0 {
		client = memcache.New(reachable...)
		client.Timeout = o.timeout
	}

	return &Memcached{client: client, defaultTTL: o.defaultTTL, servers: reachable}
}

// Servers returns the servers that answered at construction.
func (m *Memcached) Servers() []string {
	return m.servers
}

func (m *Memcached) Get(_ context.Context, key string) ([]byte, error) {
	if m.client == nil {
		return nil, ErrNoServers
	}
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

func (m *Memcached) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.client == nil {
		return ErrNoServers
	}
	return m.client.Set(&memcache.Item{Key: key, Value: value, Expiration: m.expiration(ttl)})
}

func (m *Memcached) Delete(_ context.Context, key string) error {
	if m.client == nil {
		return ErrNoServers
	}
	if err := m.client.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}

func (m *Memcached) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Ping checks every reachable server.
func (m *Memcached) Ping(context.Context) error {
	if m.client == nil {
		return ErrNoServers
	}
	return m.client.Ping()
}

// Close is a no-op; connections are pooled by the client and released
// when idle.
func (m *Memcached) Close() error {
	return nil
}

func (m *Memcached) expiration(ttl time.Duration) int32 {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	if ttl <= 0 {
		return 0
	}
	if ttl > maxRelativeExpiration {
		return int32(time.Now().Add(ttl).Unix())
	}
	// memcached reads 0 as "never expires".
	return max(int32(ttl/time.Second), 1)
}

var _ Backend = (*Memcached)(nil)
