package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// DefaultHandle is the handle name used when callers do not pick one.
const DefaultHandle = "default"

// Manager keeps named database handles. A handle is registered with its DSN
// and connected on first use; the connection is reused afterwards.
type Manager struct {
	log     *logger.Logger
	cfg     Config
	dsns    map[string]string
	handles map[string]*Database
	mu      sync.Mutex
	closed  bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for connection and SQL errors.
func WithLogger(l *logger.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithConfig overrides the pool settings.
func WithConfig(cfg Config) ManagerOption {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithDefaultDSN registers dsn under DefaultHandle.
func WithDefaultDSN(dsn string) ManagerOption {
	return func(m *Manager) {
		if dsn != "" {
			m.dsns[DefaultHandle] = dsn
		}
	}
}

// NewManager creates a Manager. No connection is made until Handle.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		log:     logger.NewNope(),
		cfg:     DefaultConfig(),
		dsns:    make(map[string]string),
		handles: make(map[string]*Database),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithOrigin("DB")
	return m
}

// Connect registers dsn under name, replacing a previous registration that
// has not been connected yet.
func (m *Manager) Connect(name, dsn string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dsns[name] = dsn
}

// HandleExists reports whether name was registered.
func (m *Manager) HandleExists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.dsns[name]
	return ok
}

// Handle returns the database for name, connecting it on first use.
// Unregistered names yield ErrNonexistentDatabase; failures to connect
// yield ErrDatabaseConnection.
func (m *Manager) Handle(ctx context.Context, name string) (*Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrManagerClosed
	}
	if h, ok := m.handles[name]; ok {
		return h, nil
	}
	dsn, ok := m.dsns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNonexistentDatabase, name)
	}

	pool, err := Connect(ctx, dsn, m.cfg)
	if err != nil {
		m.log.ErrorContext(ctx, "database connection failed", "handle", name, "error", err)
		return nil, errors.Join(fmt.Errorf("%w: %s", ErrDatabaseConnection, name), err)
	}
	h := NewDatabase(pool, m.log.With("handle", name))
	h.pool = pool
	m.handles[name] = h
	return h, nil
}

// Default is shorthand for Handle(ctx, DefaultHandle).
func (m *Manager) Default(ctx context.Context) (*Database, error) {
	return m.Handle(ctx, DefaultHandle)
}

// Ping checks every connected handle. Handles never used are skipped.
func (m *Manager) Ping(ctx context.Context) error {
	m.mu.Lock()
	pools := make([]*pgxpool.Pool, 0, len(m.handles))
	for _, h := range m.handles {
		if h.pool != nil {
			pools = append(pools, h.pool)
		}
	}
	m.mu.Unlock()

	for _, p := range pools {
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
	}
	return nil
}

// Close closes every connected pool. The Manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for name, h := range m.handles {
		if h.pool != nil {
			h.pool.Close()
		}
		delete(m.handles, name)
	}
	return nil
}

// Reference names a handle on a Manager without connecting it.
type Reference struct {
	manager *Manager
	handle  string
}

// Ref returns a Reference to name.
func (m *Manager) Ref(name string) Reference {
	return Reference{manager: m, handle: name}
}

// Handle returns the referenced handle name.
func (r Reference) Handle() string { return r.handle }

// Deref resolves the reference, connecting if needed.
func (r Reference) Deref(ctx context.Context) (*Database, error) {
	if r.manager == nil {
		return nil, fmt.Errorf("%w: %s", ErrNonexistentDatabase, r.handle)
	}
	return r.manager.Handle(ctx, r.handle)
}
