package db

import (
	"net/url"
	"time"
)

// Config holds PostgreSQL pool parameters shared by every handle a Manager
// opens.
type Config struct {
	// Migration settings for database schema management.
	MigrationsTable string

	// Health check frequency to detect connection issues early.
	HealthCheckPeriod time.Duration

	// Force connection refresh behind connection poolers like PgBouncer.
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration

	// Retry configuration for transient network issues on first use.
	RetryAttempts int
	RetryInterval time.Duration

	MaxOpenConns int32
	MinConns     int32
}

// DefaultConfig returns the pool settings used when none are given.
func DefaultConfig() Config {
	return Config{
		MigrationsTable:   "schema_migrations",
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		MaxConnLifetime:   30 * time.Minute,
		RetryAttempts:     3,
		RetryInterval:     time.Second,
		MaxOpenConns:      10,
		MinConns:          1,
	}
}

// WithCredentials injects user and password into dsn when the DSN itself
// carries none. This mirrors the db_user/db_pass config keys.
func WithCredentials(dsn, user, pass string) string {
	if user == "" {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" || u.User != nil {
		return dsn
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}
