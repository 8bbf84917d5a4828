package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrymomot/esprit/pkg/cache"
	"github.com/dmitrymomot/esprit/pkg/config"
	"github.com/dmitrymomot/esprit/pkg/db"
	"github.com/dmitrymomot/esprit/pkg/logger"
	"github.com/dmitrymomot/esprit/pkg/mailer"
	"github.com/dmitrymomot/esprit/pkg/mailer/resend"
)

// Configuration keys read by the controller and the application.
const (
	KeyDBDSN               = "db_dsn"
	KeyDBUser              = "db_user"
	KeyDBPass              = "db_pass"
	KeyCacheBackend        = "cache_backend"
	KeyCacheServers        = "cache_servers"
	KeyRedisURL            = "redis_url"
	KeyFallbackCommand     = "fallback_command"
	KeyUseDefaultResolvers = "use_default_resolvers"
	KeyTemplatesDir        = "templates_dir"
	KeyCommandMapping      = "command_mapping"
	KeyViewMapping         = "view_mapping"
	KeyHost                = "host"
	KeyDebug               = "debug"
	KeyLogFile             = "log_file"
	KeyLogLevel            = "log_level"
	KeySentryDSN           = "sentry_dsn"
	KeyEnvironment         = "environment"
	KeyAddress             = "address"
	KeyResendAPIKey        = "resend_api_key"
	KeyMailFrom            = "mail_from"
)

// Cache backends selectable with cache_backend.
const (
	CacheMemcached = "memcached"
	CacheRedis     = "redis"
	CacheMemory    = "memory"
	CacheBlackhole = "blackhole"
)

// NewLoggerFromConfig builds the application logger: a stdout stream at
// log_level, a file recorder when log_file is set and Sentry when
// sentry_dsn is set. extra options are applied last.
func NewLoggerFromConfig(cfg *config.Config, extra ...logger.Option) (*logger.Logger, error) {
	level := logger.LevelInfo
	if s := cfg.String(KeyLogLevel, ""); s != "" {
		l, err := logger.ParseLevel(s)
		if err != nil {
			return nil, err
		}
		level = l
	}

	opts := []logger.Option{
		logger.WithRecorder(logger.NewStreamRecorder(os.Stdout, level)),
	}

	if file := cfg.String(KeyLogFile, ""); file != "" {
		r, err := logger.NewFileRecorder(file, level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithRecorder(r))
	}

	sentry, err := logger.NewSentryRecorder(logger.SentryConfig{
		DSN:         cfg.String(KeySentryDSN, ""),
		Environment: cfg.String(KeyEnvironment, "production"),
	})
	switch {
	case err == nil:
		opts = append(opts, logger.WithRecorder(sentry))
	case !errors.Is(err, logger.ErrSentryDisabled):
		return nil, err
	}

	return logger.New(append(opts, extra...)...), nil
}

// NewCacheFromConfig opens the backend named by cache_backend. Without it,
// memcached is used when cache_servers is set and memory otherwise. The
// returned backend is nil for the blackhole cache.
func NewCacheFromConfig(ctx context.Context, cfg *config.Config, l *logger.Logger) (cache.Cache, cache.Backend, error) {
	kind := strings.ToLower(cfg.String(KeyCacheBackend, ""))
	if kind == "" {
		kind = CacheMemory
		if len(cfg.Strings(KeyCacheServers)) > 0 {
			kind = CacheMemcached
		}
	}

	var backend cache.Backend
	switch kind {
	case CacheMemcached:
		backend = cache.NewMemcached(cfg.Strings(KeyCacheServers), cache.WithMemcachedLogger(l))
	case CacheRedis:
		url, err := cfg.Require(KeyRedisURL)
		if err != nil {
			return nil, nil, err
		}
		client, err := cache.OpenRedis(ctx, url, 3, time.Second)
		if err != nil {
			return nil, nil, err
		}
		backend = cache.NewRedis(client)
	case CacheMemory:
		backend = cache.NewMemory()
	case CacheBlackhole:
		return cache.NewBlackhole(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", kind)
	}
	return cache.New(backend, cache.WithLogger(l)), backend, nil
}

// NewDatabasesFromConfig returns a manager whose default handle points at
// db_dsn, or nil when no database is configured. Connections are opened
// lazily.
func NewDatabasesFromConfig(cfg *config.Config, l *logger.Logger) *db.Manager {
	dsn := cfg.String(KeyDBDSN, "")
	if dsn == "" {
		return nil
	}
	return db.NewManager(
		db.WithLogger(l),
		db.WithDefaultDSN(db.WithCredentials(dsn, cfg.String(KeyDBUser, ""), cfg.String(KeyDBPass, ""))),
	)
}

// NewMailerFromConfig returns a Resend sender when resend_api_key is set.
// Without a key, emails are written to the log.
func NewMailerFromConfig(cfg *config.Config, l *logger.Logger) mailer.Sender {
	key := cfg.String(KeyResendAPIKey, "")
	if key == "" {
		return mailer.NewLogSender(l)
	}
	return resend.New(resend.Config{
		APIKey: key,
		From:   mailer.NewAddress(cfg.String(KeyMailFrom, "")),
	})
}
