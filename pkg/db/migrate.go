package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// Migrate applies every goose migration in dir of fsys to pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, dir, table string, l *logger.Logger) error {
	if l == nil {
		l = logger.NewNope()
	}
	// Shares the pool's connections; closing it would close the pool.
	sqlDB := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(fsys)
	goose.SetLogger(&gooseLogger{l.WithOrigin("MIGRATE")})
	if table != "" {
		goose.SetTableName(table)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	return nil
}

// Migrate applies migrations to the handle's pool.
func (d *Database) Migrate(ctx context.Context, fsys fs.FS, dir, table string) error {
	if d.pool == nil {
		return ErrDatabaseConnection
	}
	return Migrate(ctx, d.pool, fsys, dir, table, d.log)
}

type gooseLogger struct {
	log *logger.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Config(fmt.Sprintf(format, args...))
}

// Fatalf logs only; goose returns the error to the caller.
func (g *gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
