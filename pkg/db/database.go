package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

// Conn is the subset of pgxpool.Pool a Database runs statements through.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Database runs statements on a Conn and logs every SQL error at ERROR
// before returning it unchanged.
type Database struct {
	conn Conn
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDatabase wraps conn. A nil logger discards output.
func NewDatabase(conn Conn, l *logger.Logger) *Database {
	if l == nil {
		l = logger.NewNope()
	}
	return &Database{conn: conn, log: l}
}

// Pool returns the underlying pool, or nil when the Database wraps
// something else.
func (d *Database) Pool() *pgxpool.Pool { return d.pool }

func (d *Database) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := d.conn.Exec(ctx, sql, args...)
	if err != nil {
		d.logError(ctx, sql, err)
	}
	return tag, err
}

func (d *Database) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := d.conn.Query(ctx, sql, args...)
	if err != nil {
		d.logError(ctx, sql, err)
	}
	return rows, err
}

// QueryRow errors surface at Scan, so the row is wrapped to log there.
// pgx.ErrNoRows is not logged.
func (d *Database) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &loggedRow{row: d.conn.QueryRow(ctx, sql, args...), db: d, ctx: ctx, sql: sql}
}

// Begin starts a transaction.
func (d *Database) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := d.conn.Begin(ctx)
	if err != nil {
		d.logError(ctx, "BEGIN", err)
	}
	return tx, err
}

// Commit commits tx, logging failures.
func (d *Database) Commit(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		d.logError(ctx, "COMMIT", err)
	}
	return err
}

// Rollback rolls tx back, logging failures other than pgx.ErrTxClosed.
func (d *Database) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		d.logError(ctx, "ROLLBACK", err)
	}
	return err
}

func (d *Database) logError(ctx context.Context, sql string, err error) {
	d.log.ErrorContext(ctx, "sql error", "query", sql, "error", err)
}

type loggedRow struct {
	row pgx.Row
	db  *Database
	ctx context.Context
	sql string
}

func (r *loggedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		r.db.logError(r.ctx, r.sql, err)
	}
	return err
}
