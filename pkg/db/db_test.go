package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esprit/pkg/db"
	"github.com/dmitrymomot/esprit/pkg/logger"
)

type fakeRow struct{ err error }

func (r fakeRow) Scan(...any) error { return r.err }

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeConn struct {
	err   error
	rowEr error
	tx    *fakeTx
}

func (c *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), c.err
}

func (c *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, c.err
}

func (c *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{err: c.rowEr}
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.tx, nil
}

func newLogged(conn db.Conn) (*db.Database, *logger.MemoryRecorder) {
	rec := logger.NewMemoryRecorder(logger.LevelFinest)
	return db.NewDatabase(conn, logger.New(logger.WithRecorder(rec))), rec
}

func TestDatabase_LogsSQLErrors(t *testing.T) {
	t.Parallel()

	t.Run("exec error is logged and returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("syntax error at or near")
		d, rec := newLogged(&fakeConn{err: boom})

		tag, err := d.Exec(context.Background(), "UPDTE users")
		require.ErrorIs(t, err, boom)
		require.Equal(t, int64(1), tag.RowsAffected())
		require.True(t, rec.Contains(logger.LevelError, "sql error"))
	})

	t.Run("successful exec logs nothing", func(t *testing.T) {
		t.Parallel()
		d, rec := newLogged(&fakeConn{})

		_, err := d.Exec(context.Background(), "UPDATE users SET x = 1")
		require.NoError(t, err)
		require.Empty(t, rec.Entries())
	})

	t.Run("no rows is not logged", func(t *testing.T) {
		t.Parallel()
		d, rec := newLogged(&fakeConn{rowEr: pgx.ErrNoRows})

		var id int
		err := d.QueryRow(context.Background(), "SELECT 1").Scan(&id)
		require.ErrorIs(t, err, pgx.ErrNoRows)
		require.Empty(t, rec.Entries())
	})

	t.Run("scan error is logged", func(t *testing.T) {
		t.Parallel()
		d, rec := newLogged(&fakeConn{rowEr: errors.New("bad column")})

		var id int
		require.Error(t, d.QueryRow(context.Background(), "SELECT x").Scan(&id))
		require.True(t, rec.Contains(logger.LevelError, "sql error"))
	})
}

func TestDatabase_WithTx(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		d, _ := newLogged(&fakeConn{tx: tx})

		require.NoError(t, d.WithTx(context.Background(), func(pgx.Tx) error { return nil }))
		require.True(t, tx.committed)
		require.False(t, tx.rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		d, _ := newLogged(&fakeConn{tx: tx})
		boom := errors.New("boom")

		err := d.WithTx(context.Background(), func(pgx.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
		require.True(t, tx.rolledBack)
		require.False(t, tx.committed)
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{}
		d, _ := newLogged(&fakeConn{tx: tx})

		require.PanicsWithValue(t, "kaboom", func() {
			_ = d.WithTx(context.Background(), func(pgx.Tx) error { panic("kaboom") })
		})
		require.True(t, tx.rolledBack)
	})

	t.Run("commit failure is logged", func(t *testing.T) {
		t.Parallel()
		tx := &fakeTx{commitErr: errors.New("serialization failure")}
		d, rec := newLogged(&fakeConn{tx: tx})

		require.Error(t, d.WithTx(context.Background(), func(pgx.Tx) error { return nil }))
		require.True(t, rec.Contains(logger.LevelError, "sql error"))
	})
}

func TestManager(t *testing.T) {
	t.Parallel()

	t.Run("unknown handle", func(t *testing.T) {
		t.Parallel()
		m := db.NewManager()
		require.False(t, m.HandleExists("nope"))

		_, err := m.Handle(context.Background(), "nope")
		require.ErrorIs(t, err, db.ErrNonexistentDatabase)

		_, err = m.Ref("nope").Deref(context.Background())
		require.ErrorIs(t, err, db.ErrNonexistentDatabase)
	})

	t.Run("default dsn registers default handle", func(t *testing.T) {
		t.Parallel()
		m := db.NewManager(db.WithDefaultDSN("postgres://localhost/esprit"))
		require.True(t, m.HandleExists(db.DefaultHandle))
		require.Equal(t, db.DefaultHandle, m.Ref(db.DefaultHandle).Handle())
	})

	t.Run("unreachable database", func(t *testing.T) {
		t.Parallel()
		cfg := db.DefaultConfig()
		cfg.RetryAttempts = 1
		cfg.MinConns = 0
		rec := logger.NewMemoryRecorder(logger.LevelFinest)
		m := db.NewManager(db.WithConfig(cfg), db.WithLogger(logger.New(logger.WithRecorder(rec))))
		m.Connect("broken", "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := m.Handle(ctx, "broken")
		require.ErrorIs(t, err, db.ErrDatabaseConnection)
		require.True(t, rec.Contains(logger.LevelError, "database connection failed"))
	})

	t.Run("malformed dsn", func(t *testing.T) {
		t.Parallel()
		m := db.NewManager()
		m.Connect("bad", "postgres://%zz")

		_, err := m.Handle(context.Background(), "bad")
		require.ErrorIs(t, err, db.ErrDatabaseConnection)
		require.ErrorIs(t, err, db.ErrFailedToParseDBConfig)
	})

	t.Run("closed manager", func(t *testing.T) {
		t.Parallel()
		m := db.NewManager(db.WithDefaultDSN("postgres://localhost/esprit"))
		require.NoError(t, m.Close())
		require.NoError(t, m.Close())

		_, err := m.Default(context.Background())
		require.ErrorIs(t, err, db.ErrManagerClosed)
	})
}

func TestWithCredentials(t *testing.T) {
	t.Parallel()

	require.Equal(t, "postgres://app:secret@db:5432/esprit",
		db.WithCredentials("postgres://db:5432/esprit", "app", "secret"))
	require.Equal(t, "postgres://owner@db/esprit",
		db.WithCredentials("postgres://owner@db/esprit", "app", "secret"))
	require.Equal(t, "postgres://db/esprit",
		db.WithCredentials("postgres://db/esprit", "", ""))
}
