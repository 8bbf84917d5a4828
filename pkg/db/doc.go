// Package db manages named PostgreSQL handles on top of
// [github.com/jackc/pgx/v5/pgxpool].
//
// A [Manager] maps handle names to DSNs. Handles connect lazily on first
// use, with retry, and are shared afterwards:
//
//	m := db.NewManager(
//		db.WithLogger(log),
//		db.WithDefaultDSN(cfg.String("db_dsn", "")),
//	)
//	defer m.Close()
//
//	m.Connect("reporting", "postgres://reporting.internal/stats")
//	h, err := m.Handle(ctx, "reporting")
//
// A [Reference] names a handle without connecting it, which lets
// components hold on to a database they may never touch.
//
// # SQL errors
//
// [Database] wraps a connection and logs every failing statement at ERROR
// while returning the error unchanged. [Database.WithTx] runs a function in
// a transaction, rolling back on error or panic.
//
// # Migrations
//
// [Migrate] applies goose migrations from any [io/fs.FS]:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	err := h.Migrate(ctx, migrations, "migrations", "schema_migrations")
//
// # Errors
//
//   - [ErrNonexistentDatabase] - handle name never registered
//   - [ErrDatabaseConnection] - registered handle could not connect
//   - [ErrFailedToParseDBConfig] - invalid connection string format
//   - [ErrHealthcheckFailed] - ping of a connected handle failed
//   - [ErrApplyMigrations] - migration execution failed
package db
