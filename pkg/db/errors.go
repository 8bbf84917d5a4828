package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")

	// ErrNonexistentDatabase is returned for handle names that were never
	// registered with the Manager.
	ErrNonexistentDatabase = errors.New("db: nonexistent database handle")

	// ErrDatabaseConnection wraps failures to reach a registered database.
	ErrDatabaseConnection = errors.New("db: database connection failed")

	ErrManagerClosed = errors.New("db: manager is closed")
)
