package i18n

import "embed"

// Migrations holds the goose migrations creating the languages and
// translations tables. Apply them with db.Migrate(ctx, pool, Migrations,
// MigrationsDir, table, log).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"
