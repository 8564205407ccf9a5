package migrations

import "embed"

// MigrationFiles holds one goose directory per SQL dialect.
//
//go:embed postgres/*.sql sqlite3/*.sql
var MigrationFiles embed.FS
