package migrations

import "embed"

// FS contains embedded SQLite migrations for the catalog and session tables.
//
//go:embed *.sql
var FS embed.FS
