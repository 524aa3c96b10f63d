package migrations

import "embed"

// FS contains embedded SQLite migrations for the season archive.
//
//go:embed *.sql
var FS embed.FS
