package data

import (
	_ "embed"
)

// LegacySQLiteSchema creates the pre-versioning site tables with a few rows,
// for exercising in-place upgrades.
//
//go:embed legacy/sqlite.sql
var LegacySQLiteSchema string
