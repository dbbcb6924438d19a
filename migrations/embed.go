// Package migrations holds the versioned SQL schema for each supported driver.
package migrations

import "embed"

// FS contains one directory of migrations per database driver.
//
//go:embed mysql/*.sql sqlite3/*.sql
var FS embed.FS
