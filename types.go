// Package pagesql is the top-level facade for the pagesql storage engine.
package pagesql

import "github.com/tuannm99/pagesql/internal/engine"

type (
	Database = engine.Database
	Options  = engine.Options
)

var ErrDatabaseClosed = engine.ErrDatabaseClosed

// Open opens or creates a database file.
func Open(path string, opts Options) (*Database, error) {
	return engine.Open(path, opts)
}
