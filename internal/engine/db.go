package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/pagesql/internal/catalog"
	"github.com/tuannm99/pagesql/internal/sql/executor"
	"github.com/tuannm99/pagesql/internal/sql/planner"
	"github.com/tuannm99/pagesql/internal/storage"
)

var ErrDatabaseClosed = errors.New("pagesql: database is closed")

// Options configures how a database file is opened.
type Options struct {
	// HeaderPages reserves that many pages for the catalog. Zero means one.
	HeaderPages int
}

// Database is an open database file: the pager plus the row count of its
// primary table.
type Database struct {
	pager  *storage.Pager
	exec   *executor.Executor
	closed bool
}

// Open opens or creates the database file at path.
func Open(path string, opts Options) (*Database, error) {
	p, err := storage.Open(path, storage.Options{HeaderPages: opts.HeaderPages})
	if err != nil {
		return nil, err
	}

	var rows uint32
	if primary, ok := p.Catalog().Primary(); ok {
		rows = storage.RowCount(p.DataLength(), primary.RowSize)
		slog.Debug("engine: row count",
			"table", primary.Name,
			"file_length", p.FileLength(),
			"data_length", p.DataLength(),
			"row_size", primary.RowSize,
			"rows", rows,
		)
	}

	slog.Info("engine: database opened", "path", path, "tables", p.Catalog().Len(), "rows", rows)
	return &Database{
		pager: p,
		exec:  executor.NewExecutor(p, rows),
	}, nil
}

// Prepare parses line and binds it against the catalog. It never changes state.
func (db *Database) Prepare(line string) (planner.Plan, error) {
	if db.closed {
		return nil, ErrDatabaseClosed
	}
	return planner.Prepare(line, db.pager.Catalog())
}

func (db *Database) Execute(plan planner.Plan) (*executor.Result, error) {
	if db.closed {
		return nil, ErrDatabaseClosed
	}
	return db.exec.Execute(plan)
}

// Exec prepares and executes one statement.
func (db *Database) Exec(line string) (*executor.Result, error) {
	plan, err := db.Prepare(line)
	if err != nil {
		return nil, err
	}
	return db.Execute(plan)
}

func (db *Database) RowCount() uint32 { return db.exec.RowCount() }

func (db *Database) Catalog() *catalog.Catalog { return db.pager.Catalog() }

func (db *Database) Path() string { return db.pager.Path() }

// Close flushes the catalog and the dirty pages, then closes the file.
func (db *Database) Close() error {
	if db.closed {
		return ErrDatabaseClosed
	}
	db.closed = true

	rows := db.exec.RowCount()
	if err := db.pager.Close(rows); err != nil {
		return fmt.Errorf("close %s: %w", db.pager.Path(), err)
	}
	slog.Info("engine: database closed", "path", db.pager.Path(), "rows", rows)
	return nil
}
