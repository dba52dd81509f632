// Package access is the public surface for reading legacy Microsoft Access
// database files (.mdb, .accdb). Parsing of the file format is delegated to
// mdbtools (Linux/macOS) or the OS ODBC driver (Windows); see
// internal/backend for the selection rules.
package access

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"geoaccess/internal/backend"
	"geoaccess/internal/domain"
	"geoaccess/internal/export"
)

// Database is a read-only handle on one Access file. It is not safe for
// concurrent use; operations are synchronous and block until the delegate
// returns.
type Database struct {
	path    string
	backend domain.Backend
	opts    options
	closed  bool
}

// Open validates the path, selects a delegate for this platform and returns
// a ready handle. The returned error is a *domain.ConnectionError when the
// file or the delegate is unavailable.
func Open(path string, opts ...Option) (*Database, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b, err := backend.Open(path, backend.Options{
		Kind:        o.kind,
		MdbtoolsDir: o.mdbtoolsDir,
		Timeout:     o.timeout,
		Logger:      o.logger,
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("database opened", "path", path, "backend", backendName(o.kind))
	return &Database{path: path, backend: b, opts: o}, nil
}

// Path returns the database file path.
func (d *Database) Path() string { return d.path }

// Tables lists the user tables in the database.
func (d *Database) Tables(ctx context.Context) ([]string, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	return d.backend.Tables(ctx)
}

// TableInfo returns the schema of one table: ordered column names with
// inferred types.
func (d *Database) TableInfo(ctx context.Context, table string) (*domain.TableInfo, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	return d.backend.TableInfo(ctx, table)
}

// Query reads rows from a table. Options select columns, filter rows with
// an expression (e.g. `hole_id == 'BH-001'`) and cap the row count.
func (d *Database) Query(ctx context.Context, table string, opts ...QueryOption) (*domain.ResultSet, error) {
	if err := d.check(); err != nil {
		return nil, err
	}

	q := domain.Query{Table: table}
	for _, opt := range opts {
		opt(&q)
	}

	queryID := shortID()
	start := time.Now()
	rs, err := d.backend.Query(ctx, q)
	logger := d.opts.logger.With("query_id", queryID, "table", table, "duration", time.Since(start))
	if err != nil {
		logger.Warn("query failed", "error", err)
		return nil, err
	}
	logger.Info("query", "rows", rs.Len(), "where", q.Where, "limit", q.Limit)
	return rs, nil
}

// Count returns the number of rows in a table.
func (d *Database) Count(ctx context.Context, table string) (int, error) {
	if err := d.check(); err != nil {
		return 0, err
	}
	return d.backend.Count(ctx, table)
}

// ExportCSV queries a table and writes the result to dest as CSV.
func (d *Database) ExportCSV(ctx context.Context, table, dest string, opts ...QueryOption) error {
	rs, err := d.Query(ctx, table, opts...)
	if err != nil {
		return err
	}
	return export.WriteCSV(dest, rs)
}

// ExportXLSX queries a table and writes the result to dest as an XLSX
// workbook with one sheet named after the table.
func (d *Database) ExportXLSX(ctx context.Context, table, dest string, opts ...QueryOption) error {
	rs, err := d.Query(ctx, table, opts...)
	if err != nil {
		return err
	}
	return export.WriteXLSX(dest, table, rs)
}

// ExportSQLite copies the named tables (all user tables when none are
// given) into a SQLite file at dest for downstream analysis.
func (d *Database) ExportSQLite(ctx context.Context, dest string, tables ...string) error {
	if err := d.check(); err != nil {
		return err
	}
	if len(tables) == 0 {
		all, err := d.backend.Tables(ctx)
		if err != nil {
			return err
		}
		tables = all
	}

	w, err := export.NewSQLiteWriter(dest)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, table := range tables {
		info, err := d.backend.TableInfo(ctx, table)
		if err != nil {
			return err
		}
		rs, err := d.backend.Query(ctx, domain.Query{Table: table})
		if err != nil {
			return err
		}
		if err := w.WriteTable(ctx, info, rs); err != nil {
			return fmt.Errorf("snapshot table %q: %w", table, err)
		}
		d.opts.logger.Info("table snapshotted", "table", table, "rows", rs.Len(), "dest", filepath.Base(dest))
	}
	return nil
}

// Close releases the delegate. Safe to call more than once; any operation
// after Close returns a ConnectionError.
func (d *Database) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.backend.Close()
}

func (d *Database) check() error {
	if d.closed {
		return domain.ErrConnection("database %s is closed", d.path)
	}
	return nil
}

func backendName(k backend.Kind) string {
	if k == backend.KindAuto {
		return "auto"
	}
	return string(k)
}

// shortID tags one query in the logs.
func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
