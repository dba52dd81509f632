package access

import (
	"io"
	"log/slog"
	"time"

	"geoaccess/internal/backend"
	"geoaccess/internal/domain"
)

// Re-exported domain types so callers don't import internal packages.
type (
	// TableInfo describes a table schema.
	TableInfo = domain.TableInfo
	// ColumnInfo describes one column.
	ColumnInfo = domain.ColumnInfo
	// ResultSet is a materialized query result.
	ResultSet = domain.ResultSet
	// ConnectionError reports an unreachable file or delegate.
	ConnectionError = domain.ConnectionError
	// TableNotFoundError reports an unknown table.
	TableNotFoundError = domain.TableNotFoundError
	// QueryError wraps any other delegate failure.
	QueryError = domain.QueryError
)

type options struct {
	kind        backend.Kind
	mdbtoolsDir string
	timeout     time.Duration
	logger      *slog.Logger
}

func defaultOptions() options {
	return options{
		timeout: 2 * time.Minute,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures Open.
type Option func(*options)

// WithBackend forces a delegate strategy ("mdbtools" or "odbc") instead of
// selecting by operating system.
func WithBackend(name string) Option {
	return func(o *options) { o.kind = backend.Kind(name) }
}

// WithMdbtoolsDir points at a directory holding the mdbtools binaries
// instead of resolving them through PATH.
func WithMdbtoolsDir(dir string) Option {
	return func(o *options) { o.mdbtoolsDir = dir }
}

// WithTimeout bounds each delegate operation.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// QueryOption configures a single Query.
type QueryOption func(*domain.Query)

// WithColumns projects the result to the named columns, in order. Unknown
// names are dropped; if none remain the result is empty.
func WithColumns(columns ...string) QueryOption {
	return func(q *domain.Query) { q.Columns = columns }
}

// WithWhere filters rows with an expression such as `hole_id == 'BH-001'`.
func WithWhere(expr string) QueryOption {
	return func(q *domain.Query) { q.Where = expr }
}

// WithLimit caps the number of returned rows. Values <= 0 mean no limit.
func WithLimit(n int) QueryOption {
	return func(q *domain.Query) { q.Limit = n }
}
