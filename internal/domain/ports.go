package domain

import "context"

// Query describes a single table read: optional column projection, optional
// filter expression, optional row limit. A zero Limit means no limit.
type Query struct {
	Table   string
	Columns []string
	Where   string
	Limit   int
}

// Backend is the delegate strategy that actually reads the Access file.
// Implementations are synchronous; one backend serves one file.
type Backend interface {
	// Tables lists user tables. System tables (MSys*) are never included.
	Tables(ctx context.Context) ([]string, error)

	// TableInfo returns the schema of one table.
	TableInfo(ctx context.Context, table string) (*TableInfo, error)

	// Query reads rows from one table per the Query options.
	Query(ctx context.Context, q Query) (*ResultSet, error)

	// Count returns the number of rows in a table.
	Count(ctx context.Context, table string) (int, error)

	// Close releases delegate resources. Safe to call more than once.
	Close() error
}
