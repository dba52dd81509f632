// Package odbc reads Access files through the operating system's Microsoft
// Access ODBC driver via database/sql. This is the default delegate on
// Windows, where the ACE driver ships with Office.
package odbc

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/alexbrainman/odbc" // registers the "odbc" driver

	"geoaccess/internal/domain"
)

// Options configures the backend.
type Options struct {
	// Driver overrides the ODBC driver name in the connection string.
	Driver  string
	Timeout time.Duration
	Logger  *slog.Logger
}

const defaultDriver = "Microsoft Access Driver (*.mdb, *.accdb)"

// Backend reads one Access file through an ODBC connection pool.
type Backend struct {
	path    string
	db      *sql.DB
	timeout time.Duration
	logger  *slog.Logger

	tables  []string
	schemas map[string]*domain.TableInfo
}

// New opens and verifies an ODBC connection to the file.
func New(path string, opts Options) (*Backend, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, domain.ErrConnection("database file not found: %s", path)
	}

	driver := opts.Driver
	if driver == "" {
		driver = defaultDriver
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	dsn := fmt.Sprintf("Driver={%s};Dbq=%s;", driver, path)
	db, err := sql.Open("odbc", dsn)
	if err != nil {
		return nil, domain.ErrConnection("open ODBC connection for %s: %v", path, err)
	}
	// Access files are single-user; one connection avoids locking trouble.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, domain.ErrConnection(
			"cannot access database %s (is the Microsoft Access Database Engine installed?): %v", path, err)
	}

	return &Backend{
		path:    path,
		db:      db,
		timeout: timeout,
		logger:  logger,
		schemas: map[string]*domain.TableInfo{},
	}, nil
}

// Tables lists user tables from the MSysObjects catalog.
func (b *Backend) Tables(ctx context.Context) ([]string, error) {
	if b.tables == nil {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		rows, err := b.db.QueryContext(ctx,
			"SELECT Name FROM MSysObjects WHERE Type IN (1, 4, 6) AND Flags = 0")
		if err != nil {
			return nil, domain.WrapQuery(err, "list tables")
		}
		defer rows.Close()

		tables := []string{}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, domain.WrapQuery(err, "list tables")
			}
			if strings.HasPrefix(name, "MSys") || strings.HasPrefix(name, "~") {
				continue
			}
			tables = append(tables, name)
		}
		if err := rows.Err(); err != nil {
			return nil, domain.WrapQuery(err, "list tables")
		}
		b.tables = tables
	}
	return append([]string(nil), b.tables...), nil
}

func (b *Backend) checkTable(ctx context.Context, table string) error {
	tables, err := b.Tables(ctx)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if t == table {
			return nil
		}
	}
	return domain.ErrTableNotFound(table)
}

// TableInfo probes the table with TOP 1 and reads driver column metadata.
func (b *Backend) TableInfo(ctx context.Context, table string) (*domain.TableInfo, error) {
	if err := b.checkTable(ctx, table); err != nil {
		return nil, err
	}
	if info, ok := b.schemas[table]; ok {
		return info, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	rows, err := b.db.QueryContext(ctx, "SELECT TOP 1 * FROM "+quoteIdent(table))
	if err != nil {
		return nil, domain.WrapQuery(err, "describe table %q", table)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, domain.WrapQuery(err, "describe table %q", table)
	}

	info := &domain.TableInfo{Name: table}
	for _, ct := range types {
		nullable, ok := ct.Nullable()
		if !ok {
			nullable = true
		}
		info.Columns = append(info.Columns, domain.ColumnInfo{
			Name:     ct.Name(),
			Type:     fieldTypeFromODBC(ct.DatabaseTypeName()),
			Nullable: nullable,
		})
	}
	b.schemas[table] = info
	return info, nil
}

// Query pushes projection, filter and limit down to the driver as SQL.
func (b *Backend) Query(ctx context.Context, q domain.Query) (*domain.ResultSet, error) {
	if err := b.checkTable(ctx, q.Table); err != nil {
		return nil, err
	}
	info, err := b.TableInfo(ctx, q.Table)
	if err != nil {
		return nil, err
	}

	query, ok := buildSelect(q, info.ColumnNames())
	if !ok {
		return &domain.ResultSet{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	rows, err := b.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.WrapQuery(err, "query failed: %s", query)
	}
	defer rows.Close()

	rs, err := scanRows(rows)
	if err != nil {
		return nil, domain.WrapQuery(err, "query failed: %s", query)
	}
	b.logger.Debug("delegate query", "sql", query, "rows", rs.Len(), "duration", time.Since(start))
	return rs, nil
}

// Count runs SELECT COUNT(*) against the table.
func (b *Backend) Count(ctx context.Context, table string) (int, error) {
	if err := b.checkTable(ctx, table); err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var count int
	err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&count)
	if err != nil {
		return 0, domain.WrapQuery(err, "count rows in %q", table)
	}
	return count, nil
}

// Close releases the connection pool.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// scanRows materializes a sql.Rows cursor into a ResultSet.
func scanRows(rows *sql.Rows) (*domain.ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &domain.ResultSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if bs, ok := v.([]byte); ok {
				values[i] = string(bs)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	return rs, rows.Err()
}

// fieldTypeFromODBC maps driver type names to domain field types.
func fieldTypeFromODBC(name string) domain.FieldType {
	switch strings.ToUpper(name) {
	case "VARCHAR", "LONGCHAR", "CHAR", "TEXT", "WVARCHAR", "WCHAR":
		return domain.TypeText
	case "INTEGER", "SMALLINT", "TINYINT", "COUNTER", "BYTE", "LONG", "BIGINT":
		return domain.TypeInteger
	case "DOUBLE", "REAL", "FLOAT", "DECIMAL", "NUMERIC", "CURRENCY":
		return domain.TypeFloat
	case "BIT", "BOOLEAN":
		return domain.TypeBoolean
	case "DATETIME", "DATE", "TIMESTAMP", "TIME":
		return domain.TypeDate
	default:
		return domain.TypeUnknown
	}
}
