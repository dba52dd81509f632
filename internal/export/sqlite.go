package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"geoaccess/internal/domain"
)

// SQLiteWriter copies tables into a SQLite file so downstream tools can
// query them without the Access delegate.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the destination SQLite file.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &SQLiteWriter{db: db}, nil
}

// WriteTable creates the destination table (replacing any previous copy)
// and bulk-inserts the result set inside one transaction.
func (w *SQLiteWriter) WriteTable(ctx context.Context, info *domain.TableInfo, rs *domain.ResultSet) error {
	if _, err := w.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(info.Name)); err != nil {
		return fmt.Errorf("drop %s: %w", info.Name, err)
	}
	if _, err := w.db.ExecContext(ctx, createTableSQL(info)); err != nil {
		return fmt.Errorf("create %s: %w", info.Name, err)
	}
	if rs.Len() == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(rs.Columns)), ",")
	quoted := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		quoted[i] = quoteIdent(c)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(info.Name), strings.Join(quoted, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rs.Rows {
		args := make([]any, len(rs.Columns))
		for i := range args {
			if i < len(row) {
				args[i] = row[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", info.Name, err)
		}
	}
	return tx.Commit()
}

// Close releases the SQLite handle.
func (w *SQLiteWriter) Close() error { return w.db.Close() }

func createTableSQL(info *domain.TableInfo) string {
	defs := make([]string, len(info.Columns))
	for i, c := range info.Columns {
		defs[i] = quoteIdent(c.Name) + " " + sqliteType(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(info.Name), strings.Join(defs, ", "))
}

func sqliteType(t domain.FieldType) string {
	switch t {
	case domain.TypeInteger, domain.TypeBoolean:
		return "INTEGER"
	case domain.TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
