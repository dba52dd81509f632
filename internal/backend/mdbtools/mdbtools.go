// Package mdbtools reads Access files by delegating to the mdbtools
// command-line suite (mdb-tables, mdb-export). No ODBC driver is needed;
// this is the default delegate on Linux and macOS.
package mdbtools

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"geoaccess/internal/domain"
	"geoaccess/internal/filter"
)

const defaultTimeout = 2 * time.Minute

// Rows sampled per table when inferring column types.
const schemaSampleRows = 200

// Options configures the backend.
type Options struct {
	// BinDir is an explicit directory holding the mdbtools binaries.
	// Empty means resolve through PATH.
	BinDir string
	// Timeout bounds each delegate invocation. Zero means the default.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Backend delegates to the mdbtools CLI. One Backend serves one file.
// Table listing and schemas are cached after first use; the underlying
// file is assumed not to change while the handle is open.
type Backend struct {
	path    string
	binDir  string
	timeout time.Duration
	logger  *slog.Logger

	tables  []string
	schemas map[string]*domain.TableInfo
}

// New probes the mdbtools installation and returns a Backend for path.
func New(path string, opts Options) (*Backend, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, domain.ErrConnection("database file not found: %s", path)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	b := &Backend{
		path:    path,
		binDir:  opts.BinDir,
		timeout: timeout,
		logger:  logger,
		schemas: map[string]*domain.TableInfo{},
	}

	if err := b.probe(); err != nil {
		return nil, err
	}
	return b, nil
}

// probe verifies mdb-tables is present and runnable.
func (b *Backend) probe() error {
	bin := b.binary("mdb-tables")
	if _, err := exec.LookPath(bin); err != nil {
		return domain.ErrConnection(
			"mdbtools not found (%q): install it first (apt install mdbtools / brew install mdbtools)", bin)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := exec.CommandContext(ctx, bin, "--version").Run(); err != nil {
		return domain.ErrConnection("mdbtools found but not runnable: %v", err)
	}
	return nil
}

func (b *Backend) binary(name string) string {
	if b.binDir == "" {
		return name
	}
	return filepath.Join(b.binDir, name)
}

// run executes one delegate command and returns its stdout.
func (b *Backend) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.binary(name), args...)
	// Without a wait delay, Run blocks until the stdout pipe closes, which
	// can be long after the deadline if the delegate spawned children.
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	b.logger.Debug("delegate invocation",
		"cmd", name, "args", strings.Join(args, " "), "duration", time.Since(start), "error", err)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.ErrQuery("%s timed out after %s", name, b.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, domain.ErrQuery("%s failed: %s", name, msg)
	}
	return stdout.Bytes(), nil
}

// Tables lists user tables via `mdb-tables -1`, filtering system tables.
func (b *Backend) Tables(ctx context.Context) ([]string, error) {
	if b.tables == nil {
		out, err := b.run(ctx, "mdb-tables", "-1", b.path)
		if err != nil {
			return nil, err
		}
		tables := []string{}
		for _, line := range strings.Split(string(out), "\n") {
			name := strings.TrimSpace(line)
			if name == "" || strings.HasPrefix(name, "MSys") {
				continue
			}
			tables = append(tables, name)
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

// export runs mdb-export and parses its CSV output into a header and rows.
func (b *Backend) export(ctx context.Context, table string) ([]string, [][]string, error) {
	out, err := b.run(ctx, "mdb-export", b.path, table)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(out))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, domain.WrapQuery(err, "parse export of table %q", table)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, domain.WrapQuery(err, "parse export of table %q", table)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

// TableInfo returns the table schema. Column names come from the export
// header; types are inferred from a bounded sample of rows.
func (b *Backend) TableInfo(ctx context.Context, table string) (*domain.TableInfo, error) {
	if err := b.checkTable(ctx, table); err != nil {
		return nil, err
	}
	if info, ok := b.schemas[table]; ok {
		return info, nil
	}

	header, rows, err := b.export(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(rows) > schemaSampleRows {
		rows = rows[:schemaSampleRows]
	}
	info := &domain.TableInfo{Name: table, Columns: inferColumns(header, rows)}
	b.schemas[table] = info
	return info, nil
}

// Query exports the table and applies projection, filter and limit in
// memory; mdb-export supports none of them natively.
func (b *Backend) Query(ctx context.Context, q domain.Query) (*domain.ResultSet, error) {
	if err := b.checkTable(ctx, q.Table); err != nil {
		return nil, err
	}

	info, err := b.TableInfo(ctx, q.Table)
	if err != nil {
		return nil, err
	}
	header, raw, err := b.export(ctx, q.Table)
	if err != nil {
		return nil, err
	}

	rs := &domain.ResultSet{Columns: header, Rows: make([][]any, len(raw))}
	for i, record := range raw {
		rs.Rows[i] = convertRow(record, header, info.Columns)
	}

	pred, err := filter.Compile(q.Where, header)
	if err != nil {
		return nil, err
	}
	if pred != nil {
		filtered := rs.Rows[:0:0]
		for i := range rs.Rows {
			ok, err := pred.Match(rs.RowMap(i))
			if err != nil {
				return nil, err
			}
			if ok {
				filtered = append(filtered, rs.Rows[i])
			}
		}
		rs.Rows = filtered
	}

	if len(q.Columns) > 0 {
		rs = rs.Project(q.Columns)
	}
	return rs.Head(q.Limit), nil
}

// Count returns the number of data rows in the export.
func (b *Backend) Count(ctx context.Context, table string) (int, error) {
	if err := b.checkTable(ctx, table); err != nil {
		return 0, err
	}
	_, rows, err := b.export(ctx, table)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Close is a no-op: mdbtools holds no persistent resources.
func (b *Backend) Close() error { return nil }
