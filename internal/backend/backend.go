// Package backend selects the delegate strategy used to read an Access
// file: the mdbtools CLI on Linux/macOS, the OS ODBC driver on Windows.
package backend

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"geoaccess/internal/backend/mdbtools"
	"geoaccess/internal/backend/odbc"
	"geoaccess/internal/domain"
)

// Kind names a delegate strategy.
type Kind string

const (
	KindAuto     Kind = ""
	KindMdbtools Kind = "mdbtools"
	KindODBC     Kind = "odbc"
)

// Options configures delegate selection and the chosen delegate.
type Options struct {
	// Kind forces a delegate. KindAuto selects by operating system.
	Kind Kind
	// MdbtoolsDir is an explicit directory holding the mdbtools binaries.
	MdbtoolsDir string
	// Timeout bounds each delegate operation.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Open validates the file path and returns the delegate for this platform.
func Open(path string, opts Options) (domain.Backend, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, domain.ErrConnection("database file not found: %s", path)
	}

	kind := opts.Kind
	if kind == KindAuto {
		if runtime.GOOS == "windows" {
			kind = KindODBC
		} else {
			kind = KindMdbtools
		}
	}

	switch kind {
	case KindMdbtools:
		return mdbtools.New(path, mdbtools.Options{
			BinDir:  opts.MdbtoolsDir,
			Timeout: opts.Timeout,
			Logger:  opts.Logger,
		})
	case KindODBC:
		return odbc.New(path, odbc.Options{
			Timeout: opts.Timeout,
			Logger:  opts.Logger,
		})
	default:
		return nil, domain.ErrConnection("unknown backend %q (want %q or %q)", kind, KindMdbtools, KindODBC)
	}
}
