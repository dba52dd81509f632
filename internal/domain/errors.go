// Package domain defines the core types, errors and ports for reading
// legacy Access database files.
package domain

import "fmt"

// ConnectionError indicates the database file is missing, unreadable, or
// the delegate that parses it is unavailable.
type ConnectionError struct {
	Message string
}

func (e *ConnectionError) Error() string { return e.Message }

// TableNotFoundError indicates a requested table does not exist.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}

// QueryError wraps any other delegate failure. The delegate's original
// message is preserved in Message.
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string { return e.Message }

func (e *QueryError) Unwrap() error { return e.Err }

// ErrConnection creates a ConnectionError with a formatted message.
func ErrConnection(format string, args ...interface{}) *ConnectionError {
	return &ConnectionError{Message: fmt.Sprintf(format, args...)}
}

// ErrTableNotFound creates a TableNotFoundError for the given table.
func ErrTableNotFound(table string) *TableNotFoundError {
	return &TableNotFoundError{Table: table}
}

// ErrQuery creates a QueryError with a formatted message.
func ErrQuery(format string, args ...interface{}) *QueryError {
	return &QueryError{Message: fmt.Sprintf(format, args...)}
}

// WrapQuery creates a QueryError that wraps err, keeping its message
// reachable through errors.Unwrap.
func WrapQuery(err error, format string, args ...interface{}) *QueryError {
	return &QueryError{
		Message: fmt.Sprintf(format, args...) + ": " + err.Error(),
		Err:     err,
	}
}
