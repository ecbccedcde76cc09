package engine

import (
	"context"
	"errors"
	"fmt"
)

// Page is one batch of extracted rows. Columns are the SELECT aliases, which
// by construction equal the node's target property keys.
type Page struct {
	Columns []string
	Rows    [][]interface{}
}

// SourceReader streams extraction query results in pages of at most
// batchSize rows. Returning an error from emit stops the stream and is
// propagated back to the caller.
type SourceReader interface {
	Extract(ctx context.Context, query string, batchSize int, emit func(Page) error) error
}

// TargetWriter applies one page to the target as a single commit unit.
// MergePage upserts keyed on the identity column; InsertPage appends.
type TargetWriter interface {
	MergePage(ctx context.Context, table string, columns []string, identity string, rows [][]interface{}) (int64, error)
	InsertPage(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error)
}

// ConnectivityError marks a source or target system as unreachable. It is
// fatal to the current run: the engine aborts and the report is marked
// incomplete.
type ConnectivityError struct {
	System string // "source" or "target"
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.System, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsConnectivityError reports whether err is a connection-level failure.
func IsConnectivityError(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// StatementExecutionError marks a single failed unit of work (one statement
// or one page). It is recorded in the report and the run continues with the
// next independent unit.
type StatementExecutionError struct {
	Unit string
	Err  error
}

func (e *StatementExecutionError) Error() string {
	return fmt.Sprintf("statement execution failed for %s: %v", e.Unit, e.Err)
}

func (e *StatementExecutionError) Unwrap() error {
	return e.Err
}
