package oracle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/engine"
	"github.com/jd09-test/product-model/pkg/logger"
)

// Source streams extraction query results from an Oracle source database in
// pages.
type Source struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSource wraps a connected Oracle client as a page source.
func NewSource(client *dbclient.DatabaseClient, log *logger.Logger) *Source {
	if log == nil {
		log = logger.New("oracle-source")
	}
	return &Source{db: client.DB, log: log}
}

// Extract runs the query and emits its result in pages of at most batchSize
// rows. A failing query skips the node; a connection lost mid-stream is
// surfaced as a connectivity failure and aborts the run.
func (s *Source) Extract(ctx context.Context, query string, batchSize int, emit func(engine.Page) error) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &engine.ConnectivityError{System: "source", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return &engine.StatementExecutionError{Unit: "extraction query", Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("error reading result columns: %v", err)
	}

	page := engine.Page{Columns: columns, Rows: make([][]interface{}, 0, batchSize)}
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("error scanning row: %v", err)
		}
		row := make([]interface{}, len(columns))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = v
			}
		}
		page.Rows = append(page.Rows, row)

		if len(page.Rows) == batchSize {
			if err := emit(page); err != nil {
				return err
			}
			page = engine.Page{Columns: columns, Rows: make([][]interface{}, 0, batchSize)}
		}
	}
	if err := rows.Err(); err != nil {
		return &engine.ConnectivityError{System: "source", Err: err}
	}

	if len(page.Rows) > 0 {
		return emit(page)
	}
	return nil
}
