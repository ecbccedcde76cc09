// Package postgres implements a PostgreSQL source adapter for models whose
// staging extract lives in Postgres rather than Oracle.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/engine"
	"github.com/jd09-test/product-model/pkg/logger"
)

// Connect establishes a connection to a PostgreSQL database
func Connect(config dbclient.DatabaseConfig) (*dbclient.DatabaseClient, error) {
	sslMode := "disable"
	if config.SSL {
		sslMode = "require"
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.DatabaseName,
		sslMode)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %v", err)
	}

	return &dbclient.DatabaseClient{
		DB:           db,
		DatabaseType: "postgres",
		Config:       config,
		IsConnected:  1,
	}, nil
}

// Source streams extraction query results from a PostgreSQL database in
// pages.
type Source struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSource wraps a connected PostgreSQL client as a page source.
func NewSource(client *dbclient.DatabaseClient, log *logger.Logger) *Source {
	if log == nil {
		log = logger.New("postgres-source")
	}
	return &Source{db: client.DB, log: log}
}

var _ engine.SourceReader = (*Source)(nil)

// Extract runs the query and emits its result in pages of at most batchSize
// rows.
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
