package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jd09-test/product-model/internal/engine"
	"github.com/jd09-test/product-model/pkg/logger"
)

// Target loads vertex pages as labeled nodes. The table name of the page
// doubles as the node label.
type Target struct {
	driver   neo4j.DriverWithContext
	database string
	log      *logger.Logger
}

// NewTarget wraps a connected client as a page target. database may be empty
// for the server default.
func NewTarget(client *Client, database string, log *logger.Logger) *Target {
	if log == nil {
		log = logger.New("neo4j-target")
	}
	return &Target{driver: client.Driver, database: database, log: log}
}

var _ engine.TargetWriter = (*Target)(nil)

// MergePage upserts one page of nodes keyed on the identity property.
func (t *Target) MergePage(ctx context.Context, table string, columns []string, identity string, rows [][]interface{}) (int64, error) {
	query := fmt.Sprintf(
		"UNWIND $rows AS row MERGE (n:`%s` {`%s`: row.`%s`}) SET n += row",
		table, identity, identity)
	return t.writePage(ctx, table, query, columns, rows)
}

// InsertPage appends one page of nodes without conflict detection.
func (t *Target) InsertPage(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	query := fmt.Sprintf("UNWIND $rows AS row CREATE (n:`%s`) SET n += row", table)
	return t.writePage(ctx, table, query, columns, rows)
}

func (t *Target) writePage(ctx context.Context, table, query string, columns []string, rows [][]interface{}) (int64, error) {
	session := t.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: t.database,
	})
	defer session.Close(ctx)

	params := map[string]interface{}{"rows": rowsToMaps(columns, rows)}
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return nil, result.Err()
	})
	if err != nil {
		return 0, &engine.StatementExecutionError{Unit: table, Err: err}
	}
	return int64(len(rows)), nil
}

// rowsToMaps pairs page columns with row values into the property maps the
// UNWIND statements consume.
func rowsToMaps(columns []string, rows [][]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		props := make(map[string]interface{}, len(columns))
		for j, col := range columns {
			if j < len(row) {
				props[col] = row[j]
			}
		}
		out[i] = props
	}
	return out
}
