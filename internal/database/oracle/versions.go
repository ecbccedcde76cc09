package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/versioning"
)

// VersionStore reads product version chains from the populated property
// graph.
type VersionStore struct {
	db    *sql.DB
	graph string
}

// NewVersionStore wraps a connected client as a version store for the named
// graph.
func NewVersionStore(client *dbclient.DatabaseClient, graph string) *VersionStore {
	return &VersionStore{db: client.DB, graph: graph}
}

var _ versioning.Store = (*VersionStore)(nil)

// ListVersions returns the version chain of one product, ordered by version
// number. The id is matched against OBJECT_NUMBER; values are interpolated as
// quoted literals because this environment rejects bind variables correlated
// into GRAPH_TABLE.
func (s *VersionStore) ListVersions(ctx context.Context, entityID string) ([]versioning.Version, error) {
	query := fmt.Sprintf(`
SELECT version_number, start_date, end_date, current_flag
FROM GRAPH_TABLE(
  "%s"
  MATCH (p IS PRODUCTVOD) -[hv IS PRODUCTVOD_HAS_VERSION_VODVERSION]-> (v IS VODVERSION)
  WHERE p.OBJECT_NUMBER = %s
  COLUMNS(
    v.VERSION_NUMBER AS version_number,
    v.START_DATE AS start_date,
    v.END_DATE AS end_date,
    v.CURRENT_VERSION_FLAG AS current_flag
  )
)
ORDER BY version_number`, s.graph, quoteLiteral(entityID))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing versions of %s: %v", entityID, err)
	}
	defer rows.Close()

	var versions []versioning.Version
	for rows.Next() {
		var (
			number  int
			start   time.Time
			end     sql.NullTime
			current sql.NullString
		)
		if err := rows.Scan(&number, &start, &end, &current); err != nil {
			return nil, fmt.Errorf("error scanning version row: %v", err)
		}
		v := versioning.Version{
			Number:  number,
			Start:   start,
			Current: current.String == "Y",
		}
		if end.Valid {
			endDate := end.Time
			v.End = &endDate
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
