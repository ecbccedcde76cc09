package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jd09-test/product-model/internal/database/dbclient"
	"github.com/jd09-test/product-model/internal/traversal"
)

// AncestryQuerier answers one level of the upward product walk with two
// GRAPH_TABLE queries, one per join path. Frontier ids are interpolated as a
// quoted IN list because this environment rejects outer bind variables
// correlated into GRAPH_TABLE (ORA-40996).
type AncestryQuerier struct {
	db    *sql.DB
	graph string
}

// NewAncestryQuerier wraps a connected client as a parent querier for the
// named graph.
func NewAncestryQuerier(client *dbclient.DatabaseClient, graph string) *AncestryQuerier {
	return &AncestryQuerier{db: client.DB, graph: graph}
}

var _ traversal.ParentQuerier = (*AncestryQuerier)(nil)

// DirectParents finds parents through the direct product relationship path:
// parent -> relationship -> child.
func (q *AncestryQuerier) DirectParents(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
SELECT DISTINCT parent_object_number
FROM GRAPH_TABLE(
  "%s"
  MATCH (child IS PRODUCTVOD),
        (parent IS PRODUCTVOD) -[hasRel IS PRODUCTVOD_HAS_RELATIONSHIP_OBJECTRELATIONSHIP]-> (rel IS OBJECTRELATIONSHIP)
                 -[refProd IS PRODUCTRELATION_REFERS_TO_PRODUCTVOD]-> (child)
  WHERE child.OBJECT_NUMBER IN (%s)
    AND rel.SUB_OBJECT_TYPE_CODE = 'Product'
  COLUMNS(
    parent.OBJECT_NUMBER AS parent_object_number
  )
)
ORDER BY parent_object_number`, q.graph, quoteList(ids))
	return q.queryIDs(ctx, query)
}

// DomainParents finds parents through the relationship domain path:
// parent -> relationship -> domain -> child.
func (q *AncestryQuerier) DomainParents(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
SELECT DISTINCT parent_object_number
FROM GRAPH_TABLE(
  "%s"
  MATCH (child IS PRODUCTVOD),
        (parent IS PRODUCTVOD) -[hasRel IS PRODUCTVOD_HAS_RELATIONSHIP_OBJECTRELATIONSHIP]-> (rel IS OBJECTRELATIONSHIP)
                 -[hasDom IS OBJECTRELATIONSHIP_HAS_RELATIONSHIP_DOMAIN_OBJECTRELATIONSHIPDOMAIN]-> (dom IS OBJECTRELATIONSHIPDOMAIN)
                 -[domRef IS OBJECTRELATIONSHIPDOMAIN_REFERS_TO_PRODUCTVOD]-> (child)
  WHERE child.OBJECT_NUMBER IN (%s)
    AND dom.SUB_OBJECT_TYPE_CODE = 'Product'
  COLUMNS(
    parent.OBJECT_NUMBER AS parent_object_number
  )
)
ORDER BY parent_object_number`, q.graph, quoteList(ids))
	return q.queryIDs(ctx, query)
}

func (q *AncestryQuerier) queryIDs(ctx context.Context, query string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying parents: %v", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning parent id: %v", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// quoteLiteral renders one Oracle string literal with '' doubling.
func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// quoteList renders a comma-separated list of Oracle string literals.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteLiteral(v)
	}
	return strings.Join(quoted, ",")
}
