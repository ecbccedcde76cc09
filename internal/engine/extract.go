package engine

import (
	"fmt"
	"strings"

	"github.com/jd09-test/product-model/pkg/graphmodel"
)

// lastUpdatedColumn carries the incremental cutoff predicate on every source
// table.
const lastUpdatedColumn = "LAST_UPD"

// BuildSelect builds the extraction query for one node: the property
// projection with target-key aliases, the optional two-table join, the
// node's filter, and the incremental cutoff predicate when one is set.
func BuildSelect(node graphmodel.NodeDef, schema, cutoffDate, dateFormat string) (string, error) {
	cols := make([]string, len(node.Properties))
	for i, p := range node.Properties {
		cols[i] = fmt.Sprintf("%s AS %q", p.Column, p.Key)
	}
	colList := strings.Join(cols, ", ")

	var where string
	if node.Filter != nil {
		where = node.Filter.SQL()
	}
	if cutoffDate != "" && dateFormat != "" {
		cutoff := fmt.Sprintf("%s >= TO_DATE('%s', '%s')", lastUpdatedColumn, cutoffDate, dateFormat)
		if where != "" {
			where = where + " AND " + cutoff
		} else {
			where = cutoff
		}
	}
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	switch len(node.Tables) {
	case 1:
		return fmt.Sprintf("SELECT %s FROM %s%s",
			colList, qualify(schema, node.Tables[0]), whereSQL), nil
	case 2:
		if node.JoinOn == nil {
			return "", fmt.Errorf("node %q declares two tables without a join condition", node.Name)
		}
		return fmt.Sprintf("SELECT %s FROM %s JOIN %s ON %s=%s%s",
			colList,
			qualify(schema, node.Tables[0]),
			qualify(schema, node.Tables[1]),
			node.JoinOn.Left, node.JoinOn.Right,
			whereSQL), nil
	default:
		return "", fmt.Errorf("node %q has %d source tables, only 1 or 2 are supported", node.Name, len(node.Tables))
	}
}

func qualify(schema, table string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}
