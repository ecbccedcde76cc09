package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jd09-test/product-model/pkg/graphmodel"
)

func TestBuildSelectSingleTable(t *testing.T) {
	node := graphmodel.NodeDef{
		Name: "PRODUCTVOD",
		Properties: []graphmodel.Property{
			{Column: "ROW_ID", Key: "ROW_ID"},
			{Column: "ALIAS_NAME", Key: "ALIAS"},
		},
		Tables: []string{"S_PROD_INT"},
	}

	sql, err := BuildSelect(node, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, `SELECT ROW_ID AS "ROW_ID", ALIAS_NAME AS "ALIAS" FROM S_PROD_INT`, sql)
}

func TestBuildSelectSchemaQualified(t *testing.T) {
	node := graphmodel.NodeDef{
		Name:       "PRODUCTVOD",
		Properties: []graphmodel.Property{{Column: "ROW_ID", Key: "ROW_ID"}},
		Tables:     []string{"S_PROD_INT"},
	}

	sql, err := BuildSelect(node, "SIEBEL", "", "")
	require.NoError(t, err)
	assert.Equal(t, `SELECT ROW_ID AS "ROW_ID" FROM SIEBEL.S_PROD_INT`, sql)
}

func TestBuildSelectTwoTableJoin(t *testing.T) {
	node := graphmodel.NodeDef{
		Name: "PRODUCTDEF",
		Properties: []graphmodel.Property{
			{Column: "S_PROD_INT.ROW_ID", Key: "ROW_ID"},
			{Column: "S_ISS_OBJ_DEF.NAME", Key: "DEF_NAME"},
		},
		Tables: []string{"S_PROD_INT", "S_ISS_OBJ_DEF"},
		JoinOn: &graphmodel.JoinCondition{
			Left:  "S_PROD_INT.ROW_ID",
			Right: "S_ISS_OBJ_DEF.PROD_ID",
		},
	}

	sql, err := BuildSelect(node, "SIEBEL", "", "")
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT S_PROD_INT.ROW_ID AS "ROW_ID", S_ISS_OBJ_DEF.NAME AS "DEF_NAME" `+
			`FROM SIEBEL.S_PROD_INT JOIN SIEBEL.S_ISS_OBJ_DEF ON S_PROD_INT.ROW_ID=S_ISS_OBJ_DEF.PROD_ID`,
		sql)
}

func TestBuildSelectFilterAndCutoff(t *testing.T) {
	model, err := graphmodel.Parse([]byte(`{
	  "nodes": [
	    {
	      "name": "PRODUCTVOD",
	      "properties": {"ROW_ID": "ROW_ID"},
	      "table": ["S_PROD_INT"],
	      "filter": {"ACTIVE_FLG": "Y", "STATUS_CD": {"ne": "Obsolete"}}
	    }
	  ],
	  "relationships": []
	}`))
	require.NoError(t, err)
	node, ok := model.Node("PRODUCTVOD")
	require.True(t, ok)

	sql, err := BuildSelect(node, "", "2026-01-21", "YYYY-MM-DD")
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT ROW_ID AS "ROW_ID" FROM S_PROD_INT `+
			`WHERE ACTIVE_FLG='Y' AND STATUS_CD <> 'Obsolete' AND LAST_UPD >= TO_DATE('2026-01-21', 'YYYY-MM-DD')`,
		sql)
}

func TestBuildSelectCutoffWithoutFilter(t *testing.T) {
	node := graphmodel.NodeDef{
		Name:       "PRODUCTVOD",
		Properties: []graphmodel.Property{{Column: "ROW_ID", Key: "ROW_ID"}},
		Tables:     []string{"S_PROD_INT"},
	}

	sql, err := BuildSelect(node, "", "2025-12-31", "YYYY-MM-DD")
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT ROW_ID AS "ROW_ID" FROM S_PROD_INT WHERE LAST_UPD >= TO_DATE('2025-12-31', 'YYYY-MM-DD')`,
		sql)
}

func TestBuildSelectRejectsBadTableLists(t *testing.T) {
	two := graphmodel.NodeDef{
		Name:       "BROKEN",
		Properties: []graphmodel.Property{{Column: "A", Key: "A"}},
		Tables:     []string{"T1", "T2"},
	}
	_, err := BuildSelect(two, "", "", "")
	assert.Error(t, err, "two tables without a join condition")

	three := graphmodel.NodeDef{
		Name:       "BROKEN",
		Properties: []graphmodel.Property{{Column: "A", Key: "A"}},
		Tables:     []string{"T1", "T2", "T3"},
	}
	_, err = BuildSelect(three, "", "", "")
	assert.Error(t, err)
}
