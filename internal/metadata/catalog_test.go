package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jd09-test/product-model/pkg/graphmodel"
)

func catalogModel(t *testing.T) *graphmodel.GraphModel {
	t.Helper()
	model, err := graphmodel.Parse([]byte(`{
	  "nodes": [
	    {
	      "name": "PRODUCTVOD",
	      "properties": {"ROW_ID": "ROW_ID", "ALIAS": "VOD_NAME"},
	      "table": ["S_PROD_INT"]
	    },
	    {
	      "name": "VODVERSION",
	      "properties": {"ROW_ID": "ROW_ID", "VOD_ID": "VOD_ID"},
	      "table": ["S_VOD_VER"]
	    }
	  ],
	  "relationships": [
	    {
	      "type": "PRODUCTVOD_HAS_VERSION_VODVERSION",
	      "from": "PRODUCTVOD",
	      "to": "VODVERSION",
	      "from_key": "ROW_ID",
	      "to_key": "VOD_ID"
	    }
	  ]
	}`))
	require.NoError(t, err)
	return model
}

func TestVertexLabels(t *testing.T) {
	c := FromModel(catalogModel(t))

	vertices := c.VertexLabels()
	require.Len(t, vertices, 2)
	assert.Equal(t, "PRODUCTVOD", vertices[0].Label)
	assert.Equal(t, []string{"ROW_ID", "VOD_NAME"}, vertices[0].Properties)

	t.Run("no invented property names", func(t *testing.T) {
		for _, v := range vertices {
			node, ok := catalogModel(t).Node(v.Label)
			require.True(t, ok)
			assert.Equal(t, node.PropertyKeys(), v.Properties)
		}
	})

	t.Run("filtered lookup omits unknown labels", func(t *testing.T) {
		got := c.VertexLabelsFiltered([]string{"VODVERSION", "NOPE"})
		require.Len(t, got, 1)
		assert.Equal(t, "VODVERSION", got[0].Label)
	})
}

func TestEdgeLabels(t *testing.T) {
	c := FromModel(catalogModel(t))

	edges := c.EdgeLabels()
	require.Len(t, edges, 1)
	assert.Equal(t, EdgeSchema{
		Edge:         "PRODUCTVOD_HAS_VERSION_VODVERSION",
		SourceTable:  "PRODUCTVOD",
		SourceColumn: "ROW_ID",
		TargetTable:  "VODVERSION",
		TargetColumn: "VOD_ID",
	}, edges[0])
}

func TestCheckQueryColumns(t *testing.T) {
	c := FromModel(catalogModel(t))

	t.Run("declared properties pass", func(t *testing.T) {
		assert.NoError(t, c.CheckQueryColumns("PRODUCTVOD", []string{"ROW_ID", "VOD_NAME"}))
	})

	t.Run("undeclared property is drift", func(t *testing.T) {
		err := c.CheckQueryColumns("PRODUCTVOD", []string{"ACTIVE_FLAG"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACTIVE_FLAG")
	})

	t.Run("unknown label is drift", func(t *testing.T) {
		err := c.CheckQueryColumns("GHOST", []string{"ROW_ID"})
		require.Error(t, err)
	})
}
