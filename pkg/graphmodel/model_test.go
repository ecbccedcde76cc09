package graphmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModel = `{
  "nodes": [
    {
      "name": "PRODUCTVOD",
      "properties": {
        "ROW_ID": "ROW_ID",
        "ALIAS": "VOD_NAME",
        "OBJ_NUM": "OBJECT_NUMBER"
      },
      "table": ["S_PROD_INT"],
      "filter": {"ACTIVE_FLG": "Y"}
    },
    {
      "name": "VODVERSION",
      "label": "VODVERSION",
      "properties": {
        "ROW_ID": "ROW_ID",
        "VOD_ID": "VOD_ID",
        "VER_NUM": "VERSION_NUMBER"
      },
      "table": ["S_VOD_VER", "S_VOD"],
      "join_on": {"S_VOD_VER.VOD_ID": "S_VOD.ROW_ID"}
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
}`

func TestParse(t *testing.T) {
	model, err := Parse([]byte(sampleModel))
	require.NoError(t, err)

	nodes := model.Nodes()
	require.Len(t, nodes, 2)

	t.Run("label defaults to name", func(t *testing.T) {
		assert.Equal(t, "PRODUCTVOD", nodes[0].Label)
	})

	t.Run("property order is preserved", func(t *testing.T) {
		assert.Equal(t, []string{"ROW_ID", "VOD_NAME", "OBJECT_NUMBER"}, nodes[0].PropertyKeys())
	})

	t.Run("join condition is parsed", func(t *testing.T) {
		require.NotNil(t, nodes[1].JoinOn)
		assert.Equal(t, "S_VOD_VER.VOD_ID", nodes[1].JoinOn.Left)
		assert.Equal(t, "S_VOD.ROW_ID", nodes[1].JoinOn.Right)
	})

	t.Run("filter is parsed", func(t *testing.T) {
		require.NotNil(t, nodes[0].Filter)
		assert.Equal(t, "ACTIVE_FLG='Y'", nodes[0].Filter.SQL())
	})

	t.Run("relationships preserved in order", func(t *testing.T) {
		rels := model.Relationships()
		require.Len(t, rels, 1)
		assert.Equal(t, "PRODUCTVOD_HAS_VERSION_VODVERSION", rels[0].Type)
	})
}

func TestValidation(t *testing.T) {
	node := func(name string, keys ...string) NodeDef {
		n := NodeDef{Name: name, Tables: []string{"SRC_" + name}}
		for _, k := range keys {
			n.Properties = append(n.Properties, Property{Column: k, Key: k})
		}
		return n
	}

	t.Run("duplicate node name rejected", func(t *testing.T) {
		_, err := New([]NodeDef{node("A", "ROW_ID"), node("A", "ROW_ID")}, nil)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), "duplicate node name")
	})

	t.Run("duplicate property key rejected", func(t *testing.T) {
		_, err := New([]NodeDef{node("A", "ROW_ID", "ROW_ID")}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate property key")
	})

	t.Run("dangling relationship endpoint rejected", func(t *testing.T) {
		_, err := New(
			[]NodeDef{node("A", "ROW_ID")},
			[]RelationshipDef{{Type: "A_TO_B", From: "A", To: "B", FromKey: "ROW_ID", ToKey: "ROW_ID"}},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undeclared node")
	})

	t.Run("join key must be a property of the endpoint", func(t *testing.T) {
		_, err := New(
			[]NodeDef{node("A", "ROW_ID"), node("B", "ROW_ID")},
			[]RelationshipDef{{Type: "A_TO_B", From: "A", To: "B", FromKey: "MISSING", ToKey: "ROW_ID"}},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "from_key")
	})

	t.Run("two tables require join_on", func(t *testing.T) {
		n := node("A", "ROW_ID")
		n.Tables = []string{"T1", "T2"}
		_, err := New([]NodeDef{n}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "join_on")
	})

	t.Run("three tables rejected", func(t *testing.T) {
		n := node("A", "ROW_ID")
		n.Tables = []string{"T1", "T2", "T3"}
		n.JoinOn = &JoinCondition{Left: "T1.X", Right: "T2.X"}
		_, err := New([]NodeDef{n}, nil)
		require.Error(t, err)
	})
}

func TestIdentityKey(t *testing.T) {
	t.Run("prefers ROW_ID over ID", func(t *testing.T) {
		n := NodeDef{Properties: []Property{
			{Column: "C1", Key: "ID"},
			{Column: "C2", Key: "ROW_ID"},
		}}
		assert.Equal(t, "ROW_ID", n.IdentityKey())
	})

	t.Run("falls back to ID", func(t *testing.T) {
		n := NodeDef{Properties: []Property{
			{Column: "C1", Key: "NAME"},
			{Column: "C2", Key: "ID"},
		}}
		assert.Equal(t, "ID", n.IdentityKey())
	})

	t.Run("empty when no identity-like key", func(t *testing.T) {
		n := NodeDef{Properties: []Property{{Column: "C1", Key: "NAME"}}}
		assert.Equal(t, "", n.IdentityKey())
	})
}
