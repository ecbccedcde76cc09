package graphmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFilter(t *testing.T, doc string) *Predicate {
	t.Helper()
	pred, err := parseFilter([]byte(doc))
	require.NoError(t, err)
	return pred
}

func TestFilterSQL(t *testing.T) {
	t.Run("direct equality", func(t *testing.T) {
		assert.Equal(t, "ACTIVE_FLG='Y'", mustFilter(t, `{"ACTIVE_FLG": "Y"}`).SQL())
	})

	t.Run("multiple entries joined with AND", func(t *testing.T) {
		pred := mustFilter(t, `{"ACTIVE_FLG": "Y", "VOD_TYPE_CD": "PROD"}`)
		assert.Equal(t, "ACTIVE_FLG='Y' AND VOD_TYPE_CD='PROD'", pred.SQL())
	})

	t.Run("explicit AND block", func(t *testing.T) {
		pred := mustFilter(t, `{"AND": [{"STATUS": {"ne": "D"}}, {"TYPE": "PROD"}]}`)
		assert.Equal(t, "(STATUS <> 'D' AND TYPE='PROD')", pred.SQL())
	})

	t.Run("OR and NOT nesting", func(t *testing.T) {
		pred := mustFilter(t, `{"OR": [{"A": "x"}, {"NOT": {"B": "y"}}]}`)
		assert.Equal(t, "(A='x' OR (NOT B='y'))", pred.SQL())
	})

	t.Run("comparison operators", func(t *testing.T) {
		assert.Equal(t, "QTY > 10", mustFilter(t, `{"QTY": {"gt": 10}}`).SQL())
		assert.Equal(t, "QTY >= 10", mustFilter(t, `{"QTY": {"gte": 10}}`).SQL())
		assert.Equal(t, "QTY < 10", mustFilter(t, `{"QTY": {"lt": 10}}`).SQL())
		assert.Equal(t, "QTY <= 10", mustFilter(t, `{"QTY": {"lte": 10}}`).SQL())
		assert.Equal(t, "STATUS <> 'D'", mustFilter(t, `{"STATUS": {"ne": "D"}}`).SQL())
		assert.Equal(t, "STATUS = 'A'", mustFilter(t, `{"STATUS": {"eq": "A"}}`).SQL())
	})

	t.Run("null shorthand strings", func(t *testing.T) {
		assert.Equal(t, "PAR_REL_ID IS NULL", mustFilter(t, `{"PAR_REL_ID": "IS NULL"}`).SQL())
		assert.Equal(t, "LAST_UPD IS NOT NULL", mustFilter(t, `{"LAST_UPD": "is not null"}`).SQL())
	})

	t.Run("eq and ne against null become null tests", func(t *testing.T) {
		assert.Equal(t, "PAR_ID IS NULL", mustFilter(t, `{"PAR_ID": {"eq": null}}`).SQL())
		assert.Equal(t, "PAR_ID IS NOT NULL", mustFilter(t, `{"PAR_ID": {"ne": null}}`).SQL())
	})

	t.Run("string values are escaped", func(t *testing.T) {
		assert.Equal(t, "NAME='O''Brien'", mustFilter(t, `{"NAME": "O'Brien"}`).SQL())
	})

	t.Run("unknown operator rejected", func(t *testing.T) {
		_, err := parseFilter([]byte(`{"QTY": {"like": "x"}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported filter operator")
	})

	t.Run("comparison against null rejected", func(t *testing.T) {
		_, err := parseFilter([]byte(`{"QTY": {"gt": null}}`))
		require.Error(t, err)
	})

	t.Run("rendering is stable across calls", func(t *testing.T) {
		doc := `{"AND": [{"A": "x"}, {"B": {"gte": 2}}, {"C": "IS NULL"}]}`
		first := mustFilter(t, doc).SQL()
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, mustFilter(t, doc).SQL())
		}
	})
}
