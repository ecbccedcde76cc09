package traversal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuerier serves parents from two static child->parents edge maps and
// counts how many levels were queried.
type fakeQuerier struct {
	direct    map[string][]string
	domain    map[string][]string
	levels    int
	directErr error
}

func (q *fakeQuerier) DirectParents(_ context.Context, ids []string) ([]string, error) {
	q.levels++
	if q.directErr != nil {
		return nil, q.directErr
	}
	return collect(q.direct, ids), nil
}

func (q *fakeQuerier) DomainParents(_ context.Context, ids []string) ([]string, error) {
	return collect(q.domain, ids), nil
}

func collect(edges map[string][]string, ids []string) []string {
	var out []string
	for _, id := range ids {
		out = append(out, edges[id]...)
	}
	return out
}

func TestAncestors(t *testing.T) {
	ctx := context.Background()

	t.Run("cycle terminates and excludes self", func(t *testing.T) {
		// A->B->C->A plus D->A: walking up from A must visit B, C, D once
		// and stop at the level where nothing new appears.
		q := &fakeQuerier{
			direct: map[string][]string{"A": {"B"}, "B": {"C"}},
			domain: map[string][]string{"C": {"A"}, "A": {"D"}},
		}
		got, err := New(q).Ancestors(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "D"}, got)
	})

	t.Run("inclusive variant keeps the start id", func(t *testing.T) {
		q := &fakeQuerier{direct: map[string][]string{"A": {"B"}}}
		got, err := New(q).AncestorsInclusive(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, got)
	})

	t.Run("both paths are unioned within one level", func(t *testing.T) {
		q := &fakeQuerier{
			direct: map[string][]string{"A": {"P1"}},
			domain: map[string][]string{"A": {"P2"}},
		}
		got, err := New(q).Ancestors(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"P1", "P2"}, got)
	})

	t.Run("duplicates across paths appear once", func(t *testing.T) {
		q := &fakeQuerier{
			direct: map[string][]string{"A": {"P"}},
			domain: map[string][]string{"A": {"P"}},
		}
		got, err := New(q).Ancestors(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"P"}, got)
	})

	t.Run("no parents yields empty closure after one level", func(t *testing.T) {
		q := &fakeQuerier{}
		got, err := New(q).Ancestors(ctx, "X")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 1, q.levels)
	})

	t.Run("max hops bounds the walk", func(t *testing.T) {
		q := &fakeQuerier{
			direct: map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"D"}},
		}
		got, err := New(q, WithMaxHops(2)).Ancestors(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C"}, got)
	})

	t.Run("query failure aborts the traversal", func(t *testing.T) {
		q := &fakeQuerier{directErr: errors.New("ORA-40996")}
		_, err := New(q).Ancestors(ctx, "A")
		require.Error(t, err)
	})
}

func TestAncestorsLevelCount(t *testing.T) {
	// Chain D->C->B->A: three productive levels plus the terminating empty one.
	q := &fakeQuerier{
		direct: map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"D"}},
	}
	got, err := New(q).Ancestors(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, got)
	assert.Equal(t, 4, q.levels)
}
