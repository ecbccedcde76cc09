// Package traversal computes the ancestor closure of a product: every
// transitive parent reachable through the relationship graph. Parents are
// discovered through two independent join paths per level: the direct
// product-to-product path and the domain path through the membership entity.
// The two result sets are unioned; combining them in one outer-joined query
// would produce false positives from unmatched branches.
package traversal

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jd09-test/product-model/pkg/logger"
)

// ParentQuerier answers one level of the upward walk. Both queries take the
// current frontier and return the ids of every parent of any frontier id;
// duplicates are fine, the traverser de-duplicates.
type ParentQuerier interface {
	DirectParents(ctx context.Context, ids []string) ([]string, error)
	DomainParents(ctx context.Context, ids []string) ([]string, error)
}

// Option configures a Traverser.
type Option func(*Traverser)

// WithMaxHops bounds the walk to n levels; 0 means unbounded.
func WithMaxHops(n int) Option {
	return func(t *Traverser) { t.maxHops = n }
}

// WithLogger attaches a logger for per-level progress.
func WithLogger(l *logger.Logger) Option {
	return func(t *Traverser) { t.log = l }
}

// Traverser walks the ancestor closure level by level.
type Traverser struct {
	querier ParentQuerier
	maxHops int
	log     *logger.Logger
}

// New creates a traverser over the given parent querier.
func New(querier ParentQuerier, opts ...Option) *Traverser {
	t := &Traverser{querier: querier}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ancestors returns every transitive parent of productID, sorted, excluding
// productID itself.
func (t *Traverser) Ancestors(ctx context.Context, productID string) ([]string, error) {
	seen, err := t.walk(ctx, productID)
	if err != nil {
		return nil, err
	}
	delete(seen, productID)
	return sortedKeys(seen), nil
}

// AncestorsInclusive returns the ancestor closure of productID including the
// start id, sorted.
func (t *Traverser) AncestorsInclusive(ctx context.Context, productID string) ([]string, error) {
	seen, err := t.walk(ctx, productID)
	if err != nil {
		return nil, err
	}
	return sortedKeys(seen), nil
}

// walk runs the level-synchronous BFS. Termination is guaranteed by the
// monotonic growth of seen, bounded by the node count: an id already seen is
// never re-expanded, which also neutralizes relationship cycles.
func (t *Traverser) walk(ctx context.Context, productID string) (map[string]struct{}, error) {
	seen := map[string]struct{}{productID: {}}
	frontier := []string{productID}

	for hop := 1; t.maxHops == 0 || hop <= t.maxHops; hop++ {
		parents, err := t.queryLevel(ctx, frontier)
		if err != nil {
			return nil, err
		}

		var next []string
		for _, id := range parents {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			next = append(next, id)
		}

		if len(next) == 0 {
			break
		}
		sort.Strings(next)
		if t.log != nil {
			t.log.Debugf("ancestry hop %d: %d new parent(s)", hop, len(next))
		}
		frontier = next
	}

	return seen, nil
}

// queryLevel runs the two path queries for one frontier concurrently and
// unions their results. A failed query aborts the level and the traversal.
func (t *Traverser) queryLevel(ctx context.Context, frontier []string) ([]string, error) {
	var direct, domain []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		direct, err = t.querier.DirectParents(gctx, frontier)
		return err
	})
	g.Go(func() error {
		var err error
		domain, err = t.querier.DomainParents(gctx, frontier)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(direct, domain...), nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
