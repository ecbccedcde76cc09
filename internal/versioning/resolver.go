// Package versioning resolves the effective version of a versioned entity.
// Every entity in a version chain carries numbered versions with a validity
// interval (START_DATE / END_DATE, nil end = open-ended) and a current-flag;
// children of a versioned entity carry FIRST_VERSION / LAST_VERSION bounds
// that must be re-checked on every traversal hop.
package versioning

import (
	"context"
	"time"
)

// Version is one entry of an entity's version chain.
type Version struct {
	Number  int
	Start   time.Time
	End     *time.Time // nil = unbounded
	Current bool       // CURRENT_VERSION_FLAG = 'Y'
}

// Store reads the version chain of an entity from the populated graph.
type Store interface {
	ListVersions(ctx context.Context, entityID string) ([]Version, error)
}

type selectorKind int

const (
	selectExplicit selectorKind = iota
	selectAsOf
	selectCurrent
)

// Selector picks exactly one resolution strategy: an explicit version
// number, the version valid at a date, or the current version.
type Selector struct {
	kind   selectorKind
	number int
	date   time.Time
}

// Explicit selects version n as-is. Existence is checked by the caller's
// query, not by the resolver.
func Explicit(n int) Selector {
	return Selector{kind: selectExplicit, number: n}
}

// AsOf selects the version whose validity interval contains d. Both interval
// boundaries are inclusive.
func AsOf(d time.Time) Selector {
	return Selector{kind: selectAsOf, date: d}
}

// Current selects the version flagged as current.
func Current() Selector {
	return Selector{kind: selectCurrent}
}

// Resolver resolves effective versions against a version store.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver backed by the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the effective version number for the entity under the
// given selector. Zero matches and multiple matches are both surfaced as
// errors: overlapping validity intervals or duplicate current flags are
// data-quality anomalies, never silently tie-broken.
func (r *Resolver) Resolve(ctx context.Context, entityID string, sel Selector) (int, error) {
	if sel.kind == selectExplicit {
		return sel.number, nil
	}

	versions, err := r.store.ListVersions(ctx, entityID)
	if err != nil {
		return 0, err
	}

	switch sel.kind {
	case selectAsOf:
		return resolveAsOf(entityID, versions, sel.date)
	case selectCurrent:
		return resolveCurrent(entityID, versions)
	}
	return 0, nil
}

func resolveAsOf(entityID string, versions []Version, d time.Time) (int, error) {
	var matches []int
	for _, v := range versions {
		if containsDate(v, d) {
			matches = append(matches, v.Number)
		}
	}
	switch len(matches) {
	case 0:
		return 0, &ResolutionError{EntityID: entityID, Kind: ErrNoVersionAtDate,
			Detail: "no version interval contains " + d.Format("2006-01-02")}
	case 1:
		return matches[0], nil
	default:
		return 0, &ResolutionError{EntityID: entityID, Kind: ErrAmbiguousVersion,
			Detail: "overlapping validity intervals at " + d.Format("2006-01-02")}
	}
}

func resolveCurrent(entityID string, versions []Version) (int, error) {
	var matches []int
	for _, v := range versions {
		if v.Current {
			matches = append(matches, v.Number)
		}
	}
	switch len(matches) {
	case 0:
		return 0, &ResolutionError{EntityID: entityID, Kind: ErrNoCurrentVersion,
			Detail: "no version flagged current"}
	case 1:
		return matches[0], nil
	default:
		return 0, &ResolutionError{EntityID: entityID, Kind: ErrAmbiguousVersion,
			Detail: "multiple versions flagged current"}
	}
}

// containsDate checks closed-closed interval containment: a date exactly on
// START_DATE or on a non-null END_DATE is included.
func containsDate(v Version, d time.Time) bool {
	if d.Before(v.Start) {
		return false
	}
	return v.End == nil || !d.After(*v.End)
}

// ValidAtVersion is the hop predicate for children of a versioned entity:
// FIRST_VERSION <= v AND (LAST_VERSION IS NULL OR v <= LAST_VERSION).
// It must be applied independently at every traversal hop, not only at the
// root: a child valid at the root's version may reference grandchildren
// invalid at that version.
func ValidAtVersion(firstVersion int, lastVersion *int, v int) bool {
	if firstVersion > v {
		return false
	}
	return lastVersion == nil || v <= *lastVersion
}
