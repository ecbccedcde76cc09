// Package metadata exposes the compiled graph schema to query tooling:
// vertex labels with their property names and edge labels with their join
// columns. The catalog is derived purely from the graph model, so a consumer
// that only writes queries against it can never reference a property or join
// key that was not compiled: no invented property names.
package metadata

import (
	"github.com/jd09-test/product-model/internal/compiler"
	"github.com/jd09-test/product-model/pkg/graphmodel"
)

// VertexSchema lists the property names of one vertex label.
type VertexSchema struct {
	Label      string   `json:"vertex_label"`
	Properties []string `json:"properties"`
}

// EdgeSchema describes how one edge joins its endpoint vertex tables. The
// source and target columns are the exact join keys a graph-pattern query
// must use.
type EdgeSchema struct {
	Edge         string `json:"edge_table"`
	SourceTable  string `json:"source_vertex_table"`
	SourceColumn string `json:"source_vertex_column"`
	TargetTable  string `json:"target_vertex_table"`
	TargetColumn string `json:"target_vertex_column"`
}

// Catalog is the introspection surface over one compiled model.
type Catalog struct {
	vertices []VertexSchema
	edges    []EdgeSchema
	byLabel  map[string]map[string]bool
}

// FromModel builds the catalog for a validated model. Labels and edge names
// are sanitized exactly the way the DDL compiler sanitizes them, keeping the
// catalog in sync with what was deployed.
func FromModel(model *graphmodel.GraphModel) *Catalog {
	c := &Catalog{byLabel: make(map[string]map[string]bool)}

	for _, node := range model.Nodes() {
		label := compiler.SanitizeIdentifier(node.Label)
		props := node.PropertyKeys()
		c.vertices = append(c.vertices, VertexSchema{Label: label, Properties: props})

		propSet := make(map[string]bool, len(props))
		for _, p := range props {
			propSet[p] = true
		}
		c.byLabel[label] = propSet
	}

	for _, rel := range model.Relationships() {
		c.edges = append(c.edges, EdgeSchema{
			Edge:         compiler.SanitizeIdentifier(rel.Type),
			SourceTable:  compiler.SanitizeIdentifier(rel.From),
			SourceColumn: rel.FromKey,
			TargetTable:  compiler.SanitizeIdentifier(rel.To),
			TargetColumn: rel.ToKey,
		})
	}

	return c
}

// VertexLabels returns every vertex label with its properties, in model order.
func (c *Catalog) VertexLabels() []VertexSchema {
	out := make([]VertexSchema, len(c.vertices))
	copy(out, c.vertices)
	return out
}

// VertexLabelsFiltered returns only the requested labels, preserving model
// order; unknown labels are silently omitted.
func (c *Catalog) VertexLabelsFiltered(labels []string) []VertexSchema {
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}
	var out []VertexSchema
	for _, v := range c.vertices {
		if want[v.Label] {
			out = append(out, v)
		}
	}
	return out
}

// EdgeLabels returns every edge with its join columns, in model order.
func (c *Catalog) EdgeLabels() []EdgeSchema {
	out := make([]EdgeSchema, len(c.edges))
	copy(out, c.edges)
	return out
}

// EdgeLabelsFiltered returns only the requested edges, preserving model
// order; unknown edges are silently omitted.
func (c *Catalog) EdgeLabelsFiltered(edges []string) []EdgeSchema {
	want := make(map[string]bool, len(edges))
	for _, e := range edges {
		want[e] = true
	}
	var out []EdgeSchema
	for _, e := range c.edges {
		if want[e.Edge] {
			out = append(out, e)
		}
	}
	return out
}

// CheckQueryColumns verifies that every referenced property exists on the
// given vertex label, returning a DriftError for the first one that does
// not. This is a consumer-side aid for diagnosing metadata/schema mismatch.
func (c *Catalog) CheckQueryColumns(label string, properties []string) error {
	propSet, ok := c.byLabel[label]
	if !ok {
		return &DriftError{Label: label}
	}
	for _, p := range properties {
		if !propSet[p] {
			return &DriftError{Label: label, Property: p}
		}
	}
	return nil
}
