// Package compiler turns a validated graph model into the two DDL artifacts
// the migration pipeline needs: relational staging-table DDL for the target
// database and a CREATE PROPERTY GRAPH statement layered on top of those
// tables. Compilation is a pure transform; executing the DDL is the target
// writer's job, behind an explicit confirmation.
package compiler

import (
	"regexp"
	"strings"

	"github.com/jd09-test/product-model/pkg/graphmodel"
)

var identifierSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// DefaultGraphName is used when the caller does not configure one.
const DefaultGraphName = "product_graph"

// LoadPlan is the per-node metadata the migration engine and the schema
// metadata surface derive from compilation: the target table, its columns in
// declared order, and the identity column driving MERGE semantics (empty for
// append-only nodes).
type LoadPlan struct {
	Node           string
	Table          string
	Label          string
	Columns        []string
	IdentityColumn string
}

// Artifacts is the compiler output. Both DDL strings are deterministic:
// compiling the same model twice yields byte-identical text.
type Artifacts struct {
	RelationalDDL string
	GraphDDL      string
	Loads         []LoadPlan
}

// Compiler compiles graph models for one named target graph.
type Compiler struct {
	graphName string
}

// New creates a compiler for the given property graph name.
func New(graphName string) *Compiler {
	if graphName == "" {
		graphName = DefaultGraphName
	}
	return &Compiler{graphName: graphName}
}

// Compile produces the relational staging DDL, the property graph DDL and
// the per-node load plans for the model.
func (c *Compiler) Compile(model *graphmodel.GraphModel) Artifacts {
	nodes := model.Nodes()

	loads := make([]LoadPlan, 0, len(nodes))
	for _, node := range nodes {
		loads = append(loads, LoadPlan{
			Node:           node.Name,
			Table:          SanitizeIdentifier(node.Name),
			Label:          SanitizeIdentifier(node.Label),
			Columns:        node.PropertyKeys(),
			IdentityColumn: node.IdentityKey(),
		})
	}

	return Artifacts{
		RelationalDDL: compileRelational(nodes),
		GraphDDL:      compileGraph(c.graphName, nodes, model.Relationships()),
		Loads:         loads,
	}
}

// SanitizeIdentifier converts an arbitrary label or relationship type into a
// safe uppercase Oracle identifier: every character outside [A-Za-z0-9_]
// becomes an underscore.
func SanitizeIdentifier(name string) string {
	return strings.ToUpper(identifierSanitizer.ReplaceAllString(name, "_"))
}
