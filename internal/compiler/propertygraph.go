package compiler

import (
	"fmt"
	"strings"

	"github.com/jd09-test/product-model/pkg/graphmodel"
)

// compileGraph emits the CREATE PROPERTY GRAPH statement. Each vertex table
// projects exactly the node's configured property keys; downstream schema
// introspection relies on no other property names ever appearing. Each edge
// table binds from_key to to_key as the join condition and carries no
// properties of its own.
func compileGraph(graphName string, nodes []graphmodel.NodeDef, rels []graphmodel.RelationshipDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE PROPERTY GRAPH %q\n", graphName)

	b.WriteString("VERTEX TABLES (\n")
	for i, node := range nodes {
		table := SanitizeIdentifier(node.Label)
		props := make([]string, len(node.Properties))
		for j, p := range node.Properties {
			props[j] = fmt.Sprintf("%q", p.Key)
		}
		propList := strings.Join(props, ", ")

		if identity := node.IdentityKey(); identity != "" {
			fmt.Fprintf(&b, "  %q\n  KEY (%q)\n  PROPERTIES (%s)", table, identity, propList)
		} else {
			fmt.Fprintf(&b, "  %q LABEL %s PROPERTIES (%s)", table, node.Label, propList)
		}

		if i < len(nodes)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString(")\n")

	b.WriteString("EDGE TABLES (\n")
	for i, rel := range rels {
		edge := SanitizeIdentifier(rel.Type)
		from := SanitizeIdentifier(rel.From)
		to := SanitizeIdentifier(rel.To)

		fmt.Fprintf(&b, "  %q AS %q\n", from, edge)
		fmt.Fprintf(&b, "  KEY (%q)\n", rel.FromKey)
		fmt.Fprintf(&b, "  SOURCE KEY (%q) REFERENCES %q (%q)\n", rel.FromKey, from, rel.FromKey)
		fmt.Fprintf(&b, "  DESTINATION KEY (%q) REFERENCES %q (%q)\n", rel.FromKey, to, rel.ToKey)
		b.WriteString("  NO PROPERTIES")

		if i < len(rels)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString(")\n")

	return b.String()
}
