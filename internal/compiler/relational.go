package compiler

import (
	"fmt"
	"strings"

	"github.com/jd09-test/product-model/pkg/graphmodel"
)

// compileRelational emits one CREATE TABLE statement per node. Every
// property becomes a VARCHAR2(4000) column in declared order; a PRIMARY KEY
// constraint is added when the node has an identity column.
func compileRelational(nodes []graphmodel.NodeDef) string {
	blocks := make([]string, 0, len(nodes))

	for _, node := range nodes {
		table := SanitizeIdentifier(node.Name)
		identity := node.IdentityKey()
		keys := node.PropertyKeys()

		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
		for i, key := range keys {
			needsComma := i < len(keys)-1 || identity != ""
			if needsComma {
				fmt.Fprintf(&b, "  %s VARCHAR2(4000),\n", key)
			} else {
				fmt.Fprintf(&b, "  %s VARCHAR2(4000)\n", key)
			}
		}
		if identity != "" {
			fmt.Fprintf(&b, "  CONSTRAINT PK_%s PRIMARY KEY (%s)\n", table, identity)
		}
		b.WriteString(");")

		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}
