// Package graphmodel holds the parsed, validated in-memory representation of
// a property graph mapped onto relational source tables. A model is built
// once from its declarative JSON description and is immutable afterwards;
// the DDL compiler, migration engine and traversal queries all hold a read
// reference to it.
package graphmodel

// Identity column preference order. A node whose property keys include one
// of these gets a primary key in the staging DDL and MERGE semantics during
// migration; ROW_ID wins over ID when both are present.
var identityKeyPreference = []string{"ROW_ID", "ID"}

// Property maps one source column onto one target property key.
type Property struct {
	Column string // column name in the source table(s)
	Key    string // property key exposed on the graph vertex
}

// JoinCondition is the equality join between a node's two source tables.
type JoinCondition struct {
	Left  string // qualified column of the first table
	Right string // qualified column of the second table
}

// NodeDef describes one vertex table: its target name/label, the projected
// properties in declared order, the one or two source tables rows are
// extracted from, and an optional row filter.
type NodeDef struct {
	Name       string
	Label      string
	Properties []Property
	Tables     []string
	JoinOn     *JoinCondition
	Filter     *Predicate
}

// RelationshipDef describes one edge: its label and the property keys that
// join the two endpoint vertex tables.
type RelationshipDef struct {
	Type    string
	From    string
	To      string
	FromKey string
	ToKey   string
}

// GraphModel is the single source of truth for the migration: an ordered,
// validated collection of node and relationship definitions.
type GraphModel struct {
	nodes  []NodeDef
	rels   []RelationshipDef
	byName map[string]int
}

// New validates the given definitions and builds an immutable model.
// It rejects duplicate node names, duplicate property keys within a node,
// malformed source table lists, dangling relationship endpoints and join
// keys that are not declared properties of their endpoint node.
func New(nodes []NodeDef, rels []RelationshipDef) (*GraphModel, error) {
	byName := make(map[string]int, len(nodes))

	for i := range nodes {
		node := &nodes[i]
		if node.Name == "" {
			return nil, validationErrorf("", "node %d has no name", i)
		}
		if _, dup := byName[node.Name]; dup {
			return nil, validationErrorf(node.Name, "duplicate node name")
		}
		byName[node.Name] = i

		if node.Label == "" {
			node.Label = node.Name
		}
		if len(node.Properties) == 0 {
			return nil, validationErrorf(node.Name, "node declares no properties")
		}
		seenKeys := make(map[string]bool, len(node.Properties))
		for _, p := range node.Properties {
			if p.Column == "" || p.Key == "" {
				return nil, validationErrorf(node.Name, "property mapping with empty column or key")
			}
			if seenKeys[p.Key] {
				return nil, validationErrorf(node.Name, "duplicate property key %q", p.Key)
			}
			seenKeys[p.Key] = true
		}

		switch len(node.Tables) {
		case 1:
			if node.JoinOn != nil {
				return nil, validationErrorf(node.Name, "join_on declared for a single source table")
			}
		case 2:
			if node.JoinOn == nil {
				return nil, validationErrorf(node.Name, "two source tables require a join_on condition")
			}
			if node.JoinOn.Left == "" || node.JoinOn.Right == "" {
				return nil, validationErrorf(node.Name, "join_on condition with empty column")
			}
		default:
			return nil, validationErrorf(node.Name, "node must declare one or two source tables, got %d", len(node.Tables))
		}
	}

	for _, rel := range rels {
		if rel.Type == "" {
			return nil, validationErrorf("", "relationship with empty type")
		}
		fromIdx, ok := byName[rel.From]
		if !ok {
			return nil, validationErrorf(rel.Type, "relationship references undeclared node %q", rel.From)
		}
		toIdx, ok := byName[rel.To]
		if !ok {
			return nil, validationErrorf(rel.Type, "relationship references undeclared node %q", rel.To)
		}
		if !nodes[fromIdx].HasPropertyKey(rel.FromKey) {
			return nil, validationErrorf(rel.Type, "from_key %q is not a property of node %q", rel.FromKey, rel.From)
		}
		if !nodes[toIdx].HasPropertyKey(rel.ToKey) {
			return nil, validationErrorf(rel.Type, "to_key %q is not a property of node %q", rel.ToKey, rel.To)
		}
	}

	seenRels := make(map[string]bool, len(rels))
	for _, rel := range rels {
		if seenRels[rel.Type] {
			return nil, validationErrorf(rel.Type, "duplicate relationship type")
		}
		seenRels[rel.Type] = true
	}

	return &GraphModel{nodes: nodes, rels: rels, byName: byName}, nil
}

// Nodes returns the node definitions in declared order.
func (m *GraphModel) Nodes() []NodeDef {
	out := make([]NodeDef, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// Relationships returns the relationship definitions in declared order.
func (m *GraphModel) Relationships() []RelationshipDef {
	out := make([]RelationshipDef, len(m.rels))
	copy(out, m.rels)
	return out
}

// Node looks up a node definition by name.
func (m *GraphModel) Node(name string) (NodeDef, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return NodeDef{}, false
	}
	return m.nodes[idx], true
}

// TableNames returns the target table name of every node in declared order.
func (m *GraphModel) TableNames() []string {
	names := make([]string, len(m.nodes))
	for i, n := range m.nodes {
		names[i] = n.Name
	}
	return names
}

// HasPropertyKey reports whether the node exposes the given property key.
func (n *NodeDef) HasPropertyKey(key string) bool {
	for _, p := range n.Properties {
		if p.Key == key {
			return true
		}
	}
	return false
}

// PropertyKeys returns the target property keys in declared order.
func (n *NodeDef) PropertyKeys() []string {
	keys := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		keys[i] = p.Key
	}
	return keys
}

// IdentityKey returns the node's identity property key, preferring ROW_ID
// over ID. Empty when the node has no identity-like property; such nodes are
// loaded append-only and re-running a migration duplicates their rows.
func (n *NodeDef) IdentityKey() string {
	for _, candidate := range identityKeyPreference {
		if n.HasPropertyKey(candidate) {
			return candidate
		}
	}
	return ""
}
