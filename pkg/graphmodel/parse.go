package graphmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type nodeJSON struct {
	Name       string          `json:"name"`
	Label      string          `json:"label"`
	Properties json.RawMessage `json:"properties"`
	Table      []string        `json:"table"`
	JoinOn     json.RawMessage `json:"join_on"`
	Filter     json.RawMessage `json:"filter"`
}

type relationshipJSON struct {
	Type    string `json:"type"`
	From    string `json:"from"`
	To      string `json:"to"`
	FromKey string `json:"from_key"`
	ToKey   string `json:"to_key"`
}

type documentJSON struct {
	Nodes         []nodeJSON         `json:"nodes"`
	Relationships []relationshipJSON `json:"relationships"`
}

// Parse builds a validated GraphModel from its declarative JSON description.
// Property and filter ordering is preserved exactly as declared so that all
// derived artifacts (DDL, extraction SQL) are deterministic.
func Parse(data []byte) (*GraphModel, error) {
	var doc documentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing graph model: %w", err)
	}

	nodes := make([]NodeDef, 0, len(doc.Nodes))
	for _, nj := range doc.Nodes {
		node := NodeDef{
			Name:   nj.Name,
			Label:  nj.Label,
			Tables: nj.Table,
		}

		if len(nj.Properties) > 0 {
			pairs, err := decodeOrderedPairs(nj.Properties)
			if err != nil {
				return nil, validationErrorf(nj.Name, "invalid properties: %v", err)
			}
			for _, pair := range pairs {
				node.Properties = append(node.Properties, Property{Column: pair[0], Key: pair[1]})
			}
		}

		if len(nj.JoinOn) > 0 && !bytes.Equal(nj.JoinOn, []byte("null")) {
			pairs, err := decodeOrderedPairs(nj.JoinOn)
			if err != nil {
				return nil, validationErrorf(nj.Name, "invalid join_on: %v", err)
			}
			if len(pairs) != 1 {
				return nil, validationErrorf(nj.Name, "join_on must declare exactly one column pair, got %d", len(pairs))
			}
			node.JoinOn = &JoinCondition{Left: pairs[0][0], Right: pairs[0][1]}
		}

		if len(nj.Filter) > 0 && !bytes.Equal(nj.Filter, []byte("null")) {
			pred, err := parseFilter(nj.Filter)
			if err != nil {
				return nil, validationErrorf(nj.Name, "invalid filter: %v", err)
			}
			node.Filter = pred
		}

		nodes = append(nodes, node)
	}

	rels := make([]RelationshipDef, 0, len(doc.Relationships))
	for _, rj := range doc.Relationships {
		rels = append(rels, RelationshipDef{
			Type:    rj.Type,
			From:    rj.From,
			To:      rj.To,
			FromKey: rj.FromKey,
			ToKey:   rj.ToKey,
		})
	}

	return New(nodes, rels)
}

// LoadFile reads and parses a graph model JSON file.
func LoadFile(path string) (*GraphModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading graph model %s: %w", path, err)
	}
	return Parse(data)
}

// decodeOrderedPairs decodes a JSON object of string values into key/value
// pairs in document order. encoding/json maps lose ordering, so the object
// is walked token by token instead.
func decodeOrderedPairs(raw []byte) ([][2]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var pairs [][2]string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("value of %q must be a string, got %v", key, valTok)
		}
		pairs = append(pairs, [2]string{key, val})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// parseFilter decodes a structured filter document into a Predicate tree,
// preserving clause order.
func parseFilter(raw []byte) (*Predicate, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	return parseFilterGroup(dec)
}

// parseFilterGroup consumes one JSON object from the decoder and returns the
// conjunction of its entries.
func parseFilterGroup(dec *json.Decoder) (*Predicate, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("filter must be a JSON object, got %v", tok)
	}

	var clauses []*Predicate
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		switch key {
		case "AND", "OR":
			kids, err := parseFilterList(dec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if key == "AND" {
				clauses = append(clauses, And(kids...))
			} else {
				clauses = append(clauses, Or(kids...))
			}

		case "NOT":
			kid, err := parseFilterGroup(dec)
			if err != nil {
				return nil, fmt.Errorf("NOT: %w", err)
			}
			clauses = append(clauses, Not(kid))

		default:
			entry, err := parseFilterValue(dec, key)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, entry...)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return conj(clauses...), nil
}

// parseFilterList consumes a JSON array of filter objects.
func parseFilterList(dec *json.Decoder) ([]*Predicate, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected array of filter objects, got %v", tok)
	}

	var kids []*Predicate
	for dec.More() {
		kid, err := parseFilterGroup(dec)
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return kids, nil
}

// parseFilterValue consumes the value of a column entry: either a scalar
// (direct equality or IS NULL shorthand) or an operator map.
func parseFilterValue(dec *json.Decoder, column string) ([]*Predicate, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		if v != '{' {
			return nil, fmt.Errorf("column %q: unsupported filter value", column)
		}
		var clauses []*Predicate
		for dec.More() {
			opTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			op := opTok.(string)

			valTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			if _, isDelim := valTok.(json.Delim); isDelim {
				return nil, fmt.Errorf("column %q: operator %q value must be a scalar", column, op)
			}
			cmp, err := Compare(column, op, valTok)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", column, err)
			}
			clauses = append(clauses, cmp)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return clauses, nil

	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "IS NULL":
			return []*Predicate{NullTest(column, false)}, nil
		case "IS NOT NULL":
			return []*Predicate{NullTest(column, true)}, nil
		}
		return []*Predicate{Eq(column, v)}, nil

	case float64, bool:
		return []*Predicate{Eq(column, v)}, nil

	case nil:
		return nil, fmt.Errorf("column %q: null requires an eq or ne operator", column)

	default:
		return nil, fmt.Errorf("column %q: unsupported filter value %v", column, tok)
	}
}
