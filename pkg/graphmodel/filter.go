package graphmodel

import (
	"fmt"
	"strconv"
	"strings"
)

// comparison operator names accepted in filter definitions
var comparisonOps = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"ne":  "<>",
	"eq":  "=",
}

type predicateKind int

const (
	kindConj predicateKind = iota // implicit AND of an object's entries, no parens
	kindAnd                       // explicit AND block, parenthesized
	kindOr
	kindNot
	kindCompare // column <op> value, rendered with spaces
	kindEquals  // column=value shorthand, rendered without spaces
	kindNull    // column IS [NOT] NULL
)

// Predicate is a boolean row filter over source columns: AND/OR/NOT
// combinations of column comparisons and null tests. Rendering to SQL is
// deterministic: clauses appear exactly in declared order.
type Predicate struct {
	kind     predicateKind
	children []*Predicate
	column   string
	operator string      // SQL comparison operator for kindCompare
	value    interface{} // string, float64 or bool
	notNull  bool        // for kindNull
}

// And groups predicates into a parenthesized AND block.
func And(children ...*Predicate) *Predicate {
	return &Predicate{kind: kindAnd, children: children}
}

// Or groups predicates into a parenthesized OR block.
func Or(children ...*Predicate) *Predicate {
	return &Predicate{kind: kindOr, children: children}
}

// Not negates a predicate.
func Not(child *Predicate) *Predicate {
	return &Predicate{kind: kindNot, children: []*Predicate{child}}
}

// Eq is the direct column=value equality shorthand.
func Eq(column string, value interface{}) *Predicate {
	return &Predicate{kind: kindEquals, column: column, value: value}
}

// Compare builds a named-operator comparison (gt, gte, lt, lte, ne, eq).
func Compare(column, op string, value interface{}) (*Predicate, error) {
	sqlOp, ok := comparisonOps[op]
	if !ok {
		return nil, validationErrorf("", "unsupported filter operator %q", op)
	}
	if value == nil {
		switch op {
		case "eq":
			return NullTest(column, false), nil
		case "ne":
			return NullTest(column, true), nil
		default:
			return nil, validationErrorf("", "cannot apply operator %q against NULL", op)
		}
	}
	return &Predicate{kind: kindCompare, column: column, operator: sqlOp, value: value}, nil
}

// NullTest builds column IS NULL (notNull=false) or IS NOT NULL.
func NullTest(column string, notNull bool) *Predicate {
	return &Predicate{kind: kindNull, column: column, notNull: notNull}
}

func conj(children ...*Predicate) *Predicate {
	return &Predicate{kind: kindConj, children: children}
}

// SQL renders the predicate as a WHERE-clause fragment (without the WHERE
// keyword).
func (p *Predicate) SQL() string {
	switch p.kind {
	case kindConj:
		return joinChildren(p.children, " AND ")
	case kindAnd:
		return "(" + joinChildren(p.children, " AND ") + ")"
	case kindOr:
		return "(" + joinChildren(p.children, " OR ") + ")"
	case kindNot:
		return "(NOT " + p.children[0].SQL() + ")"
	case kindCompare:
		return fmt.Sprintf("%s %s %s", p.column, p.operator, sqlLiteral(p.value))
	case kindEquals:
		return fmt.Sprintf("%s=%s", p.column, sqlLiteral(p.value))
	case kindNull:
		if p.notNull {
			return p.column + " IS NOT NULL"
		}
		return p.column + " IS NULL"
	}
	return ""
}

func joinChildren(children []*Predicate, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.SQL()
	}
	return strings.Join(parts, sep)
}

// sqlLiteral formats a filter value as an Oracle SQL literal. Strings are
// single-quoted with embedded quotes doubled.
func sqlLiteral(v interface{}) string {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}
