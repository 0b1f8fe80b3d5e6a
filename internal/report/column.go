// Package report implements the report-synthesis engine: it classifies
// query result columns by naming convention, partitions rows into groups
// and pivots, and assembles renderable table and bar-chart value objects.
//
// The column-name convention is the contract with query authors. The
// trailing _-delimited suffix of a column name selects its role:
//
//	num, num2f, pct, unit, err  -> metric (plotted as a bar value)
//	label                       -> label (hover text, not plotted)
//	pivot                       -> pivot (splits a chart into named series)
//	group                       -> group (splits rows into separate panels)
//	id (or the bare name "id")  -> identity (row key for attachments)
//	anything else               -> dimension (x-axis category)
package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role is the semantic role of a result column.
type Role int

const (
	RoleDimension Role = iota
	RoleMetric
	RoleLabel
	RolePivot
	RoleGroup
	RoleIdentity
)

func (r Role) String() string {
	switch r {
	case RoleMetric:
		return "metric"
	case RoleLabel:
		return "label"
	case RolePivot:
		return "pivot"
	case RoleGroup:
		return "group"
	case RoleIdentity:
		return "identity"
	default:
		return "dimension"
	}
}

// Column is a classified result column.
type Column struct {
	Name  string
	Role  Role
	Label string
}

// Classify assigns a role and a display label to a column name.
// It is pure and total: every name maps to exactly one role, with
// dimension as the permissive default for unrecognized suffixes.
func Classify(name string) Column {
	return Column{Name: name, Role: roleOf(name), Label: DisplayLabel(name)}
}

// ClassifyAll classifies a column name sequence, preserving order.
func ClassifyAll(names []string) []Column {
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Classify(name)
	}
	return columns
}

func roleOf(name string) Role {
	if name == "id" {
		return RoleIdentity
	}
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		// No suffix token at all.
		return RoleDimension
	}
	switch name[i+1:] {
	case "num", "num2f", "pct", "unit", "err":
		return RoleMetric
	case "label":
		return RoleLabel
	case "pivot":
		return RolePivot
	case "group":
		return RoleGroup
	case "id":
		return RoleIdentity
	default:
		return RoleDimension
	}
}

// DisplayLabel derives a human-readable label from a column name:
// the recognized suffix is stripped and the remaining words are
// title-cased. The err suffix is kept so an error column's label
// stays distinct from its paired metric until the chart builder
// merges them.
func DisplayLabel(name string) string {
	words := strings.Split(name, "_")
	if len(words) > 1 {
		switch words[len(words)-1] {
		case "num2f", "num", "pct", "group", "unit", "label", "pivot":
			words = words[:len(words)-1]
		}
	}
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
