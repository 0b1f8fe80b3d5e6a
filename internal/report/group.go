package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is one query result row, column name to value. Values are nil,
// int64, float64, bool or string as produced by the store layer.
type Row = map[string]any

// KV is one (column name, stringified value) pair of a group or pivot key.
type KV struct {
	Column string
	Value  string
}

// Key identifies one group or pivot partition. Pairs are kept sorted by
// column name, then value, so equal projections always produce the same
// key and keys order deterministically across runs.
type Key []KV

// KeyOf projects a row onto the given columns. Values are compared and
// stored in string form, so numeric and null values partition by their
// textual representation.
func KeyOf(row Row, columns []string) Key {
	key := make(Key, 0, len(columns))
	for _, name := range columns {
		key = append(key, KV{Column: name, Value: Stringify(row[name])})
	}
	sort.Slice(key, func(i, j int) bool {
		if key[i].Column != key[j].Column {
			return key[i].Column < key[j].Column
		}
		return key[i].Value < key[j].Value
	})
	return key
}

// Equal reports whether two keys have identical pairs.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Less orders keys by element-wise pair comparison, shorter prefix first.
func (k Key) Less(other Key) bool {
	for i := 0; i < len(k) && i < len(other); i++ {
		if k[i].Column != other[i].Column {
			return k[i].Column < other[i].Column
		}
		if k[i].Value != other[i].Value {
			return k[i].Value < other[i].Value
		}
	}
	return len(k) < len(other)
}

// Title renders the key as "Label: value" pairs joined with ", ".
// Empty keys render as an empty title.
func (k Key) Title() string {
	parts := make([]string, len(k))
	for i, kv := range k {
		parts[i] = DisplayLabel(kv.Column) + ": " + kv.Value
	}
	return strings.Join(parts, ", ")
}

// Lookup returns the value of the first pair matching one of names.
func (k Key) Lookup(names ...string) (string, bool) {
	for _, kv := range k {
		for _, name := range names {
			if kv.Column == name {
				return kv.Value, true
			}
		}
	}
	return "", false
}

func (k Key) encode() string {
	var b strings.Builder
	for _, kv := range k {
		b.WriteString(kv.Column)
		b.WriteByte(0x1f)
		b.WriteString(kv.Value)
		b.WriteByte(0x1e)
	}
	return b.String()
}

// Partition is one equivalence class of rows under a key projection.
type Partition struct {
	Key  Key
	Rows []Row
}

// PartitionBy splits rows into partitions keyed by their projection onto
// columns. Every row lands in exactly one partition and partitions come
// back sorted by key, so repeated runs over the same data enumerate
// groups and pivots in the same order regardless of input row order.
//
// With no key columns, or no rows at all, there is a single partition
// with an empty key holding everything: an ungrouped query still yields
// a table and a chart.
func PartitionBy(rows []Row, columns []string) []Partition {
	if len(columns) == 0 || len(rows) == 0 {
		return []Partition{{Rows: rows}}
	}

	index := make(map[string]int)
	var parts []Partition
	for _, row := range rows {
		key := KeyOf(row, columns)
		enc := key.encode()
		i, ok := index[enc]
		if !ok {
			i = len(parts)
			index[enc] = i
			parts = append(parts, Partition{Key: key})
		}
		parts[i].Rows = append(parts[i].Rows, row)
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Key.Less(parts[j].Key) })
	return parts
}

// Stringify renders a value the way keys, axis categories and hover text
// see it. Null renders as "None" for compatibility with reports produced
// by earlier generations of this tool; the degenerate no-unit group
// sentinel depends on that spelling.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
