package store

import (
	"fmt"
	"strings"
	"time"
)

// Expand substitutes :name parameters in a query with SQL literals.
// Query files bind :env_ids (an id list, used with IN) and :id (a single
// run or environment id); values are server-derived, never user text.
// Unknown parameter names and ::type casts are left untouched.
func Expand(query string, params map[string]any) string {
	var b strings.Builder
	b.Grow(len(query))

	for i := 0; i < len(query); {
		c := query[i]
		if c != ':' {
			b.WriteByte(c)
			i++
			continue
		}
		// A cast like ::bigint is not a parameter.
		if i+1 < len(query) && query[i+1] == ':' {
			b.WriteString("::")
			i += 2
			continue
		}
		name := paramName(query[i+1:])
		if name == "" {
			b.WriteByte(c)
			i++
			continue
		}
		value, ok := params[name]
		if !ok {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteString(Literal(value))
		i += 1 + len(name)
	}
	return b.String()
}

func paramName(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return s[:i]
	}
	return s
}

// Literal renders a value as a SQL literal. Strings are single-quoted
// with internal quotes doubled; integer slices render as a parenthesized
// list (an empty list renders as (NULL) to keep IN clauses valid).
func Literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case time.Time:
		return "'" + v.Format(time.RFC3339Nano) + "'"
	case []int64:
		if len(v) == 0 {
			return "(NULL)"
		}
		parts := make([]string, len(v))
		for i, id := range v {
			parts[i] = fmt.Sprintf("%d", id)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%v", v)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", v), "'", "''") + "'"
	}
}
