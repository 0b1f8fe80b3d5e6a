package report

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Numeric display formats, expressed as d3-format tokens so the chart
// layer can hand them straight to the y-axis tick formatter.
// Reference: https://github.com/d3/d3-format
const (
	FormatFixed2  = ".2f"
	FormatPercent = ".2%"
	FormatBytes   = ".2s"
	FormatGeneric = "g"
	FormatNone    = ""
)

// FormatFor resolves the display format of a metric column within the
// active group. Unit-suffixed metrics take their format from the group's
// unit value; as a fallback, columns that talk about memory or bytes get
// SI byte scaling.
func FormatFor(name string, key Key) string {
	words := strings.Split(strings.ToLower(name), "_")
	suffix := words[len(words)-1]
	words = words[:len(words)-1]

	switch suffix {
	case "num2f", "err":
		return FormatFixed2
	case "pct":
		return FormatPercent
	case "unit":
		return unitFormat(key)
	}
	for _, word := range words {
		if word == "memory" || word == "bytes" {
			return FormatBytes
		}
	}
	return FormatNone
}

// unitFormat picks a format from the group's unit value. The enumeration
// matches the unit names stored by the benchmark driver.
func unitFormat(key Key) string {
	unit, _ := key.Lookup("unit", "unit_group")
	switch unit {
	case "MILLISECONDS":
		// TODO render as intervals (H:M:S.mmm); needs explicit tick values.
		return FormatGeneric
	case "BYTES":
		return FormatBytes
	case "PERCENT":
		return FormatPercent
	case "QUERY_PER_SECOND":
		return FormatFixed2
	}
	return FormatGeneric
}

// ApplyFormat renders a numeric table cell according to a format token.
// An empty token renders the shortest exact representation.
func ApplyFormat(format string, value float64) string {
	switch format {
	case FormatFixed2:
		return strconv.FormatFloat(value, 'f', 2, 64)
	case FormatPercent:
		return strconv.FormatFloat(value*100, 'f', 2, 64) + "%"
	case FormatBytes:
		return strings.TrimSpace(humanize.SIWithDigits(value, 2, ""))
	default:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
}
