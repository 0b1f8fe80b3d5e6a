package report

import (
	"strings"
	"unicode/utf8"
)

// hoverTrimLimit caps hover text values so tooltips stay readable.
const hoverTrimLimit = 150

// Series is one named bar trace: x categories, y values, optional error
// magnitudes and per-row hover text.
type Series struct {
	Name      string
	X         []string
	Y         []any
	ErrorY    []any
	HoverText []string
}

// Chart is the renderable value object for one group's bar chart.
type Chart struct {
	Title       string
	YAxisFormat string
	BarMode     string
	Series      []Series
}

// BuildChart turns classified columns and one group's rows into a grouped
// bar chart, or nil when no chart is meaningful: no metric columns, no
// rows, or the degenerate no-unit group.
//
// Series are emitted in sorted pivot-key order, then column order of the
// metrics, so two runs over identical data produce identical charts.
func BuildChart(columns []Column, rows []Row, key Key) *Chart {
	var dimensions, pivots, metrics, labels []string
	for _, col := range columns {
		switch col.Role {
		case RoleMetric:
			metrics = append(metrics, col.Name)
		case RolePivot:
			pivots = append(pivots, col.Name)
		case RoleLabel:
			labels = append(labels, col.Name)
		case RoleGroup:
			// Group columns never reach the chart; partitioning consumed them.
		default:
			// Dimension and identity columns form the x-axis category.
			dimensions = append(dimensions, col.Name)
		}
	}
	if len(metrics) == 0 || len(rows) == 0 || isNoUnitGroup(key) {
		return nil
	}

	// Error magnitudes are keyed by the paired metric's display label;
	// an _err column with no matching base metric is silently unused.
	errors := make(map[string][]any)
	for _, metric := range metrics {
		if !strings.HasSuffix(metric, "_err") {
			continue
		}
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = row[metric]
		}
		errors[DisplayLabel(strings.TrimSuffix(metric, "_err"))] = values
	}

	chart := &Chart{
		Title:       key.Title(),
		YAxisFormat: FormatFor(metrics[len(metrics)-1], key),
		BarMode:     "group",
	}
	for _, pivot := range PartitionBy(rows, pivots) {
		prefix := ""
		if len(pivot.Key) > 0 {
			prefix = pivot.Key.Title() + " "
		}
		chart.Series = append(chart.Series, buildSeries(pivot.Rows, dimensions, metrics, labels, errors, prefix)...)
	}
	return chart
}

// isNoUnitGroup detects the sentinel group of rows with no quantifiable
// unit: a single null unit key. Such rows get a table but cannot be
// charted meaningfully.
func isNoUnitGroup(key Key) bool {
	if len(key) != 1 || key[0].Value != "None" {
		return false
	}
	return key[0].Column == "unit" || key[0].Column == "unit_group"
}

func buildSeries(rows []Row, dimensions, metrics, labels []string, errors map[string][]any, prefix string) []Series {
	x := make([]string, len(rows))
	hover := make([]string, len(rows))
	for i, row := range rows {
		values := make([]string, len(dimensions))
		for j, dim := range dimensions {
			values[j] = Stringify(row[dim])
		}
		x[i] = strings.Join(values, ", ")

		texts := make([]string, len(labels))
		for j, label := range labels {
			texts[j] = DisplayLabel(label) + ": " + trimLong(Stringify(row[label]))
		}
		hover[i] = strings.Join(texts, "<br>")
	}

	var series []Series
	for _, metric := range metrics {
		if strings.HasSuffix(metric, "_err") {
			continue
		}
		label := DisplayLabel(metric)
		y := make([]any, len(rows))
		for i, row := range rows {
			y[i] = row[metric]
		}
		series = append(series, Series{
			Name:      prefix + label,
			X:         x,
			Y:         y,
			ErrorY:    errors[label],
			HoverText: hover,
		})
	}
	return series
}

// trimLong shortens long or multi-line values for hover text.
func trimLong(value string) string {
	if utf8.RuneCountInString(value) <= hoverTrimLimit && !strings.ContainsRune(value, '\n') {
		return value
	}
	runes := []rune(value)
	if len(runes) > hoverTrimLimit {
		runes = runes[:hoverTrimLimit]
	}
	return string(runes) + "..."
}
