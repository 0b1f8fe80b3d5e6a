package report

// Figure pairs one group's table with its chart. Chart is nil when the
// group cannot be charted (no metrics, no rows, or the no-unit sentinel).
type Figure struct {
	Table *Table
	Chart *Chart
}

// BuildFigures classifies nothing itself: it takes already classified
// columns, partitions rows by the group columns, and emits one figure per
// group in sorted group order. Group columns are consumed by partitioning
// and do not appear in the resulting tables or charts.
func BuildFigures(columns []Column, rows []Row) []Figure {
	var groupBy []string
	visible := make([]Column, 0, len(columns))
	for _, col := range columns {
		if col.Role == RoleGroup {
			groupBy = append(groupBy, col.Name)
		} else {
			visible = append(visible, col)
		}
	}

	var figures []Figure
	for _, group := range PartitionBy(rows, groupBy) {
		figures = append(figures, Figure{
			Table: BuildTable(visible, group.Rows, group.Key),
			Chart: BuildChart(visible, group.Rows, group.Key),
		})
	}
	return figures
}
