package report

import "strings"

// Align is a table cell alignment.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// CellKind selects how the rendering layer draws a cell.
type CellKind string

const (
	// CellEmpty is a null value, drawn as an empty cell.
	CellEmpty CellKind = "empty"
	// CellNumber is a numeric value, right-aligned with numeric styling.
	CellNumber CellKind = "number"
	// CellText is plain text drawn verbatim.
	CellText CellKind = "text"
	// CellHTML is pre-rendered markup (attachment links) passed through as-is.
	CellHTML CellKind = "html"
	// CellDetails is long multi-line text collapsed behind a disclosure
	// widget; Summary holds the visible first line.
	CellDetails CellKind = "details"
)

// longTextLines is the newline-separated line count at which a text cell
// collapses into a disclosure widget.
const longTextLines = 5

// Header describes one table column.
type Header struct {
	Name  string
	Label string
	Align Align
}

// Cell is one rendered table cell.
type Cell struct {
	Kind    CellKind
	Text    string
	Summary string
	Align   Align
	Numeric bool
}

// Table is the renderable value object for one group's raw data.
type Table struct {
	Title   string
	Headers []Header
	Rows    [][]Cell
}

// BuildTable turns classified columns and one group's rows into a table.
// Metric columns align right and have their numeric cells formatted per
// the group-aware format resolver; everything else aligns left.
func BuildTable(columns []Column, rows []Row, key Key) *Table {
	headers := make([]Header, len(columns))
	formats := make([]string, len(columns))
	for i, col := range columns {
		align := AlignLeft
		if col.Role == RoleMetric {
			align = AlignRight
			formats[i] = FormatFor(col.Name, key)
		}
		headers[i] = Header{Name: col.Name, Label: col.Label, Align: align}
	}

	cells := make([][]Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]Cell, len(columns))
		for c, col := range columns {
			cells[r][c] = buildCell(row[col.Name], headers[c].Align, formats[c])
		}
	}

	return &Table{Title: key.Title(), Headers: headers, Rows: cells}
}

func buildCell(value any, align Align, format string) Cell {
	switch v := value.(type) {
	case nil:
		return Cell{Kind: CellEmpty, Align: align}
	case int64:
		return numberCell(float64(v), Stringify(v), align, format)
	case float64:
		return numberCell(v, Stringify(v), align, format)
	case bool:
		return Cell{Kind: CellText, Text: Stringify(v), Align: align}
	}

	trimmed := strings.Trim(Stringify(value), "\n")
	switch {
	case strings.HasSuffix(trimmed, "</a>"):
		// Pre-rendered attachment link, assembled upstream.
		return Cell{Kind: CellHTML, Text: trimmed, Align: align}
	case strings.Count(trimmed, "\n") < longTextLines:
		return Cell{Kind: CellText, Text: trimmed, Align: align}
	default:
		summary := trimmed[:strings.IndexByte(trimmed, '\n')]
		return Cell{Kind: CellDetails, Text: trimmed, Summary: summary, Align: AlignLeft}
	}
}

func numberCell(value float64, raw string, align Align, format string) Cell {
	text := raw
	if format != FormatNone {
		text = ApplyFormat(format, value)
	}
	return Cell{Kind: CellNumber, Text: text, Align: align, Numeric: true}
}
