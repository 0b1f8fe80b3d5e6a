package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benchlab/benchreport/internal/report"
)

// saveAttachments extracts attachment columns (any *_json column) from
// run-detail rows: the value is written to <rowid>.json next to the run
// page and the cell is replaced with a link the table builder passes
// through. The row id comes from the first *_id (or id) column.
func (g *Generator) saveAttachments(dir string, columns []string, rows []report.Row) []report.Row {
	result := make([]report.Row, len(rows))
	for i, row := range rows {
		out := make(report.Row, len(row))
		rowID := ""
		for _, column := range columns {
			if rowID == "" && (strings.HasSuffix(column, "_id") || column == "id") {
				if row[column] != nil {
					rowID = report.Stringify(row[column])
				}
			}
			value := row[column]
			if strings.HasSuffix(column, "_json") && value != nil {
				name := rowID + ".json"
				if err := writeAttachment(filepath.Join(dir, name), value); err != nil {
					g.Log.Warn().Err(err).Str("file", name).Msg("writing attachment failed")
				} else {
					value = fmt.Sprintf(`<a href="%s">%s</a>`, name, name)
				}
			}
			out[column] = value
		}
		result[i] = out
	}
	return result
}

func writeAttachment(path string, value any) error {
	// JSON columns usually arrive as text already.
	data, ok := value.(string)
	if !ok {
		b, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return err
		}
		data = string(b)
	}
	return os.WriteFile(path, []byte(data), 0o644)
}
