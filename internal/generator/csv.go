package generator

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/benchlab/benchreport/internal/report"
)

// writeCSV dumps raw query results next to the report so they can be
// diffed or post-processed. Nulls write as empty fields.
func writeCSV(path string, columns []string, rows []report.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		_ = f.Close()
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, column := range columns {
			if row[column] == nil {
				record[i] = ""
			} else {
				record[i] = report.Stringify(row[column])
			}
		}
		if err := w.Write(record); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
