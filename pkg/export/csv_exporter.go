package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a workbook into CSV bytes. Sections are written in
// order, separated by a blank line, each preceded by its name.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the workbook.
func (e *CSVExporter) Render(wb Workbook) ([]byte, error) {
	if len(wb.Tables) == 0 {
		return nil, fmt.Errorf("csv requires at least one table")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for i, table := range wb.Tables {
		if i > 0 {
			writer.Flush()
			buf.WriteString("\n")
		}
		if err := writer.Write([]string{table.Name}); err != nil {
			return nil, fmt.Errorf("write csv section name: %w", err)
		}
		if err := writer.Write(table.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range table.Rows {
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
