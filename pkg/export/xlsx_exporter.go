package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Excel sheet names are capped by the format itself.
const maxSheetNameLen = 31

// XLSXExporter renders a workbook into a spreadsheet, one sheet per table.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces spreadsheet bytes for the workbook.
func (e *XLSXExporter) Render(wb Workbook) ([]byte, error) {
	if len(wb.Tables) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one table")
	}
	file := excelize.NewFile()
	defer file.Close()

	for i, table := range wb.Tables {
		name := table.Name
		if len(name) > maxSheetNameLen {
			name = name[:maxSheetNameLen]
		}
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := file.NewSheet(name); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", name, err)
			}
		}

		if err := writeRow(file, name, 1, table.Headers); err != nil {
			return nil, err
		}
		for r, row := range table.Rows {
			if err := writeRow(file, name, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := file.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(file *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write sheet row: %w", err)
	}
	return nil
}
