package leadimport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Leads"

// WriteTemplate writes an empty lead spreadsheet with a styled header row.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E7FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, col := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(templateSheet, cell, col); err != nil {
			return fmt.Errorf("writing header %s: %w", col, err)
		}
		if err := f.SetCellStyle(templateSheet, cell, cell, style); err != nil {
			return fmt.Errorf("styling header %s: %w", col, err)
		}
	}

	if err := f.SetPanes(templateSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}
