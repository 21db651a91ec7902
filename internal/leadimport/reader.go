// Package leadimport reads and writes the lead spreadsheet format.
//
// The first sheet must start with a header row naming (case-insensitively)
// at least the name column. Recognised columns: name, email, phone,
// duration, revenue, notes. Unknown columns are ignored.
package leadimport

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"stayos/internal/domain"
)

// Columns in template order.
var Columns = []string{"name", "email", "phone", "duration", "revenue", "notes"}

// Row is one parsed data row. Line is the 1-based spreadsheet row number.
// Err is set when the row could not be turned into a lead.
type Row struct {
	Line int
	Lead domain.Lead
	Err  error
}

// Read parses every data row of the first sheet.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidSpreadsheet
	}

	index := headerIndex(rows[0])
	if _, ok := index["name"]; !ok {
		return nil, domain.ErrInvalidSpreadsheet
	}

	var out []Row
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		out = append(out, parseRow(i+2, cells, index))
	}
	return out, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup && key != "" {
			index[key] = i
		}
	}
	return index
}

func parseRow(line int, cells []string, index map[string]int) Row {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	row := Row{Line: line}
	row.Lead = domain.Lead{
		Name:          get("name"),
		Email:         get("email"),
		Phone:         get("phone"),
		DurationLabel: get("duration"),
		Notes:         get("notes"),
		Source:        domain.LeadSourceImport,
	}
	if row.Lead.Name == "" {
		row.Err = fmt.Errorf("row %d: name is empty", line)
		return row
	}
	if raw := get("revenue"); raw != "" {
		rev, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			row.Err = fmt.Errorf("row %d: invalid revenue %q", line, raw)
			return row
		}
		row.Lead.Revenue = rev
	}
	return row
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
