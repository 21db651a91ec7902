package leadimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stayos/internal/domain"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := new(bytes.Buffer)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func TestRead_ParsesRows(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Name", "EMAIL", "Duration", "Revenue", "Notes"},
		{"Ada", "ada@example.com", "2 days", "300", "late arrival"},
		{"", "", "", "", ""},
		{"Bo", "", "45 weeks", "5,400.50", ""},
	})

	rows, err := Read(buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Ada", rows[0].Lead.Name)
	assert.Equal(t, "2 days", rows[0].Lead.DurationLabel)
	assert.Equal(t, domain.LeadSourceImport, rows[0].Lead.Source)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, 4, rows[1].Line)
	assert.True(t, rows[1].Lead.Revenue.Equal(decimal.RequireFromString("5400.50")))
}

func TestRead_RowErrorsAreIsolated(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"name", "revenue"},
		{"", "100"},
		{"Cleo", "lots"},
		{"Dee", "10"},
	})

	rows, err := Read(buf)

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Error(t, rows[0].Err)
	assert.Error(t, rows[1].Err)
	assert.Contains(t, rows[1].Err.Error(), "invalid revenue")
	assert.NoError(t, rows[2].Err)
}

func TestRead_MissingNameColumn(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{{"email"}, {"x@example.com"}})

	_, err := Read(buf)

	assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
}

func TestRead_NotASpreadsheet(t *testing.T) {
	_, err := Read(strings.NewReader("name,email\nAda,ada@example.com\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
}

func TestWriteTemplate_RoundTrips(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteTemplate(buf))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(templateSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}
