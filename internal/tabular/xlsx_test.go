package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseXLSX(t *testing.T) {
	buf := workbook(t,
		[]any{"Date", "Supplier", "Weight", "Region"},
		[]any{"2024-01-10", "Tesla Energy", 1500, "North America"},
		[]any{"2024-02-05", "Vulcan Steel", 5000},
	)

	table, err := ParseXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Supplier", "Weight", "Region"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1500", table.Rows[0]["Weight"])
	assert.Equal(t, "North America", table.Rows[0]["Region"])
	assert.Empty(t, table.Rows[1]["Region"])
	assert.Empty(t, table.Errors, "short spreadsheet rows are not reported")
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := ParseXLSX(strings.NewReader("Date,Supplier\n"))
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	table, err := Parse("shipments.CSV", strings.NewReader("A\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	table, err = Parse("book.xlsx", workbook(t, []any{"A"}, []any{"1"}))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = Parse("data.json", strings.NewReader("{}"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
