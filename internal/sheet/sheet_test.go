package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/assetops/internal/table"
)

// workbook builds an in-memory .xlsx whose first sheet holds rows.
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRead_XLSX(t *testing.T) {
	data := workbook(t, [][]any{
		{"Project", "RSCR", "DSCR", "Cash Flow"},
		{"Alpha", 1.25, 1.5, 1000},
		{"Beta", 1.75, 2.5, 2500},
	})

	tbl, err := Read(bytes.NewReader(data), "financial.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"Project", "RSCR", "DSCR", "Cash Flow"}, tbl.Header())
	assert.Equal(t, 2, tbl.Len())

	cols := tbl.Columns()
	assert.Equal(t, table.KindString, cols[0].Kind)
	assert.Equal(t, table.KindFloat, cols[1].Kind)
	assert.Equal(t, table.KindInt, cols[3].Kind)

	v, err := tbl.Cell(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "2500", v)

	m, err := tbl.Mean("RSCR")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, m, 1e-9)
}

func TestRead_SkipsBlankRowsAndNamesColumns(t *testing.T) {
	data := workbook(t, [][]any{
		{nil, nil},
		{"Status", nil, "Status"},
		{"Completed", "x", "y"},
		{nil, nil, nil},
		{"Pending", nil, nil},
	})

	tbl, err := Read(bytes.NewReader(data), "UPPER.XLSX")
	require.NoError(t, err)

	assert.Equal(t, []string{"Status", "Unnamed: 1", "Status.1"}, tbl.Header())
	assert.Equal(t, 2, tbl.Len())

	row, err := tbl.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pending", "", ""}, row)
}

func TestRead_XLS(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "generation.xls"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	tbl, err := Read(f, "generation.xls")
	require.NoError(t, err)

	assert.Equal(t, []string{"Site", "Output (MWh)", "Availability (%)"}, tbl.Header())
	// Row 4 of the sheet follows a row with no record at all.
	require.Equal(t, 3, tbl.Len())

	tests := []struct {
		row  int
		want []string
	}{
		{0, []string{"North Ridge", "1500", "97.25"}},
		{1, []string{"South Bay", "2250", "98.5"}},
		{2, []string{"East Flats", "980", "99"}},
	}
	for _, tt := range tests {
		got, err := tbl.Row(tt.row)
		require.NoError(t, err)
		// Output carries a "#,##0" format and Availability "#,##0.00"; neither
		// may show up in the cell text.
		assert.Equal(t, tt.want, got)
	}

	cols := tbl.Columns()
	assert.Equal(t, table.KindString, cols[0].Kind)
	assert.Equal(t, table.KindInt, cols[1].Kind)
	assert.Equal(t, table.KindFloat, cols[2].Kind)

	sum, err := tbl.Sum("Output (MWh)")
	require.NoError(t, err)
	assert.InDelta(t, 4730, sum, 1e-9)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		wantErr  error
		wantText string
	}{
		{
			name:     "unsupported extension",
			data:     []byte("a,b\n1,2\n"),
			filename: "data.csv",
			wantErr:  ErrUnsupportedFormat,
		},
		{
			name:     "empty workbook",
			data:     workbook(t, nil),
			filename: "empty.xlsx",
			wantErr:  ErrEmptySheet,
		},
		{
			name:     "not a zip",
			data:     []byte("definitely not a spreadsheet"),
			filename: "broken.xlsx",
			wantText: "failed to open workbook",
		},
		{
			name:     "not a biff stream",
			data:     []byte("definitely not a spreadsheet"),
			filename: "broken.xls",
			wantText: "broken.xls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tt.data), tt.filename)
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.filename, perr.Filename)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantText != "" {
				assert.True(t, strings.Contains(err.Error(), tt.wantText), "error %q should mention %q", err, tt.wantText)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("report.XLS")
	require.NoError(t, err)
	assert.Equal(t, FormatXLS, f)

	f, err = DetectFormat("dir.v2/report.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = DetectFormat("report")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPickCell(t *testing.T) {
	assert.Equal(t, "1234.5", pickCell("$1,234.50", "1234.5"))
	assert.Equal(t, "2024-03-01", pickCell("2024-03-01", "45352"))
	assert.Equal(t, "TRUE", pickCell("true", "1"))
	assert.Equal(t, "Completed", pickCell("Completed", "Completed"))
}
