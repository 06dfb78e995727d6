package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/assetops/internal/table"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the cells of the first worksheet. Numbers come from the
// raw cell values so number formats such as "$#,##0" do not leak into the
// data, except where the displayed value is a date.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}
	name := sheets[0]

	shown, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	rows := make([][]string, len(shown))
	for i, row := range shown {
		out := make([]string, len(row))
		for j, cell := range row {
			out[j] = pickCell(cell, cellAt(raw, i, j))
		}
		rows[i] = out
	}
	return rows, nil
}

// pickCell chooses between the formatted and raw text of one cell.
func pickCell(shown, raw string) string {
	if _, ok := table.ParseNumber(raw); !ok {
		return shown
	}
	if ts, ok := table.ParseTime(shown); ok {
		return table.FormatTime(ts)
	}
	if _, ok := table.ParseBool(shown); ok {
		return strings.ToUpper(shown)
	}
	return raw
}

func cellAt(rows [][]string, i, j int) string {
	if i >= len(rows) || j >= len(rows[i]) {
		return ""
	}
	return rows[i][j]
}
