package sheet

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// maxXLSRows bounds how far a corrupt row count can make us walk.
const maxXLSRows = 1 << 20

// readXLS returns the cells of the first worksheet of a legacy workbook.
func readXLS(r io.ReadSeeker) (rows [][]string, err error) {
	// extrame/xls panics on some malformed BIFF streams.
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("malformed xls workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, ErrNoWorksheet
	}

	last := int(ws.MaxRow)
	if last > maxXLSRows {
		last = maxXLSRows
	}
	for i := 0; i <= last; i++ {
		row := rowAt(ws, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// rowAt returns row i, or nil when the sheet has no record for it.
// WorkSheet.Row dereferences missing rows.
func rowAt(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}
