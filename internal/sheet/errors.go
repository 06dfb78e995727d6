package sheet

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the file extension is neither .xlsx nor .xls.
var ErrUnsupportedFormat = errors.New("unsupported file format (expected .xlsx or .xls)")

// ErrEmptySheet indicates the first worksheet has no header row.
var ErrEmptySheet = errors.New("worksheet is empty")

// ErrNoWorksheet indicates the workbook has no worksheets at all.
var ErrNoWorksheet = errors.New("no worksheet found")

// ParseError wraps every failure to turn an upload into a table.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(filename string, err error) *ParseError {
	return &ParseError{Filename: filename, Err: err}
}
