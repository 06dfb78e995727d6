// Package table provides the in-memory table behind each dashboard section.
//
// A Table keeps raw cell text exactly as it was read or typed, and infers a
// Kind for every column from its non-empty cells. Aggregates parse cells on
// demand, so an edit never loses the user's original text.
package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrOutOfRange is returned when a row or column index does not exist.
var ErrOutOfRange = errors.New("index out of range")

// ErrNoColumn is returned when a named column does not exist.
var ErrNoColumn = errors.New("no such column")

// Kind is the inferred type of a column.
type Kind int

// Column kinds, ordered from most to least specific.
const (
	KindFloat Kind = iota // also used for columns with no values at all
	KindInt
	KindBool
	KindTime
	KindString
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "string"
	}
}

// Numeric reports whether aggregates make sense for the kind.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Column describes one column of a table.
type Column struct {
	Name string
	Kind Kind
}

// Table is a rectangular grid of cell strings with named columns.
// It is not safe for concurrent use; callers serialize access.
type Table struct {
	columns []Column
	rows    [][]string
}

// New creates a table from a header and rows. Rows shorter than the header
// are padded with empty cells and longer rows are truncated.
func New(header []string, rows [][]string) *Table {
	t := &Table{
		columns: make([]Column, len(header)),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, name := range header {
		t.columns[i] = Column{Name: name}
	}
	for _, row := range rows {
		t.rows = append(t.rows, t.normalize(row))
	}
	t.inferAll()
	return t
}

func (t *Table) normalize(row []string) []string {
	out := make([]string, len(t.columns))
	copy(out, row)
	return out
}

// Columns returns a copy of the column descriptors.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether every named column exists.
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if t.Index(name) < 0 {
			return false
		}
	}
	return true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Cell returns the raw text at (row, col).
func (t *Table) Cell(row, col int) (string, error) {
	if err := t.check(row, col); err != nil {
		return "", err
	}
	return t.rows[row][col], nil
}

// Row returns a copy of one row.
func (t *Table) Row(row int) ([]string, error) {
	if row < 0 || row >= len(t.rows) {
		return nil, fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	out := make([]string, len(t.columns))
	copy(out, t.rows[row])
	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{
		columns: t.Columns(),
		rows:    make([][]string, len(t.rows)),
	}
	for i, row := range t.rows {
		c.rows[i] = append([]string(nil), row...)
	}
	return c
}

func (t *Table) check(row, col int) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	if col < 0 || col >= len(t.columns) {
		return fmt.Errorf("column %d: %w", col, ErrOutOfRange)
	}
	return nil
}

func (t *Table) inferAll() {
	for i := range t.columns {
		t.infer(i)
	}
}

// infer sets the kind of column col from its non-empty cells.
func (t *Table) infer(col int) {
	var kind Kind
	seen := false
	allInt, allNum, allBool, allTime := true, true, true, true
	for _, row := range t.rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allNum {
			if _, ok := ParseNumber(v); !ok {
				allNum = false
			}
		}
		if allBool {
			if _, ok := ParseBool(v); !ok {
				allBool = false
			}
		}
		if allTime {
			if _, ok := ParseTime(v); !ok {
				allTime = false
			}
		}
	}
	switch {
	case !seen:
		kind = KindFloat
	case allInt:
		kind = KindInt
	case allNum:
		kind = KindFloat
	case allBool:
		kind = KindBool
	case allTime:
		kind = KindTime
	default:
		kind = KindString
	}
	t.columns[col].Kind = kind
}

// ParseNumber parses a decimal numeric cell. Empty cells and text such as
// "inf", "NaN" or hex floats are not numbers, and neither is a value that
// overflows float64.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0123456789+-.eE") != "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseBool accepts the spellings spreadsheets use for booleans.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"1/2/06 15:04",
	"Jan 2, 2006",
	"2-Jan-06",
	"02-Jan-2006",
}

// ParseTime parses the date layouts commonly produced by spreadsheet number
// formats.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// FormatTime renders a time the way the CSV export writes dates.
func FormatTime(ts time.Time) string {
	if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 {
		return ts.Format("2006-01-02")
	}
	return ts.Format("2006-01-02 15:04:05")
}
