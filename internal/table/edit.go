package table

import "fmt"

// SetCell replaces the text of one cell and re-infers that column's kind.
func (t *Table) SetCell(row, col int, value string) error {
	if err := t.check(row, col); err != nil {
		return err
	}
	t.rows[row][col] = value
	t.infer(col)
	return nil
}

// AppendRow adds an empty row and returns its index.
func (t *Table) AppendRow() int {
	t.rows = append(t.rows, make([]string, len(t.columns)))
	return len(t.rows) - 1
}

// DeleteRow removes one row. Later rows shift up by one.
func (t *Table) DeleteRow(row int) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d: %w", row, ErrOutOfRange)
	}
	t.rows = append(t.rows[:row], t.rows[row+1:]...)
	t.inferAll()
	return nil
}
