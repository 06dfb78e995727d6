package table

import (
	"fmt"
	"math"
)

// Float returns the numeric value of a cell and whether it had one.
func (t *Table) Float(row, col int) (float64, bool) {
	if t.check(row, col) != nil {
		return 0, false
	}
	return ParseNumber(t.rows[row][col])
}

// Values returns the numeric cells of a column, skipping missing and
// non-numeric cells.
func (t *Table) Values(name string) ([]float64, error) {
	col := t.Index(name)
	if col < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoColumn)
	}
	out := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		if f, ok := ParseNumber(row[col]); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Mean averages the numeric cells of a column. A column without numeric
// cells has a NaN mean.
func (t *Table) Mean(name string) (float64, error) {
	vals, err := t.Values(name)
	if err != nil {
		return 0, err
	}
	return mean(vals), nil
}

// Sum adds the numeric cells of a column. A column without numeric cells
// sums to zero.
func (t *Table) Sum(name string) (float64, error) {
	vals, err := t.Values(name)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return total, nil
}

// RatioMean averages num/den row by row. Rows missing either side are
// skipped, as are 0/0 rows. A non-zero numerator over zero contributes an
// infinity, which carries into the mean.
func (t *Table) RatioMean(num, den string) (float64, error) {
	ni, di := t.Index(num), t.Index(den)
	if ni < 0 {
		return 0, fmt.Errorf("%q: %w", num, ErrNoColumn)
	}
	if di < 0 {
		return 0, fmt.Errorf("%q: %w", den, ErrNoColumn)
	}
	quotients := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		n, ok := ParseNumber(row[ni])
		if !ok {
			continue
		}
		d, ok := ParseNumber(row[di])
		if !ok {
			continue
		}
		q := n / d
		if math.IsNaN(q) {
			continue
		}
		quotients = append(quotients, q)
	}
	return mean(quotients), nil
}

// CountEqual counts the cells of a column whose text equals value exactly.
func (t *Table) CountEqual(name, value string) (int, error) {
	col := t.Index(name)
	if col < 0 {
		return 0, fmt.Errorf("%q: %w", name, ErrNoColumn)
	}
	n := 0
	for _, row := range t.rows {
		if row[col] == value {
			n++
		}
	}
	return n, nil
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}
