package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndSum(t *testing.T) {
	tbl := New([]string{"v"}, [][]string{{"1"}, {"2"}, {""}, {"n/a"}, {"6"}})

	m, err := tbl.Mean("v")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m, 1e-9)

	s, err := tbl.Sum("v")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, s, 1e-9)
}

func TestMeanAndSum_NoValues(t *testing.T) {
	tbl := New([]string{"v"}, [][]string{{""}, {"text"}})

	m, err := tbl.Mean("v")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m))

	s, err := tbl.Sum("v")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestAggregates_MissingColumn(t *testing.T) {
	tbl := New([]string{"v"}, nil)

	_, err := tbl.Mean("nope")
	assert.ErrorIs(t, err, ErrNoColumn)
	_, err = tbl.Sum("nope")
	assert.ErrorIs(t, err, ErrNoColumn)
	_, err = tbl.RatioMean("v", "nope")
	assert.ErrorIs(t, err, ErrNoColumn)
	_, err = tbl.CountEqual("nope", "x")
	assert.ErrorIs(t, err, ErrNoColumn)
}

func TestRatioMean(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		check func(t *testing.T, got float64)
	}{
		{
			name: "simple",
			rows: [][]string{{"90", "100"}, {"110", "100"}},
			check: func(t *testing.T, got float64) {
				assert.InDelta(t, 1.0, got, 1e-9)
			},
		},
		{
			name: "skips rows with a missing side",
			rows: [][]string{{"50", "100"}, {"", "100"}, {"80", ""}},
			check: func(t *testing.T, got float64) {
				assert.InDelta(t, 0.5, got, 1e-9)
			},
		},
		{
			name: "zero over zero is skipped",
			rows: [][]string{{"0", "0"}, {"3", "4"}},
			check: func(t *testing.T, got float64) {
				assert.InDelta(t, 0.75, got, 1e-9)
			},
		},
		{
			name: "division by zero is infinite",
			rows: [][]string{{"5", "0"}, {"3", "4"}},
			check: func(t *testing.T, got float64) {
				assert.True(t, math.IsInf(got, 1))
			},
		},
		{
			name: "no rows",
			rows: nil,
			check: func(t *testing.T, got float64) {
				assert.True(t, math.IsNaN(got))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New([]string{"actual", "forecast"}, tt.rows)
			got, err := tbl.RatioMean("actual", "forecast")
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestCountEqual(t *testing.T) {
	tbl := New([]string{"Status"}, [][]string{
		{"Completed"}, {"Pending"}, {"completed"}, {"Completed"}, {""},
	})

	n, err := tbl.CountEqual("Status", "Completed")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFloat(t *testing.T) {
	tbl := New([]string{"v"}, [][]string{{"1.5"}, {"abc"}})

	f, ok := tbl.Float(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, ok = tbl.Float(1, 0)
	assert.False(t, ok)

	_, ok = tbl.Float(9, 0)
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" -1.5 ", -1.5, true},
		{"2.5e3", 2500, true},
		{"+7", 7, true},
		{"", 0, false},
		{"inf", 0, false},
		{"-Infinity", 0, false},
		{"NaN", 0, false},
		{"0x1p-2", 0, false},
		{"1e400", 0, false},
		{"1,000", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSum_IgnoresInfText(t *testing.T) {
	tbl := New([]string{"v"}, [][]string{{"1"}, {"inf"}, {"2"}})

	sum, err := tbl.Sum("v")
	require.NoError(t, err)
	assert.Equal(t, 3.0, sum)
}
