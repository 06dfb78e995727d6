// Package chart renders section line charts as SVG.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/table"
)

// ErrNotEnoughPoints is returned when no series has two plottable points.
var ErrNotEnoughPoints = errors.New("not enough data points to plot")

// Default canvas size in pixels.
const (
	DefaultWidth  = 900
	DefaultHeight = 420
)

// maxTicks caps category labels on the x axis.
const maxTicks = 12

var palette = []drawing.Color{chart.ColorBlue, chart.ColorOrange, chart.ColorGreen, chart.ColorRed}

// Options control the rendered canvas.
type Options struct {
	Width  int
	Height int
}

type xMode int

const (
	xCategory xMode = iota
	xNumber
	xTime
)

// LineSVG plots the spec's y columns against the first column of t.
func LineSVG(w io.Writer, t *table.Table, spec *section.ChartSpec, opts Options) error {
	if !spec.Available(t) {
		return fmt.Errorf("table lacks chart columns: %w", ErrNotEnoughPoints)
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}

	xCol := t.Columns()[0]
	mode := xCategory
	switch xCol.Kind {
	case table.KindTime:
		mode = xTime
	case table.KindInt, table.KindFloat:
		mode = xNumber
	}

	var (
		series []chart.Series
		lo, hi = math.Inf(1), math.Inf(-1)
	)
	for i, name := range spec.YColumns {
		s, ys := buildSeries(t, name, mode, i)
		if len(ys) < 2 {
			continue
		}
		series = append(series, s)
		for _, y := range ys {
			lo, hi = math.Min(lo, y), math.Max(hi, y)
		}
	}
	if len(series) == 0 {
		return ErrNotEnoughPoints
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  xAxis(t, xCol.Name, mode),
		YAxis:  chart.YAxis{Name: "MWh", Range: yRange(lo, hi)},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// yRange pads a flat series so go-chart does not split a zero-height axis
// into thousands of ticks. Other data keeps the automatic range.
func yRange(lo, hi float64) *chart.ContinuousRange {
	if hi > lo {
		return nil
	}
	pad := math.Abs(lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// buildSeries collects the plottable points of one y column. Rows with a
// missing x or y, or a non-finite y, are dropped.
func buildSeries(t *table.Table, name string, mode xMode, idx int) (chart.Series, []float64) {
	col := t.Index(name)
	style := chart.Style{
		StrokeColor: palette[idx%len(palette)],
		StrokeWidth: 2,
	}

	var (
		xs    []float64
		times []time.Time
		ys    []float64
	)
	for r := 0; r < t.Len(); r++ {
		y, ok := t.Float(r, col)
		if !ok || math.IsInf(y, 0) {
			continue
		}
		switch mode {
		case xTime:
			cell, _ := t.Cell(r, 0)
			ts, ok := table.ParseTime(cell)
			if !ok {
				continue
			}
			times = append(times, ts)
		case xNumber:
			x, ok := t.Float(r, 0)
			if !ok {
				continue
			}
			xs = append(xs, x)
		default:
			xs = append(xs, float64(r))
		}
		ys = append(ys, y)
	}

	if mode == xTime {
		return chart.TimeSeries{Name: name, XValues: times, YValues: ys, Style: style}, ys
	}
	return chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: style}, ys
}

func xAxis(t *table.Table, name string, mode xMode) chart.XAxis {
	axis := chart.XAxis{Name: name}
	switch mode {
	case xTime:
		axis.ValueFormatter = chart.TimeDateValueFormatter
	case xCategory:
		axis.Ticks = categoryTicks(t)
	}
	return axis
}

// categoryTicks labels row positions with the first column's text, thinning
// the labels so at most maxTicks are drawn.
func categoryTicks(t *table.Table) []chart.Tick {
	n := t.Len()
	step := 1
	if n > maxTicks {
		step = (n + maxTicks - 1) / maxTicks
	}
	ticks := make([]chart.Tick, 0, n/step+1)
	for r := 0; r < n; r += step {
		label, _ := t.Cell(r, 0)
		ticks = append(ticks, chart.Tick{Value: float64(r), Label: label})
	}
	return ticks
}
