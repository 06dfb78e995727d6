package section

import (
	"math"

	"github.com/leapstack-labs/assetops/internal/table"
)

// Metric is one computed, formatted summary value.
type Metric struct {
	Label string
	Value string
	Help  string
	Raw   float64
}

// MetricDef computes a metric when all Requires columns exist.
type MetricDef struct {
	Label    string
	Help     string
	Requires []string
	Compute  func(*table.Table) (float64, error)
	Format   func(float64) string
}

// Evaluate computes the metrics whose columns are present in t, in
// definition order. A nil table has no metrics.
func (s Section) Evaluate(t *table.Table) ([]Metric, error) {
	if t == nil {
		return nil, nil
	}
	var out []Metric
	for _, def := range s.Metrics {
		if !t.HasColumns(def.Requires...) {
			continue
		}
		v, err := def.Compute(t)
		if err != nil {
			return nil, err
		}
		out = append(out, Metric{
			Label: def.Label,
			Value: def.Format(v),
			Help:  def.Help,
			Raw:   v,
		})
	}
	return out, nil
}

func meanOf(col string) func(*table.Table) (float64, error) {
	return func(t *table.Table) (float64, error) {
		return t.Mean(col)
	}
}

func sumOf(col string) func(*table.Table) (float64, error) {
	return func(t *table.Table) (float64, error) {
		return t.Sum(col)
	}
}

func ratioOf(num, den string) func(*table.Table) (float64, error) {
	return func(t *table.Table) (float64, error) {
		return t.RatioMean(num, den)
	}
}

// shareOf is the fraction of rows whose col equals value. An empty table
// has no share.
func shareOf(col, value string) func(*table.Table) (float64, error) {
	return func(t *table.Table) (float64, error) {
		n, err := t.CountEqual(col, value)
		if err != nil {
			return 0, err
		}
		if t.Len() == 0 {
			return math.NaN(), nil
		}
		return float64(n) / float64(t.Len()), nil
	}
}

func scaled(k float64, f func(*table.Table) (float64, error)) func(*table.Table) (float64, error) {
	return func(t *table.Table) (float64, error) {
		v, err := f(t)
		if err != nil {
			return 0, err
		}
		return k * v, nil
	}
}
