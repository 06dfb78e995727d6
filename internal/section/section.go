// Package section defines the four dashboard sections and the metrics each
// one derives from its uploaded table.
package section

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/assetops/internal/table"
)

// ErrUnknownSection is returned by Lookup for keys outside the registry.
var ErrUnknownSection = errors.New("unknown section")

// Key identifies a section and its table within a session.
type Key string

// Section keys in navigation order.
const (
	Financial   Key = "financial"
	Performance Key = "performance"
	Compliance  Key = "compliance"
	Operational Key = "operational"
)

// Section describes the copy, metrics and chart of one dashboard area.
type Section struct {
	Key         Key
	Label       string // sidebar entry
	Icon        string
	Header      string
	UploadLabel string
	Loaded      string // flash shown after a successful upload
	ErrorPrefix string // flash prefix when the upload fails to parse
	EmptyInfo   string // shown while no table is loaded
	GridIcon    string
	GridTitle   string
	ExportLabel string
	Metrics     []MetricDef
	Chart       *ChartSpec
}

// ExportFilename is the download name of the CSV export.
func (s Section) ExportFilename() string {
	return string(s.Key) + "_data.csv"
}

// ChartSpec describes a line chart: the first column against YColumns.
type ChartSpec struct {
	Title    string
	YColumns []string
}

// Available reports whether t has the columns the chart plots.
func (c *ChartSpec) Available(t *table.Table) bool {
	return c != nil && t != nil && t.Width() > 0 && t.HasColumns(c.YColumns...)
}

var registry = []Section{
	{
		Key:         Financial,
		Label:       "Financial",
		Icon:        "💵",
		Header:      "Financial Analysis & Support",
		UploadLabel: "Upload Financial Data (Excel)",
		Loaded:      "✅ File uploaded and saved in memory.",
		ErrorPrefix: "❌ Could not read file",
		EmptyInfo:   "Upload a financial Excel file to get started.",
		GridIcon:    "📊",
		GridTitle:   "Edit Financial Table",
		ExportLabel: "⬇️ Download Edited Financial Data as CSV",
		Metrics: []MetricDef{
			{
				Label:    "Avg RSCR",
				Help:     "Reserve Service Coverage Ratio",
				Requires: []string{"RSCR", "DSCR"},
				Compute:  meanOf("RSCR"),
				Format:   fixed(2),
			},
			{
				Label:    "Avg DSCR",
				Help:     "Debt Service Coverage Ratio",
				Requires: []string{"RSCR", "DSCR"},
				Compute:  meanOf("DSCR"),
				Format:   fixed(2),
			},
			{
				Label:    "Total Cash Flow",
				Help:     "Total project-level cash flow",
				Requires: []string{"Cash Flow"},
				Compute:  sumOf("Cash Flow"),
				Format:   currency,
			},
		},
	},
	{
		Key:         Performance,
		Label:       "Performance",
		Icon:        "📈",
		Header:      "Performance Monitoring Support",
		UploadLabel: "Upload Performance Data (Excel)",
		Loaded:      "✅ File uploaded and saved in memory.",
		ErrorPrefix: "❌ Could not read file",
		EmptyInfo:   "Upload an Excel file to view generation performance.",
		GridIcon:    "📊",
		GridTitle:   "Edit Generation Data",
		ExportLabel: "⬇️ Download Edited Performance Data as CSV",
		Metrics: []MetricDef{
			{
				Label:    "Average Forecast Accuracy",
				Help:     "Higher is better. 100% = actual matches forecast.",
				Requires: []string{ActualGeneration, ForecastGeneration},
				Compute:  scaled(100, ratioOf(ActualGeneration, ForecastGeneration)),
				Format:   percent(1),
			},
		},
		Chart: &ChartSpec{
			Title:    "Actual vs Forecasted",
			YColumns: []string{ActualGeneration, ForecastGeneration},
		},
	},
	{
		Key:         Compliance,
		Label:       "Compliance",
		Icon:        "📋",
		Header:      "Contract & Regulatory Compliance",
		UploadLabel: "Upload Compliance Tracker (Excel)",
		Loaded:      "✅ Compliance tracker loaded and stored.",
		ErrorPrefix: "❌ Error reading file",
		EmptyInfo:   "Upload an Excel file to track compliance deadlines.",
		GridIcon:    "📝",
		GridTitle:   "Edit Compliance Items",
		ExportLabel: "⬇️ Download Edited Compliance Data as CSV",
		Metrics: []MetricDef{
			{
				Label:    "Completion Rate",
				Help:     "Percentage of compliance tasks marked as Completed.",
				Requires: []string{"Status"},
				Compute:  scaled(100, shareOf("Status", "Completed")),
				Format:   percent(1),
			},
		},
	},
	{
		Key:         Operational,
		Label:       "Operational",
		Icon:        "⚙️",
		Header:      "Operational Awareness",
		UploadLabel: "Upload Outage & Availability Data (Excel)",
		Loaded:      "✅ Operational data uploaded and saved.",
		ErrorPrefix: "❌ Error reading file",
		EmptyInfo:   "Upload outage and availability data to track operations.",
		GridIcon:    "🔧",
		GridTitle:   "Edit Outage Records",
		ExportLabel: "⬇️ Download Edited Operational Data as CSV",
		Metrics: []MetricDef{
			{
				Label:    "Avg Availability",
				Help:     "Average operational availability across all entries.",
				Requires: []string{"Availability (%)"},
				Compute:  meanOf("Availability (%)"),
				Format:   percent(2),
			},
			{
				Label:    "Total Downtime",
				Help:     "Sum of all recorded outages.",
				Requires: []string{"Duration (hours)"},
				Compute:  sumOf("Duration (hours)"),
				Format:   hours,
			},
		},
	},
}

// Column names used by the performance section.
const (
	ActualGeneration   = "Actual Generation (MWh)"
	ForecastGeneration = "Forecasted Generation (MWh)"
)

// All returns the sections in navigation order.
func All() []Section {
	out := make([]Section, len(registry))
	copy(out, registry)
	return out
}

// Default is the section shown at the root URL.
func Default() Section {
	return registry[0]
}

// Lookup finds a section by key.
func Lookup(key string) (Section, error) {
	for _, s := range registry {
		if string(s.Key) == key {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%q: %w", key, ErrUnknownSection)
}

// Keys returns the section keys as strings, for flag completion and errors.
func Keys() []string {
	out := make([]string, len(registry))
	for i, s := range registry {
		out[i] = string(s.Key)
	}
	return out
}
