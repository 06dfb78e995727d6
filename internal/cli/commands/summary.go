package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/assetops/internal/cli/output"
	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/table"
)

// SummaryJSON is the JSON shape of the summary command.
type SummaryJSON struct {
	Section string          `json:"section"`
	File    string          `json:"file"`
	Rows    int             `json:"rows"`
	Columns []ColumnJSON    `json:"columns"`
	Metrics []MetricSummary `json:"metrics"`
}

// ColumnJSON describes one column.
type ColumnJSON struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// MetricSummary is one formatted metric.
type MetricSummary struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Help  string `json:"help,omitempty"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print the metrics of a spreadsheet without starting the server",
		Long: `Read an .xlsx or .xls file the way the dashboard does and print the
section's metrics and the inferred column types.

Metrics whose columns are missing from the file are skipped.`,
		Example: `  # Financial metrics as a terminal table
  assetops summary --section financial finance.xlsx

  # Markdown for a report
  assetops summary -s operational outages.xls -o markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			return runSummary(cc, key, args[0])
		},
	}

	addSectionFlag(cmd, &key)

	return cmd
}

func runSummary(cc *CommandContext, key, path string) error {
	sec, t, err := loadSheet(key, path)
	if err != nil {
		return err
	}
	cc.Logger.Debug("sheet loaded", slog.String("file", path), slog.Int("rows", t.Len()))

	metrics, err := sec.Evaluate(t)
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(buildSummaryJSON(sec, path, t, metrics))
	}

	r.Header(1, sec.Icon+" "+sec.Header)
	r.Printf("%s: %d rows, %d columns\n\n", path, t.Len(), t.Width())

	if len(metrics) == 0 {
		r.Warning("no metrics: the file lacks the columns this section summarises")
	} else {
		r.Header(2, "Metrics")
		rows := make([][]string, len(metrics))
		for i, m := range metrics {
			rows[i] = []string{m.Label, m.Value}
		}
		r.Table([]string{"Metric", "Value"}, rows)
		r.Println("")
	}

	r.Header(2, "Columns")
	cols := t.Columns()
	rows := make([][]string, len(cols))
	for i, c := range cols {
		rows[i] = []string{strconv.Itoa(i + 1), c.Name, c.Kind.String()}
	}
	r.Table([]string{"#", "Column", "Type"}, rows)

	return nil
}

func buildSummaryJSON(sec section.Section, path string, t *table.Table, metrics []section.Metric) SummaryJSON {
	out := SummaryJSON{
		Section: string(sec.Key),
		File:    path,
		Rows:    t.Len(),
		Columns: make([]ColumnJSON, 0, t.Width()),
		Metrics: make([]MetricSummary, 0, len(metrics)),
	}
	for _, c := range t.Columns() {
		out.Columns = append(out.Columns, ColumnJSON{Name: c.Name, Kind: c.Kind.String()})
	}
	for _, m := range metrics {
		out.Metrics = append(out.Metrics, MetricSummary{Label: m.Label, Value: m.Value, Help: m.Help})
	}
	return out
}
