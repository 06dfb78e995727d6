package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var key, out string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a spreadsheet to the dashboard's CSV export",
		Long: `Read an .xlsx or .xls file the way the dashboard does and write it as
CSV, exactly as the section's download button would.

The default output file is <section>_data.csv. Use --out - for stdout.`,
		Example: `  assetops export --section compliance tracker.xlsx
  assetops export -s performance gen.xls --out - | head`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			return runExport(cmd, cc, key, args[0], out)
		},
	}

	addSectionFlag(cmd, &key)
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: <section>_data.csv, - for stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, cc *CommandContext, key, path, out string) error {
	sec, t, err := loadSheet(key, path)
	if err != nil {
		return err
	}

	if out == "-" {
		return t.WriteCSV(cmd.OutOrStdout())
	}
	if out == "" {
		out = sec.ExportFilename()
	}

	f, err := os.Create(out) //nolint:gosec // path comes from the command line
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	cc.Renderer.Success(fmt.Sprintf("Wrote %d rows to %s", t.Len(), out))
	return nil
}
