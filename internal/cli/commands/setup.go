package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/assetops/internal/cli/config"
	"github.com/leapstack-labs/assetops/internal/cli/output"
	"github.com/leapstack-labs/assetops/internal/section"
	"github.com/leapstack-labs/assetops/internal/sheet"
	"github.com/leapstack-labs/assetops/internal/table"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded config.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration, or the defaults when no
// config was loaded (commands run outside the root command in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		UI:           config.DefaultUIConfig(),
	}
}

// addSectionFlag registers the required --section flag with completion.
func addSectionFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "section", "s", "", "Dashboard section (financial|performance|compliance|operational)")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.RegisterFlagCompletionFunc("section", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return section.Keys(), cobra.ShellCompDirectiveNoFileComp
	})
}

// loadSheet reads a spreadsheet file for a section.
func loadSheet(key, path string) (section.Section, *table.Table, error) {
	sec, err := section.Lookup(key)
	if err != nil {
		return section.Section{}, nil, fmt.Errorf("%w (want one of %v)", err, section.Keys())
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return sec, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := sheet.Read(f, path)
	if err != nil {
		return sec, nil, err
	}
	return sec, t, nil
}
