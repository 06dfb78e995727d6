package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/assetops/internal/cli/config"
)

// initFile is the layout of a generated assetops.yaml.
type initFile struct {
	Verbose bool   `yaml:"verbose"`
	Output  string `yaml:"output"`
	UI      initUI `yaml:"ui"`
}

type initUI struct {
	Port          int    `yaml:"port"`
	AutoOpen      bool   `yaml:"auto_open"`
	SessionSecret string `yaml:"session_secret,omitempty"`
	SessionTTL    string `yaml:"session_ttl"`
	SecureCookie  bool   `yaml:"secure_cookie"`
	MaxUploadMB   int    `yaml:"max_upload_mb"`
	Title         string `yaml:"title"`
	Caption       string `yaml:"caption"`
	Footer        string `yaml:"footer"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force, secret bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default assetops.yaml",
		Long: `Write an assetops.yaml holding every setting at its default value.

With --generate-secret the file also gets a random session secret, so
browser sessions survive server restarts.`,
		Example: `  # Initialize in current directory
  assetops init

  # Initialize elsewhere with a session secret
  assetops init deploy/ --generate-secret

  # Force overwrite existing config
  assetops init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cc := NewCommandContext(cmd)
			path, err := runInit(dir, force, secret)
			if err != nil {
				return err
			}

			r := cc.Renderer
			r.Success("Wrote " + path)
			r.Println("")
			r.Println("Next steps:")
			r.Println("  assetops serve      Start the dashboard")
			r.Println("  assetops summary    Check a spreadsheet from the terminal")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&secret, "generate-secret", false, "Include a random session secret")

	return cmd
}

func runInit(dir string, force, secret bool) (string, error) {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	data, err := defaultConfigYAML(secret)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func defaultConfigYAML(secret bool) ([]byte, error) {
	ui := config.DefaultUIConfig()
	file := initFile{
		Output: config.DefaultOutput,
		UI: initUI{
			Port:        ui.Port,
			AutoOpen:    ui.AutoOpen,
			SessionTTL:  ui.SessionTTL.String(),
			MaxUploadMB: ui.MaxUploadMB,
			Title:       ui.Title,
			Caption:     ui.Caption,
			Footer:      ui.Footer,
		},
	}
	if secret {
		file.UI.SessionSecret = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
