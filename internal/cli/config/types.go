// Package config provides configuration management for the assetops CLI.
package config

import "time"

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port          int           `koanf:"port"`
	AutoOpen      bool          `koanf:"auto_open"`
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	SecureCookie  bool          `koanf:"secure_cookie"` // set behind an HTTPS proxy
	MaxUploadMB   int           `koanf:"max_upload_mb"`
	Title         string        `koanf:"title"`
	Caption       string        `koanf:"caption"`
	Footer        string        `koanf:"footer"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:        DefaultPort,
		AutoOpen:    true,
		SessionTTL:  DefaultSessionTTL,
		MaxUploadMB: DefaultMaxUploadMB,
		Title:       DefaultTitle,
		Caption:     DefaultCaption,
		Footer:      DefaultFooter,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	if ui.MaxUploadMB <= 0 {
		ui.MaxUploadMB = DefaultMaxUploadMB
	}
	if ui.Title == "" {
		ui.Title = DefaultTitle
	}
	return ui
}

// MaxUploadBytes converts the configured upload limit to bytes.
func (c *UIConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool      `koanf:"verbose"`
	OutputFormat string    `koanf:"output"`
	UI           *UIConfig `koanf:"ui"`
}

// Default configuration values.
const (
	DefaultPort        = 8501
	DefaultSessionTTL  = 12 * time.Hour
	DefaultMaxUploadMB = 200
	DefaultTitle       = "Asset Operations Dashboard"
	DefaultCaption     = "Upload, edit and export asset management data"
	DefaultFooter      = "Asset Operations Dashboard"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"assetops.yaml", "assetops.yml"}
