package commands

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/assetops/internal/cli/config"
	"github.com/leapstack-labs/assetops/internal/ui"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	NoBrowser bool
	Dev       bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the dashboard web server",
		Long: `Start a local web server hosting the asset management dashboard.

The dashboard has four sections (financial, performance, compliance and
operational). Each accepts an Excel upload, shows the table for editing,
computes summary metrics and exports the edited table as CSV.

Uploaded tables live in memory, per browser session, until the session has
been idle for ui.session_ttl or the server stops.`,
		Example: `  # Start on the default port
  assetops serve

  # Start on a custom port without opening a browser
  assetops serve --port 3000 --no-browser

  # Keep sessions valid across restarts
  ASSETOPS_UI__SESSION_SECRET=change-me assetops serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8501)")
	cmd.Flags().String("session-secret", "", "Cookie signing secret (default: random per start)")
	cmd.Flags().Duration("session-ttl", 0, "Evict sessions idle for this long (default: 12h)")
	cmd.Flags().Bool("secure-cookie", false, "Mark the session cookie Secure (only when served over HTTPS)")
	cmd.Flags().Int("max-upload-mb", 0, "Largest accepted upload in MB (default: 200)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Development mode: live reload on static asset changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	uiCfg := cc.Cfg.GetUIConfig()

	server := ui.NewServer(serverConfig(uiCfg, opts.Dev, cc))

	// Open browser if configured
	if uiCfg.AutoOpen && !opts.NoBrowser {
		go openBrowser(server.URL())
	}

	cc.Renderer.Printf("Starting dashboard on %s\n", server.URL())
	cc.Renderer.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

func serverConfig(uiCfg *config.UIConfig, dev bool, cc *CommandContext) ui.Config {
	return ui.Config{
		Port:           uiCfg.Port,
		Dev:            dev,
		SessionSecret:  uiCfg.SessionSecret,
		SessionTTL:     uiCfg.SessionTTL,
		SecureCookie:   uiCfg.SecureCookie,
		MaxUploadBytes: uiCfg.MaxUploadBytes(),
		Site: common.Site{
			Title:   uiCfg.Title,
			Caption: uiCfg.Caption,
			Footer:  uiCfg.Footer,
		},
		Logger: cc.Logger,
	}
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Run()
}
