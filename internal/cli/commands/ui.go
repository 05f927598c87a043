package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/snowpark-explorer/internal/cli/config"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui"
)

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the explorer dashboard",
		Long: `Start a local web server with a two-tab dashboard listing the
user-defined functions and stored procedures of the configured schema.

Click a row to show the object's code and a column header to sort
both grids by it. Each page load queries the
warehouse again; the Refresh button reloads every open page.`,
		Example: `  # Start the dashboard on the default port
  snowpark-explorer ui

  # Listen on all interfaces without opening a browser
  snowpark-explorer ui --host 0.0.0.0 --port 3000 --open=false`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}

	cmd.Flags().Int("port", 0, fmt.Sprintf("Port to serve on (default %d)", config.DefaultPort))
	cmd.Flags().String("host", "", "Interface to listen on (default "+config.DefaultHost+")")
	cmd.Flags().Bool("open", true, "Open the dashboard in a browser")
	cmd.Flags().String("session-secret", "", "Cookie signing secret (random when unset)")

	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	uiCfg := cmdCtx.Cfg.GetUIConfig()
	target := cmdCtx.Cfg.Target

	server := ui.NewServer(ui.Config{
		Explorer:      cmdCtx.Explorer,
		Database:      target.Database,
		Schema:        target.Schema,
		Host:          uiCfg.Host,
		Port:          uiCfg.Port,
		SessionSecret: uiCfg.SessionSecret,
		Logger:        cmdCtx.Logger,
	})

	if err := cmdCtx.Cfg.ValidateCredentials(); err != nil {
		cmdCtx.Logger.Warn("warehouse credentials incomplete, the dashboard will show the error", "error", err)
	}

	if uiCfg.AutoOpen {
		go openBrowser(server.URL())
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Starting UI server on %s\n", server.URL())
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
