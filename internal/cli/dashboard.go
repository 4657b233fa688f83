package cli

import (
	"errors"

	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/tui"
	"github.com/spf13/cobra"
)

var dashboardLive bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive document dashboard",
	Long: `Open the interactive dashboard: browse, train, delete and upload documents
from a single screen.

With --live, the dashboard listens for change events from the service and
refreshes the list whenever a document changes.

Examples:
  docsctl dashboard
  docsctl dashboard --live`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardLive, "live", false, "refresh on server change events")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return errors.New("dashboard requires an interactive terminal")
	}

	queue := notify.NewQueue()
	opts := tui.Options{
		Controller: newController(queue, nil),
		Queue:      queue,
		User:       tui.User{Name: cfg.UserName, Email: cfg.UserEmail},
		Version:    Version,
		MaxUpload:  cfg.MaxUploadBytes,
		Logger:     logger,
	}
	if dashboardLive {
		opts.Subscribe = apiClient.Subscribe
	}
	return tui.Run(cmd.Context(), opts)
}
