// Package cli provides the command-line interface for docsctl.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rumsan/docsctl/internal/client"
	"github.com/rumsan/docsctl/internal/config"
	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/metrics"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/reconcile"
	"github.com/rumsan/docsctl/internal/schema"
	"github.com/rumsan/docsctl/internal/store"
	"github.com/rumsan/docsctl/internal/tenant"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "1.0.0"

	// Global flags
	verbose bool

	// Wired in PersistentPreRunE
	cfg           config.Config
	logger        *slog.Logger
	closeLog      func() error
	collector     *metrics.Collector
	apiClient     *client.Client
	docStore      *store.Store
	reconciler    *reconcile.Reconciler
	tenantProfile *tenant.Static
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docsctl",
	Short: "Manage the documents of a workspace",
	Long: `docsctl manages the documents of a tenant workspace on the document service.

Upload files, train (embed) or untrain them for the agent, delete them, and
browse everything in an interactive dashboard. Personal workspaces are
limited to a small number of documents.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		// The dashboard owns the terminal; log to the file only.
		logger, closeLog = config.SetupLogger(cfg.LogFile, cfg.LogLevel, cmd.Name() == dashboardCmd.Name())

		collector = metrics.NewCollector()
		apiClient = client.New(cfg.BaseURL,
			client.WithToken(cfg.Token),
			client.WithTenant(cfg.TenantID),
			client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			client.WithMetrics(collector),
			client.WithLogger(logger),
		)
		docStore = store.New()
		reconciler = reconcile.New(schema.NewDocumentListValidator(), docStore, logger)
		tenantProfile = tenant.NewStatic(cfg.TenantID, cfg.Workspace())

		// Workspace metadata is optional; configuration stays in effect when it is unavailable.
		if err := tenantProfile.Refresh(cmd.Context(), apiClient); err != nil {
			logger.Warn("using configured workspace", "tenant", cfg.TenantID, "error", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if verbose && collector != nil {
			printStats(cmd.ErrOrStderr(), collector.Snapshot())
		}
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// newController builds a lifecycle controller reporting to notifier.
func newController(notifier notify.Notifier, confirmer lifecycle.Confirmer) *lifecycle.Controller {
	return lifecycle.New(lifecycle.Deps{
		API:        apiClient,
		Reconciler: reconciler,
		Store:      docStore,
		Notifier:   notifier,
		Confirmer:  confirmer,
		Tenant:     tenantProfile,
		Logger:     logger,
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print request statistics after the command")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(untrainCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the docsctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "docsctl %s\n", Version)
	},
}
