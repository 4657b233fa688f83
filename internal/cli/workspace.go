package cli

import (
	"fmt"

	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Show the active tenant and workspace",
	Args:  cobra.NoArgs,
	RunE:  runWorkspace,
}

func runWorkspace(cmd *cobra.Command, args []string) error {
	ctrl := newController(notify.NewConsole(cmd.ErrOrStderr()), nil)
	if err := ctrl.Refetch(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ws := tenantProfile.Workspace()
	personal := tenantProfile.IsPersonalWorkspace()

	fmt.Fprintf(out, "Tenant:    %s\n", tenantProfile.TenantID())
	if ws.Name != "" {
		fmt.Fprintf(out, "Workspace: %s\n", ws.Name)
	}
	fmt.Fprintf(out, "Personal:  %t\n", personal)
	fmt.Fprintf(out, "Documents: %d\n", ctrl.Count())
	if limit, ok := quota.Limit(personal); ok {
		fmt.Fprintf(out, "Quota:     %d/%d (upload allowed: %t)\n", ctrl.Count(), limit, ctrl.CanUpload())
	}
	if cfg.ProfilePath != "" {
		fmt.Fprintf(out, "Config:    %s\n", cfg.ProfilePath)
	}
	return nil
}
