package cli

import (
	"errors"
	"fmt"

	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/spf13/cobra"
)

var (
	deleteForce bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a document from the workspace",
	Long: `Delete a document from the workspace.

Requires confirmation unless --force is used. The document list is not
changed locally; run 'docsctl list' to see the service's view.

Examples:
  docsctl delete 6f1c2a
  docsctl delete 6f1c2a --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	var confirmer lifecycle.Confirmer = lifecycle.AlwaysConfirm
	if !deleteForce {
		confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	ctrl := newController(notify.NewConsole(cmd.ErrOrStderr()), confirmer)

	doc, err := findDocument(cmd, ctrl, id)
	if err != nil {
		return err
	}

	if _, err := ctrl.Delete(cmd.Context(), doc.ID, doc.FileName); err != nil {
		if errors.Is(err, lifecycle.ErrDeclined) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		return err
	}
	return nil
}
