package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the workspace's documents",
	Long: `List the documents of the active workspace with their upload date and
training status. Personal workspaces also show how many of the allowed
documents are in use.

Examples:
  docsctl list
  DOCSCTL_TENANT_ID=acme docsctl list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctrl := newController(notify.NewConsole(cmd.ErrOrStderr()), nil)
	if err := ctrl.Refetch(cmd.Context()); err != nil {
		return err
	}

	printDocuments(cmd.OutOrStdout(), ctrl.Documents(nil), ctrl)
	return nil
}

// printDocuments renders the document table and the quota badge.
func printDocuments(w io.Writer, docs []models.Document, ctrl *lifecycle.Controller) {
	personal := ctrl.Tenant().IsPersonalWorkspace()
	if badge := quotaBadge(personal, len(docs)); badge != "" {
		fmt.Fprintln(w, badge)
	}

	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents uploaded yet.")
		return
	}

	fmt.Fprintln(w, documentTable(docs, ctrl.IsTraining))
	if !quota.CanUpload(personal, len(docs)) {
		fmt.Fprintln(w, hintStyle.Render(fmt.Sprintf("Upload disabled: personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments)))
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	trainedStyle = cellStyle.Foreground(lipgloss.Color("#00D787"))
	pendingStyle = cellStyle.Foreground(lipgloss.Color("#FFAF00"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

// documentTable renders DATE / FILE NAME / STATUS / ID rows.
func documentTable(docs []models.Document, training func(id string) bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DATE", "FILE NAME", "STATUS", "ID").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(docs) {
				if docs[row].Trained() {
					return trainedStyle
				}
				return pendingStyle
			}
			return cellStyle
		})

	for _, d := range docs {
		t.Row(models.FormatDate(d.CreatedAt), models.DisplayName(d.FileName), statusLabel(d, training(d.ID)), d.ID)
	}
	return t.Render()
}

func statusLabel(d models.Document, training bool) string {
	switch {
	case training:
		return "Training..."
	case d.Trained():
		return "Trained"
	default:
		return "Pending"
	}
}

// quotaBadge renders "n/2 documents" for personal workspaces, empty otherwise.
func quotaBadge(personal bool, count int) string {
	limit, ok := quota.Limit(personal)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d/%d documents", count, limit)
}
