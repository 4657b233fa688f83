package cli

import (
	"fmt"

	"github.com/rumsan/docsctl/internal/client"
	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train <document-id>",
	Short: "Train (embed) a document",
	Long: `Ask the service to embed a document so the agent can use it.

The status shown by 'docsctl list' changes once the service has finished.

Examples:
  docsctl train 6f1c2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain(cmd, args[0], false)
	},
}

var untrainCmd = &cobra.Command{
	Use:     "untrain <document-id>",
	Aliases: []string{"retrain"},
	Short:   "Remove a document's embedding",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain(cmd, args[0], true)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <document-id>",
	Short: "Train a pending document or untrain a trained one",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func runTrain(cmd *cobra.Command, id string, isRetrain bool) error {
	ctrl := newController(notify.NewConsole(cmd.ErrOrStderr()), nil)
	doc, err := findDocument(cmd, ctrl, id)
	if err != nil {
		return err
	}
	return ctrl.Train(cmd.Context(), doc.ID, doc.FileName, isRetrain)
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctrl := newController(notify.NewConsole(cmd.ErrOrStderr()), nil)
	doc, err := findDocument(cmd, ctrl, args[0])
	if err != nil {
		return err
	}
	return ctrl.Toggle(cmd.Context(), doc)
}

// findDocument refetches the list and looks up id. Unknown ids fall back to
// a bare document so the service decides whether it exists.
func findDocument(cmd *cobra.Command, ctrl *lifecycle.Controller, id string) (models.Document, error) {
	if err := ctrl.Refetch(cmd.Context()); err != nil {
		return models.Document{}, err
	}
	if doc, ok := docStore.Lookup(id); ok {
		return doc, nil
	}
	if cmd.Name() == toggleCmd.Name() {
		return models.Document{}, fmt.Errorf("document %s: %w", id, client.ErrNotFound)
	}
	logger.Debug("document not in list", "document", id)
	return models.Document{ID: id, FileName: id}, nil
}
