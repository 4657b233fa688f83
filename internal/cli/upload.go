package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
	"github.com/spf13/cobra"
)

var (
	uploadWatch      string
	uploadNoProgress bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload documents to the workspace",
	Long: `Upload one or more files to the workspace.

Personal workspaces accept a limited number of documents; uploads past the
limit are refused before any data is sent. With --watch, files created in
the directory are uploaded as they appear until interrupted.

Examples:
  docsctl upload handbook.pdf
  docsctl upload a.pdf b.pdf --no-progress
  docsctl upload --watch ./inbox`,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadWatch, "watch", "w", "", "watch a directory and upload new files")
	uploadCmd.Flags().BoolVar(&uploadNoProgress, "no-progress", false, "disable the progress bar")
}

func runUpload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && uploadWatch == "" {
		return errors.New("nothing to upload: pass files or --watch <dir>")
	}

	console := notify.NewConsole(cmd.ErrOrStderr())
	ctrl := newController(console, nil)
	ctx := cmd.Context()
	if err := ctrl.Refetch(ctx); err != nil {
		return err
	}

	for _, path := range args {
		if err := uploadFile(ctx, ctrl, console, path); err != nil {
			return err
		}
	}

	if uploadWatch != "" {
		return watchDirectory(ctx, ctrl, console, uploadWatch)
	}
	return nil
}

// uploadFile uploads one file, with a progress bar on interactive terminals.
func uploadFile(ctx context.Context, ctrl *lifecycle.Controller, console *notify.Console, path string) error {
	if !ctrl.CanUpload() {
		console.Error("Upload failed", fmt.Sprintf("Personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments))
		return fmt.Errorf("upload %s: %w", path, quota.ErrQuotaExceeded)
	}

	req, err := lifecycle.NewUploadRequest(path, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if uploadNoProgress || !isInteractive() {
		return ctrl.Upload(ctx, req, f)
	}

	// Notifications are held back while the progress bar owns the terminal.
	queue := notify.NewQueue()
	quiet := newController(queue, nil)
	err = runUploadProgress(ctx, req.FileName, req.Size, f, func(ctx context.Context, body io.Reader) error {
		return quiet.Upload(ctx, req, body)
	})
	replay(queue, console)
	return err
}

// replay prints queued notifications to the console.
func replay(q *notify.Queue, console notify.Notifier) {
	for _, n := range q.Drain() {
		switch n.Kind {
		case notify.KindSuccess:
			console.Success(n.Message)
		case notify.KindError:
			console.Error(n.Title, n.Message)
		}
	}
}
