// Package lifecycle drives document mutations against the document service:
// training, deletion and upload, each followed by user notifications and,
// where needed, a refetch into the document store.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rumsan/docsctl/internal/client"
	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
	"github.com/rumsan/docsctl/internal/reconcile"
	"github.com/rumsan/docsctl/internal/store"
	"github.com/rumsan/docsctl/internal/tenant"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// Deps holds the Controller's collaborators.
type Deps struct {
	API        client.DocumentAPI
	Reconciler *reconcile.Reconciler
	Store      *store.Store
	Notifier   notify.Notifier
	Confirmer  Confirmer
	Tenant     tenant.Provider
	Logger     *slog.Logger
}

// Controller issues document mutations and reports their outcome.
// Independent operations are not serialized.
type Controller struct {
	api        client.DocumentAPI
	reconciler *reconcile.Reconciler
	store      *store.Store
	notifier   notify.Notifier
	confirmer  Confirmer
	tenant     tenant.Provider
	logger     *slog.Logger

	mu             sync.Mutex
	trainingID     string
	deletesPending int
}

// New creates a controller. Confirmer defaults to AlwaysConfirm.
func New(d Deps) *Controller {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	confirmer := d.Confirmer
	if confirmer == nil {
		confirmer = AlwaysConfirm
	}
	return &Controller{
		api:        d.API,
		reconciler: d.Reconciler,
		store:      d.Store,
		notifier:   d.Notifier,
		confirmer:  confirmer,
		tenant:     d.Tenant,
		logger:     logger.With("component", "lifecycle"),
	}
}

// =============================================================================
// TRAINING
// =============================================================================

// Train embeds a pending document, or un-embeds a trained one when isRetrain
// is set. The document's status is not patched locally; the next refetch
// shows the server's view.
func (c *Controller) Train(ctx context.Context, id, fileName string, isRetrain bool) error {
	loadingMsg, successMsg, op := "Training document...", "Document trained", "embed"
	if isRetrain {
		loadingMsg, successMsg, op = "Retraining document...", "Document retrained", "unembed"
	}

	h := c.notifier.Loading(loadingMsg)
	c.setTraining(id)
	defer func() {
		c.notifier.Dismiss(h)
		c.setTraining("")
	}()

	var err error
	if isRetrain {
		err = c.api.Unembed(ctx, id)
	} else {
		err = c.api.Embed(ctx, id)
	}
	if err != nil {
		title, message := ClassifyTrainError(err, fileName, isRetrain)
		c.logger.ErrorContext(ctx, "training failed", "op", op, "document", id, "error", err)
		c.notifier.Error(title, message)
		return fmt.Errorf("%s document: %w", op, err)
	}

	c.logger.InfoContext(ctx, "training requested", "op", op, "document", id)
	c.notifier.Success(successMsg)
	return nil
}

// Toggle trains a pending document and retrains a trained one.
func (c *Controller) Toggle(ctx context.Context, doc models.Document) error {
	return c.Train(ctx, doc.ID, doc.FileName, doc.Trained())
}

func (c *Controller) setTraining(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trainingID = id
}

// TrainingDocumentID returns the id of the document currently being trained.
func (c *Controller) TrainingDocumentID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trainingID, c.trainingID != ""
}

// IsTraining reports whether id is the document currently being trained.
func (c *Controller) IsTraining(id string) bool {
	current, ok := c.TrainingDocumentID()
	return ok && current == id
}

// =============================================================================
// DELETION
// =============================================================================

// DeletePrompt is the confirmation question asked before deleting fileName.
func DeletePrompt(fileName string) string {
	return fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", fileName)
}

// Delete asks for confirmation and then deletes the document. It reports
// whether a delete was attempted. A declined prompt makes no remote call and
// returns ErrDeclined.
func (c *Controller) Delete(ctx context.Context, id, fileName string) (bool, error) {
	if !c.confirmer.Confirm(DeletePrompt(fileName)) {
		c.logger.DebugContext(ctx, "delete declined", "document", id)
		return false, ErrDeclined
	}
	return true, c.DeleteConfirmed(ctx, id, fileName)
}

// DeleteConfirmed deletes a document the user already agreed to remove.
// The store is left as-is until the next refetch.
func (c *Controller) DeleteConfirmed(ctx context.Context, id, fileName string) error {
	h := c.notifier.Loading("Deleting document...")
	c.mu.Lock()
	c.deletesPending++
	c.mu.Unlock()
	defer func() {
		c.notifier.Dismiss(h)
		c.mu.Lock()
		c.deletesPending--
		c.mu.Unlock()
	}()

	if err := c.api.Delete(ctx, id); err != nil {
		message := err.Error()
		if message == "" {
			message = "Failed to delete document. Please try again."
		}
		c.logger.ErrorContext(ctx, "delete failed", "document", id, "file", fileName, "error", err)
		c.notifier.Error("Delete failed", message)
		return fmt.Errorf("delete document: %w", err)
	}

	c.logger.InfoContext(ctx, "document deleted", "document", id, "file", fileName)
	c.notifier.Success("Document deleted successfully")
	return nil
}

// DeletePending reports whether a delete is in flight.
func (c *Controller) DeletePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deletesPending > 0
}

// =============================================================================
// UPLOAD
// =============================================================================

// Upload validates req, re-checks the workspace quota, sends body to the
// service and refetches the document list on success.
func (c *Controller) Upload(ctx context.Context, req models.UploadRequest, body io.Reader) error {
	if err := req.Validate(); err != nil {
		c.notifier.Error("Upload failed", err.Error())
		return fmt.Errorf("validate upload: %w", err)
	}
	if err := quota.Check(c.tenant.IsPersonalWorkspace(), c.Count()); err != nil {
		c.notifier.Error("Upload failed", fmt.Sprintf("Personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments))
		return err
	}

	fields := make(map[string]string, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		fields[k] = v
	}
	if id := c.tenant.TenantID(); id != "" {
		fields["tenantId"] = id
	}

	h := c.notifier.Loading(fmt.Sprintf("Uploading %s...", req.FileName))
	err := c.api.Upload(ctx, body, client.UploadMetadata{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Fields:      fields,
	})
	c.notifier.Dismiss(h)
	if err != nil {
		c.logger.ErrorContext(ctx, "upload failed", "file", req.FileName, "error", err)
		c.notifier.Error("Upload failed", err.Error())
		return fmt.Errorf("upload document: %w", err)
	}

	c.logger.InfoContext(ctx, "document uploaded", "file", req.FileName, "size", req.Size)
	c.notifier.Success(fmt.Sprintf("%s uploaded successfully", req.FileName))
	// A failed refetch does not fail the upload.
	_ = c.Refetch(ctx)
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Refetch loads the document list and reconciles it into the store.
// Fetch errors leave the store untouched.
func (c *Controller) Refetch(ctx context.Context) error {
	raw, err := c.api.ListRaw(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "fetch documents failed", "error", err)
		return fmt.Errorf("fetch documents: %w", err)
	}
	outcome := c.reconciler.Reconcile(ctx, raw)
	c.logger.DebugContext(ctx, "documents refetched", "outcome", outcome.String())
	return nil
}

// Documents returns the documents to display: the cached snapshot when it
// is non-empty, remote otherwise.
func (c *Controller) Documents(remote []models.Document) []models.Document {
	return c.store.Effective(remote)
}

// Count is the number of documents the quota is checked against.
func (c *Controller) Count() int {
	return c.store.Len()
}

// CanUpload applies the quota policy to the active tenant.
func (c *Controller) CanUpload() bool {
	return quota.CanUpload(c.tenant.IsPersonalWorkspace(), c.Count())
}

// Tenant returns the tenant provider the controller was built with.
func (c *Controller) Tenant() tenant.Provider {
	return c.tenant
}
