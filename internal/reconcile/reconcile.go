// Package reconcile merges freshly fetched document payloads into the document store.
package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/store"
)

// Validator checks a raw list payload and returns the documents it contains.
type Validator interface {
	Validate(raw []byte) ([]models.Document, error)
}

// Outcome describes what a reconciliation did to the store.
type Outcome int

const (
	// Skipped means the payload carried no document list; the store was not touched.
	Skipped Outcome = iota
	// Validated means the payload passed validation and replaced the snapshot.
	Validated
	// FellBack means validation failed and the raw list replaced the snapshot.
	FellBack
)

func (o Outcome) String() string {
	switch o {
	case Validated:
		return "validated"
	case FellBack:
		return "fallback"
	default:
		return "skipped"
	}
}

// Reconciler validates fetched payloads and writes them into the store.
// Validation failures never propagate: the raw list is used instead so the
// view keeps rendering.
type Reconciler struct {
	validator Validator
	store     *store.Store
	logger    *slog.Logger
}

// New creates a reconciler writing into st.
func New(validator Validator, st *store.Store, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		validator: validator,
		store:     st,
		logger:    logger.With("component", "reconcile"),
	}
}

// Reconcile replaces the cached snapshot with the documents in raw.
func (r *Reconciler) Reconcile(ctx context.Context, raw []byte) Outcome {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		r.logger.WarnContext(ctx, "document payload is not a JSON object", "error", err)
		return Skipped
	}
	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.logger.DebugContext(ctx, "document payload has no data")
		return Skipped
	}

	docs, err := r.validator.Validate(raw)
	if err == nil {
		r.store.Replace(docs)
		r.logger.DebugContext(ctx, "documents reconciled", "count", len(docs))
		return Validated
	}

	r.logger.WarnContext(ctx, "failed to validate documents data", "error", err)
	fallback, decodeErr := decodeLenient(data)
	if decodeErr != nil {
		r.logger.ErrorContext(ctx, "raw document data is not a list, keeping cached snapshot", "error", decodeErr)
		return Skipped
	}
	r.store.Replace(fallback)
	r.logger.InfoContext(ctx, "using unvalidated documents", "count", len(fallback))
	return FellBack
}

// ReconcileResponse reconciles an already decoded response.
func (r *Reconciler) ReconcileResponse(ctx context.Context, resp models.DocumentListResponse) Outcome {
	raw, err := json.Marshal(resp)
	if err != nil {
		r.logger.ErrorContext(ctx, "marshal document response", "error", err)
		return Skipped
	}
	return r.Reconcile(ctx, raw)
}

// decodeLenient turns a JSON array into documents without rejecting anything:
// mistyped fields keep their JSON text (numbers are not reformatted), missing ones stay empty, and entries that
// are not objects are kept as empty documents so counts match the payload.
func decodeLenient(data []byte) ([]models.Document, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode document list: %w", err)
	}
	docs := make([]models.Document, 0, len(items))
	for _, item := range items {
		var fields map[string]any
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			docs = append(docs, models.Document{})
			continue
		}
		docs = append(docs, models.Document{
			ID:        stringField(fields, "id"),
			OrgID:     stringField(fields, "orgId"),
			FileName:  stringField(fields, "fileName"),
			URL:       stringField(fields, "url"),
			Status:    stringField(fields, "status"),
			CreatedAt: stringField(fields, "createdAt"),
		})
	}
	return docs, nil
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
