// Package tenant tracks the active tenant and its workspace metadata.
package tenant

import (
	"context"
	"fmt"
	"sync"

	"github.com/rumsan/docsctl/internal/models"
)

// Provider answers which tenant is active and whether it is the caller's
// personal workspace.
type Provider interface {
	TenantID() string
	Workspace() models.Workspace
	IsPersonalWorkspace() bool
}

// WorkspaceFetcher loads workspace metadata from the document service.
type WorkspaceFetcher interface {
	GetWorkspace(ctx context.Context, tenantID string) (models.Workspace, error)
}

// Static is a Provider seeded from configuration that can be refreshed
// from the service. Safe for concurrent use.
type Static struct {
	mu     sync.RWMutex
	tenant models.Tenant
}

// NewStatic creates a provider for tenantID with the given seed workspace.
func NewStatic(tenantID string, ws models.Workspace) *Static {
	return &Static{tenant: models.Tenant{TenantID: tenantID, Workspace: ws}}
}

func (s *Static) TenantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenant.TenantID
}

func (s *Static) Workspace() models.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenant.Workspace
}

func (s *Static) IsPersonalWorkspace() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenant.IsPersonalWorkspace()
}

// Set replaces the workspace metadata.
func (s *Static) Set(ws models.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenant.Workspace = ws
}

// Refresh fetches the workspace for the active tenant and stores it.
// Fields the service leaves empty keep their configured values.
func (s *Static) Refresh(ctx context.Context, f WorkspaceFetcher) error {
	id := s.TenantID()
	ws, err := f.GetWorkspace(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch workspace: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.tenant.Workspace
	if ws.Slug == "" {
		ws.Slug = current.Slug
	}
	if ws.Name == "" {
		ws.Name = current.Name
	}
	if ws.Personal == nil {
		ws.Personal = current.Personal
	}
	s.tenant.Workspace = ws
	return nil
}
