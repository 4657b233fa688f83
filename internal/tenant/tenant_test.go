package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	ws  models.Workspace
	err error
	got string
}

func (f *fakeFetcher) GetWorkspace(_ context.Context, tenantID string) (models.Workspace, error) {
	f.got = tenantID
	return f.ws, f.err
}

func TestStaticPersonalWorkspace(t *testing.T) {
	tests := []struct {
		name     string
		tenantID string
		ws       models.Workspace
		want     bool
	}{
		{"personal slug matches", "jane", models.Workspace{Personal: &models.PersonalWorkspace{Slug: "jane"}}, true},
		{"personal slug differs", "acme", models.Workspace{Personal: &models.PersonalWorkspace{Slug: "jane"}}, false},
		{"no personal workspace", "acme", models.Workspace{}, false},
		{"empty tenant", "", models.Workspace{Personal: &models.PersonalWorkspace{Slug: ""}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tenant.NewStatic(tt.tenantID, tt.ws)
			assert.Equal(t, tt.want, p.IsPersonalWorkspace())
			assert.Equal(t, tt.tenantID, p.TenantID())
		})
	}
}

func TestRefreshKeepsConfiguredFields(t *testing.T) {
	p := tenant.NewStatic("jane", models.Workspace{
		Slug:     "jane",
		Name:     "Jane's space",
		Personal: &models.PersonalWorkspace{Slug: "jane"},
	})
	f := &fakeFetcher{ws: models.Workspace{Name: "Personal"}}

	require.NoError(t, p.Refresh(context.Background(), f))
	assert.Equal(t, "jane", f.got)
	assert.Equal(t, "Personal", p.Workspace().Name)
	assert.Equal(t, "jane", p.Workspace().Slug)
	assert.True(t, p.IsPersonalWorkspace())
}

func TestRefreshError(t *testing.T) {
	p := tenant.NewStatic("acme", models.Workspace{Name: "Acme"})
	err := p.Refresh(context.Background(), &fakeFetcher{err: errors.New("boom")})
	assert.ErrorContains(t, err, "fetch workspace: boom")
	assert.Equal(t, "Acme", p.Workspace().Name)
}

func TestSet(t *testing.T) {
	p := tenant.NewStatic("jane", models.Workspace{})
	assert.False(t, p.IsPersonalWorkspace())
	p.Set(models.Workspace{Personal: &models.PersonalWorkspace{Slug: "jane"}})
	assert.True(t, p.IsPersonalWorkspace())
}
