package models

// PersonalWorkspace identifies the caller's personal (demo) workspace.
type PersonalWorkspace struct {
	Slug string `json:"slug" yaml:"slug"`
}

// Workspace is the metadata the service exposes for a tenant.
type Workspace struct {
	Slug     string             `json:"slug" yaml:"slug"`
	Name     string             `json:"name,omitempty" yaml:"name,omitempty"`
	Personal *PersonalWorkspace `json:"personal,omitempty" yaml:"personal,omitempty"`
}

// Tenant pairs the active tenant id with its workspace metadata.
type Tenant struct {
	TenantID  string
	Workspace Workspace
}

// IsPersonalWorkspace reports whether the active tenant is the caller's personal workspace.
func (t Tenant) IsPersonalWorkspace() bool {
	if t.Workspace.Personal == nil || t.TenantID == "" {
		return false
	}
	return t.Workspace.Personal.Slug == t.TenantID
}
