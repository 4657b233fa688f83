package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCSCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DOCSCTL_BASE_URL", "")
	t.Setenv("DOCSCTL_TENANT_ID", "")
	t.Setenv("DOCSCTL_TIMEOUT", "")
	t.Setenv("DOCSCTL_MAX_UPLOAD_BYTES", "")
	t.Setenv("DOCSCTL_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.ProfilePath)
}

func TestLoadProfileOverriddenByEnv(t *testing.T) {
	path := writeProfile(t, `
base_url: https://docs.example.com/api/
tenant_id: acme
workspace_name: Acme
personal_slug: acme
timeout: 30s
max_upload_bytes: 1024
log_level: debug
user:
  name: Jane Doe
  email: jane@example.com
`)
	t.Setenv("DOCSCTL_CONFIG", path)
	t.Setenv("DOCSCTL_TENANT_ID", "globex")
	t.Setenv("DOCSCTL_BASE_URL", "")
	t.Setenv("DOCSCTL_TIMEOUT", "")
	t.Setenv("DOCSCTL_MAX_UPLOAD_BYTES", "")
	t.Setenv("DOCSCTL_LOG_LEVEL", "")
	t.Setenv("DOCSCTL_USER_NAME", "")
	t.Setenv("DOCSCTL_USER_EMAIL", "")
	t.Setenv("DOCSCTL_PERSONAL_SLUG", "")
	t.Setenv("DOCSCTL_WORKSPACE_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/api", cfg.BaseURL)
	assert.Equal(t, "globex", cfg.TenantID)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "Jane Doe", cfg.UserName)
	assert.Equal(t, path, cfg.ProfilePath)

	ws := cfg.Workspace()
	assert.Equal(t, "globex", ws.Slug)
	require.NotNil(t, ws.Personal)
	assert.Equal(t, "acme", ws.Personal.Slug)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DOCSCTL_CONFIG", writeProfile(t, "base_url: [unterminated"))
	_, err := Load()
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("DOCSCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DOCSCTL_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "parse timeout")
}

func TestValidate(t *testing.T) {
	valid := Config{
		BaseURL:        "https://docs.example.com/api",
		TenantID:       "acme",
		Timeout:        time.Minute,
		MaxUploadBytes: 1,
	}
	require.NoError(t, valid.Validate())

	noTenant := valid
	noTenant.TenantID = ""
	assert.ErrorContains(t, noTenant.Validate(), "TenantID")

	badURL := valid
	badURL.BaseURL = "not a url"
	assert.Error(t, badURL.Validate())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)
	logger.Info("documents refetched", "count", 2)
	logger.Debug("hidden")

	assert.Contains(t, stderr.String(), "documents refetched")
	assert.Contains(t, file.String(), `"count":2`)
	assert.NotContains(t, file.String(), "hidden")
}

func TestSetupLoggerQuietWritesFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsctl.log")
	logger, cleanup := SetupLogger(path, slog.LevelInfo, true)
	logger.Info("dashboard started")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dashboard started")
}
