package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rumsan/docsctl/internal/models"
)

// Config holds all configuration values.
type Config struct {
	// Document service
	BaseURL string
	Token   string
	Timeout time.Duration

	// Tenant
	TenantID      string
	WorkspaceName string
	PersonalSlug  string

	// Uploads
	MaxUploadBytes int64

	// Signed-in user, shown in the dashboard footer
	UserName  string
	UserEmail string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Path of the YAML profile that was read, empty when none was found.
	ProfilePath string
}

// Profile is the on-disk YAML configuration. Environment variables win over it.
type Profile struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	Timeout        string `yaml:"timeout"`
	TenantID       string `yaml:"tenant_id"`
	WorkspaceName  string `yaml:"workspace_name"`
	PersonalSlug   string `yaml:"personal_slug"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
	User           struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"user"`
}

// DefaultProfilePath returns ~/.config/docsctl/config.yaml.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "docsctl", "config.yaml")
}

// Load reads configuration from an optional .env file, the YAML profile
// (DOCSCTL_CONFIG or the default path) and environment variables.
func Load() (Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	path := getEnv("DOCSCTL_CONFIG", DefaultProfilePath())
	profile, err := ReadProfile(path)
	if err != nil {
		return Config{}, err
	}
	if profile == nil {
		profile = &Profile{}
		path = ""
	}
	return fromProfile(*profile, path)
}

// ReadProfile parses the YAML profile at path. A missing file returns nil, nil.
func ReadProfile(path string) (*Profile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &p, nil
}

func fromProfile(p Profile, path string) (Config, error) {
	timeout, err := time.ParseDuration(getEnv("DOCSCTL_TIMEOUT", orDefault(p.Timeout, "2m")))
	if err != nil {
		return Config{}, fmt.Errorf("parse timeout: %w", err)
	}

	maxUpload := p.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = models.DefaultMaxUploadBytes
	}
	if v := os.Getenv("DOCSCTL_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse DOCSCTL_MAX_UPLOAD_BYTES: %w", err)
		}
		maxUpload = n
	}

	return Config{
		BaseURL: strings.TrimRight(getEnv("DOCSCTL_BASE_URL", orDefault(p.BaseURL, "http://localhost:8000/api/v1")), "/"),
		Token:   getEnv("DOCSCTL_TOKEN", p.Token),
		Timeout: timeout,

		TenantID:      getEnv("DOCSCTL_TENANT_ID", p.TenantID),
		WorkspaceName: getEnv("DOCSCTL_WORKSPACE_NAME", p.WorkspaceName),
		PersonalSlug:  getEnv("DOCSCTL_PERSONAL_SLUG", p.PersonalSlug),

		MaxUploadBytes: maxUpload,

		UserName:  getEnv("DOCSCTL_USER_NAME", p.User.Name),
		UserEmail: getEnv("DOCSCTL_USER_EMAIL", p.User.Email),

		LogFile:  getEnv("DOCSCTL_LOG_FILE", orDefault(p.LogFile, filepath.Join(os.TempDir(), "docsctl.log"))),
		LogLevel: parseLogLevel(getEnv("DOCSCTL_LOG_LEVEL", orDefault(p.LogLevel, "INFO"))),

		ProfilePath: path,
	}, nil
}

// Validate checks the values needed to talk to the document service.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.TenantID, validation.Required.Error("is required (set DOCSCTL_TENANT_ID or tenant_id)")),
		validation.Field(&c.Timeout, validation.Min(time.Second)),
		validation.Field(&c.MaxUploadBytes, validation.Min(int64(1))),
		validation.Field(&c.UserEmail, is.EmailFormat),
	)
}

// Workspace builds the workspace seed from configuration.
func (c Config) Workspace() models.Workspace {
	ws := models.Workspace{Slug: c.TenantID, Name: c.WorkspaceName}
	if c.PersonalSlug != "" {
		ws.Personal = &models.PersonalWorkspace{Slug: c.PersonalSlug}
	}
	return ws
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func orDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
