// Package client provides an HTTP client for the document service.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rumsan/docsctl/internal/metrics"
	"github.com/rumsan/docsctl/internal/models"
)

// slowRequestThreshold is the duration above which requests are logged at WARN level.
const slowRequestThreshold = 2 * time.Second

// DefaultEndpoint is used when neither the caller nor DOCSCTL_BASE_URL provide one.
const DefaultEndpoint = "http://localhost:8000/api/v1"

// ErrNotFound matches APIError values with a 404 status.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the document service.
// Error returns the server's message unchanged so callers can match on it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is allows errors.Is() to match against ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// DocumentAPI is the set of document service calls the rest of the program
// depends on. *Client implements it.
type DocumentAPI interface {
	List(ctx context.Context) (models.DocumentListResponse, error)
	ListRaw(ctx context.Context) ([]byte, error)
	Delete(ctx context.Context, id string) error
	Embed(ctx context.Context, id string) error
	Unembed(ctx context.Context, id string) error
	Upload(ctx context.Context, file io.Reader, meta UploadMetadata) error
	GetWorkspace(ctx context.Context, tenantID string) (models.Workspace, error)
}

var _ DocumentAPI = (*Client)(nil)

// Client talks to the document service REST API on behalf of one tenant.
type Client struct {
	endpoint   string
	token      string
	tenantID   string
	httpClient *http.Client
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTenant sets the tenant id sent as X-Tenant-Id.
func WithTenant(tenantID string) Option {
	return func(c *Client) { c.tenantID = strings.TrimSpace(tenantID) }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithMetrics records per-operation timings into m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger logs every request with its timing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.With("component", "client")
		}
	}
}

// New creates a new document service client.
// If endpoint is empty, uses DOCSCTL_BASE_URL or DefaultEndpoint.
// Timeout can be configured via DOCSCTL_CLIENT_TIMEOUT (default 2m, uploads can be slow).
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("DOCSCTL_BASE_URL")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("DOCSCTL_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	c := &Client{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL the client sends requests to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// errorPayload is the error body returned by the service.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends a request and returns the response body for 2xx responses.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) (respBody []byte, err error) {
	start := time.Now()
	requestID := uuid.NewString()
	defer func() {
		duration := time.Since(start)
		c.metrics.RecordTiming(op, duration, err)

		attrs := []any{
			"op", op,
			"method", method,
			"path", path,
			"request_id", requestID,
			"duration_ms", duration.Milliseconds(),
		}
		switch {
		case err != nil:
			c.logger.DebugContext(ctx, "request failed", append(attrs, "error", err)...)
		case duration > slowRequestThreshold:
			c.logger.WarnContext(ctx, "slow request", attrs...)
		default:
			c.logger.DebugContext(ctx, "request completed", attrs...)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID != "" {
		req.Header.Set("X-Tenant-Id", c.tenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
		apiErr.Message = text
	}
	return apiErr
}

// =============================================================================
// DOCUMENT OPERATIONS
// =============================================================================

// ListRaw fetches the document list and returns the undecoded response body.
func (c *Client) ListRaw(ctx context.Context) ([]byte, error) {
	return c.do(ctx, metrics.OpList, http.MethodGet, "/documents", nil, "")
}

// List fetches and decodes the document list.
func (c *Client) List(ctx context.Context) (models.DocumentListResponse, error) {
	var out models.DocumentListResponse
	raw, err := c.ListRaw(ctx)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("unmarshal documents: %w", err)
	}
	return out, nil
}

// Delete removes a document by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, metrics.OpDelete, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, "")
	return err
}

// Embed asks the service to train (embed) a document.
func (c *Client) Embed(ctx context.Context, id string) error {
	_, err := c.do(ctx, metrics.OpEmbed, http.MethodPost, "/documents/"+url.PathEscape(id)+"/embed", nil, "")
	return err
}

// Unembed asks the service to drop a document's embedding.
func (c *Client) Unembed(ctx context.Context, id string) error {
	_, err := c.do(ctx, metrics.OpUnembed, http.MethodPost, "/documents/"+url.PathEscape(id)+"/unembed", nil, "")
	return err
}

// GetWorkspace fetches workspace metadata for a tenant.
func (c *Client) GetWorkspace(ctx context.Context, tenantID string) (models.Workspace, error) {
	var out models.Workspace
	raw, err := c.do(ctx, metrics.OpWorkspace, http.MethodGet, "/workspaces/"+url.PathEscape(tenantID), nil, "")
	if err != nil {
		return out, err
	}
	// Accept both a bare object and a {"data": {...}} envelope.
	var envelope struct {
		Data *models.Workspace `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return *envelope.Data, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("unmarshal workspace: %w", err)
	}
	return out, nil
}
