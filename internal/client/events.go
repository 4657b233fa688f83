package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event types pushed on the document event feed.
const (
	EventDocumentCreated = "document.created"
	EventDocumentUpdated = "document.updated"
	EventDocumentDeleted = "document.deleted"
	eventPing            = "ping"
)

// Event is a change notification for a tenant's documents. It carries no
// authoritative state; receivers refetch the list.
type Event struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId,omitempty"`
	Status     string `json:"status,omitempty"`
}

// eventsURL converts the HTTP endpoint into the WebSocket feed URL.
func (c *Client) eventsURL() (string, error) {
	wsEndpoint := c.endpoint
	wsEndpoint = strings.Replace(wsEndpoint, "http://", "ws://", 1)
	wsEndpoint = strings.Replace(wsEndpoint, "https://", "wss://", 1)

	u, err := url.Parse(wsEndpoint + "/documents/events")
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	return u.String(), nil
}

// Subscribe connects to the document event feed and calls onEvent for every
// change until ctx is cancelled, the server closes the feed, or onEvent
// returns an error.
func (c *Client) Subscribe(ctx context.Context, onEvent func(Event) error) error {
	endpoint, err := c.eventsURL()
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID != "" {
		header.Set("X-Tenant-Id", c.tenantID)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return fmt.Errorf("websocket connect: %w", err)
	}

	// Track connection state for proper cleanup
	var mu sync.Mutex
	closed := false
	closeConn := func() {
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			conn.Close()
		}
	}
	defer closeConn()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		if ev.Type == "" || ev.Type == eventPing {
			continue
		}
		if err := onEvent(ev); err != nil {
			return err
		}
	}
}
