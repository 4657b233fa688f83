package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rumsan/docsctl/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeDeliversEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/events", r.URL.Path)
		assert.Equal(t, "acme", r.Header.Get("X-Tenant-Id"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		_ = conn.WriteJSON(client.Event{Type: "ping"})
		_ = conn.WriteJSON(client.Event{Type: client.EventDocumentUpdated, DocumentID: "d1", Status: "EMBEDDED"})
		_ = conn.WriteJSON(client.Event{Type: client.EventDocumentDeleted, DocumentID: "d2"})
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	}))
	defer server.Close()

	c := client.New(server.URL, client.WithTenant("acme"))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []client.Event
	err := c.Subscribe(ctx, func(ev client.Event) error {
		got = append(got, ev)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].DocumentID)
	assert.Equal(t, client.EventDocumentDeleted, got[1].Type)
}

func TestSubscribeStopsOnContextCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	c := client.New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := c.Subscribe(ctx, func(client.Event) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
