package notify_test

import (
	"bytes"
	"testing"

	"github.com/rumsan/docsctl/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierImplementations(t *testing.T) {
	var _ notify.Notifier = (*notify.Console)(nil)
	var _ notify.Notifier = (*notify.Queue)(nil)
}

func TestConsoleWritesMessages(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsole(&buf)

	h := c.Loading("Deleting document...")
	assert.Equal(t, 1, c.Pending())
	c.Dismiss(h)
	assert.Equal(t, 0, c.Pending())

	c.Success("Document deleted successfully")
	c.Error("Delete failed", "boom")

	out := buf.String()
	assert.Contains(t, out, "Deleting document...")
	assert.Contains(t, out, "Document deleted successfully")
	assert.Contains(t, out, "Delete failed")
	assert.Contains(t, out, "boom")
}

func TestQueueTracksLoadingAndDrains(t *testing.T) {
	q := notify.NewQueue()

	h1 := q.Loading("Training document...")
	h2 := q.Loading("Deleting document...")
	assert.NotEqual(t, h1, h2)
	require.Len(t, q.Loadings(), 2)

	q.Dismiss(h1)
	loadings := q.Loadings()
	require.Len(t, loadings, 1)
	assert.Equal(t, "Deleting document...", loadings[0].Message)

	q.Success("done")
	q.Error("Training failed", "nope")

	items := q.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, notify.KindSuccess, items[0].Kind)
	assert.Equal(t, notify.KindError, items[1].Kind)
	assert.Equal(t, "Training failed", items[1].Title)
	assert.Empty(t, q.Drain())
}
