package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rumsan/docsctl/internal/metrics"
	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `{"data":[
  {"id":"d1","orgId":"o1","fileName":"team_handbook.pdf","url":"u1","status":"PENDING","createdAt":"2024-01-02T03:04:05Z"},
  {"id":"d2","orgId":"o1","fileName":"b.pdf","url":"u2","status":"EMBEDDED","createdAt":"2024-01-03T03:04:05Z"}
]}`

// fakeService is a minimal document service.
type fakeService struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/workspaces/jane":
		_, _ = w.Write([]byte(`{"slug":"jane","name":"Jane","personal":{"slug":"jane"}}`))
	case r.Method == http.MethodGet && r.URL.Path == "/documents":
		_, _ = w.Write([]byte(listBody))
	case r.URL.Path == "/documents/d1/embed":
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Failed to parse PDF: broken xref"}`))
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// execute runs the root command against svc and returns stdout and stderr.
func execute(t *testing.T, svc *fakeService, stdin string, args ...string) (string, string, error) {
	t.Helper()
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	t.Setenv("DOCSCTL_BASE_URL", server.URL)
	t.Setenv("DOCSCTL_TENANT_ID", "jane")
	t.Setenv("DOCSCTL_CONFIG", filepath.Join(dir, "missing.yaml"))
	t.Setenv("DOCSCTL_LOG_FILE", filepath.Join(dir, "docsctl.log"))
	t.Setenv("DOCSCTL_TIMEOUT", "")
	t.Setenv("DOCSCTL_MAX_UPLOAD_BYTES", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		deleteForce = false
		verbose = false
	})

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestListCommand(t *testing.T) {
	svc := &fakeService{}
	out, _, err := execute(t, svc, "", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "2/2 documents")
	assert.Contains(t, out, "team handbook.pdf")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Trained")
	assert.Contains(t, out, fmt.Sprintf("Upload disabled: personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments))
	assert.Equal(t, []string{"GET /workspaces/jane", "GET /documents"}, svc.Calls())
}

func TestDeleteCommandDeclined(t *testing.T) {
	svc := &fakeService{}
	out, _, err := execute(t, svc, "n\n", "delete", "d1")
	require.NoError(t, err)

	assert.Contains(t, out, `Are you sure you want to delete "team_handbook.pdf"? This action cannot be undone.`)
	assert.Contains(t, out, "Cancelled.")
	assert.NotContains(t, svc.Calls(), "DELETE /documents/d1")
}

func TestDeleteCommandForce(t *testing.T) {
	svc := &fakeService{}
	_, errOut, err := execute(t, svc, "", "delete", "d2", "--force")
	require.NoError(t, err)

	assert.Contains(t, svc.Calls(), "DELETE /documents/d2")
	assert.Contains(t, errOut, "Document deleted successfully")
}

func TestTrainCommandClassifiesError(t *testing.T) {
	svc := &fakeService{}
	_, errOut, err := execute(t, svc, "", "train", "d1")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "embed document")
	assert.Contains(t, errOut, "Document Processing Error")
	assert.Contains(t, errOut, "The PDF file appears to be corrupted or invalid.")
}

func TestToggleCommandUntrainsTrained(t *testing.T) {
	svc := &fakeService{}
	_, _, err := execute(t, svc, "", "toggle", "d2")
	require.NoError(t, err)
	assert.Contains(t, svc.Calls(), "POST /documents/d2/unembed")
}

func TestUploadCommandRefusedOverQuota(t *testing.T) {
	svc := &fakeService{}
	_, errOut, err := execute(t, svc, "", "upload", "--no-progress", "whatever.pdf")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "document limit reached")
	assert.Contains(t, errOut, "Upload failed")
	for _, c := range svc.Calls() {
		assert.NotEqual(t, "POST /documents/upload", c)
	}
}

func TestWorkspaceCommandVerbose(t *testing.T) {
	svc := &fakeService{}
	out, _, err := execute(t, svc, "", "workspace", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "Tenant:    jane")
	assert.Contains(t, out, "Workspace: Jane")
	assert.Contains(t, out, "Personal:  true")
	assert.Contains(t, out, "Quota:     2/2 (upload allowed: false)")
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := newPromptConfirmer(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, p.Confirm("Delete it?"))
			assert.Contains(t, out.String(), "Continue? [y/N]: ")
		})
	}
}

func TestQuotaBadge(t *testing.T) {
	assert.Equal(t, "1/2 documents", quotaBadge(true, 1))
	assert.Empty(t, quotaBadge(false, 7))
}

func TestStatusLabel(t *testing.T) {
	pending := models.Document{Status: models.StatusPending}
	trained := models.Document{Status: "EMBEDDED"}
	assert.Equal(t, "Pending", statusLabel(pending, false))
	assert.Equal(t, "Trained", statusLabel(trained, false))
	assert.Equal(t, "Training...", statusLabel(pending, true))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "25.0 MB", formatBytes(25<<20))
}

func TestSkipWatched(t *testing.T) {
	assert.True(t, skipWatched("/in/.DS_Store"))
	assert.True(t, skipWatched("/in/report.pdf.part"))
	assert.True(t, skipWatched("/in/report.pdf~"))
	assert.False(t, skipWatched("/in/report.pdf"))
}

func TestDebouncerFiresOncePerPath(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	var mu sync.Mutex
	fired := map[string]int{}
	fire := func(p string) {
		mu.Lock()
		fired[p]++
		mu.Unlock()
	}
	for i := 0; i < 5; i++ {
		d.touch("a.pdf", fire)
	}
	d.touch("b.pdf", fire)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired["a.pdf"] == 1 && fired["b.pdf"] == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCountingReaderReportsTotals(t *testing.T) {
	var totals []int64
	r := &countingReader{r: strings.NewReader("hello world"), report: func(n int64) { totals = append(totals, n) }}
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	require.NotEmpty(t, totals)
	assert.Equal(t, int64(11), totals[len(totals)-1])
}

func TestProgressModelFinishes(t *testing.T) {
	m := newProgressModel("a.pdf", 100, func() error { return nil }, func() {})
	next, _ := m.Update(bytesSentMsg(50))
	m = next.(progressModel)
	assert.Contains(t, m.renderContent(), "50 B/100 B")

	next, cmd := m.Update(uploadDoneMsg{})
	m = next.(progressModel)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.renderContent(), "✓ a.pdf")
}

func TestReplay(t *testing.T) {
	q := notify.NewQueue()
	q.Success("a.pdf uploaded successfully")
	q.Error("Upload failed", "File too large")

	var out bytes.Buffer
	replay(q, notify.NewConsole(&out))
	assert.Contains(t, out.String(), "a.pdf uploaded successfully")
	assert.Contains(t, out.String(), "Upload failed")
	assert.Contains(t, out.String(), "File too large")
}

func TestPrintStats(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordTiming(metrics.OpList, 20*time.Millisecond, nil)

	var out bytes.Buffer
	printStats(&out, c.Snapshot())
	assert.Contains(t, out.String(), "list:")
	assert.Contains(t, out.String(), "Calls: 1, Failures: 0")
}
