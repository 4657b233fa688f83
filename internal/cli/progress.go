package cli

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// bytesSentMsg reports how many bytes of the body have been read so far.
type bytesSentMsg int64

// uploadDoneMsg carries the result of the upload.
type uploadDoneMsg struct {
	err error
}

// countingReader reports progress while the HTTP client reads the body.
type countingReader struct {
	r      io.Reader
	read   atomic.Int64
	report func(total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		total := c.read.Add(int64(n))
		if c.report != nil {
			c.report(total)
		}
	}
	return n, err
}

// progressModel is the bubbletea model for a single upload.
type progressModel struct {
	fileName string
	size     int64
	sent     int64
	start    func() error
	cancel   context.CancelFunc
	progress progress.Model
	theme    Theme
	done     bool
	quitting bool
	err      error
}

// newProgressModel creates a progress model that runs start when initialised.
func newProgressModel(fileName string, size int64, start func() error, cancel context.CancelFunc) progressModel {
	// Create progress bar with color blend
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		fileName: fileName,
		size:     size,
		start:    start,
		cancel:   cancel,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init starts the upload.
func (m progressModel) Init() tea.Cmd {
	start := m.start
	return tea.Batch(
		func() tea.Msg { return uploadDoneMsg{err: start()} },
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, nil
		}

	case bytesSentMsg:
		m.sent = int64(msg)
		return m, nil

	case uploadDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		// Update progress bar animation
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m progressModel) renderContent() string {
	if m.done {
		return m.finalView()
	}

	var pct float64
	if m.size > 0 {
		pct = float64(m.sent) / float64(m.size)
	}
	if pct > 1 {
		pct = 1
	}

	status := m.theme.statusStyle().Render("[uploading]")
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%s/%s", formatBytes(m.sent), formatBytes(m.size))
	hint := m.theme.hintStyle().Render(m.fileName + " · Ctrl+C to cancel")
	if m.quitting {
		hint = m.theme.hintStyle().Render("Cancelling...")
	}

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, hint)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("✗ %s\n", m.fileName))
	}
	return m.theme.completedStyle().Render(fmt.Sprintf("✓ %s (%s)\n", m.fileName, formatBytes(m.size)))
}

// runUploadProgress runs upload while showing a progress bar for body.
// upload receives the wrapped reader it must send.
func runUploadProgress(ctx context.Context, fileName string, size int64, body io.Reader, upload func(ctx context.Context, body io.Reader) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var p *tea.Program
	reader := &countingReader{r: body}
	model := newProgressModel(fileName, size, func() error {
		return upload(ctx, reader)
	}, cancel)
	p = tea.NewProgram(model)
	reader.report = func(total int64) { p.Send(bytesSentMsg(total)) }

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}
	if m, ok := finalModel.(progressModel); ok {
		return m.err
	}
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
