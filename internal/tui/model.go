// Package tui implements the interactive document dashboard.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/rumsan/docsctl/internal/client"
	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
)

const (
	// AppTitle is shown at the top of the sidebar.
	AppTitle = "Rumsan AI"

	pollInterval = 250 * time.Millisecond
	toastTTL     = 4 * time.Second
)

// Navigation items in sidebar order.
const (
	NavAgentPreview = "Agent Preview"
	NavMyDocuments  = "My Documents"
)

var navItems = []string{NavAgentPreview, NavMyDocuments}

// User is the signed-in user shown in the sidebar footer.
type User struct {
	Name  string
	Email string
}

// Options configures the dashboard.
type Options struct {
	Controller *lifecycle.Controller
	Queue      *notify.Queue
	User       User
	Version    string
	MaxUpload  int64
	Logger     *slog.Logger

	// Subscribe, when set, streams change events; every event triggers a refetch.
	Subscribe func(ctx context.Context, onEvent func(client.Event) error) error
}

type mode int

const (
	modeBrowse mode = iota
	modeConfirmDelete
	modeUploadPath
)

type toast struct {
	notify.Notification
	expires time.Time
}

// Messages
type (
	tickMsg      time.Time
	refetchedMsg struct{ err error }
	actionMsg    struct{ err error }
	eventMsg     client.Event
	feedEndedMsg struct{ err error }
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	opts   Options
	ctrl   *lifecycle.Controller
	logger *slog.Logger
	theme  Theme

	width, height int
	nav           int
	cursor        int
	mode          mode
	pending       models.Document
	input         textinput.Model
	spinner       spinner.Model

	loaded   bool
	fetchErr error
	toasts   []toast
	loadings []notify.Notification

	// live feed lifetime
	ctx    context.Context
	cancel context.CancelFunc
	events chan client.Event
	now    func() time.Time
}

// New creates a dashboard model with "My Documents" selected.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "path/to/file.pdf"
	ti.Prompt = "Upload: "

	ctx, cancel := context.WithCancel(context.Background())
	var events chan client.Event
	if opts.Subscribe != nil {
		events = make(chan client.Event)
	}

	return Model{
		opts:    opts,
		ctrl:    opts.Controller,
		logger:  logger.With("component", "dashboard"),
		theme:   defaultTheme,
		nav:     1,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		ctx:     ctx,
		cancel:  cancel,
		events:  events,
		now:     time.Now,
	}
}

// Init fetches the documents and starts the notification poll.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refetch(), tick(), m.spinner.Tick}
	if m.opts.Subscribe != nil && m.events != nil {
		cmds = append(cmds, m.subscribe(), waitForEvent(m.ctx, m.events))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.pollNotifications()
		return m, tick()

	case refetchedMsg:
		m.loaded = true
		m.fetchErr = msg.err
		m.clampCursor()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.logger.Debug("action failed", "error", msg.err)
		}
		// Every completed action is followed by a refetch.
		m.pollNotifications()
		return m, m.refetch()

	case eventMsg:
		m.logger.Debug("document event", "type", msg.Type, "document", msg.DocumentID)
		return m, tea.Batch(m.refetch(), waitForEvent(m.ctx, m.events))

	case feedEndedMsg:
		if msg.err != nil {
			m.logger.Warn("live updates stopped", "error", msg.err)
			m.addToast(notify.Notification{Kind: notify.KindError, Title: "Live updates stopped", Message: msg.err.Error()})
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.mode == modeUploadPath {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case modeConfirmDelete:
		switch key {
		case "y", "Y", "enter":
			doc := m.pending
			m.mode = modeBrowse
			m.pending = models.Document{}
			return m, m.run(func(ctx context.Context) error {
				return m.ctrl.DeleteConfirmed(ctx, doc.ID, doc.FileName)
			})
		case "n", "N", "esc":
			m.mode = modeBrowse
			m.pending = models.Document{}
		}
		return m, nil

	case modeUploadPath:
		switch key {
		case "esc":
			m.mode = modeBrowse
			m.input.Reset()
			m.input.Blur()
			return m, nil
		case "enter":
			path := expandHome(strings.TrimSpace(m.input.Value()))
			m.mode = modeBrowse
			m.input.Reset()
			m.input.Blur()
			if path == "" {
				return m, nil
			}
			return m, m.upload(path)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m.quit()
	case "tab", "shift+tab":
		m.nav = (m.nav + 1) % len(navItems)
	case "1":
		m.nav = 0
	case "2":
		m.nav = 1
	case "r":
		return m, m.refetch()
	}

	if navItems[m.nav] != NavMyDocuments {
		return m, nil
	}

	docs := m.documents()
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(docs)-1 {
			m.cursor++
		}
	case "t", "space", " ":
		doc, ok := m.selected(docs)
		if !ok || m.ctrl.IsTraining(doc.ID) {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			return m.ctrl.Toggle(ctx, doc)
		})
	case "d", "delete":
		doc, ok := m.selected(docs)
		if !ok || m.ctrl.DeletePending() {
			return m, nil
		}
		m.pending = doc
		m.mode = modeConfirmDelete
	case "u":
		if !m.ctrl.CanUpload() {
			m.addToast(notify.Notification{
				Kind:    notify.KindError,
				Title:   "Upload disabled",
				Message: fmt.Sprintf("Personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments),
			})
			return m, nil
		}
		m.mode = modeUploadPath
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m Model) documents() []models.Document {
	return m.ctrl.Documents(nil)
}

func (m Model) selected(docs []models.Document) (models.Document, bool) {
	if m.cursor < 0 || m.cursor >= len(docs) {
		return models.Document{}, false
	}
	return docs[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.documents())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// pollNotifications moves finished notifications into the toast list and
// expires old toasts.
func (m *Model) pollNotifications() {
	if m.opts.Queue == nil {
		return
	}
	for _, n := range m.opts.Queue.Drain() {
		m.addToast(n)
	}
	m.loadings = m.opts.Queue.Loadings()

	now := m.now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m *Model) addToast(n notify.Notification) {
	m.toasts = append(m.toasts, toast{Notification: n, expires: m.now().Add(toastTTL)})
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) refetch() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return refetchedMsg{err: ctrl.Refetch(context.Background())}
	}
}

// run executes a controller action off the UI goroutine.
func (m Model) run(action func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: action(context.Background())}
	}
}

func (m Model) upload(path string) tea.Cmd {
	ctrl, maxUpload, toasts := m.ctrl, m.opts.MaxUpload, m.opts.Queue
	return m.run(func(ctx context.Context) error {
		req, err := lifecycle.NewUploadRequest(path, maxUpload)
		if err != nil {
			if toasts != nil {
				toasts.Error("Upload failed", err.Error())
			}
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			if toasts != nil {
				toasts.Error("Upload failed", err.Error())
			}
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		return ctrl.Upload(ctx, req, f)
	})
}

func (m Model) subscribe() tea.Cmd {
	subscribe, events, ctx := m.opts.Subscribe, m.events, m.ctx
	return func() tea.Msg {
		err := subscribe(ctx, func(ev client.Event) error {
			select {
			case events <- ev:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if ctx.Err() != nil {
			return nil
		}
		return feedEndedMsg{err: err}
	}
}

// waitForEvent delivers the next feed event, or nil once ctx is done.
func waitForEvent(ctx context.Context, events <-chan client.Event) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			return eventMsg(ev)
		case <-ctx.Done():
			return nil
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}
