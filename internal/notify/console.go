package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors used for console notifications.
type Theme struct {
	Loading lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// DefaultTheme matches the dashboard palette.
var DefaultTheme = Theme{
	Loading: lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// Console prints notifications as single styled lines.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	theme   Theme
	pending map[Handle]string
}

// NewConsole creates a console notifier writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		theme:   DefaultTheme,
		pending: make(map[Handle]string),
	}
}

func (c *Console) Loading(message string) Handle {
	h := newHandle()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[h] = message
	fmt.Fprintln(c.out, lipgloss.NewStyle().Foreground(c.theme.Loading).Render("… "+message))
	return h
}

func (c *Console) Success(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, lipgloss.NewStyle().Foreground(c.theme.Success).Bold(true).Render("✓ "+message))
}

func (c *Console) Error(title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, lipgloss.NewStyle().Foreground(c.theme.Error).Bold(true).Render("✗ "+title))
	if message != "" {
		fmt.Fprintln(c.out, lipgloss.NewStyle().Foreground(c.theme.Hint).Render("  "+message))
	}
}

// Dismiss forgets a loading handle. Console lines cannot be erased.
func (c *Console) Dismiss(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, h)
}

// Pending returns the number of loading notifications not yet dismissed.
func (c *Console) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
