package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the dashboard palette.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Border  lipgloss.Color
}

var defaultTheme = Theme{
	Accent:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Warning: lipgloss.Color("#FFAF00"), // amber
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Border:  lipgloss.Color("#3A3A3A"), // dark gray
}

const sidebarWidth = 26

func (t Theme) sidebarStyle(height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(height).
		Padding(1, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(t.Border)
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func (t Theme) navStyle(active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Width(sidebarWidth-4).Padding(0, 1)
	if active {
		return s.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(t.Accent)
	}
	return s
}

func (t Theme) avatarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#000000")).Background(t.Accent)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) badgeStyle(full bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	if full {
		return s.Foreground(lipgloss.Color("#000000")).Background(t.Warning)
	}
	return s.Foreground(lipgloss.Color("#000000")).Background(t.Success)
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func (t Theme) statusStyle(trained bool) lipgloss.Style {
	if trained {
		return lipgloss.NewStyle().Foreground(t.Success)
	}
	return lipgloss.NewStyle().Foreground(t.Warning)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) modalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Error)
}
