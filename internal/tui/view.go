package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/models"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
)

// View renders the dashboard.
func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	height := m.height
	if height < 16 {
		height = 16
	}
	sidebar := m.theme.sidebarStyle(height - 2).Render(m.renderSidebar(height - 4))

	var main string
	switch navItems[m.nav] {
	case NavAgentPreview:
		main = m.renderAgentPreview()
	default:
		main = m.renderDocuments()
	}
	main = lipgloss.NewStyle().Padding(1, 2).Render(main)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main) + "\n"
}

func (m Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(m.theme.titleStyle().Render(AppTitle))
	if m.opts.Version != "" {
		b.WriteString(" " + m.theme.hintStyle().Render("v"+m.opts.Version))
	}
	b.WriteString("\n\n")

	for i, item := range navItems {
		b.WriteString(m.theme.navStyle(i == m.nav).Render(item))
		b.WriteString("\n")
	}
	top := b.String()

	footer := m.renderUser()
	gap := height - lipgloss.Height(top) - lipgloss.Height(footer)
	if gap < 1 {
		gap = 1
	}
	return top + strings.Repeat("\n", gap) + footer
}

func (m Model) renderUser() string {
	u := m.opts.User
	if u.Name == "" && u.Email == "" {
		return m.theme.hintStyle().Render("Not signed in")
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	initials := models.Initials(name)
	lines := []string{m.theme.avatarStyle().Render(initials) + " " + u.Name}
	if u.Email != "" {
		lines = append(lines, m.theme.hintStyle().Render(u.Email))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDocuments() string {
	docs := m.documents()
	personal := m.ctrl.Tenant().IsPersonalWorkspace()

	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Render(NavMyDocuments)
	if limit, ok := quota.Limit(personal); ok {
		full := !quota.CanUpload(personal, len(docs))
		header += "  " + m.theme.badgeStyle(full).Render(fmt.Sprintf("%d/%d documents", len(docs), limit))
	}
	b.WriteString(header + "\n\n")

	switch {
	case !m.loaded:
		b.WriteString(m.spinner.View() + " Loading documents...\n")
	case m.fetchErr != nil && len(docs) == 0:
		b.WriteString(m.theme.errorStyle().Render("Could not load documents: "+m.fetchErr.Error()) + "\n")
	case len(docs) == 0:
		b.WriteString(m.theme.hintStyle().Render("No documents uploaded yet") + "\n")
	default:
		b.WriteString(m.renderTable(docs))
	}

	b.WriteString("\n")
	switch m.mode {
	case modeConfirmDelete:
		b.WriteString(m.renderDeleteModal())
	case modeUploadPath:
		b.WriteString(m.input.View() + "\n")
		b.WriteString(m.theme.hintStyle().Render("enter upload · esc cancel") + "\n")
	default:
		if !m.ctrl.CanUpload() {
			b.WriteString(m.theme.hintStyle().Render(
				fmt.Sprintf("Upload disabled: personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments)) + "\n")
		}
		b.WriteString(m.theme.hintStyle().Render("↑/↓ select · t train/untrain · d delete · u upload · r refresh · tab switch · q quit") + "\n")
	}

	b.WriteString(m.renderNotifications())
	return b.String()
}

func (m Model) renderTable(docs []models.Document) string {
	const dateW, nameW, statusW = 14, 36, 12
	var b strings.Builder
	head := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Hint)
	b.WriteString("  " + head.Render(pad("DATE", dateW)+pad("FILE NAME", nameW)+pad("STATUS", statusW)+"TRAIN") + "\n")

	for i, d := range docs {
		training := m.ctrl.IsTraining(d.ID)
		status := "Pending"
		if d.Trained() {
			status = "Trained"
		}
		toggle := "[ ]"
		if d.Trained() {
			toggle = "[x]"
		}
		if training {
			status = "Training..."
			toggle = m.spinner.View()
		}

		row := pad(models.FormatDate(d.CreatedAt), dateW) +
			pad(truncate(models.DisplayName(d.FileName), nameW-2), nameW) +
			m.theme.statusStyle(d.Trained()).Render(pad(status, statusW)) +
			toggle

		prefix := "  "
		if i == m.cursor {
			prefix = m.theme.selectedStyle().Render("> ")
		}
		if training {
			row = lipgloss.NewStyle().Faint(true).Render(row)
		}
		b.WriteString(prefix + row + "\n")
	}
	return b.String()
}

func (m Model) renderDeleteModal() string {
	body := lipgloss.NewStyle().Bold(true).Render("Delete document") + "\n\n" +
		lifecycle.DeletePrompt(m.pending.FileName) + "\n\n" +
		m.theme.hintStyle().Render("y delete · n cancel")
	return m.theme.modalStyle().Render(body) + "\n"
}

func (m Model) renderAgentPreview() string {
	var trained []models.Document
	for _, d := range m.documents() {
		if d.Trained() {
			trained = append(trained, d)
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(NavAgentPreview) + "\n\n")
	ws := m.ctrl.Tenant().Workspace()
	if ws.Name != "" {
		b.WriteString(fmt.Sprintf("Workspace: %s\n", ws.Name))
	}
	b.WriteString(fmt.Sprintf("The agent answers from %d trained document(s).\n\n", len(trained)))
	for _, d := range trained {
		b.WriteString("  • " + models.DisplayName(d.FileName) + "\n")
	}
	if len(trained) == 0 {
		b.WriteString(m.theme.hintStyle().Render("Train a document in My Documents to make it available.") + "\n")
	}
	b.WriteString("\n" + m.renderNotifications())
	return b.String()
}

func (m Model) renderNotifications() string {
	var b strings.Builder
	for _, n := range m.loadings {
		b.WriteString(m.spinner.View() + " " + n.Message + "\n")
	}
	for _, t := range m.toasts {
		switch t.Kind {
		case notify.KindSuccess:
			b.WriteString(m.theme.successStyle().Render("✓ "+t.Message) + "\n")
		case notify.KindError:
			b.WriteString(m.theme.errorStyle().Render("✗ "+t.Title) + "\n")
			if t.Message != "" {
				b.WriteString(m.theme.hintStyle().Render("  "+t.Message) + "\n")
			}
		}
	}
	return b.String()
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}
