package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Suggested reply")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	// Show what was answered
	if a.state.values.Original != "" {
		asked := styleSubtitle.Render("> " + truncate(firstLine(a.state.values.Original), 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	resultBox := styleBox.
		Width(a.state.viewport.Width + 2).
		BorderForeground(colorPrimary).
		Render(a.state.viewport.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	if a.state.status != "" {
		status := lipgloss.NewStyle().Foreground(colorSuccess).Render(a.state.status)
		if strings.HasPrefix(a.state.status, "Copy failed") {
			status = lipgloss.NewStyle().Foreground(colorError).Render(a.state.status)
		}
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
		b.WriteString("\n\n")
	}

	// Status bar
	statusBar := styleStatusBar.Render("[c] Copy  [n] New reply  [e] Edit  [Up/Down] Scroll  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
