package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const generatingText = "Generating response..."

func (a *App) renderGenerating() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Working")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// What is being answered
	if a.state.values.Original != "" {
		original := styleSubtitle.Render("> " + truncate(firstLine(a.state.values.Original), 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, original))
		b.WriteString("\n\n")
	}

	line := a.state.spinner.View() + " " + generatingText
	box := styleBox.
		Width(min(60, max(30, a.width-4))).
		BorderForeground(colorSecondary).
		Render(line)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	model := styleSubtitle.Render(fmt.Sprintf("%s / %s", a.state.config.Provider, a.state.values.Model))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, model))

	return a.centerVertically(b.String())
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
