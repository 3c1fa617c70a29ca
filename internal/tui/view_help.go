package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	variant := a.service.Variant()
	usage := []string{
		"  Paste the message you need to answer, then add",
		"  " + strings.ToLower(variant.SupplementLabel) + " if you have any. At least one of",
		"  the two is required.",
		"",
		"  Pick a tone and " + registerHint(variant.Mode.String()) + ", then submit",
		"  on the last field. The reply is generated in one go.",
	}

	usageBox := styleBox.
		Width(56).
		Render(strings.Join(usage, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, usageBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Tab / Shift+Tab  Next / previous field",
		"  Enter            Next field, submit on the last",
		"  Ctrl+S           Settings",
		"  F1               This help",
		"  c / n / e        Copy, new reply, edit (result)",
		"  Esc              Go back / Quit",
		"  Ctrl+C           Quit",
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.
		Width(56).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func registerHint(mode string) string {
	if mode == "verbosity" {
		return "a synthetic level (0 = terse, 6 = elaborate)"
	}
	return "a message type (Chat or Email)"
}
