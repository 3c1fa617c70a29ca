package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderError() string {
	var b strings.Builder

	// Error title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Error message
	errMsg := a.errorBanner()

	errBox := styleBox.
		Width(min(60, max(30, a.width-4))).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	// Suggestions based on error type
	if suggestions := suggestionsFor(errMsg); len(suggestions) > 0 {
		suggBox := styleBox.
			Width(min(60, max(30, a.width-4))).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	status := styleStatusBar.Render("[r] Retry  [s] Settings  [n] New  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) errorBanner() string {
	if a.state.result.Failure != nil {
		return a.state.result.Banner()
	}
	if a.state.providerError != nil {
		return a.state.providerError.Error()
	}
	return "An unknown error occurred."
}

func suggestionsFor(errMsg string) []string {
	var suggestions []string
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		suggestions = append(suggestions, "Check your API key in "+configPathHint())
		suggestions = append(suggestions, "Or press [s] to open settings")
	case strings.Contains(errLower, "quota") || strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429"):
		suggestions = append(suggestions, "You've hit the API rate limit or quota")
		suggestions = append(suggestions, "Wait a moment and try again, or check your plan")
	case strings.Contains(errLower, "model") && (strings.Contains(errLower, "not found") || strings.Contains(errLower, "does not exist")):
		suggestions = append(suggestions, "The selected model is not available for this key")
		suggestions = append(suggestions, "Pick another model in the form or in settings")
	case strings.Contains(errLower, "ollama"):
		suggestions = append(suggestions, "Make sure Ollama is running: ollama serve")
		suggestions = append(suggestions, "Or switch to a cloud provider in settings")
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		suggestions = append(suggestions, "Check your internet connection")
		suggestions = append(suggestions, "Or try using Ollama for offline mode")
	}

	return suggestions
}
