package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/answergpt/internal/config"
)

const logo = `
 ▄▀█ █▄ █ █▀ █ █ █ █▀▀ █▀█   █▀▀ █▀█ ▀█▀
 █▀█ █ ▀█ ▄█ ▀▄▀▄▀ ██▄ █▀▄   █▄█ █▀▀  █
`

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case setupStepProvider:
		switch {
		case key.Matches(msg, keys.Back):
			a.quitting = true
			return tea.Quit, true
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			switch {
			case provider.NeedsAPIKey:
				a.state.setupStep = setupStepAPIKey
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			case provider.NeedsBaseURL:
				a.state.setupStep = setupStepBaseURL
				a.state.baseURLInput.Focus()
				return textinput.Blink, true
			default:
				// Skip to save
				a.state.config.APIKey = ""
				return a.finishSetup(), true
			}
		}
		return nil, true

	case setupStepAPIKey:
		switch {
		case key.Matches(msg, keys.Back):
			// Go back to provider selection
			a.state.setupStep = setupStepProvider
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			apiKey := strings.TrimSpace(a.state.apiKeyInput.Value())
			if apiKey == "" {
				return nil, true
			}
			a.state.config.APIKey = apiKey
			a.state.apiKeyInput.Reset()
			return a.finishSetup(), true
		}

	case setupStepBaseURL:
		switch {
		case key.Matches(msg, keys.Back):
			a.state.setupStep = setupStepProvider
			a.state.baseURLInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			baseURL := strings.TrimSpace(a.state.baseURLInput.Value())
			if baseURL == "" {
				return nil, true
			}
			a.state.config.BaseURL = baseURL
			a.state.config.APIKey = ""
			return a.finishSetup(), true
		}
	}

	return nil, false
}

func (a *App) finishSetup() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) renderSetup() string {
	switch a.state.setupStep {
	case setupStepProvider:
		return a.renderProviderSelection()
	case setupStepAPIKey:
		return a.renderAPIKeyEntry()
	case setupStepBaseURL:
		return a.renderBaseURLEntry()
	default:
		return ""
	}
}

func (a *App) renderHeader(b *strings.Builder) {
	header := styleLogo.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n\n")
}

func (a *App) renderProviderSelection() string {
	var b strings.Builder

	a.renderHeader(&b)

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("Welcome! Choose your LLM provider:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Provider list
	var providerLines []string
	for i, p := range config.Providers {
		var line string
		cursor := "  "
		if i == a.state.selectedProvider {
			cursor = "> "
			line = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Render(fmt.Sprintf("%s[x] %-12s %s", cursor, p.Name, p.Description))
		} else {
			line = lipgloss.NewStyle().
				Foreground(colorMuted).
				Render(fmt.Sprintf("%s[ ] %-12s %s", cursor, p.Name, p.Description))
		}
		providerLines = append(providerLines, line)
	}

	providerBox := styleBox.
		Width(min(76, max(40, a.width-4))).
		Render(strings.Join(providerLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderAPIKeyEntry() string {
	var b strings.Builder

	provider := config.GetProvider(a.state.config.Provider)
	name := a.state.config.Provider
	if provider != nil {
		name = provider.Name
	}

	a.renderHeader(&b)

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(fmt.Sprintf("Enter your %s API key:", name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Signup link
	if provider != nil && provider.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", provider.SignupURL))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, link))
		b.WriteString("\n\n")
	}

	// Input
	inputBox := styleBox.
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	note := styleSubtitle.Render(fmt.Sprintf("Stored in %s", configPathHint()))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, note))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Enter] Continue  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderBaseURLEntry() string {
	var b strings.Builder

	a.renderHeader(&b)

	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render("Enter the base URL of your OpenAI-compatible endpoint:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	inputBox := styleBox.
		Width(60).
		BorderForeground(colorSecondary).
		Render(a.state.baseURLInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Continue  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}

func configPathHint() string {
	path, err := config.ConfigPath()
	if err != nil {
		return "the config file"
	}
	return path
}
