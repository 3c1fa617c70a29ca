package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
)

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.settingsMode {
	case "provider":
		return a.handleSettingsList(msg, len(config.Providers), func(i int) tea.Cmd {
			p := config.Providers[i]
			if p.ID != a.state.config.Provider {
				// A key belongs to one provider.
				a.state.config.APIKey = ""
				if p.EnvKey != "" {
					a.state.config.APIKey = os.Getenv(p.EnvKey)
				}
			}
			a.state.config.Provider = p.ID
			a.state.config.Model = p.DefaultModel
			if p.NeedsAPIKey && a.state.config.APIKey == "" {
				a.state.settingsMode = "apikey"
				a.state.apiKeyInput.Focus()
				return textinput.Blink
			}
			a.state.settingsMode = ""
			return a.saveConfig()
		}), true

	case "model":
		p := config.GetProvider(a.state.config.Provider)
		if p == nil || len(p.Models) == 0 {
			a.state.settingsMode = ""
			return nil, true
		}
		return a.handleSettingsList(msg, len(p.Models), func(i int) tea.Cmd {
			a.state.config.Model = p.Models[i]
			a.state.settingsMode = ""
			return a.saveConfig()
		}), true

	case "apikey":
		switch {
		case key.Matches(msg, keys.Back):
			a.state.settingsMode = ""
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			if v := strings.TrimSpace(a.state.apiKeyInput.Value()); v != "" {
				a.state.config.APIKey = v
			}
			a.state.apiKeyInput.Reset()
			a.state.settingsMode = ""
			return a.saveConfig(), true
		}
		return nil, false
	}

	switch msg.String() {
	case "esc":
		a.view = a.backTo
		a.state.status = ""
	case "p":
		a.state.settingsMode = "provider"
		a.state.settingsSelected = 0
	case "m":
		a.state.settingsMode = "model"
		a.state.settingsSelected = 0
	case "k":
		a.state.settingsMode = "apikey"
		a.state.apiKeyInput.Focus()
		return textinput.Blink, true
	case "v":
		// Toggle between the two form variants.
		if a.state.config.Variant == compose.VariantNameVerbosity {
			a.state.config.Variant = compose.VariantNameKind
		} else {
			a.state.config.Variant = compose.VariantNameVerbosity
		}
		return a.saveConfig(), true
	case "r":
		a.state.needsSetup = true
		a.state.setupStep = setupStepProvider
		a.view = viewSetup
	}
	return nil, true
}

func (a *App) handleSettingsList(msg tea.KeyMsg, n int, choose func(int) tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.settingsMode = ""
	case key.Matches(msg, keys.Up):
		if a.state.settingsSelected > 0 {
			a.state.settingsSelected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.settingsSelected < n-1 {
			a.state.settingsSelected++
		}
	case key.Matches(msg, keys.Enter):
		return choose(a.state.settingsSelected)
	}
	return nil
}

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

// maskKey keeps the first and last four characters of long keys.
func maskKey(apiKey string) string {
	switch {
	case apiKey == "":
		return "Not set"
	case len(apiKey) > 8:
		return apiKey[:4] + "****" + apiKey[len(apiKey)-4:]
	default:
		return "****"
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	// Title
	title := styleTitle.Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Current config
	cfg := a.state.config
	providerName := cfg.Provider
	if provider := config.GetProvider(cfg.Provider); provider != nil {
		providerName = provider.Name
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", maskKey(cfg.APIKey)),
		fmt.Sprintf("  Form:     %s", cfg.Variant),
	}
	if cfg.BaseURL != "" {
		configLines = append(configLines, fmt.Sprintf("  Base URL: %s", cfg.BaseURL))
	}

	configBox := styleBox.
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [v] Switch form (kind / verbosity)",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	if a.state.status != "" {
		status := styleSubtitle.Render(a.state.status)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
		b.WriteString("\n\n")
	}

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var b strings.Builder

	title := styleTitle.Render("Select Provider")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	names := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		names[i] = p.Name
	}
	current := ""
	if p := config.GetProvider(a.state.config.Provider); p != nil {
		current = p.Name
	}
	b.WriteString(a.renderList(names, current))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	title := styleTitle.Render("Select Model")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		desc := styleSubtitle.Render("No provider selected")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		return a.centerVertically(b.String())
	}

	providerDesc := styleSubtitle.Render(fmt.Sprintf("Provider: %s", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerDesc))
	b.WriteString("\n\n")

	b.WriteString(a.renderList(provider.Models, a.state.config.Model))

	return a.centerVertically(b.String())
}

// renderList draws a selectable list, marking the current entry.
func (a *App) renderList(items []string, current string) string {
	var b strings.Builder

	var lines []string
	for i, item := range items {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		mark := ""
		if item == current {
			mark = " (current)"
		}
		line := fmt.Sprintf("%s%s%s", cursor, item, mark)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return b.String()
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := styleTitle.Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
