package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
)

func (a *App) renderForm() string {
	var b strings.Builder

	a.renderHeader(&b)

	// Subtitle
	subtitle := styleSubtitle.Render(fmt.Sprintf("Reply assistant  |  %s", a.providerStatus()))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		notice := styleNotice.Render(a.state.notice)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, notice))
		b.WriteString("\n\n")
	}

	formBox := styleBox.
		Width(a.formWidth() + 4).
		BorderForeground(colorPrimary).
		Render(a.state.form.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, formBox))
	b.WriteString("\n")

	// Token estimate of the instruction as it stands
	usage := styleSubtitle.Render(tokenUsage(a.previewInstruction(), a.state.values.Model))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, usage))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Tab] Next  [Shift+Tab] Back  [F1] Help  [Ctrl+S] Settings  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}

// previewInstruction composes the current values without validating them.
func (a *App) previewInstruction() string {
	req := a.state.values.request()
	if !compose.ValidLevel(req.Level) {
		req.Level = compose.MinLevel
	}
	return compose.NewComposer(a.service.Variant()).Compose(req)
}

func (a *App) providerStatus() string {
	name := a.state.config.Provider
	if p := config.GetProvider(name); p != nil {
		name = p.Name
	}
	switch {
	case a.state.providerError != nil:
		return lipgloss.NewStyle().Foreground(colorError).Render(fmt.Sprintf("%s unreachable", name))
	case a.state.providerReady:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render(fmt.Sprintf("%s ready", name))
	default:
		return fmt.Sprintf("connecting to %s...", name)
	}
}
