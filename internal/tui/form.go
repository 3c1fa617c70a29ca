package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
)

// formValues backs the huh fields. It survives a rejected submission so the
// user does not lose what they typed.
type formValues struct {
	Original   string
	Supplement string
	Tone       string
	Kind       string
	Level      int
	Model      string
	Credential string
}

func newFormValues(cfg *config.Config, v *compose.Variant) *formValues {
	vals := &formValues{
		Tone:       cfg.Defaults.Tone,
		Kind:       cfg.Defaults.Kind,
		Level:      cfg.Defaults.Level,
		Model:      cfg.Model,
		Credential: cfg.APIKey,
	}
	if !v.HasTone(compose.Tone(vals.Tone)) {
		vals.Tone = string(v.DefaultTone())
	}
	if v.Mode == compose.ModeKind && !v.HasKind(compose.Kind(vals.Kind)) {
		vals.Kind = string(v.DefaultKind())
	}
	if !compose.ValidLevel(vals.Level) {
		vals.Level = (compose.MinLevel + compose.MaxLevel) / 2
	}
	return vals
}

func (f *formValues) request() compose.Request {
	return compose.Request{
		OriginalMessage: f.Original,
		Supplement:      f.Supplement,
		Tone:            compose.Tone(f.Tone),
		Kind:            compose.Kind(f.Kind),
		Level:           f.Level,
		Model:           f.Model,
		Credential:      f.Credential,
	}
}

// clearText empties the message fields for a new reply, keeping the selections.
func (f *formValues) clearText() {
	f.Original = ""
	f.Supplement = ""
}

var levelLabels = [compose.MaxLevel - compose.MinLevel + 1]string{
	"extremely concise",
	"very short",
	"short",
	"moderate",
	"detailed",
	"polished",
	"complex, formal, longer",
}

func buildForm(v *compose.Variant, cfg *config.Config, vals *formValues, width int) *huh.Form {
	fields := []huh.Field{
		huh.NewText().
			Title("Original message").
			Description("The message you need to answer (optional)").
			Lines(4).
			Value(&vals.Original),
		huh.NewText().
			Title(v.SupplementLabel).
			Description(supplementDescription(v)).
			Lines(3).
			Value(&vals.Supplement),
	}

	toneOpts := make([]huh.Option[string], len(v.Tones))
	for i, t := range v.Tones {
		toneOpts[i] = huh.NewOption(string(t), string(t))
	}
	settings := []huh.Field{
		huh.NewSelect[string]().
			Title("Tone").
			Options(toneOpts...).
			Value(&vals.Tone),
	}

	switch v.Mode {
	case compose.ModeKind:
		kindOpts := make([]huh.Option[string], len(v.Kinds))
		for i, k := range v.Kinds {
			kindOpts[i] = huh.NewOption(string(k), string(k))
		}
		settings = append(settings, huh.NewSelect[string]().
			Title("Message type").
			Options(kindOpts...).
			Value(&vals.Kind))
	case compose.ModeVerbosity:
		levelOpts := make([]huh.Option[int], 0, len(levelLabels))
		for lvl := compose.MinLevel; lvl <= compose.MaxLevel; lvl++ {
			levelOpts = append(levelOpts, huh.NewOption(fmt.Sprintf("%d  %s", lvl, levelLabels[lvl-compose.MinLevel]), lvl))
		}
		settings = append(settings, huh.NewSelect[int]().
			Title("Synthetic level").
			Options(levelOpts...).
			Value(&vals.Level))
	}

	if models := modelOptions(cfg, vals.Model); len(models) > 1 {
		settings = append(settings, huh.NewSelect[string]().
			Title("Model").
			Options(huh.NewOptions(models...)...).
			Value(&vals.Model))
	}

	if config.KeyRequired(cfg.Provider) {
		settings = append(settings, huh.NewInput().
			Title("API key").
			EchoMode(huh.EchoModePassword).
			Value(&vals.Credential))
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
		huh.NewGroup(settings...),
	).WithTheme(answerHuhTheme()).WithShowHelp(false).WithWidth(width)
}

func supplementDescription(v *compose.Variant) string {
	if v.Mode == compose.ModeVerbosity {
		return "Points the reply must include (optional)"
	}
	return "A draft to reformulate, or indications for the reply (optional)"
}

// modelOptions lists the provider's models, keeping a configured model that is not in the catalogue.
func modelOptions(cfg *config.Config, current string) []string {
	var models []string
	if p := config.GetProvider(cfg.Provider); p != nil {
		models = append(models, p.Models...)
	}
	for _, m := range models {
		if m == current {
			return models
		}
	}
	if current != "" {
		models = append([]string{current}, models...)
	}
	return models
}

func answerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorMuted)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorSecondary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorSuccess)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorWhite)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorSecondary)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorSecondary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorWhite)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorMuted)
	t.Focused.Base = t.Focused.Base.BorderForeground(colorPrimary)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(colorMuted)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(colorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(colorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorMuted)

	return t
}
