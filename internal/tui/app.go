package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/invoke"
	"github.com/sant0-9/answergpt/internal/llm"
	"github.com/sant0-9/answergpt/internal/reply"
)

type view int

const (
	viewSetup view = iota
	viewForm
	viewGenerating
	viewResult
	viewError
	viewSettings
	viewHelp
)

const pingTimeout = 5 * time.Second

// Options configure the TUI. Config is required.
type Options struct {
	Config     *config.Config
	NeedsSetup bool
	Logger     *zap.Logger
	// ProviderFactory replaces llm.NewProvider, mainly for tests.
	ProviderFactory invoke.ProviderFactory
}

type App struct {
	width    int
	height   int
	view     view
	backTo   view
	state    *state
	quitting bool

	service  *reply.Service
	logger   *zap.Logger
	factory  invoke.ProviderFactory
	renderer *glamour.TermRenderer
	wrap     int
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	s.needsSetup = opts.NeedsSetup

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := opts.ProviderFactory
	if factory == nil {
		factory = func(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
			return llm.NewProvider(ctx, cfg)
		}
	}

	a := &App{
		view:    viewForm,
		state:   s,
		logger:  logger.Named("tui"),
		factory: factory,
	}
	a.rebuildService()
	a.state.values = newFormValues(s.config, a.service.Variant())
	a.state.form = a.newForm()
	return a
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) rebuildService() {
	v, err := compose.LookupVariant(a.state.config.Variant)
	if err != nil {
		a.logger.Warn("falling back to kind variant", zap.Error(err))
		v = compose.KindVariant()
	}
	inv := invoke.New(a.state.config,
		invoke.WithProviderFactory(a.factory),
		invoke.WithObserver(llm.NewZapObserver(a.logger)),
		invoke.WithLogger(a.logger),
	)
	a.service = reply.NewService(v, inv, reply.WithLogger(a.logger))
}

func (a *App) formWidth() int {
	if a.width <= 0 {
		return 70
	}
	return max(30, min(70, a.width-6))
}

func (a *App) newForm() *huh.Form {
	return buildForm(a.service.Variant(), a.state.config, a.state.values, a.formWidth())
}

// resetForm replaces the completed form with a fresh one over the same values.
func (a *App) resetForm() tea.Cmd {
	a.state.form = a.newForm()
	a.view = viewForm
	return a.state.form.Init()
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	// Test provider connection
	return tea.Batch(
		tea.WindowSize(),
		a.state.form.Init(),
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	cfg := a.state.config
	factory := a.factory
	return func() tea.Msg {
		if config.KeyRequired(cfg.Provider) && cfg.APIKey == "" {
			// The key may still be typed into the form.
			return providerReadyMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		provider, err := factory(ctx, cfg)
		if err != nil {
			return providerErrorMsg{err}
		}
		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			a.quitting = true
			return a, tea.Quit
		}
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.viewport.Width = max(20, min(70, a.width-6))
		a.state.viewport.Height = max(5, a.height-12)
		if a.state.form != nil {
			a.state.form = a.state.form.WithWidth(a.formWidth())
		}
		if a.view == viewResult {
			a.state.viewport.SetContent(a.renderReply(a.state.result.Text))
		}

	case spinner.TickMsg:
		if a.view != viewGenerating {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case replyMsg:
		return a, a.handleReply(msg.result)

	case copiedMsg:
		if msg.err != nil {
			a.state.status = "Copy failed: " + msg.err.Error()
		} else {
			a.state.status = "Copied to clipboard"
		}
		return a, nil

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupStep = setupStepProvider
		a.afterConfigChange()
		return a, tea.Batch(a.resetForm(), a.testProvider())

	case setupErrorMsg:
		a.state.result = reply.Result{}
		a.state.providerError = msg.error
		a.view = viewError
		return a, nil

	case configSavedMsg:
		if msg.err != nil {
			a.state.status = "Saving settings failed: " + msg.err.Error()
			return a, nil
		}
		a.state.status = "Settings saved"
		a.afterConfigChange()
		a.state.form = a.newForm()
		return a, tea.Batch(a.state.form.Init(), a.testProvider())

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.logger.Warn("provider check failed", zap.Error(msg.error))
		return a, nil
	}

	return a, a.updateInputs(msg)
}

// updateInputs forwards msg to whichever input owns the current view.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.view == viewSetup && a.state.setupStep == setupStepAPIKey,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
	case a.view == viewSetup && a.state.setupStep == setupStepBaseURL:
		a.state.baseURLInput, cmd = a.state.baseURLInput.Update(msg)
	case a.view == viewForm:
		form, formCmd := a.state.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			a.state.form = f
		}
		cmd = formCmd
		if a.state.form.State == huh.StateCompleted {
			return tea.Batch(cmd, a.submit())
		}
	case a.view == viewResult:
		a.state.viewport, cmd = a.state.viewport.Update(msg)
	}
	return cmd
}

// handleKey reports whether the key was consumed; unconsumed keys go to the inputs.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewForm:
		return a.handleFormKey(msg)
	case viewGenerating:
		// No cancellation: the call runs to completion.
		return nil, true
	case viewResult:
		return a.handleResultKey(msg)
	case viewError:
		return a.handleErrorKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) {
			a.view = a.backTo
			return nil, true
		}
		return nil, true
	}
	return nil, false
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Help):
		a.openOverlay(viewHelp)
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.openOverlay(viewSettings)
		a.state.settingsMode = ""
		return nil, true
	}
	return nil, false
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Copy):
		return copyToClipboard(a.state.result.Text), true
	case key.Matches(msg, keys.New):
		a.state.values.clearText()
		a.state.result = reply.Result{}
		a.state.status = ""
		return a.resetForm(), true
	case key.Matches(msg, keys.Edit):
		a.state.status = ""
		return a.resetForm(), true
	case key.Matches(msg, keys.Help):
		a.openOverlay(viewHelp)
		return nil, true
	}
	return nil, false
}

func (a *App) handleErrorKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Retry):
		return a.submit(), true
	case key.Matches(msg, keys.Settings), msg.String() == "s":
		a.openOverlay(viewSettings)
		a.backTo = viewForm
		a.state.settingsMode = ""
		return nil, true
	case key.Matches(msg, keys.New):
		a.state.values.clearText()
		a.state.providerError = nil
		return a.resetForm(), true
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Edit):
		return a.resetForm(), true
	}
	return nil, true
}

func (a *App) openOverlay(v view) {
	a.backTo = a.view
	a.view = v
}

// submit checks the form's preconditions and, when they hold, starts the call.
func (a *App) submit() tea.Cmd {
	req := a.state.values.request()
	if err := req.Validate(a.service.Variant(), a.service.CredentialRequired()); err != nil {
		a.state.notice = err.Error()
		return a.resetForm()
	}

	a.state.notice = ""
	a.state.status = ""
	a.view = viewGenerating
	return tea.Batch(a.state.spinner.Tick, a.generate(req))
}

func (a *App) generate(req compose.Request) tea.Cmd {
	svc := a.service
	return func() tea.Msg {
		return replyMsg{result: svc.ComposeAndInvoke(context.Background(), req)}
	}
}

func (a *App) handleReply(res reply.Result) tea.Cmd {
	a.state.result = res
	if res.OK() {
		a.view = viewResult
		a.state.viewport.SetContent(a.renderReply(res.Text))
		a.state.viewport.GotoTop()
		return nil
	}

	if res.Failure.Kind == reply.FailurePrecondition {
		a.state.notice = res.Failure.Message
		return a.resetForm()
	}
	a.view = viewError
	return nil
}

// renderReply renders the reply as markdown. The clipboard always gets the raw text.
func (a *App) renderReply(text string) string {
	width := max(20, a.state.viewport.Width-2)
	if a.renderer == nil || a.wrap != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			a.logger.Warn("markdown renderer unavailable", zap.Error(err))
			return text
		}
		a.renderer = r
		a.wrap = width
	}

	out, err := a.renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// afterConfigChange re-points the service and form at the current config.
func (a *App) afterConfigChange() {
	a.rebuildService()
	v := a.service.Variant()
	a.state.values.Model = a.state.config.Model
	a.state.values.Credential = a.state.config.APIKey
	if !v.HasTone(compose.Tone(a.state.values.Tone)) {
		a.state.values.Tone = string(v.DefaultTone())
	}
	if v.Mode == compose.ModeKind && !v.HasKind(compose.Kind(a.state.values.Kind)) {
		a.state.values.Kind = string(v.DefaultKind())
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return copiedMsg{errors.New("nothing to copy")}
		}
		return copiedMsg{clipboard.WriteAll(text)}
	}
}

func (a *App) saveConfig() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		return configSavedMsg{cfg.Save()}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }
type replyMsg struct{ result reply.Result }
type copiedMsg struct{ err error }
type configSavedMsg struct{ err error }

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewGenerating:
		return a.renderGenerating()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderForm()
	}
}
