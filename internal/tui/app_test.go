package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/llm"
	"github.com/sant0-9/answergpt/internal/reply"
)

type fakeProvider struct {
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string               { return "fake" }
func (f *fakeProvider) Ping(context.Context) error { return nil }
func (f *fakeProvider) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.text}, nil
}

func newTestApp(t *testing.T, p *fakeProvider, mutate func(*config.Config)) *App {
	t.Helper()
	t.Setenv("ANSWERGPT_CONFIG_DIR", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.APIKey = "sk-test-key-1234"
	if mutate != nil {
		mutate(cfg)
	}
	a := NewApp(Options{
		Config: cfg,
		ProviderFactory: func(context.Context, *config.Config) (llm.Provider, error) {
			return p, nil
		},
	})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_PrefillsFormFromConfig(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, func(cfg *config.Config) {
		cfg.Defaults = config.Defaults{Tone: "Friendly", Kind: "Email", Level: 3}
	})

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, "Friendly", a.state.values.Tone)
	assert.Equal(t, "Email", a.state.values.Kind)
	assert.Equal(t, "gpt-3.5-turbo", a.state.values.Model)
	assert.Equal(t, "sk-test-key-1234", a.state.values.Credential)
	assert.NotEmpty(t, a.View())
}

func TestNewApp_VerbosityVariantFixesTone(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, func(cfg *config.Config) {
		cfg.Variant = "verbosity"
		cfg.Defaults = config.Defaults{Tone: "Professional", Level: 9}
	})

	assert.Equal(t, compose.ModeVerbosity, a.service.Variant().Mode)
	assert.Equal(t, "Casual", a.state.values.Tone)
	assert.Equal(t, 3, a.state.values.Level)
}

func TestSubmit_MissingContentShowsNotice(t *testing.T) {
	p := &fakeProvider{text: "unused"}
	a := newTestApp(t, p, nil)

	a.submit()

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, compose.MsgMissingContent, a.state.notice)
	assert.Contains(t, a.View(), compose.MsgMissingContent)
	assert.Zero(t, p.calls)
}

func TestSubmit_MissingCredentialShowsNotice(t *testing.T) {
	p := &fakeProvider{text: "unused"}
	a := newTestApp(t, p, func(cfg *config.Config) { cfg.APIKey = "" })
	a.state.values.Original = "Can we move the meeting?"

	a.submit()

	assert.Equal(t, compose.MsgMissingCredential, a.state.notice)
	assert.Zero(t, p.calls)
}

func TestSubmit_GeneratesAndShowsResult(t *testing.T) {
	p := &fakeProvider{text: "Thursday works for me."}
	a := newTestApp(t, p, nil)
	a.state.values.Original = "Can we move the meeting?"
	a.state.values.Kind = "Email"

	cmd := a.submit()
	require.NotNil(t, cmd)
	assert.Equal(t, viewGenerating, a.view)
	assert.Contains(t, a.View(), generatingText)

	msg := a.generate(a.state.values.request())()
	a.Update(msg)

	assert.Equal(t, viewResult, a.view)
	assert.Equal(t, "Thursday works for me.", a.state.result.Text)
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, a.View(), "Suggested reply")
}

func TestResult_NewReplyClearsText(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)
	a.state.values.Original = "hello"
	a.state.values.Supplement = "say hi back"
	a.state.values.Kind = "Email"
	a.Update(replyMsg{result: reply.Result{Text: "Hi!"}})
	require.Equal(t, viewResult, a.view)

	a.Update(runes("n"))

	assert.Equal(t, viewForm, a.view)
	assert.Empty(t, a.state.values.Original)
	assert.Empty(t, a.state.values.Supplement)
	assert.Equal(t, "Email", a.state.values.Kind)
	assert.True(t, a.state.result.OK())
	assert.Empty(t, a.state.result.Text)
}

func TestResult_EditKeepsText(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)
	a.state.values.Original = "hello"
	a.Update(replyMsg{result: reply.Result{Text: "Hi!"}})

	a.Update(runes("e"))

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, "hello", a.state.values.Original)
}

func TestReply_ServiceFailureShowsBanner(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)

	a.Update(replyMsg{result: reply.Result{Failure: &reply.Failure{
		Kind:    reply.FailureService,
		Message: "Incorrect API key provided",
	}}})

	assert.Equal(t, viewError, a.view)
	out := a.View()
	assert.Contains(t, out, "A service error occurred: Incorrect API key provided")
	assert.Contains(t, out, "Check your API key")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewForm, a.view)
}

func TestReply_PreconditionReturnsToForm(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)

	a.Update(replyMsg{result: reply.Result{Failure: &reply.Failure{
		Kind:    reply.FailurePrecondition,
		Message: compose.MsgMissingCredential,
	}}})

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, compose.MsgMissingCredential, a.state.notice)
}

func TestGenerating_IgnoresKeys(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)
	a.view = viewGenerating

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, viewGenerating, a.view)
	assert.False(t, a.quitting)
}

func TestSetup_KeylessProviderSaves(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANSWERGPT_CONFIG_DIR", dir)

	a := NewApp(Options{Config: config.DefaultConfig(), NeedsSetup: true})
	a.Init()
	require.Equal(t, viewSetup, a.view)

	ollama := -1
	for i, p := range config.Providers {
		if p.ID == "ollama" {
			ollama = i
		}
	}
	require.GreaterOrEqual(t, ollama, 0)
	for i := 0; i < ollama; i++ {
		a.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, setupCompleteMsg{}, msg)
	assert.True(t, config.Exists())

	a.Update(msg)
	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, "ollama", a.state.config.Provider)
	assert.False(t, a.service.CredentialRequired())
}

func TestSetup_KeyStep(t *testing.T) {
	t.Setenv("ANSWERGPT_CONFIG_DIR", t.TempDir())

	a := NewApp(Options{Config: config.DefaultConfig(), NeedsSetup: true})
	a.Init()

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, setupStepAPIKey, a.state.setupStep)

	// An empty key is not accepted.
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, setupStepProvider, a.state.setupStep)
}

func TestSettings_ToggleVariant(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, viewSettings, a.view)

	_, cmd := a.Update(runes("v"))
	require.NotNil(t, cmd)
	a.Update(cmd())

	assert.Equal(t, "verbosity", a.state.config.Variant)
	assert.Equal(t, compose.ModeVerbosity, a.service.Variant().Mode)
	assert.Equal(t, "Casual", a.state.values.Tone)

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewForm, a.view)
}

func TestHelp_OpensAndCloses(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	require.Equal(t, viewHelp, a.view)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewForm, a.view)
}

func TestSettings_SaveLeavesEnvKeyOut(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANSWERGPT_CONFIG_DIR", dir)
	for _, name := range []string{config.EnvProvider, config.EnvModel, config.EnvAPIKey, config.EnvBaseURL, config.EnvVariant} {
		t.Setenv(name, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-env-only-secret")

	cfg, _, err := config.LoadOrDefault()
	require.NoError(t, err)
	require.Equal(t, "sk-env-only-secret", cfg.APIKey)

	a := NewApp(Options{Config: cfg})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	_, cmd := a.Update(runes("v"))
	require.NotNil(t, cmd)
	a.Update(cmd())

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "variant: verbosity")
	assert.NotContains(t, string(data), "sk-env-only-secret")
	// The running session keeps using the key.
	assert.Equal(t, "sk-env-only-secret", a.state.config.APIKey)
}

func TestSetupError_ReplacesEarlierFailure(t *testing.T) {
	a := newTestApp(t, &fakeProvider{}, nil)
	a.Update(replyMsg{result: reply.Result{Failure: &reply.Failure{
		Kind:    reply.FailureService,
		Message: "You exceeded your current quota",
	}}})
	require.Equal(t, viewError, a.view)

	a.Update(setupErrorMsg{errors.New("mkdir /nope: permission denied")})

	assert.Equal(t, viewError, a.view)
	out := a.View()
	assert.Contains(t, out, "permission denied")
	assert.NotContains(t, out, "quota")
}
