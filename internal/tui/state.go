package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/huh"

	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/reply"
)

const (
	setupStepProvider = iota
	setupStepAPIKey
	setupStepBaseURL
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model
	baseURLInput     textinput.Model

	// Settings
	settingsMode     string
	settingsSelected int

	// Form
	form   *huh.Form
	values *formValues
	notice string

	// Generating
	spinner spinner.Model

	// Result
	result   reply.Result
	viewport viewport.Model
	status   string

	// Provider
	providerReady bool
	providerError error
}

func newState() *state {
	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	baseURL := textinput.New()
	baseURL.Placeholder = "http://localhost:8080/v1"
	baseURL.CharLimit = 200
	baseURL.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleSpinner

	return &state{
		apiKeyInput:  apiKey,
		baseURLInput: baseURL,
		spinner:      s,
		viewport:     viewport.New(70, 20),
	}
}
