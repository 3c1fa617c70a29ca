package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/llm"
	"github.com/sant0-9/answergpt/internal/prompts"
	"github.com/sant0-9/answergpt/internal/tui"
)

type fakeProvider struct {
	text    string
	err     error
	pingErr error
	calls   int
	last    *llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "Fake" }

func (f *fakeProvider) Ping(context.Context) error { return f.pingErr }

func (f *fakeProvider) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.text}, nil
}

// testApp wires an App whose provider is p.
func testApp(t *testing.T, p *fakeProvider) (*App, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	app := &App{
		Config: cfg,
		Logger: zap.NewNop(),
		ProviderFactory: func(context.Context, *config.Config) (llm.Provider, error) {
			return p, nil
		},
	}
	return app, cfg
}

// executeCmd runs a cobra command and captures stdout and stderr separately.
func executeCmd(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPromptCmd_PrintsInstruction(t *testing.T) {
	app, _ := testApp(t, &fakeProvider{})

	out, _, err := executeCmd(t, app, "prompt", "-o", "Lunch?", "-s", "sure, 12:30", "-t", "Casual")
	require.NoError(t, err)

	want := prompts.Preamble() +
		" Write a Chat message in a Casual tone." +
		" The original message to reply to is: 'Lunch?'." +
		" Reformulate this draft or use the following indications for you to craft the message: 'sure, 12:30'.\n"
	assert.Equal(t, want, out)
}

func TestPromptCmd_IgnoresMissingKey(t *testing.T) {
	p := &fakeProvider{}
	app, _ := testApp(t, p)

	out, _, err := executeCmd(t, app, "prompt", "-o", "hello", "--variant", "verbosity", "-l", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Maintain a Casual tone.")
	assert.Contains(t, out, "Provide a potential reply.")
	assert.Zero(t, p.calls)
}

func TestPromptCmd_MissingContent(t *testing.T) {
	app, _ := testApp(t, &fakeProvider{})

	_, _, err := executeCmd(t, app, "prompt", "-o", "")
	require.Error(t, err)
	assert.Equal(t, compose.MsgMissingContent, err.Error())
}

func TestReplyCmd_PrintsReply(t *testing.T) {
	p := &fakeProvider{text: "Thursday works, see you at 2pm."}
	app, cfg := testApp(t, p)
	cfg.APIKey = "sk-config"

	out, errOut, err := executeCmd(t, app, "reply", "-o", "Can we move it?", "-k", "Email", "-m", "gpt-4")
	require.NoError(t, err)

	assert.Equal(t, "Thursday works, see you at 2pm.\n", out)
	assert.Contains(t, errOut, "Generating response...")
	require.Equal(t, 1, p.calls)
	assert.Equal(t, "gpt-4", p.last.Model)
	require.Len(t, p.last.Messages, 1)
	assert.Contains(t, p.last.Messages[0].Content, "Write a Email message in a Professional tone.")
}

func TestReplyCmd_Quiet(t *testing.T) {
	p := &fakeProvider{text: "ok"}
	app, cfg := testApp(t, p)
	cfg.APIKey = "sk-config"

	_, errOut, err := executeCmd(t, app, "reply", "-q", "-s", "say yes")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestReplyCmd_ReadsOriginalFromStdin(t *testing.T) {
	p := &fakeProvider{text: "ok"}
	app, cfg := testApp(t, p)
	cfg.APIKey = "sk-config"

	root := NewRootCmd(app)
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader("Are you coming tonight?\n"))
	root.SetArgs([]string{"reply", "-o", "-"})
	require.NoError(t, root.Execute())

	require.Equal(t, 1, p.calls)
	assert.Contains(t, p.last.Messages[0].Content, "The original message to reply to is: 'Are you coming tonight?'.")
}

func TestReplyCmd_MissingKeyNeverCallsProvider(t *testing.T) {
	p := &fakeProvider{text: "unused"}
	app, _ := testApp(t, p)

	out, _, err := executeCmd(t, app, "reply", "-o", "hello")
	require.Error(t, err)
	assert.Equal(t, compose.MsgMissingCredential, err.Error())
	assert.Empty(t, out)
	assert.Zero(t, p.calls)
}

func TestReplyCmd_KeylessProvider(t *testing.T) {
	p := &fakeProvider{text: "hi"}
	app, _ := testApp(t, p)

	out, _, err := executeCmd(t, app, "reply", "-p", "ollama", "-o", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestReplyCmd_ProviderFlagReadsProviderKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-from-env")
	p := &fakeProvider{text: "Thursday works."}
	app, cfg := testApp(t, p)
	cfg.APIKey = "sk-openai-config"

	var built *config.Config
	app.ProviderFactory = func(_ context.Context, c *config.Config) (llm.Provider, error) {
		built = c
		return p, nil
	}

	out, _, err := executeCmd(t, app, "reply", "-q", "--provider", "groq", "-o", "Can we move the meeting?")
	require.NoError(t, err)
	assert.Equal(t, "Thursday works.\n", out)
	require.NotNil(t, built)
	assert.Equal(t, "groq", built.Provider)
	assert.Equal(t, "gsk-from-env", built.APIKey)
	assert.Equal(t, 1, p.calls)
}

func TestReplyCmd_ProviderFlagWithoutKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	p := &fakeProvider{}
	app, cfg := testApp(t, p)
	cfg.APIKey = "sk-openai-config"

	_, _, err := executeCmd(t, app, "reply", "-q", "--provider", "groq", "-o", "hello")
	require.Error(t, err)
	assert.Equal(t, compose.MsgMissingCredential, err.Error())
	assert.Zero(t, p.calls)
}

func TestReplyCmd_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "service",
			err:  &llm.APIError{Provider: "OpenAI", StatusCode: 429, Message: "You exceeded your current quota"},
			want: "A service error occurred: You exceeded your current quota",
		},
		{
			name: "unknown",
			err:  errors.New("unexpected end of JSON input"),
			want: "An unknown error occurred: unexpected end of JSON input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{err: tt.err}
			app, _ := testApp(t, p)

			out, _, err := executeCmd(t, app, "reply", "-o", "hello", "--api-key", "sk-flag")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Empty(t, out)
			assert.Equal(t, 1, p.calls)
		})
	}
}

func TestReplyCmd_InvalidTone(t *testing.T) {
	p := &fakeProvider{}
	app, cfg := testApp(t, p)
	cfg.APIKey = "sk-config"

	_, _, err := executeCmd(t, app, "reply", "-o", "hello", "--variant", "verbosity", "-t", "Friendly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Tone "Friendly" is not available`)
	assert.Zero(t, p.calls)
}

func TestReplyCmd_UnknownVariant(t *testing.T) {
	app, _ := testApp(t, &fakeProvider{})

	_, _, err := executeCmd(t, app, "reply", "-o", "hello", "--variant", "haiku")
	require.Error(t, err)
}

func TestProvidersCmd_ListsCatalogue(t *testing.T) {
	app, _ := testApp(t, &fakeProvider{})

	out, _, err := executeCmd(t, app, "providers")
	require.NoError(t, err)
	for _, p := range config.Providers {
		assert.Contains(t, out, p.Name)
	}
	assert.Contains(t, out, "openai *")
	assert.Contains(t, out, "OPENAI_API_KEY")
}

func TestPingCmd(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		app, _ := testApp(t, &fakeProvider{})
		out, _, err := executeCmd(t, app, "ping")
		require.NoError(t, err)
		assert.Equal(t, "Fake is reachable (model gpt-3.5-turbo)\n", out)
	})

	t.Run("unreachable", func(t *testing.T) {
		app, _ := testApp(t, &fakeProvider{pingErr: errors.New("connection refused")})
		_, _, err := executeCmd(t, app, "ping")
		require.Error(t, err)
		assert.Equal(t, "Fake is not reachable: connection refused", err.Error())
	})

	t.Run("unknown provider", func(t *testing.T) {
		app, cfg := testApp(t, &fakeProvider{})
		cfg.Provider = "nope"
		_, _, err := executeCmd(t, app, "ping")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})
}

func TestRootCmd_StartsTUIOnlyWhenInteractive(t *testing.T) {
	app, _ := testApp(t, &fakeProvider{})
	var got *tui.Options
	app.RunTUI = func(opts tui.Options) error {
		got = &opts
		return nil
	}

	app.IsInteractive = func() bool { return false }
	out, _, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Contains(t, out, "Usage:")

	app.IsInteractive = func() bool { return true }
	_, _, err = executeCmd(t, app)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.NeedsSetup)
	assert.Same(t, app.Config, got.Config)
}
