package reply

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/invoke"
	"github.com/sant0-9/answergpt/internal/llm"
)

type stubProvider struct {
	calls      int
	lastPrompt string
	text       string
	err        error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Ping(context.Context) error { return nil }

func (s *stubProvider) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	s.lastPrompt = req.Messages[0].Content
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.text}, nil
}

func newService(t *testing.T, v *compose.Variant, p *stubProvider, opts ...Option) *Service {
	t.Helper()
	inv := invoke.New(config.DefaultConfig(), invoke.WithProviderFactory(
		func(context.Context, *config.Config) (llm.Provider, error) { return p, nil },
	))
	return NewService(v, inv, opts...)
}

func TestComposeAndInvoke_Success(t *testing.T) {
	p := &stubProvider{text: "Sure, Thursday works for me."}
	svc := newService(t, compose.KindVariant(), p)

	res := svc.ComposeAndInvoke(context.Background(), compose.Request{
		OriginalMessage: "Can we move the meeting?",
		Tone:            compose.ToneFormal,
		Kind:            compose.KindEmail,
		Credential:      "sk-test",
	})

	require.True(t, res.OK())
	assert.Equal(t, "Sure, Thursday works for me.", res.Text)
	assert.Empty(t, res.Banner())
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, p.lastPrompt, "Write a Email message in a Formal tone.")
	assert.True(t, strings.HasSuffix(p.lastPrompt, "Provide a potential reply."))
}

func TestComposeAndInvoke_MissingCredentialNeverInvokes(t *testing.T) {
	p := &stubProvider{text: "unused"}
	svc := newService(t, compose.KindVariant(), p)

	res := svc.ComposeAndInvoke(context.Background(), compose.Request{
		OriginalMessage: "Can we move the meeting?",
		Supplement:      "yes, Thursday",
		Tone:            compose.ToneFriendly,
		Kind:            compose.KindChat,
	})

	require.False(t, res.OK())
	assert.Equal(t, FailurePrecondition, res.Failure.Kind)
	assert.Equal(t, compose.MsgMissingCredential, res.Banner())
	assert.Empty(t, res.Text)
	assert.Zero(t, p.calls)
}

func TestComposeAndInvoke_MissingContentNeverInvokes(t *testing.T) {
	p := &stubProvider{text: "unused"}
	svc := newService(t, compose.VerbosityVariant(), p)

	res := svc.ComposeAndInvoke(context.Background(), compose.Request{
		Tone:       compose.ToneCasual,
		Level:      2,
		Credential: "sk",
	})

	require.False(t, res.OK())
	assert.Equal(t, compose.MsgMissingContent, res.Failure.Message)
	assert.Zero(t, p.calls)
}

func TestComposeAndInvoke_FailureClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   FailureKind
		banner string
	}{
		{
			name:   "provider library failure",
			err:    &llm.APIError{Provider: "OpenAI", StatusCode: 401, Message: "Incorrect API key provided"},
			kind:   FailureService,
			banner: "A service error occurred: Incorrect API key provided",
		},
		{
			name:   "generic failure",
			err:    errors.New("boom"),
			kind:   FailureUnknown,
			banner: "An unknown error occurred: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{err: tt.err}
			svc := newService(t, compose.VerbosityVariant(), p)

			res := svc.ComposeAndInvoke(context.Background(), compose.Request{
				Supplement: "confirm budget approval",
				Tone:       compose.ToneCasual,
				Level:      0,
				Credential: "sk",
			})

			require.False(t, res.OK())
			assert.Equal(t, tt.kind, res.Failure.Kind)
			assert.Equal(t, tt.banner, res.Banner())
			assert.Empty(t, res.Text)
		})
	}
}

func TestComposeAndInvoke_Progress(t *testing.T) {
	var phases []invoke.Phase
	p := &stubProvider{text: "ok"}
	svc := newService(t, compose.KindVariant(), p, WithProgress(func(ph invoke.Phase) { phases = append(phases, ph) }))

	svc.ComposeAndInvoke(context.Background(), compose.Request{
		Supplement: "thanks",
		Tone:       compose.ToneCasual,
		Kind:       compose.KindChat,
		Credential: "sk",
	})

	assert.Equal(t, []invoke.Phase{invoke.Started, invoke.Finished}, phases)
}

func TestComposeAndInvoke_LogsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := &stubProvider{text: "ok"}
	svc := newService(t, compose.KindVariant(), p, WithLogger(zap.New(core)))

	svc.ComposeAndInvoke(context.Background(), compose.Request{
		Supplement: "thanks",
		Tone:       compose.ToneCasual,
		Kind:       compose.KindChat,
		Credential: "sk",
	})

	entries := logs.FilterMessage("reply generated").All()
	require.Len(t, entries, 1)
	id, ok := entries[0].ContextMap()["request_id"].(string)
	require.True(t, ok)
	assert.Len(t, id, 36)
}

func TestInstruction_IgnoresCredential(t *testing.T) {
	svc := newService(t, compose.VerbosityVariant(), &stubProvider{})

	got, err := svc.Instruction(compose.Request{
		Supplement: "confirm budget approval",
		Tone:       compose.ToneCasual,
		Level:      0,
	})

	require.NoError(t, err)
	assert.Contains(t, got, "confirm budget approval")
	assert.Contains(t, got, "Maintain a Casual tone.")
	assert.NotContains(t, got, "original message to reply to")

	_, err = svc.Instruction(compose.Request{Tone: compose.ToneCasual})
	var pre *compose.PreconditionError
	assert.ErrorAs(t, err, &pre)
}
