// Package invoke sends a composed instruction to the configured completion
// provider and classifies whatever goes wrong.
package invoke

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/config"
	"github.com/sant0-9/answergpt/internal/llm"
)

// Phase is reported to a Call's Progress callback.
type Phase int

const (
	Started Phase = iota
	Finished
)

// ProviderFactory builds the provider for one call.
type ProviderFactory func(ctx context.Context, cfg *config.Config) (llm.Provider, error)

func defaultFactory(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(ctx, cfg)
}

// Call is one submission to the completion provider.
type Call struct {
	RequestID   string
	Instruction string
	// Model overrides the configured model when set.
	Model      string
	Credential string
	Progress   func(Phase)
}

type Invoker struct {
	cfg         *config.Config
	newProvider ProviderFactory
	observer    llm.Observer
	logger      *zap.Logger
}

type Option func(*Invoker)

func WithProviderFactory(f ProviderFactory) Option {
	return func(i *Invoker) { i.newProvider = f }
}

func WithObserver(o llm.Observer) Option {
	return func(i *Invoker) { i.observer = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(i *Invoker) { i.logger = l }
}

func New(cfg *config.Config, opts ...Option) *Invoker {
	i := &Invoker{
		cfg:         cfg,
		newProvider: defaultFactory,
		observer:    llm.NoopObserver{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CredentialRequired reports whether the configured provider needs a key.
func (i *Invoker) CredentialRequired() bool {
	return config.KeyRequired(i.cfg.Provider)
}

// Invoke makes exactly one provider call and returns the generated text unchanged.
// Failures are *ServiceError or *UnknownError; missing inputs are *compose.PreconditionError
// and nothing is sent.
func (i *Invoker) Invoke(ctx context.Context, call Call) (string, error) {
	if call.Instruction == "" {
		return "", &compose.PreconditionError{Field: compose.FieldContent, Message: compose.MsgMissingContent}
	}
	if i.CredentialRequired() && call.Credential == "" {
		return "", &compose.PreconditionError{Field: compose.FieldCredential, Message: compose.MsgMissingCredential}
	}

	cfg := i.cfg.WithRequest(call.Model, call.Credential)
	logger := i.logger.With(
		zap.String("request_id", call.RequestID),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
	)

	provider, err := i.newProvider(ctx, cfg)
	if err != nil {
		logger.Error("creating provider", zap.Error(err))
		return "", classify(err)
	}

	req := llm.NewPromptRequest(cfg.Model, call.Instruction)
	if cfg.MaxTokens > 0 {
		req.MaxTokens = cfg.MaxTokens
	}

	logger.Debug("invoking provider", zap.Int("instruction_len", len(call.Instruction)))
	report(call.Progress, Started)
	start := time.Now()
	resp, err := provider.Complete(ctx, req)
	latency := time.Since(start)
	report(call.Progress, Finished)

	event := llm.CallEvent{
		RequestID: call.RequestID,
		Provider:  provider.Name(),
		Model:     cfg.Model,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		err = classify(err)
		event.ErrorCode = errorCode(err)
		i.observer.OnCallComplete(event)
		logger.Warn("completion failed", zap.Error(err), zap.Duration("latency", latency))
		return "", err
	}

	event.Usage = resp.Usage
	i.observer.OnCallComplete(event)
	return resp.Content, nil
}

func report(progress func(Phase), p Phase) {
	if progress != nil {
		progress(p)
	}
}
