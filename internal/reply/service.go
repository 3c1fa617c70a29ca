// Package reply validates a request, composes its instruction and sends it,
// turning every outcome into a Result the UI can render.
package reply

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/invoke"
)

type Service struct {
	composer *compose.Composer
	invoker  *invoke.Invoker
	logger   *zap.Logger
	progress func(invoke.Phase)
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithProgress receives Started and Finished around the provider call.
func WithProgress(fn func(invoke.Phase)) Option {
	return func(s *Service) { s.progress = fn }
}

func NewService(v *compose.Variant, inv *invoke.Invoker, opts ...Option) *Service {
	s := &Service{
		composer: compose.NewComposer(v),
		invoker:  inv,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Variant() *compose.Variant {
	return s.composer.Variant()
}

// CredentialRequired reports whether submissions must carry a key.
func (s *Service) CredentialRequired() bool {
	return s.invoker.CredentialRequired()
}

// Instruction validates req, ignoring the credential, and returns the composed text.
func (s *Service) Instruction(req compose.Request) (string, error) {
	if err := req.Validate(s.Variant(), false); err != nil {
		return "", err
	}
	return s.composer.Compose(req), nil
}

// ComposeAndInvoke runs one submission. Preconditions are checked first; when they
// fail nothing is composed or sent.
func (s *Service) ComposeAndInvoke(ctx context.Context, req compose.Request) (res Result) {
	id := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", id), zap.String("variant", s.Variant().Name))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("composition panicked", zap.Any("panic", r))
			res = failure(fmt.Errorf("%v", r))
		}
	}()

	if err := req.Validate(s.Variant(), s.CredentialRequired()); err != nil {
		logger.Info("request rejected", zap.Error(err))
		return failure(err)
	}

	instruction := s.composer.Compose(req)
	logger.Debug("instruction composed", zap.Int("length", len(instruction)))

	text, err := s.invoker.Invoke(ctx, invoke.Call{
		RequestID:   id,
		Instruction: instruction,
		Model:       req.Model,
		Credential:  req.Credential,
		Progress:    s.progress,
	})
	if err != nil {
		return failure(err)
	}

	logger.Info("reply generated", zap.Int("length", len(text)))
	return success(text)
}
