package llm

import (
	"go.uber.org/zap"
)

// CallEvent records metadata about a single completion call.
type CallEvent struct {
	RequestID string
	Provider  string
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
	Usage     Usage
}

// Observer receives events about completion calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver writes call events to a zap logger.
type ZapObserver struct {
	logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger.Named("llm")}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("request_id", event.RequestID),
		zap.String("provider", event.Provider),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		o.logger.Warn("llm call failed", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Info("llm call",
		append(fields,
			zap.Int("prompt_tokens", event.Usage.PromptTokens),
			zap.Int("completion_tokens", event.Usage.CompletionTokens),
		)...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
