package invoke

import (
	"errors"

	"github.com/sant0-9/answergpt/internal/llm"
)

// ServiceError means the completion service rejected the request or could not
// be reached. Message is the provider's own text.
type ServiceError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// UnknownError wraps any other failure raised while invoking.
type UnknownError struct {
	Message string
	Err     error
}

func (e *UnknownError) Error() string {
	return e.Message
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// classify converts a failed call into a ServiceError or an UnknownError.
func classify(err error) error {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{
			Provider:   apiErr.Provider,
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &UnknownError{Message: err.Error(), Err: err}
}

// errorCode labels a classified error for call events.
func errorCode(err error) string {
	var svc *ServiceError
	if errors.As(err, &svc) {
		return "service"
	}
	return "unknown"
}
