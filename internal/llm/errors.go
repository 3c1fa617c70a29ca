package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingAPIKey indicates a provider that needs a key was configured without one.
	ErrMissingAPIKey = errors.New("provider requires an API key")

	// ErrUnknownProvider indicates a provider id the factory does not know.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrEmptyResponse indicates the provider answered without any content.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// APIError is raised by a provider client when the remote API rejects the request
// or cannot be reached. StatusCode is 0 for transport failures.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func transportError(provider string, err error) *APIError {
	return &APIError{Provider: provider, Message: err.Error(), Err: err}
}

func statusError(provider string, status int, body []byte) *APIError {
	return &APIError{Provider: provider, StatusCode: status, Message: errorMessage(body)}
}

// errorMessage pulls the human-readable message out of the error bodies used by
// OpenAI-compatible APIs, Anthropic and Ollama, falling back to the raw body.
func errorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "no error details"
	}
	return msg
}
