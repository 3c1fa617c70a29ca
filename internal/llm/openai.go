package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	openAIBaseURL     = "https://api.openai.com/v1"
	groqBaseURL       = "https://api.groq.com/openai/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenAIProvider talks to any API that implements the OpenAI chat completions
// endpoint. Groq, OpenRouter and custom endpoints are configured instances of it.
type OpenAIProvider struct {
	name       string
	label      string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newOpenAICompatible(name, label, defaultBaseURL, apiKey, model string, opts []Option) *OpenAIProvider {
	o := buildOptions(defaultBaseURL, opts)
	return &OpenAIProvider{
		name:       name,
		label:      label,
		apiKey:     apiKey,
		model:      model,
		baseURL:    o.baseURL,
		httpClient: o.httpClient,
	}
}

func NewOpenAIProvider(apiKey, model string, opts ...Option) *OpenAIProvider {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return newOpenAICompatible("openai", "OpenAI", openAIBaseURL, apiKey, model, opts)
}

func NewGroqProvider(apiKey, model string, opts ...Option) *OpenAIProvider {
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	return newOpenAICompatible("groq", "Groq", groqBaseURL, apiKey, model, opts)
}

func NewOpenRouterProvider(apiKey, model string, opts ...Option) *OpenAIProvider {
	if model == "" {
		model = "meta-llama/llama-3.1-70b-instruct"
	}
	return newOpenAICompatible("openrouter", "OpenRouter", openRouterBaseURL, apiKey, model, opts)
}

// NewCustomProvider targets a self-hosted OpenAI-compatible server. The key may be empty.
func NewCustomProvider(baseURL, apiKey, model string, opts ...Option) *OpenAIProvider {
	opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	return newOpenAICompatible("custom", "Custom endpoint", baseURL, apiKey, model, opts)
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) authorize(req *http.Request) {
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	o.authorize(req)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return transportError(o.label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return statusError(o.label, resp.StatusCode, body)
	}
	return nil
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	body, err := json.Marshal(openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	o.authorize(httpReq)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(o.label, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(o.label, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(o.label, resp.StatusCode, respBody)
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", o.label, err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("%s: %w", o.label, ErrEmptyResponse)
	}

	if apiResp.Model != "" {
		model = apiResp.Model
	}
	return &CompletionResponse{
		Content:      apiResp.Choices[0].Message.Content,
		Model:        model,
		FinishReason: apiResp.Choices[0].FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}

func toOpenAIMessages(msgs []Message) []openAIMessage {
	result := make([]openAIMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}
	return result
}
