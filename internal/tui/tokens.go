package tui

import (
	"fmt"
	"strings"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// getContextLimit returns the context window size for a model
func getContextLimit(model string) int {
	model = strings.ToLower(model)

	// Claude models
	if strings.Contains(model, "claude") {
		return 200000
	}

	// GPT variants
	if strings.Contains(model, "gpt-4o") || strings.Contains(model, "gpt-4-turbo") {
		return 128000
	}
	if strings.Contains(model, "gpt-4-32k") {
		return 32000
	}
	if strings.Contains(model, "gpt-4") {
		return 8000
	}
	if strings.Contains(model, "gpt-3.5") {
		return 16000
	}

	// Llama variants
	if strings.Contains(model, "llama-3") || strings.Contains(model, "llama3") {
		return 128000
	}
	if strings.Contains(model, "llama") {
		return 8000
	}

	if strings.Contains(model, "mixtral") || strings.Contains(model, "qwen") || strings.Contains(model, "mistral") {
		return 32000
	}

	// Gemini
	if strings.Contains(model, "gemini") {
		return 1000000
	}

	// Default fallback
	return 8000
}

// tokenUsage summarises how much of the model's window the instruction takes.
func tokenUsage(instruction, model string) string {
	used := estimateTokens(instruction)
	limit := getContextLimit(model)
	pct := float64(used) / float64(limit) * 100
	return fmt.Sprintf("~%d tokens (%.1f%% of %s)", used, pct, formatLimit(limit))
}

func formatLimit(n int) string {
	if n >= 1000000 {
		return fmt.Sprintf("%dM", n/1000000)
	}
	if n >= 1000 {
		return fmt.Sprintf("%dk", n/1000)
	}
	return fmt.Sprintf("%d", n)
}
