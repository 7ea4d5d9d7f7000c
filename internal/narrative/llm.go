// Package narrative writes a short plain-language summary of a bikeshare
// statistics report. A report's figures are rendered into a markdown prompt,
// optionally alongside the whole-city report, and handed to a language model.
package narrative

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM completes a summary prompt. OpenAILLM talks to the API and MockLLM
// answers deterministically from the prompt's report fields.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig selects the model used for report summaries. It mirrors the
// narrative section of bikeshare.yaml plus the OPENAI_API_KEY value.
type LLMConfig struct {
	Model string

	// Temperature of 0 leaves the provider default in place
	Temperature float32

	// MaxTokens caps the summary length; 0 means no cap.
	// A two-paragraph summary fits well under the 800 default.
	MaxTokens int

	APIKey string
}

// DefaultLLMConfig matches the narrative defaults of the CLI configuration
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:     "gpt-4o",
		MaxTokens: 800,
	}
}
