package narrative

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is a deterministic LLM implementation for testing.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a default response is generated from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastPrompt stores the most recent prompt passed to Generate.
	LastPrompt string
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or generates a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(prompt), nil
}

// generateMockResponse creates a predictable summary from the prompt.
func generateMockResponse(prompt string) string {
	reportID := fieldValue(prompt, "**Report ID:**", "unknown")
	trips := fieldValue(prompt, "**Trips:**", "0")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("This summary describes report %s, ", reportID))
	b.WriteString(fmt.Sprintf("which covered %s trips. ", trips))
	b.WriteString("Ridership peaked at the most common start hour and the busiest stations saw steady use. ")
	return b.String()
}

// fieldValue returns the text after the first occurrence of label on its line
func fieldValue(prompt, label, fallback string) string {
	idx := strings.Index(prompt, label)
	if idx < 0 {
		return fallback
	}
	rest := prompt[idx+len(label):]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[:nl]
	}
	if v := strings.TrimSpace(rest); v != "" {
		return v
	}
	return fallback
}
