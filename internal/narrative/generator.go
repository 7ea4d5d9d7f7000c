package narrative

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Yates-Labs/bikeshare/internal/stats"
)

var ErrGenerationFailed = errors.New("narrative generation failed")

// Narrative is the summary of one report, as printed under "Summary:"
type Narrative struct {
	ReportID string `json:"report_id"`

	// BaselineID is the whole-city report the summary was compared with,
	// empty when the report already covers the whole city
	BaselineID string `json:"baseline_id,omitempty"`

	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
	Model       string    `json:"model"`
}

// Generator produces report summaries with an LLM
type Generator struct {
	llm    LLM
	config LLMConfig
}

// NewGenerator creates a generator; config.Model is recorded on each narrative
func NewGenerator(llm LLM, config LLMConfig) *Generator {
	return &Generator{llm: llm, config: config}
}

// Summarize assembles the prompt for report, with baseline for comparison
// when it is a different selection, and generates the summary
func (g *Generator) Summarize(ctx context.Context, report, baseline *stats.Report) (*Narrative, error) {
	prompt, err := AssemblePrompt(report, baseline)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	n, err := g.Generate(ctx, report.ID, prompt)
	if err != nil {
		return nil, err
	}
	if baseline != nil && baseline.ID != report.ID {
		n.BaselineID = baseline.ID
	}
	return n, nil
}

// Generate runs an already assembled prompt for reportID
func (g *Generator) Generate(ctx context.Context, reportID string, prompt string) (*Narrative, error) {
	switch {
	case g.llm == nil:
		return nil, fmt.Errorf("%w: LLM is required", ErrGenerationFailed)
	case reportID == "":
		return nil, fmt.Errorf("%w: report ID is required", ErrGenerationFailed)
	case prompt == "":
		return nil, fmt.Errorf("%w: prompt is required", ErrGenerationFailed)
	}

	text, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: LLM invocation failed: %w", ErrGenerationFailed, err)
	}

	return &Narrative{
		ReportID:    reportID,
		Text:        text,
		GeneratedAt: time.Now(),
		Model:       g.config.Model,
	}, nil
}
