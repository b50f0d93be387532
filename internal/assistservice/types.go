package assistservice

import (
	"context"
	"errors"
)

var (
	ErrGenerationFailed = errors.New("generation failed")
	ErrSummaryFailed    = errors.New("failed to generate summary")
)

// GenerationConfig carries the sampling knobs passed to the text generator. Zero values leave the
// model defaults in place.
type GenerationConfig struct {
	Temperature     float32
	MaxOutputTokens int32
	TopP            float32
}

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// Drafter turns a topic and keywords into a blog draft.
type Drafter interface {
	Draft(ctx context.Context, topic string, keywords []string) (*Draft, error)
}

type Draft struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
}

type Summary struct {
	Summary   []string `json:"summary"`
	WordCount int      `json:"wordCount"`
}

type AssistService struct {
	drafter Drafter
	gen     TextGenerator
}
