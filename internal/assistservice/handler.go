package assistservice

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sushihentaime/quillpost/internal/common"
)

const minSummaryLength = 100

func NewAssistService(drafter Drafter, gen TextGenerator) *AssistService {
	return &AssistService{drafter: drafter, gen: gen}
}

func (s *AssistService) Draft(ctx context.Context, topic string, keywords []string) (*Draft, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(topic) != "", "topic", "must be provided")
	v.Check(len(keywords) <= 20, "keywords", "must not contain more than 20 entries")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.drafter.Draft(ctx, strings.TrimSpace(topic), keywords)
}

// Summarize condenses content into a handful of bullet points.
func (s *AssistService) Summarize(ctx context.Context, content string) (*Summary, error) {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < minSummaryLength {
		return nil, common.NewValidationError(fmt.Sprintf("Content must be at least %d characters", minSummaryLength))
	}

	prompt := fmt.Sprintf("%s\n\nSummarize this blog content into key insights:\n\"\"\"\n%s\n\"\"\"", summaryTemplate, content)

	text, err := s.gen.Generate(ctx, prompt, summaryConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	points := bulletPoints(text)
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrSummaryFailed)
	}

	return &Summary{
		Summary:   points,
		WordCount: len(strings.Fields(strings.Join(points, " "))),
	}, nil
}

func bulletPoints(text string) []string {
	points := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(line)
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}
