package assistservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// TemplateDrafter asks the generator to follow a labelled template and reads the labels back.
// The parsing is best effort and relies on the model keeping to the template.
type TemplateDrafter struct {
	gen TextGenerator
}

func NewTemplateDrafter(gen TextGenerator) *TemplateDrafter {
	return &TemplateDrafter{gen: gen}
}

func (d *TemplateDrafter) Draft(ctx context.Context, topic string, keywords []string) (*Draft, error) {
	prompt := fmt.Sprintf("%s\n\nWrite about: %s\nKeywords to emphasize: %s", draftTemplate, topic, strings.Join(keywords, ", "))

	text, err := d.gen.Generate(ctx, prompt, draftConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	draft := parseDraft(text)
	draft.Content = emphasize(draft.Content, keywords)

	if draft.Title == "" || draft.Category == "" || draft.Content == "" {
		return nil, fmt.Errorf("%w: response did not follow the template", ErrGenerationFailed)
	}

	return draft, nil
}

func parseDraft(text string) *Draft {
	var draft Draft

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case draft.Title == "" && strings.HasPrefix(line, "Title:"):
			draft.Title = strings.TrimSpace(strings.TrimPrefix(line, "Title:"))
		case draft.Category == "" && strings.HasPrefix(line, "Category:"):
			draft.Category = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		case draft.Excerpt == "" && strings.HasPrefix(line, "Excerpt:"):
			draft.Excerpt = strings.TrimSpace(strings.TrimPrefix(line, "Excerpt:"))
		}
	}

	// body starts after the third paragraph break
	if parts := strings.Split(text, "\n\n"); len(parts) > 3 {
		draft.Content = strings.TrimSpace(strings.Join(parts[3:], "\n\n"))
	}

	return &draft
}

// emphasize wraps every whole-word, case-insensitive occurrence of each keyword in bold markers.
func emphasize(content string, keywords []string) string {
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}

		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		content = re.ReplaceAllLiteralString(content, "**"+kw+"**")
	}

	return content
}
