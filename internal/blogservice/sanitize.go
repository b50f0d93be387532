package blogservice

import (
	"regexp"
	"strings"
)

var (
	scriptTagRX  = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	searchTermRX = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

func sanitizeContent(content string) string {
	return scriptTagRX.ReplaceAllString(content, "")
}

// searchQuery turns free text into a prefix tsquery, e.g. "go conc" becomes "go:* | conc:*".
// Characters with meaning in tsquery syntax are dropped from each term.
func searchQuery(q string) string {
	var terms []string
	for _, field := range strings.Fields(q) {
		term := searchTermRX.ReplaceAllString(field, "")
		if term != "" {
			terms = append(terms, term+":*")
		}
	}

	return strings.Join(terms, " | ")
}
