package llm

import (
	"context"
	"strings"
)

const summaryPrompt = "Summarize this news article in 3-4 lines:\n\n"

// Summarizer produces a short plain-text summary of an article.
type Summarizer interface {
	Summarize(ctx context.Context, title, description, url string) (string, error)
}

// BuildPrompt assembles the model prompt from the article fields the
// summarize endpoint receives.
func BuildPrompt(title, description, url string) string {
	var b strings.Builder
	b.WriteString(summaryPrompt)
	b.WriteString(title)
	if description != "" {
		b.WriteString("\n\n")
		b.WriteString(description)
	}
	if url != "" {
		b.WriteString("\n\nSource: ")
		b.WriteString(url)
	}
	return b.String()
}
