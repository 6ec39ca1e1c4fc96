package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/debuglog"
)

// Gemini summarizes articles through Google's Generative AI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini dials the Generative AI API. The context covers client setup
// only, not later calls.
func NewGemini(ctx context.Context, cfg *config.Config) (*Gemini, error) {
	if cfg.LLM.Key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.LLM.Key))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.LLM.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Summarize(ctx context.Context, title, description, url string) (string, error) {
	prompt := BuildPrompt(title, description, url)

	debuglog.Debugf("llm: summarizing %q with %s", title, g.model)

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}
	return text, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
