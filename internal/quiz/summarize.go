package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/pders01/feedquiz/internal/llm"
)

type Summarizer struct {
	provider llm.Provider
}

func NewSummarizer(p llm.Provider) *Summarizer {
	return &Summarizer{provider: p}
}

// Summarize asks for a short summary, primed with an assistant turn.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "summarize"), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleAssistant, Content: summaryPrimer},
			{Role: llm.RoleUser, Content: summaryPrompt(content)},
		},
		MaxTokens: summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
