package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/pders01/feedquiz/internal/llm"
)

// Classifier decides whether an article is relevant to the syllabus.
type Classifier struct {
	provider llm.Provider
	syllabus *Syllabus
}

func NewClassifier(p llm.Provider, s *Syllabus) *Classifier {
	return &Classifier{provider: p, syllabus: s}
}

// Classify reports true only when the reply contains YES. Anything else,
// including a verbose or hedged reply, counts as not relevant.
func (c *Classifier) Classify(ctx context.Context, content string) (bool, error) {
	resp, err := c.provider.Generate(
		llm.WithPurpose(ctx, "classify"),
		llm.UserPrompt(classifyPrompt(c.syllabus, content), classifyMaxTokens),
	)
	if err != nil {
		return false, fmt.Errorf("classifying: %w", err)
	}
	return strings.Contains(strings.ToUpper(resp.Text), "YES"), nil
}
