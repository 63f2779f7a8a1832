package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pders01/feedquiz/internal/debuglog"
	"github.com/pders01/feedquiz/internal/llm"
)

// Draft is a generated question before it is assigned an id and stored.
// CorrectOptionIndex is 1-based.
type Draft struct {
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	ExplanationCorrect string   `json:"explanation_correct"`
	ExplanationOthers  string   `json:"explanation_others"`
}

// draftOutput mirrors the model's JSON. The index is decoded as a number
// since models sometimes write 2.0; the schema has already checked it is
// integral. A null explanation decodes to "".
type draftOutput struct {
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex float64  `json:"correct_option_index"`
	ExplanationCorrect string   `json:"explanation_correct"`
	ExplanationOthers  string   `json:"explanation_others"`
}

type Generator struct {
	provider llm.Provider
}

func NewGenerator(p llm.Provider) *Generator {
	return &Generator{provider: p}
}

// Generate asks the model for a question about content. An unusable reply
// is reported as ok=false with a nil error so the caller can skip the
// article; only LLM failures return an error.
func (g *Generator) Generate(ctx context.Context, content string) (Draft, bool, error) {
	resp, err := g.provider.Generate(
		llm.WithPurpose(ctx, "generate"),
		llm.UserPrompt(generatePrompt(content), generateMaxTokens),
	)
	if err != nil {
		return Draft{}, false, fmt.Errorf("generating question: %w", err)
	}

	raw, ok := ExtractJSON(resp.Text)
	if !ok {
		debuglog.Warnf("question reply contained no JSON object")
		return Draft{}, false, nil
	}

	draft, ok := ParseDraft(raw)
	if !ok {
		return Draft{}, false, nil
	}
	return draft, true, nil
}

// ExtractJSON returns the text between the first '{' and the last '}',
// which tolerates prose or code fences around the object.
func ExtractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseDraft decodes text and checks it has a question, exactly four
// options and a correct index in 1..4. Missing or null explanations get a
// placeholder.
func ParseDraft(text string) (Draft, bool) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		debuglog.Warnf("question reply is not valid JSON: %v", err)
		return Draft{}, false
	}
	if err := validateDraft(doc); err != nil {
		debuglog.Warnf("question reply failed validation: %v", err)
		return Draft{}, false
	}

	var out draftOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		debuglog.Warnf("decoding question reply: %v", err)
		return Draft{}, false
	}
	d := Draft{
		QuestionText:       out.QuestionText,
		Options:            out.Options,
		CorrectOptionIndex: int(out.CorrectOptionIndex),
		ExplanationCorrect: out.ExplanationCorrect,
		ExplanationOthers:  out.ExplanationOthers,
	}

	if strings.TrimSpace(d.QuestionText) == "" {
		return Draft{}, false
	}
	for _, o := range d.Options {
		if strings.TrimSpace(o) == "" {
			return Draft{}, false
		}
	}

	if strings.TrimSpace(d.ExplanationCorrect) == "" {
		d.ExplanationCorrect = PlaceholderExplanation
	}
	if strings.TrimSpace(d.ExplanationOthers) == "" {
		d.ExplanationOthers = PlaceholderExplanation
	}
	return d, true
}
