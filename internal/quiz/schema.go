package quiz

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const draftSchemaURL = "schema://quiz-draft.json"

var draftSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"question_text", "options", "correct_option_index"},
	"properties": map[string]any{
		"question_text": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"minItems": 4,
			"maxItems": 4,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"correct_option_index": map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
		"explanation_correct":  map[string]any{"type": []any{"string", "null"}},
		"explanation_others":   map[string]any{"type": []any{"string", "null"}},
	},
}

var draftSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(draftSchemaURL, draftSchemaDef); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(draftSchemaURL)
})

// validateDraft checks a decoded JSON value against the draft schema.
func validateDraft(v any) error {
	schema, err := draftSchema()
	if err != nil {
		return fmt.Errorf("compile draft schema: %w", err)
	}
	return schema.Validate(v)
}
